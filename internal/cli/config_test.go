package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pcbcore/internal/i18n"
)

func writeCatalog(t *testing.T, dir, name string, c i18n.Catalog) {
	t.Helper()
	data, err := yaml.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestLoadCatalog_WarnsOnMissingKeys(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "fr.yaml", i18n.Catalog{
		Language:     "fr",
		Translations: map[string]string{"Arc": "Arc de cercle", "Line": "Ligne"},
	})
	core, logs := observer.New(zapcore.DebugLevel)

	c, err := loadCatalog(zap.New(core), dir, "fr.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Ligne", c.Translate("Line"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "fr", fields["language"])
	assert.Equal(t, filepath.Join(dir, "fr.yaml"), fields["path"])
	assert.ElementsMatch(t, c.Missing(), fields["keys"])
	assert.NotContains(t, fields["keys"], "Arc")
}

func TestLoadCatalog_CompleteIsSilent(t *testing.T) {
	dir := t.TempDir()
	full := map[string]string{}
	for _, k := range i18n.Keys {
		full[k] = "x " + k
	}
	writeCatalog(t, dir, "full.yaml", i18n.Catalog{Language: "xx", Translations: full})
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := loadCatalog(zap.New(core), dir, "full.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len())

	c, err := loadCatalog(zap.New(core), dir, "")
	require.NoError(t, err)
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, 0, logs.Len(), "the built-in English catalog is not checked")
}

func TestLoadCatalog_ReadError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := loadCatalog(zap.New(core), t.TempDir(), "absent.yaml")
	assert.ErrorContains(t, err, "read catalog")
	assert.Equal(t, 0, logs.Len())
}
