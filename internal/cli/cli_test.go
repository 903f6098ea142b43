package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pcbcore/internal/paths"
	"github.com/mesh-intelligence/pcbcore/internal/sqlite"
	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// cliEnv isolates one test's config and data directories.
type cliEnv struct {
	configDir string
	dataDir   string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	return cliEnv{configDir: t.TempDir(), dataDir: t.TempDir()}
}

func (e cliEnv) run(args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code = run(full, &out, &errOut)
	return out.String(), errOut.String(), code
}

func (e cliEnv) writeConfig(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, name), []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	out, _, code := env.run("version")
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "pcbcore v0.1.0\nmodule: github.com/mesh-intelligence/pcbcore\n", out)
}

func TestFormatCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"value mm", []string{"format", "value", "25400000"}, "25.4\n"},
		{"value threshold", []string{"format", "value", "100"}, "0.0001\n"},
		{"value below threshold", []string{"format", "value", "1"}, "0.000001\n"},
		{"value zero", []string{"format", "value", "0"}, "0\n"},
		{"value decimils", []string{"--units", "decimils", "format", "value", "2540"}, "1\n"},
		{"negative after dashes", []string{"--units", "decimils", "format", "value", "--", "-127"}, "-0.05\n"},
		{"point", []string{"format", "point", "1000000", "2000000"}, "1 2\n"},
		{"size", []string{"format", "size", "1500000", "800000"}, "1.5 0.8\n"},
		{"angle tenths", []string{"format", "angle", "900"}, "90\n"},
		{"angle degrees", []string{"--angles", "degrees", "format", "angle", "90"}, "90\n"},
		{"angle fractional", []string{"format", "angle", "455"}, "45.5\n"},
		{"parse", []string{"format", "parse", "25.4"}, "25400000\n"},
		{"parse decimils", []string{"--units", "decimils", "format", "parse", "1"}, "2540\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			out, stderr, code := env.run(tt.args...)
			require.Equal(t, exitSuccess, code, stderr)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatJSON(t *testing.T) {
	env := newCLIEnv(t)
	out, _, code := env.run("--json", "format", "value", "100000")
	require.Equal(t, exitSuccess, code)

	var got formatResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, formatResult{Input: "100000", Text: "0.1", Units: "nanometres"}, got)
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"not a number", []string{"format", "value", "abc"}, "invalid number"},
		{"float internal units", []string{"format", "value", "1.5"}, "invalid number"},
		{"bad parse", []string{"format", "parse", "1mm"}, "invalid number"},
		{"unknown units", []string{"--units", "furlongs", "format", "value", "1"}, "unknown unit scale"},
		{"unknown angles", []string{"--angles", "radians", "format", "angle", "1"}, "unknown angle convention"},
		{"missing arg", []string{"format", "value"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			_, stderr, code := env.run(tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestConfigFileSelectsFormat(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig(t, "config.yaml", "units: decimils\nangles: degrees\n")

	out, _, code := env.run("format", "value", "2540")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1\n", out)

	out, _, code = env.run("format", "angle", "90")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "90\n", out)

	// Flags override the file.
	out, _, code = env.run("--units", "nanometres", "format", "value", "1000000")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "1\n", out)
}

func TestConfigDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("units: decimils\n"), 0o644))
	t.Setenv(paths.EnvConfigDir, dir)

	var out, errOut bytes.Buffer
	code := run([]string{"format", "value", "2540"}, &out, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())
	assert.Equal(t, "1\n", out.String())
}

func TestShape(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"segment", "Line\n"},
		{"arc", "Arc\n"},
		{"curve", "Bezier Curve\n"},
		{"5", "Polygon\n"},
		{"99", "??\n"},
		{"-1", "??\n"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			env := newCLIEnv(t)
			out, stderr, code := env.run("shape", "--", tt.arg)
			require.Equal(t, exitSuccess, code, stderr)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestShapeList(t *testing.T) {
	env := newCLIEnv(t)
	out, _, code := env.run("--json", "shape")
	require.Equal(t, exitSuccess, code)

	var got []shapeLabel
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, len(types.ShapeKinds))
	assert.Equal(t, shapeLabel{Kind: 4, Name: "curve", Label: "Bezier Curve"}, got[4])

	out, _, code = env.run("shape")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "Bezier Curve")
}

func TestShapeUnknownName(t *testing.T) {
	env := newCLIEnv(t)
	_, stderr, code := env.run("shape", "hexagon")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "invalid item kind")
}

func TestShapeCatalog(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig(t, "config.yaml", "catalog: fr.yaml\n")
	env.writeConfig(t, "fr.yaml", "language: fr\ntranslations:\n  Arc: \"Arc de cercle\"\n  Line: Ligne\n")

	out, _, code := env.run("shape", "arc")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Arc de cercle\n", out)

	out, _, code = env.run("shape", "circle")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Circle\n", out)

	out, _, code = env.run("shape", "42")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "??\n", out)
}

func TestShapeMissingCatalog(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig(t, "config.yaml", "catalog: missing.yaml\n")

	_, stderr, code := env.run("shape", "arc")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "read catalog")
}

func TestInit(t *testing.T) {
	env := newCLIEnv(t)
	out, stderr, code := env.run("init")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "pcbcore initialized in")

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "units: nanometres")
	assert.Contains(t, string(data), "angles: tenths")
	assert.FileExists(t, filepath.Join(env.dataDir, sqlite.DatabaseFile))

	// A second init leaves the existing config alone.
	env.writeConfig(t, "config.yaml", "backend: sqlite\nunits: decimils\n")
	_, _, code = env.run("init")
	require.Equal(t, exitSuccess, code)
	data, err = os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\nunits: decimils\n", string(data))
}

func TestUnknownBackend(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig(t, "config.yaml", "backend: postgres\n")

	_, stderr, code := env.run("board", "list")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "unknown backend")
}

func TestBoardLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	out, stderr, code := env.run("board", "create", "demo", "--layer-name", "F.Cu=Top")
	require.Equal(t, exitSuccess, code, stderr)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, stderr, code = env.run("board", "add", id, "track", "--start", "1 2", "--end", "25.4 0", "--width", "0.25")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "(segment (start 1 2) (end 25.4 0) (width 0.25) (layer Top))\n", out)

	out, stderr, code = env.run("board", "add", id, "footprint", "--text", "R1", "--start", "10 20", "--angle", "90")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "(module R1 (at 10 20 90) (layer Top))\n", out)

	out, stderr, code = env.run("board", "add", id, "pad", "--footprint", "0", "--shape", "rect", "--size", "1.5 0.8", "--layer", "Top")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "(pad rect (at 0 0) (size 1.5 0.8) (layer Top))\n", out)

	t.Run("show json", func(t *testing.T) {
		out, stderr, code := env.run("--json", "board", "show", id)
		require.Equal(t, exitSuccess, code, stderr)

		var view boardView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, id, view.ID)
		assert.Equal(t, "demo", view.Name)
		assert.Equal(t, []types.Layer{{ID: types.LayerFrontCu, Name: "Top"}}, view.LayerNames)
		require.Len(t, view.Items, 2)
		assert.Equal(t, "Track", view.Items[0].Class)
		assert.Equal(t, "Footprint", view.Items[1].Class)
		require.Len(t, view.Items[1].Children, 1)
		assert.Equal(t, "Pad", view.Items[1].Children[0].Class)
		assert.Equal(t, "Rect", view.Items[1].Children[0].Shape)
		assert.Equal(t, "Top", view.Items[1].Children[0].Layer)
	})

	t.Run("show text", func(t *testing.T) {
		out, _, code := env.run("board", "show", id)
		require.Equal(t, exitSuccess, code)
		assert.Contains(t, out, "Name:    demo\n")
		assert.Contains(t, out, "Layer names:\n  0  Top\n")
		assert.Contains(t, out, "(module R1 (at 10 20 90) (layer Top))")
	})

	t.Run("export", func(t *testing.T) {
		out, _, code := env.run("board", "export", id)
		require.Equal(t, exitSuccess, code)
		assert.True(t, strings.HasPrefix(out, "(board \"demo\"\n"))
		assert.Contains(t, out, "    (0 Top)\n")
		assert.Contains(t, out, "  (segment (start 1 2) (end 25.4 0) (width 0.25) (layer Top))\n"+
			"  (module R1 (at 10 20 90) (layer Top)\n"+
			"    (pad rect (at 0 0) (size 1.5 0.8) (layer Top))\n"+
			"  )\n)\n")

		path := filepath.Join(t.TempDir(), "demo.txt")
		fileOut, _, code := env.run("board", "export", id, "-o", path)
		require.Equal(t, exitSuccess, code)
		assert.Empty(t, fileOut)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, out, string(data))
	})

	t.Run("export decimils", func(t *testing.T) {
		out, _, code := env.run("--units", "decimils", "board", "export", id)
		require.Equal(t, exitSuccess, code)
		assert.Contains(t, out, "(units decimils) (angles tenths)")
		assert.Contains(t, out, "(width 98.42519685)")
	})

	t.Run("list", func(t *testing.T) {
		out, _, code := env.run("--json", "board", "list")
		require.Equal(t, exitSuccess, code)

		var boards []types.BoardSummary
		require.NoError(t, json.Unmarshal([]byte(out), &boards))
		require.Len(t, boards, 1)
		assert.Equal(t, id, boards[0].ID)
		assert.Equal(t, 3, boards[0].Items)

		out, _, code = env.run("board", "list")
		require.Equal(t, exitSuccess, code)
		assert.Contains(t, out, id)
		assert.Contains(t, out, "demo")
	})

	out, _, code = env.run("board", "delete", id)
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, fmt.Sprintf("deleted board %s\n", id), out)

	_, stderr, code = env.run("board", "show", id)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "not found")

	_, _, code = env.run("board", "delete", id)
	assert.Equal(t, exitUserError, code)
}

func TestBoardAddErrors(t *testing.T) {
	env := newCLIEnv(t)
	out, _, code := env.run("board", "create", "demo")
	require.Equal(t, exitSuccess, code)
	id := strings.TrimSpace(out)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"board kind", []string{"board", "add", id, "board"}, "invalid item kind"},
		{"unknown kind", []string{"board", "add", id, "resistor"}, "invalid item kind"},
		{"missing footprint", []string{"board", "add", id, "pad", "--footprint", "0"}, "board has 0 footprints"},
		{"bad layer", []string{"board", "add", id, "track", "--layer", "X.Cu"}, "invalid layer"},
		{"bad point", []string{"board", "add", id, "track", "--start", "1"}, "invalid number"},
		{"unknown board", []string{"board", "add", "nope", "track"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := env.run(tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestBoardCreateBadLayerName(t *testing.T) {
	env := newCLIEnv(t)
	_, stderr, code := env.run("board", "create", "demo", "--layer-name", "F.Cu")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "want <layer>=<name>")

	_, stderr, code = env.run("board", "create", "demo", "--layer-name", "F.Cu=")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "invalid name")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("plain")))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("disk"))))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("wrapped: %w", userError(errors.New("bad")))))
}
