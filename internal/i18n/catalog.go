// Package i18n loads label translations for board item display text. A
// Catalog implements types.Translator.
package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// Catalog maps label keys to translated text.
type Catalog struct {
	Language     string            `yaml:"language"`
	Translations map[string]string `yaml:"translations"`
}

var _ types.Translator = (*Catalog)(nil)

// Keys lists every label key the board item model asks for.
var Keys = []string{
	"Line",
	"Rect",
	"Arc",
	"Circle",
	"Bezier Curve",
	"Polygon",
	types.UndefinedLayerLabel,
}

// English returns the identity catalog.
func English() *Catalog {
	return &Catalog{Language: "en", Translations: map[string]string{}}
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Translations == nil {
		c.Translations = map[string]string{}
	}
	return &c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Translate returns the translation of key, or key when none exists.
func (c *Catalog) Translate(key string) string {
	if c == nil {
		return key
	}
	if v, ok := c.Translations[key]; ok && v != "" {
		return v
	}
	return key
}

// Missing returns the keys in Keys that the catalog does not translate.
func (c *Catalog) Missing() []string {
	var out []string
	for _, k := range Keys {
		if _, ok := c.Translations[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
