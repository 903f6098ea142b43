package types

import (
	"fmt"
	"strings"
)

// ShapeKind identifies the outline of a drawing item.
type ShapeKind int

// Shape kinds.
const (
	ShapeSegment ShapeKind = iota
	ShapeRect
	ShapeArc
	ShapeCircle
	ShapeCurve
	ShapePolygon
)

// UnknownShapeLabel is returned by ShowShape for values outside the enum. It
// is never translated.
const UnknownShapeLabel = "??"

// shapeLabels holds the translation keys for each shape kind.
var shapeLabels = map[ShapeKind]string{
	ShapeSegment: "Line",
	ShapeRect:    "Rect",
	ShapeArc:     "Arc",
	ShapeCircle:  "Circle",
	ShapeCurve:   "Bezier Curve",
	ShapePolygon: "Polygon",
}

// shapeNames holds the identifiers used in persisted data and on the CLI.
var shapeNames = map[ShapeKind]string{
	ShapeSegment: "segment",
	ShapeRect:    "rect",
	ShapeArc:     "arc",
	ShapeCircle:  "circle",
	ShapeCurve:   "curve",
	ShapePolygon: "polygon",
}

// ShapeKinds lists every defined shape kind in enum order.
var ShapeKinds = []ShapeKind{
	ShapeSegment,
	ShapeRect,
	ShapeArc,
	ShapeCircle,
	ShapeCurve,
	ShapePolygon,
}

// Translator resolves a fixed label key to display text. Implementations
// return the key itself when they hold no translation.
type Translator interface {
	Translate(key string) string
}

// ShowShape returns the English display label for kind, or "??".
func ShowShape(kind ShapeKind) string {
	return ShowShapeIn(nil, kind)
}

// ShowShapeIn returns the display label for kind translated by tr. A nil tr
// leaves labels untranslated. Unknown kinds map to UnknownShapeLabel.
func ShowShapeIn(tr Translator, kind ShapeKind) string {
	key, ok := shapeLabels[kind]
	if !ok {
		return UnknownShapeLabel
	}
	return translate(tr, key)
}

// String returns the persisted identifier of the shape kind.
func (k ShapeKind) String() string {
	if name, ok := shapeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(k))
}

// ParseShapeKind accepts a persisted identifier such as "arc".
func ParseShapeKind(name string) (ShapeKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range shapeNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("shape %q: %w", name, ErrInvalidKind)
}

func translate(tr Translator, key string) string {
	if tr == nil {
		return key
	}
	return tr.Translate(key)
}
