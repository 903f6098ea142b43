package types

import (
	"fmt"
	"strings"
)

// ItemKind identifies the concrete type of a board item.
type ItemKind int

// Item kinds. KindBoard marks the document root.
const (
	KindBoard ItemKind = iota
	KindFootprint
	KindPad
	KindTrack
	KindVia
	KindZone
	KindDrawing
	KindText
)

var kindNames = map[ItemKind]string{
	KindBoard:     "board",
	KindFootprint: "footprint",
	KindPad:       "pad",
	KindTrack:     "track",
	KindVia:       "via",
	KindZone:      "zone",
	KindDrawing:   "drawing",
	KindText:      "text",
}

var kindClasses = map[ItemKind]string{
	KindBoard:     "Board",
	KindFootprint: "Footprint",
	KindPad:       "Pad",
	KindTrack:     "Track",
	KindVia:       "Via",
	KindZone:      "Zone",
	KindDrawing:   "Drawing",
	KindText:      "Text",
}

// String returns the persisted identifier of the kind.
func (k ItemKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Class returns the class name used in diagnostics.
func (k ItemKind) Class() string {
	if name, ok := kindClasses[k]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether k is a defined kind.
func (k ItemKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseItemKind accepts a persisted identifier such as "track".
func ParseItemKind(name string) (ItemKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("kind %q: %w", name, ErrInvalidKind)
}
