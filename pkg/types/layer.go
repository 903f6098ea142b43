package types

import (
	"fmt"
	"strings"
)

// LayerID identifies a board layer.
type LayerID int

// Copper and technical layers. Inner copper layers occupy 1 through 30.
const (
	LayerFrontCu    LayerID = 0
	LayerBackCu     LayerID = 31
	LayerBackAdhes  LayerID = 32
	LayerFrontAdhes LayerID = 33
	LayerBackPaste  LayerID = 34
	LayerFrontPaste LayerID = 35
	LayerBackSilkS  LayerID = 36
	LayerFrontSilkS LayerID = 37
	LayerBackMask   LayerID = 38
	LayerFrontMask  LayerID = 39
	LayerDwgsUser   LayerID = 40
	LayerCmtsUser   LayerID = 41
	LayerEco1User   LayerID = 42
	LayerEco2User   LayerID = 43
	LayerEdgeCuts   LayerID = 44
)

// LayerCount is the size of the layer table.
const LayerCount = 45

const (
	firstInnerCopper LayerID = 1
	lastInnerCopper  LayerID = 30
)

// BadLayerName is returned for layer ids outside the layer table.
const BadLayerName = "BAD INDEX!"

// UndefinedLayerLabel is the translation key substituted when an item cannot
// reach a board to resolve its layer.
const UndefinedLayerLabel = "** undefined layer **"

var technicalLayerNames = map[LayerID]string{
	LayerFrontCu:    "F.Cu",
	LayerBackCu:     "B.Cu",
	LayerBackAdhes:  "B.Adhes",
	LayerFrontAdhes: "F.Adhes",
	LayerBackPaste:  "B.Paste",
	LayerFrontPaste: "F.Paste",
	LayerBackSilkS:  "B.SilkS",
	LayerFrontSilkS: "F.SilkS",
	LayerBackMask:   "B.Mask",
	LayerFrontMask:  "F.Mask",
	LayerDwgsUser:   "Dwgs.User",
	LayerCmtsUser:   "Cmts.User",
	LayerEco1User:   "Eco1.User",
	LayerEco2User:   "Eco2.User",
	LayerEdgeCuts:   "Edge.Cuts",
}

// Valid reports whether id is inside the layer table.
func (id LayerID) Valid() bool {
	return id >= 0 && id < LayerCount
}

// IsCopper reports whether id is a copper layer.
func (id LayerID) IsCopper() bool {
	return id >= LayerFrontCu && id <= LayerBackCu
}

// StandardLayerName returns the canonical name of a layer, or BadLayerName.
func StandardLayerName(id LayerID) string {
	if name, ok := technicalLayerNames[id]; ok {
		return name
	}
	if id >= firstInnerCopper && id <= lastInnerCopper {
		return fmt.Sprintf("In%d.Cu", int(id))
	}
	return BadLayerName
}

// ParseLayer resolves a canonical layer name such as "F.Cu" or "In3.Cu".
func ParseLayer(name string) (LayerID, error) {
	name = strings.TrimSpace(name)
	for id := LayerID(0); id < LayerCount; id++ {
		if strings.EqualFold(StandardLayerName(id), name) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("layer %q: %w", name, ErrInvalidLayer)
}
