package types

import (
	"sort"
	"strings"
	"unicode"
)

// Board is the root of a board document. It owns the layer-name table and
// the top-level item lists. Its own item has KindBoard and terminates every
// parent walk.
type Board struct {
	Name string
	// DocumentID is the store identifier, empty until the board is saved.
	DocumentID string

	Drawings   *ItemList
	Tracks     *ItemList
	Footprints *ItemList
	Zones      *ItemList

	item       *Item
	layerNames map[LayerID]string
}

// Layer pairs a layer id with its effective name.
type Layer struct {
	ID   LayerID `json:"id"`
	Name string  `json:"name"`
}

// Item returns the board's root item.
func (b *Board) Item() *Item {
	return b.item
}

// Arena returns the Arena that owns the board.
func (b *Board) Arena() *Arena {
	return b.item.arena
}

// Lists returns the board's top-level lists in persistence order.
func (b *Board) Lists() []*ItemList {
	return []*ItemList{b.Drawings, b.Tracks, b.Footprints, b.Zones}
}

// ListFor returns the top-level list that holds items of kind.
func (b *Board) ListFor(kind ItemKind) (*ItemList, error) {
	switch kind {
	case KindTrack, KindVia:
		return b.Tracks, nil
	case KindFootprint:
		return b.Footprints, nil
	case KindZone:
		return b.Zones, nil
	case KindDrawing, KindText:
		return b.Drawings, nil
	default:
		return nil, ErrInvalidKind
	}
}

// Add appends it to the list for its kind and makes the board its parent.
func (b *Board) Add(it *Item) error {
	if it == nil {
		return ErrNilItem
	}
	if it.arena != b.item.arena {
		return ErrForeignItem
	}
	l, err := b.ListFor(it.kind)
	if err != nil {
		return err
	}
	if it.list != nil {
		return ErrAlreadyLinked
	}
	if err := it.SetParent(b.item); err != nil {
		return err
	}
	return l.PushBack(it)
}

// Walk visits every item reachable from the board's lists in persistence
// order, footprint children directly after their footprint. Returning false
// from fn stops the walk.
func (b *Board) Walk(fn func(*Item) bool) {
	for _, l := range b.Lists() {
		for it := range l.All() {
			if !fn(it) {
				return
			}
			if it.children == nil {
				continue
			}
			for child := range it.children.All() {
				if !fn(child) {
					return
				}
			}
		}
	}
}

// GetLayerName returns the user-assigned name of a layer, falling back to
// the standard name. Trailing whitespace is trimmed. Ids outside the layer
// table return BadLayerName.
func (b *Board) GetLayerName(id LayerID) string {
	if !id.Valid() {
		return BadLayerName
	}
	name, ok := b.layerNames[id]
	if !ok {
		name = StandardLayerName(id)
	}
	return strings.TrimRightFunc(name, unicode.IsSpace)
}

// SetLayerName assigns a user name to a layer. An empty name returns
// ErrInvalidName; use ResetLayerName to restore the standard name.
func (b *Board) SetLayerName(id LayerID, name string) error {
	if !id.Valid() {
		return ErrInvalidLayer
	}
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	b.layerNames[id] = name
	return nil
}

// ResetLayerName restores the standard name of a layer.
func (b *Board) ResetLayerName(id LayerID) {
	delete(b.layerNames, id)
}

// CustomLayerNames returns the user-assigned names sorted by layer id.
func (b *Board) CustomLayerNames() []Layer {
	out := make([]Layer, 0, len(b.layerNames))
	for id, name := range b.layerNames {
		out = append(out, Layer{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Layers returns every layer with its effective name in id order.
func (b *Board) Layers() []Layer {
	out := make([]Layer, 0, LayerCount)
	for id := LayerID(0); id < LayerCount; id++ {
		out = append(out, Layer{ID: id, Name: b.GetLayerName(id)})
	}
	return out
}
