package types

import (
	"container/list"

	"go.uber.org/zap"
)

// Item is a placed object on a board: a track, via, pad, zone, footprint,
// drawing or text. Geometry fields are in internal units; which of them are
// meaningful depends on the kind.
//
// An item belongs to at most one ItemList at a time and may name a logical
// parent. The parent owns the child; the child only holds the parent's
// handle.
type Item struct {
	Layer LayerID
	Shape ShapeKind
	Start Point
	End   Point
	Size  Size
	Width int
	// Angle is stored in the session's angle convention.
	Angle float64
	Text  string

	id       ItemID
	kind     ItemKind
	arena    *Arena
	parent   ItemID
	list     *ItemList
	elem     *list.Element
	children *ItemList
}

// ID returns the item's handle.
func (it *Item) ID() ItemID {
	return it.id
}

// Kind returns the item kind.
func (it *Item) Kind() ItemKind {
	return it.kind
}

// Class returns the class name used in diagnostics.
func (it *Item) Class() string {
	return it.kind.Class()
}

// Arena returns the Arena that owns the item.
func (it *Item) Arena() *Arena {
	return it.arena
}

// List returns the list containing the item, or nil when detached.
func (it *Item) List() *ItemList {
	return it.list
}

// Next returns the following sibling, or nil.
func (it *Item) Next() *Item {
	if it.elem == nil {
		return nil
	}
	return itemOf(it.elem.Next())
}

// Prev returns the preceding sibling, or nil.
func (it *Item) Prev() *Item {
	if it.elem == nil {
		return nil
	}
	return itemOf(it.elem.Prev())
}

// Children returns the list of items a footprint owns. It is nil for every
// other kind.
func (it *Item) Children() *ItemList {
	return it.children
}

// Parent resolves the parent handle. It returns nil when the item has no
// parent, the parent was destroyed or the item belongs to no Arena.
func (it *Item) Parent() *Item {
	return it.arena.Lookup(it.parent)
}

// ParentID returns the raw parent handle.
func (it *Item) ParentID() ItemID {
	return it.parent
}

// SetParent records p as the logical parent. A nil p clears the parent. The
// parent must live in the same Arena and must not be a descendant of it.
func (it *Item) SetParent(p *Item) error {
	if p == nil {
		it.parent = NoItem
		return nil
	}
	if it.arena == nil || p.arena != it.arena {
		return ErrForeignItem
	}
	for cur, steps := p, 0; cur != nil && steps <= it.arena.Len(); cur, steps = cur.Parent(), steps+1 {
		if cur == it {
			return ErrParentCycle
		}
	}
	it.parent = p.id
	return nil
}

// AddChild links child into a footprint's child list and makes the
// footprint its parent. Only footprints own children; pads, drawings and
// texts are the accepted child kinds.
func (it *Item) AddChild(child *Item) error {
	if child == nil {
		return ErrNilItem
	}
	if it.kind != KindFootprint {
		return ErrInvalidKind
	}
	switch child.kind {
	case KindPad, KindDrawing, KindText:
	default:
		return ErrInvalidKind
	}
	if child.arena != it.arena {
		return ErrForeignItem
	}
	if child.list != nil {
		return ErrAlreadyLinked
	}
	if err := child.SetParent(it); err != nil {
		return err
	}
	return it.children.PushBack(child)
}

// Unlink removes the item from its list. The caller keeps the item and
// decides whether to reinsert or destroy it. Unlinking a detached item
// changes nothing and is reported on the diagnostic logger.
func (it *Item) Unlink() {
	if it.list == nil {
		it.arena.Logger().Warn("unlink of item not in a list",
			zap.String("class", it.Class()),
			zap.Uint64("item_id", uint64(it.id)))
		return
	}
	it.list.Remove(it)
}

// GetBoard returns the board document the item belongs to. A board item
// returns itself. It returns nil for orphans, for destroyed parents and for
// parent cycles; callers must check.
func (it *Item) GetBoard() *Board {
	if it.arena == nil {
		return nil
	}
	// A chain through distinct items is never longer than the Arena.
	limit := it.arena.Len()
	for cur, steps := it, 0; cur != nil && steps <= limit; cur, steps = cur.Parent(), steps+1 {
		if cur.kind == KindBoard {
			return it.arena.boards[cur.id]
		}
	}
	return nil
}

// GetLayerName resolves the item's layer name through its board. An item
// that cannot reach a board is a caller bug: it is logged and the undefined
// layer placeholder is returned.
func (it *Item) GetLayerName() string {
	if b := it.GetBoard(); b != nil {
		return b.GetLayerName(it.Layer)
	}
	it.arena.Logger().Error("no board found for board item",
		zap.String("class", it.Class()),
		zap.Uint64("item_id", uint64(it.id)))
	return translate(it.arena.Translator(), UndefinedLayerLabel)
}
