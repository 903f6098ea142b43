package types

import "go.uber.org/zap"

// ItemID is a non-owning handle to an item in an Arena. The zero value
// refers to no item.
type ItemID uint64

// NoItem is the handle of no item.
const NoItem ItemID = 0

// Arena owns every item of a document session. Parent links are ItemIDs
// resolved through the Arena, so a destroyed item simply stops resolving.
//
// An Arena is not safe for concurrent use; callers serialize access.
type Arena struct {
	nextID ItemID
	items  map[ItemID]*Item
	boards map[ItemID]*Board
	logger *zap.Logger
	tr     Translator
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(l *zap.Logger) ArenaOption {
	return func(a *Arena) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTranslator sets the localization provider for labels and placeholders.
func WithTranslator(tr Translator) ArenaOption {
	return func(a *Arena) {
		a.tr = tr
	}
}

// NewArena creates an empty Arena.
func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{
		items:  make(map[ItemID]*Item),
		boards: make(map[ItemID]*Board),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Logger returns the diagnostic logger. A nil Arena yields a no-op logger.
func (a *Arena) Logger() *zap.Logger {
	if a == nil {
		return zap.NewNop()
	}
	return a.logger
}

// Translator returns the localization provider, which may be nil.
func (a *Arena) Translator() Translator {
	if a == nil {
		return nil
	}
	return a.tr
}

// Len returns the number of live items, boards included.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// NewItem creates a detached, parentless item of the given kind. Boards are
// created with NewBoard; passing KindBoard returns ErrInvalidKind.
func (a *Arena) NewItem(kind ItemKind) (*Item, error) {
	if !kind.Valid() || kind == KindBoard {
		return nil, ErrInvalidKind
	}
	it := a.register(kind)
	if kind == KindFootprint {
		it.children = NewItemList("children")
	}
	return it, nil
}

// NewBoard creates a board document with the standard layer table.
func (a *Arena) NewBoard(name string) *Board {
	b := &Board{
		Name:       name,
		item:       a.register(KindBoard),
		layerNames: make(map[LayerID]string),
		Drawings:   NewItemList("drawings"),
		Tracks:     NewItemList("tracks"),
		Footprints: NewItemList("footprints"),
		Zones:      NewItemList("zones"),
	}
	a.boards[b.item.id] = b
	return b
}

// Lookup resolves a handle. It returns nil for NoItem and for destroyed items.
func (a *Arena) Lookup(id ItemID) *Item {
	if a == nil || id == NoItem {
		return nil
	}
	return a.items[id]
}

// Destroy unlinks an item and removes it from the Arena together with the
// items it owns: a footprint's children or a board's lists. Items that only
// referenced it as a parent become orphans.
func (a *Arena) Destroy(it *Item) error {
	if it == nil {
		return ErrNilItem
	}
	if it.arena != a {
		return ErrForeignItem
	}
	if _, ok := a.items[it.id]; !ok {
		return nil
	}
	if it.list != nil {
		it.list.Remove(it)
	}

	var owned []*ItemList
	switch it.kind {
	case KindFootprint:
		owned = []*ItemList{it.children}
	case KindBoard:
		if b := a.boards[it.id]; b != nil {
			owned = b.Lists()
		}
		delete(a.boards, it.id)
	}
	for _, l := range owned {
		for _, child := range l.Items() {
			if err := a.Destroy(child); err != nil {
				return err
			}
		}
	}

	delete(a.items, it.id)
	return nil
}

func (a *Arena) register(kind ItemKind) *Item {
	a.nextID++
	it := &Item{
		id:    a.nextID,
		kind:  kind,
		arena: a,
	}
	a.items[it.id] = it
	return it
}
