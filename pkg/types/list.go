package types

import (
	"container/list"
	"iter"
)

// ItemList is an ordered container of items. Each item records its own
// element, so removal by identity is O(1). The zero value is not usable; call
// NewItemList.
type ItemList struct {
	name string
	l    *list.List
}

// NewItemList creates an empty list. The name is used in diagnostics and by
// the store to record which container an item lives in.
func NewItemList(name string) *ItemList {
	return &ItemList{name: name, l: list.New()}
}

// Name returns the list name.
func (l *ItemList) Name() string {
	return l.name
}

// Len returns the number of items in the list.
func (l *ItemList) Len() int {
	return l.l.Len()
}

// PushBack appends it. Returns ErrAlreadyLinked if it is in any list.
func (l *ItemList) PushBack(it *Item) error {
	if err := l.checkInsert(it); err != nil {
		return err
	}
	l.link(it, l.l.PushBack(it))
	return nil
}

// PushFront prepends it. Returns ErrAlreadyLinked if it is in any list.
func (l *ItemList) PushFront(it *Item) error {
	if err := l.checkInsert(it); err != nil {
		return err
	}
	l.link(it, l.l.PushFront(it))
	return nil
}

// InsertAfter places it immediately after mark, which must belong to l.
func (l *ItemList) InsertAfter(it, mark *Item) error {
	if err := l.checkInsert(it); err != nil {
		return err
	}
	if mark == nil || mark.list != l {
		return ErrNotInList
	}
	l.link(it, l.l.InsertAfter(it, mark.elem))
	return nil
}

// Remove detaches it from the list. It reports false, and changes nothing,
// when it is not a member of l.
func (l *ItemList) Remove(it *Item) bool {
	if it == nil || it.list != l {
		return false
	}
	l.l.Remove(it.elem)
	it.list = nil
	it.elem = nil
	return true
}

// Contains reports whether it is a member of l.
func (l *ItemList) Contains(it *Item) bool {
	return it != nil && it.list == l
}

// Front returns the first item or nil.
func (l *ItemList) Front() *Item {
	return itemOf(l.l.Front())
}

// Back returns the last item or nil.
func (l *ItemList) Back() *Item {
	return itemOf(l.l.Back())
}

// Items returns a snapshot of the list in order.
func (l *ItemList) Items() []*Item {
	out := make([]*Item, 0, l.l.Len())
	for e := l.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Item))
	}
	return out
}

// All iterates the list in order. The list must not be modified during
// iteration.
func (l *ItemList) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for e := l.l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(*Item)) {
				return
			}
		}
	}
}

func (l *ItemList) checkInsert(it *Item) error {
	if it == nil {
		return ErrNilItem
	}
	if it.list != nil {
		return ErrAlreadyLinked
	}
	return nil
}

func (l *ItemList) link(it *Item, e *list.Element) {
	it.list = l
	it.elem = e
}

func itemOf(e *list.Element) *Item {
	if e == nil {
		return nil
	}
	return e.Value.(*Item)
}
