package item

import (
	"sort"

	"github.com/rogue-core/roguecore/pkg/indexedset"
)

// ItemBox is the player's inventory: a fixed number of slots, each
// holding at most one Token, with a Fenwick-indexed set of free slots
// so the lowest free slot can be found in O(log n). Adding a stackable
// item first searches for a same-kind slot to merge into; only on a
// miss does it allocate a fresh slot.
//
// The source's equivalent (core/src/item/itembox.rs) has its public
// add() re-insert the consumed slot into empty_chars instead of
// removing it — the opposite of what its own private insert() helper
// does for the entry()/InsertEntry path it otherwise shares. Add here
// follows the correct (remove-on-insert) behavior throughout.
type ItemBox struct {
	free  *indexedset.Set
	slots map[int]*Token
}

// NewItemBox creates an empty box with the given slot capacity.
func NewItemBox(capacity int) *ItemBox {
	return &ItemBox{
		free:  indexedset.FromRange(capacity),
		slots: make(map[int]*Token),
	}
}

// Len reports how many slots are currently occupied.
func (b *ItemBox) Len() int { return len(b.slots) }

// Full reports whether every slot is occupied.
func (b *ItemBox) Full() bool { return b.free.Len() == 0 }

// Slot returns the token in the given slot, if any.
func (b *ItemBox) Slot(slot int) (*Token, bool) {
	t, ok := b.slots[slot]
	return t, ok
}

// Tokens returns every occupied slot's token, in ascending slot order.
func (b *ItemBox) Tokens() []*Token {
	slots := make([]int, 0, len(b.slots))
	for slot := range b.slots {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	out := make([]*Token, 0, len(slots))
	for _, slot := range slots {
		out = append(out, b.slots[slot])
	}
	return out
}

// findMergeSlot returns the lowest slot holding an existing stackable
// item of the same kind as tok, if any.
func (b *ItemBox) findMergeSlot(tok *Token) (int, bool) {
	if !tok.Get().IsMany() {
		return 0, false
	}
	best, found := 0, false
	for slot, existing := range b.slots {
		if existing.Get().Kind != tok.Get().Kind || !existing.Get().IsMany() {
			continue
		}
		if !found || slot < best {
			best, found = slot, true
		}
	}
	return best, found
}

// Add inserts tok into the box: merging it into a same-kind stackable
// slot if one exists, or allocating the lowest free slot otherwise.
// Returns false if the box is full and no merge was possible.
func (b *ItemBox) Add(tok *Token) bool {
	if slot, ok := b.findMergeSlot(tok); ok {
		b.slots[slot].Get().Merge(tok.Get())
		return true
	}
	if b.free.Len() == 0 {
		return false
	}
	slot := b.free.Nth(0)
	b.slots[slot] = tok
	b.free.Remove(slot)
	return true
}

// FindBy returns the lowest-slot token for which query returns true,
// scanning in ascending slot order so the result is deterministic.
func (b *ItemBox) FindBy(query func(*Item) bool) (*Token, bool) {
	for _, tok := range b.Tokens() {
		if query(tok.Get()) {
			return tok, true
		}
	}
	return nil, false
}

// Remove frees the given slot and returns the token that occupied it.
func (b *ItemBox) Remove(slot int) (*Token, bool) {
	tok, ok := b.slots[slot]
	if !ok {
		return nil, false
	}
	delete(b.slots, slot)
	b.free.Insert(slot)
	return tok, true
}
