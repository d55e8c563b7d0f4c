package item

import "testing"

func foodToken(id ID, count Num) *Token {
	it := Item{Kind: KindFood, Count: count, Food: FoodRation, Attr: AttrStackable}
	return &Token{id: id, item: &it}
}

func TestItemBoxAddAllocatesLowestFreeSlot(t *testing.T) {
	box := NewItemBox(3)
	tok := &Token{id: 1, item: &Item{Kind: KindGold, Count: 1}}
	if !box.Add(tok) {
		t.Fatal("Add should succeed in an empty box")
	}
	got, ok := box.Slot(0)
	if !ok || got != tok {
		t.Fatal("Add should have allocated slot 0")
	}
	if box.free.Contains(0) {
		t.Fatal("slot 0 must be removed from the free set once occupied, not re-inserted (the source's add() bug)")
	}
}

func TestItemBoxAddMergesStackableSameKind(t *testing.T) {
	box := NewItemBox(3)
	box.Add(foodToken(1, 2))
	box.Add(foodToken(2, 3))
	if box.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after merging two stackable food items", box.Len())
	}
	tok, _ := box.Slot(0)
	if tok.Get().Count != 5 {
		t.Errorf("merged count = %d, want 5", tok.Get().Count)
	}
}

func TestItemBoxAddFailsWhenFull(t *testing.T) {
	box := NewItemBox(1)
	box.Add(&Token{id: 1, item: &Item{Kind: KindGold, Count: 1}})
	if box.Add(&Token{id: 2, item: &Item{Kind: KindArmor, Count: 1}}) {
		t.Fatal("Add should fail once every slot is occupied and no merge applies")
	}
}

func TestItemBoxRemoveFreesSlot(t *testing.T) {
	box := NewItemBox(2)
	tok := &Token{id: 1, item: &Item{Kind: KindGold, Count: 1}}
	box.Add(tok)
	removed, ok := box.Remove(0)
	if !ok || removed != tok {
		t.Fatal("Remove should return the token that occupied the slot")
	}
	if box.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Remove", box.Len())
	}
	if !box.free.Contains(0) {
		t.Fatal("Remove should return the slot to the free set")
	}
}
