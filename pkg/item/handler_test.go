package item

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/tile"
)

func TestNewHandlerRejectsUnknownCatalogEntry(t *testing.T) {
	cfg := dungeoncfg.Default()
	cfg.Item.Weapon.Catalog = append(cfg.Item.Weapon.Catalog, dungeoncfg.CatalogEntry{Name: "lightsaber", Rarity: 1})
	if _, err := NewHandler(cfg, 1, nil); err == nil {
		t.Fatal("expected an error for an unrecognized weapon in the config catalog")
	}
}

func TestHandlerSetupRoomPlacesGoldWhenNotGated(t *testing.T) {
	cfg := dungeoncfg.Default()
	cfg.Item.Gold.RateInv = 1
	h, err := NewHandler(cfg, 2, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	interior := dungeon.NewRect(tile.Coord{X: 1, Y: 1}, 3, 3)
	var occupied []tile.Coord
	h.SetupRoom(1, interior, func(c tile.Coord) { occupied = append(occupied, c) })
	if len(occupied) != 1 {
		t.Fatalf("expected exactly one occupied cell, got %d", len(occupied))
	}
	if !interior.Contains(occupied[0]) {
		t.Fatalf("occupied cell %v outside the room's interior %v", occupied[0], interior)
	}
	if _, ok := h.GroundAt(occupied[0]); !ok {
		t.Fatal("SetupRoom should register the gold token at the occupied ground coordinate")
	}
}

func TestHandlerSetupRoomGatedAfterAmulet(t *testing.T) {
	cfg := dungeoncfg.Default()
	cfg.Item.Gold.RateInv = 1
	cfg.Dungeon.AmuletLevel = 10
	h, err := NewHandler(cfg, 3, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	h.SetAmuletRetrieved(true)
	interior := dungeon.NewRect(tile.Coord{X: 0, Y: 0}, 3, 3)
	var occupied int
	h.SetupRoom(5, interior, func(c tile.Coord) { occupied++ })
	if occupied != 0 {
		t.Fatal("once the amulet is retrieved, gold should stop appearing below amulet_level")
	}
}

func TestInitPlayerItemsBuildsDefaultLoadout(t *testing.T) {
	cfg := dungeoncfg.Default()
	h, err := NewHandler(cfg, 4, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	box := NewItemBox(cfg.Player.MaxItems)
	if err := h.InitPlayerItems(box, cfg.Player.InitItems); err != nil {
		t.Fatalf("InitPlayerItems: %v", err)
	}
	if box.Len() != len(cfg.Player.InitItems) {
		t.Fatalf("box has %d slots filled, want %d", box.Len(), len(cfg.Player.InitItems))
	}
}

func TestLookupFindsStillReferencedItem(t *testing.T) {
	cfg := dungeoncfg.Default()
	h, err := NewHandler(cfg, 5, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	tok := h.GenWeapon()
	id := tok.ID()
	if _, ok := h.Lookup(id); !ok {
		t.Fatal("Lookup should find a freshly generated, still-referenced item")
	}
}
