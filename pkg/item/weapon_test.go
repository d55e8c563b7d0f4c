package item

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
)

func weaponCatalog() dungeoncfg.GearCfg {
	return dungeoncfg.GearCfg{
		Catalog:        []dungeoncfg.CatalogEntry{{Name: "dagger", Rarity: 1}, {Name: "mace", Rarity: 1}},
		CursedPercent:  10,
		PowerupPercent: 5,
	}
}

func TestNewWeaponHandlerRejectsUnknownName(t *testing.T) {
	cfg := weaponCatalog()
	cfg.Catalog = append(cfg.Catalog, dungeoncfg.CatalogEntry{Name: "lightsaber", Rarity: 1})
	if _, err := NewWeaponHandler(cfg); err == nil {
		t.Fatal("expected an error for an unrecognized weapon name")
	}
}

func TestWeaponHandlerGenOnlyDrawsFromCatalog(t *testing.T) {
	h, err := NewWeaponHandler(weaponCatalog())
	if err != nil {
		t.Fatalf("NewWeaponHandler: %v", err)
	}
	r := rng.NewRNG(1, "item", nil)
	for i := 0; i < 200; i++ {
		it := h.Gen(r)
		if it.Kind != KindWeapon {
			t.Fatalf("Gen produced kind %v, want KindWeapon", it.Kind)
		}
		if it.Weapon.Name != "dagger" && it.Weapon.Name != "mace" {
			t.Fatalf("Gen produced %q, outside the configured catalog", it.Weapon.Name)
		}
	}
}

func TestWeaponHandlerNamedExactMatch(t *testing.T) {
	h, err := NewWeaponHandler(weaponCatalog())
	if err != nil {
		t.Fatalf("NewWeaponHandler: %v", err)
	}
	it, ok := h.Named("dagger")
	if !ok {
		t.Fatal("Named(\"dagger\") should succeed, dagger is builtin")
	}
	if it.Weapon.Name != "dagger" || it.Attr.Has(AttrCursed) {
		t.Errorf("Named should build the exact weapon with no cursed roll, got %+v", it.Weapon)
	}
}

func TestWeaponHandlerNamedUnknown(t *testing.T) {
	h, err := NewWeaponHandler(weaponCatalog())
	if err != nil {
		t.Fatalf("NewWeaponHandler: %v", err)
	}
	if _, ok := h.Named("lightsaber"); ok {
		t.Fatal("Named should report false for a weapon not in the builtin table")
	}
}
