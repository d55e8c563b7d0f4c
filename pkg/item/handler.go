package item

import (
	"weak"

	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// Handler owns every item-generating subsystem: the weapon and armor
// catalogs, gold placement, and the by-id registry used to look up a
// still-live item without extending its lifetime. It implements
// dungeon.ItemPlacer so a Dungeon can hand it one call per Normal room
// during floor generation.
type Handler struct {
	goldCfg         dungeoncfg.GoldCfg
	amuletLevel     int
	amuletRetrieved bool

	rng     *rng.RNG
	weapons *WeaponHandler
	armors  *ArmorHandler

	nextID   ID
	registry map[ID]weak.Pointer[Item]
	ground   map[tile.Coord]*Token
}

// NewHandler builds a Handler whose RNG is derived the same way every
// other subsystem derives its stream, so identical configs reproduce
// identical item placement regardless of construction order.
func NewHandler(cfg dungeoncfg.Config, masterSeed uint64, configHash []byte) (*Handler, error) {
	weapons, err := NewWeaponHandler(cfg.Item.Weapon)
	if err != nil {
		return nil, err
	}
	armors, err := NewArmorHandler(cfg.Item.Armor)
	if err != nil {
		return nil, err
	}
	return &Handler{
		goldCfg:     cfg.Item.Gold,
		amuletLevel: cfg.Dungeon.AmuletLevel,
		rng:         rng.NewRNG(masterSeed, "item", configHash),
		weapons:     weapons,
		armors:      armors,
		registry:    make(map[ID]weak.Pointer[Item]),
		ground:      make(map[tile.Coord]*Token),
	}, nil
}

// SetAmuletRetrieved records whether the player is carrying the
// amulet, gating further gold placement the way the source's
// setup_gold gate ("amulet not retrieved, or level >= amulet_level")
// describes.
func (h *Handler) SetAmuletRetrieved(v bool) { h.amuletRetrieved = v }

// gen wraps item in a fresh Token and registers a weak reference to it
// under a new id, for by-id lookup without keeping it alive.
func (h *Handler) gen(it Item) *Token {
	id := h.nextID
	h.nextID++
	tok := &Token{id: id, item: &it}
	h.registry[id] = weak.Make(tok.item)
	return tok
}

// Lookup returns the still-live item registered under id, pruning the
// entry if it has already been collected (every Token referencing it
// is gone).
func (h *Handler) Lookup(id ID) (*Item, bool) {
	w, ok := h.registry[id]
	if !ok {
		return nil, false
	}
	it := w.Value()
	if it == nil {
		delete(h.registry, id)
		return nil, false
	}
	return it, true
}

// SetupGold rolls whether level's current room gets a gold pile and,
// if so, returns a registered Token for it.
func (h *Handler) SetupGold(level int) (*Token, bool) {
	num, ok := GenGold(h.goldCfg, h.rng, level)
	if !ok {
		return nil, false
	}
	return h.gen(Item{Kind: KindGold, Count: num, Attr: AttrStackable}), true
}

// GenWeapon draws a weighted-random weapon and registers it.
func (h *Handler) GenWeapon() *Token { return h.gen(h.weapons.Gen(h.rng)) }

// GenArmor draws a weighted-random suit of armor and registers it.
func (h *Handler) GenArmor() *Token { return h.gen(h.armors.Gen(h.rng)) }

// SetupRoom implements dungeon.ItemPlacer: once per Normal room during
// floor generation, it rolls gold placement (gated on amulet state per
// amuletLevel) and, on a hit, drops the pile on a uniformly chosen
// interior cell.
func (h *Handler) SetupRoom(level int, interior dungeon.Rect, occupy func(tile.Coord)) {
	if h.amuletRetrieved && level < h.amuletLevel {
		return
	}
	tok, ok := h.SetupGold(level)
	if !ok {
		return
	}
	area := interior.Area()
	if area <= 0 {
		return
	}
	c := interior.Nth(h.rng.Intn(area))
	occupy(c)
	h.ground[c] = tok
}

// GroundAt returns the item token sitting on c, if any.
func (h *Handler) GroundAt(c tile.Coord) (*Token, bool) {
	tok, ok := h.ground[c]
	return tok, ok
}

// TakeGround removes and returns the item token sitting on c, if any,
// for the caller (the floor's pickup logic) to hand to the player.
func (h *Handler) TakeGround(c tile.Coord) (*Token, bool) {
	tok, ok := h.ground[c]
	if ok {
		delete(h.ground, c)
	}
	return tok, ok
}

// InitPlayerItems builds and adds one token per entry in specs to box,
// in order. An unknown weapon/armor name or a full box is reported as
// an error rather than silently dropped.
func (h *Handler) InitPlayerItems(box *ItemBox, specs []dungeoncfg.InitItemCfg) error {
	for _, spec := range specs {
		it, err := h.buildInitItem(spec)
		if err != nil {
			return err
		}
		tok := h.gen(it)
		if !box.Add(tok) {
			return rerr.Newf(rerr.CodeInvalidSetting, "InitPlayerItems: no room for starting %s", spec.Kind)
		}
	}
	return nil
}

func (h *Handler) buildInitItem(spec dungeoncfg.InitItemCfg) (Item, error) {
	switch spec.Kind {
	case "food":
		return Item{Kind: KindFood, Food: FoodRation, Count: Num(spec.Count), Attr: AttrStackable}, nil
	case "gold":
		return Item{Kind: KindGold, Count: Num(spec.Count), Attr: AttrStackable}, nil
	case "weapon":
		it, ok := h.weapons.Named(spec.Name)
		if !ok {
			return Item{}, rerr.Newf(rerr.CodeInvalidSetting, "player.init_items: unknown weapon %q", spec.Name)
		}
		it.Count = Num(spec.Count)
		return it, nil
	case "armor":
		it, ok := h.armors.Named(spec.Name, 0)
		if !ok {
			return Item{}, rerr.Newf(rerr.CodeInvalidSetting, "player.init_items: unknown armor %q", spec.Name)
		}
		return it, nil
	default:
		return Item{}, rerr.Newf(rerr.CodeInvalidSetting, "player.init_items: unknown kind %q", spec.Kind)
	}
}
