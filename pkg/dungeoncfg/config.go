// Package dungeoncfg specifies the single configuration document that
// builds a whole runtime: global dimensions and seed, the rogue-style
// dungeon generator's tuning knobs, item/enemy catalogs, player
// defaults, and the keymap. It mirrors the teacher's Load/Validate/Hash
// pattern: every field carries both a yaml and a json tag, and
// LoadConfig/LoadConfigFromBytes parse through gopkg.in/yaml.v3 (a
// strict superset of JSON), so either a .yaml or a .json document
// loads through the same path, exactly as pkg/dungeon/config.go does.
package dungeoncfg

import (
	"crypto/sha256"
	"encoding/json"
	"math"
	"math/big"
	"os"

	"github.com/rogue-core/roguecore/pkg/rerr"
	"gopkg.in/yaml.v3"
)

// Seed is a 128-bit master seed. The wire format accepts either a plain
// JSON number (when it fits in 64 bits) or a decimal string, since JSON
// numbers cannot losslessly carry 128 bits. Internally every subsystem
// RNG is still derived through a 64-bit math/rand source (see
// pkg/rng); Fold combines both seed halves into that single uint64 so
// the full 128 bits of entropy the config accepted still affect the
// derived per-subsystem streams.
type Seed struct {
	Hi uint64
	Lo uint64
}

// NewSeedFromUint64 builds a Seed whose low word is v and whose high
// word is zero.
func NewSeedFromUint64(v uint64) Seed { return Seed{Lo: v} }

// IsZero reports whether the seed is the all-zero value. Config loading
// does not call it: a zero seed is used as is.
func (s Seed) IsZero() bool { return s.Hi == 0 && s.Lo == 0 }

// Fold combines the two 64-bit halves into the single uint64 handed to
// rng.NewRNG as the master seed.
func (s Seed) Fold() uint64 { return s.Hi*0x9E3779B97F4A7C15 ^ s.Lo }

// MarshalJSON emits the seed as a decimal string when it exceeds 64
// bits, or a plain JSON number otherwise, matching common u128-as-JSON
// conventions.
func (s Seed) MarshalJSON() ([]byte, error) {
	if s.Hi == 0 {
		return json.Marshal(s.Lo)
	}
	v := new(big.Int).Lsh(new(big.Int).SetUint64(s.Hi), 64)
	v.Or(v, new(big.Int).SetUint64(s.Lo))
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (s *Seed) UnmarshalJSON(data []byte) error {
	var asNumber uint64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		s.Hi, s.Lo = 0, asNumber
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return rerr.Wrap(rerr.CodeJSON, "seed must be a number or decimal string", err)
	}
	v, ok := new(big.Int).SetString(asString, 10)
	if !ok {
		return rerr.Newf(rerr.CodeJSON, "seed %q is not a valid decimal integer", asString)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(v, mask)
	hi := new(big.Int).Rsh(v, 64)
	s.Lo = lo.Uint64()
	s.Hi = hi.Uint64()
	return nil
}

// MarshalYAML emits the same decimal-string-or-number shape MarshalJSON
// does, so a seed round-trips identically through either format.
func (s Seed) MarshalYAML() (interface{}, error) {
	if s.Hi == 0 {
		return s.Lo, nil
	}
	v := new(big.Int).Lsh(new(big.Int).SetUint64(s.Hi), 64)
	v.Or(v, new(big.Int).SetUint64(s.Lo))
	return v.String(), nil
}

// UnmarshalYAML accepts a YAML/JSON number or a decimal string, mirroring
// UnmarshalJSON.
func (s *Seed) UnmarshalYAML(value *yaml.Node) error {
	var asNumber uint64
	if err := value.Decode(&asNumber); err == nil {
		s.Hi, s.Lo = 0, asNumber
		return nil
	}
	var asString string
	if err := value.Decode(&asString); err != nil {
		return rerr.Wrap(rerr.CodeJSON, "seed must be a number or decimal string", err)
	}
	v, ok := new(big.Int).SetString(asString, 10)
	if !ok {
		return rerr.Newf(rerr.CodeJSON, "seed %q is not a valid decimal integer", asString)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(v, mask)
	hi := new(big.Int).Rsh(v, 64)
	s.Lo = lo.Uint64()
	s.Hi = hi.Uint64()
	return nil
}

// SeedRange is an inclusive [Lo, Hi] seed range. It is parsed with the
// config document, but nothing in this module reads it to draw a seed.
type SeedRange struct {
	Lo Seed `yaml:"lo" json:"lo"`
	Hi Seed `yaml:"hi" json:"hi"`
}

// Coord2 is a simple (x, y) pair used for min_room_size.
type Coord2 struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// RogueDungeonCfg tunes the rogue-style floor generator. Field defaults
// mirror the source's compiled-in constants; LoadConfig fills in any
// unset field.
type RogueDungeonCfg struct {
	Style                string `yaml:"style" json:"style"`
	RoomNumX             int    `yaml:"room_num_x" json:"room_num_x"`
	RoomNumY             int    `yaml:"room_num_y" json:"room_num_y"`
	MinRoomSize          Coord2 `yaml:"min_room_size" json:"min_room_size"`
	EnableTrap           bool   `yaml:"enable_trap" json:"enable_trap"`
	MaxEmptyRooms        int    `yaml:"max_empty_rooms" json:"max_empty_rooms"`
	AmuletLevel          int    `yaml:"amulet_level" json:"amulet_level"`
	MazeRateInv          int    `yaml:"maze_rate_inv" json:"maze_rate_inv"`
	DarkLevel            int    `yaml:"dark_level" json:"dark_level"`
	HiddenPassageRateInv int    `yaml:"hidden_passage_rate_inv" json:"hidden_passage_rate_inv"`
	LockedDoorRateInv    int    `yaml:"locked_door_rate_inv" json:"locked_door_rate_inv"`
	MaxExtraEdges        int    `yaml:"max_extra_edges" json:"max_extra_edges"`
	DoorUnlockRateInv    int    `yaml:"door_unlock_rate_inv" json:"door_unlock_rate_inv"`
	PassageUnlockRateInv int    `yaml:"passage_unlock_rate_inv" json:"passage_unlock_rate_inv"`
}

func defaultRogueDungeonCfg() RogueDungeonCfg {
	return RogueDungeonCfg{
		Style:                "rogue",
		RoomNumX:             3,
		RoomNumY:             3,
		MinRoomSize:          Coord2{X: 4, Y: 4},
		EnableTrap:           true,
		MaxEmptyRooms:        3,
		AmuletLevel:          25,
		MazeRateInv:          15,
		DarkLevel:            10,
		HiddenPassageRateInv: 40,
		LockedDoorRateInv:    5,
		MaxExtraEdges:        5,
		DoorUnlockRateInv:    5,
		PassageUnlockRateInv: 3,
	}
}

// Validate checks the rogue dungeon's fields are within documented bounds.
func (c *RogueDungeonCfg) Validate() error {
	if c.Style != "rogue" {
		return rerr.Newf(rerr.CodeInvalidSetting, "dungeon.style %q is not supported (only \"rogue\")", c.Style)
	}
	if c.RoomNumX <= 0 || c.RoomNumY <= 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "room_num_x/room_num_y must be positive, got %dx%d", c.RoomNumX, c.RoomNumY)
	}
	if c.MinRoomSize.X < 2 || c.MinRoomSize.Y < 2 {
		return rerr.Newf(rerr.CodeInvalidSetting, "min_room_size must be at least 2x2, got %dx%d", c.MinRoomSize.X, c.MinRoomSize.Y)
	}
	if c.MaxEmptyRooms < 0 || c.MaxEmptyRooms > c.RoomNumX*c.RoomNumY {
		return rerr.Newf(rerr.CodeInvalidSetting, "max_empty_rooms %d out of range for a %dx%d grid", c.MaxEmptyRooms, c.RoomNumX, c.RoomNumY)
	}
	for name, v := range map[string]int{
		"maze_rate_inv":           c.MazeRateInv,
		"hidden_passage_rate_inv": c.HiddenPassageRateInv,
		"locked_door_rate_inv":    c.LockedDoorRateInv,
		"door_unlock_rate_inv":    c.DoorUnlockRateInv,
		"passage_unlock_rate_inv": c.PassageUnlockRateInv,
	} {
		if v <= 0 {
			return rerr.Newf(rerr.CodeInvalidSetting, "%s must be positive, got %d", name, v)
		}
	}
	if c.DarkLevel < 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "dark_level must be >= 0, got %d", c.DarkLevel)
	}
	if c.MaxExtraEdges < 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "max_extra_edges must be >= 0, got %d", c.MaxExtraEdges)
	}
	return nil
}

// GoldCfg tunes gold placement.
type GoldCfg struct {
	RateInv  int `yaml:"rate_inv" json:"rate_inv"`
	Base     int `yaml:"base" json:"base"`
	PerLevel int `yaml:"per_level" json:"per_level"`
	Minimum  int `yaml:"minimum" json:"minimum"`
}

func defaultGoldCfg() GoldCfg {
	return GoldCfg{RateInv: 2, Base: 50, PerLevel: 10, Minimum: 2}
}

// CatalogEntry describes one weapon/armor catalog entry's generation weight.
type CatalogEntry struct {
	Name   string `yaml:"name" json:"name"`
	Rarity int    `yaml:"rarity" json:"rarity"`
}

// GearCfg tunes a weapon or armor catalog: its entries plus cursed/powerup
// roll percentages.
type GearCfg struct {
	Catalog       []CatalogEntry `yaml:"catalog" json:"catalog"`
	CursedPercent int            `yaml:"cursed_percent" json:"cursed_percent"`
	PowerupPercent int           `yaml:"powerup_percent" json:"powerup_percent"`
}

// ItemCfg is the top-level item subsystem configuration.
type ItemCfg struct {
	Gold   GoldCfg `yaml:"gold" json:"gold"`
	Weapon GearCfg `yaml:"weapon" json:"weapon"`
	Armor  GearCfg `yaml:"armor" json:"armor"`
}

func defaultItemCfg() ItemCfg {
	return ItemCfg{
		Gold: defaultGoldCfg(),
		Weapon: GearCfg{
			Catalog: []CatalogEntry{
				{Name: "dagger", Rarity: 5}, {Name: "mace", Rarity: 4},
				{Name: "long_sword", Rarity: 3}, {Name: "two_handed_sword", Rarity: 2}, {Name: "bow", Rarity: 1},
			},
			CursedPercent: 10, PowerupPercent: 10,
		},
		Armor: GearCfg{
			Catalog: []CatalogEntry{
				{Name: "leather", Rarity: 5}, {Name: "ring_mail", Rarity: 4},
				{Name: "chain_mail", Rarity: 3}, {Name: "banded_mail", Rarity: 2}, {Name: "plate_mail", Rarity: 1},
			},
			CursedPercent: 10, PowerupPercent: 10,
		},
	}
}

func (c *ItemCfg) Validate() error {
	if c.Gold.RateInv <= 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "item.gold.rate_inv must be positive, got %d", c.Gold.RateInv)
	}
	for _, g := range []struct {
		name string
		cfg  GearCfg
	}{{"weapon", c.Weapon}, {"armor", c.Armor}} {
		if len(g.cfg.Catalog) == 0 {
			return rerr.Newf(rerr.CodeInvalidSetting, "item.%s.catalog must not be empty", g.name)
		}
		if g.cfg.CursedPercent < 0 || g.cfg.CursedPercent > 100 {
			return rerr.Newf(rerr.CodeInvalidSetting, "item.%s.cursed_percent must be in [0,100], got %d", g.name, g.cfg.CursedPercent)
		}
		if g.cfg.PowerupPercent < 0 || g.cfg.PowerupPercent > 100 {
			return rerr.Newf(rerr.CodeInvalidSetting, "item.%s.powerup_percent must be in [0,100], got %d", g.name, g.cfg.PowerupPercent)
		}
	}
	return nil
}

// EnemyStatusCfg describes one custom enemy entry.
type EnemyStatusCfg struct {
	Name       string `yaml:"name" json:"name"`
	Tile       string `yaml:"tile" json:"tile"`
	Level      int    `yaml:"level" json:"level"`
	Attack     []Dice `yaml:"attack" json:"attack"`
	Defense    int    `yaml:"defense" json:"defense"`
	Exp        int    `yaml:"exp" json:"exp"`
	Gold       int    `yaml:"gold" json:"gold"`
	Attributes []string `yaml:"attributes" json:"attributes"`
	Rarity     int    `yaml:"rarity" json:"rarity"`
}

// Dice is an n-dice-of-sides damage roll, e.g. {N: 2, Sides: 6} == "2d6".
type Dice struct {
	N     int `yaml:"n" json:"n"`
	Sides int `yaml:"sides" json:"sides"`
}

// EnemiesCfg selects either the built-in catalog subset or a fully
// custom roster.
type EnemiesCfg struct {
	Typ              string           `yaml:"typ" json:"typ"`
	Include          []int            `yaml:"include,omitempty" json:"include,omitempty"`
	Custom           []EnemyStatusCfg `yaml:"custom,omitempty" json:"custom,omitempty"`
	AppearRateGold   int              `yaml:"appear_rate_gold" json:"appear_rate_gold"`
	AppearRateNogold int              `yaml:"appear_rate_nogold" json:"appear_rate_nogold"`
}

func defaultEnemiesCfg() EnemiesCfg {
	include := make([]int, 26)
	for i := range include {
		include[i] = i
	}
	return EnemiesCfg{Typ: "rogue", Include: include, AppearRateGold: 80, AppearRateNogold: 25}
}

func (c *EnemiesCfg) Validate() error {
	switch c.Typ {
	case "rogue":
		for _, idx := range c.Include {
			if idx < 0 || idx >= 26 {
				return rerr.Newf(rerr.CodeInvalidSetting, "enemies.include index %d out of range [0,26)", idx)
			}
		}
	case "custom":
		if len(c.Custom) == 0 {
			return rerr.New(rerr.CodeInvalidSetting, "enemies.custom must not be empty when typ is \"custom\"")
		}
	default:
		return rerr.Newf(rerr.CodeInvalidSetting, "enemies.typ %q must be \"rogue\" or \"custom\"", c.Typ)
	}
	if c.AppearRateGold < 0 || c.AppearRateGold > 100 {
		return rerr.Newf(rerr.CodeInvalidSetting, "appear_rate_gold must be in [0,100], got %d", c.AppearRateGold)
	}
	if c.AppearRateNogold < 0 || c.AppearRateNogold > 100 {
		return rerr.Newf(rerr.CodeInvalidSetting, "appear_rate_nogold must be in [0,100], got %d", c.AppearRateNogold)
	}
	return nil
}

// InitItemCfg describes one starting inventory entry.
type InitItemCfg struct {
	Kind  string `yaml:"kind" json:"kind"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Count int    `yaml:"count" json:"count"`
}

// PlayerCfg tunes the player's starting stats and leveling curve.
type PlayerCfg struct {
	LevelExps     []int         `yaml:"level" json:"level"`
	HungerTime    int           `yaml:"hunger_time" json:"hunger_time"`
	InitHP        int           `yaml:"init_hp" json:"init_hp"`
	InitStr       int           `yaml:"init_str" json:"init_str"`
	MaxItems      int           `yaml:"max_items" json:"max_items"`
	InitItems     []InitItemCfg `yaml:"init_items" json:"init_items"`
	HealThreshold int           `yaml:"heal_threshold" json:"heal_threshold"`
}

func defaultPlayerCfg() PlayerCfg {
	return PlayerCfg{
		LevelExps: []int{
			10, 20, 40, 80, 160, 320, 640, 1300, 2600, 5200,
			13000, 26000, 50000, 100000, 200000, 400000, 800000,
			2000000, 4000000, 8000000, math.MaxInt32,
		},
		HungerTime: 1300,
		InitHP:     12,
		InitStr:    16,
		MaxItems:   27,
		InitItems: []InitItemCfg{
			{Kind: "food", Count: 1},
			{Kind: "gold", Count: 0},
			{Kind: "armor", Name: "leather", Count: 1},
			{Kind: "weapon", Name: "dagger", Count: 1},
		},
		HealThreshold: 20,
	}
}

func (c *PlayerCfg) Validate() error {
	if len(c.LevelExps) == 0 {
		return rerr.New(rerr.CodeInvalidSetting, "player.level must list at least one exp threshold")
	}
	if c.HungerTime <= 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "hunger_time must be positive, got %d", c.HungerTime)
	}
	if c.InitHP <= 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "init_hp must be positive, got %d", c.InitHP)
	}
	if c.InitStr <= 0 {
		return rerr.Newf(rerr.CodeInvalidSetting, "init_str must be positive, got %d", c.InitStr)
	}
	if c.MaxItems <= 0 || c.MaxItems > 27 {
		return rerr.Newf(rerr.CodeInvalidSetting, "max_items must be in (0,27], got %d", c.MaxItems)
	}
	return nil
}

// Config is the single top-level document that constructs a runtime.
type Config struct {
	Width       int         `yaml:"width" json:"width"`
	Height      int         `yaml:"height" json:"height"`
	Seed        Seed        `yaml:"seed" json:"seed"`
	SeedRange   *SeedRange  `yaml:"seed_range,omitempty" json:"seed_range,omitempty"`
	HideDungeon bool        `yaml:"hide_dungeon" json:"hide_dungeon"`
	Dungeon     RogueDungeonCfg `yaml:"dungeon" json:"dungeon"`
	Item        ItemCfg     `yaml:"item" json:"item"`
	Enemies     EnemiesCfg  `yaml:"enemies" json:"enemies"`
	Player      PlayerCfg   `yaml:"player" json:"player"`
	Keymap      map[string]string `yaml:"keymap,omitempty" json:"keymap,omitempty"`
}

// Default returns a Config populated entirely with documented defaults.
// Seed is left zero, and neither Default nor LoadConfig fills it from
// SeedRange or any other source.
func Default() Config {
	return Config{
		Width:       80,
		Height:      24,
		HideDungeon: true,
		Dungeon:     defaultRogueDungeonCfg(),
		Item:        defaultItemCfg(),
		Enemies:     defaultEnemiesCfg(),
		Player:      defaultPlayerCfg(),
	}
}

// LoadConfig reads and validates a JSON configuration file, filling any
// zero-valued field with its documented default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerr.Wrap(rerr.CodeJSON, "reading config file", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses a YAML or JSON configuration document
// (YAML is a superset of JSON, so both decode through the same
// unmarshaler), merging documented defaults for anything left unset.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, rerr.Wrap(rerr.CodeJSON, "parsing config", err)
	}
	if cfg.Width == 0 {
		cfg.Width = 80
	}
	if cfg.Height == 0 {
		cfg.Height = 24
	}
	if len(cfg.Item.Weapon.Catalog) == 0 && len(cfg.Item.Armor.Catalog) == 0 {
		// caller supplied an item block but left the catalogs empty;
		// fall back to the full default catalogs rather than an
		// unusable empty one.
		cfg.Item = defaultItemCfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, rerr.Wrap(rerr.CodeInvalidSetting, "validating config", err)
	}
	return &cfg, nil
}

// Validate checks every nested block against its documented bounds.
func (c *Config) Validate() error {
	if c.Width < 32 || c.Width > 160 {
		return rerr.Newf(rerr.CodeInvalidSetting, "width must be in [32,160], got %d", c.Width)
	}
	if c.Height < 16 || c.Height > 48 {
		return rerr.Newf(rerr.CodeInvalidSetting, "height must be in [16,48], got %d", c.Height)
	}
	if err := c.Dungeon.Validate(); err != nil {
		return rerr.Wrap(rerr.CodeInvalidSetting, "dungeon", err)
	}
	if err := c.Item.Validate(); err != nil {
		return rerr.Wrap(rerr.CodeInvalidSetting, "item", err)
	}
	if err := c.Enemies.Validate(); err != nil {
		return rerr.Wrap(rerr.CodeInvalidSetting, "enemies", err)
	}
	if err := c.Player.Validate(); err != nil {
		return rerr.Wrap(rerr.CodeInvalidSetting, "player", err)
	}
	return nil
}

// ToJSON serializes the config back to canonical JSON bytes.
func (c *Config) ToJSON() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, rerr.Wrap(rerr.CodeJSON, "marshaling config", err)
	}
	return data, nil
}

// Hash computes a deterministic SHA-256 digest of the configuration,
// used to derive every subsystem's per-stage RNG seed.
func (c *Config) Hash() []byte {
	data, err := c.ToJSON()
	if err != nil {
		// Fallback: hash just the seed so generation can still proceed
		// deterministically even if an exotic field fails to marshal.
		h := sha256.New()
		h.Write([]byte{byte(c.Seed.Hi), byte(c.Seed.Lo)})
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}
