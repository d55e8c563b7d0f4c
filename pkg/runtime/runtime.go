package runtime

import (
	"encoding/json"

	"github.com/rogue-core/roguecore/pkg/action"
	"github.com/rogue-core/roguecore/pkg/character"
	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/item"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// Runtime is the API entry point one running episode is driven
// through: build it once from a config, then feed it input and read
// back reactions, the status line, and the screen. Ported from
// lib.rs's RunTime/GameConfig::build.
type Runtime struct {
	cfg         dungeoncfg.Config
	state       *action.State
	ui          UiState
	savedInputs []InputCode
	Keymap      Keymap
}

// New builds a fresh episode: the item and enemy catalogs, the first
// dungeon floor, the player's starting inventory, and places the
// player on that floor, per GameConfig::build.
func New(cfg dungeoncfg.Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configHash := cfg.Hash()
	seed := cfg.Seed.Fold()

	items, err := item.NewHandler(cfg, seed, configHash)
	if err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "runtime.New: building item handler", err)
	}
	enemies, err := character.NewEnemyHandler(cfg.Enemies, seed, configHash)
	if err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "runtime.New: building enemy handler", err)
	}
	placer := &action.RoomPlacer{Items: items, Enemies: enemies}
	dg, err := dungeon.New(cfg, seed, configHash, placer)
	if err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "runtime.New: generating dungeon", err)
	}
	player := character.NewPlayer(cfg.Player)
	if err := player.InitItems(items); err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "runtime.New: stocking starting items", err)
	}

	st := &action.State{Dungeon: dg, Items: items, Player: player, Enemies: enemies}
	if err := action.EnterNewLevel(st, true); err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "runtime.New: entering first level", err)
	}

	keymap := DefaultKeymap()
	if len(cfg.Keymap) > 0 {
		keymap, err = keymap.ApplyOverrides(cfg.Keymap)
		if err != nil {
			return nil, err
		}
	}

	return &Runtime{
		cfg:    cfg,
		state:  st,
		ui:     DungeonUI,
		Keymap: keymap,
	}, nil
}

// checkInterrupting handles a system input raised while the dungeon
// screen, rather than a modal, is active: Quit and Inventory each
// raise their modal; Save is not supported; anything else (Enter,
// Continue, Yes, No) is simply ignored input, per RunTime's
// check_interrupting.
func (rt *Runtime) checkInterrupting(sys System) ([]action.Reaction, error) {
	switch sys {
	case SysQuit:
		rt.ui = QuitUI()
		return []action.Reaction{action.UiTransition("quit?")}, nil
	case SysInventory:
		rt.ui = InventoryUI()
		return []action.Reaction{action.UiTransition("inventory")}, nil
	case SysSave:
		return nil, rerr.New(rerr.CodeUnimplemented, "save command is not supported")
	default:
		return nil, rerr.Newf(rerr.CodeIgnoredInput, "input %v is ignored on the dungeon screen", sys)
	}
}

// ReactToInput is the central input loop: replay it with every input
// the caller collects and it returns the ordered reaction stream to
// surface, per RunTime::react_to_input.
func (rt *Runtime) ReactToInput(input InputCode) ([]action.Reaction, error) {
	rt.savedInputs = append(rt.savedInputs, input)

	switch rt.ui.Kind {
	case UiDungeon:
		switch input.Kind {
		case InputSys:
			return rt.checkInterrupting(input.Sys)
		default:
			reactions, err := action.Process(input.Act, rt.state)
			if err != nil {
				return reactions, err
			}
			for _, r := range reactions {
				if r.Kind == action.ReactUiTransition {
					rt.ui = GraveUI(r.UiState)
				}
			}
			return reactions, nil
		}
	case UiMordal:
		if input.Kind == InputAct {
			return nil, rerr.Newf(rerr.CodeIgnoredInput, "action input %v is ignored while a modal is active", input.Act)
		}
		msg := rt.ui.Process(input.Sys)
		switch msg {
		case MordalCancel:
			rt.ui = DungeonUI
			return []action.Reaction{action.UiTransition("dungeon")}, nil
		case MordalDoSave:
			return nil, rerr.New(rerr.CodeUnimplemented, "save command is not supported")
		case MordalDoQuit:
			return []action.Reaction{action.Notify(action.GameMsg{Kind: action.MsgQuit})}, nil
		default:
			return nil, nil
		}
	default:
		return nil, rerr.Newf(rerr.CodeMaybeBug, "runtime: unknown ui kind %d", rt.ui.Kind)
	}
}

// ReactToKey looks input up in rt.Keymap and replays it through
// ReactToInput, per RunTime::react_to_key.
func (rt *Runtime) ReactToKey(key Key) ([]action.Reaction, error) {
	input, ok := rt.Keymap.Get(key)
	if !ok {
		return nil, rerr.Newf(rerr.CodeInvalidInput, "key %q has no binding", key)
	}
	return rt.ReactToInput(input)
}

// IsCancel reports whether key, once translated through the keymap,
// is one of the keys that dismiss a modal (Cancel, Enter, Continue),
// per RunTime::is_cancel.
func (rt *Runtime) IsCancel(key Key) (bool, error) {
	input, ok := rt.Keymap.Get(key)
	if !ok {
		return false, rerr.Newf(rerr.CodeInvalidInput, "key %q has no binding", key)
	}
	sys := input.Sys
	if input.Kind == InputAct {
		return false, nil
	}
	switch sys {
	case SysCancel, SysEnter, SysContinue:
		return true, nil
	default:
		return false, nil
	}
}

// UiState returns the runtime's current screen.
func (rt *Runtime) UiState() UiState { return rt.ui }

// ScreenSize returns the configured terminal size.
func (rt *Runtime) ScreenSize() (int, int) { return rt.cfg.Width, rt.cfg.Height }

// Status snapshots the player's externally visible stats, per
// RunTime::player_status.
func (rt *Runtime) Status() character.Status {
	var status character.Status
	rt.state.Player.FillStatus(&status)
	for _, tok := range rt.state.Player.ItemBox.Tokens() {
		if tok.Get().Kind == item.KindGold {
			status.Gold = int(tok.Get().Count)
			break
		}
	}
	status.DungeonLevel = rt.state.Dungeon.Level()
	return status
}

// SavedInputs returns every input fed to the runtime so far, in order.
func (rt *Runtime) SavedInputs() []InputCode { return rt.savedInputs }

// SavedInputsAsJSON serializes SavedInputs, per
// RunTime::saved_inputs_as_json.
func (rt *Runtime) SavedInputsAsJSON() (string, error) {
	data, err := json.MarshalIndent(rt.savedInputs, "", "  ")
	if err != nil {
		return "", rerr.Wrap(rerr.CodeJSON, "marshaling saved inputs", err)
	}
	return string(data), nil
}

// ItemBox returns the player's inventory.
func (rt *Runtime) ItemBox() *item.ItemBox { return rt.state.Player.ItemBox }

// Enemies returns the episode's enemy catalog and tracker, needed by a
// caller sizing an observation's symbol dimension off the catalog's
// tile range.
func (rt *Runtime) Enemies() *character.EnemyHandler { return rt.state.Enemies }

// History returns a width*height visited-cell grid for the floor at
// level (row-major, true where the player has ever stood on the cell),
// or false if level was never visited. Grounded on
// gen_history_map's level-selection, built here from field.Cell's
// IsVisited flag since the retrieved source's concrete history_map
// body was not present in the pack.
func (rt *Runtime) History(level int) ([]bool, bool) {
	var floor *dungeon.Floor
	if level == rt.state.Dungeon.Level() {
		floor = rt.state.Dungeon.Current()
	} else {
		floor = rt.state.Dungeon.PastFloor(level)
	}
	if floor == nil {
		return nil, false
	}
	w, h := floor.Field.Width(), floor.Field.Height()
	grid := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := tile.Coord{X: x, Y: y}
			cell, err := floor.Field.At(c)
			if err != nil {
				continue
			}
			grid[y*w+x] = cell.IsVisited()
		}
	}
	return grid, true
}

// DrawScreen walks every in-bounds cell of the current floor in
// raster order and hands drawer the topmost Drawable there: the
// player, then an enemy, then an item, then the bare floor surface,
// per RunTime::draw_screen's floor-then-overlay ordering. Only
// visible cells are handed to drawer.
func (rt *Runtime) DrawScreen(drawer func(tile.Positioned) error) error {
	floor := rt.state.Dungeon.Current()
	w, h := floor.Field.Width(), floor.Field.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := tile.Coord{X: x, Y: y}
			cell, err := floor.Field.At(c)
			if err != nil || !cell.IsVisible() {
				continue
			}
			var drawable tile.Drawable = cell.Surface
			if tok, ok := rt.state.Items.GroundAt(c); ok {
				drawable = tok.Get()
			}
			if enemy, ok := rt.state.Enemies.GetEnemy(c); ok {
				drawable = enemy
			}
			if rt.state.Player.Pos == c {
				drawable = rt.state.Player
			}
			if err := drawer(tile.Positioned{Coord: c, Value: drawable}); err != nil {
				return err
			}
		}
	}
	return nil
}
