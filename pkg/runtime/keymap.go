package runtime

import (
	"github.com/rogue-core/roguecore/pkg/action"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// Keymap maps a key press to the input it produces. Get returns false
// for any key with no binding, the same "ignore unknown input" stance
// input.rs's KeyMap::get takes.
type Keymap struct {
	bindings map[Key]InputCode
}

func (m Keymap) Get(k Key) (InputCode, bool) {
	i, ok := m.bindings[k]
	return i, ok
}

// DefaultKeymap is the vi-style binding a human player drives: hjkl
// plus the four diagonals, their capitalized MoveUntil ("run")
// counterparts, and the arrow keys as a plain-move fallback. 'y' and
// 'n' double as Yes/No so a Mordal can reuse them, per input.rs's
// Default impl.
func DefaultKeymap() Keymap {
	return Keymap{bindings: map[Key]InputCode{
		Char('l'): Act(action.Move(tile.Right)),
		Char('k'): Act(action.Move(tile.Up)),
		Char('j'): Act(action.Move(tile.Down)),
		Char('h'): Act(action.Move(tile.Left)),
		Char('u'): Act(action.Move(tile.UpRight)),
		Char('y'): Both(action.Move(tile.UpLeft), SysYes),
		Char('n'): Both(action.Move(tile.DownRight), SysNo),
		Char('b'): Act(action.Move(tile.DownLeft)),
		Char('L'): Act(action.MoveUntil(tile.Right)),
		Char('K'): Act(action.MoveUntil(tile.Up)),
		Char('J'): Act(action.MoveUntil(tile.Down)),
		Char('H'): Act(action.MoveUntil(tile.Left)),
		Char('U'): Act(action.MoveUntil(tile.UpRight)),
		Char('Y'): Act(action.MoveUntil(tile.UpLeft)),
		Char('N'): Act(action.MoveUntil(tile.DownRight)),
		Char('B'): Act(action.MoveUntil(tile.DownLeft)),
		Char('s'): Act(action.Search),
		Char('.'): Act(action.NoOp),
		Char('>'): Act(action.DownStair),
		KeyUp:     Act(action.Move(tile.Up)),
		KeyDown:   Act(action.Move(tile.Down)),
		KeyLeft:   Act(action.Move(tile.Left)),
		KeyRight:  Act(action.Move(tile.Right)),
		KeyEsc:    Sys(SysCancel),
		Char('S'): Sys(SysSave),
		Char('Q'): Sys(SysQuit),
		Char('i'): Sys(SysInventory),
		Char(' '): Sys(SysContinue),
	}}
}

// AIKeymap drops the system bindings (Save/Quit/Inventory/Yes/No),
// leaving only the pure gameplay actions a scripted or learned agent
// drives, per input.rs's KeyMap::ai.
func AIKeymap() Keymap {
	return Keymap{bindings: map[Key]InputCode{
		Char('l'): Act(action.Move(tile.Right)),
		Char('k'): Act(action.Move(tile.Up)),
		Char('j'): Act(action.Move(tile.Down)),
		Char('h'): Act(action.Move(tile.Left)),
		Char('u'): Act(action.Move(tile.UpRight)),
		Char('y'): Act(action.Move(tile.UpLeft)),
		Char('n'): Act(action.Move(tile.DownRight)),
		Char('b'): Act(action.Move(tile.DownLeft)),
		Char('.'): Act(action.NoOp),
		Char('L'): Act(action.MoveUntil(tile.Right)),
		Char('K'): Act(action.MoveUntil(tile.Up)),
		Char('J'): Act(action.MoveUntil(tile.Down)),
		Char('H'): Act(action.MoveUntil(tile.Left)),
		Char('U'): Act(action.MoveUntil(tile.UpRight)),
		Char('Y'): Act(action.MoveUntil(tile.UpLeft)),
		Char('N'): Act(action.MoveUntil(tile.DownRight)),
		Char('B'): Act(action.MoveUntil(tile.DownLeft)),
		Char('s'): Act(action.Search),
		Char('>'): Act(action.DownStair),
	}}
}

// actionByName lists every action name accepted as a value in a
// dungeoncfg.Config.Keymap override.
var actionByName = map[string]action.Action{
	"Move(Up)": action.Move(tile.Up), "Move(Down)": action.Move(tile.Down),
	"Move(Left)": action.Move(tile.Left), "Move(Right)": action.Move(tile.Right),
	"Move(UpLeft)": action.Move(tile.UpLeft), "Move(UpRight)": action.Move(tile.UpRight),
	"Move(DownLeft)": action.Move(tile.DownLeft), "Move(DownRight)": action.Move(tile.DownRight),
	"MoveUntil(Up)": action.MoveUntil(tile.Up), "MoveUntil(Down)": action.MoveUntil(tile.Down),
	"MoveUntil(Left)": action.MoveUntil(tile.Left), "MoveUntil(Right)": action.MoveUntil(tile.Right),
	"MoveUntil(UpLeft)": action.MoveUntil(tile.UpLeft), "MoveUntil(UpRight)": action.MoveUntil(tile.UpRight),
	"MoveUntil(DownLeft)": action.MoveUntil(tile.DownLeft), "MoveUntil(DownRight)": action.MoveUntil(tile.DownRight),
	"Search": action.Search, "NoOp": action.NoOp, "DownStair": action.DownStair,
}

// ApplyOverrides rebinds the keys named in overrides (a key name to an
// action name, e.g. {"z": "Search"}) on top of m, reporting an
// unrecognized action name rather than silently ignoring it.
func (m Keymap) ApplyOverrides(overrides map[string]string) (Keymap, error) {
	if len(overrides) == 0 {
		return m, nil
	}
	next := make(map[Key]InputCode, len(m.bindings)+len(overrides))
	for k, v := range m.bindings {
		next[k] = v
	}
	for keyName, actName := range overrides {
		a, ok := actionByName[actName]
		if !ok {
			return m, rerr.Newf(rerr.CodeInvalidSetting, "keymap: unknown action %q", actName)
		}
		if len(keyName) != 1 {
			return m, rerr.Newf(rerr.CodeInvalidSetting, "keymap: unsupported key name %q (only single characters)", keyName)
		}
		next[Char(rune(keyName[0]))] = Act(a)
	}
	return Keymap{bindings: next}, nil
}
