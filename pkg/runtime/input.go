// Package runtime is the API entry point a caller embeds: it owns one
// episode's subsystems, the UI state machine sitting above the turn
// dispatcher, and the keymap translating raw key presses into the
// actions pkg/action understands. Grounded on lib.rs's RunTime,
// ui.rs's UiState/MordalKind, and input.rs's KeyMap/InputCode/Key.
package runtime

import (
	"github.com/rogue-core/roguecore/pkg/action"
)

// System is a UI-level input not tied to gameplay: menu navigation,
// confirmation, and session control.
type System int

const (
	SysCancel System = iota
	SysContinue
	SysEnter
	SysInventory
	SysNo
	SysSave
	SysQuit
	SysYes
)

// InputKind tags whether an InputCode carries a gameplay action, a
// system input, or both at once (keys like 'y'/'n' double as a move
// and a yes/no answer depending which UiState is active).
type InputKind int

const (
	InputAct InputKind = iota
	InputSys
	InputBoth
)

// InputCode is one fully classified input event, ported from
// input.rs's InputCode enum.
type InputCode struct {
	Kind InputKind
	Act  action.Action
	Sys  System
}

func Act(a action.Action) InputCode { return InputCode{Kind: InputAct, Act: a} }
func Sys(s System) InputCode        { return InputCode{Kind: InputSys, Sys: s} }
func Both(a action.Action, s System) InputCode {
	return InputCode{Kind: InputBoth, Act: a, Sys: s}
}

// Key is a single key press. Named keys use their fixed name; a
// printable character key is its own one-rune string, the same
// collapsing input.rs's Key::to_str/from_str perform for Key::Char.
type Key string

const (
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeyPageUp    Key = "PageUp"
	KeyPageDown  Key = "PageDown"
	KeyDelete    Key = "Delete"
	KeyInsert    Key = "Insert"
	KeyBackspace Key = "Backspace"
	KeyBackTab   Key = "BackTab"
	KeyEsc       Key = "Esc"
	KeyNull      Key = "Null"
)

// Char returns the Key for a single printable rune.
func Char(r rune) Key { return Key(string(r)) }
