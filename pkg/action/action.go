// Package action turns one player intent into the ordered stream of
// reactions a runtime reports back to its caller: it is the single
// place that wires pkg/character, pkg/item, and pkg/dungeon together
// for a turn, grounded on original_source/core/src/actions.rs.
package action

import (
	"github.com/rogue-core/roguecore/pkg/tile"
)

// Kind tags which intent an Action carries. Move and MoveUntil carry a
// Direction; the rest are bare.
type Kind int

const (
	KindNoOp Kind = iota
	KindMove
	KindMoveUntil
	KindDownStair
	KindUpStair
	KindSearch
)

// Action is a tagged player intent, the JSON shape of which is
// {"Move": "Up"}, {"MoveUntil": "Right"}, "DownStair", "Search",
// "NoOp", per the external action encoding.
type Action struct {
	Kind      Kind
	Direction tile.Direction
}

func Move(d tile.Direction) Action      { return Action{Kind: KindMove, Direction: d} }
func MoveUntil(d tile.Direction) Action { return Action{Kind: KindMoveUntil, Direction: d} }

var (
	DownStair = Action{Kind: KindDownStair}
	UpStair   = Action{Kind: KindUpStair}
	Search    = Action{Kind: KindSearch}
	NoOp      = Action{Kind: KindNoOp}
)

// MsgKind tags a notification's shape; most carry a single name, a few
// carry nothing at all.
type MsgKind int

const (
	MsgNoDownStair MsgKind = iota
	MsgCantMove
	MsgHitTo
	MsgMissTo
	MsgHitFrom
	MsgMissFrom
	MsgKilled
	MsgGotItem
	MsgSecretDoor
	MsgQuit
)

// GameMsg is one notification surfaced to the player, ported from
// actions.rs's GameMsg (collapsed from a Rust enum-with-payload into a
// tagged struct, the same pattern pkg/item's Item uses for its
// kind-specific fields).
type GameMsg struct {
	Kind      MsgKind
	Name      string
	Direction tile.Direction
	ItemKind  string
	ItemNum   int
	Door      bool
}

func (m GameMsg) String() string {
	switch m.Kind {
	case MsgNoDownStair:
		return "There is no down stair here."
	case MsgCantMove:
		return "You cannot move there."
	case MsgHitTo:
		return "You hit the " + m.Name + "."
	case MsgMissTo:
		return "You miss the " + m.Name + "."
	case MsgHitFrom:
		return "The " + m.Name + " hits you."
	case MsgMissFrom:
		return "The " + m.Name + " misses you."
	case MsgKilled:
		return "You killed the " + m.Name + "."
	case MsgGotItem:
		return "You got an item."
	case MsgSecretDoor:
		return "You found a secret door."
	case MsgQuit:
		return "Goodbye."
	default:
		return ""
	}
}

// ReactionKind tags the shape a Reaction carries.
type ReactionKind int

const (
	ReactNotify ReactionKind = iota
	ReactRedraw
	ReactStatusUpdated
	ReactUiTransition
)

// Reaction is one observable effect of a step, emitted in the fixed
// order the concurrency model documents: notifications from the
// action itself, Redraw if the map changed, StatusUpdated if stats
// changed, enemy-phase notifications, a final StatusUpdated if combat
// altered stats, and UiTransition on death.
type Reaction struct {
	Kind    ReactionKind
	Msg     GameMsg
	UiState string
}

func Notify(msg GameMsg) Reaction       { return Reaction{Kind: ReactNotify, Msg: msg} }
func UiTransition(state string) Reaction { return Reaction{Kind: ReactUiTransition, UiState: state} }

var (
	Redraw        = Reaction{Kind: ReactRedraw}
	StatusUpdated = Reaction{Kind: ReactStatusUpdated}
)
