// Package observe turns a running episode into the flat, numeric shapes
// a learning agent consumes: a glyph map, a visited-cell history grid,
// a status vector, and gray/symbol tensors built from them. Grounded on
// original_source/python/src/lib.rs's PlayerState and
// original_source/python/src/fearures.rs's MessageFlagInner/
// StatusFlagInner.
package observe

import (
	"github.com/rogue-core/roguecore/pkg/action"
	"github.com/rogue-core/roguecore/pkg/character"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/runtime"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// SymbolMax returns the highest symbol id an episode's screen can ever
// draw: the catalog's highest enemy tile if the catalog is non-empty,
// else one less than 'A''s id so an enemy-free episode only counts the
// fixed non-enemy glyphs. Ported from GameConfig::symbol_max.
func SymbolMax(enemies *character.EnemyHandler) int {
	if max, ok := enemies.TileMax(); ok {
		if id, ok := tile.SymbolOf(max); ok {
			return id
		}
	}
	base, _ := tile.SymbolOf('A')
	return base - 1
}

// MessageFlag is a bitset of which notification kinds occurred during a
// step, ported from fearures.rs's MessageFlagInner.
type MessageFlag uint32

const (
	FlagHitFrom MessageFlag = 1 << iota
	FlagHitTo
	FlagMissTo
	FlagMissFrom
	FlagKilled
	FlagSecretDoor
	FlagNoDownStair
)

// Reset clears every bit, called once per step before replaying its
// reactions.
func (f *MessageFlag) Reset() { *f = 0 }

// Append sets the bit msg's kind corresponds to, if any. NoOp-shaped
// messages (CantMove, GotItem, Quit) carry no flag bit.
func (f *MessageFlag) Append(msg action.GameMsg) {
	switch msg.Kind {
	case action.MsgHitFrom:
		*f |= FlagHitFrom
	case action.MsgHitTo:
		*f |= FlagHitTo
	case action.MsgMissTo:
		*f |= FlagMissTo
	case action.MsgMissFrom:
		*f |= FlagMissFrom
	case action.MsgKilled:
		*f |= FlagKilled
	case action.MsgSecretDoor:
		*f |= FlagSecretDoor
	case action.MsgNoDownStair:
		*f |= FlagNoDownStair
	}
}

// StatusFlag selects which fields of a character.Status a caller wants
// flattened into a vector, ported from fearures.rs's StatusFlagInner.
type StatusFlag uint32

const (
	FlagDungeonLevel StatusFlag = 1 << iota
	FlagHPCurrent
	FlagHPMax
	FlagStrCurrent
	FlagStrMax
	FlagDefense
	FlagPlayerLevel
	FlagExp
	FlagHunger
)

// AllStatusFlags selects every field StatusFlag knows about.
const AllStatusFlags = FlagDungeonLevel | FlagHPCurrent | FlagHPMax |
	FlagStrCurrent | FlagStrMax | FlagDefense | FlagPlayerLevel |
	FlagExp | FlagHunger

// Len reports how many float32 values ToVector(f) produces.
func (f StatusFlag) Len() int {
	n := 0
	for b := StatusFlag(1); b != 0 && b <= FlagHunger; b <<= 1 {
		if f&b != 0 {
			n++
		}
	}
	return n
}

// ToVector flattens the fields of s that f selects, in the fixed order
// DungeonLevel, HP.Current, HP.Max, Strength.Current, Strength.Max,
// Defense, PlayerLevel, Exp, HungerLevel, per
// StatusFlagInner::to_vector.
func (f StatusFlag) ToVector(s character.Status) []float32 {
	out := make([]float32, 0, f.Len())
	if f&FlagDungeonLevel != 0 {
		out = append(out, float32(s.DungeonLevel))
	}
	if f&FlagHPCurrent != 0 {
		out = append(out, float32(s.HP.Current))
	}
	if f&FlagHPMax != 0 {
		out = append(out, float32(s.HP.Max))
	}
	if f&FlagStrCurrent != 0 {
		out = append(out, float32(s.Strength.Current))
	}
	if f&FlagStrMax != 0 {
		out = append(out, float32(s.Strength.Max))
	}
	if f&FlagDefense != 0 {
		out = append(out, float32(s.Defense))
	}
	if f&FlagPlayerLevel != 0 {
		out = append(out, float32(s.PlayerLevel))
	}
	if f&FlagExp != 0 {
		out = append(out, float32(s.Exp))
	}
	if f&FlagHunger != 0 {
		out = append(out, float32(s.HungerLevel))
	}
	return out
}

// PlayerState is the per-step snapshot an agent observes: the visible
// glyph map, the visited-cell history for the current floor, the
// player's stats, the notification bits the last step raised, and
// whether the episode has ended. Ported from python/src/lib.rs's
// PlayerState.
type PlayerState struct {
	Map        [][]byte
	History    []bool
	Status     character.Status
	Symbols    int
	Message    MessageFlag
	IsTerminal bool
	width      int
	height     int
}

// NewPlayerState allocates a blank state sized to width*height with
// symbols distinct glyph ids (see SymbolMax), per PlayerState::new.
func NewPlayerState(width, height, symbols int) *PlayerState {
	m := make([][]byte, height)
	for y := range m {
		row := make([]byte, width)
		for x := range row {
			row[x] = ' '
		}
		m[y] = row
	}
	return &PlayerState{
		Map:     m,
		History: make([]bool, width*height),
		Symbols: symbols,
		width:   width,
		height:  height,
	}
}

// DrawMap refreshes Map and History from rt's current screen, per
// PlayerState::draw_map.
func (ps *PlayerState) DrawMap(rt *runtime.Runtime) error {
	if grid, ok := rt.History(ps.Status.DungeonLevel); ok {
		ps.History = grid
	}
	return rt.DrawScreen(func(p tile.Positioned) error {
		if p.Coord.Y < 0 || p.Coord.Y >= ps.height || p.Coord.X < 0 || p.Coord.X >= ps.width {
			return nil
		}
		ps.Map[p.Coord.Y][p.Coord.X] = p.Value.Glyph()
		return nil
	})
}

// Reset re-snapshots status and the map after rt has been rebuilt for a
// fresh episode, per PlayerState::reset.
func (ps *PlayerState) Reset(rt *runtime.Runtime) error {
	ps.Status = rt.Status()
	ps.Message.Reset()
	ps.IsTerminal = false
	return ps.DrawMap(rt)
}

// React folds one step's reactions into the state: a Redraw refreshes
// the map, a StatusUpdated re-snapshots stats, a Notify sets a message
// bit. Whether the episode ended is read back from rt's ui afterward,
// since a Grave transition is the only UiTransition a step on the
// dungeon screen can raise once the modal is confirmed; simpler than
// threading the transition's reaction payload, and exact in effect.
// Ported from python/src/state_impls.rs's GameStateImpl::react.
func (ps *PlayerState) React(rt *runtime.Runtime, reactions []action.Reaction) error {
	ps.Message.Reset()
	for _, r := range reactions {
		switch r.Kind {
		case action.ReactRedraw:
			if err := ps.DrawMap(rt); err != nil {
				return err
			}
		case action.ReactStatusUpdated:
			ps.Status = rt.Status()
		case action.ReactNotify:
			ps.Message.Append(r.Msg)
		}
	}
	if ui := rt.UiState(); ui.Kind == runtime.UiMordal && ui.Mordal == runtime.MordalGrave {
		ps.IsTerminal = true
	}
	return nil
}

// DungeonStr renders Map as one string per row, per PlayerState's
// dungeon_str.
func (ps *PlayerState) DungeonStr() []string {
	rows := make([]string, len(ps.Map))
	for i, row := range ps.Map {
		rows[i] = string(row)
	}
	return rows
}

// GrayImage builds a [flag.Len()+1][height][width] tensor: flag.Len()
// leading channels each a constant plane of one selected status value,
// and a final channel holding each cell's symbol id normalized to
// [0,1) by Symbols. Ported from PlayerState::gray_image_with_offset.
func (ps *PlayerState) GrayImage(flag StatusFlag) [][][]float32 {
	return ps.grayImage(flag, false)
}

// GrayImageWithHist is GrayImage with one additional trailing channel
// holding the visited-cell history as 0/1, per
// PlayerState::gray_image_with_hist.
func (ps *PlayerState) GrayImageWithHist(flag StatusFlag) [][][]float32 {
	return ps.grayImage(flag, true)
}

func (ps *PlayerState) grayImage(flag StatusFlag, withHist bool) [][][]float32 {
	vec := flag.ToVector(ps.Status)
	channels := len(vec) + 1
	if withHist {
		channels++
	}
	img := newTensor(channels, ps.height, ps.width)
	for c, v := range vec {
		fillConstant(img[c], v)
	}
	symbols := float32(ps.Symbols)
	if symbols == 0 {
		symbols = 1
	}
	grayChan := img[len(vec)]
	for y := 0; y < ps.height; y++ {
		for x := 0; x < ps.width; x++ {
			if id, ok := tile.SymbolOf(ps.Map[y][x]); ok {
				grayChan[y][x] = float32(id) / symbols
			}
		}
	}
	if withHist {
		copyHist(img[channels-1], ps.History, ps.width, ps.height)
	}
	return img
}

// SymbolImage builds a [flag.Len()+tile.NumSymbols][height][width]
// tensor: flag.Len() leading constant-value channels, followed by one
// one-hot channel per symbol id. Ported from
// PlayerState::symbol_image_with_offset / construct_symbol_map.
func (ps *PlayerState) SymbolImage(flag StatusFlag) [][][]float32 {
	return ps.symbolImage(flag, false)
}

// SymbolImageWithHist is SymbolImage with one additional trailing
// channel holding the visited-cell history as 0/1, per
// PlayerState::symbol_image_with_hist.
func (ps *PlayerState) SymbolImageWithHist(flag StatusFlag) [][][]float32 {
	return ps.symbolImage(flag, true)
}

func (ps *PlayerState) symbolImage(flag StatusFlag, withHist bool) [][][]float32 {
	vec := flag.ToVector(ps.Status)
	channels := len(vec) + tile.NumSymbols
	if withHist {
		channels++
	}
	img := newTensor(channels, ps.height, ps.width)
	for c, v := range vec {
		fillConstant(img[c], v)
	}
	for y := 0; y < ps.height; y++ {
		for x := 0; x < ps.width; x++ {
			if id, ok := tile.SymbolOf(ps.Map[y][x]); ok {
				img[len(vec)+id][y][x] = 1
			}
		}
	}
	if withHist {
		copyHist(img[channels-1], ps.History, ps.width, ps.height)
	}
	return img
}

func newTensor(channels, height, width int) [][][]float32 {
	img := make([][][]float32, channels)
	for c := range img {
		plane := make([][]float32, height)
		for y := range plane {
			plane[y] = make([]float32, width)
		}
		img[c] = plane
	}
	return img
}

func fillConstant(plane [][]float32, v float32) {
	for y := range plane {
		for x := range plane[y] {
			plane[y][x] = v
		}
	}
}

func copyHist(plane [][]float32, history []bool, width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if i < len(history) && history[i] {
				plane[y][x] = 1
			}
		}
	}
}

// Episode drives one playthrough for a caller that wants max-step
// bookkeeping and symbol sizing handled for it, ported from
// python/src/state_impls.rs's GameStateImpl.
type Episode struct {
	Runtime  *runtime.Runtime
	State    *PlayerState
	Steps    int
	MaxSteps int
}

// NewEpisode builds a runtime under the AI keymap (no modal-raising
// system keys), sizes its observation to the config's screen and the
// enemy catalog's symbol ceiling, and takes the first snapshot. Ported
// from GameStateImpl::new.
func NewEpisode(rt *runtime.Runtime, maxSteps int) (*Episode, error) {
	rt.Keymap = runtime.AIKeymap()
	w, h := rt.ScreenSize()
	symbols := SymbolMax(rt.Enemies()) + 1
	state := NewPlayerState(w, h, symbols)
	state.Status = rt.Status()
	if err := state.DrawMap(rt); err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "observe: drawing initial screen", err)
	}
	return &Episode{Runtime: rt, State: state, MaxSteps: maxSteps}, nil
}

// React replays one key through the episode's runtime, folds the
// resulting reactions into State, and reports whether the episode has
// ended (death, or the step budget is spent). Ported from
// GameStateImpl::react.
func (ep *Episode) React(key runtime.Key) (bool, error) {
	if ep.Steps > ep.MaxSteps {
		return true, nil
	}
	reactions, err := ep.Runtime.ReactToKey(key)
	if err != nil {
		return false, rerr.Wrap(rerr.CodeMaybeBug, "observe: stepping episode", err)
	}
	if err := ep.State.React(ep.Runtime, reactions); err != nil {
		return false, err
	}
	ep.Steps++
	return ep.State.IsTerminal || ep.Steps >= ep.MaxSteps, nil
}
