package action

import (
	"github.com/rogue-core/roguecore/pkg/character"
	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/item"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// State bundles the subsystems one turn reads and mutates. A runtime
// owns exactly one State per running episode.
type State struct {
	Dungeon *dungeon.Dungeon
	Items   *item.Handler
	Player  *character.Player
	Enemies *character.EnemyHandler
}

// Process resolves one Action against st, returning the ordered
// reaction stream a caller should replay, grounded on actions.rs's
// process_action.
func Process(a Action, st *State) ([]Reaction, error) {
	switch a.Kind {
	case KindDownStair:
		return processDownStair(st)
	case KindUpStair:
		return nil, rerr.New(rerr.CodeUnimplemented, "UpStair action is not supported")
	case KindMove:
		return processMove(a.Direction, st)
	case KindMoveUntil:
		return processMoveUntil(a.Direction, st)
	case KindSearch:
		return processSearch(st)
	case KindNoOp:
		return nil, nil
	default:
		return nil, rerr.Newf(rerr.CodeMaybeBug, "action: unknown kind %d", a.Kind)
	}
}

// EnterNewLevel generates the next floor (unless isInit, for the very
// first floor a fresh episode starts on), places the player on one of
// its rooms, and activates any mean enemy sharing that room, per
// actions.rs's new_level followed by the dungeon trait's enter_room.
func EnterNewLevel(st *State, isInit bool) error {
	if !isInit {
		if err := st.Dungeon.Descend(); err != nil {
			return err
		}
	}
	pos, ok := st.Dungeon.Current().SelectCell(st.Dungeon.RNG(), true)
	if !ok {
		return rerr.New(rerr.CodeMaybeBug, "EnterNewLevel: no space for the player")
	}
	st.Player.Pos = pos
	st.Dungeon.Current().PlayerIn(pos, true)
	activateRoomEnemies(st, pos)
	return nil
}

func activateRoomEnemies(st *State, pos tile.Coord) {
	floor := st.Dungeon.Current()
	room := floor.RoomAt(pos)
	if room == nil {
		return
	}
	st.Enemies.Activate(func(c tile.Coord) bool { return floor.RoomAt(c) == room })
}

func processDownStair(st *State) ([]Reaction, error) {
	var out []Reaction
	floor := st.Dungeon.Current()
	stair, hasStair := floor.Stair()
	if hasStair && stair == st.Player.Pos {
		if err := EnterNewLevel(st, false); err != nil {
			return out, err
		}
		out = append(out, Redraw, StatusUpdated)
	} else {
		out = append(out, Notify(GameMsg{Kind: MsgNoDownStair}))
	}
	if err := afterTurn(st, &out); err != nil {
		return out, err
	}
	return out, nil
}

func processSearch(st *State) ([]Reaction, error) {
	var out []Reaction
	found := st.Dungeon.Current().Search(st.Player.Pos, st.Dungeon.Config(), st.Dungeon.RNG())
	for _, f := range found {
		// A revealed passage stays silent; only a newly unlocked door is
		// worth telling the player about.
		if f.Door {
			out = append(out, Notify(GameMsg{Kind: MsgSecretDoor, Door: f.Door}))
		}
	}
	out = append(out, Redraw)
	if err := afterTurn(st, &out); err != nil {
		return out, err
	}
	return out, nil
}

func processMove(d tile.Direction, st *State) ([]Reaction, error) {
	out, _, turnEnds, err := movePlayer(d, st)
	if err != nil {
		return out, err
	}
	if turnEnds {
		if err := afterTurn(st, &out); err != nil {
			return out, err
		}
	}
	return out, nil
}

// processMoveUntil repeats a single-step move until the step was
// blocked, an item was picked up, an enemy was attacked, or the new
// cell is neither floor nor passage, per §4.5's MoveUntil rule. Only
// the first and the stopping iteration's reactions are kept; an
// interior iteration's Redraw would be indistinguishable noise.
func processMoveUntil(d tile.Direction, st *State) ([]Reaction, error) {
	var out []Reaction
	for {
		res, done, turnEnds, err := movePlayer(d, st)
		if err != nil {
			return out, err
		}
		floor := st.Dungeon.Current()
		cell, cellErr := floor.Field.At(st.Player.Pos)
		blocksRun := cellErr != nil || (cell.Surface != tile.SurfaceFloor && cell.Surface != tile.SurfacePassage)
		stop := done || blocksRun
		if stop || len(out) == 0 {
			out = append(out, res...)
		}
		if turnEnds {
			if err := afterTurn(st, &out); err != nil {
				return out, err
			}
		}
		if stop {
			break
		}
	}
	return out, nil
}

// movePlayer resolves one directional step: an attack on an occupying
// enemy, a successful step (with an automatic pickup), or a blocked
// bump. done reports whether a MoveUntil run should stop here; turnEnds
// reports whether the move cost a game turn (a bump into a wall costs
// nothing, per §4.5 step 3).
func movePlayer(d tile.Direction, st *State) (reactions []Reaction, done bool, turnEnds bool, err error) {
	floor := st.Dungeon.Current()
	pos := st.Player.Pos
	if !floor.CanMove(pos, d, true) {
		return []Reaction{Notify(GameMsg{Kind: MsgCantMove, Direction: d})}, true, false, nil
	}
	next := tile.Move(pos, d)
	if enemy, ok := st.Enemies.GetEnemy(next); ok {
		res, err := playerAttack(st, enemy, next)
		return res, true, true, err
	}
	floor.PlayerOut(pos)
	st.Player.Pos = next
	floor.PlayerIn(next, false)
	st.Player.Run(true)
	out := []Reaction{Redraw}
	gotItem := false
	if tok, ok := st.Items.GroundAt(next); ok && st.Player.ItemBox.Add(tok) {
		st.Items.TakeGround(next)
		it := tok.Get()
		out = append(out, Notify(GameMsg{Kind: MsgGotItem, ItemKind: it.Kind.String(), ItemNum: int(it.Count)}), StatusUpdated)
		gotItem = true
	}
	return out, gotItem, true, nil
}

// playerAttack resolves the player's attack against the enemy standing
// at place, per actions.rs's player_attack: engaging combat resets the
// healing quiet-counter and wakes the enemy regardless of its mean
// flag, since it is now directly under attack.
func playerAttack(st *State, enemy *character.Enemy, place tile.Coord) ([]Reaction, error) {
	var res []Reaction
	st.Player.Buttle()
	st.Enemies.ActivateOne(place)
	roll := character.PlayerAttacksEnemy(st.Player.Level(), st.Player.Strength().Current, st.Player.WeaponDice(), enemy, st.Enemies.RNG())
	if !roll.Hit {
		return append(res, Notify(GameMsg{Kind: MsgMissTo, Name: enemy.Name})), nil
	}
	res = append(res, Notify(GameMsg{Kind: MsgHitTo, Name: enemy.Name}))
	if enemy.GetDamage(roll.Damage) == character.ReactionDeath {
		st.Enemies.Kill(place)
		if st.Player.LevelUp(enemy.Exp, st.Enemies.RNG()) {
			res = append(res, StatusUpdated)
		}
		res = append(res, Notify(GameMsg{Kind: MsgKilled, Name: enemy.Name}), Redraw)
	}
	return res, nil
}

// afterTurn runs the post-move upkeep every turn-ending action shares:
// player hunger/healing bookkeeping, then the enemy phase, per
// actions.rs's after_turn.
func afterTurn(st *State, out *[]Reaction) error {
	for _, e := range st.Player.TurnPassed(st.Enemies.RNG()) {
		if e == character.EventHealed || e == character.EventHungry {
			*out = append(*out, StatusUpdated)
		}
	}
	return moveActiveEnemies(st, out)
}

// moveActiveEnemies advances every active enemy and resolves the
// attacks of whichever ones reached the player, per actions.rs's
// move_active_enemies. Returns immediately once the player dies.
func moveActiveEnemies(st *State, out *[]Reaction) error {
	pursuits := st.Enemies.MoveActives(st.Dungeon.Current(), st.Player.Pos, nil)
	if len(pursuits) > 0 {
		st.Player.Buttle()
	}
	didHit := false
	for _, p := range pursuits {
		if p.Outcome != character.MoveReachedPlayer {
			continue
		}
		roll := character.EnemyAttacksPlayer(p.Enemy, st.Player.Arm(), st.Enemies.RNG())
		if !roll.Hit {
			*out = append(*out, Notify(GameMsg{Kind: MsgMissFrom, Name: p.Enemy.Name}))
			continue
		}
		*out = append(*out, Notify(GameMsg{Kind: MsgHitFrom, Name: p.Enemy.Name}))
		didHit = true
		if st.Player.GetDamage(roll.Damage) == character.ReactionDeath {
			*out = append(*out, UiTransition("Killed by "+p.Enemy.Name))
			return nil
		}
	}
	if didHit {
		*out = append(*out, StatusUpdated)
	}
	return nil
}
