package engine

import (
	"math/rand"

	"github.com/psyclimb/Boneglaive/internal/game"
)

// turnContext carries everything one EXECUTE pass needs. It is created at
// the start of the pass and discarded at the end; nothing in it is
// externally observable mid-pass.
type turnContext struct {
	g      *game.GameState
	board  game.Terrain
	roster *game.Roster

	// rng is seeded from (state seed, turn). Every draw is logged so a
	// replay can verify it consumed the identical sequence.
	rng *rand.Rand

	byID map[int]*game.Unit

	// firing guards against passive recursion: a unit whose passive is
	// mid-resolution cannot re-trigger it from its own side effects.
	firing map[int]bool
}

func newTurnContext(g *game.GameState, board game.Terrain, roster *game.Roster) *turnContext {
	tc := &turnContext{
		g:      g,
		board:  board,
		roster: roster,
		rng:    rand.New(rand.NewSource(g.Seed ^ int64(g.Turn)<<17)),
		byID:   make(map[int]*game.Unit, len(g.Units)),
		firing: make(map[int]bool),
	}
	for i := range g.Units {
		tc.byID[g.Units[i].InstanceID] = &g.Units[i]
	}
	return tc
}

func (tc *turnContext) unit(id int) *game.Unit { return tc.byID[id] }

// unitAt returns the living unit on a tile, or nil.
func (tc *turnContext) unitAt(p game.Position) *game.Unit {
	for _, u := range tc.orderedUnits() {
		if u.IsAlive() && u.Pos() == p {
			return u
		}
	}
	return nil
}

// orderedUnits returns all units in ascending instance id order. Iteration
// over this slice is the only unit iteration the engine performs, so
// resolution never depends on map ordering.
func (tc *turnContext) orderedUnits() []*game.Unit {
	out := make([]*game.Unit, 0, len(tc.g.Units))
	for i := range tc.g.Units {
		out = append(out, &tc.g.Units[i])
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].InstanceID > out[j].InstanceID; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// livingUnits returns living units in ascending instance id order,
// optionally filtered by owner (0 means any).
func (tc *turnContext) livingUnits(player int) []*game.Unit {
	out := make([]*game.Unit, 0, len(tc.g.Units))
	for _, u := range tc.orderedUnits() {
		if !u.IsAlive() {
			continue
		}
		if player != 0 && u.PlayerNum != player {
			continue
		}
		out = append(out, u)
	}
	return out
}

// livingUnitIDs returns living units' instance ids in ascending order,
// optionally filtered by owner (0 means any). Walks that can trigger a
// summon iterate ids and re-fetch, since growing g.Units invalidates
// previously taken pointers.
func (tc *turnContext) livingUnitIDs(player int) []int {
	ids := make([]int, 0, len(tc.g.Units))
	for _, u := range tc.livingUnits(player) {
		ids = append(ids, u.InstanceID)
	}
	return ids
}

// tileFree reports whether a tile is in bounds, passable terrain and not
// occupied by a living unit.
func (tc *turnContext) tileFree(p game.Position) bool {
	return tc.board.InBounds(p) && tc.board.IsPassable(p) && tc.unitAt(p) == nil
}

func (tc *turnContext) event(e game.Event) { tc.g.AppendEvent(e) }

// draw consumes one random value in [0,1) and records it in the event log.
func (tc *turnContext) draw(actor int) float64 {
	v := tc.rng.Float64()
	tc.event(game.Event{Type: game.EventRandomDraw, Actor: actor, Roll: &v})
	return v
}

// isEnemy reports whether b belongs to the opposing player of a.
func isEnemy(a, b *game.Unit) bool { return a.PlayerNum != b.PlayerNum }

func opponentOf(player int) int { return 3 - player }

func posPtr(p game.Position) *game.Position {
	q := p
	return &q
}
