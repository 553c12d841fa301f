package engine

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/psyclimb/Boneglaive/internal/game"
)

// Phase machine events.
const (
	evBegin   = "begin"
	evExecute = "execute"
	evCommit  = "commit"
	evFinish  = "finish"
)

// newPhaseFSM builds the match lifecycle machine over the stored phase:
// SETUP -> READY -> EXECUTE -> READY ... -> GAME_OVER. Every transition
// writes back to the game state so the phase column is always the source
// of truth.
func newPhaseFSM(g *game.GameState) *fsm.FSM {
	return fsm.NewFSM(
		g.Phase,
		fsm.Events{
			{Name: evBegin, Src: []string{game.PhaseSetup}, Dst: game.PhaseReady},
			{Name: evExecute, Src: []string{game.PhaseReady}, Dst: game.PhaseExecute},
			{Name: evCommit, Src: []string{game.PhaseExecute}, Dst: game.PhaseReady},
			{Name: evFinish, Src: []string{game.PhaseExecute}, Dst: game.PhaseGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				g.Phase = e.FSM.Current()
			},
		},
	)
}

// BeginMatch moves a fully set up game into its first READY phase.
func BeginMatch(g *game.GameState) error {
	m := newPhaseFSM(g)
	if err := m.Event(context.Background(), evBegin); err != nil {
		return err
	}
	g.Status = game.StatusInProgress
	if g.ActivePlayer == 0 {
		g.ActivePlayer = 1
	}
	if g.Turn == 0 {
		g.Turn = 1
	}
	return nil
}
