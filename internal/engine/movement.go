package engine

import "github.com/psyclimb/Boneglaive/internal/game"

// discardImmobilizedMoves drops the move order of any unit that is trapped
// or otherwise pinned at the start of EXECUTE, before movement resolution
// runs.
func (tc *turnContext) discardImmobilizedMoves() {
	for _, id := range tc.executionOrder() {
		u := tc.unit(id)
		if u == nil || u.Order == nil || u.Order.MoveTo == nil {
			continue
		}
		if tc.isImmobilized(u) {
			tc.event(game.Event{
				Type:   game.EventActionFailed,
				Actor:  u.InstanceID,
				Reason: game.FailImmobilized,
				To:     u.Order.MoveTo,
			})
			u.Order.MoveTo = nil
		}
	}
}

// resolveMovement validates and applies every committed move. An order
// that was legal at submission may have gone stale (tile occupied, unit
// slowed below the distance, unit dead); stale moves are skipped with a
// logged failure and never fault.
func (tc *turnContext) resolveMovement() {
	for _, id := range tc.executionOrder() {
		u := tc.unit(id)
		if u == nil || u.Order == nil || u.Order.MoveTo == nil {
			continue
		}
		dest := *u.Order.MoveTo
		if !u.IsAlive() {
			continue
		}
		if reason, ok := tc.moveLegal(u, dest); !ok {
			tc.event(game.Event{
				Type:   game.EventActionFailed,
				Actor:  u.InstanceID,
				Reason: reason,
				From:   posPtr(u.Pos()),
				To:     posPtr(dest),
			})
			continue
		}
		from := u.Pos()
		u.Y, u.X = dest.Y, dest.X
		tc.event(game.Event{
			Type:  game.EventUnitMoved,
			Actor: u.InstanceID,
			From:  posPtr(from),
			To:    posPtr(dest),
		})
	}
}

// moveLegal re-validates a move at execution time.
func (tc *turnContext) moveLegal(u *game.Unit, dest game.Position) (string, bool) {
	if !tc.board.InBounds(dest) {
		return game.FailOutOfBounds, false
	}
	if !tc.board.IsPassable(dest) {
		return game.FailTileImpassable, false
	}
	if tc.unitAt(dest) != nil {
		return game.FailTileOccupied, false
	}
	if game.Dist(u.Pos(), dest) > tc.moveRangeWithModifiers(u) {
		return game.FailOutOfRange, false
	}
	return "", true
}
