package service

import (
	"errors"
	"fmt"

	"github.com/psyclimb/Boneglaive/internal/checksum"
	"github.com/psyclimb/Boneglaive/internal/engine"
	"github.com/psyclimb/Boneglaive/internal/game"
	"github.com/psyclimb/Boneglaive/internal/logging"
)

var (
	ErrOrdersLocked       = errors.New("orders are locked; resolving current turn")
	ErrUnitNotFound       = errors.New("unit not found")
	ErrUnitNotYours       = errors.New("unit does not belong to player")
	ErrUnitDead           = errors.New("unit is no longer in play")
	ErrUnknownSkill       = errors.New("unit does not have that skill")
	ErrSkillOnCooldown    = errors.New("skill is on cooldown")
	ErrTargetOutOfBounds  = errors.New("target is outside the board")
	ErrOrderNeedsTarget   = errors.New("skill or attack order requires a target")
	ErrDuplicateUnitOrder = errors.New("duplicate order for unit")
)

// UnitOrder is one unit's instruction for the upcoming turn as submitted
// by a client.
type UnitOrder struct {
	InstanceID int            `json:"instance_id"`
	MoveTo     *game.Position `json:"move_to,omitempty"`
	SkillID    string         `json:"skill_id,omitempty"`
	Target     *game.Position `json:"target,omitempty"`
}

// SubmitOrders stores a player's committed orders and resolves the turn if
// both players have now submitted. Commit-time validation rejects orders
// that are structurally impossible; orders that merely become stale by
// resolution time are accepted here and fail during execution instead.
// Returns the updated game and whether the turn was resolved.
func SubmitOrders(repo GameRepo, roster *game.Roster, gameID uint, playerUUID string, orders []UnitOrder) (*game.GameState, bool, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, false, ErrGameNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, false, ErrGameNotInProgress
	}
	if g.Phase != game.PhaseReady {
		return nil, false, ErrOrdersLocked
	}

	player := playerByUUID(g, playerUUID)
	if player == nil {
		return nil, false, ErrPlayerNotInGame
	}

	board := game.BoardByName(g.BoardName)
	if err := validateOrders(g, board, roster, player.PlayerNum, orders); err != nil {
		return nil, false, err
	}

	// Replace any previously committed orders for this player.
	clearPlayerOrders(g, player.PlayerNum)
	for i := range orders {
		u := g.UnitByInstanceID(orders[i].InstanceID)
		u.Order = &game.CommittedOrder{
			MoveTo:  orders[i].MoveTo,
			SkillID: orders[i].SkillID,
			Target:  orders[i].Target,
			Seq:     i,
		}
	}
	player.HasSubmittedOrders = true

	resolved := false
	if bothSubmitted(g) {
		if err := resolveAndSnapshot(repo, g, board, roster); err != nil {
			return nil, false, err
		}
		resolved = true
	}

	if err := repo.UpdateGame(g); err != nil {
		return nil, resolved, err
	}
	return g, resolved, nil
}

// WithdrawOrders retracts a player's committed orders while the turn is
// still open.
func WithdrawOrders(repo GameRepo, gameID uint, playerUUID string) (*game.GameState, error) {
	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, ErrGameNotInProgress
	}
	if g.Phase != game.PhaseReady {
		return nil, ErrOrdersLocked
	}
	player := playerByUUID(g, playerUUID)
	if player == nil {
		return nil, ErrPlayerNotInGame
	}
	clearPlayerOrders(g, player.PlayerNum)
	player.HasSubmittedOrders = false
	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

func validateOrders(g *game.GameState, board *game.Board, roster *game.Roster, playerNum int, orders []UnitOrder) error {
	seen := make(map[int]bool, len(orders))
	for _, o := range orders {
		if seen[o.InstanceID] {
			return fmt.Errorf("%w: %d", ErrDuplicateUnitOrder, o.InstanceID)
		}
		seen[o.InstanceID] = true

		u := g.UnitByInstanceID(o.InstanceID)
		if u == nil {
			return fmt.Errorf("%w: %d", ErrUnitNotFound, o.InstanceID)
		}
		if u.PlayerNum != playerNum {
			return fmt.Errorf("%w: %d", ErrUnitNotYours, o.InstanceID)
		}
		if !u.IsAlive() {
			return fmt.Errorf("%w: %d", ErrUnitDead, o.InstanceID)
		}
		if o.MoveTo != nil && !board.InBounds(*o.MoveTo) {
			return fmt.Errorf("%w: move for unit %d", ErrTargetOutOfBounds, o.InstanceID)
		}
		if o.Target != nil && !board.InBounds(*o.Target) {
			return fmt.Errorf("%w: target for unit %d", ErrTargetOutOfBounds, o.InstanceID)
		}
		if o.SkillID != "" {
			if err := validateSkillOrder(roster, u, o); err != nil {
				return err
			}
		} else if o.Target != nil {
			// Basic attack: any in-bounds tile is acceptable at commit
			// time; emptiness is judged at resolution.
			continue
		}
	}
	return nil
}

func validateSkillOrder(roster *game.Roster, u *game.Unit, o UnitOrder) error {
	def := roster.Unit(u.Name)
	if def == nil {
		return fmt.Errorf("%w: %s", ErrUnknownUnitName, u.Name)
	}
	known := false
	for _, id := range def.SkillIDs {
		if id == o.SkillID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %s on unit %d", ErrUnknownSkill, o.SkillID, o.InstanceID)
	}
	if u.CooldownRemaining(o.SkillID) > 0 {
		return fmt.Errorf("%w: %s on unit %d", ErrSkillOnCooldown, o.SkillID, o.InstanceID)
	}
	skill := roster.Skill(o.SkillID)
	if skill.Target != game.TargetSelf && o.Target == nil {
		return fmt.Errorf("%w: %s on unit %d", ErrOrderNeedsTarget, o.SkillID, o.InstanceID)
	}
	return nil
}

func clearPlayerOrders(g *game.GameState, playerNum int) {
	for i := range g.Units {
		if g.Units[i].PlayerNum == playerNum {
			g.Units[i].Order = nil
		}
	}
}

func bothSubmitted(g *game.GameState) bool {
	if len(g.Players) != 2 {
		return false
	}
	return g.Players[0].HasSubmittedOrders && g.Players[1].HasSubmittedOrders
}

// resolveAndSnapshot runs the deterministic turn resolution and persists
// the canonical post-turn snapshot with its checksum. A snapshot failure
// is logged but does not undo the resolved turn.
func resolveAndSnapshot(repo GameRepo, g *game.GameState, board *game.Board, roster *game.Roster) error {
	resolvedTurn := g.Turn
	if err := engine.ResolveTurn(g, board, roster); err != nil {
		return err
	}

	data, err := engine.Snapshot(g)
	if err != nil {
		logging.Error("failed to serialize turn snapshot", err, logging.Fields{"game_id": g.ID, "turn": resolvedTurn})
		return nil
	}
	snap := &game.TurnSnapshot{
		GameID:   g.ID,
		Turn:     resolvedTurn,
		Checksum: checksum.Of(data),
		Data:     data,
	}
	if err := repo.SaveSnapshot(snap); err != nil {
		logging.Error("failed to persist turn snapshot", err, logging.Fields{"game_id": g.ID, "turn": resolvedTurn})
	}
	return nil
}
