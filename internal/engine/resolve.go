package engine

import (
	"context"

	"github.com/psyclimb/Boneglaive/internal/game"
)

// ResolveTurn is the main entry point for resolving one committed turn.
// It runs the fixed EXECUTE sub-phases to completion as an atomic unit:
// movement, actions, status/passive hooks, cooldowns, win check. Callers
// only ever observe the pre-pass and post-pass states plus the event log.
//
// Resolution is fully deterministic: identical pre-turn state and orders
// produce a byte-identical post-turn state and event log.
func ResolveTurn(g *game.GameState, board game.Terrain, roster *game.Roster) error {
	m := newPhaseFSM(g)
	if err := m.Event(context.Background(), evExecute); err != nil {
		return err
	}

	tc := newTurnContext(g, board, roster)

	// 1. Movement. Immobilized units lose their move orders first.
	tc.discardImmobilizedMoves()
	tc.resolveMovement()

	// 2. Attacks and skills, stable id order with player alternation.
	tc.resolveActions()

	// 3. Status decrement hooks and turn-boundary passives.
	tc.runTurnHooks()
	tc.sweepExpiredStatuses()

	// 4. Cooldowns for the acting player, exactly once per owner-turn.
	tc.decrementCooldowns(g.ActivePlayer)

	// 5. Win condition.
	if winner, over := tc.checkGameOver(); over {
		g.WinnerNum = winner
		g.Status = game.StatusFinished
		tc.event(game.Event{Type: game.EventGameOver, Player: winner})
		tc.clearOrders()
		return m.Event(context.Background(), evFinish)
	}

	next := opponentOf(g.ActivePlayer)
	tc.clearOrders()
	g.ActivePlayer = next
	g.Turn++
	for i := range g.Players {
		g.Players[i].HasSubmittedOrders = false
	}
	tc.event(game.Event{Type: game.EventTurnAdvanced, Player: next})
	return m.Event(context.Background(), evCommit)
}

// executionOrder interleaves both players' units starting with the active
// player, each side in ascending instance id. Submission order never
// affects resolution order; the stable id is the only tie-breaker.
// Instance ids, not pointers: a summon mid-pass grows g.Units and may
// reallocate it, so walkers re-fetch through the id index each step.
func (tc *turnContext) executionOrder() []int {
	active := tc.unitIDsOf(tc.g.ActivePlayer)
	other := tc.unitIDsOf(opponentOf(tc.g.ActivePlayer))
	out := make([]int, 0, len(active)+len(other))
	for i := 0; i < len(active) || i < len(other); i++ {
		if i < len(active) {
			out = append(out, active[i])
		}
		if i < len(other) {
			out = append(out, other[i])
		}
	}
	return out
}

func (tc *turnContext) unitIDsOf(player int) []int {
	out := make([]int, 0, len(tc.g.Units))
	for _, u := range tc.orderedUnits() {
		if u.PlayerNum == player {
			out = append(out, u.InstanceID)
		}
	}
	return out
}

// resolveActions processes every committed attack or skill use. Stale
// targets are skipped with a distinct event; nothing here can abort the
// turn.
func (tc *turnContext) resolveActions() {
	for _, id := range tc.executionOrder() {
		u := tc.unit(id)
		if u == nil || u.Order == nil || u.Order.Target == nil {
			continue
		}
		order := u.Order
		if !u.IsAlive() {
			tc.event(game.Event{
				Type:    game.EventActionFailed,
				Actor:   u.InstanceID,
				Reason:  game.FailActorDead,
				SkillID: order.SkillID,
			})
			continue
		}
		if order.SkillID == "" {
			tc.resolveBasicAttack(u, *order.Target)
			continue
		}
		tc.resolveSkill(u, order.SkillID, *order.Target)
	}
}

// resolveBasicAttack performs a weapon attack using the unit's own stats.
func (tc *turnContext) resolveBasicAttack(u *game.Unit, target game.Position) {
	defender := tc.unitAt(target)
	if defender == nil || !isEnemy(u, defender) {
		tc.event(game.Event{
			Type:   game.EventActionFailed,
			Actor:  u.InstanceID,
			Reason: game.FailTargetInvalid,
			To:     posPtr(target),
		})
		return
	}
	if game.Dist(u.Pos(), target) > u.EffectiveAttackRange() {
		tc.event(game.Event{
			Type:   game.EventActionFailed,
			Actor:  u.InstanceID,
			Reason: game.FailOutOfRange,
			To:     posPtr(target),
		})
		return
	}
	if !game.LineOfSight(tc.board, u.Pos(), target) {
		tc.event(game.Event{
			Type:   game.EventActionFailed,
			Actor:  u.InstanceID,
			Reason: game.FailNoLineOfSight,
			To:     posPtr(target),
		})
		return
	}
	tc.applyDamage(attackContext{
		attacker: u,
		defender: defender,
		spec:     game.EffectSpec{Kind: game.EffectDamage, Amount: u.EffectiveAttack()},
	})
}

// resolveSkill validates and executes a committed skill use.
func (tc *turnContext) resolveSkill(u *game.Unit, skillID string, target game.Position) {
	skill := tc.activeSkillOf(u, skillID)
	if skill == nil {
		tc.event(game.Event{
			Type:    game.EventActionFailed,
			Actor:   u.InstanceID,
			Reason:  game.FailUnknownSkill,
			SkillID: skillID,
		})
		return
	}
	if u.CooldownRemaining(skill.ID) > 0 {
		tc.event(game.Event{
			Type:    game.EventActionFailed,
			Actor:   u.InstanceID,
			Reason:  game.FailCooldown,
			SkillID: skill.ID,
		})
		return
	}
	affected := tc.applySkillEffects(skill, u, target)
	// A summon during the effects may have reallocated g.Units; re-fetch
	// before writing the cooldown.
	u = tc.unit(u.InstanceID)
	if affected == 0 {
		// Fizzle: the aim point stopped being a legal target between
		// READY and now. Documented invariant — never a fault.
		tc.event(game.Event{
			Type:    game.EventActionFailed,
			Actor:   u.InstanceID,
			Reason:  game.FailSkillFizzled,
			SkillID: skill.ID,
			To:      posPtr(target),
		})
		return
	}
	if skill.Cooldown > 0 {
		if u.Cooldowns == nil {
			u.Cooldowns = make(map[string]int)
		}
		u.Cooldowns[skill.ID] = skill.Cooldown
	}
}

// activeSkillOf returns the named skill if the unit's roster entry lists
// it as an active.
func (tc *turnContext) activeSkillOf(u *game.Unit, skillID string) *game.Skill {
	def := tc.roster.Unit(u.Name)
	if def == nil {
		return nil
	}
	for _, id := range def.SkillIDs {
		if id != skillID {
			continue
		}
		s := tc.roster.Skill(id)
		if s != nil && s.Kind == game.SkillActive {
			return s
		}
	}
	return nil
}

// runTurnHooks runs the three status decrement hooks and the turn-boundary
// passives. The acting player's turn is ending and the opponent's turn is
// beginning, so:
//
//   - affected-turn-end statuses tick on the acting player's units
//   - condition-check statuses tick board-wide (traps, stored charges)
//   - owner-turn-start statuses tick when the player who owns the effect's
//     source begins their turn
//   - turn-start passives fire for the player whose turn is beginning
func (tc *turnContext) runTurnHooks() {
	acting := tc.g.ActivePlayer
	starting := opponentOf(acting)

	for _, id := range tc.livingUnitIDs(acting) {
		tc.tickStatuses(tc.unit(id), game.HookAffectedTurnEnd)
	}

	tc.runConditionChecks()

	for _, id := range tc.livingUnitIDs(0) {
		tc.tickOwnedStatuses(tc.unit(id), starting)
	}

	tc.fireTurnStartPassives(starting)
}

// tickOwnedStatuses decrements owner-turn-start statuses on a holder when
// the status source's owner matches the player whose turn is starting. A
// dead or missing source falls back to the holder's own turn so the
// effect still expires.
func (tc *turnContext) tickOwnedStatuses(holder *game.Unit, startingPlayer int) {
	for i := range holder.Statuses {
		st := &holder.Statuses[i]
		if st.Expired {
			continue
		}
		def := tc.roster.Status(st.StatusID)
		if def == nil || def.Hook != game.HookOwnerTurnStart {
			continue
		}
		owner := holder.PlayerNum
		if src := tc.unit(st.SourceID); src != nil && src.IsAlive() {
			owner = src.PlayerNum
		}
		if owner != startingPlayer {
			continue
		}
		if def.TickDamage && st.Payload > 0 && holder.IsAlive() {
			src := tc.unit(st.SourceID)
			tc.applyDamage(attackContext{
				attacker: src,
				defender: holder,
				spec:     game.EffectSpec{Kind: game.EffectDamage, Amount: st.Payload, Pierce: true, ZeroAllowed: true},
				skillID:  st.StatusID,
			})
		}
		if def.TickHeal && st.Payload > 0 && holder.IsAlive() {
			src := tc.unit(st.SourceID)
			tc.applyHeal(src, holder, game.EffectSpec{Kind: game.EffectHeal, Amount: st.Payload}, st.StatusID)
		}
		if st.Remaining == game.UntilTriggered {
			continue
		}
		st.Remaining--
		if st.Remaining <= 0 {
			st.Remaining = 0
			tc.expireStatus(holder, st, "duration_elapsed")
		}
	}
	tc.compactStatuses(holder)
}

// decrementCooldowns ticks skill cooldowns for one player's living units.
func (tc *turnContext) decrementCooldowns(player int) {
	for _, u := range tc.livingUnits(player) {
		for id, v := range u.Cooldowns {
			if v > 0 {
				u.Cooldowns[id] = v - 1
			}
		}
	}
}

// checkGameOver reports the winner when one side has no living units.
func (tc *turnContext) checkGameOver() (int, bool) {
	alive1 := len(tc.livingUnits(1)) > 0
	alive2 := len(tc.livingUnits(2)) > 0
	switch {
	case alive1 && !alive2:
		return 1, true
	case alive2 && !alive1:
		return 2, true
	case !alive1 && !alive2:
		// Mutual annihilation: the acting player loses the tie.
		return opponentOf(tc.g.ActivePlayer), true
	}
	return 0, false
}

// clearOrders wipes every committed order after the pass.
func (tc *turnContext) clearOrders() {
	for i := range tc.g.Units {
		tc.g.Units[i].Order = nil
	}
}
