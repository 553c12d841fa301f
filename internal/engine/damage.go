package engine

import "github.com/psyclimb/Boneglaive/internal/game"

// attackContext scopes one hit: the pipeline never reads ambient state to
// learn who is attacking whom.
type attackContext struct {
	attacker *game.Unit // nil for sourceless damage (expired charges)
	defender *game.Unit
	spec     game.EffectSpec
	skillID  string
}

// applyDamage runs the ordered mitigation pipeline and returns the HP
// actually removed.
//
// Steps: base amount, defense subtraction (skipped by pierce; defense may
// be halved by a modifier scoped to this attacker), attacker-side
// conditional reduction, floor clamp, HP write, death handoff.
func (tc *turnContext) applyDamage(ac attackContext) int {
	defender := ac.defender
	if defender == nil || !defender.IsAlive() {
		return 0
	}
	if defender.Flags.Invulnerable {
		tc.event(game.Event{
			Type:   game.EventImmunityBlocked,
			Actor:  actorID(ac.attacker),
			Target: defender.InstanceID,
			Reason: "invulnerable",
		})
		return 0
	}

	amount := ac.spec.Amount
	if !ac.spec.Pierce {
		amount -= tc.defenseWithModifiers(defender, ac.attacker)
	}
	if ac.attacker != nil {
		amount = tc.attackWithModifiers(ac.attacker, defender, amount)
	}

	floor := 1
	if ac.spec.MinDamage > floor {
		floor = ac.spec.MinDamage
	}
	if ac.spec.ZeroAllowed {
		floor = 0
	}
	if amount < floor {
		amount = floor
	}

	prevHP := defender.HP
	defender.SetHP(prevHP - amount)
	actual := prevHP - defender.HP

	tc.event(game.Event{
		Type:    game.EventDamageDealt,
		Actor:   actorID(ac.attacker),
		Target:  defender.InstanceID,
		Amount:  actual,
		SkillID: ac.skillID,
		To:      posPtr(defender.Pos()),
	})

	if defender.HP == 0 {
		// Death hooks run before any further effects of the same skill.
		tc.handleDeath(defender, ac.attacker)
	} else {
		tc.evaluateThreshold(defender, prevHP, ac.attacker)
		tc.firePassives(game.TriggerPostDamageTaken, defender, ac.attacker)
	}
	if ac.attacker != nil && actual > 0 {
		tc.firePassives(game.TriggerPostDamageDealt, ac.attacker, defender)
	}
	return actual
}

// applyHeal restores HP through the inverted pipeline. Prevention statuses
// stop it unless the effect carries the explicit bypass flag.
func (tc *turnContext) applyHeal(source, target *game.Unit, spec game.EffectSpec, skillID string) int {
	if target == nil || !target.IsAlive() {
		return 0
	}
	if !spec.BypassHealBlock && tc.healingBlocked(target) {
		tc.event(game.Event{
			Type:   game.EventActionFailed,
			Actor:  actorID(source),
			Target: target.InstanceID,
			Reason: "healing_blocked",
		})
		return 0
	}
	prev := target.HP
	target.SetHP(prev + spec.Amount)
	actual := target.HP - prev
	if actual > 0 {
		tc.event(game.Event{
			Type:    game.EventHealed,
			Actor:   actorID(source),
			Target:  target.InstanceID,
			Amount:  actual,
			SkillID: skillID,
		})
	}
	return actual
}

// handleDeath emits the death event, runs on-death passives and detaches
// statuses that cannot outlive their source (traps release their victim).
func (tc *turnContext) handleDeath(dead, killer *game.Unit) {
	tc.event(game.Event{
		Type:   game.EventUnitDied,
		Actor:  actorID(killer),
		Target: dead.InstanceID,
		To:     posPtr(dead.Pos()),
	})

	tc.firePassives(game.TriggerOnDeath, dead, killer)

	for _, id := range tc.livingUnitIDs(0) {
		holder := tc.unit(id)
		for i := range holder.Statuses {
			st := &holder.Statuses[i]
			if st.Expired || st.SourceID != dead.InstanceID {
				continue
			}
			def := tc.roster.Status(st.StatusID)
			if def != nil && def.DetachOnSourceDeath {
				tc.expireStatus(holder, st, "source_died")
			}
		}
	}
}

func actorID(u *game.Unit) int {
	if u == nil {
		return 0
	}
	return u.InstanceID
}
