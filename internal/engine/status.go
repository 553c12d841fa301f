package engine

import "github.com/psyclimb/Boneglaive/internal/game"

// Outcome is the result of a status application attempt. Immunity is a
// normal outcome, not an error.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeImmune    Outcome = "immune"
	OutcomeRefreshed Outcome = "refreshed"
	OutcomeStacked   Outcome = "stacked"
	OutcomeIgnored   Outcome = "ignored"
)

// applyStatus attaches a status effect to a unit following the type's
// stacking policy. The immunity check runs first; an immune target is
// never mutated no matter how many times an application is attempted.
func (tc *turnContext) applyStatus(target *game.Unit, spec game.EffectSpec, source *game.Unit) Outcome {
	def := tc.roster.Status(spec.StatusID)
	if def == nil || !target.IsAlive() {
		return OutcomeIgnored
	}

	if target.Flags.EffectImmune {
		tc.event(game.Event{
			Type:     game.EventImmunityBlocked,
			Actor:    actorID(source),
			Target:   target.InstanceID,
			StatusID: def.ID,
		})
		return OutcomeImmune
	}

	duration := def.Duration
	if spec.Duration != 0 {
		duration = spec.Duration
	}
	payload := spec.Payload

	if existing := target.FindStatus(def.ID); existing != nil {
		switch def.Stacking {
		case game.StackIgnore:
			tc.event(game.Event{
				Type:     game.EventStatusIgnored,
				Actor:    actorID(source),
				Target:   target.InstanceID,
				StatusID: def.ID,
			})
			return OutcomeIgnored
		case game.StackRefresh, "":
			existing.Remaining = duration
			existing.SourceID = actorID(source)
			if payload != 0 {
				existing.Payload = payload
			}
			tc.event(game.Event{
				Type:     game.EventStatusRefreshed,
				Actor:    actorID(source),
				Target:   target.InstanceID,
				StatusID: def.ID,
				Amount:   duration,
			})
			return OutcomeRefreshed
		case game.StackIndependent:
			target.Statuses = append(target.Statuses, game.StatusInstance{
				StatusID:  def.ID,
				Remaining: duration,
				SourceID:  actorID(source),
				Payload:   payload,
			})
			tc.event(game.Event{
				Type:     game.EventStatusStacked,
				Actor:    actorID(source),
				Target:   target.InstanceID,
				StatusID: def.ID,
				Amount:   duration,
			})
			return OutcomeStacked
		}
	}

	target.Statuses = append(target.Statuses, game.StatusInstance{
		StatusID:  def.ID,
		Remaining: duration,
		SourceID:  actorID(source),
		Payload:   payload,
	})
	tc.event(game.Event{
		Type:     game.EventStatusApplied,
		Actor:    actorID(source),
		Target:   target.InstanceID,
		StatusID: def.ID,
		Amount:   duration,
	})
	return OutcomeApplied
}

// expireStatus marks one instance expired and fires its expiry side effect
// exactly once. The instance stays in the slice until the walking caller
// compacts, so expiring mid-walk never shifts indexes under an index loop.
// Removal and natural expiration racing within the same resolution step is
// tolerated through the Expired guard.
func (tc *turnContext) expireStatus(holder *game.Unit, st *game.StatusInstance, reason string) {
	if st.Expired {
		return
	}
	st.Expired = true

	def := tc.roster.Status(st.StatusID)
	tc.event(game.Event{
		Type:     game.EventStatusExpired,
		Target:   holder.InstanceID,
		StatusID: st.StatusID,
		Reason:   reason,
	})
	if def == nil {
		return
	}

	if def.ReleaseOnExpire && st.Payload > 0 && holder.IsAlive() {
		src := tc.unit(st.SourceID) // may be nil: source death is tolerated
		tc.applyDamage(attackContext{
			attacker: src,
			defender: holder,
			spec:     game.EffectSpec{Kind: game.EffectDamage, Amount: st.Payload, Pierce: true},
			skillID:  st.StatusID,
		})
	}
	if def.LethalOnExpire && holder.IsAlive() {
		holder.SetHP(0)
		tc.handleDeath(holder, nil)
	}
}

// sweepExpiredStatuses compacts every unit once at the end of the pass,
// catching instances marked outside a compacting walk (trap detachment
// during the action phase, for one).
func (tc *turnContext) sweepExpiredStatuses() {
	for i := range tc.g.Units {
		tc.compactStatuses(&tc.g.Units[i])
	}
}

// compactStatuses drops expired instances from the slice.
func (tc *turnContext) compactStatuses(u *game.Unit) {
	kept := u.Statuses[:0]
	for _, st := range u.Statuses {
		if !st.Expired {
			kept = append(kept, st)
		}
	}
	u.Statuses = kept
}

// tickStatuses decrements every instance of the unit's statuses registered
// at the given hook. An instance reaching zero is removed in the same step
// that decremented it.
func (tc *turnContext) tickStatuses(u *game.Unit, hook game.DecrementHook) {
	// Index-based loop: expiry side effects may append events but never
	// add statuses to the same holder mid-walk.
	for i := range u.Statuses {
		st := &u.Statuses[i]
		if st.Expired {
			continue
		}
		def := tc.roster.Status(st.StatusID)
		if def == nil || def.Hook != hook {
			continue
		}

		if def.TickDamage && st.Payload > 0 && u.IsAlive() {
			src := tc.unit(st.SourceID)
			tc.applyDamage(attackContext{
				attacker: src,
				defender: u,
				spec:     game.EffectSpec{Kind: game.EffectDamage, Amount: st.Payload, Pierce: true, ZeroAllowed: true},
				skillID:  st.StatusID,
			})
		}
		if def.TickHeal && st.Payload > 0 && u.IsAlive() {
			src := tc.unit(st.SourceID)
			tc.applyHeal(src, u, game.EffectSpec{Kind: game.EffectHeal, Amount: st.Payload}, st.StatusID)
		}

		if st.Remaining == game.UntilTriggered {
			continue
		}
		st.Remaining--
		if st.Remaining <= 0 {
			st.Remaining = 0
			tc.expireStatus(u, st, "duration_elapsed")
		}
	}
	tc.compactStatuses(u)
}

// runConditionChecks walks condition-hook statuses across the board. Traps
// tick while their source lives and detach when it dies; this is also
// where until-triggered effects with a dead source are cleaned up.
func (tc *turnContext) runConditionChecks() {
	for _, id := range tc.livingUnitIDs(0) {
		u := tc.unit(id)
		for i := range u.Statuses {
			st := &u.Statuses[i]
			if st.Expired {
				continue
			}
			def := tc.roster.Status(st.StatusID)
			if def == nil || def.Hook != game.HookConditionCheck {
				continue
			}
			src := tc.unit(st.SourceID)
			if def.DetachOnSourceDeath && (src == nil || !src.IsAlive()) {
				tc.expireStatus(u, st, "source_died")
				continue
			}
			if def.TickDamage && st.Payload > 0 && u.IsAlive() {
				tc.applyDamage(attackContext{
					attacker: src,
					defender: u,
					spec:     game.EffectSpec{Kind: game.EffectDamage, Amount: st.Payload, Pierce: true, ZeroAllowed: true},
					skillID:  st.StatusID,
				})
			}
			if st.Remaining != game.UntilTriggered {
				st.Remaining--
				if st.Remaining <= 0 {
					st.Remaining = 0
					tc.expireStatus(u, st, "condition_met")
				}
			}
		}
		tc.compactStatuses(u)
	}
}
