package engine

import "github.com/psyclimb/Boneglaive/internal/game"

// --- Modifier helpers --------------------------------------------------
//
// Conditional modifiers are keyed to a specific attacker/defender pair and
// live as status instances on the units involved. The pipeline receives
// the current attacker explicitly so a modifier scoped to one matchup can
// never leak into an unrelated attack.

// defenseWithModifiers returns the defender's effective defense against
// this attacker. A status that halves the holder's defense against its
// source applies only when the source is the current attacker.
func (tc *turnContext) defenseWithModifiers(defender, attacker *game.Unit) int {
	d := defender.EffectiveDefense()
	if attacker != nil {
		for i := range defender.Statuses {
			st := &defender.Statuses[i]
			if st.Expired {
				continue
			}
			def := tc.roster.Status(st.StatusID)
			if def == nil {
				continue
			}
			if def.HalveDefenseVsSource && st.SourceID == attacker.InstanceID {
				d /= 2
			}
		}
	}
	if d < 0 {
		d = 0
	}
	return d
}

// attackWithModifiers returns the attacker's effective output against this
// defender. A weaken status held by the attacker reduces its damage only
// toward the status source.
func (tc *turnContext) attackWithModifiers(attacker *game.Unit, defender *game.Unit, base int) int {
	a := base
	if defender != nil {
		for i := range attacker.Statuses {
			st := &attacker.Statuses[i]
			if st.Expired {
				continue
			}
			def := tc.roster.Status(st.StatusID)
			if def == nil {
				continue
			}
			if def.WeakenVsSourcePercent > 0 && st.SourceID == defender.InstanceID {
				a = a * (100 - def.WeakenVsSourcePercent) / 100
			}
		}
	}
	if a < 0 {
		a = 0
	}
	return a
}

// moveRangeWithModifiers returns the unit's movement allowance after
// status penalties. Immobilizing statuses zero it out.
func (tc *turnContext) moveRangeWithModifiers(u *game.Unit) int {
	m := u.EffectiveMoveRange()
	for i := range u.Statuses {
		st := &u.Statuses[i]
		if st.Expired {
			continue
		}
		def := tc.roster.Status(st.StatusID)
		if def == nil {
			continue
		}
		if def.Immobilize {
			return 0
		}
		if def.MovePenalty > 0 {
			m -= def.MovePenalty
		} else if st.Payload > 0 && def.MovePenalty == 0 && statusIsMovePenalty(def) {
			m -= st.Payload
		}
	}
	if m < 0 {
		m = 0
	}
	return m
}

func statusIsMovePenalty(def *game.StatusDef) bool {
	return !def.TickDamage && !def.TickHeal && !def.ReleaseOnExpire &&
		!def.HalveDefenseVsSource && def.WeakenVsSourcePercent == 0 &&
		!def.BlockHealing && !def.LethalOnExpire && !def.Immobilize
}

// isImmobilized reports whether any active status pins the unit in place.
func (tc *turnContext) isImmobilized(u *game.Unit) bool {
	if u.Flags.Immobile {
		return true
	}
	for i := range u.Statuses {
		st := &u.Statuses[i]
		if st.Expired {
			continue
		}
		if def := tc.roster.Status(st.StatusID); def != nil && def.Immobilize {
			return true
		}
	}
	return false
}

// healingBlocked reports whether a non-bypass heal is prevented.
func (tc *turnContext) healingBlocked(u *game.Unit) bool {
	for i := range u.Statuses {
		st := &u.Statuses[i]
		if st.Expired {
			continue
		}
		if def := tc.roster.Status(st.StatusID); def != nil && def.BlockHealing {
			return true
		}
	}
	return false
}
