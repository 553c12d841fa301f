package engine

import "github.com/psyclimb/Boneglaive/internal/game"

// firePassives evaluates a unit's passive at a fixed trigger point. The
// passive's effect list goes through the same damage/status machinery as
// active skills. `other` is the counterpart unit for hit-driven triggers
// (the defender for post-damage-dealt, the attacker for post-damage-taken)
// and may be nil.
func (tc *turnContext) firePassives(trigger game.TriggerPoint, u *game.Unit, other *game.Unit) {
	p := tc.roster.Passive(u)
	if p == nil || p.Trigger != trigger {
		return
	}
	// Threshold passives go through evaluateThreshold, which checks the
	// crossing; they never fire from the generic path.
	if trigger == game.TriggerThreshold {
		return
	}
	if len(p.Effects) == 0 {
		return
	}
	if tc.firing[u.InstanceID] {
		return
	}
	if !tc.passiveChancePasses(p, u) {
		return
	}

	aim := u.Pos()
	if other != nil {
		aim = other.Pos()
	}
	tc.firing[u.InstanceID] = true
	tc.applySkillEffects(p, u, aim)
	delete(tc.firing, u.InstanceID)
}

// passiveChancePasses performs the probabilistic gate for shared-passive
// units. The probability comes from a resolution-time count of living
// allies carrying the same passive, never a cached value, and consumes
// exactly one deterministic draw.
func (tc *turnContext) passiveChancePasses(p *game.Skill, u *game.Unit) bool {
	if p.ChancePerAlly <= 0 {
		return true
	}
	count := 0
	for _, ally := range tc.livingUnits(u.PlayerNum) {
		def := tc.roster.Unit(ally.Name)
		if def != nil && def.PassiveID == p.ID {
			count++
		}
	}
	chance := p.ChancePerAlly * float64(count)
	if chance > 1 {
		chance = 1
	}
	return tc.draw(u.InstanceID) < chance
}

// evaluateThreshold fires a threshold-crossing passive when the HP
// fraction moves from above the configured value to at-or-below it in one
// hit. The check is edge-triggered: staying low never re-fires it, and a
// non-repeatable passive fires at most once per game.
func (tc *turnContext) evaluateThreshold(u *game.Unit, prevHP int, attacker *game.Unit) {
	p := tc.roster.Passive(u)
	if p == nil || p.Trigger != game.TriggerThreshold || p.ThresholdFraction <= 0 {
		return
	}
	if u.ThresholdFired && !p.Repeatable {
		return
	}
	max := u.MaxHP + u.HPBonus
	if max <= 0 {
		return
	}
	prevFrac := float64(prevHP) / float64(max)
	newFrac := float64(u.HP) / float64(max)
	if prevFrac <= p.ThresholdFraction || newFrac > p.ThresholdFraction {
		return
	}
	u.ThresholdFired = true
	if !tc.passiveChancePasses(p, u) {
		return
	}
	// Directional shapes face the unit that pushed the holder over the
	// threshold; sourceless damage retaliates from the holder's own tile.
	aim := u.Pos()
	if attacker != nil {
		aim = attacker.Pos()
	}
	tc.applySkillEffects(p, u, aim)
}

// fireTurnStartPassives runs turn-start passives for every living unit of
// the player whose turn is beginning, in stable order.
func (tc *turnContext) fireTurnStartPassives(player int) {
	for _, id := range tc.livingUnitIDs(player) {
		tc.firePassives(game.TriggerTurnStart, tc.unit(id), nil)
	}
}
