package engine

import "github.com/psyclimb/Boneglaive/internal/game"

// applySkillEffects resolves the skill's tiles and interprets its effect
// spec list in order. Both active skills and passive triggers funnel
// through here; passives are not a separate effect language.
//
// Returns the number of tiles affected (0 means the skill fizzled).
func (tc *turnContext) applySkillEffects(skill *game.Skill, caster *game.Unit, aim game.Position) int {
	targets := tc.resolveTargets(skill, caster, aim)
	if len(targets) == 0 {
		return 0
	}

	totalDealt := 0
	for _, spec := range skill.Effects {
		// A summon in an earlier effect may have reallocated g.Units.
		caster = tc.unit(caster.InstanceID)
		if spec.Chance > 0 {
			if tc.draw(caster.InstanceID) >= spec.Chance {
				continue
			}
		}
		switch spec.Kind {
		case game.EffectDamage:
			for _, p := range targets {
				totalDealt += tc.effectDamageAt(skill, caster, spec, p)
			}
		case game.EffectStatus:
			for _, p := range targets {
				if occ := tc.unitAt(p); occ != nil && occ != caster {
					tc.applyStatus(occ, spec, caster)
				} else if occ == caster && skill.Target == game.TargetSelf {
					tc.applyStatus(caster, spec, caster)
				}
			}
		case game.EffectHeal:
			amount := spec.Amount
			if spec.FractionOfDealt > 0 {
				amount = int(float64(totalDealt) * spec.FractionOfDealt)
			}
			if amount <= 0 {
				continue
			}
			healSpec := spec
			healSpec.Amount = amount
			switch skill.Target {
			case game.TargetSelf, game.TargetEnemy, game.TargetLine, game.TargetCone, game.TargetSquare:
				// Self-heals and drain-style heals restore the caster.
				tc.applyHeal(caster, caster, healSpec, skill.ID)
			default:
				for _, p := range targets {
					if occ := tc.unitAt(p); occ != nil {
						tc.applyHeal(caster, occ, healSpec, skill.ID)
					}
				}
			}
		case game.EffectDisplace:
			tc.effectDisplace(skill, caster, spec, targets)
		case game.EffectSummon:
			for _, p := range targets {
				tc.effectSummon(skill, caster, spec, p)
			}
		}
	}
	return len(targets)
}

// effectDamageAt damages the occupant of one resolved tile. Splash extends
// the hit to enemies adjacent to the tile at reduced responsibility of the
// caller's configured amount.
func (tc *turnContext) effectDamageAt(skill *game.Skill, caster *game.Unit, spec game.EffectSpec, p game.Position) int {
	total := 0
	if occ := tc.unitAt(p); occ != nil && isEnemy(caster, occ) {
		total += tc.applyDamage(attackContext{
			attacker: caster,
			defender: occ,
			spec:     spec,
			skillID:  skill.ID,
		})
	}
	if spec.Splash {
		splash := spec
		splash.Splash = false
		splash.Amount = spec.Amount / 2
		splash.MinDamage = 0
		for _, adj := range squareAround(p, 1) {
			occ := tc.unitAt(adj)
			if occ == nil || occ == caster || !isEnemy(caster, occ) {
				continue
			}
			total += tc.applyDamage(attackContext{
				attacker: caster,
				defender: occ,
				spec:     splash,
				skillID:  skill.ID,
			})
		}
	}
	return total
}

// effectDisplace moves units. SelfMove relocates the caster to the aimed
// tile; Push shoves each struck unit away from the caster (or pulls, when
// negative). Forced movement is a status-class effect: immune units are
// never displaced.
func (tc *turnContext) effectDisplace(skill *game.Skill, caster *game.Unit, spec game.EffectSpec, targets []game.Position) {
	if spec.SelfMove {
		dest := targets[0]
		if !tc.tileFree(dest) {
			tc.event(game.Event{
				Type:   game.EventActionFailed,
				Actor:  caster.InstanceID,
				Reason: game.FailTileOccupied,
				To:     posPtr(dest),
			})
			return
		}
		from := caster.Pos()
		caster.Y, caster.X = dest.Y, dest.X
		tc.event(game.Event{
			Type:    game.EventUnitDisplaced,
			Actor:   caster.InstanceID,
			Target:  caster.InstanceID,
			SkillID: skill.ID,
			From:    posPtr(from),
			To:      posPtr(dest),
		})
		return
	}
	if spec.Push == 0 {
		return
	}
	for _, p := range targets {
		occ := tc.unitAt(p)
		if occ == nil || occ == caster {
			continue
		}
		if occ.Flags.EffectImmune {
			tc.event(game.Event{
				Type:   game.EventImmunityBlocked,
				Actor:  caster.InstanceID,
				Target: occ.InstanceID,
				Reason: "forced_movement",
			})
			continue
		}
		dy, dx := stepToward(caster.Pos(), occ.Pos())
		steps := spec.Push
		if steps < 0 {
			dy, dx = -dy, -dx
			steps = -steps
		}
		from := occ.Pos()
		cur := from
		for i := 0; i < steps; i++ {
			next := game.Position{Y: cur.Y + dy, X: cur.X + dx}
			if !tc.tileFree(next) {
				break
			}
			cur = next
		}
		if cur == from {
			continue
		}
		occ.Y, occ.X = cur.Y, cur.X
		tc.event(game.Event{
			Type:    game.EventUnitDisplaced,
			Actor:   caster.InstanceID,
			Target:  occ.InstanceID,
			SkillID: skill.ID,
			From:    posPtr(from),
			To:      posPtr(cur),
		})
	}
}

// effectSummon places a new roster unit on a free tile, owned by the
// caster's player. A lifespan status makes the summon self-terminate.
func (tc *turnContext) effectSummon(skill *game.Skill, caster *game.Unit, spec game.EffectSpec, p game.Position) {
	if spec.SummonName == "" || !tc.tileFree(p) {
		return
	}
	nu := tc.roster.NewUnit(spec.SummonName, caster.PlayerNum, tc.g.NextInstanceID(), p)
	if nu == nil {
		return
	}
	tc.g.Units = append(tc.g.Units, *nu)
	added := &tc.g.Units[len(tc.g.Units)-1]
	// Reindex: appending may have reallocated the backing array.
	tc.byID = make(map[int]*game.Unit, len(tc.g.Units))
	for i := range tc.g.Units {
		tc.byID[tc.g.Units[i].InstanceID] = &tc.g.Units[i]
	}
	tc.event(game.Event{
		Type:    game.EventUnitSummoned,
		Actor:   caster.InstanceID,
		Target:  added.InstanceID,
		SkillID: skill.ID,
		To:      posPtr(p),
	})
	if spec.SummonLifespan > 0 {
		tc.applyStatus(added, game.EffectSpec{
			Kind:     game.EffectStatus,
			StatusID: "lifespan",
			Duration: spec.SummonLifespan,
		}, caster)
	}
}
