package engine

import (
	"github.com/psyclimb/Boneglaive/internal/game"
)

// resolveTargets expands a skill aimed from the caster's position into the
// concrete list of affected tiles, in deterministic near-to-far order.
//
// An empty result means the skill fizzles. Callers must treat that as a
// normal outcome, never a fault: a line aimed into a wall resolves to
// nothing and the action is simply logged as failed.
func (tc *turnContext) resolveTargets(skill *game.Skill, caster *game.Unit, aim game.Position) []game.Position {
	origin := caster.Pos()
	var candidates []game.Position

	switch skill.Target {
	case game.TargetSelf:
		candidates = []game.Position{origin}
	case game.TargetSquare:
		candidates = squareAround(origin, skill.Radius)
	case game.TargetCone:
		candidates = coneFrom(origin, aim, skill.Length)
	case game.TargetLine:
		return tc.lineTargets(skill, caster, aim)
	case game.TargetEnemy, game.TargetAlly, game.TargetTile:
		// Range 0 means unlimited; passives aim wherever their trigger
		// already established contact.
		if skill.Range > 0 && game.Dist(origin, aim) > skill.Range {
			return nil
		}
		candidates = []game.Position{aim}
	default:
		return nil
	}

	out := make([]game.Position, 0, len(candidates))
	for _, p := range candidates {
		if !tc.board.InBounds(p) {
			continue
		}
		if !skill.IgnoresLoS && !game.LineOfSight(tc.board, origin, p) {
			continue
		}
		if !tc.occupantAllowed(skill, caster, p) {
			continue
		}
		out = append(out, p)
	}
	sortByDistance(out, origin)
	return out
}

// lineTargets walks a straight line from the caster toward the aim point,
// stopping at the first blocking occupant or impassable tile. The stopping
// entity is included; tiles beyond it are not.
func (tc *turnContext) lineTargets(skill *game.Skill, caster *game.Unit, aim game.Position) []game.Position {
	origin := caster.Pos()
	dy, dx := stepToward(origin, aim)
	if dy == 0 && dx == 0 {
		return nil
	}
	max := skill.Length
	if max == 0 || (skill.Range > 0 && skill.Range < max) {
		max = skill.Range
	}
	out := make([]game.Position, 0, max)
	p := origin
	for i := 0; i < max; i++ {
		p = game.Position{Y: p.Y + dy, X: p.X + dx}
		if !tc.board.InBounds(p) {
			break
		}
		if !tc.board.IsPassable(p) {
			break
		}
		if occ := tc.unitAt(p); occ != nil {
			if tc.occupantAllowed(skill, caster, p) {
				out = append(out, p)
			}
			// The line stops at the first occupant regardless of whether
			// it was a legal target.
			break
		}
		if skill.Target == game.TargetLine && allowsEmptyTiles(skill) {
			out = append(out, p)
		}
	}
	return out
}

// occupantAllowed applies the skill's occupant-type constraint to a tile.
func (tc *turnContext) occupantAllowed(skill *game.Skill, caster *game.Unit, p game.Position) bool {
	occ := tc.unitAt(p)
	switch skill.Target {
	case game.TargetEnemy:
		return occ != nil && isEnemy(caster, occ)
	case game.TargetAlly:
		return occ != nil && !isEnemy(caster, occ) && occ != caster
	case game.TargetTile:
		// Tile-aimed skills need a free, passable destination when they
		// relocate someone there; pure area drops allow occupants.
		if needsFreeTile(skill) {
			return occ == nil && tc.board.IsPassable(p)
		}
		return true
	case game.TargetLine:
		return occ != nil && isEnemy(caster, occ)
	case game.TargetCone, game.TargetSquare:
		// Shapes hit enemies only; allies stand clear of friendly sweeps.
		return occ == nil || isEnemy(caster, occ)
	case game.TargetSelf:
		return true
	}
	return false
}

// needsFreeTile reports whether any effect step relocates a unit onto the
// aimed tile.
func needsFreeTile(skill *game.Skill) bool {
	for _, e := range skill.Effects {
		if e.Kind == game.EffectDisplace && e.SelfMove {
			return true
		}
		if e.Kind == game.EffectSummon {
			return true
		}
	}
	return false
}

// allowsEmptyTiles reports whether the skill affects ground as well as
// occupants (status clouds dropped along a line).
func allowsEmptyTiles(skill *game.Skill) bool {
	for _, e := range skill.Effects {
		if e.Kind == game.EffectSummon {
			return true
		}
	}
	return false
}

func squareAround(origin game.Position, radius int) []game.Position {
	out := make([]game.Position, 0, (2*radius+1)*(2*radius+1))
	for y := origin.Y - radius; y <= origin.Y+radius; y++ {
		for x := origin.X - radius; x <= origin.X+radius; x++ {
			p := game.Position{Y: y, X: x}
			if p == origin {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// coneFrom returns tiles in a forward cone: everything within length whose
// dominant direction matches the facing derived from the aim point.
func coneFrom(origin, aim game.Position, length int) []game.Position {
	fy, fx := stepToward(origin, aim)
	if fy == 0 && fx == 0 {
		return nil
	}
	out := make([]game.Position, 0, length*length)
	for y := origin.Y - length; y <= origin.Y+length; y++ {
		for x := origin.X - length; x <= origin.X+length; x++ {
			p := game.Position{Y: y, X: x}
			if p == origin || game.Dist(origin, p) > length {
				continue
			}
			dy, dx := p.Y-origin.Y, p.X-origin.X
			// Forward component must dominate: the tile's offset along the
			// facing axis is at least as large as its sideways offset.
			forward := dy*fy + dx*fx
			side := abs(dy*fx - dx*fy)
			if forward <= 0 || forward < side {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// stepToward reduces the offset from a to b to a unit step in one of the
// eight grid directions.
func stepToward(a, b game.Position) (dy, dx int) {
	if b.Y > a.Y {
		dy = 1
	} else if b.Y < a.Y {
		dy = -1
	}
	if b.X > a.X {
		dx = 1
	} else if b.X < a.X {
		dx = -1
	}
	return dy, dx
}

// sortByDistance orders tiles near-to-far from the origin, breaking ties
// by row then column so resolution order is stable.
func sortByDistance(ps []game.Position, origin game.Position) {
	less := func(a, b game.Position) bool {
		da, db := game.Dist(origin, a), game.Dist(origin, b)
		if da != db {
			return da < db
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	}
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && less(ps[j], ps[j-1]); j-- {
			ps[j-1], ps[j] = ps[j], ps[j-1]
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
