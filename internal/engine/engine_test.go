package engine

import (
	"github.com/psyclimb/Boneglaive/internal/game"
)

// testRoster builds a compact roster exercising every effect variant.
func testRoster() *game.Roster {
	return &game.Roster{
		Units: map[string]game.UnitDef{
			"BLADE": {Name: "BLADE", MaxHP: 20, Attack: 6, Defense: 2, MoveRange: 3, AttackRange: 1,
				SkillIDs: []string{"lunge", "bolt", "leap", "volley", "conjure"}},
			"BULWARK": {Name: "BULWARK", MaxHP: 24, Attack: 4, Defense: 3, MoveRange: 2, AttackRange: 1,
				PassiveID: "spikes"},
			"AEGIS": {Name: "AEGIS", MaxHP: 18, Attack: 4, Defense: 1, MoveRange: 3, AttackRange: 3,
				PassiveID: "null_field"},
			"SENTINEL": {Name: "SENTINEL", MaxHP: 20, Attack: 5, Defense: 1, MoveRange: 3, AttackRange: 1,
				PassiveID: "backlash"},
			"RAILBIRD": {Name: "RAILBIRD", MaxHP: 14, Attack: 5, Defense: 1, MoveRange: 4, AttackRange: 2,
				PassiveID: "static_arc"},
			"WISP": {Name: "WISP", MaxHP: 4, Attack: 1, Defense: 0, MoveRange: 2, AttackRange: 1,
				Summonable: true},
		},
		Skills: map[string]game.Skill{
			"lunge": {ID: "lunge", Kind: game.SkillActive, Target: game.TargetEnemy, Range: 1, Cooldown: 2,
				Effects: []game.EffectSpec{
					{Kind: game.EffectDamage, Amount: 4},
					{Kind: game.EffectStatus, StatusID: "slow"},
				}},
			"bolt": {ID: "bolt", Kind: game.SkillActive, Target: game.TargetEnemy, Range: 5, Cooldown: 2,
				IgnoresLoS: true,
				Effects:    []game.EffectSpec{{Kind: game.EffectDamage, Amount: 6, Pierce: true}}},
			"leap": {ID: "leap", Kind: game.SkillActive, Target: game.TargetTile, Range: 4, Cooldown: 3,
				Effects: []game.EffectSpec{{Kind: game.EffectDisplace, SelfMove: true}}},
			"volley": {ID: "volley", Kind: game.SkillActive, Target: game.TargetLine, Length: 6, Cooldown: 1,
				Effects: []game.EffectSpec{{Kind: game.EffectDamage, Amount: 5}}},
			"conjure": {ID: "conjure", Kind: game.SkillActive, Target: game.TargetTile, Range: 2, Cooldown: 4,
				Effects: []game.EffectSpec{{Kind: game.EffectSummon, SummonName: "WISP", SummonLifespan: 2}}},

			"spikes": {ID: "spikes", Kind: game.SkillPassive, Target: game.TargetEnemy,
				Trigger: game.TriggerPostDamageTaken,
				Effects: []game.EffectSpec{{Kind: game.EffectDamage, Amount: 2, Pierce: true}}},
			"null_field": {ID: "null_field", Kind: game.SkillPassive, Target: game.TargetSelf,
				GrantFlags: game.CapabilityFlags{EffectImmune: true}},
			"backlash": {ID: "backlash", Kind: game.SkillPassive, Target: game.TargetEnemy,
				Trigger: game.TriggerThreshold, ThresholdFraction: 0.5,
				Effects: []game.EffectSpec{{Kind: game.EffectDamage, Amount: 3, Pierce: true}}},
			"static_arc": {ID: "static_arc", Kind: game.SkillPassive, Target: game.TargetEnemy,
				Trigger: game.TriggerPostDamageDealt, ChancePerAlly: 0.5,
				Effects: []game.EffectSpec{{Kind: game.EffectDamage, Amount: 2, Pierce: true, ZeroAllowed: true}}},
		},
		Statuses: map[string]game.StatusDef{
			"slow": {ID: "slow", Duration: 2, Stacking: game.StackRefresh, Hook: game.HookAffectedTurnEnd,
				MovePenalty: 1},
			"venom": {ID: "venom", Duration: 2, Stacking: game.StackRefresh, Hook: game.HookOwnerTurnStart,
				TickDamage: true},
			"snare": {ID: "snare", Duration: 1, Stacking: game.StackRefresh, Hook: game.HookAffectedTurnEnd,
				Immobilize: true},
			"charge": {ID: "charge", Duration: 1, Stacking: game.StackIndependent, Hook: game.HookOwnerTurnStart,
				ReleaseOnExpire: true},
			"trap": {ID: "trap", Duration: game.UntilTriggered, Stacking: game.StackIgnore, Hook: game.HookConditionCheck,
				Immobilize: true, TickDamage: true, DetachOnSourceDeath: true},
			"blight": {ID: "blight", Duration: 2, Stacking: game.StackRefresh, Hook: game.HookAffectedTurnEnd,
				BlockHealing: true},
			"bane": {ID: "bane", Duration: 2, Stacking: game.StackRefresh, Hook: game.HookAffectedTurnEnd,
				HalveDefenseVsSource: true},
			"doubt": {ID: "doubt", Duration: 2, Stacking: game.StackRefresh, Hook: game.HookAffectedTurnEnd,
				WeakenVsSourcePercent: 50},
			"mist": {ID: "mist", Duration: 2, Stacking: game.StackRefresh, Hook: game.HookOwnerTurnStart,
				TickHeal: true},
			"lifespan": {ID: "lifespan", Duration: 2, Stacking: game.StackIgnore, Hook: game.HookOwnerTurnStart,
				LethalOnExpire: true},
		},
	}
}

func flatBoard() *game.Board {
	return game.NewBoard("flat", game.BoardHeight, game.BoardWidth)
}

func testUnit(roster *game.Roster, name string, player, id, y, x int) game.Unit {
	u := roster.NewUnit(name, player, id, game.Position{Y: y, X: x})
	return *u
}

func testGame(seed int64, units ...game.Unit) *game.GameState {
	return &game.GameState{
		Turn:         1,
		Phase:        game.PhaseReady,
		Status:       game.StatusInProgress,
		ActivePlayer: 1,
		Seed:         seed,
		BoardName:    "flat",
		Players: []game.Player{
			{PlayerNum: 1, HasSubmittedOrders: true},
			{PlayerNum: 2, HasSubmittedOrders: true},
		},
		Units: units,
	}
}

func newTestContext(g *game.GameState) *turnContext {
	return newTurnContext(g, flatBoard(), testRoster())
}

func eventsOfType(g *game.GameState, t game.EventType) []game.Event {
	var out []game.Event
	for _, e := range g.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func orderAttack(u *game.Unit, target game.Position) {
	u.Order = &game.CommittedOrder{Target: &target}
}

func orderSkill(u *game.Unit, skillID string, target game.Position) {
	u.Order = &game.CommittedOrder{SkillID: skillID, Target: &target}
}

func orderMove(u *game.Unit, dest game.Position) {
	u.Order = &game.CommittedOrder{MoveTo: &dest}
}
