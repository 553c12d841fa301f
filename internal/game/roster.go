package game

// SkillKind distinguishes player-invoked skills from automatic ones.
type SkillKind string

const (
	SkillActive  SkillKind = "active"
	SkillPassive SkillKind = "passive"
)

// TargetMode defines what a skill may be aimed at.
type TargetMode string

const (
	TargetSelf   TargetMode = "self"
	TargetEnemy  TargetMode = "enemy"
	TargetAlly   TargetMode = "ally"
	TargetTile   TargetMode = "tile"
	TargetLine   TargetMode = "line"
	TargetCone   TargetMode = "cone"
	TargetSquare TargetMode = "square"
)

// EffectKind is the closed set of effect variants the pipeline interprets.
// Unit-specific nuance lives in parameterization, not in per-skill code.
type EffectKind string

const (
	EffectDamage   EffectKind = "damage"
	EffectStatus   EffectKind = "status"
	EffectDisplace EffectKind = "displace"
	EffectHeal     EffectKind = "heal"
	EffectSummon   EffectKind = "summon"
)

// EffectSpec is one step of a skill's effect list. All numeric values come
// from configuration; the engine only interprets them.
type EffectSpec struct {
	Kind EffectKind `json:"kind"`

	// Damage / heal magnitude.
	Amount int `json:"amount,omitempty"`
	// Pierce bypasses defense mitigation entirely.
	Pierce bool `json:"pierce,omitempty"`
	// MinDamage raises the floor above the default 1 (debris-style hits).
	MinDamage int `json:"min_damage,omitempty"`
	// ZeroAllowed permits a final result of 0 (pure status-application
	// hits that should not chip).
	ZeroAllowed bool `json:"zero_allowed,omitempty"`
	// Splash applies the step to units adjacent to the primary target too.
	Splash bool `json:"splash,omitempty"`

	// Status application.
	StatusID string `json:"status_id,omitempty"`
	// Duration overrides the status definition's default when > 0.
	Duration int `json:"duration,omitempty"`
	// Payload seeds the status instance payload (tick damage, penalty
	// magnitude, stored charge).
	Payload int `json:"payload,omitempty"`

	// Displacement. Push moves the target away from the caster (negative
	// pulls). SelfMove relocates the caster to the aimed tile instead.
	Push     int  `json:"push,omitempty"`
	SelfMove bool `json:"self_move,omitempty"`

	// BypassHealBlock lets a heal ignore healing-prevention statuses.
	BypassHealBlock bool `json:"bypass_heal_block,omitempty"`

	// Summon places a new unit of this roster name on the aimed tile.
	SummonName string `json:"summon_name,omitempty"`
	// SummonLifespan attaches a lifespan status so the summon expires.
	SummonLifespan int `json:"summon_lifespan,omitempty"`

	// Chance gates the step on a seeded random draw when > 0.
	Chance float64 `json:"chance,omitempty"`

	// FractionOfDealt sizes a heal from the total damage the skill dealt
	// so far (retaliation passives that drain).
	FractionOfDealt float64 `json:"fraction_of_dealt,omitempty"`
}

// Skill is a stateless definition. Only the per-unit cooldown is mutable
// state, and that lives on the unit.
type Skill struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Kind        SkillKind  `json:"kind"`
	Target      TargetMode `json:"target"`

	Range int `json:"range,omitempty"`
	// Radius sizes square shapes; Length caps lines and cones.
	Radius int `json:"radius,omitempty"`
	Length int `json:"length,omitempty"`

	Cooldown   int  `json:"cooldown,omitempty"`
	IgnoresLoS bool `json:"ignores_los,omitempty"`

	Effects []EffectSpec `json:"effects"`

	// Passive trigger wiring (active skills leave these zero).
	Trigger TriggerPoint `json:"trigger,omitempty"`
	// ThresholdFraction arms threshold-crossing passives (fires when the
	// HP fraction crosses at or below this value).
	ThresholdFraction float64 `json:"threshold_fraction,omitempty"`
	// Repeatable lets a threshold passive re-arm after firing.
	Repeatable bool `json:"repeatable,omitempty"`
	// ChancePerAlly scales trigger probability by the live count of
	// allied units sharing this passive.
	ChancePerAlly float64 `json:"chance_per_ally,omitempty"`
	// GrantFlags are capability flags the passive confers permanently.
	GrantFlags CapabilityFlags `json:"grant_flags,omitempty"`
}

// TriggerPoint is a fixed point in resolution where passives are evaluated.
type TriggerPoint string

const (
	TriggerNone            TriggerPoint = ""
	TriggerTurnStart       TriggerPoint = "turn_start"
	TriggerPostDamageDealt TriggerPoint = "post_damage_dealt"
	TriggerPostDamageTaken TriggerPoint = "post_damage_taken"
	TriggerOnDeath         TriggerPoint = "on_death"
	TriggerThreshold       TriggerPoint = "threshold"
)

// StackPolicy controls what a re-application of an active status does.
type StackPolicy string

const (
	// StackRefresh resets the remaining duration to the full value.
	StackRefresh StackPolicy = "refresh"
	// StackIndependent adds another instance alongside existing ones.
	StackIndependent StackPolicy = "independent"
	// StackIgnore drops the new application while one is active.
	StackIgnore StackPolicy = "ignore"
)

// DecrementHook names the single point at which a status type ticks.
type DecrementHook string

const (
	HookOwnerTurnStart  DecrementHook = "owner_turn_start"
	HookAffectedTurnEnd DecrementHook = "affected_turn_end"
	HookConditionCheck  DecrementHook = "condition_check"
)

// StatusDef is the static definition of a status effect type. Expiration
// timing is modeled explicitly: each type registers exactly one hook.
type StatusDef struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Duration    int           `json:"duration"` // UntilTriggered for unbounded
	Stacking    StackPolicy   `json:"stacking"`
	Hook        DecrementHook `json:"hook"`

	// Behavior flags interpreted by the engine.
	MovePenalty int  `json:"move_penalty,omitempty"`
	Immobilize  bool `json:"immobilize,omitempty"`
	// TickDamage deals the instance payload as damage on each hook tick.
	TickDamage bool `json:"tick_damage,omitempty"`
	// TickHeal heals the instance payload on each hook tick.
	TickHeal bool `json:"tick_heal,omitempty"`
	// ReleaseOnExpire deals the accumulated payload as pierce damage when
	// the status ends (delayed stored-damage effects).
	ReleaseOnExpire bool `json:"release_on_expire,omitempty"`
	// HalveDefenseVsSource halves the holder's defense, but only against
	// attacks made by the status source.
	HalveDefenseVsSource bool `json:"halve_defense_vs_source,omitempty"`
	// WeakenVsSourcePercent reduces the holder's damage output by this
	// percentage, but only against the status source.
	WeakenVsSourcePercent int `json:"weaken_vs_source_percent,omitempty"`
	// BlockHealing prevents non-bypass heals while active.
	BlockHealing bool `json:"block_healing,omitempty"`
	// DetachOnSourceDeath removes the instance when its source dies
	// (traps release their victim).
	DetachOnSourceDeath bool `json:"detach_on_source_death,omitempty"`
	// LethalOnExpire kills the holder when the status ends (summon
	// lifespans).
	LethalOnExpire bool `json:"lethal_on_expire,omitempty"`
}

// UnitDef is a roster entry: base stats plus skill references.
type UnitDef struct {
	Name        string   `json:"name"`
	MaxHP       int      `json:"max_hp"`
	Attack      int      `json:"attack"`
	Defense     int      `json:"defense"`
	MoveRange   int      `json:"move_range"`
	AttackRange int      `json:"attack_range"`
	PassiveID   string   `json:"passive_id,omitempty"`
	SkillIDs    []string `json:"skill_ids,omitempty"`
	// Summonable units cannot be placed at setup, only created mid-game.
	Summonable bool `json:"summonable,omitempty"`
}

// Roster is the full set of definitions a match runs against. It is
// loaded from configuration and never mutated at runtime.
type Roster struct {
	Units    map[string]UnitDef
	Skills   map[string]Skill
	Statuses map[string]StatusDef
}

// Skill returns the definition for an id, or nil.
func (r *Roster) Skill(id string) *Skill {
	if s, ok := r.Skills[id]; ok {
		return &s
	}
	return nil
}

// Status returns the definition for an id, or nil.
func (r *Roster) Status(id string) *StatusDef {
	if s, ok := r.Statuses[id]; ok {
		return &s
	}
	return nil
}

// Unit returns the roster entry for a name, or nil.
func (r *Roster) Unit(name string) *UnitDef {
	if u, ok := r.Units[name]; ok {
		return &u
	}
	return nil
}

// Passive returns the unit's passive skill definition, or nil.
func (r *Roster) Passive(u *Unit) *Skill {
	def := r.Unit(u.Name)
	if def == nil || def.PassiveID == "" {
		return nil
	}
	return r.Skill(def.PassiveID)
}

// NewUnit instantiates a roster entry at a position. Capability flags
// granted by the unit's passive are applied immediately.
func (r *Roster) NewUnit(name string, player, instanceID int, pos Position) *Unit {
	def := r.Unit(name)
	if def == nil {
		return nil
	}
	u := &Unit{
		InstanceID:  instanceID,
		PlayerNum:   player,
		Name:        def.Name,
		Y:           pos.Y,
		X:           pos.X,
		MaxHP:       def.MaxHP,
		HP:          def.MaxHP,
		Attack:      def.Attack,
		Defense:     def.Defense,
		MoveRange:   def.MoveRange,
		AttackRange: def.AttackRange,
		Cooldowns:   make(map[string]int),
	}
	if p := r.Passive(u); p != nil {
		if p.GrantFlags.EffectImmune {
			u.Flags.EffectImmune = true
		}
		if p.GrantFlags.Invulnerable {
			u.Flags.Invulnerable = true
		}
		if p.GrantFlags.Immobile {
			u.Flags.Immobile = true
		}
	}
	return u
}
