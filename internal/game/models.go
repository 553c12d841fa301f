package game

import (
	"gorm.io/gorm"
)

// Position is a grid coordinate (row, column).
type Position struct {
	Y int `json:"y"`
	X int `json:"x"`
}

// Dist returns the Chebyshev distance between two positions. Diagonal
// steps count as one, matching the movement and range rules.
func Dist(a, b Position) int {
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	if dy > dx {
		return dy
	}
	return dx
}

// CapabilityFlags are categorical blocks a unit may carry. They gate whole
// classes of effects rather than individual skills.
type CapabilityFlags struct {
	// EffectImmune blocks every status application and forced movement.
	EffectImmune bool `json:"effect_immune"`
	// Invulnerable blocks all HP loss.
	Invulnerable bool `json:"invulnerable"`
	// Immobile units never move; their move orders are discarded.
	Immobile bool `json:"immobile"`
}

// CommittedOrder is a player's locked-in instruction for one unit: an
// optional move and an optional attack or skill use. Seq records submission
// order and is used only as a deterministic tie-breaker.
type CommittedOrder struct {
	MoveTo *Position `json:"move_to,omitempty"`
	// SkillID selects a skill; empty with a non-nil Target means a basic
	// attack using the unit's weapon stats.
	SkillID string    `json:"skill_id,omitempty"`
	Target  *Position `json:"target,omitempty"`
	Seq     int       `json:"seq"`
}

// StatusInstance is one active status effect attached to a unit.
type StatusInstance struct {
	StatusID string `json:"status_id"`
	// Remaining turns. UntilTriggered (-1) means the effect only ends when
	// its condition fires or it is removed explicitly.
	Remaining int `json:"remaining"`
	// SourceID is the instance id of the unit that applied the effect. The
	// source may die while the effect persists; holders must tolerate a
	// dangling id.
	SourceID int `json:"source_id"`
	// Payload carries per-instance state: stored damage for delayed
	// release, tick damage for damage-over-time, penalty magnitude.
	Payload int `json:"payload,omitempty"`
	// Expired guards against double-firing expiry side effects when
	// removal and natural expiration land in the same resolution step.
	Expired bool `json:"-"`
}

// UntilTriggered marks a status with no fixed duration.
const UntilTriggered = -1

// Unit is a combat entity on the board. All mutation during EXECUTE goes
// through the turn scheduler; other components only read.
type Unit struct {
	gorm.Model
	GameStateID uint `json:"-"`

	// InstanceID is stable for the life of the match and defines the
	// deterministic resolution order.
	InstanceID int    `json:"instance_id"`
	PlayerNum  int    `json:"player_num"`
	Name       string `json:"name"`

	Y int `json:"y"`
	X int `json:"x"`

	MaxHP       int `json:"max_hp"`
	HP          int `json:"hp"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	MoveRange   int `json:"move_range"`
	AttackRange int `json:"attack_range"`

	HPBonus          int `json:"hp_bonus"`
	AttackBonus      int `json:"attack_bonus"`
	DefenseBonus     int `json:"defense_bonus"`
	MoveRangeBonus   int `json:"move_range_bonus"`
	AttackRangeBonus int `json:"attack_range_bonus"`

	Flags CapabilityFlags `json:"flags" gorm:"serializer:json"`

	Statuses  []StatusInstance `json:"statuses" gorm:"serializer:json"`
	Cooldowns map[string]int   `json:"cooldowns" gorm:"serializer:json"`
	Order     *CommittedOrder  `json:"order,omitempty" gorm:"serializer:json"`

	// ThresholdFired records that the unit's once-per-game threshold
	// passive has already triggered.
	ThresholdFired bool `json:"threshold_fired"`
}

// Pos returns the unit's grid position.
func (u *Unit) Pos() Position { return Position{Y: u.Y, X: u.X} }

// IsAlive reports whether the unit is still in play.
func (u *Unit) IsAlive() bool { return u.HP > 0 }

// EffectiveAttack is the base stat plus bonuses, never negative.
func (u *Unit) EffectiveAttack() int { return clampNonNegative(u.Attack + u.AttackBonus) }

// EffectiveDefense is the base stat plus bonuses, never negative.
func (u *Unit) EffectiveDefense() int { return clampNonNegative(u.Defense + u.DefenseBonus) }

// EffectiveMoveRange is the base stat plus bonuses, never negative.
func (u *Unit) EffectiveMoveRange() int { return clampNonNegative(u.MoveRange + u.MoveRangeBonus) }

// EffectiveAttackRange is the base stat plus bonuses, never negative.
func (u *Unit) EffectiveAttackRange() int {
	return clampNonNegative(u.AttackRange + u.AttackRangeBonus)
}

// SetHP writes the unit's HP clamped to [0, max]. HP never goes negative.
func (u *Unit) SetHP(v int) {
	max := u.MaxHP + u.HPBonus
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	u.HP = v
}

// HasStatus reports whether a non-expired instance of the given status is
// attached.
func (u *Unit) HasStatus(statusID string) bool {
	return u.FindStatus(statusID) != nil
}

// FindStatus returns the first non-expired instance of the given status,
// or nil.
func (u *Unit) FindStatus(statusID string) *StatusInstance {
	for i := range u.Statuses {
		if u.Statuses[i].StatusID == statusID && !u.Statuses[i].Expired {
			return &u.Statuses[i]
		}
	}
	return nil
}

// CooldownRemaining returns the turns left before the skill is usable.
func (u *Unit) CooldownRemaining(skillID string) int {
	if u.Cooldowns == nil {
		return 0
	}
	return u.Cooldowns[skillID]
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Player is one of the two participants in a match.
type Player struct {
	gorm.Model
	GameStateID uint   `json:"-"`
	PlayerNum   int    `json:"player_num"`
	PlayerName  string `json:"player_name"`
	PlayerUUID  string `json:"player_uuid"`
	// HasSubmittedOrders flips when the player commits the turn. Both
	// players submitting triggers resolution.
	HasSubmittedOrders bool `json:"has_submitted_orders"`
}

// Store per-game participants in a dedicated table for clarity.
func (Player) TableName() string { return "game_players" }

// Match phases.
const (
	PhaseSetup    = "setup"
	PhaseReady    = "ready"
	PhaseExecute  = "execute"
	PhaseGameOver = "game_over"
)

// Match statuses.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// GameState is the authoritative match state. It is created once per match
// and advances only through the turn scheduler.
type GameState struct {
	gorm.Model
	Name     string   `json:"name" gorm:"size:32"`
	JoinCode string   `json:"join_code" gorm:"unique"`
	Players  []Player `json:"players"`
	Units    []Unit   `json:"units"`

	Turn         int    `json:"turn"`
	Phase        string `json:"phase"`
	Status       string `json:"status"`
	ActivePlayer int    `json:"active_player"`
	WinnerNum    int    `json:"winner_num"`
	Message      string `json:"message"`

	BoardName string `json:"board_name"`

	// Seed feeds every random draw made during resolution. Replaying the
	// same state with the same orders reproduces identical outcomes.
	Seed int64 `json:"seed"`

	EventSeq uint64  `json:"event_seq"`
	Events   []Event `json:"events" gorm:"serializer:json"`
}

// UnitByInstanceID returns the unit with the given stable id, dead or
// alive, or nil.
func (g *GameState) UnitByInstanceID(id int) *Unit {
	for i := range g.Units {
		if g.Units[i].InstanceID == id {
			return &g.Units[i]
		}
	}
	return nil
}

// LivingUnitAt returns the living unit occupying the position, or nil.
func (g *GameState) LivingUnitAt(p Position) *Unit {
	for i := range g.Units {
		if g.Units[i].IsAlive() && g.Units[i].Y == p.Y && g.Units[i].X == p.X {
			return &g.Units[i]
		}
	}
	return nil
}

// PlayerByNum returns the participant record for player 1 or 2, or nil.
func (g *GameState) PlayerByNum(n int) *Player {
	for i := range g.Players {
		if g.Players[i].PlayerNum == n {
			return &g.Players[i]
		}
	}
	return nil
}

// NextInstanceID returns the next free stable unit id (summons keep the
// ascending-order invariant).
func (g *GameState) NextInstanceID() int {
	max := 0
	for i := range g.Units {
		if g.Units[i].InstanceID > max {
			max = g.Units[i].InstanceID
		}
	}
	return max + 1
}

// AppendEvent stamps the event with the next sequence number and current
// turn and adds it to the log.
func (g *GameState) AppendEvent(e Event) {
	g.EventSeq++
	e.Seq = g.EventSeq
	e.Turn = g.Turn
	g.Events = append(g.Events, e)
}
