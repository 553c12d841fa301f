package game

// EventType enumerates everything the engine reports to consumers.
type EventType string

const (
	EventUnitMoved      EventType = "unit_moved"
	EventUnitDisplaced  EventType = "unit_displaced"
	EventDamageDealt    EventType = "damage_dealt"
	EventHealed         EventType = "healed"
	EventStatusApplied  EventType = "status_applied"
	EventStatusRefreshed EventType = "status_refreshed"
	EventStatusStacked  EventType = "status_stacked"
	EventStatusIgnored  EventType = "status_ignored"
	EventStatusExpired  EventType = "status_expired"
	EventImmunityBlocked EventType = "immunity_blocked"
	EventUnitDied       EventType = "unit_died"
	EventUnitSummoned   EventType = "unit_summoned"
	EventActionFailed   EventType = "action_failed"
	EventRandomDraw     EventType = "random_draw"
	EventTurnAdvanced   EventType = "turn_advanced"
	EventGameOver       EventType = "game_over"
)

// ActionFailed reason codes. Stale orders are skipped with one of these,
// never raised as errors.
const (
	FailTargetInvalid   = "target_no_longer_valid"
	FailTileOccupied    = "tile_occupied"
	FailTileImpassable  = "tile_impassable"
	FailOutOfBounds     = "out_of_bounds"
	FailOutOfRange      = "out_of_range"
	FailImmobilized     = "unit_immobilized"
	FailCooldown        = "cooldown_not_ready"
	FailNoLineOfSight   = "no_line_of_sight"
	FailSkillFizzled    = "no_valid_target"
	FailUnknownSkill    = "unknown_skill"
	FailActorDead       = "actor_dead"
)

// Event is one entry in the ordered resolution log. Each event carries
// enough data for a consumer to render or checksum the transition without
// re-deriving it from state.
type Event struct {
	Seq    uint64    `json:"seq"`
	Turn   int       `json:"turn"`
	Type   EventType `json:"type"`
	Actor  int       `json:"actor,omitempty"`
	Target int       `json:"target,omitempty"`
	Amount int       `json:"amount,omitempty"`

	StatusID string `json:"status_id,omitempty"`
	SkillID  string `json:"skill_id,omitempty"`
	Reason   string `json:"reason,omitempty"`

	From *Position `json:"from,omitempty"`
	To   *Position `json:"to,omitempty"`

	// Roll records a consumed random draw so replays can be verified
	// against the log. Pointer so a draw of exactly zero still
	// serializes; events without a draw omit the field.
	Roll *float64 `json:"roll,omitempty"`

	// Player carries the winner for game_over and the next active player
	// for turn_advanced.
	Player int `json:"player,omitempty"`
}
