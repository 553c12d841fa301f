package game

import "gorm.io/gorm"

// TurnSnapshot is a persisted canonical serialization of a match after a
// resolved turn, together with its checksum. Rows are immutable once
// written; they exist for divergence detection and replay.
type TurnSnapshot struct {
	gorm.Model
	GameID   uint   `json:"game_id" gorm:"index"`
	Turn     int    `json:"turn"`
	Checksum string `json:"checksum"`
	Data     []byte `json:"data"`
}

func (TurnSnapshot) TableName() string {
	return "turn_snapshots"
}
