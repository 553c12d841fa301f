package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/psyclimb/Boneglaive/internal/game"
)

// snapshotUnit is the wire form of a unit: every field that resolution
// reads, none of the storage bookkeeping.
type snapshotUnit struct {
	InstanceID  int                   `json:"instance_id"`
	PlayerNum   int                   `json:"player_num"`
	Name        string                `json:"name"`
	Y           int                   `json:"y"`
	X           int                   `json:"x"`
	MaxHP       int                   `json:"max_hp"`
	HP          int                   `json:"hp"`
	Attack      int                   `json:"attack"`
	Defense     int                   `json:"defense"`
	MoveRange   int                   `json:"move_range"`
	AttackRange int                   `json:"attack_range"`
	HPBonus     int                   `json:"hp_bonus"`
	AttackBonus int                   `json:"attack_bonus"`
	DefenseBonus int                  `json:"defense_bonus"`
	MoveRangeBonus int                `json:"move_range_bonus"`
	AttackRangeBonus int              `json:"attack_range_bonus"`
	Flags       game.CapabilityFlags  `json:"flags"`
	Statuses    []game.StatusInstance `json:"statuses"`
	Cooldowns   map[string]int        `json:"cooldowns"`
	Order       *game.CommittedOrder  `json:"order,omitempty"`
	ThresholdFired bool               `json:"threshold_fired"`
}

// snapshotState serializes a match as a pure function of game state: no
// timestamps, no database ids, no scheduler-internal variables. Two
// engines holding equal states produce byte-identical snapshots, which is
// what the network parity checksum relies on.
type snapshotState struct {
	Turn         int            `json:"turn"`
	Phase        string         `json:"phase"`
	Status       string         `json:"status"`
	ActivePlayer int            `json:"active_player"`
	WinnerNum    int            `json:"winner_num"`
	Seed         int64          `json:"seed"`
	BoardName    string         `json:"board_name"`
	EventSeq     uint64         `json:"event_seq"`
	Units        []snapshotUnit `json:"units"`
}

// Snapshot serializes the game state deterministically. Units are ordered
// by instance id and JSON map keys are emitted sorted, so equal states
// always yield equal bytes.
func Snapshot(g *game.GameState) ([]byte, error) {
	ss := snapshotState{
		Turn:         g.Turn,
		Phase:        g.Phase,
		Status:       g.Status,
		ActivePlayer: g.ActivePlayer,
		WinnerNum:    g.WinnerNum,
		Seed:         g.Seed,
		BoardName:    g.BoardName,
		EventSeq:     g.EventSeq,
		Units:        make([]snapshotUnit, 0, len(g.Units)),
	}
	for i := range g.Units {
		u := &g.Units[i]
		statuses := make([]game.StatusInstance, 0, len(u.Statuses))
		for _, st := range u.Statuses {
			if !st.Expired {
				statuses = append(statuses, st)
			}
		}
		ss.Units = append(ss.Units, snapshotUnit{
			InstanceID:       u.InstanceID,
			PlayerNum:        u.PlayerNum,
			Name:             u.Name,
			Y:                u.Y,
			X:                u.X,
			MaxHP:            u.MaxHP,
			HP:               u.HP,
			Attack:           u.Attack,
			Defense:          u.Defense,
			MoveRange:        u.MoveRange,
			AttackRange:      u.AttackRange,
			HPBonus:          u.HPBonus,
			AttackBonus:      u.AttackBonus,
			DefenseBonus:     u.DefenseBonus,
			MoveRangeBonus:   u.MoveRangeBonus,
			AttackRangeBonus: u.AttackRangeBonus,
			Flags:            u.Flags,
			Statuses:         statuses,
			Cooldowns:        u.Cooldowns,
			Order:            u.Order,
			ThresholdFired:   u.ThresholdFired,
		})
	}
	sort.Slice(ss.Units, func(i, j int) bool {
		return ss.Units[i].InstanceID < ss.Units[j].InstanceID
	})
	return json.Marshal(ss)
}

// Restore rebuilds a game state from snapshot bytes. The result is a
// fresh engine instance equivalent to the one that produced the snapshot.
func Restore(data []byte) (*game.GameState, error) {
	var ss snapshotState
	if err := json.Unmarshal(data, &ss); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	g := &game.GameState{
		Turn:         ss.Turn,
		Phase:        ss.Phase,
		Status:       ss.Status,
		ActivePlayer: ss.ActivePlayer,
		WinnerNum:    ss.WinnerNum,
		Seed:         ss.Seed,
		BoardName:    ss.BoardName,
		EventSeq:     ss.EventSeq,
	}
	for _, su := range ss.Units {
		g.Units = append(g.Units, game.Unit{
			InstanceID:       su.InstanceID,
			PlayerNum:        su.PlayerNum,
			Name:             su.Name,
			Y:                su.Y,
			X:                su.X,
			MaxHP:            su.MaxHP,
			HP:               su.HP,
			Attack:           su.Attack,
			Defense:          su.Defense,
			MoveRange:        su.MoveRange,
			AttackRange:      su.AttackRange,
			HPBonus:          su.HPBonus,
			AttackBonus:      su.AttackBonus,
			DefenseBonus:     su.DefenseBonus,
			MoveRangeBonus:   su.MoveRangeBonus,
			AttackRangeBonus: su.AttackRangeBonus,
			Flags:            su.Flags,
			Statuses:         su.Statuses,
			Cooldowns:        su.Cooldowns,
			Order:            su.Order,
			ThresholdFired:   su.ThresholdFired,
		})
	}
	return g, nil
}
