package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/psyclimb/Boneglaive/internal/game"
)

type rawConfig struct {
	UnitList   []game.UnitDef   `json:"unit_list"`
	SkillList  []game.Skill     `json:"skill_list"`
	StatusList []game.StatusDef `json:"status_list"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	Board string `json:"board"`
}

// LoadedConfig contains the full roster plus server settings. Each
// skill's numeric contract (damage, cooldowns, trigger probabilities)
// lives here rather than in code, so revised balance numbers never require
// an engine change.
type LoadedConfig struct {
	Roster        *game.Roster
	ServerAddress string
	BoardName     string
}

// LoadConfig reads the configuration file at path and returns the
// validated roster and server address. It requires `unit_list`,
// `skill_list` and `status_list`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	roster, err := BuildRoster(rc.UnitList, rc.SkillList, rc.StatusList)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	board := rc.Board
	if board == "" {
		board = "lime_foyer"
	}

	return &LoadedConfig{Roster: roster, ServerAddress: addr, BoardName: board}, nil
}

// BuildRoster assembles and cross-validates the definition tables.
func BuildRoster(units []game.UnitDef, skills []game.Skill, statuses []game.StatusDef) (*game.Roster, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("unit_list is empty (provide a 'unit_list' array)")
	}

	r := &game.Roster{
		Units:    make(map[string]game.UnitDef, len(units)),
		Skills:   make(map[string]game.Skill, len(skills)),
		Statuses: make(map[string]game.StatusDef, len(statuses)),
	}

	for _, st := range statuses {
		if st.ID == "" {
			return nil, fmt.Errorf("status entry missing 'id'")
		}
		if _, exists := r.Statuses[st.ID]; exists {
			return nil, fmt.Errorf("duplicate status id '%s'", st.ID)
		}
		switch st.Hook {
		case game.HookOwnerTurnStart, game.HookAffectedTurnEnd, game.HookConditionCheck:
		default:
			return nil, fmt.Errorf("status '%s': unknown decrement hook '%s'", st.ID, st.Hook)
		}
		switch st.Stacking {
		case game.StackRefresh, game.StackIndependent, game.StackIgnore, "":
		default:
			return nil, fmt.Errorf("status '%s': unknown stacking policy '%s'", st.ID, st.Stacking)
		}
		if st.Duration == 0 {
			return nil, fmt.Errorf("status '%s': duration must be positive or until-triggered (-1)", st.ID)
		}
		r.Statuses[st.ID] = st
	}

	for _, sk := range skills {
		if sk.ID == "" {
			return nil, fmt.Errorf("skill entry missing 'id'")
		}
		if _, exists := r.Skills[sk.ID]; exists {
			return nil, fmt.Errorf("duplicate skill id '%s'", sk.ID)
		}
		if sk.Kind != game.SkillActive && sk.Kind != game.SkillPassive {
			return nil, fmt.Errorf("skill '%s': kind must be active or passive", sk.ID)
		}
		for _, e := range sk.Effects {
			if e.Kind == game.EffectStatus {
				if _, ok := r.Statuses[e.StatusID]; !ok {
					return nil, fmt.Errorf("skill '%s': references unknown status '%s'", sk.ID, e.StatusID)
				}
			}
		}
		r.Skills[sk.ID] = sk
	}

	nameSet := make(map[string]struct{}, len(units))
	for _, u := range units {
		if u.Name == "" {
			return nil, fmt.Errorf("unit entry missing 'name'")
		}
		ln := strings.ToLower(strings.TrimSpace(u.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("duplicate unit name '%s'", u.Name)
		}
		nameSet[ln] = struct{}{}
		if u.PassiveID != "" {
			p, ok := r.Skills[u.PassiveID]
			if !ok {
				return nil, fmt.Errorf("unit '%s': unknown passive '%s'", u.Name, u.PassiveID)
			}
			if p.Kind != game.SkillPassive {
				return nil, fmt.Errorf("unit '%s': passive '%s' is not a passive skill", u.Name, u.PassiveID)
			}
		}
		for _, id := range u.SkillIDs {
			s, ok := r.Skills[id]
			if !ok {
				return nil, fmt.Errorf("unit '%s': unknown skill '%s'", u.Name, id)
			}
			if s.Kind != game.SkillActive {
				return nil, fmt.Errorf("unit '%s': skill '%s' is not an active skill", u.Name, id)
			}
		}
		r.Units[u.Name] = u
	}

	// Summon references are validated after all units are registered.
	for _, sk := range r.Skills {
		for _, e := range sk.Effects {
			if e.Kind == game.EffectSummon {
				if _, ok := r.Units[e.SummonName]; !ok {
					return nil, fmt.Errorf("skill '%s': summons unknown unit '%s'", sk.ID, e.SummonName)
				}
				if e.SummonLifespan > 0 {
					if _, ok := r.Statuses["lifespan"]; !ok {
						return nil, fmt.Errorf("skill '%s': summon lifespan requires a 'lifespan' status definition", sk.ID)
					}
				}
			}
		}
	}

	return r, nil
}
