package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/psyclimb/Boneglaive/internal/game"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeTempConfig(t, "{not json")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadConfigMinimal(t *testing.T) {
	path := writeTempConfig(t, `{
		"unit_list": [
			{"name": "SCRAPPER", "max_hp": 10, "attack": 3, "defense": 1, "move_range": 2, "attack_range": 1}
		],
		"skill_list": [],
		"status_list": []
	}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Errorf("expected default address :8080, got %s", cfg.ServerAddress)
	}
	if cfg.Roster.Unit("SCRAPPER") == nil {
		t.Error("expected unit SCRAPPER in roster")
	}
}

func TestBuildRosterDuplicateUnitName(t *testing.T) {
	units := []game.UnitDef{
		{Name: "GRAYMAN", MaxHP: 10},
		{Name: "grayman ", MaxHP: 12},
	}
	_, err := BuildRoster(units, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate unit name") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestBuildRosterUnknownSkillReference(t *testing.T) {
	units := []game.UnitDef{
		{Name: "GLAIVEMAN", MaxHP: 10, SkillIDs: []string{"pry"}},
	}
	_, err := BuildRoster(units, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown skill 'pry'") {
		t.Fatalf("expected unknown skill error, got %v", err)
	}
}

func TestBuildRosterPassiveMustBePassive(t *testing.T) {
	units := []game.UnitDef{
		{Name: "GLAIVEMAN", MaxHP: 10, PassiveID: "pry"},
	}
	skills := []game.Skill{
		{ID: "pry", Kind: game.SkillActive, Target: game.TargetEnemy},
	}
	_, err := BuildRoster(units, skills, nil)
	if err == nil || !strings.Contains(err.Error(), "not a passive skill") {
		t.Fatalf("expected passive kind error, got %v", err)
	}
}

func TestBuildRosterStatusHookValidation(t *testing.T) {
	statuses := []game.StatusDef{
		{ID: "bad", Duration: 2, Stacking: game.StackRefresh, Hook: "whenever"},
	}
	units := []game.UnitDef{{Name: "GLAIVEMAN", MaxHP: 10}}
	_, err := BuildRoster(units, nil, statuses)
	if err == nil || !strings.Contains(err.Error(), "unknown decrement hook") {
		t.Fatalf("expected hook error, got %v", err)
	}
}

func TestBuildRosterSkillStatusReference(t *testing.T) {
	units := []game.UnitDef{{Name: "GLAIVEMAN", MaxHP: 10}}
	skills := []game.Skill{
		{ID: "hex", Kind: game.SkillActive, Target: game.TargetEnemy,
			Effects: []game.EffectSpec{{Kind: game.EffectStatus, StatusID: "missing"}}},
	}
	_, err := BuildRoster(units, skills, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown status 'missing'") {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestBuildRosterSummonReference(t *testing.T) {
	units := []game.UnitDef{{Name: "GAS MACHINIST", MaxHP: 10}}
	skills := []game.Skill{
		{ID: "diverge", Kind: game.SkillActive, Target: game.TargetTile,
			Effects: []game.EffectSpec{{Kind: game.EffectSummon, SummonName: "HEINOUS VAPOR"}}},
	}
	_, err := BuildRoster(units, skills, nil)
	if err == nil || !strings.Contains(err.Error(), "summons unknown unit") {
		t.Fatalf("expected summon reference error, got %v", err)
	}
}

func TestDefaultConfigLoads(t *testing.T) {
	cfg, err := LoadConfig("../../boneglaive_config.json")
	if err != nil {
		t.Fatalf("default config should load: %v", err)
	}
	for _, name := range []string{"GLAIVEMAN", "MANDIBLE FOREMAN", "GRAYMAN", "GAS MACHINIST", "FOWL CONTRIVANCE"} {
		if cfg.Roster.Unit(name) == nil {
			t.Errorf("expected unit %s in default roster", name)
		}
	}
	if p := cfg.Roster.Skill("autoclave"); p == nil || p.Trigger != game.TriggerThreshold {
		t.Error("autoclave should be a threshold passive")
	}
}
