package service

import (
	"errors"
	"testing"

	"github.com/psyclimb/Boneglaive/internal/game"
)

func startedGame(t *testing.T, mr *mockRepo, roster *game.Roster) *game.GameState {
	t.Helper()
	_, err := CreateGame(mr, roster, CreateGameRequest{
		PlayerName: "P1", PlayerUUID: "u1", JoinCode: "ABC123", Seed: 99,
		UnitNames: []string{"SCRAPPER"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	g, err := JoinGame(mr, roster, "ABC123", "P2", "u2", []string{"SCRAPPER"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	return g
}

func TestSubmitOrdersResolvesWhenBothCommitted(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)

	// First player commits: no orders means every unit stands idle.
	_, resolved, err := SubmitOrders(mr, roster, g.ID, "u1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatal("turn should not resolve after one submission")
	}

	g2, resolved, err := SubmitOrders(mr, roster, g.ID, "u2", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatal("expected turn to resolve after both submissions")
	}
	if g2.Turn != 2 {
		t.Errorf("expected turn 2 after resolution, got %d", g2.Turn)
	}
	if g2.Phase != game.PhaseReady {
		t.Errorf("expected ready phase for next turn, got %s", g2.Phase)
	}
	for i := range g2.Players {
		if g2.Players[i].HasSubmittedOrders {
			t.Errorf("player %d submission flag should reset", g2.Players[i].PlayerNum)
		}
	}
	if len(mr.snapshots) != 1 {
		t.Fatalf("expected one persisted snapshot, got %d", len(mr.snapshots))
	}
	if mr.snapshots[0].Turn != 1 || mr.snapshots[0].Checksum == "" {
		t.Errorf("snapshot should record resolved turn 1 with checksum, got turn=%d checksum=%q",
			mr.snapshots[0].Turn, mr.snapshots[0].Checksum)
	}
}

func TestSubmitOrdersRejectsForeignUnit(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)

	var enemyID int
	for i := range g.Units {
		if g.Units[i].PlayerNum == 2 {
			enemyID = g.Units[i].InstanceID
		}
	}
	_, _, err := SubmitOrders(mr, roster, g.ID, "u1", []UnitOrder{{InstanceID: enemyID}})
	if !errors.Is(err, ErrUnitNotYours) {
		t.Fatalf("expected ErrUnitNotYours, got %v", err)
	}
}

func TestSubmitOrdersRejectsUnknownSkill(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)

	var ownID int
	for i := range g.Units {
		if g.Units[i].PlayerNum == 1 {
			ownID = g.Units[i].InstanceID
		}
	}
	target := game.Position{Y: 5, X: 5}
	_, _, err := SubmitOrders(mr, roster, g.ID, "u1", []UnitOrder{
		{InstanceID: ownID, SkillID: "meteor", Target: &target},
	})
	if !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}

func TestSubmitOrdersRejectsCooldown(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)

	var own *game.Unit
	for i := range g.Units {
		if g.Units[i].PlayerNum == 1 {
			own = &g.Units[i]
		}
	}
	own.Cooldowns = map[string]int{"zap": 2}
	target := game.Position{Y: 5, X: 5}
	_, _, err := SubmitOrders(mr, roster, g.ID, "u1", []UnitOrder{
		{InstanceID: own.InstanceID, SkillID: "zap", Target: &target},
	})
	if !errors.Is(err, ErrSkillOnCooldown) {
		t.Fatalf("expected ErrSkillOnCooldown, got %v", err)
	}
}

func TestSubmitOrdersRejectsOutOfBoundsTarget(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)

	var ownID int
	for i := range g.Units {
		if g.Units[i].PlayerNum == 1 {
			ownID = g.Units[i].InstanceID
		}
	}
	bad := game.Position{Y: -1, X: 50}
	_, _, err := SubmitOrders(mr, roster, g.ID, "u1", []UnitOrder{
		{InstanceID: ownID, Target: &bad},
	})
	if !errors.Is(err, ErrTargetOutOfBounds) {
		t.Fatalf("expected ErrTargetOutOfBounds, got %v", err)
	}
}

func TestSubmitOrdersLockedDuringExecute(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)
	g.Phase = game.PhaseExecute

	_, _, err := SubmitOrders(mr, roster, g.ID, "u1", nil)
	if !errors.Is(err, ErrOrdersLocked) {
		t.Fatalf("expected ErrOrdersLocked, got %v", err)
	}
}

func TestWithdrawOrders(t *testing.T) {
	mr := newMockRepo()
	roster := testRoster()
	g := startedGame(t, mr, roster)

	if _, resolved, err := SubmitOrders(mr, roster, g.ID, "u1", nil); err != nil || resolved {
		t.Fatalf("submit: resolved=%v err=%v", resolved, err)
	}
	g2, err := WithdrawOrders(mr, g.ID, "u1")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if g2.PlayerByNum(1).HasSubmittedOrders {
		t.Error("submission flag should clear on withdrawal")
	}
	for i := range g2.Units {
		if g2.Units[i].PlayerNum == 1 && g2.Units[i].Order != nil {
			t.Error("withdrawn orders should be cleared from units")
		}
	}
}
