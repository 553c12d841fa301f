package engine

import (
	"testing"

	"github.com/psyclimb/Boneglaive/internal/game"
)

func TestStatusRefreshPolicy(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
		testUnit(roster, "BLADE", 2, 2, 5, 6),
	)
	tc := newTestContext(g)
	spec := game.EffectSpec{Kind: game.EffectStatus, StatusID: "slow"}

	if out := tc.applyStatus(tc.unit(2), spec, tc.unit(1)); out != OutcomeApplied {
		t.Fatalf("first application: expected applied, got %s", out)
	}
	tc.unit(2).Statuses[0].Remaining = 1

	if out := tc.applyStatus(tc.unit(2), spec, tc.unit(1)); out != OutcomeRefreshed {
		t.Fatalf("second application: expected refreshed, got %s", out)
	}
	if n := len(tc.unit(2).Statuses); n != 1 {
		t.Errorf("refresh must not add instances, got %d", n)
	}
	if tc.unit(2).Statuses[0].Remaining != 2 {
		t.Errorf("refresh should reset duration to 2, got %d", tc.unit(2).Statuses[0].Remaining)
	}
}

func TestStatusIgnorePolicy(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
		testUnit(roster, "BLADE", 2, 2, 5, 6),
	)
	tc := newTestContext(g)
	spec := game.EffectSpec{Kind: game.EffectStatus, StatusID: "trap", Payload: 2}

	tc.applyStatus(tc.unit(2), spec, tc.unit(1))
	if out := tc.applyStatus(tc.unit(2), spec, tc.unit(1)); out != OutcomeIgnored {
		t.Fatalf("expected ignored, got %s", out)
	}
	if n := len(tc.unit(2).Statuses); n != 1 {
		t.Errorf("ignore policy must keep one instance, got %d", n)
	}
}

func TestStatusIndependentPolicy(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
		testUnit(roster, "BLADE", 2, 2, 5, 6),
	)
	tc := newTestContext(g)
	spec := game.EffectSpec{Kind: game.EffectStatus, StatusID: "charge", Payload: 5}

	tc.applyStatus(tc.unit(2), spec, tc.unit(1))
	if out := tc.applyStatus(tc.unit(2), spec, tc.unit(1)); out != OutcomeStacked {
		t.Fatalf("expected stacked, got %s", out)
	}
	if n := len(tc.unit(2).Statuses); n != 2 {
		t.Errorf("independent policy should hold 2 instances, got %d", n)
	}
}

func TestEffectImmuneUnitIsNeverMutated(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
		testUnit(roster, "AEGIS", 2, 2, 5, 6),
	)
	tc := newTestContext(g)
	spec := game.EffectSpec{Kind: game.EffectStatus, StatusID: "slow"}

	for i := 0; i < 3; i++ {
		if out := tc.applyStatus(tc.unit(2), spec, tc.unit(1)); out != OutcomeImmune {
			t.Fatalf("attempt %d: expected immune, got %s", i, out)
		}
	}
	if len(tc.unit(2).Statuses) != 0 {
		t.Error("immune target must never hold statuses")
	}
	if n := len(eventsOfType(g, game.EventImmunityBlocked)); n != 3 {
		t.Errorf("each blocked attempt logs an event, got %d", n)
	}
}

func TestExpiryIsIdempotent(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
	)
	g.Units[0].Statuses = []game.StatusInstance{{StatusID: "charge", Remaining: 1, SourceID: 0, Payload: 5}}
	tc := newTestContext(g)

	st := &tc.unit(1).Statuses[0]
	tc.expireStatus(tc.unit(1), st, "duration_elapsed")
	hpAfter := tc.unit(1).HP
	tc.expireStatus(tc.unit(1), st, "duration_elapsed")

	if tc.unit(1).HP != hpAfter {
		t.Error("double expiry released stored damage twice")
	}
	if n := len(eventsOfType(g, game.EventStatusExpired)); n != 1 {
		t.Errorf("expected exactly one expiry event, got %d", n)
	}
}

func TestReleaseOnExpireToleratesDeadSource(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
		testUnit(roster, "BLADE", 2, 2, 5, 6),
	)
	g.Units[0].HP = 0 // the unit that stored the charge is gone
	g.Units[1].Statuses = []game.StatusInstance{{StatusID: "charge", Remaining: 1, SourceID: 1, Payload: 5}}
	tc := newTestContext(g)

	tc.expireStatus(tc.unit(2), &tc.unit(2).Statuses[0], "duration_elapsed")
	if tc.unit(2).HP != 15 {
		t.Errorf("stored 5 pierce should land despite dead source, HP got %d", tc.unit(2).HP)
	}
}

func TestTickDamageAndExpiryInSameStep(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
	)
	g.Units[0].Statuses = []game.StatusInstance{{StatusID: "venom", Remaining: 1, SourceID: 0, Payload: 2}}
	tc := newTestContext(g)

	tc.tickStatuses(tc.unit(1), game.HookOwnerTurnStart)
	if tc.unit(1).HP != 18 {
		t.Errorf("tick should deal 2, HP got %d", tc.unit(1).HP)
	}
	if len(tc.unit(1).Statuses) != 0 {
		t.Error("instance reaching zero must be removed in the same step")
	}
}

func TestTrapDetachesWhenSourceDies(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
		testUnit(roster, "BLADE", 2, 2, 5, 6),
	)
	g.Units[1].Statuses = []game.StatusInstance{{StatusID: "trap", Remaining: game.UntilTriggered, SourceID: 1, Payload: 2}}
	tc := newTestContext(g)

	// While the trapper lives the victim ticks and stays pinned.
	tc.runConditionChecks()
	if tc.unit(2).HP != 18 {
		t.Errorf("trap should tick 2, HP got %d", tc.unit(2).HP)
	}
	if !tc.isImmobilized(tc.unit(2)) {
		t.Error("trapped unit should be immobilized")
	}

	tc.unit(1).SetHP(0)
	tc.runConditionChecks()
	if len(tc.unit(2).Statuses) != 0 {
		t.Error("trap must detach when its source dies")
	}
	if tc.isImmobilized(tc.unit(2)) {
		t.Error("released unit should move again")
	}
}

func TestLethalOnExpireKillsHolder(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "WISP", 1, 1, 5, 5),
	)
	g.Units[0].Statuses = []game.StatusInstance{{StatusID: "lifespan", Remaining: 1, SourceID: 0}}
	tc := newTestContext(g)

	tc.tickStatuses(tc.unit(1), game.HookOwnerTurnStart)
	if tc.unit(1).IsAlive() {
		t.Error("holder should die when its lifespan ends")
	}
	if len(eventsOfType(g, game.EventUnitDied)) != 1 {
		t.Error("expected a unit_died event")
	}
}

func TestTickHealRestoresHolder(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
	)
	g.Units[0].HP = 10
	g.Units[0].Statuses = []game.StatusInstance{{StatusID: "mist", Remaining: 2, SourceID: 0, Payload: 2}}
	tc := newTestContext(g)

	tc.tickStatuses(tc.unit(1), game.HookOwnerTurnStart)
	if tc.unit(1).HP != 12 {
		t.Errorf("mist should heal 2, HP got %d", tc.unit(1).HP)
	}
	if tc.unit(1).Statuses[0].Remaining != 1 {
		t.Errorf("duration should decrement to 1, got %d", tc.unit(1).Statuses[0].Remaining)
	}
}

func TestMidWalkExpiryWithMultipleStatuses(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
	)
	// First and last instances expire in the same walk; the middle one
	// survives. Indexing must not shift under the loop.
	g.Units[0].Statuses = []game.StatusInstance{
		{StatusID: "venom", Remaining: 1, SourceID: 0, Payload: 2},
		{StatusID: "mist", Remaining: 2, SourceID: 0, Payload: 2},
		{StatusID: "charge", Remaining: 1, SourceID: 0, Payload: 3},
	}
	tc := newTestContext(g)

	tc.tickStatuses(tc.unit(1), game.HookOwnerTurnStart)

	// Venom ticks 2 (20->18), mist heals back to 20, charge releases 3.
	if tc.unit(1).HP != 17 {
		t.Errorf("expected HP 17 after the walk, got %d", tc.unit(1).HP)
	}
	if n := len(tc.unit(1).Statuses); n != 1 {
		t.Fatalf("expected only mist to survive, have %d statuses", n)
	}
	if st := tc.unit(1).Statuses[0]; st.StatusID != "mist" || st.Remaining != 1 {
		t.Errorf("surviving status should be mist with 1 left, got %s/%d", st.StatusID, st.Remaining)
	}
	if n := len(eventsOfType(g, game.EventStatusExpired)); n != 2 {
		t.Errorf("expected two expiry events, got %d", n)
	}
}

func TestNoNegativeDurations(t *testing.T) {
	roster := testRoster()
	g := testGame(1,
		testUnit(roster, "BLADE", 1, 1, 5, 5),
	)
	g.Units[0].Statuses = []game.StatusInstance{{StatusID: "slow", Remaining: 1, SourceID: 0}}
	tc := newTestContext(g)

	tc.tickStatuses(tc.unit(1), game.HookAffectedTurnEnd)
	tc.tickStatuses(tc.unit(1), game.HookAffectedTurnEnd)
	for _, st := range tc.unit(1).Statuses {
		if st.Remaining < 0 {
			t.Errorf("status %s has negative duration %d", st.StatusID, st.Remaining)
		}
	}
}
