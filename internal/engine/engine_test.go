package engine

import (
	"strconv"
	"strings"
	"testing"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

type stubMemory struct{ bonus float64 }

func (s stubMemory) DamageBonus(string) float64 { return s.bonus }

func snapshotByName(t *testing.T, e *Engine, name string) game.UnitSnapshot {
	t.Helper()
	for _, u := range e.Snapshot() {
		if u.Name == name {
			return u
		}
	}
	t.Fatalf("no unit named %s in snapshot", name)
	return game.UnitSnapshot{}
}

func logContains(log []game.LogEntry, substr string) bool {
	for _, entry := range log {
		if strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}

func TestStartCombat_EmptyRoster(t *testing.T) {
	e := New(nil, []game.Pathogen{{Name: "Basic", MaxHealth: 10}})
	if err := e.StartCombat(); err != ErrEmptyRoster {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}
	if e.State() != StateIdle {
		t.Fatalf("engine must stay idle after a rejected start")
	}

	e = New([]game.Antibody{{Name: "B cell", MaxHealth: 10, Damage: 1}}, nil)
	if _, err := e.SimulateToCompletion(); err != ErrEmptyRoster {
		t.Fatalf("expected ErrEmptyRoster from simulate, got %v", err)
	}
}

func TestOffensiveSalvoQuickVictory(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "Killer T", Kind: game.AntibodyOffensive, MaxHealth: 50, Damage: 20, Initiative: 15, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Strep", Species: "Strep", Kind: game.PathogenBase, MaxHealth: 40, Damage: 5, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(7))
	res, err := e.SimulateToCompletion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.PlayerVictory || res.TimedOut {
		t.Fatalf("expected a clean victory, got %+v", res)
	}
	if res.TurnsElapsed != 1 {
		t.Fatalf("salvo x2 should end it on turn 1, got %d", res.TurnsElapsed)
	}
	if len(res.PathogenIDsDefeated) != 1 || len(res.SpeciesDefeated) != 1 {
		t.Fatalf("one pathogen should be recorded as defeated")
	}
	// 10 base + 5x1 turn + 40/5 max health
	if res.Resources != 23 {
		t.Fatalf("expected 23 resources, got %d", res.Resources)
	}
	// 5 base + 2 per defeated pathogen
	if res.ResearchPoints != 7 {
		t.Fatalf("expected 7 research, got %d", res.ResearchPoints)
	}
	if !logContains(res.Log, "toxic salvo x2") {
		t.Fatalf("salvo attack should be tagged in the log")
	}
}

func TestMarkedTargetTakesBonusDamage(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "Dendritic", Kind: game.AntibodyMarker, MaxHealth: 40, Damage: 10, Initiative: 20, AttackType: game.AttackPhysical},
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 40, Damage: 10, Initiative: 10, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Staph", Species: "Staph", Kind: game.PathogenBase, MaxHealth: 100, Damage: 1, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(3))
	if err := e.StartCombat(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	tr := e.AdvanceTurn()
	if !tr.Active || tr.Turn != 1 {
		t.Fatalf("battle should still be running after turn 1")
	}

	// Marker hits for round(10 x 1.5) = 15 while marking, then the base
	// antibody hits the marked target for round(10 x 1.5) = 15.
	if got := snapshotByName(t, e, "Staph").CurrentHealth; got != 70 {
		t.Fatalf("expected pathogen at 70 health after turn 1, got %d", got)
	}
	if !logContains(e.Log(), "TARGET MARKING") {
		t.Fatalf("marking action missing from the log")
	}
	if !logContains(e.Log(), "marked x1.5") {
		t.Fatalf("follow-up attack should carry the marked tag")
	}
}

func TestDefensiveAntibodyHealsWoundedAlly(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "Macrophage", Kind: game.AntibodyDefensive, MaxHealth: 60, Damage: 5, Initiative: 20, AttackType: game.AttackPhysical},
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 50, CurrentHealth: 20, Damage: 5, Initiative: 10, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Staph", Species: "Staph", Kind: game.PathogenBase, MaxHealth: 200, Damage: 1, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(11))
	if err := e.StartCombat(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	tr := e.AdvanceTurn()

	healed := false
	for _, entry := range tr.Entries {
		if entry.Kind == game.ActionHeal {
			if entry.Healing != 15 {
				t.Fatalf("cellular repair should restore 15 health, got %d", entry.Healing)
			}
			healed = true
		}
	}
	if !healed {
		t.Fatalf("defensive antibody should heal the wounded ally on turn 1")
	}
	if got := snapshotByName(t, e, "B cell").CurrentHealth; got <= 20 {
		t.Fatalf("wounded ally should end the turn above 20 health, got %d", got)
	}
}

func TestMemoryBonusBoostsAntibodyDamage(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 40, Damage: 10, Initiative: 10, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Influenza", Species: "Influenza", Kind: game.PathogenBase, MaxHealth: 100, Damage: 1, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(1), WithMemory(stubMemory{bonus: 0.5}))
	if err := e.StartCombat(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	e.AdvanceTurn()

	// 10 base x 1.5 memory bonus = 15
	if got := snapshotByName(t, e, "Influenza").CurrentHealth; got != 85 {
		t.Fatalf("expected 15 bonus-boosted damage, pathogen at %d", got)
	}
	if !logContains(e.Log(), "immune memory +50%") {
		t.Fatalf("memory bonus should be tagged in the attack log")
	}
}

func TestTurnCapStalemate(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 500, Damage: 1, Initiative: 10, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Cyst", Species: "Cyst", Kind: game.PathogenBase, MaxHealth: 500, Damage: 1, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(9), WithTurnCap(10))
	res, err := e.SimulateToCompletion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.TimedOut {
		t.Fatalf("stalemate should time out at the cap")
	}
	if res.PlayerVictory {
		t.Fatalf("a timeout counts as a defeat")
	}
	if res.TurnsElapsed != 10 {
		t.Fatalf("expected exactly 10 turns, got %d", res.TurnsElapsed)
	}
	if res.Resources != 5 || res.ResearchPoints != 1 {
		t.Fatalf("defeat rewards should be 5/1, got %d/%d", res.Resources, res.ResearchPoints)
	}
	if !logContains(res.Log, "Stalemate") {
		t.Fatalf("timeout should be logged")
	}
}

func TestAdvanceTurnAfterEndIsNoOp(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "Killer T", Kind: game.AntibodyOffensive, MaxHealth: 50, Damage: 20, Initiative: 15, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Strep", Species: "Strep", Kind: game.PathogenBase, MaxHealth: 40, Damage: 5, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(7))
	if _, err := e.SimulateToCompletion(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State() != StateEnded {
		t.Fatalf("engine should have ended")
	}

	tr := e.AdvanceTurn()
	if tr.Active || len(tr.Entries) != 0 || len(tr.DefeatedUnitIDs) != 0 {
		t.Fatalf("advancing an ended battle must be a no-op, got %+v", tr)
	}
	if e.Turn() != 1 {
		t.Fatalf("turn counter must not advance after the end, got %d", e.Turn())
	}
}

func TestFinalizeCombatIdempotent(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "Killer T", Kind: game.AntibodyOffensive, MaxHealth: 50, Damage: 20, Initiative: 15, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Strep", Species: "Strep", Kind: game.PathogenBase, MaxHealth: 40, Damage: 5, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(7))
	if _, err := e.SimulateToCompletion(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := e.FinalizeCombat()
	second := e.FinalizeCombat()
	if first != second {
		t.Fatalf("FinalizeCombat must return the cached result")
	}
}

func TestDeterministicReplay(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "Killer T", Kind: game.AntibodyOffensive, MaxHealth: 60, Damage: 12, Initiative: 14, AttackType: game.AttackPhysical},
		{Name: "Macrophage", Kind: game.AntibodyDefensive, MaxHealth: 70, Damage: 8, Initiative: 9, AttackType: game.AttackChemical},
		{Name: "Dendritic", Kind: game.AntibodyMarker, MaxHealth: 45, Damage: 9, Initiative: 17, AttackType: game.AttackEnergetic},
	}
	pathogens := []game.Pathogen{
		{Name: "Influenza", Species: "Influenza", Kind: game.PathogenVirus, MaxHealth: 55, Damage: 10, Initiative: 16, AttackType: game.AttackChemical,
			Resistances: map[game.AttackType]float64{game.AttackPhysical: 0.9, game.AttackChemical: 1.1}},
		{Name: "E. coli", Species: "E. coli", Kind: game.PathogenBacteria, MaxHealth: 80, Damage: 7, Initiative: 6, AttackType: game.AttackPhysical, Armor: 20},
		{Name: "Candida", Species: "Candida", Kind: game.PathogenFungus, MaxHealth: 65, Damage: 6, Initiative: 11, AttackType: game.AttackEnergetic},
	}

	run := func() (*game.CombatResult, []string) {
		e := New(antibodies, pathogens, WithSeed(42))
		res, err := e.SimulateToCompletion()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		msgs := make([]string, 0, len(res.Log))
		for _, entry := range res.Log {
			msgs = append(msgs, entry.Message)
		}
		return res, msgs
	}

	res1, msgs1 := run()
	res2, msgs2 := run()

	if res1.PlayerVictory != res2.PlayerVictory || res1.TurnsElapsed != res2.TurnsElapsed ||
		res1.Resources != res2.Resources || res1.ResearchPoints != res2.ResearchPoints {
		t.Fatalf("same seed must replay the same outcome: %+v vs %+v", res1, res2)
	}
	if len(msgs1) != len(msgs2) {
		t.Fatalf("log length diverged: %d vs %d", len(msgs1), len(msgs2))
	}
	for i := range msgs1 {
		if msgs1[i] != msgs2[i] {
			t.Fatalf("log diverged at entry %d: %q vs %q", i, msgs1[i], msgs2[i])
		}
	}
}

func TestRosterValueCopies(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 40, CurrentHealth: 40, Damage: 10, Initiative: 10, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Strep", Species: "Strep", Kind: game.PathogenBase, MaxHealth: 40, CurrentHealth: 40, Damage: 5, Initiative: 5, AttackType: game.AttackChemical,
			Resistances: map[game.AttackType]float64{game.AttackPhysical: 1.0}},
	}

	e := New(antibodies, pathogens, WithSeed(5))
	if _, err := e.SimulateToCompletion(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if antibodies[0].CurrentHealth != 40 || pathogens[0].CurrentHealth != 40 {
		t.Fatalf("caller rosters must stay untouched: %d / %d", antibodies[0].CurrentHealth, pathogens[0].CurrentHealth)
	}
}

func TestSignificantEventsFilterAndTrim(t *testing.T) {
	log := make([]game.LogEntry, 0, 20)
	// Fourteen qualifying entries interleaved with noise that must not count.
	for i := 1; i <= 14; i++ {
		log = append(log, game.LogEntry{Message: "special-" + strconv.Itoa(i), IsSpecial: true})
		log = append(log, game.LogEntry{Message: "chip-" + strconv.Itoa(i), Damage: 3})
	}
	log = append(log, game.LogEntry{Message: "threshold", Damage: 20})
	log = append(log, game.LogEntry{Message: "heavy", Damage: 21})

	events := significantEvents(log)
	if len(events) != 10 {
		t.Fatalf("expected first-5/last-5 trim to 10 events, got %d", len(events))
	}
	for i := 0; i < 5; i++ {
		want := "special-" + strconv.Itoa(i+1)
		if events[i].Message != want {
			t.Fatalf("event %d should be %q, got %q", i, want, events[i].Message)
		}
	}
	// The qualifying sequence is special-1..14 then "heavy"; damage exactly
	// at the threshold does not qualify.
	wantTail := []string{"special-11", "special-12", "special-13", "special-14", "heavy"}
	for i, want := range wantTail {
		if got := events[5+i].Message; got != want {
			t.Fatalf("tail event %d should be %q, got %q", i, want, got)
		}
	}
}

func TestSignificantEventsShortLogKeptWhole(t *testing.T) {
	log := []game.LogEntry{
		{Message: "plain", Damage: 5},
		{Message: "special", IsSpecial: true},
		{Message: "heavy", Damage: 30},
	}
	events := significantEvents(log)
	if len(events) != 2 || events[0].Message != "special" || events[1].Message != "heavy" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestFungusSporesBoostAndAreaDamage(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 50, Damage: 1, Initiative: 10, AttackType: game.AttackPhysical},
		{Name: "Killer T", Kind: game.AntibodyBase, MaxHealth: 50, Damage: 1, Initiative: 9, AttackType: game.AttackPhysical},
		{Name: "Macrophage", Kind: game.AntibodyBase, MaxHealth: 50, Damage: 1, Initiative: 8, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Candida", Species: "Candida", Kind: game.PathogenFungus, MaxHealth: 200, Damage: 10, Initiative: 30, AttackType: game.AttackEnergetic, SporesActive: true},
	}

	e := New(antibodies, pathogens, WithSeed(17))
	if err := e.StartCombat(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	tr := e.AdvanceTurn()

	primaries, chips := 0, 0
	for _, entry := range tr.Entries {
		if strings.Contains(entry.Message, "spore-laced") {
			primaries++
			// 10 base + 6 default spore bonus
			if entry.Damage != 16 {
				t.Fatalf("boosted primary hit should deal 16, got %d", entry.Damage)
			}
		}
		if strings.Contains(entry.Message, "spores burn") {
			chips++
			if entry.Damage != 6 {
				t.Fatalf("spore chip should deal 6, got %d", entry.Damage)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one boosted primary hit, got %d", primaries)
	}
	if chips != 2 {
		t.Fatalf("every other living antibody should take one chip hit, got %d", chips)
	}

	// 16 on the target plus 6 on each of the other two.
	totalLost := 0
	for _, u := range e.Snapshot() {
		if u.Side == "antibody" {
			totalLost += u.MaxHealth - u.CurrentHealth
		}
	}
	if totalLost != 28 {
		t.Fatalf("expected 28 total antibody damage from the sweep, got %d", totalLost)
	}
}

func TestFinalizeCombatBeforeStart(t *testing.T) {
	antibodies := []game.Antibody{
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 40, Damage: 10, Initiative: 10, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{Name: "Strep", Species: "Strep", Kind: game.PathogenBase, MaxHealth: 40, Damage: 5, Initiative: 5, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(2))
	res := e.FinalizeCombat()
	if res.PlayerVictory || res.TimedOut || res.TurnsElapsed != 0 {
		t.Fatalf("never-started battle should produce an empty outcome, got %+v", res)
	}
	if res.Resources != 0 || res.ResearchPoints != 0 {
		t.Fatalf("never-started battle must not award defeat rewards, got %d/%d", res.Resources, res.ResearchPoints)
	}
	if e.State() != StateEnded {
		t.Fatalf("finalizing should settle the engine state, got %s", e.State())
	}
	if e.FinalizeCombat() != res {
		t.Fatalf("result must stay cached")
	}
	if tr := e.AdvanceTurn(); tr.Active {
		t.Fatalf("a finalized engine must not advance")
	}
}

func TestStartCombatSkipsPresetIDs(t *testing.T) {
	antibodies := []game.Antibody{
		{ID: 2, Name: "Killer T", Kind: game.AntibodyBase, MaxHealth: 40, Damage: 10, Initiative: 10, AttackType: game.AttackPhysical},
		{Name: "B cell", Kind: game.AntibodyBase, MaxHealth: 40, Damage: 10, Initiative: 9, AttackType: game.AttackPhysical},
	}
	pathogens := []game.Pathogen{
		{ID: 1, Name: "Strep", Species: "Strep", Kind: game.PathogenBase, MaxHealth: 40, Damage: 5, Initiative: 5, AttackType: game.AttackChemical},
		{Name: "Staph", Species: "Staph", Kind: game.PathogenBase, MaxHealth: 40, Damage: 5, Initiative: 4, AttackType: game.AttackChemical},
	}

	e := New(antibodies, pathogens, WithSeed(4))
	if err := e.StartCombat(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	seen := make(map[uint]string)
	for _, u := range e.Snapshot() {
		if u.ID == 0 {
			t.Fatalf("unit %s was left without an ID", u.Name)
		}
		if prev, dup := seen[u.ID]; dup {
			t.Fatalf("ID %d assigned to both %s and %s", u.ID, prev, u.Name)
		}
		seen[u.ID] = u.Name
	}
}
