package engine

import (
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

// Reward formula constants, matching the game balance sheet.
const (
	victoryBaseResources = 10
	victoryPerTurn       = 5
	victoryBaseResearch  = 5
	perPathogenResearch  = 2
	defeatResources      = 5
	defeatResearch       = 1
)

// FinalizeCombat forces Ended when still Active and returns the aggregated
// combat result. Idempotent: repeated calls return the same result value.
func (e *Engine) FinalizeCombat() *game.CombatResult {
	if e.result != nil {
		return e.result
	}
	if e.state == StateIdle {
		// Combat never started; close out with an empty result instead of
		// defeat rewards.
		e.state = StateEnded
		e.result = &game.CombatResult{Units: e.Snapshot()}
		return e.result
	}
	if e.state == StateActive {
		// Caller abandoned the loop early; close the battle as it stands.
		e.state = StateEnded
		e.addEntry(game.LogEntry{Message: "Combat aborted before resolution", Kind: game.ActionEnd})
	}

	victory := e.state == StateEnded && len(e.livingPathogens()) == 0

	defeatedIDs := make([]uint, 0, len(e.pathogens))
	defeatedSpecies := make([]string, 0, len(e.pathogens))
	for _, p := range e.pathogens {
		if p.IsDefeated() {
			defeatedIDs = append(defeatedIDs, p.ID)
			defeatedSpecies = append(defeatedSpecies, p.Species)
		}
	}

	resources := defeatResources
	research := defeatResearch
	if victory {
		resources = victoryBaseResources + victoryPerTurn*e.turn
		research = victoryBaseResearch
		for _, p := range e.pathogens {
			if p.IsDefeated() {
				resources += p.MaxHealth / 5
				research += perPathogenResearch
			}
		}
	}

	e.result = &game.CombatResult{
		PlayerVictory:       victory,
		TimedOut:            e.timedOut,
		TurnsElapsed:        e.turn,
		Log:                 e.Log(),
		Resources:           resources,
		ResearchPoints:      research,
		PathogenIDsDefeated: defeatedIDs,
		SpeciesDefeated:     defeatedSpecies,
		Units:               e.Snapshot(),
		SignificantEvents:   significantEvents(e.log),
	}
	return e.result
}

// DefeatedPathogens returns value copies of every defeated pathogen so the
// caller can feed them to the immune-memory ledger at battle end.
func (e *Engine) DefeatedPathogens() []game.Pathogen {
	out := make([]game.Pathogen, 0, len(e.pathogens))
	for _, p := range e.pathogens {
		if p.IsDefeated() {
			out = append(out, *p)
		}
	}
	return out
}

// significantEvents filters the log down to what the narrative generator
// cares about: special actions and heavy hits. When more than ten qualify,
// only the first five and last five are kept.
func significantEvents(log []game.LogEntry) []game.LogEntry {
	events := make([]game.LogEntry, 0, len(log))
	for _, entry := range log {
		if entry.IsSpecial || entry.Damage > significantDamageThreshold {
			events = append(events, entry)
		}
	}
	if len(events) > maxSignificantEvents {
		trimmed := make([]game.LogEntry, 0, 10)
		trimmed = append(trimmed, events[:5]...)
		trimmed = append(trimmed, events[len(events)-5:]...)
		return trimmed
	}
	return events
}
