package engine

import (
	"strconv"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

// defeatedSet snapshots which unit IDs are currently down, used to report
// only the deaths produced by one sweep.
func (e *Engine) defeatedSet() map[uint]bool {
	out := make(map[uint]bool, len(e.antibodies)+len(e.pathogens))
	for _, a := range e.antibodies {
		if a.IsDefeated() {
			out[a.ID] = true
		}
	}
	for _, p := range e.pathogens {
		if p.IsDefeated() {
			out[p.ID] = true
		}
	}
	return out
}

// AdvanceTurn resolves exactly one full initiative sweep (one turn) and
// returns the log entries and unit deaths it produced, so an external
// animator can play the battle back one turn at a time. Calling it when
// combat is not active is a no-op returning an inactive, empty result.
func (e *Engine) AdvanceTurn() game.TurnResult {
	if e.state != StateActive {
		return game.TurnResult{Active: false, Turn: e.turn}
	}

	e.turn++
	mark := len(e.log)
	deadBefore := e.defeatedSet()

	for _, ref := range e.order {
		if e.state != StateActive {
			break
		}
		switch ref.side {
		case sideAntibody:
			a := e.antibodies[ref.idx]
			if a.IsDefeated() {
				continue
			}
			e.resolveAntibody(a)
		case sidePathogen:
			p := e.pathogens[ref.idx]
			if p.IsDefeated() {
				continue
			}
			e.resolvePathogen(p)
		}
		// Terminal condition is re-checked after every action; the sweep
		// stops immediately once a side is eliminated.
		e.checkTerminal()
	}

	// Safety valve: a stalemate past the cap still terminates with a full
	// result instead of looping forever.
	if e.state == StateActive && e.turn >= e.turnCap {
		e.timedOut = true
		e.state = StateEnded
		e.addEntry(game.LogEntry{
			Message: "Stalemate: the battle is called after " + strconv.Itoa(e.turn) + " turns",
			Kind:    game.ActionEnd,
		})
	}

	entries := make([]game.LogEntry, len(e.log)-mark)
	copy(entries, e.log[mark:])

	newlyDead := make([]uint, 0, 4)
	for _, a := range e.antibodies {
		if a.IsDefeated() && !deadBefore[a.ID] {
			newlyDead = append(newlyDead, a.ID)
		}
	}
	for _, p := range e.pathogens {
		if p.IsDefeated() && !deadBefore[p.ID] {
			newlyDead = append(newlyDead, p.ID)
		}
	}

	return game.TurnResult{
		Active:          e.state == StateActive,
		Turn:            e.turn,
		Entries:         entries,
		DefeatedUnitIDs: newlyDead,
	}
}

// SimulateToCompletion runs the battle to its terminal state in one call
// and returns the aggregated result. Starts combat first when still idle.
func (e *Engine) SimulateToCompletion() (*game.CombatResult, error) {
	if e.state == StateIdle {
		if err := e.StartCombat(); err != nil {
			return nil, err
		}
	}
	for e.state == StateActive {
		e.AdvanceTurn()
	}
	return e.FinalizeCombat(), nil
}
