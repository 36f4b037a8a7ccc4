package engine

import "github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"

// lowestHealthPathogen returns the living pathogen with strictly lowest
// current health; ties go to the first one encountered in roster order.
func lowestHealthPathogen(living []*game.Pathogen) *game.Pathogen {
	var best *game.Pathogen
	for _, p := range living {
		if best == nil || p.CurrentHealth < best.CurrentHealth {
			best = p
		}
	}
	return best
}

// lowestHealthAntibody mirrors lowestHealthPathogen for the player's side.
func lowestHealthAntibody(living []*game.Antibody) *game.Antibody {
	var best *game.Antibody
	for _, a := range living {
		if best == nil || a.CurrentHealth < best.CurrentHealth {
			best = a
		}
	}
	return best
}

// selectAntibodyTarget applies the unit's targeting flag: lowest current
// health when PrioritizeLowHealth is set, otherwise uniform random.
// Returns nil when no enemy remains (combat should already be flagged ended).
func (e *Engine) selectAntibodyTarget(a *game.Antibody) *game.Pathogen {
	living := e.livingPathogens()
	if len(living) == 0 {
		return nil
	}
	if a.PrioritizeLowHealth {
		return lowestHealthPathogen(living)
	}
	return living[e.rng.Intn(len(living))]
}

// selectPathogenTarget applies the fixed pathogen policy: 60% chance to
// focus the lowest-health antibody, 40% uniform random.
func (e *Engine) selectPathogenTarget() *game.Antibody {
	living := e.livingAntibodies()
	if len(living) == 0 {
		return nil
	}
	if e.rng.Float64() < pathogenFocusChance {
		return lowestHealthAntibody(living)
	}
	return living[e.rng.Intn(len(living))]
}

// woundedAlly returns the living antibody with the lowest health ratio, or
// nil when nobody is below full health. Used by the defensive antibody's
// cellular repair.
func (e *Engine) woundedAlly() *game.Antibody {
	var best *game.Antibody
	for _, a := range e.livingAntibodies() {
		if a.CurrentHealth >= a.MaxHealth {
			continue
		}
		if best == nil || a.HealthRatio() < best.HealthRatio() {
			best = a
		}
	}
	return best
}
