package game

// UnitSnapshot is an immutable value copy of a unit's state handed across
// the engine boundary. The presentation and narrative layers consume
// snapshots only; they never hold references into live combat state.
type UnitSnapshot struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Side          string `json:"side"` // "antibody" | "pathogen"
	Kind          string `json:"kind"`
	CurrentHealth int    `json:"current_health"`
	MaxHealth     int    `json:"max_health"`
	Defeated      bool   `json:"defeated"`
}

// TurnResult is the per-sweep delta returned by the stepper so an external
// animator can play one turn at a time. Active reports whether the battle
// continues after this sweep.
type TurnResult struct {
	Active          bool       `json:"active"`
	Turn            int        `json:"turn"`
	Entries         []LogEntry `json:"entries"`
	DefeatedUnitIDs []uint     `json:"defeated_unit_ids"`
}

// CombatResult is the aggregate outcome handed to the persistence and
// narrative layers once combat has ended.
type CombatResult struct {
	PlayerVictory bool `json:"player_victory"`
	TimedOut      bool `json:"timed_out"`
	TurnsElapsed  int  `json:"turns_elapsed"`

	Log []LogEntry `json:"log"`

	Resources      int `json:"resources"`
	ResearchPoints int `json:"research_points"`

	// PathogenIDsDefeated lists the in-battle unit IDs of defeated
	// pathogens; SpeciesDefeated lists their stable identities for the
	// immune-memory ledger.
	PathogenIDsDefeated []uint   `json:"pathogen_ids_defeated"`
	SpeciesDefeated     []string `json:"species_defeated"`

	Units []UnitSnapshot `json:"units"`

	// SignificantEvents are the log entries worth narrating: special
	// actions or hits above the damage threshold, trimmed to the first
	// and last five when more than ten qualify.
	SignificantEvents []LogEntry `json:"significant_events"`
}
