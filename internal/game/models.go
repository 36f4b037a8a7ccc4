package game

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// PathogenSignature is an immune-memory record created the first time a
// pathogen species is defeated and updated on every later defeat of the
// same species. Bonuses only grow with the encounter count and are capped;
// signatures are never deleted during a session.
type PathogenSignature struct {
	gorm.Model
	// SpeciesKey is the canonical species identity (see keys.SpeciesKey);
	// the same species always maps to the same signature across battles.
	SpeciesKey   string `json:"species_key" gorm:"uniqueIndex"`
	PathogenName string `json:"pathogen_name"`
	Species      string `json:"species"`

	// Attack profile captured at discovery time, kept for the codex screen.
	AttackType      AttackType `json:"attack_type"`
	ResistancesJSON string     `json:"-" gorm:"column:resistances_json;type:text"`

	DiscoveredAt   time.Time `json:"discovered_at"`
	EncounterCount int       `json:"encounter_count"`

	// DamageBonus and CostReduction are fractions (0.20 = +20% damage).
	DamageBonus   float64 `json:"damage_bonus"`
	CostReduction float64 `json:"cost_reduction"`
}

func (PathogenSignature) TableName() string { return "pathogen_signatures" }

// SetResistances serializes a captured resistance map onto the record.
func (s *PathogenSignature) SetResistances(r map[AttackType]float64) {
	if len(r) == 0 {
		s.ResistancesJSON = ""
		return
	}
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	s.ResistancesJSON = string(b)
}

// Resistances decodes the captured resistance map; nil when none was stored.
func (s *PathogenSignature) Resistances() map[AttackType]float64 {
	if s.ResistancesJSON == "" {
		return nil
	}
	var r map[AttackType]float64
	if err := json.Unmarshal([]byte(s.ResistancesJSON), &r); err != nil {
		return nil
	}
	return r
}

// BattleRecord persists a finished battle: outcome, rewards and the full
// combat log, plus the cached narrative report once generated.
type BattleRecord struct {
	gorm.Model
	Seed           int64  `json:"seed"`
	PlayerVictory  bool   `json:"player_victory"`
	TimedOut       bool   `json:"timed_out"`
	TurnsElapsed   int    `json:"turns_elapsed"`
	Resources      int    `json:"resources"`
	ResearchPoints int    `json:"research_points"`
	LogJSON        string `json:"-" gorm:"column:log_json;type:text"`
	UnitsJSON      string `json:"-" gorm:"column:units_json;type:text"`
	DefeatedJSON   string `json:"-" gorm:"column:defeated_json;type:text"`
	// Narrative caches the AI-generated battle report so repeated report
	// requests do not re-hit the OpenAI API.
	Narrative string `json:"narrative,omitempty" gorm:"type:text"`
}

func (BattleRecord) TableName() string { return "battle_records" }

// SetResult serializes the combat result onto the record's JSON columns.
func (b *BattleRecord) SetResult(res *CombatResult) {
	b.PlayerVictory = res.PlayerVictory
	b.TimedOut = res.TimedOut
	b.TurnsElapsed = res.TurnsElapsed
	b.Resources = res.Resources
	b.ResearchPoints = res.ResearchPoints
	if lg, err := json.Marshal(res.Log); err == nil {
		b.LogJSON = string(lg)
	}
	if us, err := json.Marshal(res.Units); err == nil {
		b.UnitsJSON = string(us)
	}
	if df, err := json.Marshal(res.SpeciesDefeated); err == nil {
		b.DefeatedJSON = string(df)
	}
}

// Result rebuilds the portions of the combat result a read endpoint needs.
func (b *BattleRecord) Result() *CombatResult {
	res := &CombatResult{
		PlayerVictory:  b.PlayerVictory,
		TimedOut:       b.TimedOut,
		TurnsElapsed:   b.TurnsElapsed,
		Resources:      b.Resources,
		ResearchPoints: b.ResearchPoints,
	}
	if b.LogJSON != "" {
		_ = json.Unmarshal([]byte(b.LogJSON), &res.Log)
	}
	if b.UnitsJSON != "" {
		_ = json.Unmarshal([]byte(b.UnitsJSON), &res.Units)
	}
	if b.DefeatedJSON != "" {
		_ = json.Unmarshal([]byte(b.DefeatedJSON), &res.SpeciesDefeated)
	}
	return res
}
