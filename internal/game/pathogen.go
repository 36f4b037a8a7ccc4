package game

import "math"

// Pathogen is an enemy combat unit. Species is the stable identity used by
// the immune-memory ledger; two instances of the same species map to the
// same signature across battles even though their IDs differ.
type Pathogen struct {
	ID      uint         `json:"id"`
	Name    string       `json:"name"`
	Species string       `json:"species"`
	Kind    PathogenKind `json:"kind"`

	MaxHealth     int `json:"max_health"`
	CurrentHealth int `json:"current_health"`

	Damage     int        `json:"damage"`
	Initiative int        `json:"initiative"`
	AttackType AttackType `json:"attack_type"`

	// Armor is a percentage damage reduction (0..100) applied after the
	// resistance multiplier.
	Armor float64 `json:"armor"`
	// Resistances maps attack type to an incoming-damage multiplier.
	// Missing entries default to 1.0; values below 1 reduce damage of
	// that type, values above 1 increase it.
	Resistances map[AttackType]float64 `json:"resistances"`

	// Marked flags this unit as carrying a marker-antibody debuff; attacks
	// against a marked unit deal extra damage until it is defeated.
	Marked bool `json:"marked"`

	// Biofilm shield state (bacteria). While active, incoming damage is
	// reduced by BiofilmReduction before the resistance/armor math.
	BiofilmActive    bool    `json:"biofilm_active"`
	BiofilmReduction float64 `json:"biofilm_reduction"`

	// Corrosive spore state (fungus). Once released, SporeBonus is added
	// to the fungus's own attacks and applied once per turn as area chip
	// damage to every other living enemy unit.
	SporesActive bool `json:"spores_active"`
	SporeBonus   int  `json:"spore_bonus"`
}

// IsDefeated is derived from health; re-evaluated after every hit.
func (p *Pathogen) IsDefeated() bool { return p.CurrentHealth <= 0 }

// ResistanceFactor returns the incoming-damage multiplier for an attack
// type, defaulting to 1.0 for unspecified types.
func (p *Pathogen) ResistanceFactor(t AttackType) float64 {
	if p.Resistances == nil {
		return 1.0
	}
	if f, ok := p.Resistances[t]; ok {
		return f
	}
	return 1.0
}

// ReceiveDamage resolves an incoming hit:
//
//	shielded = round(incoming x (1-biofilm))      (only while biofilm holds)
//	reduced  = shielded x resistance[type] x (1-armor/100)
//	actual   = max(1, round(reduced))
//
// A minimum of 1 damage always lands regardless of resistance and armor so
// battles are guaranteed to terminate. Health is clamped at 0.
func (p *Pathogen) ReceiveDamage(amount int, attackType AttackType) int {
	if amount < 0 {
		amount = 0
	}
	reduced := float64(amount)
	if p.BiofilmActive && p.BiofilmReduction > 0 {
		reduced = math.Round(reduced * (1.0 - p.BiofilmReduction))
	}
	reduced = reduced * p.ResistanceFactor(attackType) * (1.0 - p.Armor/100.0)
	dmg := int(math.Round(reduced))
	if dmg < 1 {
		dmg = 1
	}
	p.CurrentHealth -= dmg
	if p.CurrentHealth < 0 {
		p.CurrentHealth = 0
	}
	return dmg
}

// Mutate performs the virus "rapid mutation": the attack type switches to
// the type this virus resists least, resistance to that type halves and
// resistance to the other types grows by 20%. Returns the new attack type.
func (p *Pathogen) Mutate() AttackType {
	if p.Resistances == nil {
		p.Resistances = make(map[AttackType]float64, len(AttackTypes))
	}
	// Weakest resistance = highest incoming-damage multiplier. Fixed
	// iteration order keeps replays deterministic.
	weakest := AttackTypes[0]
	for _, t := range AttackTypes[1:] {
		if p.ResistanceFactor(t) > p.ResistanceFactor(weakest) {
			weakest = t
		}
	}
	for _, t := range AttackTypes {
		f := p.ResistanceFactor(t)
		if t == weakest {
			p.Resistances[t] = f * 0.5
		} else {
			p.Resistances[t] = f * 1.2
		}
	}
	p.AttackType = weakest
	return weakest
}
