package game

// Antibody is a player-controlled combat unit. Instances are created when a
// roster is assembled for a battle; health is mutated only by damage/heal
// resolution during combat and a unit never revives once it reaches 0.
type Antibody struct {
	ID   uint         `json:"id"`
	Name string       `json:"name"`
	Kind AntibodyKind `json:"kind"`

	MaxHealth     int `json:"max_health"`
	CurrentHealth int `json:"current_health"`

	Damage     int        `json:"damage"`
	Initiative int        `json:"initiative"`
	AttackType AttackType `json:"attack_type"`

	// Production economics, read by the external hatchery screen. The
	// immune-memory cost reduction applies to these at production time,
	// never during combat.
	EnergyCost      int `json:"energy_cost"`
	BiomaterialCost int `json:"biomaterial_cost"`
	ProductionTime  int `json:"production_time"`

	// PrioritizeLowHealth switches targeting from uniform random to the
	// living enemy with strictly lowest current health.
	PrioritizeLowHealth bool `json:"prioritize_low_health"`

	// SpecialCooldown counts turns until the kind-specific ability is
	// ready again; 0 means ready. Ticked by the engine after the unit acts.
	SpecialCooldown int `json:"special_cooldown"`
}

// IsDefeated is derived from health and must be re-checked after every
// damage application, never cached.
func (a *Antibody) IsDefeated() bool { return a.CurrentHealth <= 0 }

// ReceiveDamage applies direct damage. Antibodies have no armor or
// resistances; the amount subtracts as-is, with health clamped at 0.
func (a *Antibody) ReceiveDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > a.CurrentHealth {
		amount = a.CurrentHealth
	}
	a.CurrentHealth -= amount
	return amount
}

// Heal restores health clamped at MaxHealth and returns the amount
// actually applied. Defeated units cannot be healed back into the fight.
func (a *Antibody) Heal(amount int) int {
	if a.IsDefeated() || amount <= 0 {
		return 0
	}
	if a.CurrentHealth+amount > a.MaxHealth {
		amount = a.MaxHealth - a.CurrentHealth
	}
	a.CurrentHealth += amount
	return amount
}

// HealthRatio returns current/max health, used by the defensive
// antibody to pick the most wounded living ally.
func (a *Antibody) HealthRatio() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return float64(a.CurrentHealth) / float64(a.MaxHealth)
}
