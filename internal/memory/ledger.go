// Package memory implements the immune-memory ledger: discovered pathogen
// signatures and the damage/cost bonuses they grant against previously
// defeated species.
package memory

import (
	"time"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/keys"
)

const (
	baseDamageBonus = 0.20
	damageBonusStep = 0.05
	damageBonusCap  = 0.50

	baseCostReduction = 0.10
	costReductionStep = 0.025
	costReductionCap  = 0.30

	// Research points awarded only on first discovery of a species.
	firstDiscoveryResearch = 5
)

// bonusesFor derives both bonuses from the encounter count alone, so
// recomputation is idempotent and monotonically non-decreasing.
func bonusesFor(encounters int) (damageBonus, costReduction float64) {
	if encounters < 1 {
		return 0, 0
	}
	damageBonus = baseDamageBonus + damageBonusStep*float64(encounters-1)
	if damageBonus > damageBonusCap {
		damageBonus = damageBonusCap
	}
	costReduction = baseCostReduction + costReductionStep*float64(encounters-1)
	if costReduction > costReductionCap {
		costReduction = costReductionCap
	}
	return damageBonus, costReduction
}

// Ledger is an in-memory view of the signature table, keyed by canonical
// species key. It is loaded from the repository before a battle and written
// back (via RecordDefeat results) at battle end.
type Ledger struct {
	signatures map[string]*game.PathogenSignature
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{signatures: make(map[string]*game.PathogenSignature)}
}

// NewLedgerWith seeds a ledger from persisted signatures.
func NewLedgerWith(sigs []game.PathogenSignature) *Ledger {
	l := NewLedger()
	for i := range sigs {
		s := sigs[i]
		l.signatures[s.SpeciesKey] = &s
	}
	return l
}

// RecordDefeat creates or updates the signature for a defeated pathogen's
// species and returns the updated signature plus the research points the
// discovery earned (non-zero only for a first discovery).
func (l *Ledger) RecordDefeat(p *game.Pathogen) (*game.PathogenSignature, int) {
	key := keys.SpeciesKey(p.Species)
	if key == "" {
		key = keys.SpeciesKey(p.Name)
	}
	if sig, ok := l.signatures[key]; ok {
		sig.EncounterCount++
		sig.DamageBonus, sig.CostReduction = bonusesFor(sig.EncounterCount)
		return sig, 0
	}
	sig := &game.PathogenSignature{
		SpeciesKey:     key,
		PathogenName:   p.Name,
		Species:        p.Species,
		AttackType:     p.AttackType,
		DiscoveredAt:   time.Now().UTC(),
		EncounterCount: 1,
	}
	sig.SetResistances(p.Resistances)
	sig.DamageBonus, sig.CostReduction = bonusesFor(sig.EncounterCount)
	l.signatures[key] = sig
	return sig, firstDiscoveryResearch
}

// DamageBonus returns the attack bonus fraction against a species, 0.0 for
// unknown identities.
func (l *Ledger) DamageBonus(species string) float64 {
	if sig, ok := l.signatures[keys.SpeciesKey(species)]; ok {
		return sig.DamageBonus
	}
	return 0
}

// CostReduction returns the production cost reduction fraction for units
// deployed against a known species, 0.0 for unknown identities.
func (l *Ledger) CostReduction(species string) float64 {
	if sig, ok := l.signatures[keys.SpeciesKey(species)]; ok {
		return sig.CostReduction
	}
	return 0
}

// Known reports whether a species has been recorded.
func (l *Ledger) Known(species string) bool {
	_, ok := l.signatures[keys.SpeciesKey(species)]
	return ok
}

// Signatures returns value copies of every recorded signature.
func (l *Ledger) Signatures() []game.PathogenSignature {
	out := make([]game.PathogenSignature, 0, len(l.signatures))
	for _, sig := range l.signatures {
		out = append(out, *sig)
	}
	return out
}
