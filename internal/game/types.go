package game

// AttackType classifies how a unit deals damage. Pathogens carry a
// per-type resistance multiplier that scales incoming damage of that type.
type AttackType string

const (
	AttackPhysical  AttackType = "physical"
	AttackChemical  AttackType = "chemical"
	AttackEnergetic AttackType = "energetic"
)

// AttackTypes lists every valid attack type, in a fixed order used when
// iterating resistance maps so results are reproducible.
var AttackTypes = []AttackType{AttackPhysical, AttackChemical, AttackEnergetic}

// AntibodyKind is a closed set of antibody variants. The engine dispatches
// special-ability behavior on the kind instead of inspecting runtime types.
type AntibodyKind string

const (
	AntibodyBase      AntibodyKind = "base"
	AntibodyOffensive AntibodyKind = "offensive"
	AntibodyDefensive AntibodyKind = "defensive"
	AntibodyMarker    AntibodyKind = "marker"
)

// PathogenKind is the closed set of pathogen variants.
type PathogenKind string

const (
	PathogenBase     PathogenKind = "base"
	PathogenVirus    PathogenKind = "virus"
	PathogenBacteria PathogenKind = "bacteria"
	PathogenFungus   PathogenKind = "fungus"
)

// ValidAntibodyKind reports whether k names a known antibody variant.
func ValidAntibodyKind(k AntibodyKind) bool {
	switch k {
	case AntibodyBase, AntibodyOffensive, AntibodyDefensive, AntibodyMarker:
		return true
	}
	return false
}

// ValidPathogenKind reports whether k names a known pathogen variant.
func ValidPathogenKind(k PathogenKind) bool {
	switch k {
	case PathogenBase, PathogenVirus, PathogenBacteria, PathogenFungus:
		return true
	}
	return false
}

// ValidAttackType reports whether t names a known attack type.
func ValidAttackType(t AttackType) bool {
	switch t {
	case AttackPhysical, AttackChemical, AttackEnergetic:
		return true
	}
	return false
}
