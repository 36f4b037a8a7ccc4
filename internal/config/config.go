package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

type antibodyEntry struct {
	Name                string `json:"name"`
	Kind                string `json:"kind"`
	Health              int    `json:"health"`
	Damage              int    `json:"damage"`
	Initiative          int    `json:"initiative"`
	AttackType          string `json:"attack_type"`
	EnergyCost          int    `json:"energy_cost"`
	BiomaterialCost     int    `json:"biomaterial_cost"`
	ProductionTime      int    `json:"production_time"`
	PrioritizeLowHealth bool   `json:"prioritize_low_health"`
}

type pathogenEntry struct {
	Name        string             `json:"name"`
	Species     string             `json:"species"`
	Kind        string             `json:"kind"`
	Health      int                `json:"health"`
	Damage      int                `json:"damage"`
	Initiative  int                `json:"initiative"`
	AttackType  string             `json:"attack_type"`
	Armor       float64            `json:"armor"`
	Resistances map[string]float64 `json:"resistances"`
}

type rawConfig struct {
	AntibodyList []antibodyEntry `json:"antibody_list"`
	PathogenList []pathogenEntry `json:"pathogen_list"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	Combat *struct {
		TurnCap int `json:"turn_cap"`
	} `json:"combat"`
	// Optional report prompt template used to generate battle narratives.
	// Use the token {{summary}} where the battle summary will be
	// substituted. If omitted, a default prompt is used.
	ReportPrompt string `json:"report_prompt"`
}

// LoadedConfig contains the unit catalog to serve, the server address to
// bind to and combat tuning overrides.
type LoadedConfig struct {
	Antibodies    []game.Antibody
	Pathogens     []game.Pathogen
	ServerAddress string
	TurnCap       int
	// Optional report prompt template loaded from config
	ReportPromptTemplate string
}

// LoadConfig reads the configuration file at path and returns the unit
// catalog plus server settings. It requires both `antibody_list` and
// `pathogen_list` (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.AntibodyList) == 0 {
		return nil, fmt.Errorf("config file %s: antibody_list is empty (provide 'antibody_list' array)", path)
	}
	if len(rc.PathogenList) == 0 {
		return nil, fmt.Errorf("config file %s: pathogen_list is empty (provide 'pathogen_list' array)", path)
	}

	antibodies := make([]game.Antibody, 0, len(rc.AntibodyList))
	nameSet := make(map[string]struct{}, len(rc.AntibodyList))
	for _, a := range rc.AntibodyList {
		if a.Name == "" {
			return nil, fmt.Errorf("config file %s: antibody entry missing 'name'", path)
		}
		kind := game.AntibodyKind(a.Kind)
		if a.Kind == "" {
			kind = game.AntibodyBase
		}
		if !game.ValidAntibodyKind(kind) {
			return nil, fmt.Errorf("config file %s: antibody '%s' has unknown kind '%s'", path, a.Name, a.Kind)
		}
		at := game.AttackType(a.AttackType)
		if !game.ValidAttackType(at) {
			return nil, fmt.Errorf("config file %s: antibody '%s' has unknown attack_type '%s'", path, a.Name, a.AttackType)
		}
		if a.Health <= 0 {
			return nil, fmt.Errorf("config file %s: antibody '%s' needs health > 0", path, a.Name)
		}
		ln := strings.ToLower(strings.TrimSpace(a.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate antibody name '%s'", path, a.Name)
		}
		nameSet[ln] = struct{}{}
		antibodies = append(antibodies, game.Antibody{
			Name:                a.Name,
			Kind:                kind,
			MaxHealth:           a.Health,
			CurrentHealth:       a.Health,
			Damage:              a.Damage,
			Initiative:          a.Initiative,
			AttackType:          at,
			EnergyCost:          a.EnergyCost,
			BiomaterialCost:     a.BiomaterialCost,
			ProductionTime:      a.ProductionTime,
			PrioritizeLowHealth: a.PrioritizeLowHealth,
		})
	}

	pathogens := make([]game.Pathogen, 0, len(rc.PathogenList))
	pNameSet := make(map[string]struct{}, len(rc.PathogenList))
	for _, p := range rc.PathogenList {
		if p.Name == "" {
			return nil, fmt.Errorf("config file %s: pathogen entry missing 'name'", path)
		}
		kind := game.PathogenKind(p.Kind)
		if p.Kind == "" {
			kind = game.PathogenBase
		}
		if !game.ValidPathogenKind(kind) {
			return nil, fmt.Errorf("config file %s: pathogen '%s' has unknown kind '%s'", path, p.Name, p.Kind)
		}
		at := game.AttackType(p.AttackType)
		if !game.ValidAttackType(at) {
			return nil, fmt.Errorf("config file %s: pathogen '%s' has unknown attack_type '%s'", path, p.Name, p.AttackType)
		}
		if p.Health <= 0 {
			return nil, fmt.Errorf("config file %s: pathogen '%s' needs health > 0", path, p.Name)
		}
		if p.Armor < 0 || p.Armor >= 100 {
			return nil, fmt.Errorf("config file %s: pathogen '%s' armor must be in [0,100)", path, p.Name)
		}
		var res map[game.AttackType]float64
		if len(p.Resistances) > 0 {
			res = make(map[game.AttackType]float64, len(p.Resistances))
			for k, v := range p.Resistances {
				rt := game.AttackType(k)
				if !game.ValidAttackType(rt) {
					return nil, fmt.Errorf("config file %s: pathogen '%s' has resistance for unknown attack type '%s'", path, p.Name, k)
				}
				if v <= 0 {
					return nil, fmt.Errorf("config file %s: pathogen '%s' resistance multiplier for '%s' must be > 0", path, p.Name, k)
				}
				res[rt] = v
			}
		}
		species := p.Species
		if species == "" {
			species = p.Name
		}
		ln := strings.ToLower(strings.TrimSpace(p.Name))
		if _, exists := pNameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate pathogen name '%s'", path, p.Name)
		}
		pNameSet[ln] = struct{}{}
		pathogens = append(pathogens, game.Pathogen{
			Name:          p.Name,
			Species:       species,
			Kind:          kind,
			MaxHealth:     p.Health,
			CurrentHealth: p.Health,
			Damage:        p.Damage,
			Initiative:    p.Initiative,
			AttackType:    at,
			Armor:         p.Armor,
			Resistances:   res,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	turnCap := 0
	if rc.Combat != nil {
		turnCap = rc.Combat.TurnCap
	}

	return &LoadedConfig{
		Antibodies:           antibodies,
		Pathogens:            pathogens,
		ServerAddress:        addr,
		TurnCap:              turnCap,
		ReportPromptTemplate: strings.TrimSpace(rc.ReportPrompt),
	}, nil
}
