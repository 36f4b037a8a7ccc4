package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "immuno_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

const validConfig = `{
  "antibody_list": [
    {"name": "Killer T", "kind": "offensive", "health": 50, "damage": 20, "initiative": 15, "attack_type": "physical", "energy_cost": 30, "biomaterial_cost": 20, "production_time": 3},
    {"name": "Macrophage", "kind": "defensive", "health": 70, "damage": 8, "initiative": 9, "attack_type": "chemical"}
  ],
  "pathogen_list": [
    {"name": "Influenza A", "species": "Influenza A", "kind": "virus", "health": 55, "damage": 10, "initiative": 16, "attack_type": "chemical", "resistances": {"physical": 0.9, "chemical": 1.2}},
    {"name": "E. coli", "kind": "bacteria", "health": 80, "damage": 7, "initiative": 6, "attack_type": "physical", "armor": 20}
  ],
  "server": {"address": ":9090"},
  "combat": {"turn_cap": 40},
  "report_prompt": "Narrate this: {{summary}}"
}`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Antibodies) != 2 || len(cfg.Pathogens) != 2 {
		t.Fatalf("catalog sizes wrong: %d antibodies, %d pathogens", len(cfg.Antibodies), len(cfg.Pathogens))
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("server address not applied: %s", cfg.ServerAddress)
	}
	if cfg.TurnCap != 40 {
		t.Fatalf("turn cap not applied: %d", cfg.TurnCap)
	}
	if cfg.ReportPromptTemplate != "Narrate this: {{summary}}" {
		t.Fatalf("report prompt not loaded: %q", cfg.ReportPromptTemplate)
	}
	if cfg.Antibodies[0].Kind != game.AntibodyOffensive || cfg.Antibodies[0].CurrentHealth != 50 {
		t.Fatalf("antibody entry not mapped: %+v", cfg.Antibodies[0])
	}
	// species falls back to name when omitted
	if cfg.Pathogens[1].Species != "E. coli" {
		t.Fatalf("species fallback missing: %q", cfg.Pathogens[1].Species)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadConfig_EmptyLists(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"antibody_list": [], "pathogen_list": []}`))
	if err == nil || !strings.Contains(err.Error(), "antibody_list is empty") {
		t.Fatalf("expected empty antibody_list error, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown kind",
			content: `{"antibody_list": [{"name": "X", "kind": "stealth", "health": 10, "attack_type": "physical"}], "pathogen_list": [{"name": "P", "health": 10, "attack_type": "physical"}]}`,
			want:    "unknown kind",
		},
		{
			name:    "unknown attack type",
			content: `{"antibody_list": [{"name": "X", "health": 10, "attack_type": "psychic"}], "pathogen_list": [{"name": "P", "health": 10, "attack_type": "physical"}]}`,
			want:    "unknown attack_type",
		},
		{
			name:    "non-positive health",
			content: `{"antibody_list": [{"name": "X", "health": 0, "attack_type": "physical"}], "pathogen_list": [{"name": "P", "health": 10, "attack_type": "physical"}]}`,
			want:    "health > 0",
		},
		{
			name:    "armor out of range",
			content: `{"antibody_list": [{"name": "X", "health": 10, "attack_type": "physical"}], "pathogen_list": [{"name": "P", "health": 10, "attack_type": "physical", "armor": 100}]}`,
			want:    "armor must be in [0,100)",
		},
		{
			name:    "bad resistance multiplier",
			content: `{"antibody_list": [{"name": "X", "health": 10, "attack_type": "physical"}], "pathogen_list": [{"name": "P", "health": 10, "attack_type": "physical", "resistances": {"physical": 0}}]}`,
			want:    "must be > 0",
		},
		{
			name:    "duplicate antibody name",
			content: `{"antibody_list": [{"name": "X", "health": 10, "attack_type": "physical"}, {"name": "x", "health": 10, "attack_type": "physical"}], "pathogen_list": [{"name": "P", "health": 10, "attack_type": "physical"}]}`,
			want:    "duplicate antibody name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
