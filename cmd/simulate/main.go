// Command simulate runs seeded batch simulations from a YAML scenario file
// and prints a JSON summary, for balance tuning without the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/config"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/engine"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/memory"
)

var (
	flagConfig   string
	flagScenario string
	flagN        int
	flagSeed     int64
	flagVerbose  bool
)

func init() {
	flag.StringVar(&flagConfig, "config", "./immuno_config.json", "unit catalog config file")
	flag.StringVar(&flagScenario, "scenario", "", "YAML scenario file (required)")
	flag.IntVar(&flagN, "n", 0, "override number of battles to simulate")
	flag.Int64Var(&flagSeed, "seed", 0, "override base random seed")
	flag.BoolVar(&flagVerbose, "v", false, "include the full log of the first battle in the output")
}

type scenario struct {
	Seed       int64    `yaml:"seed"`
	Battles    int      `yaml:"battles"`
	TurnCap    int      `yaml:"turn_cap"`
	Antibodies []string `yaml:"antibodies"`
	Pathogens  []string `yaml:"pathogens"`
}

type summary struct {
	Battles        int      `json:"battles"`
	Wins           int      `json:"wins"`
	WinRate        float64  `json:"win_rate"`
	Timeouts       int      `json:"timeouts"`
	MeanTurns      float64  `json:"mean_turns"`
	MeanResources  float64  `json:"mean_resources"`
	FirstBattleLog []string `json:"first_battle_log,omitempty"`
}

func main() {
	flag.Parse()
	if flagScenario == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -scenario scenario.yaml [-config immuno_config.json] [-n N] [-seed S]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		logging.Fatal("invalid catalog config", err, logging.Fields{"config_path": flagConfig})
	}

	b, err := os.ReadFile(flagScenario)
	if err != nil {
		logging.Fatal("failed to read scenario", err, logging.Fields{"scenario_path": flagScenario})
	}
	var sc scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		logging.Fatal("failed to parse scenario", err, logging.Fields{"scenario_path": flagScenario})
	}
	if flagN > 0 {
		sc.Battles = flagN
	}
	if sc.Battles <= 0 {
		sc.Battles = 100
	}
	if flagSeed != 0 {
		sc.Seed = flagSeed
	}
	if sc.Seed == 0 {
		sc.Seed = 1
	}

	antibodies, err := unitsByName(cfg.Antibodies, sc.Antibodies)
	if err != nil {
		logging.Fatal("bad scenario roster", err, nil)
	}
	pathogens, err := pathogensByName(cfg.Pathogens, sc.Pathogens)
	if err != nil {
		logging.Fatal("bad scenario roster", err, nil)
	}

	out := summary{Battles: sc.Battles}
	totalTurns := 0
	totalResources := 0
	for i := 0; i < sc.Battles; i++ {
		opts := []engine.Option{
			engine.WithSeed(sc.Seed + int64(i)),
			engine.WithMemory(memory.NewLedger()),
		}
		if sc.TurnCap > 0 {
			opts = append(opts, engine.WithTurnCap(sc.TurnCap))
		}
		eng := engine.New(antibodies, pathogens, opts...)
		res, err := eng.SimulateToCompletion()
		if err != nil {
			logging.Fatal("simulation failed", err, nil)
		}
		if res.PlayerVictory {
			out.Wins++
		}
		if res.TimedOut {
			out.Timeouts++
		}
		totalTurns += res.TurnsElapsed
		totalResources += res.Resources
		if i == 0 && flagVerbose {
			for _, entry := range res.Log {
				out.FirstBattleLog = append(out.FirstBattleLog, entry.Message)
			}
		}
	}
	out.WinRate = float64(out.Wins) / float64(sc.Battles)
	out.MeanTurns = float64(totalTurns) / float64(sc.Battles)
	out.MeanResources = float64(totalResources) / float64(sc.Battles)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logging.Fatal("failed to encode summary", err, nil)
	}
}

func unitsByName(catalog []game.Antibody, names []string) ([]game.Antibody, error) {
	out := make([]game.Antibody, 0, len(names))
	for _, n := range names {
		found := false
		for _, a := range catalog {
			if a.Name == n {
				out = append(out, a)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown antibody '%s'", n)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("scenario needs at least one antibody")
	}
	return out, nil
}

func pathogensByName(catalog []game.Pathogen, names []string) ([]game.Pathogen, error) {
	out := make([]game.Pathogen, 0, len(names))
	for _, n := range names {
		found := false
		for _, p := range catalog {
			if p.Name == n {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown pathogen '%s'", n)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("scenario needs at least one pathogen")
	}
	return out, nil
}
