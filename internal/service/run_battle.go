package service

import (
	"errors"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/engine"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/memory"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/storage"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrEmptyRoster    = errors.New("both sides need at least one unit")
)

// BattleRequest names the units (catalog names) each side brings, plus an
// optional seed for deterministic replay and a turn-cap override.
type BattleRequest struct {
	Antibodies []string `json:"antibodies"`
	Pathogens  []string `json:"pathogens"`
	Seed       int64    `json:"seed"`
	TurnCap    int      `json:"turn_cap"`
}

// NewEngagement assembles rosters from the catalog and returns a ready
// engine wired to an immune-memory ledger loaded from persisted
// signatures. Combat has not started yet; the caller owns the engine.
func NewEngagement(repo storage.Repository, req BattleRequest) (*engine.Engine, *memory.Ledger, error) {
	if len(req.Antibodies) == 0 || len(req.Pathogens) == 0 {
		return nil, nil, ErrEmptyRoster
	}
	antibodies, err := repo.GetAntibodiesByNames(req.Antibodies)
	if err != nil {
		return nil, nil, err
	}
	pathogens, err := repo.GetPathogensByNames(req.Pathogens)
	if err != nil {
		return nil, nil, err
	}
	sigs, err := repo.ListSignatures()
	if err != nil {
		return nil, nil, err
	}
	ledger := memory.NewLedgerWith(sigs)

	opts := []engine.Option{engine.WithMemory(ledger)}
	if req.Seed != 0 {
		opts = append(opts, engine.WithSeed(req.Seed))
	}
	if req.TurnCap > 0 {
		opts = append(opts, engine.WithTurnCap(req.TurnCap))
	}
	return engine.New(antibodies, pathogens, opts...), ledger, nil
}

// RunBattle simulates a battle to completion, records defeated species in
// the immune-memory ledger and persists the battle record. Returns the
// record and the full combat result.
func RunBattle(repo storage.Repository, req BattleRequest) (*game.BattleRecord, *game.CombatResult, error) {
	eng, ledger, err := NewEngagement(repo, req)
	if err != nil {
		return nil, nil, err
	}
	res, err := eng.SimulateToCompletion()
	if err != nil {
		return nil, nil, err
	}
	rec, err := CompleteBattle(repo, eng, ledger, res, req.Seed)
	if err != nil {
		return nil, nil, err
	}
	return rec, res, nil
}

// CompleteBattle runs the battle-end bookkeeping shared by the blocking and
// streaming paths: every defeated pathogen species is recorded in the
// ledger (first discoveries award bonus research), updated signatures are
// upserted, and the battle record is persisted.
func CompleteBattle(repo storage.Repository, eng *engine.Engine, ledger *memory.Ledger, res *game.CombatResult, seed int64) (*game.BattleRecord, error) {
	for _, p := range eng.DefeatedPathogens() {
		pathogen := p
		sig, research := ledger.RecordDefeat(&pathogen)
		res.ResearchPoints += research
		if err := repo.UpsertSignature(sig); err != nil {
			logging.Error("failed to persist pathogen signature", err, logging.Fields{constants.LogFieldSpecies: sig.Species})
		}
	}

	rec := &game.BattleRecord{Seed: seed}
	rec.SetResult(res)
	if err := repo.SaveBattle(rec); err != nil {
		return nil, err
	}
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldBattleID: rec.ID,
		constants.LogFieldSeed:     seed,
		constants.LogFieldTurn:     res.TurnsElapsed,
		constants.LogFieldVictory:  res.PlayerVictory,
	})
	return rec, nil
}

// GetBattle fetches a persisted battle record by ID.
func GetBattle(repo storage.Repository, id uint) (*game.BattleRecord, error) {
	rec, err := repo.GetBattleByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return rec, nil
}
