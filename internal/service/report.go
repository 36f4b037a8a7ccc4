package service

import (
	"errors"
	"strconv"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/dedupe"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/narrative"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/storage"
)

// GetBattleReport returns the narrative report for a finished battle,
// generating and caching it on first request. Concurrent requests for the
// same battle share a single generation call.
func GetBattleReport(repo storage.Repository, battleID uint) (string, error) {
	rec, err := repo.GetBattleByID(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrBattleNotFound
		}
		return "", err
	}
	if rec.Narrative != "" {
		return rec.Narrative, nil
	}

	key := "battle:" + strconv.FormatUint(uint64(battleID), 10)
	v, err, _ := dedupe.ReportGroup.Do(key, func() (interface{}, error) {
		report, genErr := narrative.GenerateBattleReport(rec.Result())
		if genErr != nil {
			return nil, genErr
		}
		rec.Narrative = report
		if saveErr := repo.UpdateBattle(rec); saveErr != nil {
			// The report is still usable; it just won't be cached.
			logging.Error("failed to cache battle report", saveErr, logging.Fields{constants.LogFieldBattleID: battleID})
		}
		return report, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
