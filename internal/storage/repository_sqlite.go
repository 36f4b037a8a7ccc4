package storage

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

// ErrNotFound normalizes gorm's record-not-found for callers that should
// not import gorm.
var ErrNotFound = errors.New("record not found")

type sqliteRepository struct {
	db *gorm.DB
	// Catalog maps come from the config file (source of truth); lookups
	// are case-insensitive on unit name.
	antibodiesByName map[string]game.Antibody
	pathogensByName  map[string]game.Pathogen
	antibodies       []game.Antibody
	pathogens        []game.Pathogen
}

func NewSQLiteRepository(db *gorm.DB, antibodies []game.Antibody, pathogens []game.Pathogen) Repository {
	am := make(map[string]game.Antibody, len(antibodies))
	for _, a := range antibodies {
		am[strings.ToLower(a.Name)] = a
	}
	pm := make(map[string]game.Pathogen, len(pathogens))
	for _, p := range pathogens {
		pm[strings.ToLower(p.Name)] = p
	}
	return &sqliteRepository{
		db:               db,
		antibodiesByName: am,
		pathogensByName:  pm,
		antibodies:       antibodies,
		pathogens:        pathogens,
	}
}

func (r *sqliteRepository) ListAntibodies() ([]game.Antibody, error) {
	out := make([]game.Antibody, len(r.antibodies))
	copy(out, r.antibodies)
	return out, nil
}

func (r *sqliteRepository) ListPathogens() ([]game.Pathogen, error) {
	out := make([]game.Pathogen, len(r.pathogens))
	copy(out, r.pathogens)
	return out, nil
}

func (r *sqliteRepository) GetAntibodiesByNames(names []string) ([]game.Antibody, error) {
	out := make([]game.Antibody, 0, len(names))
	for _, n := range names {
		a, ok := r.antibodiesByName[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown antibody '%s'", n)
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *sqliteRepository) GetPathogensByNames(names []string) ([]game.Pathogen, error) {
	out := make([]game.Pathogen, 0, len(names))
	for _, n := range names {
		p, ok := r.pathogensByName[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("unknown pathogen '%s'", n)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *sqliteRepository) SaveBattle(b *game.BattleRecord) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) UpdateBattle(b *game.BattleRecord) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.BattleRecord, error) {
	var b game.BattleRecord
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) ListRecentBattles(limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var battles []game.BattleRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) ListSignatures() ([]game.PathogenSignature, error) {
	var sigs []game.PathogenSignature
	if err := r.db.Order("discovered_at ASC").Find(&sigs).Error; err != nil {
		return nil, err
	}
	return sigs, nil
}

func (r *sqliteRepository) GetSignatureByKey(key string) (*game.PathogenSignature, error) {
	var sig game.PathogenSignature
	if err := r.db.Where("species_key = ?", key).First(&sig).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sig, nil
}

func (r *sqliteRepository) UpsertSignature(sig *game.PathogenSignature) error {
	// Signatures loaded from the DB keep their primary key; a plain save
	// suffices for those. The conflict clause covers first-time inserts
	// racing on the species key.
	if sig.ID != 0 {
		return r.db.Save(sig).Error
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "species_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"encounter_count", "damage_bonus", "cost_reduction", "updated_at",
		}),
	}).Create(sig).Error
}
