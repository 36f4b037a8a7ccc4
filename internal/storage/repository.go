package storage

import (
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

type Repository interface {
	// Unit catalog (config is the single source of truth; nothing here
	// touches the database).
	ListAntibodies() ([]game.Antibody, error)
	ListPathogens() ([]game.Pathogen, error)
	GetAntibodiesByNames(names []string) ([]game.Antibody, error)
	GetPathogensByNames(names []string) ([]game.Pathogen, error)

	// Battle history
	SaveBattle(b *game.BattleRecord) error
	UpdateBattle(b *game.BattleRecord) error
	GetBattleByID(id uint) (*game.BattleRecord, error)
	ListRecentBattles(limit int) ([]game.BattleRecord, error)

	// Immune memory
	ListSignatures() ([]game.PathogenSignature, error)
	GetSignatureByKey(key string) (*game.PathogenSignature, error)
	// UpsertSignature inserts or updates a signature keyed by its
	// canonical species key.
	UpsertSignature(sig *game.PathogenSignature) error
}
