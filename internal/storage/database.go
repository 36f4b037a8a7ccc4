package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/game"
)

// OpenAndMigrate opens the SQLite database at dataSourceName and keeps the
// schema updated via AutoMigrate. The unit catalog is never persisted; only
// battle history and immune-memory signatures live in the database.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.PathogenSignature{}); err != nil {
		return nil, err
	}
	return db, nil
}
