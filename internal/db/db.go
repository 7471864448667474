package db

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/julisunkan/Ktrend/internal/config"
	"github.com/julisunkan/Ktrend/internal/research"
)

var DB *gorm.DB

// Init opens the database selected by DATABASE_URL and migrates the
// schema. A postgres:// URL selects postgres; anything else (including
// empty) is treated as a sqlite path, defaulting to a local file.
func Init(cfg *config.Config) error {
	dialector := dialectorFor(cfg.Database.URL)

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&research.ResearchSession{}, &research.FavoriteKeyword{}); err != nil {
		return err
	}

	DB = db
	log.Printf("[DB] connected and migrated")
	return nil
}

func dialectorFor(url string) gorm.Dialector {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url)
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	case url == "":
		return sqlite.Open("keyword_research.db")
	default:
		return sqlite.Open(url)
	}
}
