package source

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	DriverDatabase = "database"
	DriverFixtures = "fixtures"
)

// Open builds the backend selected by cfg. db is only needed by the database driver.
func Open(cfg Config, db *gorm.DB) (Source, error) {
	switch cfg.Driver {
	case DriverDatabase, "":
		if db == nil {
			return nil, fmt.Errorf("source driver %q needs a database connection", DriverDatabase)
		}
		return NewDBSource(db, cfg), nil
	case DriverFixtures:
		return LoadFixtures(cfg.FixturesPath)
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}
