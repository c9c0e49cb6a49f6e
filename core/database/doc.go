// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections based on
// the application's configuration. The database holds the market data tables the
// card sources read from and, optionally, the stored deck snapshots.
//
// # Connect
//
// Connect establishes a connection and verifies it with a ping bounded by the configured
// timeout. SQLite connections are limited to one open connection so ":memory:" databases
// behave as a single database.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The database card source uses it to
// verify that every backing table exists and is keyed by symbol.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "quotes")
package database
