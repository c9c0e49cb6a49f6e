// Package config provides configuration management for the card manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, timeouts and API key
//   - Log: level, format and optional rotating log file
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Snapshot: where workspaces are persisted (file, database, object, memory)
//   - Source: card data backend (database, fixtures)
//   - Deck: workspace name, tier limits, notification inbox, refresh pacing
//   - Feed: realtime websocket endpoint
//
// Environment keys are the upper-cased dotted path with underscores, for example
// DECK_TIER or SNAPSHOT_BACKEND.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Deck.Workspace)
package config
