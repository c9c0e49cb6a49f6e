package snapshot

// Config holds configuration for snapshot persistence.
type Config struct {
	// Backend selects the store (file, database, object, memory).
	Backend string `mapstructure:"backend" default:"file"`
	// Dir is the directory used by the file backend.
	Dir string `mapstructure:"dir" default:"data/snapshots"`
	// Prefix is the object key prefix used by the object backend.
	Prefix string `mapstructure:"prefix" default:"snapshots/"`
	// Table is the table used by the database backend.
	Table string `mapstructure:"table" default:"card_snapshots"`
}

const (
	BackendFile     = "file"
	BackendDatabase = "database"
	BackendObject   = "object"
	BackendMemory   = "memory"
)

// IsValidBackend checks if the configured backend is known.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFile, BackendDatabase, BackendObject, BackendMemory:
		return true
	default:
		return false
	}
}
