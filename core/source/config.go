package source

// Config holds configuration for the card data backend.
type Config struct {
	// Driver selects the backend (database, fixtures).
	Driver string `mapstructure:"driver" default:"database"`
	// TablePrefix is prepended to every backend table name.
	TablePrefix string `mapstructure:"table_prefix" default:""`
	// FixturesPath is the YAML file used by the fixtures driver.
	FixturesPath string `mapstructure:"fixtures_path" default:"fixtures.yaml"`
	// TimeoutSeconds bounds a single fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
