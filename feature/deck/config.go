package deck

import "time"

// Config holds configuration for the card deck.
type Config struct {
	// Workspace names the snapshot the deck is loaded from and saved to.
	Workspace string `mapstructure:"workspace" default:"default"`
	// Tier selects the symbol limit (free, premium).
	Tier string `mapstructure:"tier" default:"free"`
	// FreeSymbolLimit is the number of distinct symbols a free deck may track.
	FreeSymbolLimit int `mapstructure:"free_symbol_limit" default:"5"`
	// PremiumSymbolLimit is the number of distinct symbols a premium deck may track. 0 means unlimited.
	PremiumSymbolLimit int `mapstructure:"premium_symbol_limit" default:"0"`
	// NotificationLimit bounds the notification inbox.
	NotificationLimit int `mapstructure:"notification_limit" default:"100"`
	// RefreshIntervalSeconds is the period of background fetches. 0 disables them.
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds" default:"300"`
	// RefreshPerSecond caps the rate of background fetches.
	RefreshPerSecond float64 `mapstructure:"refresh_per_second" default:"5"`
}

const (
	TierFree    = "free"
	TierPremium = "premium"
)

// IsValidTier checks if the configured tier is known.
func (c Config) IsValidTier() bool {
	switch c.Tier {
	case TierFree, TierPremium:
		return true
	default:
		return false
	}
}

// SymbolLimit returns the number of distinct symbols allowed, 0 for no limit.
// Unknown tiers get the free limit.
func (c Config) SymbolLimit() int {
	if c.Tier == TierPremium {
		return c.PremiumSymbolLimit
	}
	return c.FreeSymbolLimit
}

// RefreshInterval returns the background fetch period.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}
