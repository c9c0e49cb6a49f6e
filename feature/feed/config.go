package feed

import "time"

// Config holds configuration for the realtime feed.
type Config struct {
	// Enabled turns the consumer on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// URL is the websocket endpoint of the push channel.
	URL string `mapstructure:"url" default:"ws://localhost:8090/realtime"`
	// ApiKey is sent as a bearer token when set.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReconnectSeconds is the delay before re-dialing a dropped connection.
	ReconnectSeconds int `mapstructure:"reconnect_seconds" default:"5"`
	// PingTimeoutSeconds closes a connection that has been silent this long.
	PingTimeoutSeconds int `mapstructure:"ping_timeout_seconds" default:"90"`
	// WriteTimeoutSeconds bounds control and subscribe writes.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"10"`
}

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

// ReconnectDelay returns the delay before re-dialing.
func (c Config) ReconnectDelay() time.Duration { return seconds(c.ReconnectSeconds, 5) }

// PingTimeout returns the silence tolerated on an open connection.
func (c Config) PingTimeout() time.Duration { return seconds(c.PingTimeoutSeconds, 90) }

// WriteTimeout returns the deadline for writes.
func (c Config) WriteTimeout() time.Duration { return seconds(c.WriteTimeoutSeconds, 10) }
