package server

import (
	"strconv"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"15"`
	// WriteTimeoutSeconds bounds writing a response.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"15"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// IsValidPort checks that Port is a TCP port number.
func (c Config) IsValidPort() bool {
	n, err := strconv.Atoi(c.Port)
	return err == nil && n > 0 && n < 65536
}

// ReadTimeout returns ReadTimeoutSeconds as a duration, 0 meaning no limit.
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns WriteTimeoutSeconds as a duration, 0 meaning no limit.
func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}
