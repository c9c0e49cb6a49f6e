// Package server holds the HTTP server configuration.
//
// The start command builds the fiber app from this Config: listen port, read and
// write timeouts, and the API key checked by core/middleware/auth.
package server
