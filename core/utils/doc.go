// Package utils provides common utility functions for the card manager.
// It includes the fail-soft conversions used to read loosely typed payloads and stored
// records: every converter degrades to a zero or null value instead of returning an error.
package utils
