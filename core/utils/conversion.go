package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// ToInt converts various types to int using explicit type switching.
// Values that cannot be converted yield 0.
func ToInt(val any) int {
	i, _ := ParseInt64(val)
	return int(i)
}

// ParseInt64 converts standard integer types, floats, json.Number, strings and
// byte slices to int64. Fractional values are truncated.
func ParseInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return ParseInt64(uint64(v))
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return floatToInt64(v)
	case float32:
		return ParseInt64(float64(v))
	case json.Number:
		return parseIntString(v.String())
	case string:
		return parseIntString(v)
	case []byte:
		return parseIntString(string(v))
	default:
		return 0, false
	}
}

func parseIntString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt64(f)
}

// floatToInt64 truncates f, rejecting NaN, infinities and values outside int64.
func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// CleanString trims and NFC-normalizes val converted to a string.
func CleanString(val any) string {
	return norm.NFC.String(strings.TrimSpace(ToString(val)))
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return ToInt(v) == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	default:
		return false
	}
}

// ToDecimal converts numbers and numeric strings to a nullable decimal.
// Anything unparseable, including nil, yields an invalid (null) decimal.
func ToDecimal(val any) decimal.NullDecimal {
	switch v := val.(type) {
	case nil:
		return decimal.NullDecimal{}
	case decimal.Decimal:
		return decimal.NewNullDecimal(v)
	case decimal.NullDecimal:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(v))
	case float32:
		return ToDecimal(float64(v))
	case json.Number:
		return decimalString(v.String())
	case string:
		return decimalString(v)
	case []byte:
		return decimalString(string(v))
	default:
		if i, ok := ParseInt64(v); ok {
			return decimal.NewNullDecimal(decimal.NewFromInt(i))
		}
		return decimal.NullDecimal{}
	}
}

func decimalString(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ToMillis converts a timestamp to unix milliseconds. Numbers are taken as
// milliseconds unless they are small enough to be unix seconds; strings may also
// be RFC 3339 or YYYY-MM-DD dates. It returns nil when val cannot be interpreted.
func ToMillis(val any) *int64 {
	switch v := val.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		ms := v.UnixMilli()
		return &ms
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				ms := t.UnixMilli()
				return &ms
			}
		}
	}
	n, ok := ParseInt64(val)
	if !ok || n < 0 {
		return nil
	}
	if n < 100_000_000_000 {
		n *= 1000
	}
	return &n
}
