// Package canon turns loosely structured input records into the fixed
// entities of package model. Every field is read through an ordered key
// chain (see keys.go); the first key holding a defined, non-empty value wins.
package canon

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one raw input record, as decoded from JSON or YAML.
type Record map[string]any

// Key normalizes a correlation key (ids, statuses) for comparison.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup returns the first defined, non-empty value along keys.
func (r Record) Lookup(keys []string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// String resolves keys to a trimmed string. Numbers are rendered without
// exponent; nested records resolve through their own id chain.
func (r Record) String(keys []string) string {
	v, ok := r.Lookup(keys)
	if !ok {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case map[string]any:
		return Record(x).String(IDKeys)
	case Record:
		return x.String(IDKeys)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Decimal resolves keys to a decimal. Unparsable or missing values are zero.
func (r Record) Decimal(keys []string) decimal.Decimal {
	v, ok := r.Lookup(keys)
	if !ok {
		return decimal.Zero
	}
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case uint64:
		d, err := decimal.NewFromString(strconv.FormatUint(x, 10))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return decimal.Zero
}

// Bool resolves keys to a boolean. The second result is false when no key
// held a recognizable boolean.
func (r Record) Bool(keys []string) (bool, bool) {
	v, ok := r.Lookup(keys)
	if !ok {
		return false, false
	}
	switch x := v.(type) {
	case bool:
		return x, true
	case int:
		return x != 0, true
	case int64:
		return x != 0, true
	case float64:
		return x != 0, true
	case string:
		switch Key(x) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Time resolves keys to a timestamp. Strings are parsed with dateLayouts,
// numbers are Unix milliseconds. The zero time means missing or malformed.
func (r Record) Time(keys []string) time.Time {
	v, ok := r.Lookup(keys)
	if !ok {
		return time.Time{}
	}
	return ParseTime(v)
}

// ParseTime converts a raw date value; see Record.Time.
func ParseTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	case int:
		return time.UnixMilli(int64(x)).UTC()
	case int64:
		return time.UnixMilli(x).UTC()
	case float64:
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			return time.UnixMilli(int64(x)).UTC()
		}
	}
	return time.Time{}
}

// Int resolves keys to an int; missing or unparsable values are 0.
func (r Record) Int(keys []string) int {
	v, ok := r.Lookup(keys)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err == nil {
			return n
		}
	}
	return 0
}

// Records resolves keys to a list of nested records. Non-record elements are
// dropped.
func (r Record) Records(keys []string) []Record {
	v, ok := r.Lookup(keys)
	if !ok {
		return nil
	}
	var out []Record
	switch x := v.(type) {
	case []any:
		for _, el := range x {
			switch m := el.(type) {
			case map[string]any:
				out = append(out, Record(m))
			case Record:
				out = append(out, m)
			}
		}
	case []map[string]any:
		for _, m := range x {
			out = append(out, Record(m))
		}
	case []Record:
		out = append(out, x...)
	}
	return out
}
