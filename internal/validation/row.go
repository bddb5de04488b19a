package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	problemMissing = "is missing"
	problemNull    = "is NULL"
)

// text reads a field as a string. Drivers return text as string or []byte.
func text(row Row, field string) (string, string) {
	v, ok := row[field]
	if !ok {
		return "", problemMissing
	}
	switch val := v.(type) {
	case nil:
		return "", problemNull
	case string:
		return val, ""
	case []byte:
		return string(val), ""
	default:
		return "", fmt.Sprintf("has non-text type %T", v)
	}
}

// display renders any scalar a driver may return for a detail value.
func display(row Row, field string) (string, string) {
	v, ok := row[field]
	if !ok {
		return "", problemMissing
	}
	switch val := v.(type) {
	case nil:
		return "", problemNull
	case string:
		return val, ""
	case []byte:
		return string(val), ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), ""
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), ""
	case time.Time:
		return val.Format(time.RFC3339), ""
	default:
		return fmt.Sprint(val), ""
	}
}

// integer reads a count. Drivers disagree on numeric types, and some
// return NUMBER/DECIMAL as text.
func integer(row Row, field string) (int64, string) {
	v, ok := row[field]
	if !ok {
		return 0, problemMissing
	}
	switch val := v.(type) {
	case nil:
		return 0, problemNull
	case int64:
		return val, ""
	case int32:
		return int64(val), ""
	case int:
		return int64(val), ""
	case uint64:
		return int64(val), ""
	case float64:
		return int64(math.Round(val)), ""
	case []byte:
		return parseInteger(string(val))
	case string:
		return parseInteger(val)
	default:
		return 0, fmt.Sprintf("has non-numeric type %T", v)
	}
}

func parseInteger(s string) (int64, string) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("is not a number: %q", s)
	}
	return int64(math.Round(f)), ""
}

// Text returns a text field of the row.
func (r Row) Text(field string) (string, error) {
	s, problem := text(r, field)
	if problem != "" {
		return "", &MalformedRowError{Field: field, Problem: problem}
	}
	return s, nil
}
