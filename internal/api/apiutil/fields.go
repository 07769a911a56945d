package apiutil

import (
	"net/http"
	"strconv"
	"strings"
)

// QueryValues returns the trimmed, non-empty values for key. Comma separated
// values are split.
func QueryValues(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

// ParseBool treats an empty value as false and accepts "on" for form
// checkboxes.
func ParseBool(raw string) (bool, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch raw {
	case "":
		return false, nil
	case "on":
		return true, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, FieldError{Field: "value", Reason: "must be a boolean"}
	}
	return value, nil
}
