// Package validate checks query parameters before any store access.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dayhub/dayhub-server/internal/analytics"
	"github.com/dayhub/dayhub-server/internal/model"
)

// Query validates the free-text search query.
func Query(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("query is required")
	}
	return nil
}

// Kinds parses the required comma-separated types parameter into record
// kinds. Unknown tags are rejected, duplicates collapsed.
func Kinds(csv string) ([]model.Kind, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, fmt.Errorf("types is required")
	}
	valid := map[model.Kind]bool{}
	for _, k := range model.AllKinds() {
		valid[k] = true
	}
	seen := map[model.Kind]bool{}
	var out []model.Kind
	for _, part := range strings.Split(csv, ",") {
		kind := model.Kind(strings.TrimSpace(part))
		if kind == "" {
			continue
		}
		if !valid[kind] {
			return nil, fmt.Errorf("unknown type %q", kind)
		}
		if !seen[kind] {
			seen[kind] = true
			out = append(out, kind)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("types is required")
	}
	return out, nil
}

// MetricTypes parses the optional comma-separated metricTypes parameter.
// Empty input selects all categories.
func MetricTypes(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return analytics.AllMetricTypes(), nil
	}
	valid := map[string]bool{}
	for _, mt := range analytics.AllMetricTypes() {
		valid[mt] = true
	}
	seen := map[string]bool{}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		mt := strings.TrimSpace(part)
		if mt == "" {
			continue
		}
		if !valid[mt] {
			return nil, fmt.Errorf("unknown metric type %q", mt)
		}
		if !seen[mt] {
			seen[mt] = true
			out = append(out, mt)
		}
	}
	if len(out) == 0 {
		return analytics.AllMetricTypes(), nil
	}
	return out, nil
}

// Date parses an optional date parameter as RFC3339 or yyyy-MM-dd.
// Empty input returns nil.
func Date(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%s must be RFC3339 or yyyy-MM-dd", field)
}

// Limit parses an optional positive result limit; 0 means unset.
func Limit(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	return n, nil
}
