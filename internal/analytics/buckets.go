// Package analytics implements the metrics aggregation core: sparse time
// bucketing, per-category summaries and qualitative insight generation.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/dayhub/dayhub-server/internal/model"
)

// Granularity is the time-bucket width of a series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity converts a string to a Granularity. Empty defaults to day.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(s) {
	case "", "day":
		return GranularityDay, nil
	case "week":
		return GranularityWeek, nil
	case "month":
		return GranularityMonth, nil
	default:
		return "", fmt.Errorf("invalid granularity %q (valid: day, week, month)", s)
	}
}

// BucketKey derives the series key for a timestamp: day and week use
// yyyy-MM-dd (weeks anchored on their Monday), month uses yyyy-MM.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		return startOfWeek(t).Format("2006-01-02")
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Bucketize groups timestamps into {date, count} points keyed by
// granularity. Only keys with at least one item are emitted (sparse
// series); output order follows first insertion. The sum of all counts
// always equals len(items).
func Bucketize(items []time.Time, g Granularity) []model.MetricBucket {
	counts := make(map[string]int, len(items))
	var order []string
	for _, t := range items {
		key := BucketKey(t, g)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	out := make([]model.MetricBucket, 0, len(order))
	for _, key := range order {
		out = append(out, model.MetricBucket{Date: key, Count: counts[key]})
	}
	return out
}

// MergeBuckets combines two sparse series by date key, summing counts.
// Keys keep a's insertion order, then b's new keys.
func MergeBuckets(a, b []model.MetricBucket) []model.MetricBucket {
	counts := make(map[string]int, len(a)+len(b))
	var order []string
	for _, set := range [][]model.MetricBucket{a, b} {
		for _, bkt := range set {
			if _, seen := counts[bkt.Date]; !seen {
				order = append(order, bkt.Date)
			}
			counts[bkt.Date] += bkt.Count
		}
	}
	out := make([]model.MetricBucket, 0, len(order))
	for _, key := range order {
		out = append(out, model.MetricBucket{Date: key, Count: counts[key]})
	}
	return out
}

// startOfWeek returns midnight of the Monday beginning t's week.
func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
