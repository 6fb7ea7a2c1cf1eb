package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayhub/dayhub-server/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityDay, g)

	g, err = ParseGranularity("WEEK")
	require.NoError(t, err)
	assert.Equal(t, GranularityWeek, g)

	_, err = ParseGranularity("hourly")
	assert.Error(t, err)
}

func TestBucketKey(t *testing.T) {
	assert.Equal(t, "2024-01-05", BucketKey(day(2024, time.January, 5), GranularityDay))
	assert.Equal(t, "2024-01", BucketKey(day(2024, time.January, 5), GranularityMonth))

	// Weeks anchor on their Monday. 2024-06-14 is a Friday, 2024-06-16 a
	// Sunday; both belong to the week starting Monday 2024-06-10.
	assert.Equal(t, "2024-06-10", BucketKey(day(2024, time.June, 14), GranularityWeek))
	assert.Equal(t, "2024-06-10", BucketKey(day(2024, time.June, 16), GranularityWeek))
	assert.Equal(t, "2024-06-10", BucketKey(day(2024, time.June, 10), GranularityWeek))
}

func TestBucketizeMonthCollapsesSameMonth(t *testing.T) {
	got := Bucketize([]time.Time{day(2024, time.January, 5), day(2024, time.January, 20)}, GranularityMonth)
	assert.Equal(t, []model.MetricBucket{{Date: "2024-01", Count: 2}}, got)
}

func TestBucketizeIsSparse(t *testing.T) {
	items := []time.Time{
		day(2024, time.June, 1),
		day(2024, time.June, 1),
		day(2024, time.June, 10),
	}
	got := Bucketize(items, GranularityDay)

	require.Len(t, got, 2)
	assert.Equal(t, model.MetricBucket{Date: "2024-06-01", Count: 2}, got[0])
	assert.Equal(t, model.MetricBucket{Date: "2024-06-10", Count: 1}, got[1])

	sum := 0
	for _, b := range got {
		assert.Greater(t, b.Count, 0)
		sum += b.Count
	}
	assert.Equal(t, len(items), sum)
}

func TestBucketizeEmpty(t *testing.T) {
	assert.Empty(t, Bucketize(nil, GranularityDay))
}

func TestMergeBucketsSumsByKey(t *testing.T) {
	a := []model.MetricBucket{{Date: "2024-06-01", Count: 2}, {Date: "2024-06-03", Count: 1}}
	b := []model.MetricBucket{{Date: "2024-06-03", Count: 4}, {Date: "2024-06-05", Count: 1}}

	got := MergeBuckets(a, b)
	assert.Equal(t, []model.MetricBucket{
		{Date: "2024-06-01", Count: 2},
		{Date: "2024-06-03", Count: 5},
		{Date: "2024-06-05", Count: 1},
	}, got)
}
