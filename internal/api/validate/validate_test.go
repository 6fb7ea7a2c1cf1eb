package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayhub/dayhub-server/internal/model"
)

func TestQuery(t *testing.T) {
	assert.Error(t, Query(""))
	assert.Error(t, Query("   "))
	assert.NoError(t, Query("urgent"))
}

func TestKinds(t *testing.T) {
	kinds, err := Kinds("tasks, journal ,tasks")
	require.NoError(t, err)
	assert.Equal(t, []model.Kind{model.KindTasks, model.KindJournal}, kinds)

	_, err = Kinds("")
	assert.Error(t, err)

	_, err = Kinds("tasks,bogus")
	assert.Error(t, err)
}

func TestMetricTypesDefaultsToAll(t *testing.T) {
	types, err := MetricTypes("")
	require.NoError(t, err)
	assert.Len(t, types, 5)

	types, err = MetricTypes("tasks_completed,journal_entries")
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks_completed", "journal_entries"}, types)

	_, err = MetricTypes("nope")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	got, err := Date("dateFrom", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Date("dateFrom", "2024-01-05")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *got)

	got, err = Date("dateFrom", "2024-01-05T10:30:00Z")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Hour())

	_, err = Date("dateFrom", "not-a-date")
	assert.Error(t, err)
}

func TestLimit(t *testing.T) {
	n, err := Limit("")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = Limit("25")
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	_, err = Limit("0")
	assert.Error(t, err)
	_, err = Limit("-3")
	assert.Error(t, err)
	_, err = Limit("abc")
	assert.Error(t, err)
}
