package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayhub/dayhub-server/internal/model"
)

func TestInsightsEmptyReport(t *testing.T) {
	got := Insights(&model.MetricsResponse{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInsightsTaskThresholds(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{90, "Excellent"},
		{80, "Good"}, // boundary is strict
		{70, "Good"},
		{60, "attention"},
		{0, "attention"},
	}
	for _, tc := range cases {
		got := Insights(&model.MetricsResponse{Tasks: &model.TaskMetrics{CompletionRate: tc.rate}})
		require.Len(t, got, 1)
		assert.Contains(t, got[0], tc.want, "rate %.0f", tc.rate)
	}
}

func TestInsightsJournalThresholds(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{30, "every day"}, // 1.0 entries/day
		{15, "Steady"},    // 0.5
		{5, "quiet"},      // ~0.17
		{0, "quiet"},
	}
	for _, tc := range cases {
		got := Insights(&model.MetricsResponse{Journal: &model.JournalMetrics{Total: tc.total}})
		require.Len(t, got, 1)
		assert.Contains(t, got[0], tc.want, "total %d", tc.total)
	}
}

func TestInsightsEmailThresholds(t *testing.T) {
	cases := []struct {
		processed int
		unread    int
		want      string
	}{
		{100, 5, "under control"},
		{100, 20, "triage"},
		{100, 50, "cleanup"},
		{0, 0, "under control"}, // zero processed counts as ratio 0
	}
	for _, tc := range cases {
		got := Insights(&model.MetricsResponse{Emails: &model.EmailMetrics{TotalProcessed: tc.processed, UnreadCount: tc.unread}})
		require.Len(t, got, 1)
		assert.Contains(t, got[0], tc.want, "%d/%d", tc.unread, tc.processed)
	}
}

func TestInsightsOrderedTasksJournalEmails(t *testing.T) {
	report := &model.MetricsResponse{
		Tasks:   &model.TaskMetrics{CompletionRate: 90},
		Journal: &model.JournalMetrics{Total: 30},
		Emails:  &model.EmailMetrics{TotalProcessed: 100, UnreadCount: 50},
	}
	got := Insights(report)
	require.Len(t, got, 3)
	assert.True(t, strings.Contains(got[0], "task"))
	assert.True(t, strings.Contains(got[1], "journal") || strings.Contains(got[1], "writing"))
	assert.True(t, strings.Contains(got[2], "email") || strings.Contains(got[2], "inbox"))
}
