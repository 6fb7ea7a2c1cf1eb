package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store/storetest"
)

const testUser = "user-1"

var aggNow = time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

func newTestAggregator(mem *storetest.Memory) *Aggregator {
	a := NewAggregator(mem, zerolog.Nop())
	a.now = func() time.Time { return aggNow }
	return a
}

func tp(t time.Time) *time.Time { return &t }

func seedMemory() *storetest.Memory {
	mem := storetest.NewMemory()

	// Two completed tasks in range, one open and overdue, one completed
	// outside the default 30-day window.
	mem.TaskItems = append(mem.TaskItems,
		&model.Task{
			TaskID: "t1", UserID: testUser, Title: "Write report", Status: "DONE",
			CreatedAt:   aggNow.AddDate(0, 0, -5),
			CompletedAt: tp(aggNow.AddDate(0, 0, -2)),
		},
		&model.Task{
			TaskID: "t2", UserID: testUser, Title: "File expenses", Status: "DONE",
			CreatedAt:   aggNow.AddDate(0, 0, -10),
			CompletedAt: tp(aggNow.AddDate(0, 0, -2)),
		},
		&model.Task{
			TaskID: "t3", UserID: testUser, Title: "Renew passport", Status: "TODO",
			CreatedAt: aggNow.AddDate(0, 0, -20),
			DueDate:   tp(aggNow.AddDate(0, 0, -1)),
		},
		&model.Task{
			TaskID: "t4", UserID: testUser, Title: "Archive inbox", Status: "DONE",
			CreatedAt:   aggNow.AddDate(0, 0, -90),
			CompletedAt: tp(aggNow.AddDate(0, 0, -60)),
		},
	)

	mem.JournalEntries = append(mem.JournalEntries,
		&model.JournalEntry{
			EntryID: "j1", UserID: testUser, Title: "Morning pages", Mood: "happy",
			Tags: []string{"gratitude", "morning"}, CreatedAt: aggNow.AddDate(0, 0, -1),
		},
		&model.JournalEntry{
			EntryID: "j2", UserID: testUser, Title: "Odd day", Mood: "mysterious",
			Tags: []string{"morning"}, CreatedAt: aggNow.AddDate(0, 0, -3),
		},
	)

	mem.Events = append(mem.Events,
		&model.CalendarEvent{
			EventID: "e1", UserID: testUser, Title: "Standup",
			StartTime: aggNow.AddDate(0, 0, -2),
			EndTime:   aggNow.AddDate(0, 0, -2).Add(30 * time.Minute),
		},
		&model.CalendarEvent{
			EventID: "e2", UserID: testUser, Title: "Planning",
			StartTime: aggNow.AddDate(0, 0, -2).Add(2 * time.Hour),
			EndTime:   aggNow.AddDate(0, 0, -2).Add(3 * time.Hour),
		},
	)

	mem.EmailItems = append(mem.EmailItems,
		&model.Email{
			EmailID: "m1", UserID: testUser, Subject: "Invoice", Folder: "inbox",
			ReceivedAt: tp(aggNow.AddDate(0, 0, -1)),
		},
		&model.Email{
			EmailID: "m2", UserID: testUser, Subject: "Newsletter", Folder: "inbox", Read: true,
			ReceivedAt: tp(aggNow.AddDate(0, 0, -4)),
		},
		&model.Email{
			EmailID: "m3", UserID: testUser, Subject: "Re: Invoice", Folder: "sent",
			SentAt: tp(aggNow.AddDate(0, 0, -1)),
		},
	)

	co := "Wanderlust Co"
	mem.ContactItems = append(mem.ContactItems,
		&model.Contact{ContactID: "c1", UserID: testUser, Name: "Ana Alves", Company: &co,
			Tags: []string{"work"}, CreatedAt: aggNow.AddDate(0, 0, -3)},
		&model.Contact{ContactID: "c2", UserID: testUser, Name: "Ben Silva", Company: &co,
			CreatedAt: aggNow.AddDate(0, 0, -6)},
	)
	return mem
}

func TestMetricsOverviewAndCategories(t *testing.T) {
	agg := newTestAggregator(seedMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{})
	require.NoError(t, err)

	require.NotNil(t, resp.Tasks)
	require.NotNil(t, resp.Journal)
	require.NotNil(t, resp.Calendar)
	require.NotNil(t, resp.Emails)
	require.NotNil(t, resp.Contacts)

	assert.Equal(t, map[string]int{
		"tasksCompleted":  2,
		"journalEntries":  2,
		"calendarEvents":  2,
		"emailsProcessed": 3,
		"contactsAdded":   2,
	}, resp.Overview)
	assert.NotEmpty(t, resp.Insights)
}

func TestMetricsTaskCategory(t *testing.T) {
	agg := newTestAggregator(seedMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{Types: []string{MetricTasksCompleted}})
	require.NoError(t, err)

	tm := resp.Tasks
	require.NotNil(t, tm)
	assert.Equal(t, 2, tm.Total)
	assert.Equal(t, 3, tm.TotalCreated) // t4 falls outside the window
	assert.Equal(t, 1, tm.Overdue)
	assert.InDelta(t, 66.67, tm.CompletionRate, 0.001)
	require.Len(t, tm.TimeSeries, 1) // both completions on the same day
	assert.Equal(t, 2, tm.TimeSeries[0].Count)

	assert.Nil(t, resp.Journal)
	assert.Nil(t, resp.Emails)
}

func TestMetricsJournalMoodAverage(t *testing.T) {
	agg := newTestAggregator(seedMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{Types: []string{MetricJournalEntries}})
	require.NoError(t, err)

	jm := resp.Journal
	require.NotNil(t, jm)
	assert.Equal(t, 2, jm.Total)
	// happy (5) and an unknown label scored neutral (3).
	assert.Equal(t, 4.0, jm.AverageMood)
	require.Len(t, jm.TopTags, 2)
	assert.Equal(t, model.TagCount{Tag: "morning", Count: 2}, jm.TopTags[0])
	assert.Equal(t, model.TagCount{Tag: "gratitude", Count: 1}, jm.TopTags[1])
}

func TestMetricsCalendarDurations(t *testing.T) {
	agg := newTestAggregator(seedMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{Types: []string{MetricCalendarEvents}})
	require.NoError(t, err)

	cm := resp.Calendar
	require.NotNil(t, cm)
	assert.Equal(t, 2, cm.Total)
	assert.Equal(t, 90.0, cm.TotalMinutes)
	assert.Equal(t, 45.0, cm.AverageDuration)
}

func TestMetricsEmailSeriesMergesReceivedAndSent(t *testing.T) {
	agg := newTestAggregator(seedMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{Types: []string{MetricEmailsProcessed}})
	require.NoError(t, err)

	em := resp.Emails
	require.NotNil(t, em)
	assert.Equal(t, 2, em.Received)
	assert.Equal(t, 1, em.Sent)
	assert.Equal(t, 3, em.TotalProcessed)
	assert.Equal(t, 1, em.UnreadCount)
	assert.Equal(t, 50.0, em.ResponseRate)

	// m1 and m3 share a day, m2 sits alone.
	sum := 0
	for _, b := range em.TimeSeries {
		sum += b.Count
	}
	assert.Equal(t, 3, sum)
	require.Len(t, em.TimeSeries, 2)
}

func TestMetricsContactCompaniesDeduplicated(t *testing.T) {
	agg := newTestAggregator(seedMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{Types: []string{MetricContactsAdded}})
	require.NoError(t, err)

	cm := resp.Contacts
	require.NotNil(t, cm)
	assert.Equal(t, 2, cm.Total)
	assert.Equal(t, 1, cm.Companies)
	assert.Equal(t, []model.TagCount{{Tag: "work", Count: 1}}, cm.TopTags)
}

func TestMetricsZeroDenominatorsAreZero(t *testing.T) {
	agg := newTestAggregator(storetest.NewMemory())

	resp, err := agg.Metrics(context.Background(), testUser, Request{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Tasks.CompletionRate)
	assert.Equal(t, 0.0, resp.Journal.AverageMood)
	assert.Equal(t, 0.0, resp.Emails.ResponseRate)
	assert.Equal(t, 0.0, resp.Calendar.AverageDuration)
}

func TestMetricsDefaultRangeIsThirtyDays(t *testing.T) {
	mem := storetest.NewMemory()
	mem.JournalEntries = append(mem.JournalEntries,
		&model.JournalEntry{EntryID: "in", UserID: testUser, Mood: "calm", CreatedAt: aggNow.AddDate(0, 0, -29)},
		&model.JournalEntry{EntryID: "out", UserID: testUser, Mood: "calm", CreatedAt: aggNow.AddDate(0, 0, -40)},
	)
	agg := newTestAggregator(mem)

	resp, err := agg.Metrics(context.Background(), testUser, Request{Types: []string{MetricJournalEntries}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Journal.Total)
}

func TestMetricsExplicitRange(t *testing.T) {
	mem := seedMemory()
	agg := newTestAggregator(mem)

	from := aggNow.AddDate(0, 0, -100)
	to := aggNow
	resp, err := agg.Metrics(context.Background(), testUser, Request{
		Types: []string{MetricTasksCompleted},
		From:  &from,
		To:    &to,
	})
	require.NoError(t, err)
	// The wide range now includes t4's completion.
	assert.Equal(t, 3, resp.Tasks.Total)
	assert.Equal(t, 4, resp.Tasks.TotalCreated)
}

func TestMetricsFailedCategoryOmitted(t *testing.T) {
	mem := seedMemory()
	mem.ListErr[model.KindTasks] = errors.New("tasks store down")
	agg := newTestAggregator(mem)

	resp, err := agg.Metrics(context.Background(), testUser, Request{})
	require.NoError(t, err)

	assert.Nil(t, resp.Tasks)
	assert.NotContains(t, resp.Overview, "tasksCompleted")
	assert.NotNil(t, resp.Journal)
	assert.Contains(t, resp.Overview, "journalEntries")
}
