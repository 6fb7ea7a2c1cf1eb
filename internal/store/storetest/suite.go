package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store"
)

// Seed is a deterministic record fixture loaded into a store under test.
type Seed struct {
	UserID   string
	Now      time.Time
	Journal  []*model.JournalEntry
	Tasks    []*model.Task
	Calendar []*model.CalendarEvent
	Emails   []*model.Email
	Contacts []*model.Contact
}

// Fixture builds the seed used by the compliance suite. All timestamps are
// relative to now so recency-sensitive assertions stay stable.
func Fixture(userID string, now time.Time) Seed {
	reflections := "packing list ideas"
	fares := "compare fares before booking"
	visa := "bring visa details"
	agency := "Wanderlust Co"
	notes := "met at the travel expo"

	due := now.AddDate(0, 0, -1)
	completedRecent := now.AddDate(0, 0, -2)
	completedOld := now.AddDate(0, 0, -15)
	received := now.Add(-24 * time.Hour)
	sent := now.Add(-12 * time.Hour)

	return Seed{
		UserID: userID,
		Now:    now,
		Journal: []*model.JournalEntry{
			{EntryID: uuid.New().String(), UserID: userID, Title: "Morning pages", Content: "wrote about the quick brown fox", Mood: "happy", Tags: []string{"writing", "habit"}, CreatedAt: now.AddDate(0, 0, -2)},
			{EntryID: uuid.New().String(), UserID: userID, Title: "Trip planning", Content: "itinerary drafts", Reflections: &reflections, Mood: "excited", Tags: []string{"travel"}, CreatedAt: now.AddDate(0, 0, -10)},
		},
		Tasks: []*model.Task{
			{TaskID: uuid.New().String(), UserID: userID, Title: "Book flights", Description: &fares, Tags: []string{"travel"}, Priority: model.PriorityHigh, Status: "OPEN", DueDate: &due, CreatedAt: now.AddDate(0, 0, -3)},
			{TaskID: uuid.New().String(), UserID: userID, Title: "Write report", Priority: model.PriorityMedium, Status: "DONE", CreatedAt: now.AddDate(0, 0, -5), CompletedAt: &completedRecent},
			{TaskID: uuid.New().String(), UserID: userID, Title: "travel insurance", Tags: []string{"travel"}, Priority: model.PriorityLow, Status: "DONE", CreatedAt: now.AddDate(0, 0, -20), CompletedAt: &completedOld},
		},
		Calendar: []*model.CalendarEvent{
			{EventID: uuid.New().String(), UserID: userID, Title: "Team standup", StartTime: now.Add(-25 * time.Hour), EndTime: now.Add(-25*time.Hour + 30*time.Minute)},
			{EventID: uuid.New().String(), UserID: userID, Title: "Travel briefing", Description: &visa, StartTime: now.AddDate(0, 0, 2), EndTime: now.AddDate(0, 0, 2).Add(time.Hour)},
		},
		Emails: []*model.Email{
			{EmailID: uuid.New().String(), UserID: userID, Subject: "Flight confirmation", Content: "your travel booking is confirmed", From: "airline@example.com", To: []string{userID + "@example.com"}, Folder: "inbox", ReceivedAt: &received},
			{EmailID: uuid.New().String(), UserID: userID, Subject: "Re: itinerary", Content: "sounds good, see attached", From: userID + "@example.com", To: []string{"ana@wanderlust.example"}, Folder: "sent", Read: true, SentAt: &sent},
		},
		Contacts: []*model.Contact{
			{ContactID: uuid.New().String(), UserID: userID, Name: "Ana Alves", Company: &agency, Notes: &notes, Tags: []string{"travel"}, CreatedAt: now.AddDate(0, 0, -4)},
			{ContactID: uuid.New().String(), UserID: userID, Name: "Old Acquaintance", CreatedAt: now.AddDate(0, 0, -40)},
		},
	}
}

// Run exercises the read contract against a seeded store implementation.
// makeStore must return a store already loaded with the given seed.
func Run(t *testing.T, makeStore func(t *testing.T, seed Seed) store.Store) {
	t.Helper()

	now := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	seed := Fixture("u-"+uuid.New().String(), now)
	s := makeStore(t, seed)
	ctx := context.Background()
	userID := seed.UserID

	t.Run("JournalSearch", func(t *testing.T) {
		got, err := s.Journal().Search(ctx, userID, store.SearchQuery{Text: "fox", Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Morning pages", got[0].Title)
	})

	t.Run("JournalSearchMatchesReflections", func(t *testing.T) {
		got, err := s.Journal().Search(ctx, userID, store.SearchQuery{Text: "packing", Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Trip planning", got[0].Title)
	})

	t.Run("TaskSearchLimitKeepsNewest", func(t *testing.T) {
		got, err := s.Tasks().Search(ctx, userID, store.SearchQuery{Text: "travel", Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Book flights", got[0].Title)
	})

	t.Run("TaskCounts", func(t *testing.T) {
		created, err := s.Tasks().CountCreatedInRange(ctx, userID, now.AddDate(0, 0, -7), now)
		require.NoError(t, err)
		assert.Equal(t, 2, created)

		overdue, err := s.Tasks().CountOverdue(ctx, userID, now)
		require.NoError(t, err)
		assert.Equal(t, 1, overdue)

		completed, err := s.Tasks().ListCompletedInRange(ctx, userID, now.AddDate(0, 0, -7), now)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, "Write report", completed[0].Title)
	})

	t.Run("CalendarSearchWindowOverlap", func(t *testing.T) {
		got, err := s.Calendar().Search(ctx, userID, store.SearchQuery{Text: "visa", Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Travel briefing", got[0].Title)

		// A window ending now excludes the future briefing.
		to := now
		got, err = s.Calendar().Search(ctx, userID, store.SearchQuery{Text: "visa", To: &to, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("EmailSearchAndRanges", func(t *testing.T) {
		got, err := s.Emails().Search(ctx, userID, store.SearchQuery{Text: "travel", Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Flight confirmation", got[0].Subject)

		received, err := s.Emails().ListReceivedInRange(ctx, userID, now.AddDate(0, 0, -2), now)
		require.NoError(t, err)
		assert.Len(t, received, 1)

		sent, err := s.Emails().ListSentInRange(ctx, userID, now.AddDate(0, 0, -2), now)
		require.NoError(t, err)
		assert.Len(t, sent, 1)

		unread, err := s.Emails().CountUnread(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, unread)
	})

	t.Run("ContactSearchAndRange", func(t *testing.T) {
		got, err := s.Contacts().Search(ctx, userID, store.SearchQuery{Text: "wanderlust", Limit: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Ana Alves", got[0].Name)

		recent, err := s.Contacts().ListCreatedInRange(ctx, userID, now.AddDate(0, 0, -30), now)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "Ana Alves", recent[0].Name)
	})

	t.Run("UserScoping", func(t *testing.T) {
		got, err := s.Journal().Search(ctx, "someone-else", store.SearchQuery{Text: "fox", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}
