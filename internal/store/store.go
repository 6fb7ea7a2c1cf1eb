package store

import (
	"context"
	"time"

	"github.com/dayhub/dayhub-server/internal/model"
)

// SearchQuery captures the per-kind search filter applied by the store
// before scoring: case-insensitive substring match over the kind's
// searchable fields, an optional date-range filter on the kind's primary
// timestamp, and a hard fetch cap.
type SearchQuery struct {
	Text  string
	From  *time.Time
	To    *time.Time
	Limit int
}

// Store exposes the read operations the search and analytics aggregators
// consume. Implementations live under internal/store/<driver>/.
type Store interface {
	Journal() Journal
	Tasks() Tasks
	Calendar() Calendar
	Emails() Emails
	Contacts() Contacts

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
}

type Journal interface {
	Search(ctx context.Context, userID string, q SearchQuery) ([]*model.JournalEntry, error)
	// ListInRange returns entries with createdAt in [from, to].
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.JournalEntry, error)
}

type Tasks interface {
	Search(ctx context.Context, userID string, q SearchQuery) ([]*model.Task, error)
	// ListCompletedInRange returns tasks with completedAt in [from, to].
	ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Task, error)
	// CountCreatedInRange counts tasks with createdAt in [from, to].
	CountCreatedInRange(ctx context.Context, userID string, from, to time.Time) (int, error)
	// CountOverdue counts incomplete tasks whose dueDate is before asOf.
	CountOverdue(ctx context.Context, userID string, asOf time.Time) (int, error)
}

type Calendar interface {
	Search(ctx context.Context, userID string, q SearchQuery) ([]*model.CalendarEvent, error)
	// ListInRange returns events with startTime in [from, to].
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.CalendarEvent, error)
}

type Emails interface {
	Search(ctx context.Context, userID string, q SearchQuery) ([]*model.Email, error)
	// ListReceivedInRange returns emails with receivedAt in [from, to].
	ListReceivedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Email, error)
	// ListSentInRange returns emails with sentAt in [from, to].
	ListSentInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Email, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

type Contacts interface {
	Search(ctx context.Context, userID string, q SearchQuery) ([]*model.Contact, error)
	// ListCreatedInRange returns contacts with createdAt in [from, to].
	ListCreatedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Contact, error)
}
