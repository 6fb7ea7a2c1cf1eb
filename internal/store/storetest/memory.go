// Package storetest provides an in-memory store.Store for tests and a
// compliance suite exercised against real store implementations.
package storetest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store"
)

// Memory is an in-memory Store with the same filtering semantics as the
// SQL implementations. Populate the exported slices directly; inject
// per-kind failures through SearchErr/ListErr to test degraded paths.
type Memory struct {
	JournalEntries []*model.JournalEntry
	TaskItems      []*model.Task
	Events         []*model.CalendarEvent
	EmailItems     []*model.Email
	ContactItems   []*model.Contact

	SearchErr map[model.Kind]error
	ListErr   map[model.Kind]error
	PingErr   error
}

func NewMemory() *Memory {
	return &Memory{
		SearchErr: map[model.Kind]error{},
		ListErr:   map[model.Kind]error{},
	}
}

func (m *Memory) Journal() store.Journal   { return memJournal{m} }
func (m *Memory) Tasks() store.Tasks       { return memTasks{m} }
func (m *Memory) Calendar() store.Calendar { return memCalendar{m} }
func (m *Memory) Emails() store.Emails     { return memEmails{m} }
func (m *Memory) Contacts() store.Contacts { return memContacts{m} }

func (m *Memory) Ping(ctx context.Context) error { return m.PingErr }

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsAny(values []string, needle string) bool {
	for _, v := range values {
		if contains(v, needle) {
			return true
		}
	}
	return false
}

func containsPtr(s *string, needle string) bool {
	return s != nil && contains(*s, needle)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func between(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// --- Journal ---

type memJournal struct{ m *Memory }

func (j memJournal) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.JournalEntry, error) {
	if err := j.m.SearchErr[model.KindJournal]; err != nil {
		return nil, err
	}
	var out []*model.JournalEntry
	for _, e := range j.m.JournalEntries {
		if e.UserID != userID || !inRange(e.CreatedAt, q.From, q.To) {
			continue
		}
		if contains(e.Title, q.Text) || contains(e.Content, q.Text) || containsPtr(e.Reflections, q.Text) || containsAny(e.Tags, q.Text) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (j memJournal) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.JournalEntry, error) {
	if err := j.m.ListErr[model.KindJournal]; err != nil {
		return nil, err
	}
	var out []*model.JournalEntry
	for _, e := range j.m.JournalEntries {
		if e.UserID == userID && between(e.CreatedAt, from, to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}

// --- Tasks ---

type memTasks struct{ m *Memory }

func (t memTasks) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.Task, error) {
	if err := t.m.SearchErr[model.KindTasks]; err != nil {
		return nil, err
	}
	var out []*model.Task
	for _, task := range t.m.TaskItems {
		if task.UserID != userID || !inRange(task.CreatedAt, q.From, q.To) {
			continue
		}
		if contains(task.Title, q.Text) || containsPtr(task.Description, q.Text) || containsAny(task.Tags, q.Text) {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (t memTasks) ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Task, error) {
	if err := t.m.ListErr[model.KindTasks]; err != nil {
		return nil, err
	}
	var out []*model.Task
	for _, task := range t.m.TaskItems {
		if task.UserID == userID && task.CompletedAt != nil && between(*task.CompletedAt, from, to) {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CompletedAt.Before(*out[k].CompletedAt) })
	return out, nil
}

func (t memTasks) CountCreatedInRange(ctx context.Context, userID string, from, to time.Time) (int, error) {
	if err := t.m.ListErr[model.KindTasks]; err != nil {
		return 0, err
	}
	n := 0
	for _, task := range t.m.TaskItems {
		if task.UserID == userID && between(task.CreatedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (t memTasks) CountOverdue(ctx context.Context, userID string, asOf time.Time) (int, error) {
	if err := t.m.ListErr[model.KindTasks]; err != nil {
		return 0, err
	}
	n := 0
	for _, task := range t.m.TaskItems {
		if task.UserID == userID && task.CompletedAt == nil && task.DueDate != nil && task.DueDate.Before(asOf) {
			n++
		}
	}
	return n, nil
}

// --- Calendar ---

type memCalendar struct{ m *Memory }

func (c memCalendar) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.CalendarEvent, error) {
	if err := c.m.SearchErr[model.KindCalendar]; err != nil {
		return nil, err
	}
	var out []*model.CalendarEvent
	for _, ev := range c.m.Events {
		if ev.UserID != userID {
			continue
		}
		// Window overlap on [startTime, endTime].
		if q.From != nil && ev.EndTime.Before(*q.From) {
			continue
		}
		if q.To != nil && ev.StartTime.After(*q.To) {
			continue
		}
		if contains(ev.Title, q.Text) || containsPtr(ev.Description, q.Text) || containsPtr(ev.Location, q.Text) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].StartTime.After(out[k].StartTime) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (c memCalendar) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.CalendarEvent, error) {
	if err := c.m.ListErr[model.KindCalendar]; err != nil {
		return nil, err
	}
	var out []*model.CalendarEvent
	for _, ev := range c.m.Events {
		if ev.UserID == userID && between(ev.StartTime, from, to) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].StartTime.Before(out[k].StartTime) })
	return out, nil
}

// --- Emails ---

type memEmails struct{ m *Memory }

func (e memEmails) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.Email, error) {
	if err := e.m.SearchErr[model.KindEmails]; err != nil {
		return nil, err
	}
	var out []*model.Email
	for _, m := range e.m.EmailItems {
		if m.UserID != userID {
			continue
		}
		if q.From != nil || q.To != nil {
			if m.ReceivedAt == nil || !inRange(*m.ReceivedAt, q.From, q.To) {
				continue
			}
		}
		if contains(m.Subject, q.Text) || contains(m.Content, q.Text) || contains(m.From, q.Text) || containsAny(m.To, q.Text) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return emailTime(out[i]).After(emailTime(out[k])) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func emailTime(m *model.Email) time.Time {
	if m.ReceivedAt != nil {
		return *m.ReceivedAt
	}
	if m.SentAt != nil {
		return *m.SentAt
	}
	return time.Time{}
}

func (e memEmails) ListReceivedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Email, error) {
	if err := e.m.ListErr[model.KindEmails]; err != nil {
		return nil, err
	}
	var out []*model.Email
	for _, m := range e.m.EmailItems {
		if m.UserID == userID && m.ReceivedAt != nil && between(*m.ReceivedAt, from, to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].ReceivedAt.Before(*out[k].ReceivedAt) })
	return out, nil
}

func (e memEmails) ListSentInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Email, error) {
	if err := e.m.ListErr[model.KindEmails]; err != nil {
		return nil, err
	}
	var out []*model.Email
	for _, m := range e.m.EmailItems {
		if m.UserID == userID && m.SentAt != nil && between(*m.SentAt, from, to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].SentAt.Before(*out[k].SentAt) })
	return out, nil
}

func (e memEmails) CountUnread(ctx context.Context, userID string) (int, error) {
	if err := e.m.ListErr[model.KindEmails]; err != nil {
		return 0, err
	}
	n := 0
	for _, m := range e.m.EmailItems {
		if m.UserID == userID && !m.Read && m.ReceivedAt != nil {
			n++
		}
	}
	return n, nil
}

// --- Contacts ---

type memContacts struct{ m *Memory }

func (c memContacts) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.Contact, error) {
	if err := c.m.SearchErr[model.KindContacts]; err != nil {
		return nil, err
	}
	var out []*model.Contact
	for _, ct := range c.m.ContactItems {
		if ct.UserID != userID || !inRange(ct.CreatedAt, q.From, q.To) {
			continue
		}
		if contains(ct.Name, q.Text) || containsPtr(ct.Email, q.Text) || containsPtr(ct.Company, q.Text) || containsPtr(ct.Notes, q.Text) || containsAny(ct.Tags, q.Text) {
			out = append(out, ct)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (c memContacts) ListCreatedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Contact, error) {
	if err := c.m.ListErr[model.KindContacts]; err != nil {
		return nil, err
	}
	var out []*model.Contact
	for _, ct := range c.m.ContactItems {
		if ct.UserID == userID && between(ct.CreatedAt, from, to) {
			out = append(out, ct)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}
