package search

import (
	"time"

	"github.com/dayhub/dayhub-server/internal/model"
)

// Doc builders project each record kind onto its ordered searchable field
// list and kind-specific excerpt source.

func journalDoc(e *model.JournalEntry) Doc {
	created := e.CreatedAt
	content := e.Content
	if e.Reflections != nil && *e.Reflections != "" {
		content = *e.Reflections
	}
	return Doc{
		ID:   e.EntryID,
		Kind: model.KindJournal,
		Fields: []Field{
			{Name: "title", Text: e.Title},
			{Name: "content", Text: e.Content},
			{Name: "reflections", Text: deref(e.Reflections)},
			{Name: "tags", List: e.Tags},
		},
		CreatedAt: &created,
		Content:   content,
		Record:    e,
	}
}

func taskDoc(t *model.Task) Doc {
	created := t.CreatedAt
	return Doc{
		ID:   t.TaskID,
		Kind: model.KindTasks,
		Fields: []Field{
			{Name: "title", Text: t.Title},
			{Name: "description", Text: deref(t.Description)},
			{Name: "tags", List: t.Tags},
		},
		CreatedAt: &created,
		Important: t.Important,
		Priority:  t.Priority,
		Content:   deref(t.Description),
		Record:    t,
	}
}

func calendarDoc(ev *model.CalendarEvent) Doc {
	start := ev.StartTime
	return Doc{
		ID:   ev.EventID,
		Kind: model.KindCalendar,
		Fields: []Field{
			{Name: "title", Text: ev.Title},
			{Name: "description", Text: deref(ev.Description)},
			{Name: "location", Text: deref(ev.Location)},
		},
		StartTime: &start,
		Important: ev.Important,
		Content:   deref(ev.Description),
		Record:    ev,
	}
}

func emailDoc(m *model.Email) Doc {
	var received *time.Time
	if m.ReceivedAt != nil {
		r := *m.ReceivedAt
		received = &r
	}
	return Doc{
		ID:   m.EmailID,
		Kind: model.KindEmails,
		Fields: []Field{
			{Name: "subject", Text: m.Subject},
			{Name: "content", Text: m.Content},
			{Name: "from", Text: m.From},
			{Name: "to", List: m.To},
		},
		ReceivedAt: received,
		Important:  m.Important,
		Content:    m.Content,
		Record:     m,
	}
}

func contactDoc(c *model.Contact) Doc {
	created := c.CreatedAt
	return Doc{
		ID:   c.ContactID,
		Kind: model.KindContacts,
		Fields: []Field{
			{Name: "name", Text: c.Name},
			{Name: "email", Text: deref(c.Email)},
			{Name: "company", Text: deref(c.Company)},
			{Name: "notes", Text: deref(c.Notes)},
			{Name: "tags", List: c.Tags},
		},
		CreatedAt: &created,
		Content:   deref(c.Notes),
		Record:    c,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
