// Package sqlite implements the record store over a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode for read-heavy workloads.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap creates the record tables if they do not exist yet.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
    entry_id    TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL,
    reflections TEXT,
    mood        TEXT NOT NULL DEFAULT 'neutral',
    tags        TEXT NOT NULL DEFAULT '[]',
    created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_user_created ON journal_entries(user_id, created_at);

CREATE TABLE IF NOT EXISTS tasks (
    task_id      TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    title        TEXT NOT NULL,
    description  TEXT,
    tags         TEXT NOT NULL DEFAULT '[]',
    priority     TEXT NOT NULL DEFAULT 'MEDIUM',
    status       TEXT NOT NULL DEFAULT 'OPEN',
    important    INTEGER NOT NULL DEFAULT 0,
    due_date     TIMESTAMP,
    created_at   TIMESTAMP NOT NULL,
    completed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_tasks_user_completed ON tasks(user_id, completed_at);

CREATE TABLE IF NOT EXISTS calendar_events (
    event_id    TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    title       TEXT NOT NULL,
    description TEXT,
    location    TEXT,
    important   INTEGER NOT NULL DEFAULT 0,
    start_time  TIMESTAMP NOT NULL,
    end_time    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_user_start ON calendar_events(user_id, start_time);

CREATE TABLE IF NOT EXISTS emails (
    email_id    TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    subject     TEXT NOT NULL,
    content     TEXT NOT NULL,
    from_addr   TEXT NOT NULL,
    to_addrs    TEXT NOT NULL DEFAULT '[]',
    folder      TEXT NOT NULL DEFAULT 'inbox',
    read        INTEGER NOT NULL DEFAULT 0,
    important   INTEGER NOT NULL DEFAULT 0,
    received_at TIMESTAMP,
    sent_at     TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_emails_user_received ON emails(user_id, received_at);

CREATE TABLE IF NOT EXISTS contacts (
    contact_id TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    name       TEXT NOT NULL,
    email      TEXT,
    company    TEXT,
    notes      TEXT,
    tags       TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_user_created ON contacts(user_id, created_at);
`

// NewWithDB constructs a SQLite-backed store over an open database handle.
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Journal() store.Journal   { return &journal{db: s.db} }
func (s *sqlStore) Tasks() store.Tasks       { return &tasks{db: s.db} }
func (s *sqlStore) Calendar() store.Calendar { return &calendar{db: s.db} }
func (s *sqlStore) Emails() store.Emails     { return &emails{db: s.db} }
func (s *sqlStore) Contacts() store.Contacts { return &contacts{db: s.db} }

func (s *sqlStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func likePattern(text string) string {
	return "%" + strings.ToLower(text) + "%"
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// --- Journal ---

type journal struct{ db *sql.DB }

func (j *journal) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.JournalEntry, error) {
	sqlQ := `
        SELECT entry_id, user_id, title, content, reflections, mood, tags, created_at
        FROM journal_entries
        WHERE user_id = ?
          AND (lower(title) LIKE ? OR lower(content) LIKE ? OR lower(coalesce(reflections,'')) LIKE ? OR lower(tags) LIKE ?)`
	p := likePattern(q.Text)
	args := []interface{}{userID, p, p, p, p}
	if q.From != nil {
		sqlQ += " AND created_at >= ?"
		args = append(args, *q.From)
	}
	if q.To != nil {
		sqlQ += " AND created_at <= ?"
		args = append(args, *q.To)
	}
	sqlQ += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := j.db.QueryContext(ctx, sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanJournal(rows)
}

func (j *journal) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.JournalEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
        SELECT entry_id, user_id, title, content, reflections, mood, tags, created_at
        FROM journal_entries
        WHERE user_id = ? AND created_at >= ? AND created_at <= ?
        ORDER BY created_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanJournal(rows)
}

func scanJournal(rows *sql.Rows) ([]*model.JournalEntry, error) {
	var out []*model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		var tags string
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.Title, &e.Content, &e.Reflections, &e.Mood, &tags, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Tags = decodeTags(tags)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// --- Tasks ---

type tasks struct{ db *sql.DB }

func (t *tasks) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.Task, error) {
	sqlQ := `
        SELECT task_id, user_id, title, description, tags, priority, status, important, due_date, created_at, completed_at
        FROM tasks
        WHERE user_id = ?
          AND (lower(title) LIKE ? OR lower(coalesce(description,'')) LIKE ? OR lower(tags) LIKE ?)`
	p := likePattern(q.Text)
	args := []interface{}{userID, p, p, p}
	if q.From != nil {
		sqlQ += " AND created_at >= ?"
		args = append(args, *q.From)
	}
	if q.To != nil {
		sqlQ += " AND created_at <= ?"
		args = append(args, *q.To)
	}
	sqlQ += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := t.db.QueryContext(ctx, sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanTasks(rows)
}

func (t *tasks) ListCompletedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Task, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT task_id, user_id, title, description, tags, priority, status, important, due_date, created_at, completed_at
        FROM tasks
        WHERE user_id = ? AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at <= ?
        ORDER BY completed_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanTasks(rows)
}

func (t *tasks) CountCreatedInRange(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM tasks
        WHERE user_id = ? AND created_at >= ? AND created_at <= ?`, userID, from, to).Scan(&n)
	return n, err
}

func (t *tasks) CountOverdue(ctx context.Context, userID string, asOf time.Time) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM tasks
        WHERE user_id = ? AND completed_at IS NULL AND due_date IS NOT NULL AND due_date < ?`, userID, asOf).Scan(&n)
	return n, err
}

func scanTasks(rows *sql.Rows) ([]*model.Task, error) {
	var out []*model.Task
	for rows.Next() {
		var t model.Task
		var tags string
		if err := rows.Scan(&t.TaskID, &t.UserID, &t.Title, &t.Description, &tags, &t.Priority, &t.Status, &t.Important, &t.DueDate, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, err
		}
		t.Tags = decodeTags(tags)
		out = append(out, &t)
	}
	return out, rows.Err()
}

// --- Calendar ---

type calendar struct{ db *sql.DB }

func (c *calendar) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.CalendarEvent, error) {
	sqlQ := `
        SELECT event_id, user_id, title, description, location, important, start_time, end_time
        FROM calendar_events
        WHERE user_id = ?
          AND (lower(title) LIKE ? OR lower(coalesce(description,'')) LIKE ? OR lower(coalesce(location,'')) LIKE ?)`
	p := likePattern(q.Text)
	args := []interface{}{userID, p, p, p}
	// Calendar range filtering is a window overlap on [start_time, end_time].
	if q.From != nil {
		sqlQ += " AND end_time >= ?"
		args = append(args, *q.From)
	}
	if q.To != nil {
		sqlQ += " AND start_time <= ?"
		args = append(args, *q.To)
	}
	sqlQ += " ORDER BY start_time DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := c.db.QueryContext(ctx, sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEvents(rows)
}

func (c *calendar) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.CalendarEvent, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT event_id, user_id, title, description, location, important, start_time, end_time
        FROM calendar_events
        WHERE user_id = ? AND start_time >= ? AND start_time <= ?
        ORDER BY start_time`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]*model.CalendarEvent, error) {
	var out []*model.CalendarEvent
	for rows.Next() {
		var ev model.CalendarEvent
		if err := rows.Scan(&ev.EventID, &ev.UserID, &ev.Title, &ev.Description, &ev.Location, &ev.Important, &ev.StartTime, &ev.EndTime); err != nil {
			return nil, err
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}

// --- Emails ---

type emails struct{ db *sql.DB }

func (e *emails) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.Email, error) {
	sqlQ := `
        SELECT email_id, user_id, subject, content, from_addr, to_addrs, folder, read, important, received_at, sent_at
        FROM emails
        WHERE user_id = ?
          AND (lower(subject) LIKE ? OR lower(content) LIKE ? OR lower(from_addr) LIKE ? OR lower(to_addrs) LIKE ?)`
	p := likePattern(q.Text)
	args := []interface{}{userID, p, p, p, p}
	if q.From != nil {
		sqlQ += " AND received_at >= ?"
		args = append(args, *q.From)
	}
	if q.To != nil {
		sqlQ += " AND received_at <= ?"
		args = append(args, *q.To)
	}
	sqlQ += " ORDER BY coalesce(received_at, sent_at) DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := e.db.QueryContext(ctx, sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEmails(rows)
}

func (e *emails) ListReceivedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Email, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT email_id, user_id, subject, content, from_addr, to_addrs, folder, read, important, received_at, sent_at
        FROM emails
        WHERE user_id = ? AND received_at IS NOT NULL AND received_at >= ? AND received_at <= ?
        ORDER BY received_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEmails(rows)
}

func (e *emails) ListSentInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Email, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT email_id, user_id, subject, content, from_addr, to_addrs, folder, read, important, received_at, sent_at
        FROM emails
        WHERE user_id = ? AND sent_at IS NOT NULL AND sent_at >= ? AND sent_at <= ?
        ORDER BY sent_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanEmails(rows)
}

func (e *emails) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := e.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM emails
        WHERE user_id = ? AND read = 0 AND received_at IS NOT NULL`, userID).Scan(&n)
	return n, err
}

func scanEmails(rows *sql.Rows) ([]*model.Email, error) {
	var out []*model.Email
	for rows.Next() {
		var m model.Email
		var to string
		if err := rows.Scan(&m.EmailID, &m.UserID, &m.Subject, &m.Content, &m.From, &to, &m.Folder, &m.Read, &m.Important, &m.ReceivedAt, &m.SentAt); err != nil {
			return nil, err
		}
		m.To = decodeTags(to)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Contacts ---

type contacts struct{ db *sql.DB }

func (c *contacts) Search(ctx context.Context, userID string, q store.SearchQuery) ([]*model.Contact, error) {
	sqlQ := `
        SELECT contact_id, user_id, name, email, company, notes, tags, created_at
        FROM contacts
        WHERE user_id = ?
          AND (lower(name) LIKE ? OR lower(coalesce(email,'')) LIKE ? OR lower(coalesce(company,'')) LIKE ? OR lower(coalesce(notes,'')) LIKE ? OR lower(tags) LIKE ?)`
	p := likePattern(q.Text)
	args := []interface{}{userID, p, p, p, p, p}
	if q.From != nil {
		sqlQ += " AND created_at >= ?"
		args = append(args, *q.From)
	}
	if q.To != nil {
		sqlQ += " AND created_at <= ?"
		args = append(args, *q.To)
	}
	sqlQ += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := c.db.QueryContext(ctx, sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanContacts(rows)
}

func (c *contacts) ListCreatedInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Contact, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT contact_id, user_id, name, email, company, notes, tags, created_at
        FROM contacts
        WHERE user_id = ? AND created_at >= ? AND created_at <= ?
        ORDER BY created_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanContacts(rows)
}

func scanContacts(rows *sql.Rows) ([]*model.Contact, error) {
	var out []*model.Contact
	for rows.Next() {
		var ct model.Contact
		var tags string
		if err := rows.Scan(&ct.ContactID, &ct.UserID, &ct.Name, &ct.Email, &ct.Company, &ct.Notes, &tags, &ct.CreatedAt); err != nil {
			return nil, err
		}
		ct.Tags = decodeTags(tags)
		out = append(out, &ct)
	}
	return out, rows.Err()
}
