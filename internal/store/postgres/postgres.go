// Package postgres implements the record store over PostgreSQL using the
// pgx stdlib driver. Schema setup is handled by deployment migrations.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store"
)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres-backed store over an open database handle.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Journal() store.Journal   { return &journal{db: s.db} }
func (s *pgStore) Tasks() store.Tasks       { return &tasks{db: s.db} }
func (s *pgStore) Calendar() store.Calendar { return &calendar{db: s.db} }
func (s *pgStore) Emails() store.Emails     { return &emails{db: s.db} }
func (s *pgStore) Contacts() store.Contacts { return &contacts{db: s.db} }

func (s *pgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

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
        WHERE user_id = $1
          AND (title ILIKE $2 OR content ILIKE $2 OR coalesce(reflections,'') ILIKE $2 OR tags ILIKE $2)`
	args := []interface{}{userID, likePattern(q.Text)}
	sqlQ, args = appendRange(sqlQ, args, "created_at", q.From, q.To)
	sqlQ += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)+1)
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
        WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
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
        WHERE user_id = $1
          AND (title ILIKE $2 OR coalesce(description,'') ILIKE $2 OR tags ILIKE $2)`
	args := []interface{}{userID, likePattern(q.Text)}
	sqlQ, args = appendRange(sqlQ, args, "created_at", q.From, q.To)
	sqlQ += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)+1)
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
        WHERE user_id = $1 AND completed_at IS NOT NULL AND completed_at >= $2 AND completed_at <= $3
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
        WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3`, userID, from, to).Scan(&n)
	return n, err
}

func (t *tasks) CountOverdue(ctx context.Context, userID string, asOf time.Time) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM tasks
        WHERE user_id = $1 AND completed_at IS NULL AND due_date IS NOT NULL AND due_date < $2`, userID, asOf).Scan(&n)
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
        WHERE user_id = $1
          AND (title ILIKE $2 OR coalesce(description,'') ILIKE $2 OR coalesce(location,'') ILIKE $2)`
	args := []interface{}{userID, likePattern(q.Text)}
	if q.From != nil {
		args = append(args, *q.From)
		sqlQ += fmt.Sprintf(" AND end_time >= $%d", len(args))
	}
	if q.To != nil {
		args = append(args, *q.To)
		sqlQ += fmt.Sprintf(" AND start_time <= $%d", len(args))
	}
	sqlQ += fmt.Sprintf(" ORDER BY start_time DESC LIMIT $%d", len(args)+1)
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
        WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
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
        WHERE user_id = $1
          AND (subject ILIKE $2 OR content ILIKE $2 OR from_addr ILIKE $2 OR to_addrs ILIKE $2)`
	args := []interface{}{userID, likePattern(q.Text)}
	sqlQ, args = appendRange(sqlQ, args, "received_at", q.From, q.To)
	sqlQ += fmt.Sprintf(" ORDER BY coalesce(received_at, sent_at) DESC LIMIT $%d", len(args)+1)
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
        WHERE user_id = $1 AND received_at IS NOT NULL AND received_at >= $2 AND received_at <= $3
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
        WHERE user_id = $1 AND sent_at IS NOT NULL AND sent_at >= $2 AND sent_at <= $3
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
        WHERE user_id = $1 AND read = false AND received_at IS NOT NULL`, userID).Scan(&n)
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
        WHERE user_id = $1
          AND (name ILIKE $2 OR coalesce(email,'') ILIKE $2 OR coalesce(company,'') ILIKE $2 OR coalesce(notes,'') ILIKE $2 OR tags ILIKE $2)`
	args := []interface{}{userID, likePattern(q.Text)}
	sqlQ, args = appendRange(sqlQ, args, "created_at", q.From, q.To)
	sqlQ += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)+1)
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
        WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
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

// appendRange adds optional inclusive range predicates on column using
// positional placeholders continuing from len(args).
func appendRange(sqlQ string, args []interface{}, column string, from, to *time.Time) (string, []interface{}) {
	if from != nil {
		args = append(args, *from)
		sqlQ += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if to != nil {
		args = append(args, *to)
		sqlQ += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return sqlQ, args
}
