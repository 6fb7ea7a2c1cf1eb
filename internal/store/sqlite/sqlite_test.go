package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dayhub/dayhub-server/internal/store"
	"github.com/dayhub/dayhub-server/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T, seed storetest.Seed) store.Store {
		db, err := Open(filepath.Join(t.TempDir(), "dayhub.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		ctx := context.Background()
		require.NoError(t, Bootstrap(ctx, db))
		loadSeed(t, ctx, db, seed)
		return NewWithDB(db)
	})
}

func loadSeed(t *testing.T, ctx context.Context, db *sql.DB, seed storetest.Seed) {
	t.Helper()

	for _, e := range seed.Journal {
		_, err := db.ExecContext(ctx, `
            INSERT INTO journal_entries (entry_id, user_id, title, content, reflections, mood, tags, created_at)
            VALUES (?,?,?,?,?,?,?,?)`,
			e.EntryID, e.UserID, e.Title, e.Content, e.Reflections, e.Mood, tagsJSON(t, e.Tags), e.CreatedAt)
		require.NoError(t, err)
	}
	for _, task := range seed.Tasks {
		_, err := db.ExecContext(ctx, `
            INSERT INTO tasks (task_id, user_id, title, description, tags, priority, status, important, due_date, created_at, completed_at)
            VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			task.TaskID, task.UserID, task.Title, task.Description, tagsJSON(t, task.Tags), task.Priority, task.Status, task.Important, task.DueDate, task.CreatedAt, task.CompletedAt)
		require.NoError(t, err)
	}
	for _, ev := range seed.Calendar {
		_, err := db.ExecContext(ctx, `
            INSERT INTO calendar_events (event_id, user_id, title, description, location, important, start_time, end_time)
            VALUES (?,?,?,?,?,?,?,?)`,
			ev.EventID, ev.UserID, ev.Title, ev.Description, ev.Location, ev.Important, ev.StartTime, ev.EndTime)
		require.NoError(t, err)
	}
	for _, m := range seed.Emails {
		_, err := db.ExecContext(ctx, `
            INSERT INTO emails (email_id, user_id, subject, content, from_addr, to_addrs, folder, read, important, received_at, sent_at)
            VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			m.EmailID, m.UserID, m.Subject, m.Content, m.From, tagsJSON(t, m.To), m.Folder, m.Read, m.Important, m.ReceivedAt, m.SentAt)
		require.NoError(t, err)
	}
	for _, c := range seed.Contacts {
		_, err := db.ExecContext(ctx, `
            INSERT INTO contacts (contact_id, user_id, name, email, company, notes, tags, created_at)
            VALUES (?,?,?,?,?,?,?,?)`,
			c.ContactID, c.UserID, c.Name, c.Email, c.Company, c.Notes, tagsJSON(t, c.Tags), c.CreatedAt)
		require.NoError(t, err)
	}
}

func tagsJSON(t *testing.T, tags []string) string {
	t.Helper()
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	require.NoError(t, err)
	return string(raw)
}
