package storetest

import (
	"testing"

	"github.com/dayhub/dayhub-server/internal/store"
)

func TestMemoryStoreCompliance(t *testing.T) {
	Run(t, func(t *testing.T, seed Seed) store.Store {
		m := NewMemory()
		m.JournalEntries = seed.Journal
		m.TaskItems = seed.Tasks
		m.Events = seed.Calendar
		m.EmailItems = seed.Emails
		m.ContactItems = seed.Contacts
		return m
	})
}
