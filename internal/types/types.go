package types

import "time"

// Session is the persisted process-wide state. Lists live under well-known
// keys so the file behaves as a small key-value store.
type Session struct {
	RecentFiles []string            `json:"recentFiles"`
	Lists       map[string][]string `json:"lists,omitempty"`
}

// JournalAction identifies what happened to a document
type JournalAction string

const (
	JournalOpened JournalAction = "opened"
	JournalSaved  JournalAction = "saved"
)

// JournalEntry is one row of the document journal
type JournalEntry struct {
	ID        int64         `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Path      string        `json:"path"`
	Action    JournalAction `json:"action"`
	Bytes     int           `json:"bytes"`
}
