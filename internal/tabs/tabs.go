package tabs

import (
	"path/filepath"
	"strconv"
)

// DefaultTitle names tabs that are not bound to a file
const DefaultTitle = "Untitled"

// EmptyDocument is the canonical serialization of a document with no content
const EmptyDocument = "<p></p>"

// ID identifies a tab. IDs are never reused within a process.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Tab is one open document
type Tab struct {
	ID         ID
	Title      string
	FilePath   string
	Content    string
	IsModified bool

	// baseline is the content as last opened or saved
	baseline string
}

// DisplayName is the name used in prompts: the file name when bound,
// otherwise the title
func (t Tab) DisplayName() string {
	if t.FilePath != "" {
		return filepath.Base(t.FilePath)
	}
	return t.Title
}

// Baseline returns the content as last opened or saved
func (t Tab) Baseline() string {
	return t.baseline
}

// IsPristine reports whether the tab is unbound, unmodified and empty
func (t Tab) IsPristine() bool {
	return t.FilePath == "" && !t.IsModified && IsEmpty(t.Content)
}

// IsEmpty reports whether content is the empty document. Both the canonical
// serialization and the zero string count as empty.
func IsEmpty(content string) bool {
	return content == "" || content == EmptyDocument
}

// SameContent compares two serializations by value, treating every empty
// form as one value
func SameContent(a, b string) bool {
	if IsEmpty(a) && IsEmpty(b) {
		return true
	}
	return a == b
}
