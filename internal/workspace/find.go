package workspace

import (
	"context"

	"github.com/studiowebux/inkpad/internal/findreplace"
)

// OpenFind shows the find dialog. replacing selects the find/replace form.
func (w *Workspace) OpenFind(replacing bool) {
	w.find.Open = true
	w.find.Replacing = replacing
	w.find.Recount(w.surface.Content())
}

// CloseFind hides the find dialog and forgets its state
func (w *Workspace) CloseFind() {
	w.find.Reset()
}

// Find counts query in the serialized document
func (w *Workspace) Find(query string, caseSensitive bool) int {
	w.find.FindText = query
	w.find.CaseSensitive = caseSensitive
	return w.find.Recount(w.surface.Content())
}

// ReplaceNext replaces the first occurrence and re-imports the document
// through the normal change path
func (w *Workspace) ReplaceNext(ctx context.Context, query, replacement string, caseSensitive bool) bool {
	w.setQuery(query, replacement, caseSensitive)

	updated, ok := findreplace.ReplaceFirst(w.surface.Content(), query, replacement, caseSensitive)
	if !ok {
		return false
	}
	w.reimport(ctx, updated)
	return true
}

// ReplaceAll replaces every occurrence and returns how many were replaced
func (w *Workspace) ReplaceAll(ctx context.Context, query, replacement string, caseSensitive bool) int {
	w.setQuery(query, replacement, caseSensitive)

	updated, n := findreplace.ReplaceAll(w.surface.Content(), query, replacement, caseSensitive)
	if n == 0 {
		return 0
	}
	w.reimport(ctx, updated)
	w.notify(pluralize(n, "replacement"), false)
	return n
}

func (w *Workspace) setQuery(query, replacement string, caseSensitive bool) {
	w.find.FindText = query
	w.find.ReplaceText = replacement
	w.find.CaseSensitive = caseSensitive
	w.find.Recount(w.surface.Content())
}

func (w *Workspace) reimport(ctx context.Context, content string) {
	w.surface.Replace(content)
	w.ContentChanged(ctx, w.surface.Content())
	w.find.Recount(w.surface.Content())
}
