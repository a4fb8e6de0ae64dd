package workspace

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/studiowebux/inkpad/internal/fileio"
	"github.com/studiowebux/inkpad/internal/guard"
	"github.com/studiowebux/inkpad/internal/recent"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/types"
)

// lineConverter maps each markdown line to a paragraph
type lineConverter struct{}

func (lineConverter) FromMarkdown(text string) (string, error) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return surface.EmptyDocument, nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "<p>" + l + "</p>"
	}
	return strings.Join(lines, "\n"), nil
}

func (lineConverter) ToMarkdown(rich string) (string, error) {
	if rich == "" || rich == surface.EmptyDocument {
		return "", nil
	}
	lines := strings.Split(rich, "\n")
	for i, l := range lines {
		l = strings.TrimPrefix(l, "<p>")
		lines[i] = strings.TrimSuffix(l, "</p>")
	}
	return strings.Join(lines, "\n") + "\n", nil
}

type memFS struct {
	files    map[string]string
	writeErr error
	reads    int
}

func newMemFS(files map[string]string) *memFS {
	if files == nil {
		files = map[string]string{}
	}
	return &memFS{files: files}
}

func (f *memFS) ReadTextFile(path string) (string, error) {
	f.reads++
	text, ok := f.files[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return text, nil
}

func (f *memFS) WriteTextFile(path, content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = content
	return nil
}

type scriptedDialogs struct {
	openPaths []string
	savePaths []string
	opened    int
	saved     int
	suggested string
}

func (d *scriptedDialogs) OpenFile(ctx context.Context, filters []fileio.Filter) (string, bool) {
	d.opened++
	if len(d.openPaths) == 0 {
		return "", false
	}
	p := d.openPaths[0]
	d.openPaths = d.openPaths[1:]
	return p, true
}

func (d *scriptedDialogs) SaveFile(ctx context.Context, filters []fileio.Filter, suggested string) (string, bool) {
	d.saved++
	d.suggested = suggested
	if len(d.savePaths) == 0 {
		return "", false
	}
	p := d.savePaths[0]
	d.savePaths = d.savePaths[1:]
	return p, true
}

type stubConfirmer struct {
	answer   bool
	messages []string
}

func (c *stubConfirmer) Confirm(ctx context.Context, message string, kind guard.Kind) bool {
	c.messages = append(c.messages, message)
	return c.answer
}

type stubPrompter struct {
	value string
	ok    bool
	asked int
}

func (p *stubPrompter) Prompt(ctx context.Context, label, initial string) (string, bool) {
	p.asked++
	return p.value, p.ok
}

type memoryStore struct {
	values map[string][]string
}

func (m *memoryStore) Strings(key string) ([]string, error) {
	return append([]string(nil), m.values[key]...), nil
}

func (m *memoryStore) SetStrings(key string, values []string) error {
	m.values[key] = append([]string(nil), values...)
	return nil
}

type journalEvent struct {
	path   string
	action types.JournalAction
	bytes  int
}

type memJournal struct {
	events []journalEvent
}

func (j *memJournal) Record(path string, action types.JournalAction, bytes int) error {
	j.events = append(j.events, journalEvent{path, action, bytes})
	return nil
}

type fixture struct {
	ws        *Workspace
	surface   *surface.Buffer
	fs        *memFS
	dialogs   *scriptedDialogs
	confirmer *stubConfirmer
	prompter  *stubPrompter
	recent    *recent.Store
	journal   *memJournal
	clipboard []string
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()

	rs, err := recent.New(&memoryStore{values: map[string][]string{}}, "recentFiles")
	if err != nil {
		t.Fatalf("recent.New() error = %v", err)
	}

	f := &fixture{
		surface:   surface.NewBuffer(),
		fs:        newMemFS(files),
		dialogs:   &scriptedDialogs{},
		confirmer: &stubConfirmer{},
		prompter:  &stubPrompter{},
		recent:    rs,
		journal:   &memJournal{},
	}
	f.ws = New(Options{
		Surface:   f.surface,
		Converter: lineConverter{},
		FS:        f.fs,
		Dialogs:   f.dialogs,
		Confirmer: f.confirmer,
		Prompter:  f.prompter,
		Recent:    f.recent,
		Journal:   f.journal,
		Clipboard: func(text string) error {
			if text == "fail\n" {
				return errors.New("no display")
			}
			f.clipboard = append(f.clipboard, text)
			return nil
		},
		DefaultExtension: ".md",
		Logger:           zerolog.Nop(),
	})
	return f
}

// typeText simulates the view editing the surface and the resulting
// change notification reaching the workspace
func (f *fixture) typeText(content string) {
	f.surface.Input(content)
	f.ws.ContentChanged(context.Background(), f.surface.Content())
}
