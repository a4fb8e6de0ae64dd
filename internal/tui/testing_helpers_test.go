package tui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/studiowebux/inkpad/internal/config"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/recent"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/workspace"
)

type paragraphConverter struct{}

func (paragraphConverter) FromMarkdown(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return surface.EmptyDocument, nil
	}
	return "<p>" + text + "</p>", nil
}

func (paragraphConverter) ToMarkdown(rich string) (string, error) {
	return strings.TrimSuffix(strings.TrimPrefix(rich, "<p>"), "</p>") + "\n", nil
}

type memFS map[string]string

func (f memFS) ReadTextFile(path string) (string, error) {
	if text, ok := f[path]; ok {
		return text, nil
	}
	return "", os.ErrNotExist
}

func (f memFS) WriteTextFile(path, content string) error {
	f[path] = content
	return nil
}

type memoryStore map[string][]string

func (s memoryStore) Strings(key string) ([]string, error) { return s[key], nil }

func (s memoryStore) SetStrings(key string, values []string) error {
	s[key] = values
	return nil
}

// testHarness is a model wired to a running loop. Blocking questions are
// answered by feeding the captured request messages back to the model.
type testHarness struct {
	model    *Model
	ws       *workspace.Workspace
	buffer   *surface.Buffer
	fs       memFS
	recent   *recent.Store
	requests chan tea.Msg
	loop     *workspace.Loop
	// lastCmd is what the model returned for the last settled snapshot
	lastCmd tea.Cmd
}

// CreateTestModel creates a Model over in-memory collaborators with its
// loop running until the test ends
func CreateTestModel(t *testing.T, files map[string]string) *testHarness {
	t.Helper()

	fs := memFS{}
	for path, text := range files {
		fs[path] = text
	}
	rs, err := recent.New(memoryStore{}, "recentFiles")
	if err != nil {
		t.Fatalf("Failed to create recent store: %v", err)
	}

	h := &testHarness{
		buffer:   surface.NewBuffer(),
		fs:       fs,
		recent:   rs,
		requests: make(chan tea.Msg, 8),
	}
	questions := &bridge{send: func(msg tea.Msg) { h.requests <- msg }}

	h.ws = workspace.New(workspace.Options{
		Surface:          h.buffer,
		Converter:        paragraphConverter{},
		FS:               fs,
		Dialogs:          questions,
		Confirmer:        questions,
		Prompter:         questions,
		Recent:           rs,
		DefaultExtension: ".md",
		Logger:           zerolog.Nop(),
	})
	h.loop = workspace.NewLoop(h.ws)
	h.buffer.OnChange(func(content string) {
		h.loop.Post(func(ctx context.Context) { h.ws.ContentChanged(ctx, content) })
	})

	settings := config.DefaultSettings()
	h.model = NewModel(Deps{
		Loop:      h.loop,
		Workspace: h.ws,
		Buffer:    h.buffer,
		Keybinds:  keybinds.NewDefaultRegistry(),
		Settings:  settings,
	})
	h.model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.loop.Run(ctx, nil)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	h.settle(t)
	return h
}

// settle waits until every job posted so far has run, including jobs
// those jobs posted, and applies the resulting snapshot to the model
func (h *testHarness) settle(t *testing.T) {
	t.Helper()

	snaps := make(chan workspace.Snapshot, 1)
	ws, loop := h.ws, h.loop
	loop.Post(func(context.Context) {
		loop.Post(func(context.Context) { snaps <- ws.Snapshot() })
	})
	select {
	case snap := <-snaps:
		h.lastCmd = h.model.applySnapshot(snap)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain")
	}
	if h.buffer.Revision() != h.model.revision {
		h.model.Update(reloadMsg{})
	}
}

// request waits for the next blocking question and delivers it
func (h *testHarness) request(t *testing.T) tea.Msg {
	t.Helper()
	select {
	case msg := <-h.requests:
		h.model.Update(msg)
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no request received")
		return nil
	}
}

func (h *testHarness) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.model.Update(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
