package commands

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/studiowebux/inkpad/internal/fileio"
	"github.com/studiowebux/inkpad/internal/guard"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/recent"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/workspace"
)

type passthrough struct{}

func (passthrough) FromMarkdown(text string) (string, error) {
	return "<p>" + strings.TrimSpace(text) + "</p>", nil
}

func (passthrough) ToMarkdown(rich string) (string, error) {
	return strings.TrimSuffix(strings.TrimPrefix(rich, "<p>"), "</p>") + "\n", nil
}

type mapFS map[string]string

func (m mapFS) ReadTextFile(path string) (string, error) {
	if text, ok := m[path]; ok {
		return text, nil
	}
	return "", os.ErrNotExist
}

func (m mapFS) WriteTextFile(path, content string) error {
	m[path] = content
	return nil
}

type dialogs struct {
	open, save string
}

func (d *dialogs) OpenFile(context.Context, []fileio.Filter) (string, bool) {
	return d.open, d.open != ""
}

func (d *dialogs) SaveFile(context.Context, []fileio.Filter, string) (string, bool) {
	return d.save, d.save != ""
}

type answer struct {
	yes   bool
	asked int
}

func (a *answer) Confirm(context.Context, string, guard.Kind) bool {
	a.asked++
	return a.yes
}

type prompt string

func (p prompt) Prompt(context.Context, string, string) (string, bool) {
	return string(p), p != ""
}

type memory map[string][]string

func (m memory) Strings(key string) ([]string, error)         { return m[key], nil }
func (m memory) SetStrings(key string, values []string) error { m[key] = values; return nil }

type harness struct {
	d       *Dispatcher
	ws      *workspace.Workspace
	buf     *surface.Buffer
	fs      mapFS
	dialogs *dialogs
	confirm *answer
	recent  *recent.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rs, err := recent.New(memory{}, "recentFiles")
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{
		buf:     surface.NewBuffer(),
		fs:      mapFS{"/a.md": "alpha\n", "/b.md": "beta\n"},
		dialogs: &dialogs{},
		confirm: &answer{},
		recent:  rs,
	}
	h.ws = workspace.New(workspace.Options{
		Surface:          h.buf,
		Converter:        passthrough{},
		FS:               h.fs,
		Dialogs:          h.dialogs,
		Confirmer:        h.confirm,
		Prompter:         prompt("https://example.com"),
		Recent:           rs,
		DefaultExtension: ".md",
		Logger:           zerolog.Nop(),
	})
	h.d = New(h.ws)
	return h
}

func (h *harness) typeText(content string) {
	h.buf.Input(content)
	h.ws.ContentChanged(context.Background(), h.buf.Content())
}

func TestRun_TabActions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.d.Run(ctx, keybinds.ActionNewTab)
	h.d.Run(ctx, keybinds.ActionNewDocument)
	if n := h.ws.Registry().Len(); n != 3 {
		t.Fatalf("tabs = %d, want 3", n)
	}

	last := h.ws.Registry().ActiveID()
	h.d.Run(ctx, keybinds.ActionCycleNext)
	if h.ws.Registry().ActiveID() == last {
		t.Error("cycle next did not move")
	}
	h.d.Run(ctx, keybinds.ActionCyclePrevious)
	if h.ws.Registry().ActiveID() != last {
		t.Error("cycle previous did not return")
	}

	h.d.Run(ctx, keybinds.ActionCloseTab)
	if n := h.ws.Registry().Len(); n != 2 {
		t.Errorf("tabs = %d after close", n)
	}
}

func TestRun_DestructiveActionsAskGuard(t *testing.T) {
	ctx := context.Background()

	for _, action := range []keybinds.Action{
		keybinds.ActionCloseTab,
		keybinds.ActionOpenFile,
		keybinds.ActionOpenMostRecent,
	} {
		t.Run(string(action), func(t *testing.T) {
			h := newHarness(t)
			_ = h.ws.OpenPath(ctx, "/a.md")
			h.typeText("<p>unsaved</p>")
			if err := h.recent.Add("/b.md"); err != nil {
				t.Fatal(err)
			}
			h.dialogs.open = "/b.md"
			before := h.ws.Snapshot()

			h.d.Run(ctx, action)

			if h.confirm.asked != 1 {
				t.Errorf("guard asked %d times, want 1", h.confirm.asked)
			}
			after := h.ws.Snapshot()
			if len(after.Tabs) != len(before.Tabs) || after.Active().Content != "<p>unsaved</p>" {
				t.Error("declined action changed state")
			}
		})
	}
}

func TestRun_Formatting(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.typeText("<p>text</p>")

	steps := []struct {
		action keybinds.Action
		want   string
	}{
		{keybinds.ActionBold, "<p><strong>text</strong></p>"},
		{keybinds.ActionBold, "<p>text</p>"},
		{keybinds.ActionItalic, "<p><em>text</em></p>"},
		{keybinds.ActionUndo, "<p>text</p>"},
		{keybinds.ActionRedo, "<p><em>text</em></p>"},
		{keybinds.ActionHeading4, "<h4><em>text</em></h4>"},
		{keybinds.ActionParagraph, "<p><em>text</em></p>"},
		{keybinds.ActionBulletList, "<ul><li><em>text</em></li></ul>"},
		{keybinds.ActionOrderedList, "<ol><li><em>text</em></li></ol>"},
		{keybinds.ActionCodeBlock, "<pre><code><em>text</em></code></pre>"},
		{keybinds.ActionInsertLink, `<pre><code><a href="https://example.com"><em>text</em></a></code></pre>`},
	}
	for _, s := range steps {
		h.d.Run(ctx, s.action)
		if got := h.ws.Registry().Active().Content; got != s.want {
			t.Fatalf("%s: content = %q, want %q", s.action, got, s.want)
		}
	}
}

func TestRun_SaveAndErrors(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.typeText("<p>body</p>")
	h.dialogs.save = "/notes"

	h.d.Run(ctx, keybinds.ActionSave)
	if h.fs["/notes.md"] != "body\n" {
		t.Errorf("saved = %q", h.fs["/notes.md"])
	}
	if h.ws.Registry().Active().IsModified {
		t.Error("tab still modified after save")
	}

	h2 := newHarness(t)
	h2.d.Run(ctx, keybinds.ActionOpenMostRecent)
	if notice := h2.ws.Snapshot().Notice; notice.Text != "No recent files" || notice.Error {
		t.Errorf("notice = %+v", notice)
	}

	h2.dialogs.open = "/missing.md"
	h2.d.Run(ctx, keybinds.ActionOpenFile)
	if notice := h2.ws.Snapshot().Notice; !notice.Error || !strings.HasPrefix(notice.Text, "Open file:") {
		t.Errorf("notice = %+v", notice)
	}
}

func TestRun_FindAndQuit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.d.Run(ctx, keybinds.ActionOpenFindRepl)
	if snap := h.ws.Snapshot(); !snap.Find.Open || !snap.Find.Replacing {
		t.Errorf("find = %+v", snap.Find)
	}
	h.d.Run(ctx, keybinds.ActionOpenFind)
	if snap := h.ws.Snapshot(); snap.Find.Replacing {
		t.Error("open find should leave replace mode")
	}

	h.d.Run(ctx, keybinds.ActionQuit)
	if !h.ws.Closing() {
		t.Error("clean quit should close")
	}
}

func TestHandles(t *testing.T) {
	for _, chord := range keybinds.TableChords() {
		action, _ := keybinds.ChordToCommand(chord)
		if !Handles(action) {
			t.Errorf("table action %s is not dispatched", action)
		}
	}
	if Handles(keybinds.ActionOpenHelp) {
		t.Error("help is handled by the view")
	}
}
