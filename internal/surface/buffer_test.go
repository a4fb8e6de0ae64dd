package surface

import (
	"sync"
	"testing"
)

type recorder struct {
	mu      sync.Mutex
	changes []string
	reloads int
}

func attach(b *Buffer) *recorder {
	r := &recorder{}
	b.OnChange(func(c string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.changes = append(r.changes, c)
	})
	b.OnReload(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.reloads++
	})
	return r
}

func TestNewBuffer_IsEmptyDocument(t *testing.T) {
	b := NewBuffer()
	if b.Content() != EmptyDocument {
		t.Errorf("Content() = %q", b.Content())
	}
	if b.CanUndo() || b.CanRedo() {
		t.Error("new buffer should have no history")
	}
}

func TestSetContent_ResetsHistoryWithoutChange(t *testing.T) {
	b := NewBuffer()
	rec := attach(b)

	b.Input("<p>typed</p>")
	if !b.CanUndo() {
		t.Fatal("typing should be undoable")
	}

	b.SetContent("<p>other document</p>")

	if b.CanUndo() || b.CanRedo() {
		t.Error("SetContent must discard undo/redo history")
	}
	if len(rec.changes) != 1 {
		t.Errorf("SetContent must not emit a change, got %v", rec.changes)
	}
	if rec.reloads != 1 {
		t.Errorf("SetContent should reload the view, reloads = %d", rec.reloads)
	}

	b.SetContent("")
	if b.Content() != EmptyDocument {
		t.Errorf("empty content should normalize, got %q", b.Content())
	}
}

func TestInput_EmitsChangeOnly(t *testing.T) {
	b := NewBuffer()
	rec := attach(b)

	b.Input("<p>a</p>")
	b.Input("<p>a</p>")

	if len(rec.changes) != 1 || rec.changes[0] != "<p>a</p>" {
		t.Errorf("changes = %v", rec.changes)
	}
	if rec.reloads != 0 {
		t.Errorf("typed input must not reload the view, reloads = %d", rec.reloads)
	}
}

func TestReplace_UndoRedo(t *testing.T) {
	b := NewBuffer()
	b.SetContent("<p>cat</p>")
	rec := attach(b)

	b.Replace("<p>dog</p>")
	b.Exec(CmdUndo)
	if b.Content() != "<p>cat</p>" {
		t.Fatalf("after undo = %q", b.Content())
	}
	if !b.CanRedo() {
		t.Fatal("redo should be available")
	}
	b.Exec(CmdRedo)
	if b.Content() != "<p>dog</p>" {
		t.Fatalf("after redo = %q", b.Content())
	}

	want := []string{"<p>dog</p>", "<p>cat</p>", "<p>dog</p>"}
	if len(rec.changes) != len(want) {
		t.Fatalf("changes = %v", rec.changes)
	}
	for i := range want {
		if rec.changes[i] != want[i] {
			t.Errorf("change %d = %q, want %q", i, rec.changes[i], want[i])
		}
	}
	if rec.reloads != 3 {
		t.Errorf("reloads = %d, want 3", rec.reloads)
	}

	// Undo with empty stack is a no-op.
	b.Exec(CmdUndo)
	b.Exec(CmdUndo)
	b.Exec(CmdUndo)
	if b.Content() != "<p>cat</p>" {
		t.Errorf("content = %q", b.Content())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < MaxHistory+50; i++ {
		if i%2 == 0 {
			b.Input("<p>a</p>")
		} else {
			b.Input("<p>b</p>")
		}
	}
	steps := 0
	for b.CanUndo() {
		b.Exec(CmdUndo)
		steps++
	}
	if steps != MaxHistory {
		t.Errorf("undo steps = %d, want %d", steps, MaxHistory)
	}
}

func TestExec_LineCommands(t *testing.T) {
	tests := []struct {
		name string
		line string
		cmd  Command
		args []string
		want string
	}{
		{"bold wraps", "<p>hello</p>", CmdBold, nil, "<p><strong>hello</strong></p>"},
		{"bold unwraps", "<p><strong>hello</strong></p>", CmdBold, nil, "<p>hello</p>"},
		{"italic", "<h2>title</h2>", CmdItalic, nil, "<h2><em>title</em></h2>"},
		{"heading", "<p>title</p>", CmdHeading, []string{"3"}, "<h3>title</h3>"},
		{"heading bad level", "<p>title</p>", CmdHeading, []string{"9"}, "<p>title</p>"},
		{"paragraph", "<h1>title</h1>", CmdParagraph, nil, "<p>title</p>"},
		{"bullet on", "<p>item</p>", CmdBulletList, nil, "<ul><li>item</li></ul>"},
		{"bullet off", "<ul><li>item</li></ul>", CmdBulletList, nil, "<p>item</p>"},
		{"ordered", "<p>item</p>", CmdOrderedList, nil, "<ol><li>item</li></ol>"},
		{"code on", "<p>x := 1</p>", CmdCodeBlock, nil, "<pre><code>x := 1</code></pre>"},
		{"code off", "<pre><code>x := 1</code></pre>", CmdCodeBlock, nil, "<p>x := 1</p>"},
		{"link", "<p>site</p>", CmdLink, []string{"https://example.com"}, `<p><a href="https://example.com">site</a></p>`},
		{"link replaces href", `<p><a href="https://old">site</a></p>`, CmdLink, []string{"https://new"}, `<p><a href="https://new">site</a></p>`},
		{"link without url", "<p>site</p>", CmdLink, []string{"  "}, "<p>site</p>"},
		{"raw text", "plain", CmdHeading, []string{"1"}, "<h1>plain</h1>"},
		{"list item line", "<li>entry</li>", CmdBold, nil, "<li><strong>entry</strong></li>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			b.SetContent(tt.line)
			b.Exec(tt.cmd, tt.args...)
			if got := b.Content(); got != tt.want {
				t.Errorf("Exec(%s) = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestExec_UsesCursorLine(t *testing.T) {
	b := NewBuffer()
	b.SetContent("<p>one</p>\n<p>two</p>\n<p>three</p>")

	b.SetCursorLine(1)
	b.Exec(CmdHeading, "2")
	if got := b.Content(); got != "<p>one</p>\n<h2>two</h2>\n<p>three</p>" {
		t.Errorf("content = %q", got)
	}

	b.SetCursorLine(99)
	b.Exec(CmdBold)
	if got := b.Content(); got != "<p>one</p>\n<h2>two</h2>\n<p><strong>three</strong></p>" {
		t.Errorf("cursor past the end should clamp to the last line, got %q", got)
	}
}

func TestIsActive(t *testing.T) {
	b := NewBuffer()
	b.SetContent("<h2><strong>title</strong></h2>\n<ul><li>x</li></ul>")

	if !b.IsActive(string(CmdBold), nil) {
		t.Error("bold should be active on line 0")
	}
	if b.IsActive(string(CmdItalic), nil) {
		t.Error("italic should not be active")
	}
	if !b.IsActive(string(CmdHeading), map[string]string{"level": "2"}) {
		t.Error("heading level 2 should be active")
	}
	if b.IsActive(string(CmdHeading), map[string]string{"level": "1"}) {
		t.Error("heading level 1 should not be active")
	}

	b.SetCursorLine(1)
	if !b.IsActive(string(CmdBulletList), nil) {
		t.Error("bullet list should be active on line 1")
	}
	if b.IsActive("unknown", nil) {
		t.Error("unknown marks are never active")
	}
}

func TestBuffer_ConcurrentUse(t *testing.T) {
	b := NewBuffer()
	attach(b)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Input("<p>" + string(rune('a'+i)) + "</p>")
				b.Exec(CmdBold)
				_ = b.Content()
				_ = b.CanUndo()
			}
		}(i)
	}
	wg.Wait()
}

func TestInputAt_RejectsStaleView(t *testing.T) {
	b := NewBuffer()
	rec := attach(b)

	rev := b.Revision()
	if !b.InputAt(rev, "<p>typed</p>") {
		t.Fatal("input against the current revision should apply")
	}
	if b.Revision() != rev {
		t.Error("typed input must not bump the revision")
	}

	b.SetContent("<p>another tab</p>")
	if b.InputAt(rev, "<p>typed more</p>") {
		t.Error("input against a stale revision should be rejected")
	}
	if b.Content() != "<p>another tab</p>" {
		t.Errorf("content = %q", b.Content())
	}
	if len(rec.changes) != 1 {
		t.Errorf("changes = %v", rec.changes)
	}

	b.Exec(CmdBold)
	if b.InputAt(b.Revision()-1, "<p>x</p>") {
		t.Error("commands reload the view and should invalidate older revisions")
	}
}
