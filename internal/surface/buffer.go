package surface

import (
	"strconv"
	"strings"
	"sync"
)

// MaxHistory bounds the undo stack
const MaxHistory = 200

// Buffer is the in-process editing surface. It is safe for concurrent use;
// listeners run outside the lock.
type Buffer struct {
	mu         sync.Mutex
	content    string
	cursorLine int
	revision   uint64
	undo       []string
	redo       []string

	onChange []func(content string)
	onReload []func()
}

// NewBuffer returns a surface holding the empty document
func NewBuffer() *Buffer {
	return &Buffer{content: EmptyDocument}
}

// OnChange registers a listener for every content change, typed or not
func (b *Buffer) OnChange(fn func(content string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

// OnReload registers a listener for content changes the view did not
// originate (loads, commands, undo)
func (b *Buffer) OnReload(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onReload = append(b.onReload, fn)
}

// Content implements Surface
func (b *Buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// SetContent implements Surface
func (b *Buffer) SetContent(content string) {
	b.mu.Lock()
	b.content = normalize(content)
	b.undo = nil
	b.redo = nil
	b.cursorLine = 0
	b.revision++
	reload := b.onReload
	b.mu.Unlock()

	for _, fn := range reload {
		fn()
	}
}

// Replace implements Surface
func (b *Buffer) Replace(content string) {
	b.apply(normalize(content), true)
}

// Input records an edit typed into the view
func (b *Buffer) Input(content string) {
	b.apply(normalize(content), false)
}

// InputAt records a typed edit made against the view loaded at revision.
// It is rejected when the buffer was reloaded since.
func (b *Buffer) InputAt(revision uint64, content string) bool {
	b.mu.Lock()
	if revision != b.revision {
		b.mu.Unlock()
		return false
	}
	content = normalize(content)
	changed := b.applyLocked(content)
	change := b.onChange
	b.mu.Unlock()

	if changed {
		b.notify(content, change, nil, false)
	}
	return true
}

// Revision counts reloads. It changes whenever the view must be refreshed.
func (b *Buffer) Revision() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision
}

// View returns the content together with its revision, for loading a view
func (b *Buffer) View() (string, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content, b.revision
}

// SetCursorLine tells the buffer which line line-scoped commands act on
func (b *Buffer) SetCursorLine(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorLine = n
}

// CanUndo implements Surface
func (b *Buffer) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.undo) > 0
}

// CanRedo implements Surface
func (b *Buffer) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.redo) > 0
}

// Exec implements Surface
func (b *Buffer) Exec(cmd Command, args ...string) {
	switch cmd {
	case CmdUndo:
		b.step(true)
		return
	case CmdRedo:
		b.step(false)
		return
	}

	b.mu.Lock()
	lines := strings.Split(b.content, "\n")
	idx := clamp(b.cursorLine, len(lines))
	updated, ok := transform(parseLine(lines[idx]), cmd, args)
	if !ok {
		b.mu.Unlock()
		return
	}
	lines[idx] = updated.String()
	content := strings.Join(lines, "\n")
	changed := b.applyLocked(content)
	if changed {
		b.revision++
	}
	change, reloads := b.onChange, b.onReload
	b.mu.Unlock()

	if changed {
		b.notify(content, change, reloads, true)
	}
}

// IsActive implements Surface. It inspects the cursor line.
func (b *Buffer) IsActive(mark string, attrs map[string]string) bool {
	b.mu.Lock()
	lines := strings.Split(b.content, "\n")
	current := parseLine(lines[clamp(b.cursorLine, len(lines))])
	b.mu.Unlock()

	switch Command(mark) {
	case CmdBold:
		return current.hasMark("strong")
	case CmdItalic:
		return current.hasMark("em")
	case CmdLink:
		return current.hasMark("a")
	case CmdCodeBlock:
		return current.kind == "pre"
	case CmdBulletList:
		return current.kind == "ul"
	case CmdOrderedList:
		return current.kind == "ol"
	case CmdParagraph:
		return current.kind == "p"
	case CmdHeading:
		if level, ok := attrs["level"]; ok {
			return current.kind == "h"+level
		}
		return strings.HasPrefix(current.kind, "h")
	}
	return false
}

func transform(current line, cmd Command, args []string) (line, bool) {
	switch cmd {
	case CmdBold:
		return current.toggleMark("strong"), true
	case CmdItalic:
		return current.toggleMark("em"), true
	case CmdCodeBlock:
		return current.toggleKind("pre"), true
	case CmdBulletList:
		return current.toggleKind("ul"), true
	case CmdOrderedList:
		return current.toggleKind("ol"), true
	case CmdParagraph:
		return current.withKind("p"), true
	case CmdHeading:
		if len(args) == 0 {
			return current, false
		}
		level, err := strconv.Atoi(args[0])
		if err != nil || level < 1 || level > 6 {
			return current, false
		}
		return current.withKind("h" + args[0]), true
	case CmdLink:
		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			return current, false
		}
		return current.withLink(strings.TrimSpace(args[0])), true
	}
	return current, false
}

func (b *Buffer) apply(content string, reload bool) {
	b.mu.Lock()
	changed := b.applyLocked(content)
	if changed && reload {
		b.revision++
	}
	change, reloads := b.onChange, b.onReload
	b.mu.Unlock()

	if changed {
		b.notify(content, change, reloads, reload)
	}
}

// applyLocked records an undoable edit. Callers hold b.mu.
func (b *Buffer) applyLocked(content string) bool {
	if content == b.content {
		return false
	}
	b.undo = append(b.undo, b.content)
	if len(b.undo) > MaxHistory {
		b.undo = b.undo[len(b.undo)-MaxHistory:]
	}
	b.redo = nil
	b.content = content
	return true
}

func (b *Buffer) step(back bool) {
	b.mu.Lock()
	from, to := &b.undo, &b.redo
	if !back {
		from, to = &b.redo, &b.undo
	}
	if len(*from) == 0 {
		b.mu.Unlock()
		return
	}
	prev := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, b.content)
	b.content = prev
	b.revision++
	change, reloads := b.onChange, b.onReload
	b.mu.Unlock()

	b.notify(prev, change, reloads, true)
}

func (b *Buffer) notify(content string, change []func(string), reloads []func(), reload bool) {
	if reload {
		for _, fn := range reloads {
			fn()
		}
	}
	for _, fn := range change {
		fn(content)
	}
}

func normalize(content string) string {
	if content == "" {
		return EmptyDocument
	}
	return content
}

func clamp(n, length int) int {
	if n < 0 {
		return 0
	}
	if n >= length {
		return length - 1
	}
	return n
}
