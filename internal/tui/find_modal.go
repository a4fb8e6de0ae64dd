package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/inkpad/internal/findreplace"
	"github.com/studiowebux/inkpad/internal/keybinds"
)

// findForm is the find / find-replace bar shown under the editor
type findForm struct {
	query         textinput.Model
	replacement   textinput.Model
	caseSensitive bool
	replacing     bool
	// onReplace is true while the replacement field has focus
	onReplace bool
	matches   int
}

func newFindInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = FindInputWidth
	return ti
}

// openFindForm shows the bar seeded from session
func (m *Model) openFindForm(session findreplace.Session) {
	m.find = findForm{
		query:       newFindInput("find"),
		replacement: newFindInput("replace with"),
	}
	m.find.query.SetValue(session.FindText)
	m.find.replacement.SetValue(session.ReplaceText)
	m.find.query.Focus()
	m.find.sync(session)

	m.mode = ModeFind
	m.editor.Blur()
}

// sync adopts the loop's view of the session without touching the inputs
func (f *findForm) sync(session findreplace.Session) {
	f.caseSensitive = session.CaseSensitive
	f.replacing = session.Replacing
	f.matches = session.MatchCount
	if !f.replacing && f.onReplace {
		f.switchField()
	}
}

func (f *findForm) switchField() {
	if !f.replacing && !f.onReplace {
		return
	}
	f.onReplace = !f.onReplace
	if f.onReplace {
		f.query.Blur()
		f.replacement.Focus()
	} else {
		f.replacement.Blur()
		f.query.Focus()
	}
}

func (f *findForm) blur() {
	f.query.Blur()
	f.replacement.Blur()
	f.onReplace = false
}

// handleFindKeys handles keyboard input in the find bar
func (m *Model) handleFindKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextFind, msg.String()); ok {
		return m.runFindAction(action)
	}

	before := m.find.query.Value()
	var cmd tea.Cmd
	if m.find.onReplace {
		m.find.replacement, cmd = m.find.replacement.Update(msg)
	} else {
		m.find.query, cmd = m.find.query.Update(msg)
	}
	if m.find.query.Value() != before {
		m.postFind()
	}
	return cmd
}

func (m *Model) runFindAction(action keybinds.Action) tea.Cmd {
	ws := m.ws
	query, replacement := m.find.query.Value(), m.find.replacement.Value()
	cs := m.find.caseSensitive

	switch action {
	case keybinds.ActionCloseModal:
		m.closeFind()
	case keybinds.ActionSwitchField:
		m.find.switchField()
	case keybinds.ActionToggleCase:
		m.find.caseSensitive = !cs
		m.postFind()
	case keybinds.ActionSubmit:
		if m.find.replacing && m.find.onReplace {
			m.post(func(ctx context.Context) { ws.ReplaceNext(ctx, query, replacement, cs) })
		} else {
			m.postFind()
		}
	case keybinds.ActionReplaceNext:
		if m.find.replacing {
			m.post(func(ctx context.Context) { ws.ReplaceNext(ctx, query, replacement, cs) })
		}
	case keybinds.ActionReplaceAll:
		if m.find.replacing {
			m.post(func(ctx context.Context) { ws.ReplaceAll(ctx, query, replacement, cs) })
		}
	case keybinds.ActionQuit:
		return m.quitFromModal()
	}
	return nil
}

// closeFind hides the bar at once and ignores snapshots published before
// the loop has reset the session
func (m *Model) closeFind() {
	ws := m.ws
	m.leaveModal()
	m.findClosing = true
	m.post(func(context.Context) { ws.CloseFind() })
}

// postFind recounts matches for the current query
func (m *Model) postFind() {
	ws := m.ws
	query, cs := m.find.query.Value(), m.find.caseSensitive
	m.post(func(context.Context) { ws.Find(query, cs) })
}

// renderFindBar renders the find bar shown below the editor
func (m *Model) renderFindBar() string {
	caseLabel := "Aa off"
	if m.find.caseSensitive {
		caseLabel = "Aa on"
	}
	line := fmt.Sprintf("Find: %s  %s  %s", m.find.query.View(),
		styleSubtle.Render(caseLabel), matchLabel(m.find.matches))

	if !m.find.replacing {
		return line
	}
	next := m.keybinds.GetBindingString(keybinds.ContextFind, keybinds.ActionReplaceNext)
	all := m.keybinds.GetBindingString(keybinds.ContextFind, keybinds.ActionReplaceAll)
	return line + "\n" + fmt.Sprintf("Replace: %s  %s",
		m.find.replacement.View(),
		styleSubtle.Render("["+next+"] next ["+all+"] all"))
}

func matchLabel(n int) string {
	switch n {
	case 0:
		return styleWarning.Render("no matches")
	case 1:
		return styleSuccess.Render("1 match")
	default:
		return styleSuccess.Render(fmt.Sprintf("%d matches", n))
	}
}
