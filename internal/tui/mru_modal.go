package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/recent"
)

// recentPicker is the fuzzy filterable recent-files list
type recentPicker struct {
	filter textinput.Model
	index  int
}

// openRecentPicker shows the recent-files list
func (m *Model) openRecentPicker() {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 256
	ti.Width = PromptInputWidth
	ti.Focus()

	m.recent = recentPicker{filter: ti}
	m.mode = ModeRecent
	m.editor.Blur()
}

// recentMatches is the filtered view of the published recent list
func (m *Model) recentMatches() []string {
	return recent.FilterPaths(m.snap.Recent, m.recent.filter.Value())
}

// handleRecentKeys handles keyboard input in the recent-files picker
func (m *Model) handleRecentKeys(msg tea.KeyMsg) tea.Cmd {
	matches := m.recentMatches()

	if action, ok := m.keybinds.Match(keybinds.ContextPicker, msg.String()); ok {
		switch action {
		case keybinds.ActionCancel:
			m.leaveModal()
		case keybinds.ActionNavigateUp:
			m.recent.index = moveIndex(m.recent.index, -1, len(matches))
		case keybinds.ActionNavigateDown:
			m.recent.index = moveIndex(m.recent.index, 1, len(matches))
		case keybinds.ActionPageUp:
			m.recent.index = moveIndex(m.recent.index, -PickerPageSize, len(matches))
		case keybinds.ActionPageDown:
			m.recent.index = moveIndex(m.recent.index, PickerPageSize, len(matches))
		case keybinds.ActionSubmit:
			if len(matches) == 0 {
				return nil
			}
			path := matches[clampIndex(m.recent.index, len(matches))]
			m.leaveModal()
			ws := m.ws
			m.post(func(ctx context.Context) {
				if err := ws.OpenRecent(ctx, path); err != nil {
					ws.Fail(ctx, keybinds.Description(keybinds.ActionOpenRecent), err)
				}
			})
		case keybinds.ActionQuit:
			m.leaveModal()
			return m.runAction(keybinds.ActionQuit)
		}
		return nil
	}

	before := m.recent.filter.Value()
	var cmd tea.Cmd
	m.recent.filter, cmd = m.recent.filter.Update(msg)
	if m.recent.filter.Value() != before {
		m.recent.index = 0
	}
	return cmd
}

// renderRecentModal renders the recent-files picker
func (m *Model) renderRecentModal() string {
	if len(m.snap.Recent) == 0 {
		return m.renderModal("Recent Files", "No recent files\n\nPress ESC to close", RecentModalWidth, 10)
	}

	matches := m.recentMatches()
	selected := clampIndex(m.recent.index, len(matches))

	var content strings.Builder
	content.WriteString(m.recent.filter.View())
	content.WriteString("\n\n")

	if len(matches) == 0 {
		content.WriteString(styleSubtle.Render("No matches"))
	}
	for i, path := range matches {
		line := fmt.Sprintf("%-24s %s", filepath.Base(path), styleSubtle.Render(filepath.Dir(path)))
		if i == selected {
			content.WriteString(styleSelected.Render("> "+line) + "\n")
		} else {
			content.WriteString("  " + line + "\n")
		}
	}

	footer := "[↑/↓] navigate  [enter] open  [esc] close"
	// two header lines precede the list
	return m.renderModalWithFooterAndScroll("Recent Files", content.String(), footer,
		RecentModalWidth, RecentModalHeight, selected+2)
}

// moveIndex steps through a list of n items, clamping at both ends
func moveIndex(index, delta, n int) int {
	if n == 0 {
		return 0
	}
	return clampIndex(index+delta, n)
}

func clampIndex(index, n int) int {
	if index < 0 || n == 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
