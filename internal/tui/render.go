package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/tabs"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleDirectory = lipgloss.NewStyle().
			Foreground(colorBlue)

	styleActiveTab = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(colorCyan)

	styleTab = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorGray)

	styleModifiedMark = lipgloss.NewStyle().
				Foreground(colorYellow)
)

// renderMain renders the tab bar, the editor and the status bar
func (m *Model) renderMain() string {
	editorBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.editorBorderColor()).
		Render(m.editor.View())

	parts := []string{m.renderTabBar(), editorBox}
	if m.mode == ModeFind {
		parts = append(parts, m.renderFindBar())
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) editorBorderColor() lipgloss.AdaptiveColor {
	if m.mode == ModeNormal {
		return colorGreen
	}
	return colorGray
}

// renderTabBar renders one label per tab, the active one highlighted and
// modified ones marked
func (m *Model) renderTabBar() string {
	labels := make([]string, 0, len(m.snap.Tabs))
	for _, tab := range m.snap.Tabs {
		labels = append(labels, renderTabLabel(tab, tab.ID == m.snap.ActiveID))
	}
	bar := strings.Join(labels, styleSubtle.Render("│"))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
}

func renderTabLabel(tab tabs.Tab, active bool) string {
	label := tab.Title
	if tab.IsModified {
		label += " " + styleModifiedMark.Render(ModifiedMarker)
	}
	if active {
		return styleActiveTab.Render(label)
	}
	return styleTab.Render(label)
}

// renderStatusBar shows the active document on the left and the latest
// notice or a hint on the right
func (m *Model) renderStatusBar() string {
	active := m.snap.Active()

	left := active.DisplayName()
	if active.FilePath == "" {
		left += styleSubtle.Render(" (not saved)")
	}
	if len(m.snap.Marks) > 0 {
		left += " " + styleTitle.Render("["+strings.Join(m.snap.Marks, " ")+"]")
	}
	if n := m.snap.ModifiedCount(); n > 0 {
		left += styleWarning.Render(fmt.Sprintf(" %d modified", n))
	}

	right := ""
	switch {
	case m.noticeVisible && m.snap.Notice.Error:
		right = styleError.Render(m.snap.Notice.Text)
	case m.noticeVisible:
		right = styleSuccess.Render(m.snap.Notice.Text)
	default:
		help := m.keybinds.GetBindingString(keybinds.ContextEditor, keybinds.ActionOpenHelp)
		right = styleSubtle.Render(help + " help")
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(left + strings.Repeat(" ", spacing) + right)
}

// updateViewport resizes the editor and viewports to the window
func (m *Model) updateViewport() {
	width := m.width - ViewportBorderWidth
	if width < 10 {
		width = 10
	}
	height := m.height - MainViewHeightOffset
	if m.mode == ModeFind && m.find.replacing {
		height -= 2
	} else if m.mode == ModeFind {
		height--
	}
	if height < 3 {
		height = 3
	}
	m.editor.SetWidth(width)
	m.editor.SetHeight(height)

	m.helpView.Width = m.width - HelpViewWidthOffset
	m.helpView.Height = m.height - ContentOffsetHelp
	m.updateHelpView()
}

// openHelp shows the key binding reference
func (m *Model) openHelp() {
	m.updateHelpView()
	m.helpView.GotoTop()
	m.mode = ModeHelp
	m.editor.Blur()
}

// updateHelpView lists the active bindings of every context
func (m *Model) updateHelpView() {
	var b strings.Builder
	for _, context := range keybinds.Contexts {
		bindings := m.keybinds.ListBindings(context)
		if len(bindings) == 0 {
			continue
		}
		b.WriteString(styleTitle.Render(strings.ToUpper(string(context))) + "\n")

		// one row per action with all of its keys
		var order []keybinds.Action
		keys := make(map[keybinds.Action][]string)
		for _, binding := range bindings {
			if _, seen := keys[binding.Action]; !seen {
				order = append(order, binding.Action)
			}
			keys[binding.Action] = append(keys[binding.Action], binding.Key)
		}
		for _, action := range order {
			b.WriteString(fmt.Sprintf("  %-28s %s\n",
				strings.Join(keys[action], ", "), keybinds.Description(action)))
		}
		b.WriteString("\n")
	}
	m.helpView.SetContent(b.String())
}

// renderHelp renders the help modal
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := "↑/↓ j/k: scroll | ESC/?: close"
	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width-ModalWidthMarginNarrow).
		Height(m.height-ModalHeightMarginMed).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
	)
}
