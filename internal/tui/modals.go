package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/inkpad/internal/guard"
	"github.com/studiowebux/inkpad/internal/keybinds"
)

// promptState is an open single line prompt
type promptState struct {
	label string
	input textinput.Model
	reply chan promptReply
}

func newPromptState(req promptRequestMsg) *promptState {
	ti := textinput.New()
	ti.CharLimit = 2048
	ti.Width = PromptInputWidth
	if req.initial != "" {
		ti.SetValue(req.initial)
		ti.CursorEnd()
	}
	return &promptState{
		label: req.label,
		input: ti,
		reply: req.reply,
	}
}

// renderConfirmModal renders the yes/no question
func (m *Model) renderConfirmModal() string {
	if m.confirm == nil {
		return m.renderMain()
	}

	title := "Confirm"
	style := styleWarning
	if m.confirm.kind == guard.KindInfo {
		style = styleTitle
	}

	yes := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm)
	no := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel)
	footer := "[" + yes + "] yes  [" + no + "] no"

	content := style.Render(wrapText(m.confirm.message, ConfirmModalWidth-ViewportPaddingHorizontal*2))
	return m.renderModalWithFooter(title, content, footer, ConfirmModalWidth, ConfirmModalHeight)
}

// renderPromptModal renders the text prompt
func (m *Model) renderPromptModal() string {
	if m.prompt == nil {
		return m.renderMain()
	}
	footer := "[enter] ok  [esc] cancel"
	return m.renderModalWithFooter(m.prompt.label, m.prompt.input.View(), footer, PromptModalWidth, PromptModalHeight)
}

// renderModal renders a modal dialog with scrollable content
func (m *Model) renderModal(title, content string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, "", width, height, -1)
}

// renderModalWithFooter renders a modal dialog with scrollable content and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal with footer and auto-scrolls to keep selectedLine visible.
// Pass selectedLine=-1 to preserve the existing scroll position.
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	maxWidth := m.width - ViewportPaddingHorizontal
	maxHeight := m.height - ModalHeightMarginSmall

	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}
	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	footerLines := 0
	if footer != "" {
		footerLines = ModalFooterLines
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = height - ModalOverheadMinimal - footerLines
		if contentHeight < 1 {
			contentHeight = 1
		}
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)

	if selectedLine >= 0 && m.modalView.Height > 0 {
		topVisible := savedOffset
		bottomVisible := savedOffset + m.modalView.Height - 1

		switch {
		case selectedLine < topVisible:
			m.modalView.SetYOffset(selectedLine)
		case selectedLine > bottomVisible:
			m.modalView.SetYOffset(selectedLine - m.modalView.Height + 1)
		default:
			m.modalView.SetYOffset(savedOffset)
		}
	} else {
		m.modalView.SetYOffset(savedOffset)
	}

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalBox,
	)
}

// wrapText breaks text into lines of at most width runes on word boundaries
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case lipgloss.Width(line)+1+lipgloss.Width(word) > width:
				out = append(out, line)
				line = word
			default:
				line += " " + word
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
