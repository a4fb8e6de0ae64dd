package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/inkpad/internal/commands"
	"github.com/studiowebux/inkpad/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeFileDialog:
		return m.handleFileDialogKeys(msg)
	case ModeFind:
		return m.handleFindKeys(msg)
	case ModeRecent:
		return m.handleRecentKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}
	return m.handleEditorKeys(msg)
}

// handleEditorKeys runs bound chords and hands everything else to the
// text area
func (m *Model) handleEditorKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextEditor, msg.String()); ok {
		return m.runAction(action)
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		if !m.buffer.InputAt(m.revision, after) {
			// typed against a view the loop already replaced
			m.reloadEditor()
		}
	}
	m.buffer.SetCursorLine(m.editor.Line())
	return cmd
}

// runAction performs an editor action. View-only actions are handled
// here; the rest go through the loop.
func (m *Model) runAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionOpenHelp:
		m.openHelp()
		return nil
	case keybinds.ActionOpenRecent:
		m.openRecentPicker()
		return nil
	}

	if !commands.Handles(action) {
		return nil
	}
	d := m.dispatcher
	m.post(func(ctx context.Context) {
		d.Run(ctx, action)
	})
	return nil
}

// quitFromModal answers a pending request negatively and asks to quit
func (m *Model) quitFromModal() tea.Cmd {
	m.cancelBlocking()
	switch m.mode {
	case ModeFind:
		m.closeFind()
	case ModeRecent, ModeHelp:
		m.leaveModal()
	}
	return m.runAction(keybinds.ActionQuit)
}

// cancelBlocking declines whichever request is open
func (m *Model) cancelBlocking() {
	switch m.mode {
	case ModeConfirm:
		m.answerConfirm(false)
	case ModePrompt:
		m.answerPrompt("", false)
	case ModeFileDialog:
		m.answerDialog("", false)
	}
}

// handleConfirmKeys handles keyboard input in the confirmation modal
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}
	switch action {
	case keybinds.ActionConfirm:
		m.answerConfirm(true)
	case keybinds.ActionCancel:
		m.answerConfirm(false)
	case keybinds.ActionQuit:
		return m.quitFromModal()
	}
	return nil
}

func (m *Model) answerConfirm(yes bool) {
	if m.confirm != nil {
		m.confirm.reply <- yes
	}
	m.leaveBlocking()
}

// handlePromptKeys handles keyboard input in the text prompt
func (m *Model) handlePromptKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextPrompt, msg.String()); ok {
		switch action {
		case keybinds.ActionSubmit:
			m.answerPrompt(m.prompt.input.Value(), true)
			return nil
		case keybinds.ActionCancel:
			m.answerPrompt("", false)
			return nil
		case keybinds.ActionQuit:
			return m.quitFromModal()
		}
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

func (m *Model) answerPrompt(value string, ok bool) {
	if m.prompt != nil {
		m.prompt.reply <- promptReply{value: value, ok: ok}
	}
	m.leaveBlocking()
}

// handleHelpKeys handles keyboard input in the help viewer
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}
	switch action {
	case keybinds.ActionCloseModal:
		m.leaveModal()
	case keybinds.ActionNavigateUp:
		m.helpView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.helpView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.helpView.PageUp()
	case keybinds.ActionPageDown:
		m.helpView.PageDown()
	case keybinds.ActionQuit:
		m.leaveModal()
		return m.runAction(keybinds.ActionQuit)
	}
	return nil
}
