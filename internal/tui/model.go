package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/inkpad/internal/commands"
	"github.com/studiowebux/inkpad/internal/config"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/workspace"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFind
	ModeRecent
	ModeHelp
	ModeConfirm
	ModePrompt
	ModeFileDialog
)

// blocking reports whether the mode answers a request the event loop is
// waiting on
func (m Mode) blocking() bool {
	return m == ModeConfirm || m == ModePrompt || m == ModeFileDialog
}

// Model represents the TUI state. All workspace mutations are posted to
// the loop; the model only renders the latest snapshot.
type Model struct {
	loop       *workspace.Loop
	ws         *workspace.Workspace
	dispatcher *commands.Dispatcher
	buffer     *surface.Buffer
	keybinds   *keybinds.Registry
	settings   config.Settings

	mode Mode
	// returnMode is restored once a blocking request is answered
	returnMode Mode

	snap     workspace.Snapshot
	editor   textarea.Model
	revision uint64

	helpView  viewport.Model
	modalView viewport.Model

	confirm *confirmRequestMsg
	prompt  *promptState
	dialog  *fileDialog
	find    findForm
	recent  recentPicker

	// findClosing is set between closing the find bar and the loop
	// confirming it
	findClosing bool

	width  int
	height int

	noticeSeq     uint64
	noticeVisible bool
}

// Deps are the collaborators a Model drives
type Deps struct {
	Loop      *workspace.Loop
	Workspace *workspace.Workspace
	Buffer    *surface.Buffer
	Keybinds  *keybinds.Registry
	Settings  config.Settings
}

// NewModel creates a model showing the buffer's current document
func NewModel(deps Deps) *Model {
	editor := textarea.New()
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.ShowLineNumbers = true
	editor.Placeholder = "Start writing..."
	editor.Focus()

	m := &Model{
		loop:       deps.Loop,
		ws:         deps.Workspace,
		dispatcher: commands.New(deps.Workspace),
		buffer:     deps.Buffer,
		keybinds:   deps.Keybinds,
		settings:   deps.Settings,
		mode:       ModeNormal,
		editor:     editor,
		helpView:   viewport.New(80, 20),
		modalView:  viewport.New(80, 20),
	}
	m.reloadEditor()
	return m
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()
		return m, nil

	case snapshotMsg:
		return m, m.applySnapshot(workspace.Snapshot(msg))

	case reloadMsg:
		m.reloadEditor()
		return m, nil

	case confirmRequestMsg:
		m.enterBlocking(ModeConfirm)
		m.confirm = &msg
		return m, nil

	case promptRequestMsg:
		m.enterBlocking(ModePrompt)
		m.prompt = newPromptState(msg)
		return m, m.prompt.input.Focus()

	case dialogRequestMsg:
		m.enterBlocking(ModeFileDialog)
		m.dialog = newFileDialog(msg)
		return m, m.dialog.input.Focus()

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.noticeVisible = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == ModeNormal {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeConfirm:
		return m.renderConfirmModal()
	case ModePrompt:
		return m.renderPromptModal()
	case ModeFileDialog:
		return m.renderFileDialog()
	case ModeRecent:
		return m.renderRecentModal()
	default:
		return m.renderMain()
	}
}

// applySnapshot adopts the state published by the loop
func (m *Model) applySnapshot(snap workspace.Snapshot) tea.Cmd {
	m.snap = snap
	if snap.Closing {
		return tea.Quit
	}

	switch {
	case m.findClosing:
		m.findClosing = snap.Find.Open
	case snap.Find.Open && m.mode == ModeNormal:
		m.openFindForm(snap.Find)
	case snap.Find.Open && m.mode == ModeFind:
		m.find.sync(snap.Find)
	case !snap.Find.Open && m.mode == ModeFind:
		m.leaveModal()
	}
	m.updateViewport()

	if snap.Notice.Seq == m.noticeSeq {
		return nil
	}
	m.noticeSeq = snap.Notice.Seq
	m.noticeVisible = snap.Notice.Text != ""
	return m.scheduleNoticeClear(snap.Notice.Seq)
}

func (m *Model) scheduleNoticeClear(seq uint64) tea.Cmd {
	timeout := m.settings.StatusTimeout()
	if timeout <= 0 {
		return nil
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// reloadEditor loads the buffer into the text area, keeping the cursor on
// the same line when possible
func (m *Model) reloadEditor() {
	line := m.editor.Line()
	content, revision := m.buffer.View()
	m.editor.SetValue(content)
	m.revision = revision
	for m.editor.Line() > line {
		m.editor.CursorUp()
	}
	m.buffer.SetCursorLine(m.editor.Line())
}

// enterBlocking switches to a modal answering the loop
func (m *Model) enterBlocking(mode Mode) {
	if !m.mode.blocking() {
		m.returnMode = m.mode
	}
	m.mode = mode
	m.editor.Blur()
}

// leaveBlocking returns to the mode active before the request
func (m *Model) leaveBlocking() {
	m.confirm = nil
	m.prompt = nil
	m.dialog = nil
	m.mode = m.returnMode
	m.returnMode = ModeNormal
	if m.mode == ModeFind && !m.snap.Find.Open {
		m.mode = ModeNormal
	}
	if m.mode == ModeNormal {
		m.editor.Focus()
	}
}

// leaveModal closes a non-blocking modal
func (m *Model) leaveModal() {
	m.mode = ModeNormal
	m.find.blur()
	m.editor.Focus()
	m.updateViewport()
}

// post queues a job on the loop
func (m *Model) post(job workspace.Job) {
	m.loop.Post(job)
}

// Custom message types
type snapshotMsg workspace.Snapshot

type reloadMsg struct{}

type clearNoticeMsg struct {
	seq uint64
}
