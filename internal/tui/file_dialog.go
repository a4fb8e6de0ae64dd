package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/inkpad/internal/fileio"
	"github.com/studiowebux/inkpad/internal/keybinds"
)

// dirEntry is one row of the file dialog
type dirEntry struct {
	name  string
	isDir bool
}

// fileDialog browses directories to pick a file to open or a path to
// save to. In open mode the input filters the listing; in save mode it
// holds the file name.
type fileDialog struct {
	save    bool
	filters []fileio.Filter
	dir     string
	entries []dirEntry
	index   int
	input   textinput.Model
	err     string
	reply   chan promptReply
}

func newFileDialog(req dialogRequestMsg) *fileDialog {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = PromptInputWidth

	d := &fileDialog{
		save:    req.save,
		filters: req.filters,
		input:   ti,
		reply:   req.reply,
	}

	dir, _ := os.Getwd()
	if req.save {
		d.input.Placeholder = "file name"
		if filepath.IsAbs(req.suggested) {
			dir = filepath.Dir(req.suggested)
		}
		d.input.SetValue(filepath.Base(req.suggested))
		d.input.CursorEnd()
	} else {
		d.input.Placeholder = "filter"
	}
	d.chdir(dir)
	return d
}

// chdir lists dir, keeping the previous directory on failure
func (d *fileDialog) chdir(dir string) {
	entries, err := listDir(dir, d.filters)
	if err != nil {
		d.err = err.Error()
		return
	}
	d.dir = dir
	d.entries = entries
	d.index = 0
	d.err = ""
}

// listDir returns the sub-directories of dir and the files matching
// filters, directories first. Hidden entries are skipped.
func listDir(dir string, filters []fileio.Filter) ([]dirEntry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var entries []dirEntry
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, dirEntry{name: "..", isDir: true})
	}

	var listed []dirEntry
	for _, item := range items {
		name := item.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case item.IsDir():
			listed = append(listed, dirEntry{name: name, isDir: true})
		case fileio.MatchesAny(filters, name):
			listed = append(listed, dirEntry{name: name})
		}
	}

	sort.Slice(listed, func(i, j int) bool {
		if listed[i].isDir != listed[j].isDir {
			return listed[i].isDir
		}
		return strings.ToLower(listed[i].name) < strings.ToLower(listed[j].name)
	})
	return append(entries, listed...), nil
}

// visible applies the open-mode filter
func (d *fileDialog) visible() []dirEntry {
	query := strings.TrimSpace(d.input.Value())
	if d.save || query == "" {
		return d.entries
	}
	return filterEntries(d.entries, query)
}

// filterEntries fuzzy matches entry names against query, best match first
func filterEntries(entries []dirEntry, query string) []dirEntry {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	matches := fuzzy.Find(query, names)
	out := make([]dirEntry, len(matches))
	for i, match := range matches {
		out[i] = entries[match.Index]
	}
	return out
}

func (d *fileDialog) selected() (dirEntry, bool) {
	visible := d.visible()
	if len(visible) == 0 {
		return dirEntry{}, false
	}
	return visible[clampIndex(d.index, len(visible))], true
}

// submit resolves the enter key. It returns the chosen path, or ok=false
// when the dialog stays open.
func (d *fileDialog) submit() (string, bool) {
	if d.save {
		name := strings.TrimSpace(d.input.Value())
		if name == "" {
			if entry, ok := d.selected(); ok && entry.isDir {
				d.enter(entry)
			}
			return "", false
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(d.dir, name)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			d.chdir(path)
			d.input.SetValue("")
			return "", false
		}
		return path, true
	}

	entry, ok := d.selected()
	if !ok {
		return "", false
	}
	if entry.isDir {
		d.enter(entry)
		d.input.SetValue("")
		return "", false
	}
	return filepath.Join(d.dir, entry.name), true
}

func (d *fileDialog) enter(entry dirEntry) {
	if entry.name == ".." {
		d.chdir(filepath.Dir(d.dir))
		return
	}
	d.chdir(filepath.Join(d.dir, entry.name))
}

// handleFileDialogKeys handles keyboard input in the open/save dialog
func (m *Model) handleFileDialogKeys(msg tea.KeyMsg) tea.Cmd {
	d := m.dialog
	if d == nil {
		return nil
	}

	if action, ok := m.keybinds.Match(keybinds.ContextPicker, msg.String()); ok {
		n := len(d.visible())
		switch action {
		case keybinds.ActionCancel:
			m.answerDialog("", false)
		case keybinds.ActionNavigateUp:
			d.index = moveIndex(d.index, -1, n)
		case keybinds.ActionNavigateDown:
			d.index = moveIndex(d.index, 1, n)
		case keybinds.ActionPageUp:
			d.index = moveIndex(d.index, -PickerPageSize, n)
		case keybinds.ActionPageDown:
			d.index = moveIndex(d.index, PickerPageSize, n)
		case keybinds.ActionSwitchField:
			if entry, ok := d.selected(); ok && d.save && !entry.isDir {
				d.input.SetValue(entry.name)
				d.input.CursorEnd()
			}
		case keybinds.ActionSubmit:
			if path, ok := d.submit(); ok {
				m.answerDialog(path, true)
			}
		case keybinds.ActionQuit:
			return m.quitFromModal()
		}
		return nil
	}

	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if !d.save && d.input.Value() != before {
		d.index = 0
	}
	return cmd
}

func (m *Model) answerDialog(path string, ok bool) {
	if m.dialog != nil {
		m.dialog.reply <- promptReply{value: path, ok: ok}
	}
	m.leaveBlocking()
}

// renderFileDialog renders the open/save dialog
func (m *Model) renderFileDialog() string {
	d := m.dialog
	if d == nil {
		return m.renderMain()
	}

	title := "Open File"
	footer := "[↑/↓] navigate  [enter] open  [esc] cancel"
	if d.save {
		title = "Save As"
		footer = "[↑/↓] navigate  [tab] use name  [enter] save  [esc] cancel"
	}

	visible := d.visible()
	selected := clampIndex(d.index, len(visible))

	var content strings.Builder
	content.WriteString(styleSubtle.Render(d.dir) + "\n")
	label := "Filter: "
	if d.save {
		label = "Name:   "
	}
	content.WriteString(label + d.input.View() + "\n")
	if d.err != "" {
		content.WriteString(styleError.Render(d.err))
	}
	content.WriteString("\n")

	for i, entry := range visible {
		name := entry.name
		if entry.isDir {
			name = styleDirectory.Render(name + "/")
		}
		if i == selected {
			content.WriteString(styleSelected.Render("> "+name) + "\n")
		} else {
			content.WriteString("  " + name + "\n")
		}
	}
	if len(visible) == 0 {
		content.WriteString(styleSubtle.Render("No matching files"))
	}

	// three header lines precede the list
	return m.renderModalWithFooterAndScroll(title, content.String(), footer,
		FileDialogWidth, FileDialogHeight, selected+3)
}
