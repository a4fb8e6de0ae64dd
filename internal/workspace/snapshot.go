package workspace

import (
	"fmt"

	"github.com/studiowebux/inkpad/internal/findreplace"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/tabs"
)

// Snapshot is an immutable copy of the workspace state for rendering
type Snapshot struct {
	Tabs     []tabs.Tab
	ActiveID tabs.ID
	Find     findreplace.Session
	Notice   Notice
	Recent   []string
	Marks    []string
	CanUndo  bool
	CanRedo  bool
	Closing  bool
}

// Active returns the active tab of the snapshot
func (s Snapshot) Active() tabs.Tab {
	for _, tab := range s.Tabs {
		if tab.ID == s.ActiveID {
			return tab
		}
	}
	if len(s.Tabs) > 0 {
		return s.Tabs[0]
	}
	return tabs.Tab{}
}

// BoundPaths lists the file paths of every bound tab
func (s Snapshot) BoundPaths() []string {
	var paths []string
	for _, tab := range s.Tabs {
		if tab.FilePath != "" {
			paths = append(paths, tab.FilePath)
		}
	}
	return paths
}

// ModifiedCount is the number of tabs with unsaved changes
func (s Snapshot) ModifiedCount() int {
	n := 0
	for _, tab := range s.Tabs {
		if tab.IsModified {
			n++
		}
	}
	return n
}

var markLabels = []struct {
	cmd   surface.Command
	attrs map[string]string
	label string
}{
	{surface.CmdBold, nil, "B"},
	{surface.CmdItalic, nil, "I"},
	{surface.CmdLink, nil, "link"},
	{surface.CmdHeading, map[string]string{"level": "1"}, "H1"},
	{surface.CmdHeading, map[string]string{"level": "2"}, "H2"},
	{surface.CmdHeading, map[string]string{"level": "3"}, "H3"},
	{surface.CmdHeading, map[string]string{"level": "4"}, "H4"},
	{surface.CmdHeading, map[string]string{"level": "5"}, "H5"},
	{surface.CmdHeading, map[string]string{"level": "6"}, "H6"},
	{surface.CmdBulletList, nil, "list"},
	{surface.CmdOrderedList, nil, "1."},
	{surface.CmdCodeBlock, nil, "code"},
}

// Snapshot copies the current state
func (w *Workspace) Snapshot() Snapshot {
	snap := Snapshot{
		Tabs:     w.registry.All(),
		ActiveID: w.registry.ActiveID(),
		Find:     w.find,
		Notice:   w.notice,
		CanUndo:  w.surface.CanUndo(),
		CanRedo:  w.surface.CanRedo(),
		Closing:  w.closing,
	}
	if w.recent != nil {
		snap.Recent = w.recent.Paths()
	}
	for _, m := range markLabels {
		if w.surface.IsActive(string(m.cmd), m.attrs) {
			snap.Marks = append(snap.Marks, m.label)
		}
	}
	return snap
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
