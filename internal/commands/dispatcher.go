// Package commands routes keyboard actions to workspace operations.
package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/logging"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/workspace"
)

// Dispatcher runs one workspace operation per action. It holds no state of
// its own; everything it needs is read from the workspace at dispatch time.
type Dispatcher struct {
	ws *workspace.Workspace
}

// New creates a dispatcher over ws
func New(ws *workspace.Workspace) *Dispatcher {
	return &Dispatcher{ws: ws}
}

var formatting = map[keybinds.Action]surface.Command{
	keybinds.ActionBold:        surface.CmdBold,
	keybinds.ActionItalic:      surface.CmdItalic,
	keybinds.ActionCodeBlock:   surface.CmdCodeBlock,
	keybinds.ActionBulletList:  surface.CmdBulletList,
	keybinds.ActionOrderedList: surface.CmdOrderedList,
	keybinds.ActionParagraph:   surface.CmdParagraph,
	keybinds.ActionUndo:        surface.CmdUndo,
	keybinds.ActionRedo:        surface.CmdRedo,
}

// Handles reports whether Run knows action
func Handles(action keybinds.Action) bool {
	if _, ok := formatting[action]; ok {
		return true
	}
	if _, ok := keybinds.HeadingLevel(action); ok {
		return true
	}
	switch action {
	case keybinds.ActionNewDocument, keybinds.ActionNewTab, keybinds.ActionCloseTab,
		keybinds.ActionOpenFile, keybinds.ActionOpenMostRecent, keybinds.ActionSave,
		keybinds.ActionSaveAs, keybinds.ActionCycleNext, keybinds.ActionCyclePrevious,
		keybinds.ActionInsertLink, keybinds.ActionOpenFind, keybinds.ActionOpenFindRepl,
		keybinds.ActionCopyMarkdown, keybinds.ActionQuit:
		return true
	}
	return false
}

// Run performs action. Failures are logged and reported on the status
// line. Unknown actions are ignored.
func (d *Dispatcher) Run(ctx context.Context, action keybinds.Action) {
	logging.FromContext(ctx).Debug().Str("action", string(action)).Msg("dispatch")

	if err := d.run(ctx, action); err != nil {
		if errors.Is(err, workspace.ErrNoRecentFiles) {
			d.ws.Notify("No recent files")
			return
		}
		d.ws.Fail(ctx, keybinds.Description(action), err)
	}
}

func (d *Dispatcher) run(ctx context.Context, action keybinds.Action) error {
	if cmd, ok := formatting[action]; ok {
		d.ws.Exec(ctx, cmd)
		return nil
	}
	if level, ok := keybinds.HeadingLevel(action); ok {
		d.ws.Exec(ctx, surface.CmdHeading, strconv.Itoa(level))
		return nil
	}

	switch action {
	case keybinds.ActionNewDocument, keybinds.ActionNewTab:
		d.ws.NewTab(ctx)
	case keybinds.ActionCloseTab:
		d.ws.CloseActive(ctx)
	case keybinds.ActionOpenFile:
		return d.ws.OpenFile(ctx)
	case keybinds.ActionOpenMostRecent:
		return d.ws.OpenMostRecent(ctx)
	case keybinds.ActionSave:
		return d.ws.Save(ctx)
	case keybinds.ActionSaveAs:
		return d.ws.SaveAs(ctx)
	case keybinds.ActionCycleNext:
		d.ws.CycleNext()
	case keybinds.ActionCyclePrevious:
		d.ws.CyclePrevious()
	case keybinds.ActionInsertLink:
		d.ws.InsertLink(ctx)
	case keybinds.ActionOpenFind:
		d.ws.OpenFind(false)
	case keybinds.ActionOpenFindRepl:
		d.ws.OpenFind(true)
	case keybinds.ActionCopyMarkdown:
		return d.ws.CopyMarkdown(ctx)
	case keybinds.ActionQuit:
		d.ws.RequestClose(ctx)
	}
	return nil
}
