package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiowebux/inkpad/internal/converter"
	"github.com/studiowebux/inkpad/internal/fileio"
	"github.com/studiowebux/inkpad/internal/findreplace"
	"github.com/studiowebux/inkpad/internal/guard"
	"github.com/studiowebux/inkpad/internal/logging"
	"github.com/studiowebux/inkpad/internal/recent"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/tabs"
	"github.com/studiowebux/inkpad/internal/types"
)

// ErrNoRecentFiles is returned by OpenMostRecent when the list is empty
var ErrNoRecentFiles = errors.New("no recent files")

// Prompter asks the user for a line of text. ok is false when cancelled.
type Prompter interface {
	Prompt(ctx context.Context, label, initial string) (value string, ok bool)
}

// Journal records document events
type Journal interface {
	Record(path string, action types.JournalAction, bytes int) error
}

// Notice is a transient status message
type Notice struct {
	Seq   uint64
	Text  string
	Error bool
	At    time.Time
}

// Options are the collaborators of a Workspace. Journal and Clipboard are
// optional.
type Options struct {
	Surface          surface.Surface
	Converter        converter.Converter
	FS               fileio.FS
	Dialogs          fileio.Dialogs
	Confirmer        guard.Confirmer
	Prompter         Prompter
	Recent           *recent.Store
	Journal          Journal
	Clipboard        func(text string) error
	DefaultExtension string
	Logger           zerolog.Logger
}

// Workspace owns the tab registry and keeps the shared editing surface in
// step with the active tab. It is not safe for concurrent use; every call
// is made from the Loop goroutine.
type Workspace struct {
	registry  *tabs.Registry
	guard     *guard.Guard
	surface   surface.Surface
	converter converter.Converter
	fs        fileio.FS
	dialogs   fileio.Dialogs
	prompter  Prompter
	recent    *recent.Store
	journal   Journal
	clipboard func(string) error
	extension string

	find    findreplace.Session
	notice  Notice
	closing bool

	// mounted is the tab whose content the surface currently shows
	mounted tabs.ID
	// written remembers the markdown last saved per path
	written map[string]string
}

// New creates a workspace with one empty tab mounted into the surface
func New(opts Options) *Workspace {
	w := &Workspace{
		registry:  tabs.NewRegistry(),
		guard:     guard.New(opts.Confirmer),
		surface:   opts.Surface,
		converter: opts.Converter,
		fs:        opts.FS,
		dialogs:   opts.Dialogs,
		prompter:  opts.Prompter,
		recent:    opts.Recent,
		journal:   opts.Journal,
		clipboard: opts.Clipboard,
		extension: opts.DefaultExtension,
		written:   make(map[string]string),
	}

	logger := opts.Logger
	w.registry.OnRepair(func(dangling, repaired tabs.ID) {
		logger.Warn().
			Stringer("dangling", dangling).
			Stringer("repaired", repaired).
			Msg("active tab pointer repaired")
	})

	w.mount()
	return w
}

// Registry exposes the tab registry for inspection
func (w *Workspace) Registry() *tabs.Registry {
	return w.registry
}

// Closing reports whether a close request was accepted
func (w *Workspace) Closing() bool {
	return w.closing
}

// NewTab creates a default tab and mounts it
func (w *Workspace) NewTab(ctx context.Context) {
	id := w.registry.Create()
	logging.FromContext(ctx).Debug().Stringer("tab", id).Msg("tab created")
	w.sync()
}

// CloseTab removes a tab after the guard agrees. Unknown ids are ignored.
func (w *Workspace) CloseTab(ctx context.Context, id tabs.ID) {
	tab := w.registry.Get(id)
	if tab == nil {
		return
	}
	if !w.guard.ConfirmDiscard(ctx, *tab) {
		return
	}

	w.registry.Close(id)
	logging.FromContext(ctx).Debug().Stringer("tab", id).Msg("tab closed")
	w.sync()
}

// CloseActive closes the active tab
func (w *Workspace) CloseActive(ctx context.Context) {
	w.CloseTab(ctx, w.registry.ActiveID())
}

// Activate switches to id. Activating the active tab changes nothing.
func (w *Workspace) Activate(id tabs.ID) {
	if w.registry.Activate(id) {
		w.sync()
	}
}

// CycleNext activates the following tab
func (w *Workspace) CycleNext() {
	if w.registry.CycleNext() {
		w.sync()
	}
}

// CyclePrevious activates the preceding tab
func (w *Workspace) CyclePrevious() {
	if w.registry.CyclePrevious() {
		w.sync()
	}
}

// ContentChanged records the surface's content into the active tab.
// Notifications that no longer match the surface were produced before the
// last mount and are dropped; mount already recorded their content.
func (w *Workspace) ContentChanged(ctx context.Context, content string) {
	if content != w.surface.Content() {
		logging.FromContext(ctx).Debug().Msg("stale content notification dropped")
		return
	}
	w.registry.UpdateContent(w.registry.ActiveID(), content)
	if w.find.Open {
		w.find.Recount(content)
	}
}

// OpenFile asks to discard the active tab, then for a path, then loads the
// file into the active tab. Choosing the active tab's own file reloads it
// from disk. A path open in another tab activates that tab and leaves the
// active tab untouched.
func (w *Workspace) OpenFile(ctx context.Context) error {
	active := w.registry.Active()
	if !w.guard.ConfirmDiscard(ctx, *active) {
		return nil
	}

	path, ok := w.dialogs.OpenFile(ctx, fileio.DocumentFilters)
	if !ok {
		return nil
	}
	path = absolute(path)

	if tab := w.registry.FindByPath(path); tab != nil && tab.ID != active.ID {
		w.Activate(tab.ID)
		return nil
	}
	return w.openInto(ctx, active.ID, path)
}

// OpenPath opens path into a new tab, reusing the active tab when it is
// pristine. Paths already open are activated instead.
func (w *Workspace) OpenPath(ctx context.Context, path string) error {
	path = absolute(path)
	if w.activateOpen(path) {
		return nil
	}

	rich, size, err := w.read(path)
	if err != nil {
		return err
	}

	id := w.registry.ActiveID()
	if !w.registry.Active().IsPristine() {
		id = w.registry.Create()
	}
	w.bind(ctx, id, path, rich, size)
	return nil
}

// OpenRecent loads a recent path into the active tab. A path that cannot
// be read is removed from the recent list.
func (w *Workspace) OpenRecent(ctx context.Context, path string) error {
	if w.activateOpen(path) {
		return w.remember(path)
	}

	active := w.registry.Active()
	if !w.guard.ConfirmDiscard(ctx, *active) {
		return nil
	}

	err := w.openInto(ctx, active.ID, path)
	if err != nil && !errors.Is(err, errConvert) {
		if rmErr := w.recent.Remove(path); rmErr != nil {
			logging.FromContext(ctx).Error().Err(rmErr).Msg("failed to update recent files")
		}
		logging.FromContext(ctx).Info().Str("path", path).Msg("unreadable recent file removed")
	}
	return err
}

// OpenMostRecent opens the first entry of the recent list
func (w *Workspace) OpenMostRecent(ctx context.Context) error {
	path, ok := w.recent.MostRecent()
	if !ok {
		return ErrNoRecentFiles
	}
	return w.OpenRecent(ctx, path)
}

// Save writes the active tab to its bound path, or falls through to SaveAs
func (w *Workspace) Save(ctx context.Context) error {
	active := w.registry.Active()
	if active.FilePath == "" {
		return w.SaveAs(ctx)
	}
	return w.saveTo(ctx, active.ID, active.FilePath)
}

// SaveAs asks for a path and writes the active tab there
func (w *Workspace) SaveAs(ctx context.Context) error {
	active := w.registry.Active()

	suggested := active.FilePath
	if suggested == "" {
		suggested = fileio.EnsureExtension(active.Title, w.extension)
	}

	path, ok := w.dialogs.SaveFile(ctx, fileio.DocumentFilters, suggested)
	if !ok || strings.TrimSpace(path) == "" {
		return nil
	}
	path = absolute(fileio.EnsureExtension(path, w.extension))
	return w.saveTo(ctx, active.ID, path)
}

// Exec runs an editing command on the surface
func (w *Workspace) Exec(ctx context.Context, cmd surface.Command, args ...string) {
	w.surface.Exec(cmd, args...)
	w.ContentChanged(ctx, w.surface.Content())
}

// InsertLink prompts for a URL and links the current line. An empty
// answer does nothing.
func (w *Workspace) InsertLink(ctx context.Context) {
	url, ok := w.prompter.Prompt(ctx, "Link URL", "https://")
	url = strings.TrimSpace(url)
	if !ok || url == "" || url == "https://" {
		return
	}
	w.Exec(ctx, surface.CmdLink, url)
}

// CopyMarkdown puts the active document on the clipboard as markdown
func (w *Workspace) CopyMarkdown(ctx context.Context) error {
	if w.clipboard == nil {
		return errors.New("clipboard unavailable")
	}
	md, err := w.converter.ToMarkdown(w.registry.Active().Content)
	if err != nil {
		return fmt.Errorf("failed to convert document: %w", err)
	}
	if err := w.clipboard(md); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	w.notify("Copied as markdown", false)
	return nil
}

// RequestClose is the window close request. It reports whether the
// application may exit.
func (w *Workspace) RequestClose(ctx context.Context) bool {
	if !w.guard.ConfirmQuit(ctx, w.registry.Modified()) {
		return false
	}
	w.closing = true
	return true
}

// ExternalChange reports a bound file modified outside the editor. Tab
// state is left alone.
func (w *Workspace) ExternalChange(ctx context.Context, change fileio.Change) {
	tab := w.registry.FindByPath(change.Path)
	if tab == nil {
		return
	}

	switch change.Kind {
	case fileio.ChangeRemoved:
		w.notify(fmt.Sprintf("%s was removed from disk", tab.DisplayName()), true)
	case fileio.ChangeWritten:
		if text, err := w.fs.ReadTextFile(change.Path); err == nil && text == w.written[change.Path] {
			return
		}
		w.notify(fmt.Sprintf("%s changed on disk", tab.DisplayName()), false)
	}
	logging.FromContext(ctx).Info().
		Str("path", change.Path).
		Str("kind", string(change.Kind)).
		Msg("external file change")
}

// Fail logs an operation error and shows it on the status line
func (w *Workspace) Fail(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	logging.FromContext(ctx).Error().Err(err).Str("op", op).Msg("operation failed")
	w.notify(fmt.Sprintf("%s: %v", op, err), true)
}

// Notify shows an informational status message
func (w *Workspace) Notify(text string) {
	w.notify(text, false)
}

func (w *Workspace) notify(text string, isError bool) {
	w.notice = Notice{
		Seq:   w.notice.Seq + 1,
		Text:  text,
		Error: isError,
		At:    time.Now(),
	}
}

// errConvert marks a file that was read but could not be converted
var errConvert = errors.New("conversion failed")

func (w *Workspace) read(path string) (string, int, error) {
	text, err := w.fs.ReadTextFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	rich, err := w.converter.FromMarkdown(text)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: %v", errConvert, path, err)
	}
	return rich, len(text), nil
}

func (w *Workspace) openInto(ctx context.Context, id tabs.ID, path string) error {
	rich, size, err := w.read(path)
	if err != nil {
		return err
	}
	w.bind(ctx, id, path, rich, size)
	return nil
}

// bind loads rich content into tab id as the file at path and mounts it
func (w *Workspace) bind(ctx context.Context, id tabs.ID, path, rich string, size int) {
	w.registry.Load(id, rich)
	w.registry.UpdateFileBinding(id, path, fileio.Title(path), false)
	w.registry.Activate(id)
	w.mount()

	if err := w.remember(path); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to update recent files")
	}
	w.record(ctx, path, types.JournalOpened, size)
	w.notify("Opened "+fileio.Title(path), false)
	logging.FromContext(ctx).Info().Str("path", path).Stringer("tab", id).Msg("file opened")
}

func (w *Workspace) saveTo(ctx context.Context, id tabs.ID, path string) error {
	tab := w.registry.Get(id)
	if tab == nil {
		return nil
	}

	md, err := w.converter.ToMarkdown(tab.Content)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", path, err)
	}
	if err := w.fs.WriteTextFile(path, md); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	w.written[path] = md

	w.registry.UpdateFileBinding(id, path, fileio.Title(path), false)
	if err := w.remember(path); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to update recent files")
	}
	w.record(ctx, path, types.JournalSaved, len(md))
	w.notify("Saved "+fileio.Title(path), false)
	logging.FromContext(ctx).Info().Str("path", path).Stringer("tab", id).Msg("file saved")
	return nil
}

// activateOpen activates the tab already bound to path, if any
func (w *Workspace) activateOpen(path string) bool {
	tab := w.registry.FindByPath(path)
	if tab == nil {
		return false
	}
	w.Activate(tab.ID)
	return true
}

func (w *Workspace) remember(path string) error {
	if w.recent == nil {
		return nil
	}
	return w.recent.Add(path)
}

func (w *Workspace) record(ctx context.Context, path string, action types.JournalAction, size int) {
	if w.journal == nil {
		return
	}
	if err := w.journal.Record(path, action, size); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", path).Msg("failed to record journal entry")
	}
}

// sync mounts the active tab when it is not the one on the surface
func (w *Workspace) sync() {
	if w.registry.ActiveID() != w.mounted {
		w.mount()
	}
}

// mount pushes the active tab into the surface, discarding the surface's
// undo history. When another tab is taking over the surface, typing whose
// change notification has not run yet is first recorded into the tab it
// was typed in.
func (w *Workspace) mount() {
	active := w.registry.Active()
	if active.ID != w.mounted {
		w.registry.UpdateContent(w.mounted, w.surface.Content())
	}
	w.surface.SetContent(active.Content)
	w.mounted = active.ID
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
