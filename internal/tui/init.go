package tui

import (
	"context"
	"errors"
	"io"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/inkpad/internal/config"
	"github.com/studiowebux/inkpad/internal/converter"
	"github.com/studiowebux/inkpad/internal/fileio"
	"github.com/studiowebux/inkpad/internal/history"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/logging"
	"github.com/studiowebux/inkpad/internal/recent"
	"github.com/studiowebux/inkpad/internal/session"
	"github.com/studiowebux/inkpad/internal/surface"
	"github.com/studiowebux/inkpad/internal/workspace"
)

// Options configure Run. Empty fields fall back to the settings file.
type Options struct {
	ConfigDir string
	LogFile   string
	LogLevel  string
	// Files are opened into tabs at startup
	Files []string
}

// Run starts the editor and blocks until it quits
func Run(opts Options) error {
	if err := config.Initialize(opts.ConfigDir); err != nil {
		return err
	}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(opts, settings)
	if err != nil {
		return err
	}
	defer closer.Close()

	mgr := session.NewManagerAt(config.GetSessionFilePath())
	if err := mgr.Load(); err != nil {
		return err
	}
	recentStore, err := recent.New(mgr, session.RecentFilesKey)
	if err != nil {
		return err
	}

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		logger.Warn().Err(err).Msg("using default key bindings")
		registry = keybinds.NewDefaultRegistry()
	}

	var journal workspace.Journal
	if settings.JournalEnabled {
		hist, err := history.NewManager(config.DatabasePath)
		if err != nil {
			logger.Error().Err(err).Str("path", config.DatabasePath).Msg("document journal disabled")
		} else {
			defer hist.Close()
			journal = hist
		}
	}

	buffer := surface.NewBuffer()
	questions := &bridge{}
	ws := workspace.New(workspace.Options{
		Surface:          buffer,
		Converter:        converter.NewMarkdown(),
		FS:               fileio.Disk{},
		Dialogs:          questions,
		Confirmer:        questions,
		Prompter:         questions,
		Recent:           recentStore,
		Journal:          journal,
		Clipboard:        clipboard.WriteAll,
		DefaultExtension: settings.DefaultExtension,
		Logger:           logger,
	})
	loop := workspace.NewLoop(ws)

	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	model := NewModel(Deps{
		Loop:      loop,
		Workspace: ws,
		Buffer:    buffer,
		Keybinds:  registry,
		Settings:  settings,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
	questions.send = p.Send

	buffer.OnChange(func(content string) {
		loop.Post(func(ctx context.Context) {
			ws.ContentChanged(ctx, content)
		})
	})
	buffer.OnReload(func() {
		p.Send(reloadMsg{})
	})

	var watcher *fileio.Watcher
	if settings.WatchFiles {
		watcher, err = fileio.NewWatcher(logger)
		if err != nil {
			logger.Error().Err(err).Msg("file watcher disabled")
			watcher = nil
		}
	}
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
		g.Go(func() error {
			for change := range watcher.Changes() {
				change := change
				loop.Post(func(ctx context.Context) {
					ws.ExternalChange(ctx, change)
				})
			}
			return nil
		})
	}

	g.Go(func() error {
		return loop.Run(gctx, func(snap workspace.Snapshot) {
			if watcher != nil {
				watcher.Sync(snap.BoundPaths())
			}
			p.Send(snapshotMsg(snap))
		})
	})

	for _, path := range opts.Files {
		path := path
		loop.Post(func(ctx context.Context) {
			if err := ws.OpenPath(ctx, path); err != nil {
				ws.Fail(ctx, "Open "+fileio.Title(path), err)
			}
		})
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	logger.Info().Int("files", len(opts.Files)).Msg("editor started")
	err = g.Wait()
	logger.Info().Err(err).Msg("editor stopped")
	return err
}

// openLogger applies flag overrides on top of the settings
func openLogger(opts Options, settings config.Settings) (zerolog.Logger, io.Closer, error) {
	level := opts.LogLevel
	if level == "" {
		level = settings.LogLevel
	}
	path := opts.LogFile
	if path == "" {
		path = config.LogFile
	}
	return logging.New(logging.Options{Path: path, Level: level})
}
