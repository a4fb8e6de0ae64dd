package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/studiowebux/inkpad/internal/config"
	"github.com/studiowebux/inkpad/internal/history"
	"github.com/studiowebux/inkpad/internal/keybinds"
	"github.com/studiowebux/inkpad/internal/recent"
	"github.com/studiowebux/inkpad/internal/session"
	"github.com/studiowebux/inkpad/internal/tui"
)

var (
	version = "0.1.0"
)

var (
	flagConfigDir string
	flagLogFile   string
	flagLogLevel  string
	flagLimit     int
	flagDefaults  bool
	flagOutput    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "inkpad [files...]",
	Short: "inkpad - multi-tab markdown editor for the terminal",
	Long: `inkpad edits several markdown documents in tabs and warns before
unsaved changes are lost.

Examples:
  inkpad                         # Start with an empty document
  inkpad notes.md todo.md        # Open files into tabs
  inkpad recent list             # Show recently opened files
  inkpad keybinds export         # Print the active key bindings`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(tui.Options{
			ConfigDir: flagConfigDir,
			LogFile:   flagLogFile,
			LogLevel:  flagLogLevel,
			Files:     args,
		})
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Inspect the recent-files list",
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print recent files, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRecent()
		if err != nil {
			return err
		}
		for _, path := range store.Paths() {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recent file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRecent()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Recent files cleared")
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the document journal (opens and saves)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(flagConfigDir); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		hist, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer hist.Close()

		entries, err := hist.List(flagLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tBYTES\tPATH")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, e.Bytes, e.Path)
		}
		return w.Flush()
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Export or validate key binding overrides",
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the active key bindings as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *keybinds.Config
		if flagDefaults {
			cfg = keybinds.ExportDefaults()
		} else {
			if err := config.Initialize(flagConfigDir); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
			if err != nil {
				return err
			}
			cfg = keybinds.ExportConfig(registry)
		}

		if flagOutput != "" {
			if err := keybinds.SaveConfig(cfg, flagOutput); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key bindings written to %s\n", flagOutput)
			return nil
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode key bindings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var keybindsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a key binding file for conflicts and unknown actions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			if err := config.Initialize(flagConfigDir); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			path = config.KeybindsFile
		}

		cfg, err := keybinds.LoadConfig(path)
		if err != nil {
			return err
		}
		result := keybinds.NewValidator().ValidateConfig(cfg)
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("%s has %d error(s)", path, len(result.Errors))
		}
		return nil
	},
}

func openRecent() (*recent.Store, error) {
	if err := config.Initialize(flagConfigDir); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	mgr := session.NewManagerAt(config.GetSessionFilePath())
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	return recent.New(mgr, session.RecentFilesKey)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Configuration directory (default ~/.inkpad)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log file (default <config-dir>/inkpad.log)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 50, "Maximum number of entries")

	keybindsExportCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Export the built-in bindings instead of the active ones")
	keybindsExportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to a file instead of stdout")

	recentCmd.AddCommand(recentListCmd, recentClearCmd)
	keybindsCmd.AddCommand(keybindsExportCmd, keybindsValidateCmd)
	rootCmd.AddCommand(recentCmd, historyCmd, keybindsCmd)
}
