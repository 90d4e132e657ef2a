package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barysiuk/skillmgr/internal/logger"
	"github.com/barysiuk/skillmgr/internal/tui"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "skillmgr",
	Short: "Enable, disable and organise agent skills in a project",
	Long: `skillmgr manages the skills of a Claude Code or Codex project.

Skills live in <root>/skills (enabled) and <root>/disabled-skills (disabled),
where <root> is the project's .claude or .codex directory. When installed
inside such a directory skillmgr manages it; otherwise use --root or save a
project with 'skillmgr project set'.

Run without a subcommand to open the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetLogFormat(viper.GetString("log_format"))
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return fmt.Errorf("invalid log level %q: %w", viper.GetString("log_level"), err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		// The interface owns the terminal, so logs go to a file.
		logPath := d.manager.Settings().LogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()
		logger.SetLogOutput(logFile)

		p := tea.NewProgram(tui.NewApp(d.manager), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("running interface: %w", err)
		}
		if app, ok := final.(tui.App); ok {
			app.Close()
			if app.LaunchedPath() != "" {
				fmt.Printf("Started %s\n", app.LaunchedPath())
			}
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skillmgr %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	viper.SetEnvPrefix("SKILLMGR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "fmt")

	rootCmd.PersistentFlags().String("root", "", "Agent root to manage, e.g. ./.claude (env SKILLMGR_ROOT)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error (env SKILLMGR_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format: fmt or json (env SKILLMGR_LOG_FORMAT)")
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
