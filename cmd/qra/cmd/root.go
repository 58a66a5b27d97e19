package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iiroan/qra/internal/config"
	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/overlay"
	"github.com/iiroan/qra/internal/persist"
	"github.com/iiroan/qra/internal/ui"
)

var (
	verbose bool
	quiet   bool
	noColor bool
	noHost  bool
	cfgFile string
	dataDir string
	theme   string
	replies []string
	logger  *log.Logger
	app     *session
)

// session is one running overlay attached to the terminal host.
type session struct {
	plugin    *overlay.Plugin
	host      *ui.Host
	doc       *config.HostDocument
	store     *persist.FileStore
	hostError error
}

var rootCmd = &cobra.Command{
	Use:   "qra",
	Short: "Quick-reply overlay settings and preview",
	Long: `qra manages the quick-reply overlay: a compact button that replaces the
host's quick-reply bar and opens a styled reply menu.

Run without arguments for the interactive settings menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.ApplyPreferences(ui.Preferences{Theme: theme, NoColor: noColor || os.Getenv("NO_COLOR") != ""})
		setupLogger()

		switch cmd.Name() {
		case "version", "help", "usage", "completion":
			return nil
		}
		app = openSession()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRootTUI()
		}
		return cmd.Help()
	},
}

func openSession() *session {
	dir := resolveDataDir()
	s := &session{
		host:  ui.NewHost(replies, icon.HostColors{Text: string(ui.Foreground), Primary: true, OK: true}),
		store: persist.NewFileStore(persist.DefaultStorePath(dir)),
	}

	opts := overlay.Options{
		Store:    s.store,
		Surfaces: s.host.Surfaces(),
		Logger:   logger,
	}

	var inMemory map[string]any
	if !noHost {
		path := cfgFile
		if path == "" {
			path = config.GetConfigPath(dir)
		}
		s.doc = config.NewHostDocument(path, config.Namespace)
		raw, err := s.doc.Load()
		if err != nil {
			logger.Warn("could not load host settings, using fallback copy", "error", err)
			s.hostError = err
		}
		inMemory = raw
		opts.Primary = s.doc
	}

	s.plugin = overlay.New(opts)
	s.plugin.Start(inMemory)
	return s
}

func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	return config.DataDir()
}

func runRootTUI() error {
	last := ""
	for {
		choice, err := ui.RunMenuWithOptions("SETTINGS", "Choose a section to edit", settingsMenuItems(),
			ui.WithSelected(last),
			ui.WithInfo(sessionInfo()...),
			ui.WithPreview(sectionPreview),
		)
		if err != nil {
			if errors.Is(err, ui.ErrNonInteractive) {
				return runRootFallback()
			}
			return err
		}

		if choice == ui.MenuActionQuit || choice == "exit" || choice == "" {
			return nil
		}
		last = choice

		if err := runSettingsChoice(choice); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}

		if err := waitForEnter("Press enter to return to settings"); err != nil {
			return err
		}
	}
}

func runRootFallback() error {
	var choice string
	options := make([]huh.Option[string], 0, len(settingsMenuItems()))
	for _, item := range settingsMenuItems() {
		options = append(options, huh.NewOption(item.TitleText, item.ID))
	}
	err := huh.NewSelect[string]().
		Title("qra settings").
		Description("What would you like to change?").
		Options(options...).
		Value(&choice).
		WithTheme(ui.HuhTheme()).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if choice == "exit" {
		return nil
	}
	return runSettingsChoice(choice)
}

func sessionInfo() []ui.InfoLine {
	cfg := app.plugin.Config()
	hostPath := "disabled"
	if app.doc != nil {
		hostPath = app.doc.Path()
	}
	return []ui.InfoLine{
		{Label: "State", Value: app.plugin.State().String()},
		{Label: "Icon", Value: cfg.Icon.Kind.Label()},
		{Label: "Host", Value: hostPath},
		{Label: "Fallback", Value: app.store.Path()},
	}
}

func waitForEnter(prompt string) error {
	if !ui.IsInteractiveTerminal() {
		return nil
	}
	fmt.Println()
	fmt.Println(ui.HintStyle.Render(prompt))
	reader := bufio.NewReader(os.Stdin)
	_, err := reader.ReadString('\n')
	return err
}

// printOverlay draws the host with the overlay and the latest status.
func printOverlay() {
	fmt.Println(app.host.Render())
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noHost, "no-host", false, "Run without the host save capability (fallback store only)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Host settings document (default: <data dir>/settings.yaml or $QRA_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: $QRA_DATA_DIR or the platform data dir)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "Terminal palette: graphite, ember or mono")
	rootCmd.PersistentFlags().StringSliceVar(&replies, "reply", []string{"Continue", "Summarize", "Rewrite"}, "Quick replies shown by the host")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(iconCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	logger.SetStyles(levelStyles())
}

// levelStyles colors log levels with the active palette.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	if !noColor && os.Getenv("NO_COLOR") == "" {
		styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
			SetString("DEBUG").
			Foreground(ui.Muted).
			Bold(true)
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
			SetString("INFO").
			Foreground(ui.Primary).
			Bold(true)
		styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
			SetString("WARN").
			Foreground(ui.Warning).
			Bold(true)
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
			SetString("ERROR").
			Foreground(ui.Error).
			Bold(true)
	}
	return styles
}
