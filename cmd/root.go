package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/anmolrajas/portfolio/internal/app"
	"github.com/anmolrajas/portfolio/internal/config"
	"github.com/anmolrajas/portfolio/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	logFile               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Terminal portfolio with a chat assistant and contact form",
	Long: `Portfolio renders a developer portfolio in the terminal. The header tracks
the section in view, the theme toggles between light and dark and persists
across runs, a chat assistant answers questions, and the contact form
delivers messages to the owner.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.portfolio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Debug log file (default "+logger.DefaultLogPath+")")
}

func initConfig() {
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("portfolio %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("portfolio %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	m := app.New(rt.Options())
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
