package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anmolrajas/portfolio/internal/config"
	"github.com/anmolrajas/portfolio/internal/logger"
	"github.com/anmolrajas/portfolio/internal/storage"
	"github.com/anmolrajas/portfolio/internal/theme"
)

var skipConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored theme preference and remove the debug log",
	Long: `Deletes the stored light/dark preference, so the next run starts with the
light theme, and removes the debug log file.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("error opening storage: %w", err)
	}
	defer kv.Close()

	return resetWithReader(kv, os.Stdin, os.Stdout)
}

// resetWithReader allows injecting a reader for testing
func resetWithReader(kv storage.KV, input io.Reader, out io.Writer) error {
	_, hasPref, err := kv.Get(theme.StorageKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error reading theme preference: %v\n", err)
	}
	_, statErr := os.Stat(logger.Path())
	hasLog := statErr == nil

	if !hasPref && !hasLog {
		fmt.Fprintln(out, "Nothing to reset.")
		return nil
	}

	fmt.Fprintln(out, "This will remove:")
	if hasPref {
		fmt.Fprintln(out, "  - the stored theme preference")
	}
	if hasLog {
		fmt.Fprintf(out, "  - the debug log at %s\n", logger.Path())
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if hasPref {
		if err := kv.Delete(theme.StorageKey); err != nil {
			return fmt.Errorf("error deleting theme preference: %w", err)
		}
	}
	if hasLog {
		logger.Close()
		if _, err := logger.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error removing log: %v\n", err)
		}
	}

	fmt.Fprintln(out, "Reset complete.")
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
