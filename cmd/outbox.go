package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/anmolrajas/portfolio/internal/config"
	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/storage"
)

const subjectWidth = 40

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "List contact submissions queued for delivery",
	Long: `Lists the contact form submissions held in the local outbox, oldest first.
Submissions are queued there when the contact transport is "outbox".`,
	Args: cobra.NoArgs,
	RunE: runOutboxList,
}

var outboxDropCmd = &cobra.Command{
	Use:   "drop <id>...",
	Short: "Remove submissions from the outbox",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOutboxDrop,
}

func init() {
	outboxCmd.AddCommand(outboxDropCmd)
	rootCmd.AddCommand(outboxCmd)
}

// openOutboxStore opens the configured SQLite store
func openOutboxStore() (*storage.SQLite, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		return nil, fmt.Errorf("the outbox needs the %q storage backend, configured backend is %q",
			config.BackendSQLite, cfg.Storage.Backend)
	}
	db, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening outbox: %w", err)
	}
	return db, nil
}

func runOutboxList(cmd *cobra.Command, args []string) error {
	db, err := openOutboxStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.Outbox()
	if err != nil {
		return err
	}
	printOutbox(os.Stdout, entries, time.Now())
	return nil
}

func runOutboxDrop(cmd *cobra.Command, args []string) error {
	db, err := openOutboxStore()
	if err != nil {
		return err
	}
	defer db.Close()

	return dropOutbox(os.Stdout, db, args)
}

// dropOutbox removes ids from db and reports how many were removed. Ids
// that are not queued are listed and make the command fail.
func dropOutbox(out io.Writer, db *storage.SQLite, ids []string) error {
	var removed int
	var missing []string
	for _, id := range ids {
		err := db.Remove(id)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, errors.KindNotFound):
			missing = append(missing, id)
		default:
			return err
		}
	}

	fmt.Fprintf(out, "Removed %s.\n", english.Plural(removed, "submission", ""))
	if len(missing) > 0 {
		return fmt.Errorf("not in the outbox: %s", strings.Join(missing, ", "))
	}
	return nil
}

// printOutbox writes entries as a table with queue ages relative to now
func printOutbox(out io.Writer, entries []storage.OutboxEntry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "The outbox is empty.")
		return
	}

	fmt.Fprintf(out, "%s queued:\n\n", english.Plural(len(entries), "submission", ""))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tSUBJECT\tQUEUED")
	for _, e := range entries {
		from := fmt.Sprintf("%s <%s>", e.SenderName, e.SenderEmail)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.ID,
			from,
			ansi.Truncate(e.Subject, subjectWidth, "…"),
			humanize.RelTime(e.QueuedAt, now, "ago", "from now"),
		)
	}
	w.Flush()
}
