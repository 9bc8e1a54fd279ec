package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kbecker/orwatch/internal/config"
	"github.com/kbecker/orwatch/internal/fingerprint"
	"github.com/kbecker/orwatch/internal/schedule"
	"github.com/kbecker/orwatch/internal/scraper"
	"github.com/kbecker/orwatch/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitChanged = 2
)

var (
	cfg config.Config

	flagPerson  string
	flagDataDir string
	flagURL     string
	flagFormat  string
	flagNoSave  bool
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg = config.Load()

	cmd := &cobra.Command{
		Use:   "orwatch",
		Short: "Track the daily OR assignments schedule",
		Long: `Fetches the daily assignments page, detects whether its content changed
since the last run, and extracts the personnel and procedure schedules.
With --person, additionally resolves that person's room and case list.`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagPerson, "person", "", `Person to resolve assignments for (e.g. "Smith,J")`)
	cmd.Flags().StringVar(&flagDataDir, "data-dir", cfg.DataDir, "Data directory for archives and change markers")
	cmd.Flags().StringVar(&flagURL, "url", cfg.ScheduleURL, "Schedule page URL")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not archive the fetched schedule or record its fingerprint")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newWatchCmd())

	return cmd
}

// runCheck is the main command logic.
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	log := newConsoleLogger(flagVerbose)

	store, err := storage.NewWithEncryption(flagDataDir, cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc := scraper.New(flagURL)
	log.Debug().Str("url", sc.URL()).Msg("fetching schedule")

	content, err := sc.Fetch()
	if err != nil {
		return err
	}

	detector := fingerprint.NewDetector(store)
	changed, err := detector.IsNovel(content)
	if err != nil {
		return err
	}

	snap, err := scraper.Parse(strings.NewReader(content))
	if err != nil {
		return err
	}
	log.Debug().
		Int("groups", len(snap.PersonnelSchedule)).
		Int("rooms", len(snap.ProcedureSchedule)).
		Bool("changed", changed).
		Msg("parsed schedule")

	result := &Result{
		CheckedAt: snap.ParsedAt,
		Changed:   changed,
		Snapshot:  snap,
	}
	if flagPerson != "" {
		result.Assignment = schedule.Resolve(snap, flagPerson)
	}

	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Archive only novel content, and record the fingerprint only after the
	// parse and archive succeeded.
	if changed && !flagNoSave {
		htmlPath, err := store.SaveHTML(content)
		if err != nil {
			return err
		}
		jsonPath, err := store.SaveSnapshot(snap)
		if err != nil {
			return err
		}
		if err := detector.Record(content); err != nil {
			return err
		}
		log.Debug().Str("html", htmlPath).Str("json", jsonPath).Msg("archived schedule")
	}

	if changed {
		os.Exit(ExitChanged)
	}
	os.Exit(ExitSuccess)
	return nil
}

// newConsoleLogger builds the human-oriented logger used by one-shot checks.
// Watch mode uses a JSON logger instead.
func newConsoleLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
