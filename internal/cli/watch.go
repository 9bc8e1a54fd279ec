package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kbecker/orwatch/internal/fingerprint"
	"github.com/kbecker/orwatch/internal/pushover"
	"github.com/kbecker/orwatch/internal/schedule"
	"github.com/kbecker/orwatch/internal/scraper"
	"github.com/kbecker/orwatch/internal/storage"
)

var (
	flagWatchPerson   string
	flagWatchInterval int
	flagWatchDataDir  string
	flagWatchURL      string
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the schedule and push notifications on change",
		Long: `Checks the schedule once immediately and then at a fixed interval.
When --person's resolved schedule changes between checks, a Pushover
notification is sent (requires PUSHOVER_APP_TOKEN and PUSHOVER_USER_KEY).`,
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&flagWatchPerson, "person", "", `Person to monitor (e.g. "Smith,J") (required)`)
	cmd.Flags().IntVar(&flagWatchInterval, "interval", cfg.IntervalMinutes, "Minutes between checks")
	cmd.Flags().StringVar(&flagWatchDataDir, "data-dir", cfg.DataDir, "Data directory for archives and change markers")
	cmd.Flags().StringVar(&flagWatchURL, "url", cfg.ScheduleURL, "Schedule page URL")

	cmd.MarkFlagRequired("person")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagWatchInterval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	log := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	store, err := storage.NewWithEncryption(flagWatchDataDir, cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	var notifier *pushover.Client
	if cfg.PushoverAppToken != "" && cfg.PushoverUserKey != "" {
		notifier, err = pushover.NewClient(cfg.PushoverAppToken, cfg.PushoverUserKey, cfg.PushoverDevice)
		if err != nil {
			return fmt.Errorf("initializing pushover: %w", err)
		}
	} else {
		log.Warn().Msg("pushover credentials not set, notifications disabled")
	}

	w := &watcher{
		scraper:  scraper.New(flagWatchURL),
		store:    store,
		detector: fingerprint.NewDetector(store),
		notifier: notifier,
		person:   flagWatchPerson,
		log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(flagWatchInterval) * time.Minute
	log.Info().Str("person", w.person).Dur("interval", interval).Msg("starting schedule watch")

	w.notify("🔔 Schedule Monitoring Started",
		fmt.Sprintf("<b>Now monitoring schedule for %s.</b>\n\nYou'll receive notifications when your schedule changes.", w.person), 0)

	w.runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping schedule watch")
			w.notify("🛑 Schedule Monitoring Stopped",
				fmt.Sprintf("<b>Monitoring for %s has been stopped.</b>", w.person), 0)
			return nil
		case <-ticker.C:
			w.runOnce()
		}
	}
}

// watcher holds the collaborators for one watch loop.
type watcher struct {
	scraper  *scraper.Scraper
	store    *storage.Storage
	detector *fingerprint.Detector
	notifier *pushover.Client
	person   string
	log      zerolog.Logger
}

// runOnce performs a single poll. Failures are logged and reported, never
// fatal: the loop keeps running until interrupted.
func (w *watcher) runOnce() {
	content, err := w.scraper.Fetch()
	if err != nil {
		w.log.Error().Err(err).Msg("fetch failed")
		w.notify("⚠️ Schedule Check Failed",
			fmt.Sprintf("<b>Error checking schedule for %s.</b>\n\n%s", w.person, err), 1)
		return
	}

	changed, err := w.detector.IsNovel(content)
	if err != nil {
		w.log.Error().Err(err).Msg("novelty check failed")
		return
	}

	snap, err := scraper.Parse(strings.NewReader(content))
	if err != nil {
		w.log.Error().Err(err).Msg("parse failed")
		return
	}

	assignment := schedule.Resolve(snap, w.person)
	w.log.Info().
		Bool("found", assignment.Found).
		Str("room", assignment.RoomAssignment).
		Int("cases", len(assignment.Cases)).
		Bool("content_changed", changed).
		Msg("schedule checked")

	w.notifyAssignment(assignment)

	if changed {
		if _, err := w.store.SaveHTML(content); err != nil {
			w.log.Error().Err(err).Msg("archiving html failed")
			return
		}
		if _, err := w.store.SaveSnapshot(snap); err != nil {
			w.log.Error().Err(err).Msg("archiving snapshot failed")
			return
		}
		if err := w.detector.Record(content); err != nil {
			w.log.Error().Err(err).Msg("recording fingerprint failed")
		}
	}
}

// notifyAssignment sends a notification when the person's rendered report
// differs from the last one seen. The first report for a person always
// notifies, at normal priority; subsequent changes notify at high priority.
func (w *watcher) notifyAssignment(assignment *schedule.Assignment) {
	report := schedule.Report(assignment)
	hash := fingerprint.Sum(report)

	last, err := w.store.LastReportHash(w.person)
	if err != nil {
		w.log.Error().Err(err).Msg("loading report hash failed")
		return
	}
	if last == hash {
		return
	}

	if last == "" {
		w.notify(pushover.FirstRunTitle(w.person), pushover.FormatAssignment(assignment), 0)
	} else {
		w.notify(pushover.UpdatedTitle(w.person), pushover.FormatAssignment(assignment), 1)
	}

	if err := w.store.SaveReportHash(w.person, hash); err != nil {
		w.log.Error().Err(err).Msg("saving report hash failed")
	}
}

func (w *watcher) notify(title, body string, priority int) {
	if w.notifier == nil {
		return
	}
	err := w.notifier.Send(pushover.Message{
		Title:    title,
		Body:     body,
		Priority: priority,
		HTML:     true,
	})
	if err != nil {
		w.log.Error().Err(err).Str("title", title).Msg("notification failed")
		return
	}
	w.log.Info().Str("title", title).Msg("notification sent")
}
