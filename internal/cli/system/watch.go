package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/logger"
	"github.com/julianstephens/habitsync/internal/notifier"
	"github.com/julianstephens/habitsync/internal/scheduler"
	"github.com/julianstephens/habitsync/internal/streak"
)

// WatchCmd runs the reminder poller in the foreground until interrupted.
type WatchCmd struct {
	Console bool `help:"Print notifications to stdout instead of the tray app."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings; nothing to watch.")
		return nil
	}

	var sink notifier.Sink = notifier.NewDesktop()
	if c.Console {
		sink = notifier.NewConsole()
	}

	sched := scheduler.New(ctx.Store, sink, ctx.OwnerID)
	if settings.PollIntervalSec > 0 {
		sched.SetInterval(time.Duration(settings.PollIntervalSec) * time.Second)
	}
	if err := sched.Reload(); err != nil {
		return err
	}

	// Count today as active, and again on every day rollover while running.
	engine := streak.NewEngine(ctx.Store)
	if _, err := engine.Bootstrap(ctx.OwnerID, time.Now()); err != nil {
		return err
	}
	sched.OnDayRollover(func(now time.Time) {
		if _, err := engine.Bootstrap(ctx.OwnerID, now); err != nil {
			logger.Warn("Streak bootstrap on day rollover failed", "error", err)
		}
	})

	fmt.Printf("Watching %d medicine and %d water reminder(s). Press Ctrl+C to stop.\n",
		len(sched.MedicineReminders()), len(sched.WaterReminders()))

	sched.Start()
	defer sched.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopped.")
	return nil
}
