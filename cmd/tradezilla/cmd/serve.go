package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/internal/coach"
	"github.com/rustyeddy/tradezilla/internal/cronrunner"
	"github.com/rustyeddy/tradezilla/internal/server"
	"github.com/rustyeddy/tradezilla/notify"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API and scheduled jobs",
	Long: `Serve the journal over HTTP (server.addr) and, when cron.enabled is set,
run two scheduled jobs:

  notify-digest  logs the current notifications (cron.notify_spec)
  weekly-review  logs an AI coach weekly review (cron.review_spec)

The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.coach()
	if err != nil {
		return err
	}
	if a.cfg.AI.APIKey == "" {
		a.log.Warn("ai.api_key not set, coach requests will fail", zap.String("provider", a.cfg.AI.Provider))
	}

	if a.cfg.Cron.Enabled {
		runner := cronrunner.New(a.log, ctx, a.loc)
		if err := scheduleJobs(runner, a, c); err != nil {
			return err
		}
		runner.Start()
		defer runner.Stop()
	}

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := &server.Server{
		Journal: a.journal,
		Coach:   c,
		Notify:  a.notifyOptions(),
		Logger:  a.log,
		Now:     a.now,
	}
	return srv.Run(ctx, addr, a.cfg.Server.Mode)
}

func scheduleJobs(r *cronrunner.Runner, a *app, c *coach.Coach) error {
	_, err := r.Add("notify-digest", a.cfg.Cron.NotifySpec, func(ctx context.Context) {
		notices := notify.Derive(a.now(), a.journal.Trades(), a.notifyOptions())
		for _, n := range notices {
			a.log.Info("notification",
				zap.String("id", n.ID),
				zap.String("type", string(n.Kind)),
				zap.String("title", n.Title),
				zap.String("description", n.Description),
			)
		}
		a.log.Debug("notify digest done", zap.Int("count", len(notices)))
	})
	if err != nil {
		return fmt.Errorf("schedule notify-digest: %w", err)
	}

	_, err = r.Add("weekly-review", a.cfg.Cron.ReviewSpec, func(ctx context.Context) {
		reply := c.WeeklyReview(ctx, a.journal.Trades(), a.now())
		if reply.Err != nil {
			a.log.Warn("weekly review failed", zap.Error(reply.Err))
			return
		}
		a.log.Info("weekly review", zap.String("text", reply.Text))
	})
	if err != nil {
		return fmt.Errorf("schedule weekly-review: %w", err)
	}
	return nil
}
