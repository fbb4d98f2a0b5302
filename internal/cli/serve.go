package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pillpal/internal/adapters/notify/lognotify"
	shoutrrrnotify "pillpal/internal/adapters/notify/shoutrrr"
	"pillpal/internal/observability/metrics"
	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/notify"
	"pillpal/internal/reminders"
	"pillpal/internal/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(st *state) *cobra.Command {
	var noReminders bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := st.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := metrics.New(nil)
			if err != nil {
				return err
			}
			a.medinfo.WithRecorder(m)

			cfg := st.settings
			var sched *reminders.Scheduler
			if cfg.Reminders.Enabled && !noReminders {
				n, err := newNotifier(cfg.Notify.URLs, cfg.Notify.Timeout, st.log)
				if err != nil {
					return err
				}
				eval := reminders.NewEvaluator(reminders.Options{
					Source:      a.tracker,
					Notifier:    n,
					Permissions: a.repo,
					Icon:        cfg.Notify.Icon,
					Logger:      st.log,
					Recorder:    m,
				})
				sched, err = reminders.NewScheduler(eval, cfg.Reminders.Schedule, st.log)
				if err != nil {
					return err
				}
				if err := sched.Start(ctx); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr: cfg.Server.Addr,
				Handler: router.NewRouter(router.Options{
					Tracker: a.tracker,
					MedInfo: a.medinfo,
					Metrics: m,
					Logger:  st.log,
				}),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				st.log.Info("starting server", map[string]any{"addr": cfg.Server.Addr})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			var serveErr error
			select {
			case <-ctx.Done():
			case serveErr = <-errCh:
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				st.log.Warn("server shutdown", map[string]any{"error": err})
			}
			if sched != nil {
				if err := sched.Stop(shutdownCtx); err != nil {
					st.log.Warn("scheduler shutdown", map[string]any{"error": err})
				}
			}

			if serveErr != nil {
				return fmt.Errorf("server error: %w", serveErr)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", st.v.GetString("server.addr"), "HTTP listen address")
	cmd.Flags().BoolVar(&noReminders, "no-reminders", false, "Disable the reminder scheduler")
	_ = st.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// newNotifier usa shoutrrr si hay URLs; si no, escribe los avisos en el log.
func newNotifier(urls []string, timeout time.Duration, log logger.Logger) (notify.Notifier, error) {
	if len(urls) == 0 {
		log.Warn("no notify.urls configured; reminders are written to the log", nil)
		return lognotify.New(log), nil
	}
	n, err := shoutrrrnotify.New(urls, timeout)
	if err != nil {
		return nil, err
	}
	return n, nil
}
