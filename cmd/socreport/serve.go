package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	socreport "github.com/goliatone/go-socreport"
	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/server"
	"github.com/goliatone/go-socreport/pkg/session"
	"github.com/goliatone/go-socreport/pkg/store"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser editor",
		Long: `Serve starts the report editor on the configured address. Each browser
session edits its own report; nothing is persisted server side, so export the
JSON to keep your work.`,
		RunE: runServeCmd,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().String("engine", "", "PDF engine: chrome or basic (overrides pdf.engine)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		a.cfg.Server.Addr = addr
	}

	orch, err := a.orchestrator()
	if err != nil {
		return err
	}

	logger := a.logger
	sessions := session.NewManager(session.Options{
		MaxSessions: a.cfg.Session.Max,
		TTL:         a.cfg.Session.TTL,
		Secure:      a.cfg.Server.SecureCookies,
		OnCreate: func(s *session.Session) {
			logger.Debug("session created", "session", s.ID)
			s.Store.Subscribe(func(ev store.Event, next report.Report) {
				logger.Debug("report changed", "session", s.ID, "event", ev.Name(), "threat_level", next.ThreatLevel)
			})
		},
	})

	comp, err := server.New(
		server.WithOrchestrator(orch),
		server.WithSessions(sessions),
		server.WithAssets(socreport.AssetsFS()),
		server.WithEngine(a.cfg.PDF.Engine),
		server.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	if _, err := comp.RegisterRoutes(mux, "/"); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("socreport editor listening", "addr", "http://"+a.cfg.Server.Addr, "engine", orch.DefaultEngine())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}
