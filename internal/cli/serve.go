package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gatehouse/internal/audit"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/httpserver"
	"gatehouse/internal/platform/logger"
	httptransport "gatehouse/internal/transport/http"
	"gatehouse/internal/visitor/handler"
	vmetrics "gatehouse/internal/visitor/metrics"
	"gatehouse/internal/visitor/service"
	"gatehouse/pkg/platform/middleware/request"
	"gatehouse/pkg/platform/tracer"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the visitor tracker server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing gatehouse",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"store", cfg.Store,
		"kafka_audit", cfg.Kafka.Brokers != "",
	)

	deps, err := buildDeps(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	svc := service.New(deps.store,
		service.WithLogger(log),
		service.WithMetrics(vmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
		service.WithAuditPublisher(audit.NewPublisher(deps.audit)),
	)

	router := httptransport.NewRouter(
		handler.New(svc, log),
		deps.health,
		log,
		request.NewMetrics(),
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
