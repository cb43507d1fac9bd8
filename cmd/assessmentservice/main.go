package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"

	"github.com/vncsmyrnk/assessment/internal/adapters/handler/http"
	"github.com/vncsmyrnk/assessment/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/assessment/internal/adapters/token"
	"github.com/vncsmyrnk/assessment/internal/config"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
	"github.com/vncsmyrnk/assessment/internal/core/services"
	"github.com/vncsmyrnk/assessment/internal/logging"
)

var version = "dev"

func main() {
	bootLogger := logging.Setup("assessment-service", version, "", logging.ParseLevel(""), nil)

	if err := config.LoadDotEnv(); err != nil {
		bootLogger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadAssessment()
	if err != nil {
		bootLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup("assessment-service", version, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel), nil)

	verifier, err := token.NewBearerVerifier(cfg.JWTPublicKey, cfg.JWTSecret)
	if err != nil {
		logger.Error("failed to configure token verification", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger, verifier); err != nil {
		logging.LogError(context.Background(), logger, "assessment service stopped", err)
		os.Exit(1)
	}
}

// run serves until SIGINT or SIGTERM and returns once the server has shut down.
func run(cfg *config.Assessment, logger *slog.Logger, verifier ports.BearerVerifier) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	assessmentService := services.NewAssessmentService(
		postgres.NewAssessmentRepository(db),
		postgres.NewSessionRepository(db),
		postgres.NewAnswerRepository(db),
	)

	handler := http.NewAssessmentRouter(http.AssessmentRouterDeps{
		AssessmentHandler: http.NewAssessmentHandler(assessmentService, logger),
		Verifier:          verifier,
		Metrics:           http.NewMetrics(),
		Logger:            logger,
	})

	server := &stdhttp.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("assessment service listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return oops.Code("SERVER_FAILED").Wrap(err)
	case <-ctx.Done():
	}
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	return nil
}
