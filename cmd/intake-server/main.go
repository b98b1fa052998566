// cmd/intake-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"solvedet-intake/internal/common/config"
	"solvedet-intake/internal/common/logger"
	"solvedet-intake/internal/common/mail"
	"solvedet-intake/internal/intake"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.New("info", "console")
		bootstrapLog.Fatal("failed to load configuration", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting intake server",
		zap.String("environment", cfg.App.Environment),
		zap.String("mailProvider", cfg.Mail.Provider),
	)

	transport, err := buildTransport(cfg, log)
	if err != nil {
		zapLog.Fatal("failed to build mail transport", zap.Error(err))
	}

	handler := intake.NewHandler(cfg, transport, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Handle("/api/applications", handler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLog.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("server stopped")
}

func buildTransport(cfg *config.Config, log logger.Logger) (mail.Transport, error) {
	switch cfg.Mail.Provider {
	case "ses":
		return mail.NewSESTransport(context.Background(), cfg.Mail.SES, log)
	default:
		return mail.NewSMTPTransport(cfg.Mail.SMTP, log), nil
	}
}
