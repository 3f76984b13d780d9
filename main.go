package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"circuit-load/internal/audit"
	"circuit-load/internal/auth"
	"circuit-load/internal/config"
	loadapp "circuit-load/internal/loadcalc/application"
	loadmemory "circuit-load/internal/loadcalc/infrastructure/memory"
	loadhttp "circuit-load/internal/loadcalc/interfaces/http"
	"circuit-load/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	circuitRepo := loadmemory.NewCircuitRepository()
	metrics.Init(circuitRepo.Counts, logger)

	service, err := loadapp.NewService(circuitRepo, loadapp.WithLogger(logger))
	if err != nil {
		logger.Fatalf("loadcalc service error: %v", err)
	}
	if err := service.Seed(context.Background(), config.Seeds(cfg.Circuits)); err != nil {
		logger.Fatalf("seed error: %v", err)
	}

	handler, err := loadhttp.NewHandler(service, cfg.FormOptions(), audit.NewLogWriter(logger), logger)
	if err != nil {
		logger.Fatalf("loadcalc handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)
	if !authMiddleware.Enabled() {
		logger.Printf("AUTH_JWT_SECRET not set, api auth disabled")
	}

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           loggingMiddleware(authMiddleware.Wrap(mux), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Printf("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Printf("http shutdown error: %v", err)
		}
	}()

	logger.Printf("http listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
