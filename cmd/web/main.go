package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tinig-app/tinig/internal/asr"
	"github.com/tinig-app/tinig/internal/db"
	"github.com/tinig-app/tinig/internal/db/postgres"
	"github.com/tinig-app/tinig/internal/db/sqlite"
	"github.com/tinig-app/tinig/internal/health"
	"github.com/tinig-app/tinig/internal/logger"
	"github.com/tinig-app/tinig/internal/metrics"
	"github.com/tinig-app/tinig/internal/web"
	"golang.org/x/sync/errgroup"
)

//go:embed all:static
var staticFiles embed.FS

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("tinig-web")

	var (
		port           = fs_.Int64Long("port", 3000, "HTTP server port")
		databaseURL    = fs_.StringLong("database-url", "tinig.db", "postgres:// URL or SQLite file path")
		asrURL         = fs_.StringLong("asr-url", "", "base URL of the whisper.cpp speech recognition server (empty disables speech endpoints)")
		asrLanguage    = fs_.StringLong("asr-language", "tl", "language hint passed to the recognizer")
		allowedOrigins = fs_.StringLong("allowed-origins", "", "comma-separated list of allowed CORS origins (empty allows all)")
		retentionDays  = fs_.Int64Long("retention-days", 0, "delete stored transcriptions older than this many days (0 keeps everything)")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	repo, err := openRepository(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	var transcriber asr.Transcriber
	if *asrURL != "" {
		transcriber = asr.NewClient(*asrURL, asr.WithLanguage(*asrLanguage))
		log.InfoContext(ctx, "speech recognition enabled", "url", *asrURL, "language", *asrLanguage)
	} else {
		log.InfoContext(ctx, "speech recognition disabled; POST /api/v1/transcriptions will return 503")
	}

	var origins []string
	if *allowedOrigins != "" {
		for _, o := range strings.Split(*allowedOrigins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	apiHandler := web.NewRouter(repo, log, transcriber, origins).Handler()

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("creating sub filesystem: %w", err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", health.Handler(repo))
	mux.Handle("/ready", health.Handler(repo))
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, s-maxage=60, max-age=0")
		fileServer.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.InfoContext(gctx, "starting web server", "port", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case sig := <-sigChan:
			log.InfoContext(gctx, "received signal, shutting down gracefully", "signal", sig)
			cancel(errors.New("signal received"))
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if *retentionDays > 0 {
		g.Go(func() error {
			retain(gctx, log, repo, time.Duration(*retentionDays)*24*time.Hour)
			return nil
		})
	}

	if pg, ok := repo.(*postgres.Repository); ok {
		g.Go(func() error {
			exportPoolStats(gctx, pg)
			return nil
		})
	}

	return g.Wait()
}

// openRepository picks the backend from the URL shape: postgres:// connects
// via pgx, anything else is treated as a SQLite file path.
func openRepository(ctx context.Context, databaseURL string) (db.Repository, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
		}
		slog.Info("connected to PostgreSQL database")
		return repo, nil
	}
	repo, err := sqlite.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	slog.Info("opened SQLite database", "path", databaseURL)
	return repo, nil
}

// retain deletes transcriptions older than the retention window, once at
// startup and then daily.
func retain(ctx context.Context, log *slog.Logger, repo db.Repository, window time.Duration) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		deleted, err := repo.DeleteOldTranscriptions(ctx, time.Now().Add(-window))
		if err != nil {
			log.ErrorContext(ctx, "retention cleanup failed", "error", err)
		} else if deleted > 0 {
			log.InfoContext(ctx, "retention cleanup", "deleted", deleted)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// exportPoolStats refreshes the pgx pool gauges every 15 seconds.
func exportPoolStats(ctx context.Context, repo *postgres.Repository) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := repo.PoolStats()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
		case <-ctx.Done():
			return
		}
	}
}
