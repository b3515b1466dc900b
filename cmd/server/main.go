package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cogitolab/cogito/internal/config"
	"github.com/cogitolab/cogito/internal/service"
	"github.com/cogitolab/cogito/internal/storage"
	"github.com/cogitolab/cogito/web/handlers"
)

// flagDefaults derives the server flag defaults from the loaded
// configuration, falling back to the built-in values where the config
// is silent.
func flagDefaults(cfg *config.Config) (port int, dbPath string, timeout time.Duration) {
	port = cfg.Server.Port
	if port == 0 {
		port = 8000
	}
	dbPath = cfg.Database.Path
	if dbPath == "" {
		dbPath = storage.DefaultDBPath()
	}
	timeout = cfg.Server.DebateTimeout
	if timeout <= 0 {
		timeout = service.DefaultDebateTimeout
	}
	return port, dbPath, timeout
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defaultPort, defaultDB, defaultTimeout := flagDefaults(cfg)

	port := flag.Int("port", defaultPort, "Server port")
	dbPath := flag.String("db", defaultDB, "Database path")
	debug := flag.Bool("debug", false, "Enable debug logging")
	timeout := flag.Duration("timeout", defaultTimeout, "Per-debate timeout")
	delay := flag.Duration("delay", 2*time.Second, "Simulated analysis delay")
	flag.Parse()

	// Initialize slog
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if *debug {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(logger)

	// Initialize storage
	slog.Info("Initializing storage", "path", *dbPath)
	store, err := storage.NewSQLiteStorage(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// The canned analyst stands in for a real LLM pipeline: it produces
	// a deterministic decision matrix after a configurable delay.
	analyst := &service.CannedAnalyst{Delay: *delay}
	svc := service.New(analyst, store, *timeout)

	h := handlers.New(svc, store)

	addr := fmt.Sprintf(":%d", *port)
	server := &http.Server{
		Addr:    addr,
		Handler: h.Routes(),
	}

	// Handle shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		slog.Info("Shutting down...")
		svc.CancelAll()
		server.Close()
	}()

	slog.Info("Starting cogito analysis service", "url", fmt.Sprintf("http://localhost%s", addr))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
