package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rewear-ai/rewear/internal/advisor"
	"github.com/rewear-ai/rewear/internal/api"
	"github.com/rewear-ai/rewear/internal/charity"
	"github.com/rewear-ai/rewear/internal/conf"
	"github.com/rewear-ai/rewear/internal/db"
	"github.com/rewear-ai/rewear/internal/outfit"
	"github.com/rewear-ai/rewear/internal/store"
	"github.com/rewear-ai/rewear/internal/weather"
	"github.com/rewear-ai/rewear/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	fs := flag.NewFlagSet("rewear", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var charitiesPath string
	fs.StringVar(&charitiesPath, "charities", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: rewear [flags]

Flags:
  -c, -config <path>      config file (default: rewear.yaml if present)
  -d, -db <path>          SQLite database path (default: rewear.db)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -charities <path>       YAML file with verified charities to seed on startup
  -h, -help               show this help and exit

Settings can also come from REWEAR_* environment variables,
e.g. REWEAR_GEMINI_API_KEY for the AI provider key.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	settings, err := conf.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags override file and environment settings.
	if dbPath != "" {
		settings.Database.Path = dbPath
	}
	if addr != "" {
		settings.Server.Addr = addr
	}
	if logPath != "" {
		settings.Log.Path = logPath
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(settings.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Open database.
	database, err := db.Open(settings.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Ensure schema exists (idempotent).
	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", settings.Database.Path)

	if charitiesPath != "" {
		if err := seedCharities(context.Background(), database, charitiesPath); err != nil {
			slog.Error("failed to seed charities", "error", err)
			os.Exit(1)
		}
	}

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	if settings.Gemini.APIKey == "" {
		slog.Warn("no AI provider key configured, style analysis will use fallbacks")
	}

	adv := advisor.New(advisor.Config{
		APIKey:  settings.Gemini.APIKey,
		BaseURL: settings.Gemini.BaseURL,
		Model:   settings.Gemini.Model,
		Timeout: settings.Gemini.Timeout,
	})
	locator := charity.NewLocator(database, settings.Overpass.BaseURL, settings.Overpass.Timeout, settings.Overpass.RadiusMeters)
	wx := weather.New(settings.Weather.BaseURL, settings.Weather.Timeout)
	selector := outfit.NewSelector()

	// Set up routers.
	apiRouter := api.NewRouter(database, jwtSecret, adv, locator, wx, selector)
	webRouter, err := web.NewRouter(database, jwtSecret, adv, locator, wx, selector)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	handler := api.LoggingMiddleware(mux)

	server := &http.Server{
		Addr:              settings.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", settings.Server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

type seedCharity struct {
	Name    string   `yaml:"name"`
	Address string   `yaml:"address"`
	Phone   string   `yaml:"phone"`
	Lat     *float64 `yaml:"lat"`
	Lon     *float64 `yaml:"lon"`
}

// seedCharities loads verified charities from a YAML file into the database,
// skipping entries whose name already exists.
func seedCharities(ctx context.Context, database *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading charities file: %w", err)
	}

	var seeds []seedCharity
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("parsing charities file: %w", err)
	}

	existing, err := store.ListCharities(ctx, database)
	if err != nil {
		return fmt.Errorf("listing charities: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Name] = true
	}

	added := 0
	for _, seed := range seeds {
		if seed.Name == "" || known[seed.Name] {
			continue
		}
		if _, err := store.CreateCharity(ctx, database, seed.Name, seed.Address, seed.Phone, seed.Lat, seed.Lon); err != nil {
			return fmt.Errorf("creating charity %q: %w", seed.Name, err)
		}
		added++
	}

	if added > 0 {
		slog.Info("seeded verified charities", "count", added, "file", path)
	}
	return nil
}
