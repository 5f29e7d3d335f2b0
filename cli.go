package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/satheeshds/termdeposit/config"
	"github.com/satheeshds/termdeposit/db"
	_ "github.com/satheeshds/termdeposit/docs"
	"github.com/satheeshds/termdeposit/depositapi"
	"github.com/satheeshds/termdeposit/handlers"
	"github.com/satheeshds/termdeposit/journal"
	"github.com/satheeshds/termdeposit/wizard"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "termdeposit",
		Short:         "Term deposit request service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	return root
}

// dbFlags are shared by serve and migrate and override DB_DRIVER and DB_DSN.
type dbFlags struct {
	driver string
	dsn    string
}

func (f *dbFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "db-driver", "", "Database driver: duckdb or pgx (overrides DB_DRIVER)")
	cmd.Flags().StringVar(&f.dsn, "db-dsn", "", "Database connection string (overrides DB_DSN)")
}

func (f *dbFlags) apply(cfg *config.Config) {
	if f.driver != "" {
		cfg.DBDriver = f.driver
	}
	if f.dsn != "" {
		cfg.DBDSN = f.dsn
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}

func migrateCmd() *cobra.Command {
	var flags dbFlags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the submission journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)

			database, err := db.Open(cmd.Context(), cfg.DBDriver, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer database.Close()
			return db.Migrate(cmd.Context(), database, cfg.DBDriver)
		},
	}
	flags.register(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		flags dbFlags
		port  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open database
	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(ctx, database, cfg.DBDriver); err != nil {
		return err
	}

	store := journal.NewStore(database, cfg.DBDriver)
	client := depositapi.NewClient(depositapi.Config{
		BaseURL:  cfg.DepositsURL,
		Username: cfg.DepositsUser,
		Password: cfg.DepositsPass,
		Token:    cfg.DepositsToken,
		Timeout:  cfg.DepositsTimeout,
		Logger:   slog.Default(),
	})
	manager := wizard.NewManager(client, wizard.Options{
		CustomerKey:     cfg.CustomerKey,
		DefaultCurrency: cfg.DefaultCurrency,
		Debounce:        cfg.DealDebounce,
		Logger:          slog.Default(),
		Recorder:        store,
	})
	defer manager.CloseAll()

	// Set shared collaborators for handlers
	handlers.Wizards = manager
	handlers.Journal = store
	handlers.Deposits = client

	go expireWizards(ctx, manager, cfg.WizardTTL)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// API routes with basic auth
		r.Group(func(r chi.Router) {
			r.Use(handlers.BasicAuth(cfg.AuthUser, cfg.AuthPass))
			handlers.Routes(r)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// expireWizards drops abandoned wizards older than ttl until ctx ends.
func expireWizards(ctx context.Context, m *wizard.Manager, ttl time.Duration) {
	interval := ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.CleanupExpired(ttl); n > 0 {
				slog.Info("expired wizards removed", "count", n)
			}
		}
	}
}
