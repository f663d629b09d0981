package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medtracker/internal/adapters/druginfo/openfda"
	pg "medtracker/internal/adapters/storage/postgres"
	"medtracker/internal/config"
	"medtracker/internal/platform/logger"
	"medtracker/internal/router"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations (requires DB_DSN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if cfg.DatabaseDSN == "" {
				return errors.New("DB_DSN is required to run migrations")
			}

			ctx := cmd.Context()
			db, err := pg.Open(ctx, cfg.DatabaseDSN, pg.Options{MaxOpenConns: cfg.DBMaxOpenConns})
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			applied, err := pg.Migrate(ctx, db)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			log.Info().Strs("applied", applied).Int("count", len(applied)).Msg("migrations done")
			return nil
		},
	}
}

func drugInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "druginfo <name>",
		Short: "Look up a drug by generic name and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}

			client, err := openfda.NewClient(openfda.Config{BaseURL: cfg.DrugInfoBaseURL, Timeout: cfg.DrugInfoTimeout})
			if err != nil {
				return err
			}

			info, err := client.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
}

// bootstrap carga y valida config y arma el logger raíz.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	opts := router.Options{Logger: log}

	// DB_DSN vacío => in-memory
	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(ctx, cfg.DatabaseDSN, pg.Options{MaxOpenConns: cfg.DBMaxOpenConns})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		log.Info().Msg("connected to database")

		if cfg.DBAutoMigrate {
			applied, err := pg.Migrate(ctx, db)
			if err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Info().Int("count", len(applied)).Msg("migrations applied")
		}
		opts.DB = db
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory storage")
	}

	fetcher, err := openfda.NewClient(openfda.Config{BaseURL: cfg.DrugInfoBaseURL, Timeout: cfg.DrugInfoTimeout})
	if err != nil {
		return fmt.Errorf("drug info client: %w", err)
	}
	opts.DrugInfo = fetcher

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
