// @title Medication Tracker API
// @version 1.0
// @description Medicamentos, horarios y tomas diarias.
// @BasePath /
package main

//go:generate swag init -d ../../ -g cmd/api/main.go -o ../../docs --outputTypes go

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

	s3backup "medication-tracker/internal/adapters/backup/s3"
	"medication-tracker/internal/backup"
	"medication-tracker/internal/config"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/platform/logger"
	"medication-tracker/internal/router"
)

var storeFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:           "medtracker",
		Short:         "Medication schedule and daily dose tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Override MEDS_STORE (memory, sqlite, postgres)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load demo medications if the store is empty",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSeed(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "backup",
			Short: "Upload a JSON snapshot to S3",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runBackup(cmd.Context())
			},
		},
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid --store override: %w", err)
		}
	}

	log := logger.New(cfg.LoggerOptions())
	log.Info("configuration loaded", map[string]any{
		"store":     cfg.Store,
		"http_port": cfg.HTTPPort,
		"timezone":  cfg.Timezone,
		"seed_demo": cfg.SeedDemo,
	})
	return cfg, log, nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.SeedDemo {
		if err := seedDemo(ctx, st, log); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: router.NewRouter(router.Options{
			Medications: st.medications,
			Doses:       st.doses,
			Logger:      log,
			Location:    loc,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
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

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return seedDemo(ctx, st, log)
}

func seedDemo(ctx context.Context, st *stores, log logger.Logger) error {
	seeded, err := medications.NewService(st.medications).SeedDemo(ctx)
	if err != nil {
		return fmt.Errorf("seed demo: %w", err)
	}
	log.Info("demo seed", map[string]any{"inserted": seeded})
	return nil
}

func runBackup(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.BackupBucket == "" {
		return fmt.Errorf("%s_BACKUP_BUCKET is required for backup", config.Prefix)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	uploader, err := s3backup.New(ctx, s3backup.Config{
		Region:   cfg.BackupRegion,
		Bucket:   cfg.BackupBucket,
		Endpoint: cfg.BackupEndpoint,
	})
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}

	svc := backup.NewService(st.medications, st.doses, loc, log)
	_, err = svc.Run(ctx, uploader, cfg.BackupPrefix, cfg.BackupDays)
	return err
}
