package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/postkeeper/core/internal/adapters/filestore"
	"github.com/postkeeper/core/internal/infrastructure/config"
	"github.com/postkeeper/core/internal/infrastructure/logger"
	"github.com/postkeeper/core/internal/infrastructure/server"
)

// Set at build time with -ldflags "-X github.com/postkeeper/core/cmd/api/commands.Version=..."
var (
	Version   = "dev"
	GitCommit = "development"
	BuildDate = "unknown"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the postkeeper API server",
		Long:  "Start the HTTP API on the configured port, creating the store file first if it is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

// NewStoreCommand creates the store command with subcommands
func NewStoreCommand() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Record store commands",
		Long:  "Create and inspect the JSON file that holds the blog posts",
	}

	storeCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the store file as an empty collection if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			created, err := store.Init()
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created empty store at %s\n", store.Path())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Store already exists at %s\n", store.Path())
			}
			return nil
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Parse the store file and report its contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			return checkStore(cmd.Context(), cmd, store)
		},
	})

	return storeCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print postkeeper version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "postkeeper %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	store := filestore.New(cfg.Store, appLogger)
	if cfg.Store.CreateIfMissing {
		if _, err := store.Init(); err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
	}

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infow("Starting postkeeper API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
			"store", store.Path(),
		)
		errCh <- srv.Start(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info("Server exited gracefully")
	return nil
}

// openStore builds a record store from the loaded configuration
func openStore() (*filestore.RecordStore, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return filestore.New(cfg.Store, appLogger), func() { _ = appLogger.Close() }, nil
}

func checkStore(ctx context.Context, cmd *cobra.Command, store *filestore.RecordStore) error {
	posts, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]int, len(posts))
	var duplicates []string
	for _, p := range posts {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			duplicates = append(duplicates, p.ID)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store: %s\n", store.Path())
	fmt.Fprintf(out, "Posts: %d\n", len(posts))

	if len(duplicates) > 0 {
		for _, id := range duplicates {
			fmt.Fprintf(out, "  duplicate id %s (%d records)\n", id, seen[id])
		}
		return fmt.Errorf("store has %d duplicated ids", len(duplicates))
	}

	fmt.Fprintln(out, "OK")
	return nil
}
