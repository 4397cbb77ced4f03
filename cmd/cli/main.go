package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/cmd/cli/commands"
	"github.com/jakechorley/ward-allocator/internal/config"
	"github.com/jakechorley/ward-allocator/pkg/db"
	"github.com/jakechorley/ward-allocator/pkg/postgres"
	"github.com/jakechorley/ward-allocator/pkg/utils/logging"
)

var (
	env     string
	lang    string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ward",
		Short: "Ward Allocator CLI - Rank patients and allocate scarce resources",
		Long: `A CLI tool for keeping a patient list and allocating beds, ventilators and doctors
to the patients with the highest survival × severity priority.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Output language: en or bn (defaults to config language)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.AddPatientCmd(app))
	rootCmd.AddCommand(commands.ListPatientsCmd(app))
	rootCmd.AddCommand(commands.EditPatientCmd(app))
	rootCmd.AddCommand(commands.DeletePatientCmd(app))
	rootCmd.AddCommand(commands.ClearPatientsCmd(app))
	rootCmd.AddCommand(commands.ImportPatientsCmd(app))
	rootCmd.AddCommand(commands.ExportPatientsCmd(app))
	rootCmd.AddCommand(commands.AllocateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, labels and the patient store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("backend", app.Cfg.Storage.Backend),
		zap.String("language", app.Cfg.Language))

	// Select output language, flag overrides config
	language := app.Cfg.Language
	if lang != "" {
		language = lang
	}
	app.Labels, err = commands.LabelsFor(language)
	if err != nil {
		return err
	}

	// Initialize patient store
	app.Database, err = openDatabase(app.Ctx, app.Cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.Logger.Debug("Database initialized successfully")

	return nil
}

// openDatabase connects to the storage backend named in the config
func openDatabase(ctx context.Context, cfg *config.Config) (db.Database, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		database, err := postgres.NewDB(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return database, nil
	case config.BackendFile:
		store, err := db.NewFileStore(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
