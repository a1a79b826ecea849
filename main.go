// @title Campus Voice API
// @version 1.0
// @description Backend for the campus feedback portal.

// @host localhost:3001
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"campus_voice_backend/internal/app"
	"campus_voice_backend/internal/config"
	"campus_voice_backend/pkg/database"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"
)

var configDir string

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config from %s: %w", configDir, err)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			app.NewApp(cfg).Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(&cfg.Database, gormlogger.Warn)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default categories and bootstrap accounts",
		Long: `Insert the default feedback categories when none exist, and the bootstrap
admin@campusvoice.edu / student@campusvoice.edu accounts when the users table is empty.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(&cfg.Database, gormlogger.Warn)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			if err := database.Seed(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seed complete")
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:          "campus-voice",
		Short:        "Campus Voice feedback portal backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configDir, "config", "c", "configs", "directory containing config.yaml")

	serve := serveCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
