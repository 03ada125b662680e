// Command brandctl runs maintenance tasks against the Brand Hub stores.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/brandhub/core/internal/app"
	"github.com/brandhub/core/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "brandctl",
	Short:         "Brand Hub maintenance CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read .env: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log service activity to stderr")

	rootCmd.AddCommand(migrateCmd, seedCmd, profilesCmd, campaignsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// withStores opens the configured database for the duration of fn.
func withStores(ctx context.Context, fn func(*app.Stores) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close(ctx)
	return fn(stores)
}
