package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	"finitefield.org/product-viewer/internal/viewer/config"
	"finitefield.org/product-viewer/internal/viewer/observability"
)

// app carries the state shared by every subcommand.
type app struct {
	out     io.Writer
	cfg     config.Config
	logger  *zap.Logger
	envFile string
	dataDir string
	verbose bool

	// loadConfig is replaced in tests to avoid reading the process environment.
	loadConfig func(opts ...config.Option) (config.Config, error)
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	return (&app{out: out, loadConfig: config.Load}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "viewer",
		Short: "Browse the newest product catalog snapshot",
		Long: `viewer loads the most recent all_products_*.json snapshot from the data directory
and lets you filter it by category and search it by product name.

Run without arguments to start the HTTP browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context(), serveOptions{watch: a.cfg.Data.Watch})
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.out)

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "path of the .env file (empty to disable)")
	rootCmd.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", "", "snapshot directory (overrides VIEWER_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(a.serveCmd(), a.showCmd(), a.categoriesCmd())
	return rootCmd
}

func (a *app) init() error {
	cfg, err := a.loadConfig(config.WithEnvFile(a.envFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) newSession() *catalog.Session {
	return catalog.NewSession(catalog.NewLoader(catalog.WithLogger(a.logger)))
}
