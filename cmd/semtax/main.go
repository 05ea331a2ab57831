// Package main provides the semtax binary entry point.
// Semtax loads ontology documents, computes class and property closures,
// materializes class extensions and exports the result as RDF.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/semtax/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semtax"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	iri        string
	skipSeed   bool
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Taxonomic reasoning over ontology documents",
		Long: `Semtax is a taxonomic reasoner. It loads ontology documents,
answers closure queries over classes, properties and individuals,
materializes class extensions and exports the result as RDF.

When NATS is configured, derived facts are published to the
knowledge graph and snapshots are kept in JetStream KV.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML); default is layered user and project config")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.iri, "iri", "", "Ontology IRI (default: the first document's)")
	cmd.PersistentFlags().BoolVar(&flags.skipSeed, "skip-seed", false, "Leave the built-in datatype vocabulary out")

	cmd.AddCommand(
		reasonCmd(&flags),
		queryCmd(&flags),
		isCmd(&flags),
		checkCmd(&flags),
		keysCmd(&flags),
		storeCmd(&flags),
		watchCmd(&flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// setup loads configuration, applies flag overrides and builds the app.
func setup(cmd *cobra.Command, flags *globalFlags) (*App, error) {
	bootstrap := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := loadConfig(flags.configPath, bootstrap)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.skipSeed {
		cfg.Reasoner.SkipSeed = true
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return NewApp(cfg, logger, cmd.OutOrStdout()), nil
}

func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath == "" {
		return config.NewLoader(logger).Load()
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	// Documents in an explicit config resolve against its directory
	dir, err := absDir(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Root = dir
	return cfg, nil
}
