package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"macromatch-go-api/internal/app"
	"macromatch-go-api/internal/config"
	"macromatch-go-api/pkg/logger"
)

type rootOptions struct {
	configPath string
	live       bool
	seed       int64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "macromatch",
		Short:         "Macro-driven ETF recommendations and portfolio scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config (live mode)")
	flags.BoolVar(&opts.live, "live", false, "query Alpha Vantage and Yahoo instead of offline data")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for reproducible predictions")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		indicatorsCmd(opts),
		recommendCmd(opts),
		analyzeCmd(opts),
		predictCmd(opts),
	)
	return root
}

// components builds the advisor graph. Offline mode never opens a
// network connection.
func (o *rootOptions) components(ctx context.Context) (*app.Components, error) {
	log, err := logger.New(logger.Config{Level: o.logLevel, Output: "stderr", Format: "console"})
	if err != nil {
		return nil, err
	}
	if !o.live {
		return app.Offline(log), nil
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return app.Build(ctx, cfg, log), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
