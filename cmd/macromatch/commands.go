package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"macromatch-go-api/internal/models"
)

func indicatorsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "Print the current macro indicator snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			snap, err := c.Advisor.Indicators(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), snap)
		},
	}
}

func recommendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend SYMBOL",
		Short: "Score one ETF against the macro indicators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			rec, err := c.Advisor.Recommend(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func analyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Print the recommendation with technical and fundamental notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Advisor.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func predictCmd(opts *rootOptions) *cobra.Command {
	var (
		etfs       []string
		weights    map[string]string
		investment float64
		complexity int
		strategyID string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Generate one-year portfolio scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allocation, err := parseAllocation(etfs, weights)
			if err != nil {
				return err
			}

			req := models.PredictionRequest{
				StrategyID:          strategyID,
				SelectedETFs:        etfs,
				Allocation:          allocation,
				InitialInvestment:   investment,
				PortfolioComplexity: complexity,
			}
			if cmd.Flags().Changed("seed") {
				seed := opts.seed
				req.Seed = &seed
			}

			c, err := opts.components(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Advisor.Predict(req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&etfs, "etf", nil, "ETF symbols in the portfolio")
	f.StringToStringVar(&weights, "weight", nil, "allocation in percent per symbol, e.g. SPY=60,TLT=40 (default equal weights)")
	f.Float64Var(&investment, "investment", 10000, "initial investment")
	f.IntVar(&complexity, "complexity", 1, "portfolio complexity")
	f.StringVar(&strategyID, "strategy", "custom-strategy", "strategy identifier")
	return cmd
}

// parseAllocation turns --weight pairs into percentages, spreading the
// portfolio evenly when none are given.
func parseAllocation(etfs []string, weights map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(etfs))
	if len(weights) == 0 {
		for _, s := range etfs {
			out[strings.ToUpper(s)] = 100 / float64(len(etfs))
		}
		return out, nil
	}

	for sym, raw := range weights {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("weight for %s: %w", sym, err)
		}
		out[strings.ToUpper(sym)] = w
	}
	return out, nil
}
