package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradezilla",
	Short: "A personal trading journal with performance analytics",
	Long: `Tradezilla records discretionary trades and turns them into performance
statistics.

It provides tools for:
  - Logging, editing and removing trades with derived P&L, ROI and R:R
  - Win rate, profit factor, drawdown and streak statistics
  - Equity curve, daily P&L and calendar heatmap views
  - 30 versus 90 day momentum reports
  - An AI coach for weekly reviews and questions
  - A JSON HTTP API with scheduled notification jobs`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}
