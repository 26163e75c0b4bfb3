package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradezilla/internal/report"
	"github.com/rustyeddy/tradezilla/metrics"
	"github.com/rustyeddy/tradezilla/notify"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	Long: `Show win rate, net P&L, profit factor, average R:R, current win streak
and maximum drawdown.

Without --days the whole journal is used. With --days N only trades dated
within the last N calendar days are counted.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Show the equity curve from a 10,000 starting balance",
	Args:  cobra.NoArgs,
	RunE:  runEquity,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show net P&L per day for recent days",
	Args:  cobra.NoArgs,
	RunE:  runDaily,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month heatmap of daily results",
	Long: `Show a Sunday-first month grid with each day colored by its net P&L.

Examples:
  tradezilla calendar
  tradezilla calendar --month 2024-05
  tradezilla calendar --offset -1`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare the last 30 days against the last 90 days",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Show current notifications",
	Args:  cobra.NoArgs,
	RunE:  runNotify,
}

var (
	statsDays      int
	statsJSON      bool
	equityLast     int
	dailyDays      int
	calendarMonth  string
	calendarOffset int
	reportOrgFile  string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(notifyCmd)

	statsCmd.Flags().IntVar(&statsDays, "days", 0, "only count the last N days (0 = all time)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
	equityCmd.Flags().IntVarP(&equityLast, "last", "n", 30, "show the last N points (0 = all)")
	dailyCmd.Flags().IntVar(&dailyDays, "days", 14, "number of days ending today")
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month to show (YYYY-MM, default current)")
	calendarCmd.Flags().IntVar(&calendarOffset, "offset", 0, "shift the month by N (negative for earlier)")
	reportCmd.Flags().StringVar(&reportOrgFile, "org", "", "also write an org-mode summary to this file")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsDays < 0 {
		return fmt.Errorf("--days must not be negative")
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	title := "All Time"
	p := a.journal.Performance()
	if statsDays > 0 {
		title = fmt.Sprintf("Last %d Days", statsDays)
		p = a.journal.Period(statsDays, a.now())
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	report.PrintPerformance(cmd.OutOrStdout(), title, p)
	return nil
}

func runEquity(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	report.PrintEquity(cmd.OutOrStdout(), metrics.Tail(metrics.EquityCurve(a.journal.Trades()), equityLast))
	return nil
}

func runDaily(cmd *cobra.Command, args []string) error {
	if dailyDays <= 0 || dailyDays > 366 {
		return fmt.Errorf("--days must be between 1 and 366")
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	report.PrintDaily(cmd.OutOrStdout(), metrics.DailyPnL(a.journal.Trades(), dailyDays, a.now()))
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	now := a.now()
	year, month := now.Year(), now.Month()
	if calendarMonth != "" {
		if year, month, err = metrics.ParseMonth(calendarMonth); err != nil {
			return fmt.Errorf("--month: %w", err)
		}
	}
	year, month = metrics.ShiftMonth(year, month, calendarOffset)

	report.PrintCalendar(cmd.OutOrStdout(), metrics.Calendar(a.journal.Trades(), year, month))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	now := a.now()
	c := report.Compare(a.journal.Chronological(), now)
	report.PrintComparison(cmd.OutOrStdout(), c)

	if reportOrgFile == "" {
		return nil
	}
	f, err := os.Create(reportOrgFile)
	if err != nil {
		return fmt.Errorf("create org file: %w", err)
	}
	defer f.Close()

	if err := report.WritePeriodOrg(f, report.PeriodOrg{
		Title:       "Last 30 Days",
		Created:     now,
		Performance: c.Recent,
		Momentum:    &c.Momentum,
	}); err != nil {
		return err
	}
	if err := report.WritePeriodOrg(f, report.PeriodOrg{
		Title:       "Last 90 Days",
		Created:     now,
		Performance: c.Longer,
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Wrote org summary: %s\n", reportOrgFile)
	return nil
}

func runNotify(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	notices := notify.Derive(a.now(), a.journal.Trades(), a.notifyOptions())
	if len(notices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notifications")
		return nil
	}
	report.PrintNotices(cmd.OutOrStdout(), notices)
	return nil
}
