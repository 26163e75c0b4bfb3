package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradezilla/internal/report"
	"github.com/rustyeddy/tradezilla/journal"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Log, edit and remove journal trades",
	Long: `Manage the trades in the journal.

P&L, ROI, R:R and win/loss status are derived from entry, exit, size and
direction every time a trade is saved.

Examples:
  tradezilla trade add --symbol BTCUSDT --entry 64200 --exit 65800 --size 0.5
  tradezilla trade add -i
  tradezilla trade edit 1a2b3c --exit 66000
  tradezilla trade list --limit 10
  tradezilla trade rm 1a2b3c --yes`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit an existing trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeEdit,
}

var tradeRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Remove a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    runTradeRm,
}

var tradeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List trades, newest first",
	Args:    cobra.NoArgs,
	RunE:    runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

// entryFlags holds the form fields shared by add and edit. Prices and sizes
// stay strings so they can be parsed as decimals.
type entryFlags struct {
	symbol      string
	direction   string
	entry       string
	exit        string
	size        string
	date        string
	strategy    string
	emotion     int
	notes       string
	entryShot   string
	exitShot    string
	interactive bool
}

func (f *entryFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.symbol, "symbol", "s", "", "instrument, e.g. BTCUSDT")
	fs.StringVarP(&f.direction, "direction", "d", "", "LONG or SHORT")
	fs.StringVar(&f.entry, "entry", "", "entry price")
	fs.StringVar(&f.exit, "exit", "", "exit price")
	fs.StringVar(&f.size, "size", "", "position size")
	fs.StringVar(&f.date, "date", "", "trade date (YYYY-MM-DD)")
	fs.StringVar(&f.strategy, "strategy", "", "setup name")
	fs.IntVar(&f.emotion, "emotion", 0, "emotional state, 1 (calm) to 10 (tilted)")
	fs.StringVar(&f.notes, "notes", "", "free-form notes")
	fs.StringVar(&f.entryShot, "entry-shot", "", "entry screenshot (data URL or link)")
	fs.StringVar(&f.exitShot, "exit-shot", "", "exit screenshot (data URL or link)")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "fill the form interactively")
}

// apply copies every flag the user set onto e.
func (f *entryFlags) apply(cmd *cobra.Command, e *journal.Entry) error {
	changed := cmd.Flags().Changed

	if changed("symbol") {
		e.Symbol = f.symbol
	}
	if changed("direction") {
		e.Direction = journal.Direction(f.direction)
	}
	for _, a := range []struct {
		flag string
		val  string
		dst  *float64
	}{
		{"entry", f.entry, &e.EntryPrice},
		{"exit", f.exit, &e.ExitPrice},
		{"size", f.size, &e.Size},
	} {
		if !changed(a.flag) {
			continue
		}
		v, err := journal.ParseAmount(a.val)
		if err != nil {
			return fmt.Errorf("--%s: %w", a.flag, err)
		}
		*a.dst = v
	}
	if changed("date") {
		e.Date = f.date
	}
	if changed("strategy") {
		e.Strategy = f.strategy
	}
	if changed("emotion") {
		if f.emotion < 1 || f.emotion > 10 {
			return fmt.Errorf("--emotion must be between 1 and 10")
		}
		e.EmotionScale = f.emotion
	}
	if changed("notes") {
		e.Notes = f.notes
	}
	if changed("entry-shot") {
		e.EntryScreenshot = f.entryShot
	}
	if changed("exit-shot") {
		e.ExitScreenshot = f.exitShot
	}
	return nil
}

var (
	addFlags  entryFlags
	editFlags entryFlags

	tradeListLimit int
	tradeRmYes     bool
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeEditCmd)
	tradeCmd.AddCommand(tradeRmCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)

	addFlags.register(tradeAddCmd)
	editFlags.register(tradeEditCmd)

	tradeListCmd.Flags().IntVarP(&tradeListLimit, "limit", "n", 0, "show at most N trades (0 = all)")
	tradeRmCmd.Flags().BoolVarP(&tradeRmYes, "yes", "y", false, "skip the confirmation prompt")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	e := journal.NewEntry(a.now())
	if err := addFlags.apply(cmd, &e); err != nil {
		return err
	}
	if addFlags.interactive {
		if err := askEntry(&e); err != nil {
			return err
		}
	}

	rec, err := a.journal.Save(cmd.Context(), e, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged trade %s\n", rec.ID)
	report.PrintTrade(cmd.OutOrStdout(), rec)
	return nil
}

func runTradeEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	existing, err := a.journal.Find(args[0])
	if err != nil {
		return fmt.Errorf("trade %s: %w", args[0], err)
	}
	e := journal.EntryOf(existing)
	if err := editFlags.apply(cmd, &e); err != nil {
		return err
	}
	if editFlags.interactive {
		if err := askEntry(&e); err != nil {
			return err
		}
	}

	rec, err := a.journal.Save(cmd.Context(), e, existing.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated trade %s\n", rec.ID)
	report.PrintTrade(cmd.OutOrStdout(), rec)
	return nil
}

func runTradeRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.journal.Find(args[0])
	if err != nil {
		return fmt.Errorf("trade %s: %w", args[0], err)
	}
	if !tradeRmYes {
		ok, err := confirm(fmt.Sprintf("Delete %s %s on %s (%s)?", rec.Direction, rec.Symbol, rec.Date, journal.FormatMoney(rec.PnL)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	if err := a.journal.Delete(cmd.Context(), rec.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", rec.ID)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	trades := journal.SortByDate(a.journal.Trades(), true)
	if tradeListLimit > 0 && tradeListLimit < len(trades) {
		trades = trades[:tradeListLimit]
	}
	if len(trades) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No trades logged")
		return nil
	}
	report.PrintTrades(cmd.OutOrStdout(), trades)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d trades\n", len(trades))
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.journal.Find(args[0])
	if err != nil {
		return fmt.Errorf("trade %s: %w", args[0], err)
	}
	report.PrintTrade(cmd.OutOrStdout(), rec)
	return nil
}
