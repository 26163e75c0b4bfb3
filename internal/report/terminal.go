package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/tradezilla/journal"
	"github.com/rustyeddy/tradezilla/metrics"
	"github.com/rustyeddy/tradezilla/notify"
	"github.com/rustyeddy/tradezilla/pkg/id"
)

const barWidth = 30

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label), value)
}

// PrintPerformance writes the stat cards of the dashboard.
func PrintPerformance(w io.Writer, title string, p metrics.Performance) {
	fmt.Fprintln(w, titleStyle.Render(title))

	var b strings.Builder
	row(&b, "Net P&L", money(p.TotalPnL))
	row(&b, "Win Rate", fmt.Sprintf("%.1f%%", p.WinRate))
	row(&b, "Profit Factor", fmt.Sprintf("%.2f", p.ProfitFactor))
	row(&b, "Avg R:R", fmt.Sprintf("%.2f", p.AvgRR))
	row(&b, "Win Streak", fmt.Sprintf("%d", p.CurrentWinStreak))
	row(&b, "Max Drawdown", fmt.Sprintf("%.2f%%", p.MaxDrawdown))
	row(&b, "Trades", fmt.Sprintf("%d", p.TotalTrades))
	row(&b, "Avg Trade", money(p.AvgTrade()))
	fmt.Fprintln(w, boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// PrintEquity writes the balance after each trade with a bar scaled
// between the lowest and highest balance shown.
func PrintEquity(w io.Writer, points []metrics.EquityPoint) {
	fmt.Fprintln(w, sectionStyle.Render("Equity Curve"))
	if len(points) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no data"))
		return
	}

	lo, hi := points[0].Balance, points[0].Balance
	for _, p := range points {
		lo = math.Min(lo, p.Balance)
		hi = math.Max(hi, p.Balance)
	}
	for _, p := range points {
		n := barWidth
		if hi > lo {
			n = 1 + int(float64(barWidth-1)*(p.Balance-lo)/(hi-lo))
		}
		fmt.Fprintf(w, "%-10s %12.2f %s\n", p.Label, p.Balance, signed(p.Balance-metrics.InitialBalance, strings.Repeat("█", n)))
	}
}

// PrintDaily writes one bar per day, scaled to the largest absolute day.
func PrintDaily(w io.Writer, days []metrics.DailyPoint) {
	fmt.Fprintln(w, sectionStyle.Render("Daily P&L"))
	var peak float64
	for _, d := range days {
		peak = math.Max(peak, math.Abs(d.PnL))
	}
	for _, d := range days {
		bar := ""
		if peak > 0 && d.PnL != 0 {
			bar = strings.Repeat("█", int(math.Max(1, math.Round(barWidth*math.Abs(d.PnL)/peak))))
		}
		fmt.Fprintf(w, "%s %10s %s\n", d.Label, journal.FormatMoney(d.PnL), signed(d.PnL, bar))
	}
}

// PrintCalendar writes the month as a Sunday-first grid. Each cell shows
// the day number and its net result.
func PrintCalendar(w io.Writer, m metrics.Month) {
	fmt.Fprintln(w, titleStyle.Render(m.Title()))
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		fmt.Fprintf(w, "%-11s", d)
	}
	fmt.Fprintln(w)

	for _, week := range m.Weeks {
		var top, bottom strings.Builder
		for _, c := range week {
			if c == nil {
				top.WriteString(strings.Repeat(" ", 11))
				bottom.WriteString(strings.Repeat(" ", 11))
				continue
			}
			top.WriteString(fmt.Sprintf("%-11d", c.Day))
			cell := ""
			if c.Count > 0 {
				cell = fmt.Sprintf("%.0f", c.NetPnL)
			}
			bottom.WriteString(dayStyle(c.Status).Render(fmt.Sprintf("%-11s", cell)))
		}
		fmt.Fprintln(w, strings.TrimRight(top.String(), " "))
		fmt.Fprintln(w, strings.TrimRight(bottom.String(), " "))
	}

	var net float64
	var count int
	for _, d := range m.Days() {
		net += d.NetPnL
		count += d.Count
	}
	fmt.Fprintf(w, "%s %s over %d trades\n", mutedStyle.Render("Month:"), money(net), count)
}

// PrintTrades writes the ledger table.
func PrintTrades(w io.Writer, trades []journal.TradeRecord) {
	if len(trades) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No trades recorded."))
		return
	}
	fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("%-10s %-26s %-8s %-5s %12s %9s  %-9s %s",
		"DATE", "ID", "SYMBOL", "SIDE", "P&L", "ROI", "STATUS", "STRATEGY")))
	for _, t := range trades {
		fmt.Fprintf(w, "%-10s %-26s %-8s %-5s %12s %8.2f%%  %-9s %s\n",
			t.Date, t.ID, t.Symbol, t.Direction,
			journal.FormatMoney(t.PnL), t.ROI, statusText(t.Status), t.Strategy)
	}
}

// PrintTrade writes every field of one trade.
func PrintTrade(w io.Writer, t journal.TradeRecord) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s %s", t.Symbol, t.Direction, t.Date)))
	var b strings.Builder
	row(&b, "ID", t.ID)
	if at, err := id.Created(t.ID); err == nil {
		row(&b, "Logged", at.Local().Format("2006-01-02 15:04"))
	}
	row(&b, "Entry", fmt.Sprintf("%g", t.EntryPrice))
	row(&b, "Exit", fmt.Sprintf("%g", t.ExitPrice))
	row(&b, "Size", fmt.Sprintf("%g", t.Size))
	row(&b, "P&L", money(t.PnL))
	row(&b, "ROI", fmt.Sprintf("%.2f%%", t.ROI))
	row(&b, "R:R", fmt.Sprintf("%.2f", t.RRRatio))
	row(&b, "Status", statusText(t.Status))
	row(&b, "Strategy", t.Strategy)
	row(&b, "Emotion", fmt.Sprintf("%d/10", t.EmotionScale))
	if t.Notes != "" {
		row(&b, "Notes", t.Notes)
	}
	if t.EntryScreenshot != "" {
		row(&b, "Entry Shot", t.EntryScreenshot)
	}
	if t.ExitScreenshot != "" {
		row(&b, "Exit Shot", t.ExitScreenshot)
	}
	fmt.Fprintln(w, boxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// PrintNotices writes the notification center.
func PrintNotices(w io.Writer, notices []notify.Notice) {
	if len(notices) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No notifications."))
		return
	}
	for _, n := range notices {
		title := n.Title
		switch {
		case n.Priority == "high":
			title = lossStyle.Render(title)
		case n.IsNew:
			title = highStyle.Render(title)
		default:
			title = sectionStyle.Render(title)
		}
		fmt.Fprintf(w, "%s %s\n  %s\n", title, mutedStyle.Render("("+n.Time+")"), n.Description)
	}
}

// Comparison is the 30 against 90 day view of the reports page.
type Comparison struct {
	Recent   metrics.Performance `json:"last30"`
	Longer   metrics.Performance `json:"last90"`
	Momentum metrics.Momentum    `json:"momentum"`
}

// Compare builds the comparison as of now. trades should be chronological.
func Compare(trades []journal.TradeRecord, now time.Time) Comparison {
	recent := metrics.PeriodAt(trades, 30, now)
	longer := metrics.PeriodAt(trades, 90, now)
	return Comparison{
		Recent:   recent,
		Longer:   longer,
		Momentum: metrics.CompareMomentum(recent, longer),
	}
}

func PrintComparison(w io.Writer, c Comparison) {
	PrintPerformance(w, "Last 30 Days", c.Recent)
	PrintPerformance(w, "Last 90 Days", c.Longer)

	m := c.Momentum
	fmt.Fprintln(w, sectionStyle.Render("Momentum Differential"))
	row(w, "Net Velocity", fmt.Sprintf("%s (%.0f%% of 90d)", m.Velocity(), m.Contribution))
	row(w, "Efficiency", fmt.Sprintf("%s (%+.2f PF)", m.Efficiency(), m.ProfitFactorDiff))
	row(w, "Consistency", fmt.Sprintf("%s (%+.1f%% WR)", m.Consistency(), m.WinRateDiff))
}
