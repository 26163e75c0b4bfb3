// Package metrics derives performance figures from a set of trade records.
//
// Every function here is pure: it reads the slice it is given, never
// modifies it, and recomputes its result in full on each call. Nothing is
// cached.
package metrics

import (
	"time"

	"github.com/rustyeddy/tradezilla/journal"
)

// InitialBalance is the account balance the equity curve and drawdown walk
// start from.
const InitialBalance = 10000.0

// Performance is the aggregate view of a set of trades. WinRate and
// MaxDrawdown are percentages.
type Performance struct {
	TotalPnL         float64 `json:"totalPnl"`
	WinRate          float64 `json:"winRate"`
	ProfitFactor     float64 `json:"profitFactor"`
	AvgRR            float64 `json:"avgRR"`
	CurrentWinStreak int     `json:"currentStreak"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	TotalTrades      int     `json:"totalTrades"`
}

// AvgTrade is the mean result per trade, 0 for an empty set.
func (p Performance) AvgTrade() float64 {
	n := p.TotalTrades
	if n == 0 {
		n = 1
	}
	return p.TotalPnL / float64(n)
}

// Compute aggregates trades.
//
// CurrentWinStreak and MaxDrawdown walk the slice in the order supplied and
// treat the last element as the most recent trade. Compute does not sort;
// pass journal.SortByDate(trades, false) when a chronological reading is
// wanted.
func Compute(trades []journal.TradeRecord) Performance {
	if len(trades) == 0 {
		return Performance{}
	}

	var (
		total, grossProfit, grossLoss, rrSum float64
		wins                                 int
	)
	for _, t := range trades {
		total += t.PnL
		rrSum += t.RRRatio
		switch t.Status {
		case journal.Win:
			wins++
			grossProfit += t.PnL
		case journal.Loss:
			grossLoss += t.PnL
		}
	}
	if grossLoss < 0 {
		grossLoss = -grossLoss
	}

	// no losses: report gross profit rather than +Inf
	profitFactor := grossProfit
	if grossLoss != 0 {
		profitFactor = grossProfit / grossLoss
	}

	n := float64(len(trades))
	return Performance{
		TotalPnL:         total,
		WinRate:          float64(wins) / n * 100,
		ProfitFactor:     profitFactor,
		AvgRR:            rrSum / n,
		CurrentWinStreak: WinStreak(trades),
		MaxDrawdown:      MaxDrawdown(trades),
		TotalTrades:      len(trades),
	}
}

// WinStreak counts wins from the end of trades backwards. Breakeven trades
// are skipped without counting; the first loss ends the scan.
func WinStreak(trades []journal.TradeRecord) int {
	streak := 0
	for i := len(trades) - 1; i >= 0; i-- {
		switch trades[i].Status {
		case journal.Win:
			streak++
		case journal.Loss:
			return streak
		}
	}
	return streak
}

// MaxDrawdown is the deepest peak-to-trough fall of the running balance, in
// percent of the peak, walking trades in the order supplied from
// InitialBalance.
func MaxDrawdown(trades []journal.TradeRecord) float64 {
	peak := InitialBalance
	balance := InitialBalance
	maxDD := 0.0
	for _, t := range trades {
		balance += t.PnL
		if balance > peak {
			peak = balance
		}
		if dd := (peak - balance) / peak * 100; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Since keeps trades dated on or after the calendar day `days` days before
// now. Order is preserved.
func Since(trades []journal.TradeRecord, days int, now time.Time) []journal.TradeRecord {
	return journal.OnOrAfter(trades, now.AddDate(0, 0, -days))
}

// Period computes the metrics of the last `days` days as of today.
func Period(trades []journal.TradeRecord, days int) Performance {
	return PeriodAt(trades, days, time.Now())
}

// PeriodAt is Period with an explicit clock.
func PeriodAt(trades []journal.TradeRecord, days int, now time.Time) Performance {
	return Compute(Since(trades, days, now))
}
