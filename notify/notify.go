// Package notify turns the current date and trade history into the short
// list of notices shown in the notification center.
package notify

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradezilla/journal"
	"github.com/rustyeddy/tradezilla/metrics"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSummary Kind = "summary"
	KindRisk    Kind = "risk"
)

const (
	WeekendID = "weekend-rem"
	WeeklyID  = "weekly-sum"
	RiskID    = "risk-alert"
)

// Notice is a derived notification. Notices are rebuilt on every call and
// carry no read state.
type Notice struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	IsNew       bool   `json:"isNew"`
	Priority    string `json:"priority,omitempty"`

	// weekly summary only; a breakeven week still reports amount 0
	Amount float64 `json:"amount"`
	Count  int     `json:"count,omitempty"`
}

type Options struct {
	// LossAlert enables the consecutive-loss notice.
	LossAlert bool
}

func DefaultOptions() Options {
	return Options{LossAlert: true}
}

// Derive builds the notices for now, in display order: weekend reminder,
// weekly summary, consecutive-loss alert. Each appears only when its
// condition holds.
func Derive(now time.Time, trades []journal.TradeRecord, opts Options) []Notice {
	out := []Notice{}

	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		out = append(out, Notice{
			ID:          WeekendID,
			Kind:        KindInfo,
			Title:       "Weekend Strategy Time",
			Description: "Markets are offline. Review your weekly performance and update your playbook.",
			Time:        "Today",
			IsNew:       true,
		})
	}

	if week := metrics.Since(trades, 7, now); len(week) > 0 {
		var pnl float64
		for _, t := range week {
			pnl += t.PnL
		}
		out = append(out, Notice{
			ID:          WeeklyID,
			Kind:        KindSummary,
			Title:       "Weekly Performance Update",
			Description: fmt.Sprintf("Your weekly net P&L is %s across %d trades.", journal.FormatMoney(pnl), len(week)),
			Time:        "1h ago",
			Amount:      pnl,
			Count:       len(week),
		})
	}

	if opts.LossAlert && lastTwoLost(trades) {
		out = append(out, Notice{
			ID:          RiskID,
			Kind:        KindRisk,
			Title:       "Risk Alert: Consecutive Loss",
			Description: "You hit 2 losses in a row. Close the terminal for today to protect your capital.",
			Time:        "Just now",
			IsNew:       true,
			Priority:    "high",
		})
	}
	return out
}

// lastTwoLost reports whether the two most recent trades by date both lost.
func lastTwoLost(trades []journal.TradeRecord) bool {
	if len(trades) < 2 {
		return false
	}
	recent := journal.SortByDate(trades, true)
	return recent[0].Status == journal.Loss && recent[1].Status == journal.Loss
}
