// Package journal holds the trade record, the single-trade metrics that are
// derived from it, and the validated save path that is the only way a
// record is created or changed.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for TradeRecord.Date. ISO
// ordering makes lexical comparison chronological.
const DateLayout = "2006-01-02"

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

func (d Direction) Valid() bool {
	return d == Long || d == Short
}

type Status string

const (
	Win       Status = "WIN"
	Loss      Status = "LOSS"
	Breakeven Status = "BREAKEVEN"
)

// TradeRecord is one closed position. PnL, ROI, RRRatio and Status are
// derived from EntryPrice, ExitPrice, Size and Direction when the record is
// saved and are never edited on their own.
type TradeRecord struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	Size       float64   `json:"size"`
	PnL        float64   `json:"pnl"`
	ROI        float64   `json:"roi"`
	RRRatio    float64   `json:"rrRatio"`
	Date       string    `json:"date"`
	Status     Status    `json:"status"`

	Strategy        string `json:"strategy"`
	EmotionScale    int    `json:"emotionScale"`
	Notes           string `json:"notes"`
	EntryScreenshot string `json:"entryScreenshot,omitempty"`
	ExitScreenshot  string `json:"exitScreenshot,omitempty"`
}

// Day parses the record date in loc.
func (t TradeRecord) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, t.Date, loc)
}

// TradeMetrics are the figures derived from a single trade.
type TradeMetrics struct {
	PnL     float64
	ROI     float64
	RRRatio float64
	Status  Status
}

// ComputeTradeMetrics derives pnl, roi, reward:risk and status from the four
// inputs of a trade. entry and size must be positive; Entry.Validate
// guarantees that before a record reaches this point.
//
// RRRatio has no stop-loss to work with, so it is pnl/|pnl*0.5| for a
// winner (always 2) and 0 otherwise. AvgRR depends on that exact value.
func ComputeTradeMetrics(entry, exit, size float64, dir Direction) TradeMetrics {
	e := decimal.NewFromFloat(entry)
	x := decimal.NewFromFloat(exit)
	s := decimal.NewFromFloat(size)

	move := x.Sub(e)
	if dir != Long {
		move = e.Sub(x)
	}
	pnl := move.Mul(s).InexactFloat64()
	roi := pnl / (entry * size) * 100

	var rr float64
	if pnl > 0 {
		rr = pnl / abs(pnl*0.5)
	}

	return TradeMetrics{
		PnL:     pnl,
		ROI:     roi,
		RRRatio: rr,
		Status:  StatusOf(pnl),
	}
}

// StatusOf classifies a signed result.
func StatusOf(pnl float64) Status {
	switch {
	case pnl > 0:
		return Win
	case pnl < 0:
		return Loss
	default:
		return Breakeven
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
