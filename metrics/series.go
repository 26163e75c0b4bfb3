package metrics

import (
	"time"

	"github.com/rustyeddy/tradezilla/journal"
)

// StartLabel labels the synthetic first point of an equity curve.
const StartLabel = "Start"

type EquityPoint struct {
	Label   string  `json:"date"`
	Balance float64 `json:"balance"`
}

// EquityCurve returns the running balance after each trade in date order,
// preceded by a StartLabel point at InitialBalance. trades is sorted on a
// copy; same-day trades keep their relative order.
func EquityCurve(trades []journal.TradeRecord) []EquityPoint {
	sorted := journal.SortByDate(trades, false)

	balance := InitialBalance
	points := make([]EquityPoint, 0, len(sorted)+1)
	points = append(points, EquityPoint{Label: StartLabel, Balance: balance})
	for _, t := range sorted {
		balance += t.PnL
		points = append(points, EquityPoint{Label: t.Date, Balance: balance})
	}
	return points
}

// Tail returns the last n points. n <= 0 returns every point.
func Tail(points []EquityPoint, n int) []EquityPoint {
	if n <= 0 || n >= len(points) {
		return points
	}
	return points[len(points)-n:]
}

type DailyPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	PnL   float64 `json:"pnl"`
	Count int     `json:"count"`
}

// DailyPnL sums each of the last `days` calendar days ending with now,
// oldest first. Days without trades are present with zero values.
func DailyPnL(trades []journal.TradeRecord, days int, now time.Time) []DailyPoint {
	if days <= 0 {
		return nil
	}
	out := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		date := d.Format(journal.DateLayout)
		var pnl float64
		dayTrades := journal.OnDay(trades, date)
		for _, t := range dayTrades {
			pnl += t.PnL
		}
		out = append(out, DailyPoint{
			Date:  date,
			Label: d.Format("01/02"),
			PnL:   pnl,
			Count: len(dayTrades),
		})
	}
	return out
}
