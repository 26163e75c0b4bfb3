package metrics

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradezilla/journal"
)

type DayStatus string

const (
	DayEmpty     DayStatus = "empty"
	DayWin       DayStatus = "win"
	DayLoss      DayStatus = "loss"
	DayBreakeven DayStatus = "breakeven"
)

// DayCell is one day of a calendar month.
type DayCell struct {
	Day    int       `json:"day"`
	Date   string    `json:"dateStr"`
	NetPnL float64   `json:"netPnl"`
	Count  int       `json:"count"`
	Status DayStatus `json:"status"`
}

// Month is a calendar month laid out in Sunday-first weeks of seven cells.
// Cells before day 1 and after the last day are nil.
type Month struct {
	Year  int          `json:"year"`
	Month time.Month   `json:"month"`
	Weeks [][]*DayCell `json:"weeks"`
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Days returns the non-placeholder cells in date order.
func (m Month) Days() []DayCell {
	var out []DayCell
	for _, w := range m.Weeks {
		for _, c := range w {
			if c != nil {
				out = append(out, *c)
			}
		}
	}
	return out
}

// Calendar buckets trades into the days of year/month.
func Calendar(trades []journal.TradeRecord, year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// normalize out-of-range months the same way time.Date does
	year, month = first.Year(), first.Month()
	daysInMonth := first.AddDate(0, 1, -1).Day()

	m := Month{Year: year, Month: month}
	week := make([]*DayCell, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, nil)
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		dayTrades := journal.OnDay(trades, date)

		var net float64
		for _, t := range dayTrades {
			net += t.PnL
		}
		week = append(week, &DayCell{
			Day:    day,
			Date:   date,
			NetPnL: net,
			Count:  len(dayTrades),
			Status: dayStatus(net, len(dayTrades)),
		})

		if len(week) == 7 {
			m.Weeks = append(m.Weeks, week)
			week = make([]*DayCell, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

func dayStatus(net float64, count int) DayStatus {
	switch {
	case count == 0:
		return DayEmpty
	case net > 0:
		return DayWin
	case net < 0:
		return DayLoss
	default:
		return DayBreakeven
	}
}

// ShiftMonth moves year/month by delta months in either direction.
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
