package journal

import (
	"errors"
	"sort"
	"time"

	"github.com/rustyeddy/tradezilla/pkg/id"
)

// ErrNotFound is returned when an operation names a trade id that is not in
// the collection.
var ErrNotFound = errors.New("trade not found")

func (t *TradeRecord) apply(m TradeMetrics) {
	t.PnL = m.PnL
	t.ROI = m.ROI
	t.RRRatio = m.RRRatio
	t.Status = m.Status
}

// Record builds a TradeRecord from a valid entry. The derived fields are
// computed here and nowhere else.
func Record(tradeID string, e Entry) (TradeRecord, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return TradeRecord{}, err
	}

	rec := TradeRecord{
		ID:              tradeID,
		Symbol:          e.Symbol,
		Direction:       e.Direction,
		EntryPrice:      e.EntryPrice,
		ExitPrice:       e.ExitPrice,
		Size:            e.Size,
		Date:            e.Date,
		Strategy:        e.Strategy,
		EmotionScale:    e.EmotionScale,
		Notes:           e.Notes,
		EntryScreenshot: e.EntryScreenshot,
		ExitScreenshot:  e.ExitScreenshot,
	}
	rec.apply(ComputeTradeMetrics(e.EntryPrice, e.ExitPrice, e.Size, e.Direction))
	return rec, nil
}

// Save validates e and returns a new collection containing it. An empty
// tradeID creates a record with a fresh id at the front of the collection;
// otherwise the record with that id is replaced in place and keeps its id.
// trades is never modified.
func Save(trades []TradeRecord, e Entry, tradeID string) ([]TradeRecord, TradeRecord, error) {
	if tradeID == "" {
		rec, err := Record(id.New(), e)
		if err != nil {
			return nil, TradeRecord{}, err
		}
		out := make([]TradeRecord, 0, len(trades)+1)
		out = append(out, rec)
		out = append(out, trades...)
		return out, rec, nil
	}

	idx := indexOf(trades, tradeID)
	if idx < 0 {
		return nil, TradeRecord{}, ErrNotFound
	}
	rec, err := Record(tradeID, e)
	if err != nil {
		return nil, TradeRecord{}, err
	}
	out := Clone(trades)
	out[idx] = rec
	return out, rec, nil
}

// Delete returns a new collection without tradeID.
func Delete(trades []TradeRecord, tradeID string) ([]TradeRecord, error) {
	idx := indexOf(trades, tradeID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	out := make([]TradeRecord, 0, len(trades)-1)
	out = append(out, trades[:idx]...)
	out = append(out, trades[idx+1:]...)
	return out, nil
}

// Find returns the record with tradeID.
func Find(trades []TradeRecord, tradeID string) (TradeRecord, error) {
	idx := indexOf(trades, tradeID)
	if idx < 0 {
		return TradeRecord{}, ErrNotFound
	}
	return trades[idx], nil
}

func indexOf(trades []TradeRecord, tradeID string) int {
	for i := range trades {
		if trades[i].ID == tradeID {
			return i
		}
	}
	return -1
}

// Clone copies the collection so callers can sort or edit without touching
// the shared one.
func Clone(trades []TradeRecord) []TradeRecord {
	if trades == nil {
		return nil
	}
	out := make([]TradeRecord, len(trades))
	copy(out, trades)
	return out
}

// SortByDate returns a copy ordered by date. The sort is stable, so trades
// on the same day keep their relative order.
func SortByDate(trades []TradeRecord, desc bool) []TradeRecord {
	out := Clone(trades)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// Recent returns the last n records in the order supplied.
func Recent(trades []TradeRecord, n int) []TradeRecord {
	if n <= 0 {
		return nil
	}
	if len(trades) <= n {
		return Clone(trades)
	}
	return Clone(trades[len(trades)-n:])
}

// OnOrAfter keeps records dated on or after day. day is compared by its
// calendar date in its own location.
func OnOrAfter(trades []TradeRecord, day time.Time) []TradeRecord {
	cutoff := day.Format(DateLayout)
	var out []TradeRecord
	for _, t := range trades {
		if t.Date >= cutoff {
			out = append(out, t)
		}
	}
	return out
}

// OnDay keeps records dated exactly date (YYYY-MM-DD).
func OnDay(trades []TradeRecord, date string) []TradeRecord {
	var out []TradeRecord
	for _, t := range trades {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}
