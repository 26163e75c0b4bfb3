package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// requiredColumns must be present in an imported ledger. Screenshot columns
// are optional so files exported before they existed still load.
var requiredColumns = []string{
	"id", "date", "symbol", "direction", "entry_price", "exit_price", "size",
	"pnl", "roi", "rr_ratio", "status", "strategy", "emotion", "notes",
}

var csvHeader = append(append([]string{}, requiredColumns...), "entry_screenshot", "exit_screenshot")

// WriteCSV writes the ledger with a header row, one row per trade, in the
// order supplied.
func WriteCSV(w io.Writer, trades []TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date,
			t.Symbol,
			string(t.Direction),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.Size),
			f(t.PnL),
			f(t.ROI),
			f(t.RRRatio),
			string(t.Status),
			t.Strategy,
			strconv.Itoa(t.EmotionScale),
			t.Notes,
			t.EntryScreenshot,
			t.ExitScreenshot,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a ledger written by WriteCSV. The pnl, roi, rr_ratio and
// status columns are ignored: every row goes through Record so the derived
// fields always match the prices. Rows without an id get a fresh one.
func ReadCSV(r io.Reader, newID func() string) ([]TradeRecord, error) {
	// FieldsPerRecord 0: every row must match the header width
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var out []TradeRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		e := Entry{
			Symbol:    row[col["symbol"]],
			Direction: Direction(row[col["direction"]]),
			Date:      row[col["date"]],
			Strategy:  row[col["strategy"]],
			Notes:     row[col["notes"]],
		}
		if i, ok := col["entry_screenshot"]; ok {
			e.EntryScreenshot = row[i]
		}
		if i, ok := col["exit_screenshot"]; ok {
			e.ExitScreenshot = row[i]
		}
		if e.EntryPrice, err = ParseAmount(row[col["entry_price"]]); err != nil {
			return nil, fmt.Errorf("line %d: entry_price: %w", line, err)
		}
		if e.ExitPrice, err = ParseAmount(row[col["exit_price"]]); err != nil {
			return nil, fmt.Errorf("line %d: exit_price: %w", line, err)
		}
		if e.Size, err = ParseAmount(row[col["size"]]); err != nil {
			return nil, fmt.Errorf("line %d: size: %w", line, err)
		}
		if s := row[col["emotion"]]; s != "" {
			if e.EmotionScale, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("line %d: emotion: %w", line, err)
			}
		}

		tradeID := row[col["id"]]
		if tradeID == "" {
			tradeID = newID()
		}
		rec, err := Record(tradeID, e)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
