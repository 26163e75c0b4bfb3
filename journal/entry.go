package journal

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Strategies are the setups offered when logging a trade.
var Strategies = []string{
	"Breakout",
	"Supply & Demand",
	"Mean Reversion",
	"Trend Following",
	"Liquidity Sweep",
	"Fvg Retest",
}

// Symbols are offered as suggestions when typing an instrument.
var Symbols = []string{
	"BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT", "ADAUSDT", "AVAXUSDT",
	"DOTUSDT", "MATICUSDT", "LINKUSDT", "DOGEUSDT", "SHIBUSDT", "LTCUSDT",
	"BCHUSDT", "ATOMUSDT", "NEARUSDT", "APTUSDT", "ARBUSDT", "OPUSDT",
	"SUIUSDT", "TIAUSDT", "SEIUSDT", "INJUSDT", "ORDIUSDT", "RNDRUSDT",
	"PEPEUSDT", "BONKUSDT", "WIFUSDT", "JUPUSDT", "DYDXUSDT", "UNIUSDT",
	"AAVEUSDT", "FILUSDT", "ICPUSDT", "STXUSDT", "IMXUSDT", "GRTUSDT",
}

const DefaultEmotion = 5

// Entry is the user-supplied part of a trade, as typed into a form.
type Entry struct {
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	Size       float64   `json:"size"`
	Date       string    `json:"date"`

	Strategy        string `json:"strategy"`
	Notes           string `json:"notes"`
	EntryScreenshot string `json:"entryScreenshot,omitempty"`
	ExitScreenshot  string `json:"exitScreenshot,omitempty"`

	// EmotionScale runs from 1 (calm) to 10 (tilted). 0 means not given
	// and Normalize replaces it with DefaultEmotion.
	EmotionScale int `json:"emotionScale"`
}

// NewEntry returns an Entry with the form defaults filled in.
func NewEntry(now time.Time) Entry {
	return Entry{
		Direction:    Long,
		Date:         now.Format(DateLayout),
		Strategy:     Strategies[0],
		EmotionScale: DefaultEmotion,
	}
}

// EntryOf turns a saved record back into editable input.
func EntryOf(t TradeRecord) Entry {
	return Entry{
		Symbol:          t.Symbol,
		Direction:       t.Direction,
		EntryPrice:      t.EntryPrice,
		ExitPrice:       t.ExitPrice,
		Size:            t.Size,
		Date:            t.Date,
		Strategy:        t.Strategy,
		EmotionScale:    t.EmotionScale,
		Notes:           t.Notes,
		EntryScreenshot: t.EntryScreenshot,
		ExitScreenshot:  t.ExitScreenshot,
	}
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "invalid trade: " + strings.Join(parts, "; ")
}

// Normalize trims the symbol and fills empty optional fields.
func (e *Entry) Normalize() {
	e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
	e.Date = strings.TrimSpace(e.Date)
	e.Direction = Direction(strings.ToUpper(string(e.Direction)))
	if e.Direction == "" {
		e.Direction = Long
	}
	if e.Strategy == "" {
		e.Strategy = Strategies[0]
	}
	if e.EmotionScale == 0 {
		e.EmotionScale = DefaultEmotion
	}
}

// Validate reports every invalid field at once. A nil return means the
// entry can be saved.
func (e Entry) Validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(e.Symbol) == "" {
		errs["symbol"] = "Symbol is required"
	}
	if !Direction(strings.ToUpper(string(e.Direction))).Valid() {
		errs["direction"] = "Direction must be LONG or SHORT"
	}
	if !validAmount(e.EntryPrice) {
		errs["entryPrice"] = "Invalid entry"
	}
	if !validAmount(e.ExitPrice) {
		errs["exitPrice"] = "Invalid exit"
	}
	if !validAmount(e.Size) {
		errs["size"] = "Invalid size"
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(e.Date)); err != nil {
		errs["date"] = "Date must be YYYY-MM-DD"
	}
	if e.EmotionScale < 0 || e.EmotionScale > 10 {
		errs["emotionScale"] = "Emotion must be between 1 and 10"
	}
	if len(errs) == 0 {
		// each input is finite but the product can still overflow a float64
		m := ComputeTradeMetrics(e.EntryPrice, e.ExitPrice, e.Size, Direction(strings.ToUpper(string(e.Direction))))
		if !finite(m.PnL) || !finite(m.ROI) {
			errs["pnl"] = "Trade result is out of range"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validAmount is false for zero, negatives, NaN and infinities.
func validAmount(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ParseAmount reads a price or size typed by the user.
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	v := d.InexactFloat64()
	if !finite(v) {
		return 0, fmt.Errorf("parse amount %q: out of range", s)
	}
	return v, nil
}

// FormatMoney renders a signed amount as "+$50.00" / "-$12.50".
func FormatMoney(x float64) string {
	d := decimal.NewFromFloat(x)
	sign := "+"
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + d.Abs().StringFixed(2)
}

// SeedTrades is the demo set used when nothing usable is stored yet. The
// derived fields go through ComputeTradeMetrics like any saved record.
func SeedTrades() []TradeRecord {
	seed := []TradeRecord{
		{ID: "1", Symbol: "BTCUSD", Direction: Long, EntryPrice: 65000, ExitPrice: 67200, Size: 0.1, Date: "2024-05-10", Strategy: "Breakout", EmotionScale: 8, Notes: "Clean breakout"},
		{ID: "2", Symbol: "EURUSD", Direction: Short, EntryPrice: 1.0850, ExitPrice: 1.0820, Size: 50000, Date: "2024-05-11", Strategy: "Supply & Demand", EmotionScale: 9, Notes: "London session rejection"},
		{ID: "3", Symbol: "NAS100", Direction: Long, EntryPrice: 18200, ExitPrice: 18150, Size: 2, Date: "2024-05-12", Strategy: "Mean Reversion", EmotionScale: 4, Notes: "FOMO entry"},
	}
	for i := range seed {
		seed[i].apply(ComputeTradeMetrics(seed[i].EntryPrice, seed[i].ExitPrice, seed[i].Size, seed[i].Direction))
	}
	return seed
}
