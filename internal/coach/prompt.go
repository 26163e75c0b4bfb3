package coach

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradezilla/journal"
	"github.com/rustyeddy/tradezilla/metrics"
)

// ReviewDays is the window the weekly review looks at.
const ReviewDays = 7

// ChatContextSize is how many trades are quoted to the chat model.
const ChatContextSize = 10

// ReviewItem is the reduced view of a trade sent to the model.
type ReviewItem struct {
	Symbol    string            `json:"symbol"`
	PnL       float64           `json:"pnl"`
	Status    journal.Status    `json:"status"`
	Strategy  string            `json:"strategy"`
	Notes     string            `json:"notes"`
	Emotion   int               `json:"emotion"`
	Direction journal.Direction `json:"direction"`
}

// ReviewItems reduces the trades of the last ReviewDays days as of now.
func ReviewItems(trades []journal.TradeRecord, now time.Time) []ReviewItem {
	week := metrics.Since(trades, ReviewDays, now)
	out := make([]ReviewItem, 0, len(week))
	for _, t := range week {
		out = append(out, ReviewItem{
			Symbol:    t.Symbol,
			PnL:       t.PnL,
			Status:    t.Status,
			Strategy:  t.Strategy,
			Notes:     t.Notes,
			Emotion:   t.EmotionScale,
			Direction: t.Direction,
		})
	}
	return out
}

// ChatContext quotes the last ChatContextSize trades in the order supplied,
// e.g. "BTCUSD: WIN ($220), NAS100: LOSS ($-100)".
func ChatContext(trades []journal.TradeRecord) string {
	recent := journal.Recent(trades, ChatContextSize)
	parts := make([]string, 0, len(recent))
	for _, t := range recent {
		parts = append(parts, fmt.Sprintf("%s: %s ($%s)", t.Symbol, t.Status, strconv.FormatFloat(t.PnL, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}

const reviewTemplate = `As an Elite Hedge Fund Performance Coach and Trading Psychologist, review my trading performance for the LAST 7 DAYS.

Performance Data: %s

Please provide a structured response in Markdown:
1. **7-Day Executive Summary**: How did I do overall? (Be direct).
2. **The "Truth" (Mistakes Identified)**: Analyze my notes and emotion scales. Did I revenge trade? Was my R:R poor? Did I hesitate? Point out specific flaws.
3. **Performance Verdict & Motivation**:
   - If my P&L is negative or performance is poor: Provide a powerful, empathetic motivational message to prevent a spiral. Remind me that losses are tuition for market wisdom.
   - If performance is good: Remind me to stay humble and stick to the process.
4. **The "Drill" for Next Week**: One specific, actionable exercise to fix my biggest mistake.

Note: Use a professional yet supportive tone. If I've had many losses, be a mentor, not just an analyst.`

func ReviewPrompt(items []ReviewItem) (string, error) {
	if items == nil {
		items = []ReviewItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode review data: %w", err)
	}
	return fmt.Sprintf(reviewTemplate, data), nil
}

func ChatPrompt(context, question string) string {
	return fmt.Sprintf("Context: My recent trades are [%s]. Question: %s", context, question)
}
