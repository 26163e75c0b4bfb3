package coach

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradezilla/journal"
)

var now = time.Date(2024, 6, 26, 18, 0, 0, 0, time.Local)

func rec(symbol, date string, pnl float64) journal.TradeRecord {
	return journal.TradeRecord{
		ID: symbol + date, Symbol: symbol, Date: date, PnL: pnl, Status: journal.StatusOf(pnl),
		Direction: journal.Long, Strategy: "Breakout", EmotionScale: 7, Notes: "n", EntryPrice: 1, Size: 1,
	}
}

func TestReviewItems(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		rec("BTCUSD", "2024-06-25", 220),
		rec("EURUSD", "2024-06-10", 150),
		rec("NAS100", "2024-06-19", -100),
	}
	items := ReviewItems(trades, now)
	require.Len(t, items, 2)
	assert.Equal(t, ReviewItem{
		Symbol: "BTCUSD", PnL: 220, Status: journal.Win, Strategy: "Breakout",
		Notes: "n", Emotion: 7, Direction: journal.Long,
	}, items[0])
	assert.Equal(t, "NAS100", items[1].Symbol)

	assert.Empty(t, ReviewItems(nil, now))
}

func TestReviewPrompt(t *testing.T) {
	t.Parallel()

	p, err := ReviewPrompt([]ReviewItem{{Symbol: "BTCUSD", PnL: 220, Status: journal.Win, Emotion: 8, Direction: journal.Long}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "As an Elite Hedge Fund Performance Coach"))
	assert.Contains(t, p, `Performance Data: [{"symbol":"BTCUSD","pnl":220,"status":"WIN","strategy":"","notes":"","emotion":8,"direction":"LONG"}]`)
	assert.Contains(t, p, `The "Drill" for Next Week`)

	empty, err := ReviewPrompt(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "Performance Data: []")
}

func TestChatContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ChatContext(nil))

	trades := []journal.TradeRecord{
		rec("BTCUSD", "2024-05-10", 220),
		rec("NAS100", "2024-05-12", -100),
		rec("EURUSD", "2024-05-11", 0.5),
	}
	assert.Equal(t, "BTCUSD: WIN ($220), NAS100: LOSS ($-100), EURUSD: WIN ($0.5)", ChatContext(trades))

	many := make([]journal.TradeRecord, 0, 12)
	for i := 0; i < 12; i++ {
		many = append(many, rec("S"+string(rune('A'+i)), "2024-05-01", 1))
	}
	got := ChatContext(many)
	assert.Equal(t, 10, strings.Count(got, ": WIN"))
	assert.True(t, strings.HasPrefix(got, "SC: WIN"), "last ten in supplied order")
}

func TestChatPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"Context: My recent trades are [BTCUSD: WIN ($220)]. Question: Am I overtrading?",
		ChatPrompt("BTCUSD: WIN ($220)", "Am I overtrading?"))
}
