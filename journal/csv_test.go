package journal

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderAndRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SeedTrades()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"1", "2024-05-10", "BTCUSD", "LONG", "65000", "67200", "0.1",
		"220", rows[1][8], "2", "WIN", "Breakout", "8", "Clean breakout", "", "",
	}, rows[1])
}

func TestReadCSVRederivesFields(t *testing.T) {
	t.Parallel()

	// a ledger exported before the screenshot columns existed
	in := strings.Join([]string{
		strings.Join(requiredColumns, ","),
		// pnl/roi/rr/status columns are deliberately wrong
		"T1,2024-06-01,ethusdt,SHORT,3000,2900,1.5,999,999,999,LOSS,Fvg Retest,6,faded the pump",
		",2024-06-02,SOLUSDT,LONG,150,150,10,0,0,0,WIN,Breakout,,",
	}, "\n")

	n := 0
	recs, err := ReadCSV(strings.NewReader(in), func() string { n++; return "generated" })
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "T1", recs[0].ID)
	assert.Equal(t, "ETHUSDT", recs[0].Symbol)
	assert.Equal(t, 150.0, recs[0].PnL)
	assert.Equal(t, Win, recs[0].Status)
	assert.Equal(t, 2.0, recs[0].RRRatio)
	assert.Equal(t, 6, recs[0].EmotionScale)

	assert.Equal(t, "generated", recs[1].ID)
	assert.Equal(t, 1, n)
	assert.Equal(t, Breakeven, recs[1].Status)
	assert.Equal(t, DefaultEmotion, recs[1].EmotionScale)
}

func TestCSVRoundTripKeepsLedger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SeedTrades()))

	recs, err := ReadCSV(&buf, func() string { return "unused" })
	require.NoError(t, err)
	assert.Equal(t, SeedTrades(), recs)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader(""), nil)
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("id,date\n1,2024-01-01\n"), nil)
	assert.Error(t, err)

	bad := strings.Join(requiredColumns, ",") + "\nT1,2024-06-01,ETH,LONG,abc,1,1,0,0,0,WIN,x,5,\n"
	_, err = ReadCSV(strings.NewReader(bad), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	invalid := strings.Join(requiredColumns, ",") + "\nT1,2024-06-01,,LONG,1,1,1,0,0,0,WIN,x,5,\n"
	_, err = ReadCSV(strings.NewReader(invalid), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Symbol is required")
}

func TestCSVRoundTripKeepsScreenshots(t *testing.T) {
	t.Parallel()

	trades := SeedTrades()
	trades[0].EntryScreenshot = "data:image/png;base64,iVBORw0KGgo="
	trades[2].ExitScreenshot = "https://example.com/exit.png"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trades))

	recs, err := ReadCSV(&buf, func() string { return "unused" })
	require.NoError(t, err)
	assert.Equal(t, trades, recs)
}

func TestReadCSVRejectsOutOfRangeAmounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
		msg  string
	}{
		{"overflowing entry", "a,2024-05-01,BTC,LONG,1e400,2,1,0,0,0,WIN,x,5,", "entry_price"},
		{"infinite size", "a,2024-05-01,BTC,LONG,1,2,Inf,0,0,0,WIN,x,5,", "size"},
		{"overflowing pnl", "a,2024-05-01,BTC,LONG,1e308,1.7e308,10,0,0,0,WIN,x,5,", "Trade result is out of range"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := strings.Join(requiredColumns, ",") + "\n" + tt.row + "\n"
			var err error
			require.NotPanics(t, func() {
				_, err = ReadCSV(strings.NewReader(in), nil)
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
