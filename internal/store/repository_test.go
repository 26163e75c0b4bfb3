package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/journal"
)

type brokenKV struct{ *MemoryKV }

var errBackend = errors.New("backend down")

func (brokenKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBackend }
func (brokenKV) Set(context.Context, string, []byte) error         { return errBackend }

func TestLoadTradesFallsBackToSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored []byte
	}{
		{"missing", nil},
		{"malformed", []byte(`{not json`)},
		{"empty list", []byte(`[]`)},
		{"null", []byte(`null`)},
		{"wrong shape", []byte(`{"id":"1"}`)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kv := NewMemoryKV()
			if tt.stored != nil {
				require.NoError(t, kv.Set(context.Background(), TradesKey, tt.stored))
			}
			repo := NewRepository(kv, zap.NewNop())

			got, err := repo.LoadTrades(context.Background())
			require.NoError(t, err)
			assert.Equal(t, journal.SeedTrades(), got)
		})
	}
}

func TestSaveThenLoadTrades(t *testing.T) {
	t.Parallel()

	repo := NewRepository(NewMemoryKV(), nil)
	ctx := context.Background()

	trades, _, err := journal.Save(nil, journal.Entry{
		Symbol: "eurusd", Direction: journal.Short, EntryPrice: 1.1, ExitPrice: 1.09, Size: 1000,
		Date: "2024-06-01", Strategy: "Scalping", EmotionScale: 6,
	}, "")
	require.NoError(t, err)

	require.NoError(t, repo.SaveTrades(ctx, trades))
	got, err := repo.LoadTrades(ctx)
	require.NoError(t, err)
	assert.Equal(t, trades, got)
}

func TestLoadsBrowserExport(t *testing.T) {
	t.Parallel()

	blob := `[{"id":"1","symbol":"BTCUSD","direction":"LONG","entryPrice":65000,"exitPrice":67200,"size":0.1,"pnl":220,"roi":3.38,"rrRatio":2,"date":"2024-05-10","strategy":"Breakout","emotionScale":8,"notes":"Clean breakout","status":"WIN"}]`
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), TradesKey, []byte(blob)))

	got, err := NewRepository(kv, nil).LoadTrades(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, journal.Long, got[0].Direction)
	assert.Equal(t, journal.Win, got[0].Status)
	assert.Equal(t, 220.0, got[0].PnL)
}

func TestRepositoryBackendErrors(t *testing.T) {
	t.Parallel()

	repo := NewRepository(brokenKV{NewMemoryKV()}, nil)
	ctx := context.Background()

	_, err := repo.LoadTrades(ctx)
	assert.ErrorIs(t, err, errBackend)
	assert.ErrorIs(t, repo.SaveTrades(ctx, nil), errBackend)
	_, err = repo.LoadUserName(ctx)
	assert.ErrorIs(t, err, errBackend)
	_, err = repo.SaveUserName(ctx, "Ann")
	assert.ErrorIs(t, err, errBackend)
}

func TestUserName(t *testing.T) {
	t.Parallel()

	repo := NewRepository(NewMemoryKV(), nil)
	ctx := context.Background()

	name, err := repo.LoadUserName(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserName, name)

	_, err = repo.SaveUserName(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	saved, err := repo.SaveUserName(ctx, "  Jane Smith ")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", saved)

	name, err = repo.LoadUserName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", name)

	raw, _, _ := repo.KV.Get(ctx, UserKey)
	assert.Equal(t, "Jane Smith", string(raw), "stored as plain text")
}
