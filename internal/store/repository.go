package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/journal"
)

// Keys match the browser storage layout, so an exported blob can be
// loaded as is.
const (
	TradesKey = "alpha_trader_pro_trades_v4"
	UserKey   = "alpha_trader_user_data"
)

const DefaultUserName = "John Doe"

var ErrEmptyName = errors.New("user name is required")

// Repository reads and writes the journal's values in a KV.
type Repository struct {
	KV     KV
	Logger *zap.Logger
}

func NewRepository(kv KV, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{KV: kv, Logger: logger}
}

// LoadTrades returns the stored collection. A missing, unreadable or empty
// list yields the seed set instead; only a failing backend is an error.
func (r *Repository) LoadTrades(ctx context.Context) ([]journal.TradeRecord, error) {
	b, found, err := r.KV.Get(ctx, TradesKey)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	if !found {
		r.Logger.Info("no stored trades, using seed set")
		return journal.SeedTrades(), nil
	}

	var trades []journal.TradeRecord
	if err := json.Unmarshal(b, &trades); err != nil {
		r.Logger.Warn("stored trades unreadable, using seed set", zap.Error(err))
		return journal.SeedTrades(), nil
	}
	if len(trades) == 0 {
		r.Logger.Warn("stored trade list empty, using seed set")
		return journal.SeedTrades(), nil
	}
	return trades, nil
}

// SaveTrades writes the whole collection as one value.
func (r *Repository) SaveTrades(ctx context.Context, trades []journal.TradeRecord) error {
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	b, err := json.Marshal(trades)
	if err != nil {
		return fmt.Errorf("encode trades: %w", err)
	}
	if err := r.KV.Set(ctx, TradesKey, b); err != nil {
		return fmt.Errorf("save trades: %w", err)
	}
	return nil
}

// LoadUserName returns the stored display name or DefaultUserName. The
// name is stored as plain text, not JSON.
func (r *Repository) LoadUserName(ctx context.Context) (string, error) {
	b, found, err := r.KV.Get(ctx, UserKey)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	name := strings.TrimSpace(string(b))
	if !found || name == "" {
		return DefaultUserName, nil
	}
	return name, nil
}

func (r *Repository) SaveUserName(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if err := r.KV.Set(ctx, UserKey, []byte(name)); err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}
	return name, nil
}
