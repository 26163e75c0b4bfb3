// Package service owns the in-memory trade collection shared by the HTTP
// server, scheduled jobs and CLI commands.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/internal/store"
	"github.com/rustyeddy/tradezilla/journal"
	"github.com/rustyeddy/tradezilla/metrics"
)

// Journal guards the collection. Every change is computed on a copy,
// persisted as a whole, and only then made visible; a failed save leaves
// the collection as it was.
type Journal struct {
	Repo   *store.Repository
	Logger *zap.Logger

	mu     sync.RWMutex
	trades []journal.TradeRecord
}

func NewJournal(repo *store.Repository, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{Repo: repo, Logger: logger}
}

// Load replaces the collection with what the repository holds.
func (j *Journal) Load(ctx context.Context) error {
	trades, err := j.Repo.LoadTrades(ctx)
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.trades = trades
	j.mu.Unlock()
	j.Logger.Debug("journal loaded", zap.Int("trades", len(trades)))
	return nil
}

// Trades returns a copy in stored order (newest entries first).
func (j *Journal) Trades() []journal.TradeRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return journal.Clone(j.trades)
}

// Chronological returns a copy sorted oldest first, the order streak and
// drawdown figures are read in.
func (j *Journal) Chronological() []journal.TradeRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return journal.SortByDate(j.trades, false)
}

func (j *Journal) Find(tradeID string) (journal.TradeRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return journal.Find(j.trades, tradeID)
}

// Save creates (empty tradeID) or replaces a trade.
func (j *Journal) Save(ctx context.Context, e journal.Entry, tradeID string) (journal.TradeRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	next, rec, err := journal.Save(j.trades, e, tradeID)
	if err != nil {
		return journal.TradeRecord{}, err
	}
	if err := j.Repo.SaveTrades(ctx, next); err != nil {
		return journal.TradeRecord{}, err
	}
	j.trades = next
	j.Logger.Info("trade saved",
		zap.String("id", rec.ID),
		zap.String("symbol", rec.Symbol),
		zap.Float64("pnl", rec.PnL),
		zap.Bool("created", tradeID == ""),
	)
	return rec, nil
}

func (j *Journal) Delete(ctx context.Context, tradeID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	next, err := journal.Delete(j.trades, tradeID)
	if err != nil {
		return err
	}
	if err := j.Repo.SaveTrades(ctx, next); err != nil {
		return err
	}
	j.trades = next
	j.Logger.Info("trade deleted", zap.String("id", tradeID))
	return nil
}

// Import adds already-derived records in front of the collection, in the
// order given.
func (j *Journal) Import(ctx context.Context, recs []journal.TradeRecord) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	seen := make(map[string]struct{}, len(j.trades))
	for _, t := range j.trades {
		seen[t.ID] = struct{}{}
	}
	next := make([]journal.TradeRecord, 0, len(recs)+len(j.trades))
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			return 0, fmt.Errorf("import: trade %s already exists", r.ID)
		}
		seen[r.ID] = struct{}{}
		next = append(next, r)
	}
	next = append(next, j.trades...)

	if err := j.Repo.SaveTrades(ctx, next); err != nil {
		return 0, err
	}
	j.trades = next
	j.Logger.Info("trades imported", zap.Int("count", len(recs)))
	return len(recs), nil
}

// Performance is the all-time aggregate in chronological order.
func (j *Journal) Performance() metrics.Performance {
	return metrics.Compute(j.Chronological())
}

// Period is the aggregate of the trailing days as of now, chronological.
func (j *Journal) Period(days int, now time.Time) metrics.Performance {
	return metrics.PeriodAt(j.Chronological(), days, now)
}

func (j *Journal) UserName(ctx context.Context) (string, error) {
	return j.Repo.LoadUserName(ctx)
}

func (j *Journal) SetUserName(ctx context.Context, name string) (string, error) {
	return j.Repo.SaveUserName(ctx, name)
}
