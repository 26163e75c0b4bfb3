// Package coach asks a language model for commentary on the journal. It
// only reads trades; failures come back as a message to show the user.
package coach

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/config"
	"github.com/rustyeddy/tradezilla/journal"
)

// Messages shown in place of a model answer.
const (
	ReviewFailed = "Error: Failed to connect to the AI coach. Please ensure your API Key is valid."
	ReviewEmpty  = "I couldn't generate an analysis. Please try again."
	ChatFailed   = "Sorry, I'm having trouble thinking right now."
	ChatEmpty    = "I'm not sure how to answer that."
)

var ErrEmptyQuestion = errors.New("question is empty")

// Reply is what the user sees. Err is set when Text is a failure message.
type Reply struct {
	Text string `json:"text"`
	Err  error  `json:"-"`
}

type Coach struct {
	Provider    Provider
	ReviewModel string
	ChatModel   string
	Logger      *zap.Logger
}

// New wires a Coach from config.
func New(cfg config.AIConfig, logger *zap.Logger) (*Coach, error) {
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{
		Provider:    p,
		ReviewModel: cfg.ReviewModel,
		ChatModel:   cfg.ChatModel,
		Logger:      logger,
	}, nil
}

// WeeklyReview asks for a structured review of the last seven days.
func (c *Coach) WeeklyReview(ctx context.Context, trades []journal.TradeRecord, now time.Time) Reply {
	items := ReviewItems(trades, now)
	prompt, err := ReviewPrompt(items)
	if err != nil {
		c.Logger.Error("coach review prompt", zap.Error(err))
		return Reply{Text: ReviewFailed, Err: err}
	}

	start := time.Now()
	text, err := c.Provider.Generate(ctx, c.ReviewModel, prompt)
	if err != nil {
		c.Logger.Error("coach review failed", zap.String("model", c.ReviewModel), zap.Error(err))
		return Reply{Text: ReviewFailed, Err: err}
	}
	c.Logger.Info("coach review done",
		zap.String("model", c.ReviewModel),
		zap.Int("trades", len(items)),
		zap.Duration("took", time.Since(start)),
	)
	if strings.TrimSpace(text) == "" {
		return Reply{Text: ReviewEmpty}
	}
	return Reply{Text: text}
}

// Ask answers a free-form question with the recent trades as context. An
// empty question makes no call.
func (c *Coach) Ask(ctx context.Context, trades []journal.TradeRecord, question string) Reply {
	if strings.TrimSpace(question) == "" {
		return Reply{Err: ErrEmptyQuestion}
	}

	text, err := c.Provider.Generate(ctx, c.ChatModel, ChatPrompt(ChatContext(trades), question))
	if err != nil {
		c.Logger.Error("coach chat failed", zap.String("model", c.ChatModel), zap.Error(err))
		return Reply{Text: ChatFailed, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return Reply{Text: ChatEmpty}
	}
	return Reply{Text: text}
}
