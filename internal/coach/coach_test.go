package coach

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/config"
	"github.com/rustyeddy/tradezilla/journal"
)

type call struct {
	model  string
	prompt string
}

type fakeProvider struct {
	mu    sync.Mutex
	calls []call
	reply string
	err   error
}

func (f *fakeProvider) Generate(_ context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{model, prompt})
	return f.reply, f.err
}

func newCoach(p Provider) *Coach {
	return &Coach{Provider: p, ReviewModel: "review-model", ChatModel: "chat-model", Logger: zap.NewNop()}
}

func TestWeeklyReview(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{reply: "## Summary\nSolid week."}
	trades := []journal.TradeRecord{rec("BTCUSD", "2024-06-25", 220)}
	before := journal.Clone(trades)

	got := newCoach(fp).WeeklyReview(context.Background(), trades, now)
	assert.NoError(t, got.Err)
	assert.Equal(t, "## Summary\nSolid week.", got.Text)
	require.Len(t, fp.calls, 1)
	assert.Equal(t, "review-model", fp.calls[0].model)
	assert.Contains(t, fp.calls[0].prompt, `"symbol":"BTCUSD"`)
	assert.Equal(t, before, trades)
}

func TestWeeklyReviewFailures(t *testing.T) {
	t.Parallel()

	got := newCoach(&fakeProvider{err: errors.New("401")}).WeeklyReview(context.Background(), nil, now)
	assert.Error(t, got.Err)
	assert.Equal(t, ReviewFailed, got.Text)

	got = newCoach(&fakeProvider{reply: "  "}).WeeklyReview(context.Background(), nil, now)
	assert.NoError(t, got.Err)
	assert.Equal(t, ReviewEmpty, got.Text)
}

func TestAsk(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{reply: "Size down."}
	trades := []journal.TradeRecord{rec("NAS100", "2024-05-12", -100)}

	got := newCoach(fp).Ask(context.Background(), trades, "What now?")
	assert.NoError(t, got.Err)
	assert.Equal(t, "Size down.", got.Text)
	require.Len(t, fp.calls, 1)
	assert.Equal(t, "chat-model", fp.calls[0].model)
	assert.Equal(t, "Context: My recent trades are [NAS100: LOSS ($-100)]. Question: What now?", fp.calls[0].prompt)
}

func TestAskEmptyQuestionMakesNoCall(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{reply: "x"}
	got := newCoach(fp).Ask(context.Background(), nil, "   ")
	assert.ErrorIs(t, got.Err, ErrEmptyQuestion)
	assert.Empty(t, got.Text)
	assert.Empty(t, fp.calls)
}

func TestAskFailures(t *testing.T) {
	t.Parallel()

	got := newCoach(&fakeProvider{err: context.DeadlineExceeded}).Ask(context.Background(), nil, "hi")
	assert.ErrorIs(t, got.Err, context.DeadlineExceeded)
	assert.Equal(t, ChatFailed, got.Text)

	got = newCoach(&fakeProvider{}).Ask(context.Background(), nil, "hi")
	assert.Equal(t, ChatEmpty, got.Text)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"gemini", "anthropic", "openai"} {
		cfg := config.Default().AI
		cfg.Provider = p
		c, err := New(cfg, nil)
		require.NoError(t, err, p)
		assert.NotNil(t, c.Provider)
		assert.Equal(t, "gemini-3-pro-preview", c.ReviewModel)
	}

	cfg := config.Default().AI
	cfg.Provider = "llama"
	_, err := New(cfg, nil)
	assert.Error(t, err)

	cfg = config.Default().AI
	cfg.Timeout = "later"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestMissingKeyIsAnInlineFailure(t *testing.T) {
	t.Parallel()

	c, err := New(config.Default().AI, nil)
	require.NoError(t, err)
	got := c.WeeklyReview(context.Background(), nil, now)
	assert.ErrorIs(t, got.Err, ErrNoAPIKey)
	assert.Equal(t, ReviewFailed, got.Text)
}
