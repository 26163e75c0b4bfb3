package coach

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type OpenAI struct {
	client    openai.Client
	apiKey    string
	maxTokens int64
}

func NewOpenAI(apiKey, baseURL string, maxTokens int) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &OpenAI{
		client:    openai.NewClient(opts...),
		apiKey:    apiKey,
		maxTokens: int64(maxTokens),
	}
}

func (o *OpenAI) Generate(ctx context.Context, model, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", ErrNoAPIKey
	}
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(model),
		MaxCompletionTokens: openai.Int(o.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
