package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rustyeddy/tradezilla/config"
)

// Provider sends one prompt to a text model and returns its answer.
type Provider interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

var ErrNoAPIKey = errors.New("ai api key not configured")

// NewProvider builds the provider named by cfg.Provider.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	timeout, err := cfg.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("ai timeout: %w", err)
	}
	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg.APIKey, cfg.BaseURL, timeout), nil
	case "anthropic":
		return NewAnthropic(cfg.APIKey, cfg.BaseURL, cfg.MaxTokens), nil
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

const GeminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini talks to the Generative Language REST API.
type Gemini struct {
	client *resty.Client
	apiKey string
}

func NewGemini(apiKey, baseURL string, timeout time.Duration) *Gemini {
	if baseURL == "" {
		baseURL = GeminiBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	return &Gemini{client: client, apiKey: apiKey}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// text joins the parts of the first candidate.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (g *Gemini) Generate(ctx context.Context, model, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(geminiRequest{
			Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		}).
		SetResult(&out).
		Post("/v1beta/models/" + model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode(), resp.String())
	}
	return out.text(), nil
}
