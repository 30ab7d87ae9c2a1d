package anthropic

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"business-eval/api/internal/enrich"
)

const DefaultModel = "claude-sonnet-4-20250514"

const systemPrompt = "You are a startup analyst evaluating business ideas. Respond with strict JSON only."

// Messager is the part of the SDK client the engine uses.
type Messager interface {
	New(ctx context.Context, params sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

type Engine struct {
	Model    string
	messages Messager
}

func New(apiKey, model string) *Engine {
	var m Messager
	if key := strings.TrimSpace(apiKey); key != "" {
		c := sdk.NewClient(option.WithAPIKey(key))
		m = &c.Messages
	}
	return NewWithMessager(m, model)
}

func NewWithMessager(m Messager, model string) *Engine {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Engine{Model: strings.TrimSpace(model), messages: m}
}

func (e *Engine) Name() string { return enrich.ProviderAnthropic }

func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	if e.messages == nil {
		return "", errors.New("ANTHROPIC_API_KEY is empty")
	}
	resp, err := e.messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(e.Model),
		MaxTokens:   1024,
		System:      []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
		Temperature: sdk.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic: empty response")
	}
	return sb.String(), nil
}
