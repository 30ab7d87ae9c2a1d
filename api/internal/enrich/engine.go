package enrich

import (
	"context"
	"errors"
	"strings"
)

// Engine is a text-completion backend. Generate returns the raw generated text.
type Engine interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderAnthropic   = "anthropic"
	ProviderNone        = "none"
)

var ErrNoEngine = errors.New("enrich: no engine configured")

type Engines struct {
	HuggingFace Engine
	Gemini      Engine
	Anthropic   Engine
}

// GetEngine resolves a provider name. ProviderNone yields (nil, nil).
func (e *Engines) GetEngine(name string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderHuggingFace, "hf", "":
		eng = e.HuggingFace
	case ProviderGemini:
		eng = e.Gemini
	case ProviderAnthropic, "claude":
		eng = e.Anthropic
	case ProviderNone:
		return nil, nil
	default:
		return nil, errors.New("unknown provider " + name + "; use huggingface | gemini | anthropic | none")
	}
	if eng == nil {
		return nil, ErrNoEngine
	}
	return eng, nil
}
