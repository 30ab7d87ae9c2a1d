package app

import (
	"github.com/sirupsen/logrus"

	"business-eval/api/internal/config"
	"business-eval/api/internal/enrich"
	"business-eval/api/internal/enrich/anthropic"
	"business-eval/api/internal/enrich/gemini"
	"business-eval/api/internal/enrich/huggingface"
	"business-eval/api/internal/evaluate"
)

// NewEngines builds every provider from config. Engines without a key still
// exist and fail fast on use, so the fallback answers.
func NewEngines(e config.EnrichmentConfig) *enrich.Engines {
	return &enrich.Engines{
		HuggingFace: huggingface.New(e.HuggingFaceAPIKey, e.HuggingFaceModelURL),
		Gemini:      gemini.New(e.GeminiAPIKey, e.GeminiModel),
		Anthropic:   anthropic.New(e.AnthropicAPIKey, e.AnthropicModel),
	}
}

// NewEvaluator wires the configured provider into an Evaluator.
func NewEvaluator(cfg *config.Config, log logrus.FieldLogger) (*evaluate.Evaluator, error) {
	ec := cfg.Enrichment
	eng, err := NewEngines(ec).GetEngine(ec.Provider)
	if err != nil {
		return nil, err
	}
	if eng == nil {
		log.Info("enrichment disabled; using rule-based scoring only")
		return evaluate.New(nil, ec.Budget, log), nil
	}

	en := enrich.New(eng, enrich.Options{
		CallTimeout:       ec.CallTimeout,
		RequestsPerMinute: ec.RequestsPerMinute,
	})
	log.WithFields(logrus.Fields{
		"engine":       en.EngineName(),
		"call_timeout": ec.CallTimeout.String(),
		"budget":       ec.Budget.String(),
	}).Info("enrichment enabled")
	return evaluate.New(en, ec.Budget, log), nil
}
