package enrich

import (
	"encoding/json"
	"fmt"

	"business-eval/api/internal/analysis"
	"business-eval/api/internal/util"
)

const (
	ReasonNoJSONObject = "no_json_object"
	ReasonInvalidJSON  = "invalid_json"
	ReasonMissingField = "missing_field"
	ReasonInvalidField = "invalid_field"
)

// ParseError reports why generated text could not be turned into a Result.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse generated text: " + e.Reason
	}
	return fmt.Sprintf("parse generated text: %s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type generatedResult struct {
	SWOT *struct {
		Strengths     []string `json:"strengths"`
		Weaknesses    []string `json:"weaknesses"`
		Opportunities []string `json:"opportunities"`
		Threats       []string `json:"threats"`
	} `json:"swot_analysis"`
	ViabilityScore *float64 `json:"viability_score"`
	RiskFactors    []string `json:"risk_factors"`
	Summary        []string `json:"summary"`
}

// ParseAnalysis extracts the outermost {...} span from generated text and decodes it.
// It returns either a normalized Result or a *ParseError, never a partial result.
func ParseAnalysis(text string) (analysis.Result, error) {
	raw, ok := util.OutermostBraces(text)
	if !ok {
		return analysis.Result{}, &ParseError{Reason: ReasonNoJSONObject}
	}

	var g generatedResult
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return analysis.Result{}, &ParseError{Reason: ReasonInvalidJSON, Err: err}
	}
	switch {
	case g.SWOT == nil:
		return analysis.Result{}, &ParseError{Reason: ReasonMissingField, Err: fmt.Errorf("swot_analysis")}
	case g.ViabilityScore == nil:
		return analysis.Result{}, &ParseError{Reason: ReasonMissingField, Err: fmt.Errorf("viability_score")}
	case g.Summary == nil:
		return analysis.Result{}, &ParseError{Reason: ReasonMissingField, Err: fmt.Errorf("summary")}
	case len(g.Summary) < analysis.MaxPoints:
		return analysis.Result{}, &ParseError{Reason: ReasonInvalidField, Err: fmt.Errorf("summary has %d entries, want %d", len(g.Summary), analysis.MaxPoints)}
	}

	return analysis.Result{
		SWOT: analysis.SWOT{
			Strengths:     g.SWOT.Strengths,
			Weaknesses:    g.SWOT.Weaknesses,
			Opportunities: g.SWOT.Opportunities,
			Threats:       g.SWOT.Threats,
		},
		ViabilityScore: analysis.ScoreFromFloat(*g.ViabilityScore),
		RiskFactors:    g.RiskFactors,
		Summary:        g.Summary,
	}.Normalize(), nil
}
