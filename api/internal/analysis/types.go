package analysis

import "math"

// MaxPoints caps every list in a Result.
const MaxPoints = 3

// BusinessIdea is the form a client submits for evaluation.
type BusinessIdea struct {
	BusinessName         string `json:"businessName"`
	Description          string `json:"description"`
	TargetMarket         string `json:"targetMarket"`
	RevenueModel         string `json:"revenueModel"`
	CostStructure        string `json:"costStructure"`
	DistributionChannels string `json:"distributionChannels"`
	Industry             string `json:"industry"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Result is the viability analysis returned for one BusinessIdea.
type Result struct {
	SWOT           SWOT     `json:"swot_analysis"`
	ViabilityScore int      `json:"viability_score"`
	RiskFactors    []string `json:"risk_factors"`
	Summary        []string `json:"summary"`
}

// Normalize truncates every list to MaxPoints, replaces nil lists with empty ones
// and clamps the score. Summary is truncated like the other lists.
func (r Result) Normalize() Result {
	return Result{
		SWOT: SWOT{
			Strengths:     firstN(r.SWOT.Strengths, MaxPoints),
			Weaknesses:    firstN(r.SWOT.Weaknesses, MaxPoints),
			Opportunities: firstN(r.SWOT.Opportunities, MaxPoints),
			Threats:       firstN(r.SWOT.Threats, MaxPoints),
		},
		ViabilityScore: ClampScore(r.ViabilityScore),
		RiskFactors:    firstN(r.RiskFactors, MaxPoints),
		Summary:        firstN(r.Summary, MaxPoints),
	}
}

func ClampScore(score int) int {
	return min(max(score, 0), 100)
}

// ScoreFromFloat rounds a model-provided score and clamps it.
func ScoreFromFloat(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return 100
		}
		return 0
	}
	return ClampScore(int(math.Round(min(max(v, -1), 101))))
}

// Tier maps a score to the wording used in the first summary line.
func Tier(score int) string {
	switch {
	case score > 70:
		return "strong"
	case score > 40:
		return "moderate"
	default:
		return "weak"
	}
}

func firstN(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
