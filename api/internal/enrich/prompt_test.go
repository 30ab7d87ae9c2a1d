package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"business-eval/api/internal/analysis"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(analysis.BusinessIdea{
		BusinessName:         "Acme",
		Description:          "Rockets for roadrunners",
		TargetMarket:         "coyotes",
		RevenueModel:         "one-time",
		CostStructure:        "high",
		DistributionChannels: "mail order",
		Industry:             "E-commerce",
	})

	for _, want := range []string{
		"Business Name: Acme",
		"Description: Rockets for roadrunners",
		"Target Market: coyotes",
		"Revenue Model: one-time",
		"Cost Structure: high",
		"Distribution Channels: mail order",
		"Industry: E-commerce",
		`"swot_analysis"`,
		`"viability_score"`,
		`"risk_factors"`,
		`"summary"`,
	} {
		assert.Contains(t, p, want)
	}
}
