package enrich

import (
	"fmt"

	"business-eval/api/internal/analysis"
)

const schemaPrompt = `Provide analysis in this exact JSON format:
{
    "swot_analysis": {
        "strengths": ["point1", "point2", "point3"],
        "weaknesses": ["point1", "point2", "point3"],
        "opportunities": ["point1", "point2", "point3"],
        "threats": ["point1", "point2", "point3"]
    },
    "viability_score": number_between_0_and_100,
    "risk_factors": ["risk1", "risk2", "risk3"],
    "summary": ["point1", "point2", "point3"]
}`

// BuildPrompt embeds every idea field and the target schema.
func BuildPrompt(idea analysis.BusinessIdea) string {
	return fmt.Sprintf(`Analyze this business idea and provide a detailed analysis in JSON format:

Business Name: %s
Description: %s
Target Market: %s
Revenue Model: %s
Cost Structure: %s
Distribution Channels: %s
Industry: %s

%s`,
		idea.BusinessName,
		idea.Description,
		idea.TargetMarket,
		idea.RevenueModel,
		idea.CostStructure,
		idea.DistributionChannels,
		idea.Industry,
		schemaPrompt,
	)
}
