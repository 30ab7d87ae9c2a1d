package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	detailedDescriptionChars = 100

	noStrengthPlaceholder = "Need to identify core strengths"
	noThreatPlaceholder   = "Need to assess market risks"
)

type bucket int

const (
	strengths bucket = iota
	weaknesses
	opportunities
	threats
	risks
)

type point struct {
	to   bucket
	text string
}

// branch is one outcome of a rule; only the first matching branch of a rule applies.
type branch struct {
	when   func(BusinessIdea) bool
	delta  int
	points []point
}

type rule []branch

// rules are evaluated in order. The order decides which points survive truncation.
var rules = []rule{
	{
		{when: func(i BusinessIdea) bool { return utf8.RuneCountInString(i.Description) > detailedDescriptionChars }, delta: 20,
			points: []point{{strengths, "Detailed business description"}}},
		{when: always, delta: 0,
			points: []point{{weaknesses, "Business description could be more detailed"}}},
	},
	{
		{when: contains(targetMarket, "global"), delta: 15,
			points: []point{{opportunities, "Global market potential"}, {risks, "International market challenges"}}},
		{when: contains(targetMarket, "local"), delta: 10,
			points: []point{{strengths, "Focused local market approach"}}},
	},
	{
		{when: contains(revenueModel, "subscription"), delta: 20,
			points: []point{{strengths, "Recurring revenue model"}}},
		{when: contains(revenueModel, "one-time"), delta: 10,
			points: []point{{weaknesses, "One-time revenue may limit growth"}}},
	},
	{
		{when: contains(costStructure, "low"), delta: 15,
			points: []point{{strengths, "Low cost structure"}}},
		{when: contains(costStructure, "high"), delta: 5,
			points: []point{{risks, "High operational costs"}}},
	},
	{
		{when: contains(distributionChannels, "online"), delta: 15,
			points: []point{{strengths, "Online distribution capability"}, {opportunities, "Digital market reach"}}},
		{when: contains(distributionChannels, "physical"), delta: 10,
			points: []point{{risks, "Physical distribution costs"}}},
	},
	{
		{when: industryIs("SaaS"), delta: 15,
			points: []point{{opportunities, "Growing SaaS market"}, {strengths, "Scalable business model"}}},
		{when: industryIs("E-commerce"), delta: 10,
			points: []point{{threats, "High competition in e-commerce"}}},
		{when: industryIs("Services"), delta: 12,
			points: []point{{strengths, "Service-based business stability"}}},
	},
}

// Score runs the rule table against idea. It is a pure function of its input.
func Score(idea BusinessIdea) Result {
	score := 0
	lists := make([][]string, risks+1)
	for _, r := range rules {
		for _, b := range r {
			if !b.when(idea) {
				continue
			}
			score += b.delta
			for _, p := range b.points {
				lists[p.to] = append(lists[p.to], p.text)
			}
			break
		}
	}
	score = ClampScore(score)

	return Result{
		SWOT: SWOT{
			Strengths:     lists[strengths],
			Weaknesses:    lists[weaknesses],
			Opportunities: lists[opportunities],
			Threats:       lists[threats],
		},
		ViabilityScore: score,
		RiskFactors:    lists[risks],
		Summary:        summarize(idea.BusinessName, score, lists[strengths], lists[threats]),
	}.Normalize()
}

func summarize(name string, score int, strengthList, threatList []string) []string {
	strength := noStrengthPlaceholder
	if len(strengthList) > 0 {
		strength = strengthList[0]
	}
	threat := noThreatPlaceholder
	if len(threatList) > 0 {
		threat = threatList[0]
	}
	return []string{
		fmt.Sprintf("%s shows %s market potential", name, Tier(score)),
		"Key strength: " + strength,
		"Main challenge: " + threat,
	}
}

func always(BusinessIdea) bool { return true }

func targetMarket(i BusinessIdea) string         { return i.TargetMarket }
func revenueModel(i BusinessIdea) string         { return i.RevenueModel }
func costStructure(i BusinessIdea) string        { return i.CostStructure }
func distributionChannels(i BusinessIdea) string { return i.DistributionChannels }

func contains(field func(BusinessIdea) string, keyword string) func(BusinessIdea) bool {
	return func(i BusinessIdea) bool {
		return strings.Contains(strings.ToLower(field(i)), keyword)
	}
}

func industryIs(name string) func(BusinessIdea) bool {
	return func(i BusinessIdea) bool { return i.Industry == name }
}
