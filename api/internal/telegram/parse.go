package telegram

import (
	"errors"
	"strings"

	"business-eval/api/internal/analysis"
)

type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

type field struct {
	label string
	set   func(*analysis.BusinessIdea, string)
}

// fields is in template order; aliases map onto the same entry.
var fields = []field{
	{"Business name", func(i *analysis.BusinessIdea, v string) { i.BusinessName = v }},
	{"Description", func(i *analysis.BusinessIdea, v string) { i.Description = v }},
	{"Target market", func(i *analysis.BusinessIdea, v string) { i.TargetMarket = v }},
	{"Revenue model", func(i *analysis.BusinessIdea, v string) { i.RevenueModel = v }},
	{"Cost structure", func(i *analysis.BusinessIdea, v string) { i.CostStructure = v }},
	{"Distribution channels", func(i *analysis.BusinessIdea, v string) { i.DistributionChannels = v }},
	{"Industry", func(i *analysis.BusinessIdea, v string) { i.Industry = v }},
}

var aliases = map[string]int{
	"name":         0,
	"business":     0,
	"market":       2,
	"revenue":      3,
	"costs":        4,
	"cost":         4,
	"distribution": 5,
	"channels":     5,
}

// labelKey folds "Business Name", "business_name" and "businessName" together.
func labelKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldIndex(label string) (int, bool) {
	key := labelKey(label)
	for i, f := range fields {
		if labelKey(f.label) == key {
			return i, true
		}
	}
	i, ok := aliases[key]
	return i, ok
}

// ParseIdea reads "Field: value" lines. Lines without a known label continue
// the previous field, so a description may span several lines.
func ParseIdea(text string) (analysis.BusinessIdea, error) {
	if strings.TrimSpace(text) == "" {
		return analysis.BusinessIdea{}, errors.New("empty message")
	}

	values := make([][]string, len(fields))
	seen := make([]bool, len(fields))
	cur := -1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if label, value, ok := strings.Cut(line, ":"); ok {
			if i, known := fieldIndex(strings.TrimSpace(label)); known {
				cur = i
				seen[i] = true
				if v := strings.TrimSpace(value); v != "" {
					values[i] = append(values[i], v)
				}
				continue
			}
		}
		if cur >= 0 && line != "" {
			values[cur] = append(values[cur], line)
		}
	}

	var idea analysis.BusinessIdea
	var missing []string
	for i, f := range fields {
		if !seen[i] {
			missing = append(missing, f.label)
			continue
		}
		f.set(&idea, strings.Join(values[i], " "))
	}
	if len(missing) > 0 {
		return analysis.BusinessIdea{}, &MissingFieldsError{Fields: missing}
	}
	return idea, nil
}
