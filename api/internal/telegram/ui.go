package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"business-eval/api/internal/analysis"
)

const startText = "Send me a business idea and I will score it.\n" +
	"Use one line per field, e.g. \"Industry: SaaS\".\n" +
	"Commands: /template, /health"

// TemplateText lists every field the evaluator needs.
const TemplateText = "Business name: \n" +
	"Description: \n" +
	"Target market: \n" +
	"Revenue model: \n" +
	"Cost structure: \n" +
	"Distribution channels: \n" +
	"Industry: "

func makeTemplateKeyboard() tgbotapi.InlineKeyboardMarkup {
	btn := tgbotapi.NewInlineKeyboardButtonData("Show template", cbTemplate)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
}

// FormatResult renders an analysis as plain chat text.
func FormatResult(name string, res analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\n", displayName(name))
	fmt.Fprintf(&b, "Viability score: %d/100 (%s)\n", res.ViabilityScore, analysis.Tier(res.ViabilityScore))

	section(&b, "Strengths", res.SWOT.Strengths)
	section(&b, "Weaknesses", res.SWOT.Weaknesses)
	section(&b, "Opportunities", res.SWOT.Opportunities)
	section(&b, "Threats", res.SWOT.Threats)
	section(&b, "Risk factors", res.RiskFactors)

	if len(res.Summary) > 0 {
		b.WriteString("\nSummary:\n")
		for _, s := range res.Summary {
			b.WriteString(strings.TrimSpace(s))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(items) == 0 {
		b.WriteString("• none\n")
		return
	}
	for _, it := range items {
		b.WriteString("• ")
		b.WriteString(it)
		b.WriteString("\n")
	}
}

func displayName(name string) string {
	if s := strings.TrimSpace(name); s != "" {
		return s
	}
	return "Your idea"
}
