package llm

import "strings"

// Pricing holds the dollar price of a model in USD per one million tokens.
// The zero value prices everything at $0, which is what unknown and local
// models (Ollama, llama.cpp) resolve to.
type Pricing struct {
	// PromptUSDPerMTok is the price of one million prompt tokens.
	PromptUSDPerMTok float64

	// CompletionUSDPerMTok is the price of one million completion tokens.
	CompletionUSDPerMTok float64
}

// Cost returns the dollar cost of a single request/response pair.
func (p Pricing) Cost(u Usage) float64 {
	return float64(u.PromptTokens)*p.PromptUSDPerMTok/1e6 +
		float64(u.CompletionTokens)*p.CompletionUSDPerMTok/1e6
}

// PricingFor returns the published API pricing for known model names,
// matched by prefix. Unknown models return the zero Pricing.
func PricingFor(model string) Pricing {
	lower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lower, "gpt-4o-mini"):
		return Pricing{PromptUSDPerMTok: 0.15, CompletionUSDPerMTok: 0.60}
	case strings.HasPrefix(lower, "gpt-4o"):
		return Pricing{PromptUSDPerMTok: 2.50, CompletionUSDPerMTok: 10.00}
	case strings.HasPrefix(lower, "gpt-4-turbo"):
		return Pricing{PromptUSDPerMTok: 10.00, CompletionUSDPerMTok: 30.00}
	case strings.HasPrefix(lower, "gpt-4"):
		return Pricing{PromptUSDPerMTok: 30.00, CompletionUSDPerMTok: 60.00}
	case strings.HasPrefix(lower, "gpt-3.5-turbo"):
		return Pricing{PromptUSDPerMTok: 0.50, CompletionUSDPerMTok: 1.50}
	case strings.HasPrefix(lower, "o1-mini"):
		return Pricing{PromptUSDPerMTok: 1.10, CompletionUSDPerMTok: 4.40}
	case strings.HasPrefix(lower, "o1"):
		return Pricing{PromptUSDPerMTok: 15.00, CompletionUSDPerMTok: 60.00}
	case strings.HasPrefix(lower, "o3-mini"):
		return Pricing{PromptUSDPerMTok: 1.10, CompletionUSDPerMTok: 4.40}
	case strings.HasPrefix(lower, "o3"):
		return Pricing{PromptUSDPerMTok: 2.00, CompletionUSDPerMTok: 8.00}
	case strings.HasPrefix(lower, "claude-3-5-haiku"):
		return Pricing{PromptUSDPerMTok: 0.80, CompletionUSDPerMTok: 4.00}
	case strings.HasPrefix(lower, "claude-3-5-sonnet"), strings.HasPrefix(lower, "claude-sonnet"):
		return Pricing{PromptUSDPerMTok: 3.00, CompletionUSDPerMTok: 15.00}
	case strings.HasPrefix(lower, "claude-opus"), strings.HasPrefix(lower, "claude-3-opus"):
		return Pricing{PromptUSDPerMTok: 15.00, CompletionUSDPerMTok: 75.00}
	case strings.HasPrefix(lower, "gemini-1.5-flash"), strings.HasPrefix(lower, "gemini-2.0-flash"):
		return Pricing{PromptUSDPerMTok: 0.10, CompletionUSDPerMTok: 0.40}
	case strings.HasPrefix(lower, "gemini-1.5-pro"):
		return Pricing{PromptUSDPerMTok: 1.25, CompletionUSDPerMTok: 5.00}
	}
	return Pricing{}
}
