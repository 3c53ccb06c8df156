package llm_test

import (
	"math"
	"testing"

	"github.com/timler/ai-utils/pkg/provider/llm"
)

func TestPricingFor_MatchesByPrefix(t *testing.T) {
	t.Parallel()

	gpt4 := llm.PricingFor("gpt-4")
	if gpt4.PromptUSDPerMTok != 30.00 {
		t.Errorf("gpt-4 prompt price = %v, want 30.00", gpt4.PromptUSDPerMTok)
	}

	// "gpt-4o" must not fall into the plain "gpt-4" bucket.
	gpt4o := llm.PricingFor("gpt-4o-2024-08-06")
	if gpt4o.PromptUSDPerMTok != 2.50 {
		t.Errorf("gpt-4o prompt price = %v, want 2.50", gpt4o.PromptUSDPerMTok)
	}
}

func TestPricingFor_UnknownModelIsFree(t *testing.T) {
	t.Parallel()

	p := llm.PricingFor("llama3.2")
	if p != (llm.Pricing{}) {
		t.Errorf("unknown model pricing = %+v, want zero", p)
	}
	if got := p.Cost(llm.Usage{PromptTokens: 1000, CompletionTokens: 1000}); got != 0 {
		t.Errorf("unknown model cost = %v, want 0", got)
	}
}

func TestPricing_Cost(t *testing.T) {
	t.Parallel()

	p := llm.Pricing{PromptUSDPerMTok: 30.00, CompletionUSDPerMTok: 60.00}
	got := p.Cost(llm.Usage{PromptTokens: 1_000_000, CompletionTokens: 500_000})
	want := 30.00 + 30.00
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Cost = %v, want %v", got, want)
	}
}

func TestPricing_CostZeroUsage(t *testing.T) {
	t.Parallel()

	p := llm.PricingFor("gpt-3.5-turbo")
	if got := p.Cost(llm.Usage{}); got != 0 {
		t.Errorf("Cost of zero usage = %v, want 0", got)
	}
}
