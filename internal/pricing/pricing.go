// Package pricing estimates batch job cost from token usage.
package pricing

import "github.com/regismesquita/oaibatch/internal/store"

// ModelPricing holds Batch API token prices in dollars per 1M tokens.
type ModelPricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// Table maps model identifiers to their pricing. Tables are treated as
// immutable after construction and injected where needed; there is no
// process-wide mutable table.
type Table map[string]ModelPricing

// Default is the built-in Batch API price table.
var Default = Table{
	"gpt-5.2":     {InputPer1M: 0.875, OutputPer1M: 7.00},
	"o3-pro":      {InputPer1M: 10.00, OutputPer1M: 40.00},
	"gpt-5.2-pro": {InputPer1M: 10.50, OutputPer1M: 84.00},
}

// Estimate is a cost breakdown in dollars. No rounding is applied;
// display layers round for presentation.
type Estimate struct {
	Input  float64
	Output float64
	Total  float64
}

// Estimate computes the cost of usage under the given model. It returns
// false when the model has no table entry or usage is absent or empty,
// rather than a zero or garbage estimate. An all-zero usage counts as
// absent: real responses always consume tokens, so zeros mean the
// counts were never recorded.
func (t Table) Estimate(usage *store.Usage, model string) (Estimate, bool) {
	if usage == nil || (usage.InputTokens == 0 && usage.OutputTokens == 0 && usage.TotalTokens == 0) {
		return Estimate{}, false
	}
	p, ok := t[model]
	if !ok {
		return Estimate{}, false
	}
	in := float64(usage.InputTokens) / 1_000_000 * p.InputPer1M
	out := float64(usage.OutputTokens) / 1_000_000 * p.OutputPer1M
	return Estimate{Input: in, Output: out, Total: in + out}, true
}
