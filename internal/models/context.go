package models

import "encoding/json"

// StdinContext is the optional JSON blob the host pipes to us on stdin:
// which model is active and how full its context window is. String fields
// are untrusted display text; the renderer strips escapes before they join
// the line.
type StdinContext struct {
	ModelName    string  `json:"model_name"`
	ContextPct   float64 `json:"context_pct"`
	ContextUsed  int64   `json:"context_used"`
	ContextLimit int64   `json:"context_limit"`
	CostUSD      float64 `json:"cost_usd"`
}

// ParseStdinContext decodes the host context blob. Malformed or empty input
// yields the zero value; this path must never fail the render.
func ParseStdinContext(data []byte) StdinContext {
	var ctx StdinContext
	if len(data) == 0 {
		return ctx
	}
	if err := json.Unmarshal(data, &ctx); err != nil {
		return StdinContext{}
	}
	if ctx.ContextPct < 0 {
		ctx.ContextPct = 0
	}
	if ctx.ContextPct > 100 {
		ctx.ContextPct = 100
	}
	return ctx
}
