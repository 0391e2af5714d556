package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a generation call. The backend
// does not report usage on every path; zero values mean "not reported".
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// CallMeta holds operational metadata for a single remote generation call.
type CallMeta struct {
	Component string
	Usage     TokenUsage
	Latency   time.Duration
}
