package llm

type LLMRequest struct {
	Prompt       string
	SystemPrompt string
	// Model overrides the client's default model when set.
	Model       string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
