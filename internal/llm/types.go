package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Usage is the token accounting reported by the backend.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionResponse contains the result of an LLM completion request.
// Usage is nil when the backend did not report it.
type CompletionResponse struct {
	Content      string
	Usage        *Usage
	Model        string
	FinishReason string
}

// DeltaFunc receives each incremental piece of text while a completion streams.
type DeltaFunc func(delta string)
