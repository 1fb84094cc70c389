package llm

import "context"

// Role identifies the author of a chat message sent to a provider
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the chat sequence supplied to a provider
type Message struct {
	Role    Role
	Content string
}

// SamplingConfig bounds generation so replies stay short and on-topic
type SamplingConfig struct {
	Temperature     float32
	MaxOutputTokens int
}

// Response contains the generation result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Generate produces a reply for the given chat sequence
	Generate(ctx context.Context, messages []Message, cfg SamplingConfig) (*Response, error)
}
