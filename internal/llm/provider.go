package llm

import (
	"context"
	"encoding/json"
)

// Provider is the text-generation collaborator every coaching operation
// goes through. Any backend fulfilling this contract is interchangeable.
type Provider interface {
	// Generate sends a prompt and returns structured output. When the
	// request carries a Schema the provider uses its native structured
	// output mechanism and the response Content is the validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation history. Coaching calls typically
	// send a single user message built from the dialogue log.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must satisfy.
	// When nil the Content is raw text wrapped as json.RawMessage.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 (deterministic) to 1.0.
	Temperature float64
}

// Message is a single turn in the conversation sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "coach-question".
	Name string

	// Description guides the model about what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, otherwise the raw text as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
