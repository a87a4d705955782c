package engines

import "context"

//go:generate mockgen -source=engine.go -destination=mocks/engine.go -package=mocks
type LLM interface {
	Chat(ctx context.Context, prompt *ChatPrompt) (*ChatMessage, error)
}

type LLMWithFunctionCalls interface {
	LLM
	// Define functions that can be called by the LLM
	// using native function call functionality.
	// Overrides any previously defined functions.
	// Call this once, before any call to `ChatWithFunctions`;
	// the engine only reads the definitions afterwards.
	SetFunctions(funcs ...FunctionSpecs)
	ChatWithFunctions(ctx context.Context, prompt *ChatPrompt) (*ChatMessage, error)
}

type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type ParameterSpecs struct {
	Type        string                     `json:"type"`
	Description string                     `json:"description,omitempty"`
	Properties  map[string]*ParameterSpecs `json:"properties,omitempty"`
	Required    []string                   `json:"required,omitempty"`
	Items       *ParameterSpecs            `json:"items,omitempty"`
	Enum        []any                      `json:"enum,omitempty"`
	Pattern     string                     `json:"pattern,omitempty"`
}

type FunctionSpecs struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  *ParameterSpecs `json:"parameters"`
}
