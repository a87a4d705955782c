package engines

import "encoding/json"

type ConvRole string

const (
	ConvRoleUser      ConvRole = "user"
	ConvRoleSystem    ConvRole = "system"
	ConvRoleAssistant ConvRole = "assistant"
	ConvRoleFunction  ConvRole = "function"
)

type ChatMessage struct {
	Role         ConvRole      `json:"role"`
	Text         string        `json:"content"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
	// Name is the function a ConvRoleFunction message answers.
	Name string `json:"name,omitempty"`
}

type FunctionCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments"`
}

type ChatPrompt struct {
	History []*ChatMessage
}

// NewFunctionResultMessage builds the message that hands a function's output
// back to the model.
func NewFunctionResultMessage(name string, output json.RawMessage) *ChatMessage {
	return &ChatMessage{
		Role: ConvRoleFunction,
		Name: name,
		Text: string(output),
	}
}
