package memory

import "github.com/natexcvi/speedcam-llm/engines"

// Memory holds the messages of a single turn. Implementations are not
// shared between turns and need no locking.
type Memory interface {
	Add(msg *engines.ChatMessage) error
	AddPrompt(prompt *engines.ChatPrompt) error
	PromptWithContext(nextMessages ...*engines.ChatMessage) (*engines.ChatPrompt, error)
}
