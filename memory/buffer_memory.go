package memory

import (
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/samber/lo"
)

type BufferMemory struct {
	MaxHistory int
	Buffer     []*engines.ChatMessage
}

// reduceBuffer drops the oldest non-system messages until the buffer fits.
// System messages are kept so the instructions survive trimming.
func (memory *BufferMemory) reduceBuffer() {
	if memory.MaxHistory <= 0 {
		return
	}
	for len(memory.Buffer) > memory.MaxHistory {
		_, idx, ok := lo.FindIndexOf(memory.Buffer, func(msg *engines.ChatMessage) bool {
			return msg.Role != engines.ConvRoleSystem
		})
		if !ok {
			return
		}
		memory.Buffer = append(memory.Buffer[:idx:idx], memory.Buffer[idx+1:]...)
	}
}

func (memory *BufferMemory) Add(msg *engines.ChatMessage) error {
	memory.Buffer = append(memory.Buffer, msg)
	memory.reduceBuffer()
	return nil
}

func (memory *BufferMemory) AddPrompt(prompt *engines.ChatPrompt) error {
	memory.Buffer = append(memory.Buffer, prompt.History...)
	memory.reduceBuffer()
	return nil
}

func (memory *BufferMemory) PromptWithContext(nextMessages ...*engines.ChatMessage) (*engines.ChatPrompt, error) {
	memory.Buffer = append(memory.Buffer, nextMessages...)
	memory.reduceBuffer()
	history := make([]*engines.ChatMessage, len(memory.Buffer))
	copy(history, memory.Buffer)
	return &engines.ChatPrompt{
		History: history,
	}, nil
}

func NewBufferedMemory(maxHistory int) *BufferMemory {
	return &BufferMemory{
		MaxHistory: maxHistory,
	}
}
