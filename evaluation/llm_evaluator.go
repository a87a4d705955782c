package evaluation

import (
	"context"

	"github.com/natexcvi/speedcam-llm/engines"
)

type llmTester struct {
	llm engines.LLM
}

// NewLLMTester evaluates plain model responses, without function calling.
func NewLLMTester(llm engines.LLM) Tester[*engines.ChatPrompt, *engines.ChatMessage] {
	return &llmTester{
		llm: llm,
	}
}

func (t *llmTester) Test(ctx context.Context, test *engines.ChatPrompt) (*engines.ChatMessage, error) {
	return t.llm.Chat(ctx, test)
}
