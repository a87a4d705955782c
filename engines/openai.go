package engines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

const (
	providerOpenAI     = "openai"
	DefaultOpenAIModel = "gpt-4o-mini"
)

type GPT struct {
	client      *openai.Client
	Model       string
	Temperature float32
	functions   []openai.FunctionDefinition
}

func (gpt *GPT) SetFunctions(funcs ...FunctionSpecs) {
	gpt.functions = make([]openai.FunctionDefinition, 0, len(funcs))
	for _, f := range funcs {
		gpt.functions = append(gpt.functions, openai.FunctionDefinition{
			Name:        f.Name,
			Description: f.Description,
			Parameters:  f.Parameters,
		})
	}
}

func (gpt *GPT) Chat(ctx context.Context, prompt *ChatPrompt) (*ChatMessage, error) {
	return gpt.predict(ctx, prompt, nil)
}

func (gpt *GPT) ChatWithFunctions(ctx context.Context, prompt *ChatPrompt) (*ChatMessage, error) {
	return gpt.predict(ctx, prompt, gpt.functions)
}

func (gpt *GPT) predict(ctx context.Context, prompt *ChatPrompt, functions []openai.FunctionDefinition) (*ChatMessage, error) {
	req := openai.ChatCompletionRequest{
		Model:       gpt.Model,
		Messages:    toOpenAIMessages(prompt.History),
		Temperature: gpt.Temperature,
		Functions:   functions,
	}
	res, err := gpt.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, newModelError(providerOpenAI, openAIStatusCode(err), err)
	}
	if len(res.Choices) == 0 {
		return nil, newModelError(providerOpenAI, 0, fmt.Errorf("%w: no choices in response", ErrNoResponse))
	}
	msg := fromOpenAIMessage(res.Choices[0].Message)
	log.Debugf("openai response: %+v", msg)
	return msg, nil
}

func (gpt *GPT) ListModels(ctx context.Context) ([]ModelInfo, error) {
	list, err := gpt.client.ListModels(ctx)
	if err != nil {
		return nil, newModelError(providerOpenAI, openAIStatusCode(err), err)
	}
	models := make([]ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, ModelInfo{
			Name:        m.ID,
			DisplayName: m.ID,
		})
	}
	return models, nil
}

func openAIStatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func toOpenAIMessages(history []*ChatMessage) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		m := openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Text,
			Name:    msg.Name,
		}
		if msg.FunctionCall != nil {
			m.FunctionCall = &openai.FunctionCall{
				Name:      msg.FunctionCall.Name,
				Arguments: string(msg.FunctionCall.Args),
			}
		}
		messages = append(messages, m)
	}
	return messages
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) *ChatMessage {
	msg := &ChatMessage{
		Role: ConvRoleAssistant,
		Text: m.Content,
	}
	if m.FunctionCall != nil {
		args := json.RawMessage(m.FunctionCall.Arguments)
		if !json.Valid(args) {
			// keep the raw text so argument parsing reports it
			args, _ = json.Marshal(m.FunctionCall.Arguments)
		}
		msg.FunctionCall = &FunctionCall{
			Name: m.FunctionCall.Name,
			Args: args,
		}
	}
	return msg
}

func NewGPTEngine(apiToken string, model string) *GPT {
	return NewGPTEngineWithConfig(openai.DefaultConfig(apiToken), model, 0.7)
}

func NewGPTEngineWithConfig(config openai.ClientConfig, model string, temperature float32) *GPT {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &GPT{
		client:      openai.NewClientWithConfig(config),
		Model:       model,
		Temperature: temperature,
	}
}

var (
	_ LLMWithFunctionCalls = (*GPT)(nil)
	_ ModelLister          = (*GPT)(nil)
)
