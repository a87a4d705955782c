package engines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	providerGemini     = "gemini"
	DefaultGeminiModel = "gemini-2.5-flash"

	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

type Gemini struct {
	client      *genai.Client
	Model       string
	Temperature float32
	tools       []*genai.Tool
}

func NewGeminiEngine(ctx context.Context, apiKey, model string, temperature float32, opts ...option.ClientOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, newModelError(providerGemini, 0, errors.New("API key required"))
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, newModelError(providerGemini, 0, fmt.Errorf("failed to create client: %w", err))
	}
	return &Gemini{
		client:      client,
		Model:       model,
		Temperature: temperature,
	}, nil
}

func (g *Gemini) SetFunctions(funcs ...FunctionSpecs) {
	declarations := make([]*genai.FunctionDeclaration, 0, len(funcs))
	for _, f := range funcs {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        f.Name,
			Description: f.Description,
			Parameters:  toGenaiSchema(f.Parameters),
		})
	}
	g.tools = []*genai.Tool{{FunctionDeclarations: declarations}}
}

func (g *Gemini) Chat(ctx context.Context, prompt *ChatPrompt) (*ChatMessage, error) {
	return g.generate(ctx, prompt, nil)
}

func (g *Gemini) ChatWithFunctions(ctx context.Context, prompt *ChatPrompt) (*ChatMessage, error) {
	return g.generate(ctx, prompt, g.tools)
}

func (g *Gemini) generate(ctx context.Context, prompt *ChatPrompt, tools []*genai.Tool) (*ChatMessage, error) {
	model := g.client.GenerativeModel(g.Model)
	model.SetTemperature(g.Temperature)
	model.Tools = tools

	system, history, err := toGenaiContents(prompt.History)
	if err != nil {
		return nil, newModelError(providerGemini, 0, err)
	}
	model.SystemInstruction = system

	session := model.StartChat()
	session.History = history[:len(history)-1]
	last := history[len(history)-1]
	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, newModelError(providerGemini, geminiStatusCode(err), err)
	}
	msg, err := fromGenaiResponse(resp)
	if err != nil {
		return nil, newModelError(providerGemini, 0, err)
	}
	log.Debugf("gemini response: %+v", msg)
	return msg, nil
}

func (g *Gemini) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	it := g.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, newModelError(providerGemini, geminiStatusCode(err), err)
		}
		models = append(models, ModelInfo{
			Name:        m.Name,
			DisplayName: m.DisplayName,
		})
	}
	return models, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func geminiStatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// toGenaiContents splits the history into the system instruction and the
// chat contents. The last content is the one to send.
func toGenaiContents(history []*ChatMessage) (*genai.Content, []*genai.Content, error) {
	var systemParts []genai.Part
	var contents []*genai.Content
	for _, msg := range history {
		switch msg.Role {
		case ConvRoleSystem:
			systemParts = append(systemParts, genai.Text(msg.Text))
		case ConvRoleUser:
			contents = append(contents, &genai.Content{
				Role:  geminiRoleUser,
				Parts: []genai.Part{genai.Text(msg.Text)},
			})
		case ConvRoleAssistant:
			var parts []genai.Part
			if msg.Text != "" {
				parts = append(parts, genai.Text(msg.Text))
			}
			if msg.FunctionCall != nil {
				args, err := decodeArgsObject(msg.FunctionCall.Args)
				if err != nil {
					return nil, nil, fmt.Errorf("function call %q: %w", msg.FunctionCall.Name, err)
				}
				parts = append(parts, genai.FunctionCall{
					Name: msg.FunctionCall.Name,
					Args: args,
				})
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, &genai.Content{
				Role:  geminiRoleModel,
				Parts: parts,
			})
		case ConvRoleFunction:
			response, err := decodeArgsObject(json.RawMessage(msg.Text))
			if err != nil {
				response = map[string]any{"output": msg.Text}
			}
			contents = append(contents, &genai.Content{
				Role: geminiRoleUser,
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     msg.Name,
					Response: response,
				}},
			})
		default:
			return nil, nil, fmt.Errorf("unsupported role %q", msg.Role)
		}
	}
	if len(contents) == 0 {
		return nil, nil, errors.New("prompt has no user content")
	}
	if contents[len(contents)-1].Role != geminiRoleUser {
		return nil, nil, errors.New("prompt must end with a user or function message")
	}
	var system *genai.Content
	if len(systemParts) > 0 {
		system = &genai.Content{Parts: systemParts}
	}
	return system, contents, nil
}

func decodeArgsObject(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("arguments are not a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func fromGenaiResponse(resp *genai.GenerateContentResponse) (*ChatMessage, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w (finish reason: %s)", ErrNoResponse, candidate.FinishReason)
	}
	msg := &ChatMessage{Role: ConvRoleAssistant}
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		switch part := part.(type) {
		case genai.Text:
			text.WriteString(string(part))
		case genai.FunctionCall:
			if msg.FunctionCall != nil {
				log.Warnf("ignoring additional function call %q", part.Name)
				continue
			}
			args, err := json.Marshal(part.Args)
			if err != nil {
				return nil, fmt.Errorf("failed to encode function call arguments: %w", err)
			}
			msg.FunctionCall = &FunctionCall{
				Name: part.Name,
				Args: args,
			}
		}
	}
	msg.Text = text.String()
	return msg, nil
}

func toGenaiSchema(specs *ParameterSpecs) *genai.Schema {
	if specs == nil {
		return nil
	}
	schema := &genai.Schema{
		Type:        toGenaiType(specs.Type),
		Description: specs.Description,
		Required:    specs.Required,
		Items:       toGenaiSchema(specs.Items),
	}
	if len(specs.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(specs.Properties))
		for name, property := range specs.Properties {
			schema.Properties[name] = toGenaiSchema(property)
		}
	}
	for _, value := range specs.Enum {
		schema.Enum = append(schema.Enum, fmt.Sprint(value))
	}
	return schema
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

var (
	_ LLMWithFunctionCalls = (*Gemini)(nil)
	_ ModelLister          = (*Gemini)(nil)
)
