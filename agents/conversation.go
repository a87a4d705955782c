package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/memory"
	"github.com/natexcvi/speedcam-llm/metrics"
	"github.com/natexcvi/speedcam-llm/tools"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyInput = errors.New("message is required")

type TurnState int

const (
	TurnStateAwaitingModelDecision TurnState = iota
	TurnStateFunctionExecution
	TurnStateTerminal
)

var turnStateNames = [...]string{
	TurnStateAwaitingModelDecision: "awaiting_model_decision",
	TurnStateFunctionExecution:     "function_execution",
	TurnStateTerminal:              "terminal",
}

func (s TurnState) String() string {
	if s < 0 || int(s) >= len(turnStateNames) {
		return fmt.Sprintf("TurnState(%d)", int(s))
	}
	return turnStateNames[s]
}

func (s TurnState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type FunctionCallTrace struct {
	Name    string         `json:"name"`
	Args    map[string]any `json:"args"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
}

// Turn is one user utterance through to one model answer.
type Turn struct {
	ID            string               `json:"id"`
	Request       string               `json:"request"`
	Response      string               `json:"response"`
	FunctionCalls []FunctionCallTrace  `json:"function_calls"`
	Results       []FunctionCallResult `json:"-"`
	States        []TurnState          `json:"states"`
	Latency       time.Duration        `json:"latency"`
}

func (t *Turn) enter(state TurnState) {
	t.States = append(t.States, state)
}

// State is the state the turn is in, or was in when it failed.
func (t *Turn) State() TurnState {
	if len(t.States) == 0 {
		return TurnStateAwaitingModelDecision
	}
	return t.States[len(t.States)-1]
}

func (t *Turn) record(result FunctionCallResult) {
	args, err := tools.DecodeArgs(result.Args)
	if err != nil {
		args = nil
	}
	t.Results = append(t.Results, result)
	t.FunctionCalls = append(t.FunctionCalls, FunctionCallTrace{
		Name:    result.Name,
		Args:    args,
		Success: result.Success,
		Error:   result.Error,
	})
}

// ConversationAgent runs single turns: one model decision, at most one
// function call, then a second model pass that phrases the result. Turns
// share nothing but the engine and the dispatcher, so Run may be called
// concurrently.
type ConversationAgent struct {
	Engine          engines.LLMWithFunctionCalls
	Dispatcher      *Dispatcher
	SystemPrompt    string
	MaxHistory      int
	InputValidators []func(string) error
}

func NewConversationAgent(engine engines.LLMWithFunctionCalls, registry *tools.Registry) *ConversationAgent {
	engine.SetFunctions(registry.Specs()...)
	return &ConversationAgent{
		Engine:     engine,
		Dispatcher: NewDispatcher(registry),
		InputValidators: []func(string) error{
			func(input string) error {
				if strings.TrimSpace(input) == "" {
					return ErrEmptyInput
				}
				return nil
			},
		},
	}
}

func (agent *ConversationAgent) WithSystemPrompt(prompt string) *ConversationAgent {
	agent.SystemPrompt = prompt
	return agent
}

func (agent *ConversationAgent) WithMaxHistory(max int) *ConversationAgent {
	agent.MaxHistory = max
	return agent
}

func (agent *ConversationAgent) WithInputValidators(validators ...func(string) error) *ConversationAgent {
	agent.InputValidators = append(agent.InputValidators, validators...)
	return agent
}

// Run executes one turn. On a model failure the partially filled turn is
// returned together with an error wrapping engines.ErrModelUnavailable.
func (agent *ConversationAgent) Run(ctx context.Context, input string) (turn *Turn, err error) {
	turn = &Turn{
		ID:            uuid.NewString(),
		Request:       input,
		FunctionCalls: []FunctionCallTrace{},
	}
	logger := log.WithField("turn", turn.ID)

	var inputErr *multierror.Error
	for _, validator := range agent.InputValidators {
		if err := validator(input); err != nil {
			inputErr = multierror.Append(inputErr, err)
		}
	}
	if inputErr.ErrorOrNil() != nil {
		return turn, fmt.Errorf("invalid input: %w", inputErr)
	}

	start := time.Now()
	defer func() {
		turn.Latency = time.Since(start)
		metrics.RecordTurn(err == nil, turn.Latency)
		logger.WithFields(log.Fields{
			"function_calls": len(turn.FunctionCalls),
			"state":          turn.State(),
			"latency":        turn.Latency,
		}).Info("turn finished")
	}()
	ctx = cameras.WithRequestID(ctx, turn.ID)

	mem := memory.NewBufferedMemory(agent.MaxHistory)
	var history []*engines.ChatMessage
	if agent.SystemPrompt != "" {
		history = append(history, &engines.ChatMessage{
			Role: engines.ConvRoleSystem,
			Text: agent.SystemPrompt,
		})
	}
	history = append(history, &engines.ChatMessage{
		Role: engines.ConvRoleUser,
		Text: input,
	})
	if err := mem.AddPrompt(&engines.ChatPrompt{History: history}); err != nil {
		return turn, fmt.Errorf("failed to add prompt to memory: %w", err)
	}

	turn.enter(TurnStateAwaitingModelDecision)
	response, err := agent.predict(ctx, logger, mem)
	if err != nil {
		return turn, err
	}
	if response.FunctionCall == nil {
		turn.enter(TurnStateTerminal)
		turn.Response = response.Text
		return turn, nil
	}

	turn.enter(TurnStateFunctionExecution)
	logger.Debugf("function call directive: %s(%s)", response.FunctionCall.Name, response.FunctionCall.Args)
	result := agent.Dispatcher.Dispatch(ctx, response.FunctionCall)
	turn.record(result)

	response, err = agent.predict(ctx, logger, mem, result.Message())
	if err != nil {
		return turn, err
	}
	if response.FunctionCall != nil {
		logger.Warnf("ignoring chained call to %q", response.FunctionCall.Name)
	}
	turn.enter(TurnStateTerminal)
	turn.Response = response.Text
	return turn, nil
}

func (agent *ConversationAgent) predict(ctx context.Context, logger *log.Entry, mem memory.Memory, nextMessages ...*engines.ChatMessage) (*engines.ChatMessage, error) {
	prompt, err := mem.PromptWithContext(nextMessages...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prompt: %w", err)
	}
	response, err := agent.Engine.ChatWithFunctions(ctx, prompt)
	if err != nil {
		metrics.RecordModelError(engines.IsRateLimited(err))
		logger.WithError(err).Error("model call failed")
		if !errors.Is(err, engines.ErrModelUnavailable) {
			err = fmt.Errorf("%w: %w", engines.ErrModelUnavailable, err)
		}
		return nil, fmt.Errorf("failed to predict response: %w", err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to predict response: %w: %w", engines.ErrModelUnavailable, engines.ErrNoResponse)
	}
	logger.Debugf("model response: %q", response.Text)
	if err := mem.Add(response); err != nil {
		return nil, fmt.Errorf("failed to add response to memory: %w", err)
	}
	return response, nil
}
