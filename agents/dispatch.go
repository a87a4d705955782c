package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/metrics"
	"github.com/natexcvi/speedcam-llm/tools"
	log "github.com/sirupsen/logrus"
)

type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindUnknownFunction
	ErrorKindMissingParameter
	ErrorKindUpstreamUnavailable
	ErrorKindMalformedUpstreamPayload
	ErrorKindInvalidArguments
)

var errorKindNames = [...]string{
	ErrorKindNone:                     "none",
	ErrorKindUnknownFunction:          "unknown_function",
	ErrorKindMissingParameter:         "missing_parameter",
	ErrorKindUpstreamUnavailable:      "upstream_unavailable",
	ErrorKindMalformedUpstreamPayload: "malformed_upstream_payload",
	ErrorKindInvalidArguments:         "invalid_arguments",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// classifyError maps a tool failure to its kind. Anything unrecognised is
// treated as the upstream being unavailable.
func classifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, tools.ErrUnknownFunction):
		return ErrorKindUnknownFunction
	case errors.Is(err, tools.ErrMissingParameter):
		return ErrorKindMissingParameter
	case errors.Is(err, tools.ErrInvalidArguments):
		return ErrorKindInvalidArguments
	case errors.Is(err, cameras.ErrMalformedUpstreamPayload):
		return ErrorKindMalformedUpstreamPayload
	default:
		return ErrorKindUpstreamUnavailable
	}
}

// FunctionCallResult is the outcome of one dispatch. Payload is handed back
// to the model verbatim.
type FunctionCallResult struct {
	Function tools.Function  `json:"-"`
	Name     string          `json:"name"`
	Args     json.RawMessage `json:"args"`
	Success  bool            `json:"success"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error,omitempty"`
	Kind     ErrorKind       `json:"kind"`
}

func (r *FunctionCallResult) Message() *engines.ChatMessage {
	return engines.NewFunctionResultMessage(r.Name, r.Payload)
}

type failurePayload struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Kind    ErrorKind `json:"kind"`
	Street  string    `json:"street,omitempty"`
	Zipcode string    `json:"zipcode,omitempty"`
}

// Dispatcher routes function-call directives to the registry. It never
// returns an error: every failure becomes an unsuccessful result.
type Dispatcher struct {
	registry *tools.Registry
}

func NewDispatcher(registry *tools.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

func (d *Dispatcher) Registry() *tools.Registry {
	return d.registry
}

func (d *Dispatcher) Dispatch(ctx context.Context, call *engines.FunctionCall) FunctionCallResult {
	fn := tools.ParseFunction(call.Name)
	result := FunctionCallResult{
		Function: fn,
		Name:     call.Name,
		Args:     call.Args,
	}
	logger := log.WithField("function", call.Name)
	logger.Debugf("dispatching with args %s", call.Args)

	tool, ok := d.registry.Lookup(fn)
	if !ok {
		err := fmt.Errorf("%w %q. Available functions: %s", tools.ErrUnknownFunction, call.Name, strings.Join(d.registry.Names(), ", "))
		return d.fail(logger, result, err)
	}
	output, err := tool.Execute(ctx, call.Args)
	if err != nil {
		return d.fail(logger, result, err)
	}
	logger.Debugf("function output: %s", output)
	result.Success = true
	result.Payload = output
	metrics.RecordFunctionCall(fn.String(), true, ErrorKindNone.String())
	return result
}

func (d *Dispatcher) fail(logger *log.Entry, result FunctionCallResult, err error) FunctionCallResult {
	result.Success = false
	result.Kind = classifyError(err)
	result.Error = err.Error()
	logger.WithField("kind", result.Kind).Warnf("function call failed: %s", result.Error)

	payload := failurePayload{
		Success: false,
		Error:   result.Error,
		Kind:    result.Kind,
	}
	if args, decodeErr := tools.DecodeArgs(result.Args); decodeErr == nil {
		payload.Street, _ = tools.ArgString(args["street"])
		payload.Zipcode, _ = tools.ArgString(args["zipcode"])
	}
	encoded, marshalErr := json.Marshal(&payload)
	if marshalErr != nil {
		encoded = []byte(`{"success": false}`)
	}
	result.Payload = encoded
	metrics.RecordFunctionCall(result.Function.String(), false, result.Kind.String())
	return result
}
