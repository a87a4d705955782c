package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrUnknownFunction  = errors.New("unknown function")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidArguments = errors.New("invalid arguments")
)

type ZipcodeArgs struct {
	Zipcode string `json:"zipcode" jsonschema_description:"5-digit US zipcode (e.g., '10036', '90212')"`
}

type StreetSearchArgs struct {
	Street  string `json:"street" jsonschema_description:"Street name to search for using standard abbreviations (e.g., '5th Ave' not '5th Avenue', 'Broadway', 'Market St' not 'Market Street', 'Wilshire Blvd' not 'Wilshire Boulevard')"`
	Zipcode string `json:"zipcode" jsonschema_description:"5-digit US zipcode where to search"`
}

func ParseZipcodeArgs(raw json.RawMessage) (ZipcodeArgs, error) {
	r, err := newArgReader(raw)
	if err != nil {
		return ZipcodeArgs{}, err
	}
	args := ZipcodeArgs{
		Zipcode: r.requireString("zipcode"),
	}
	return args, r.err()
}

func ParseStreetSearchArgs(raw json.RawMessage) (StreetSearchArgs, error) {
	r, err := newArgReader(raw)
	if err != nil {
		return StreetSearchArgs{}, err
	}
	args := StreetSearchArgs{
		Street:  r.requireString("street"),
		Zipcode: r.requireString("zipcode"),
	}
	return args, r.err()
}

// DecodeArgs reads a model-supplied argument object leniently. Absent or
// null arguments decode to an empty map.
func DecodeArgs(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON object: %s", ErrInvalidArguments, err.Error())
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// ArgString coerces a scalar argument to its string form. Models sometimes
// send zipcodes as numbers.
func ArgString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

type argReader struct {
	raw    map[string]any
	errors *multierror.Error
}

func newArgReader(raw json.RawMessage) (*argReader, error) {
	args, err := DecodeArgs(raw)
	if err != nil {
		return nil, err
	}
	return &argReader{raw: args}, nil
}

func (r *argReader) requireString(name string) string {
	value, ok := r.raw[name]
	if !ok || value == nil {
		r.errors = multierror.Append(r.errors, fmt.Errorf("%w: %s", ErrMissingParameter, name))
		return ""
	}
	s, ok := ArgString(value)
	if !ok {
		r.errors = multierror.Append(r.errors, fmt.Errorf("%w: %s must be a string", ErrInvalidArguments, name))
		return ""
	}
	if s == "" {
		r.errors = multierror.Append(r.errors, fmt.Errorf("%w: %s", ErrMissingParameter, name))
	}
	return s
}

func (r *argReader) err() error {
	if r.errors == nil {
		return nil
	}
	r.errors.ErrorFormat = joinErrors
	return r.errors.ErrorOrNil()
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
