package engines

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrModelUnavailable is matched by every failure of a model call.
	ErrModelUnavailable = errors.New("language model unavailable")
	ErrRateLimited      = errors.New("language model rate limit exceeded")
	ErrNoResponse       = errors.New("no response content")
)

const RateLimitMessage = "⚠️ Rate limit exceeded! You've hit the language model API quota. " +
	"Please wait a few minutes and try again, or check your usage in your provider's console."

type ModelError struct {
	Provider    string
	StatusCode  int
	RateLimited bool
	Err         error
}

func (e *ModelError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (%d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func (e *ModelError) Is(target error) bool {
	switch target {
	case ErrModelUnavailable:
		return true
	case ErrRateLimited:
		return e.RateLimited
	}
	return false
}

func newModelError(provider string, statusCode int, err error) *ModelError {
	return &ModelError{
		Provider:    provider,
		StatusCode:  statusCode,
		RateLimited: statusCode == http.StatusTooManyRequests || looksRateLimited(err),
		Err:         err,
	}
}

func looksRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}

func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// UserMessage is the text a front end shows for a failed model call.
func UserMessage(err error) string {
	if IsRateLimited(err) {
		return RateLimitMessage
	}
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return fmt.Sprintf("%s API Error: %v", providerTitle(modelErr.Provider), modelErr.Err)
	}
	return fmt.Sprintf("Unexpected error: %v", err)
}

func providerTitle(provider string) string {
	switch provider {
	case providerGemini:
		return "Gemini"
	case providerOpenAI:
		return "OpenAI"
	default:
		return provider
	}
}
