package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	turn *agents.Turn
	err  error
	seen []string
}

func (a *fakeAssistant) Run(_ context.Context, input string) (*agents.Turn, error) {
	a.seen = append(a.seen, input)
	return a.turn, a.err
}

func doRequest(t *testing.T, s *Server, method, path, body string) (int, map[string]any, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded, string(raw)
}

func TestChat(t *testing.T) {
	midtownTurn := &agents.Turn{
		ID:       "turn-1",
		Response: "There is one camera at 5th Ave & W 42nd St.",
		FunctionCalls: []agents.FunctionCallTrace{
			{Name: "get_cameras_by_zipcode", Args: map[string]any{"zipcode": "10036"}, Success: true},
		},
	}
	partialTurn := &agents.Turn{
		ID: "turn-2",
		FunctionCalls: []agents.FunctionCallTrace{
			{Name: "get_cameras_by_zipcode", Args: map[string]any{"zipcode": "10036"}, Success: true},
		},
	}
	rateLimited := fmt.Errorf("failed to predict response: %w", &engines.ModelError{
		Provider: "gemini", StatusCode: 429, RateLimited: true, Err: errors.New("RESOURCE_EXHAUSTED"),
	})
	authFailed := fmt.Errorf("failed to predict response: %w", &engines.ModelError{
		Provider: "gemini", StatusCode: 400, Err: errors.New("API key not valid"),
	})
	testCases := []struct {
		name      string
		body      string
		assistant *fakeAssistant
		expStatus int
		expBody   map[string]any
		expCalls  int
		expSeen   []string
	}{
		{
			name:      "answer",
			body:      `{"message": "Show me cameras in 10036"}`,
			assistant: &fakeAssistant{turn: midtownTurn},
			expStatus: http.StatusOK,
			expBody: map[string]any{
				"id":       "turn-1",
				"response": "There is one camera at 5th Ave & W 42nd St.",
			},
			expCalls: 1,
			expSeen:  []string{"Show me cameras in 10036"},
		},
		{
			name:      "empty message",
			body:      `{"message": ""}`,
			assistant: &fakeAssistant{},
			expStatus: http.StatusBadRequest,
			expBody:   map[string]any{"error": "Message is required"},
		},
		{
			name:      "no body",
			body:      ``,
			assistant: &fakeAssistant{},
			expStatus: http.StatusBadRequest,
			expBody:   map[string]any{"error": "Message is required"},
		},
		{
			name:      "blank message rejected by the agent",
			body:      `{"message": "   "}`,
			assistant: &fakeAssistant{turn: &agents.Turn{}, err: fmt.Errorf("invalid input: %w", agents.ErrEmptyInput)},
			expStatus: http.StatusBadRequest,
			expBody:   map[string]any{"error": "Message is required"},
			expSeen:   []string{"   "},
		},
		{
			name:      "rate limited",
			body:      `{"message": "Show me cameras in 10036"}`,
			assistant: &fakeAssistant{turn: partialTurn, err: rateLimited},
			expStatus: http.StatusTooManyRequests,
			expBody:   map[string]any{"error": engines.RateLimitMessage},
			expCalls:  1,
			expSeen:   []string{"Show me cameras in 10036"},
		},
		{
			name:      "model error",
			body:      `{"message": "Show me cameras in 10036"}`,
			assistant: &fakeAssistant{turn: &agents.Turn{}, err: authFailed},
			expStatus: http.StatusInternalServerError,
			expBody:   map[string]any{"error": "Gemini API Error: API key not valid"},
			expSeen:   []string{"Show me cameras in 10036"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewServer(":0", tc.assistant)
			status, body, _ := doRequest(t, s, http.MethodPost, "/chat", tc.body)
			assert.Equal(t, tc.expStatus, status)
			for key, value := range tc.expBody {
				assert.Equal(t, value, body[key], key)
			}
			if tc.expStatus != http.StatusBadRequest {
				assert.Len(t, body["function_calls"], tc.expCalls)
			}
			if tc.expStatus >= http.StatusTooManyRequests {
				assert.NotEmpty(t, body["error_details"])
			}
			assert.Equal(t, tc.expSeen, tc.assistant.seen)
		})
	}
}

func TestHealth(t *testing.T) {
	s := NewServer(":0", &fakeAssistant{})
	status, body, _ := doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "healthy"}, body)
}

func TestIndexAndMetrics(t *testing.T) {
	s := NewServer(":0", &fakeAssistant{})
	status, _, raw := doRequest(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, raw, "Speed Camera Assistant")

	// the request above is recorded before /metrics is scraped
	status, _, raw = doRequest(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, raw, "speedcam_http_requests_total")
}

func TestCORS(t *testing.T) {
	s := NewServer(":0", &fakeAssistant{})
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
