package cameras

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockCameraService(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func TestClientByZipcode(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		expected  []Record
		expErr    error
		expStatus int
	}{
		{
			name:   "bare array",
			status: http.StatusOK,
			body:   `[{"id": 1, "zipcode": "10036", "cross_street_1": "5th Ave", "cross_street_2": "W 42nd St"}]`,
			expected: []Record{
				{"id": float64(1), "zipcode": "10036", "cross_street_1": "5th Ave", "cross_street_2": "W 42nd St"},
			},
		},
		{
			name:   "envelope",
			status: http.StatusOK,
			body:   `{"success": true, "count": 1, "cameras": [{"id": "a1", "cross_street_1": "Broadway"}]}`,
			expected: []Record{
				{"id": "a1", "cross_street_1": "Broadway"},
			},
		},
		{
			name:     "no cameras",
			status:   http.StatusOK,
			body:     `[]`,
			expected: []Record{},
		},
		{
			name:     "null list",
			status:   http.StatusOK,
			body:     `null`,
			expErr:   ErrMalformedUpstreamPayload,
			expected: nil,
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>oops</html>`,
			expErr: ErrMalformedUpstreamPayload,
		},
		{
			name:   "truncated json",
			status: http.StatusOK,
			body:   `[{"id": 1`,
			expErr: ErrMalformedUpstreamPayload,
		},
		{
			name:   "envelope without cameras",
			status: http.StatusOK,
			body:   `{"count": 3}`,
			expErr: ErrMalformedUpstreamPayload,
		},
		{
			name:   "envelope reporting failure",
			status: http.StatusOK,
			body:   `{"success": false, "error": "database offline"}`,
			expErr: ErrUpstreamUnavailable,
		},
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			body:      `internal error`,
			expErr:    ErrUpstreamUnavailable,
			expStatus: http.StatusInternalServerError,
		},
		{
			name:      "not found",
			status:    http.StatusNotFound,
			body:      ``,
			expErr:    ErrUpstreamUnavailable,
			expStatus: http.StatusNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath string
			url := mockCameraService(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			client := NewClient(ClientConfig{BaseURL: url})
			records, err := client.ByZipcode(context.Background(), "10036")
			assert.Equal(t, "/cameras/zipcode/10036", gotPath)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				assert.Nil(t, records)
				if tc.expStatus != 0 {
					var statusErr *StatusError
					require.True(t, errors.As(err, &statusErr))
					assert.Equal(t, tc.expStatus, statusErr.StatusCode)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, records)
		})
	}
}

func TestClientByStreet(t *testing.T) {
	var gotQuery map[string]string
	var gotRequestID string
	url := mockCameraService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cameras/search", r.URL.Path)
		gotQuery = map[string]string{
			"street":  r.URL.Query().Get("street"),
			"zipcode": r.URL.Query().Get("zipcode"),
		}
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[{"id": 7, "cross_street_1": "Broadway", "cross_street_2": "W 34th St"}]`))
	})
	client := NewClient(ClientConfig{BaseURL: url})
	ctx := WithRequestID(context.Background(), "turn-1")
	records, err := client.ByStreet(ctx, "Market St & 5th", "94103")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]string{"street": "Market St & 5th", "zipcode": "94103"}, gotQuery)
	assert.Equal(t, "turn-1", gotRequestID)
	first, second := records[0].CrossStreets()
	assert.Equal(t, "Broadway", first)
	assert.Equal(t, "W 34th St", second)
	assert.Equal(t, "7", records[0].ID())
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(ClientConfig{BaseURL: url, Timeout: time.Second})
	records, err := client.ByZipcode(context.Background(), "10036")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Nil(t, records)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	url := mockCameraService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	client := NewClient(ClientConfig{BaseURL: url, Timeout: 50 * time.Millisecond})
	_, err := client.ByZipcode(context.Background(), "10036")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestRecordString(t *testing.T) {
	testCases := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "both streets",
			record:   Record{"id": float64(3), "cross_street_1": "5th Ave", "cross_street_2": "W 42nd St"},
			expected: "camera 3 at 5th Ave & W 42nd St",
		},
		{
			name:     "one street",
			record:   Record{"id": "x", "cross_street_1": "Broadway"},
			expected: "camera x at Broadway",
		},
		{
			name:     "no streets",
			record:   Record{"id": "x"},
			expected: "camera x",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.record.String())
		})
	}
}
