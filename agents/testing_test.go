package agents

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/engines/mocks"
	"github.com/natexcvi/speedcam-llm/tools"
	"github.com/stretchr/testify/require"
)

const (
	midtownCameras = `[{"id": "NYC-0042", "zipcode": "10036", "cross_street_1": "5th Ave", "cross_street_2": "W 42nd St", "latitude": 40.7536, "longitude": -73.9832}]`
	broadwayCamera = `[{"id": "NYC-0034", "zipcode": "10001", "cross_street_1": "Broadway", "cross_street_2": "W 34th St", "latitude": 40.7497, "longitude": -73.9877}]`
)

type cameraAPI struct {
	*httptest.Server
	mu         sync.Mutex
	requests   int
	requestIDs []string
}

func newCameraAPI(t *testing.T) *cameraAPI {
	t.Helper()
	api := &cameraAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/cameras/zipcode/", func(w http.ResponseWriter, r *http.Request) {
		api.track(r)
		w.Header().Set("Content-Type", "application/json")
		switch strings.TrimPrefix(r.URL.Path, "/cameras/zipcode/") {
		case "10036":
			fmt.Fprint(w, midtownCameras)
		case "99999":
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html>maintenance</html>")
		default:
			fmt.Fprint(w, `[]`)
		}
	})
	mux.HandleFunc("/cameras/search", func(w http.ResponseWriter, r *http.Request) {
		api.track(r)
		w.Header().Set("Content-Type", "application/json")
		query := r.URL.Query()
		if query.Get("street") == "Broadway" && query.Get("zipcode") == "10001" {
			fmt.Fprint(w, broadwayCamera)
			return
		}
		fmt.Fprint(w, `{"success": true, "count": 0, "cameras": []}`)
	})
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Server.Close)
	return api
}

func (api *cameraAPI) track(r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.requests++
	api.requestIDs = append(api.requestIDs, r.Header.Get("X-Request-ID"))
}

func (api *cameraAPI) requestCount() int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.requests
}

func newRegistry(t *testing.T, baseURL string) *tools.Registry {
	t.Helper()
	registry, err := tools.NewCameraRegistry(cameras.NewClient(cameras.ClientConfig{BaseURL: baseURL}))
	require.NoError(t, err)
	return registry
}

func functionCall(name, args string) *engines.ChatMessage {
	return &engines.ChatMessage{
		Role: engines.ConvRoleAssistant,
		FunctionCall: &engines.FunctionCall{
			Name: name,
			Args: json.RawMessage(args),
		},
	}
}

// summarize phrases a function result the way a model would, listing every
// camera it was given.
func summarize(msg *engines.ChatMessage) string {
	var result struct {
		Success bool             `json:"success"`
		Error   string           `json:"error"`
		Count   int              `json:"count"`
		Cameras []cameras.Record `json:"cameras"`
	}
	if err := json.Unmarshal([]byte(msg.Text), &result); err != nil {
		return "I could not read the lookup result."
	}
	if !result.Success {
		return "Sorry, the lookup failed: " + result.Error
	}
	lines := []string{fmt.Sprintf("I found %d camera(s).", result.Count)}
	for _, record := range result.Cameras {
		lines = append(lines, record.String())
	}
	return strings.Join(lines, "\n")
}

// newScriptedEngine answers the first pass with decision and phrases
// whatever function result it receives on the second pass.
func newScriptedEngine(t *testing.T, decision *engines.ChatMessage) (*mocks.MockLLMWithFunctionCalls, *[]*engines.ChatPrompt) {
	t.Helper()
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockLLMWithFunctionCalls(ctrl)
	var prompts []*engines.ChatPrompt
	engine.EXPECT().SetFunctions(gomock.Any()).AnyTimes()
	engine.EXPECT().ChatWithFunctions(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ any, prompt *engines.ChatPrompt) (*engines.ChatMessage, error) {
			prompts = append(prompts, prompt)
			last := prompt.History[len(prompt.History)-1]
			if last.Role == engines.ConvRoleFunction {
				return &engines.ChatMessage{Role: engines.ConvRoleAssistant, Text: summarize(last)}, nil
			}
			return decision, nil
		})
	return engine, &prompts
}
