package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/engines/mocks"
	"github.com/natexcvi/speedcam-llm/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMockEchoLLM(t *testing.T) engines.LLM {
	t.Helper()
	ctrl := gomock.NewController(t)
	mock := mocks.NewMockLLM(ctrl)
	mock.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, prompt *engines.ChatPrompt) (*engines.ChatMessage, error) {
		return &engines.ChatMessage{
			Text: prompt.History[0].Text,
		}, nil
	}).AnyTimes()
	return mock
}

func TestLLMEvaluator(t *testing.T) {
	testPack := []*engines.ChatPrompt{
		{History: []*engines.ChatMessage{{Text: "Hello"}}},
		{History: []*engines.ChatMessage{{Text: "Hello Hello"}}},
		{History: []*engines.ChatMessage{{Text: "Hello Hello Hello Hello"}}},
		{History: []*engines.ChatMessage{{Text: "Hello Hello Hello Hello Hello Hello"}}},
	}
	responseLength := func(_ *engines.ChatPrompt, response *engines.ChatMessage, err error) float64 {
		if err != nil {
			return 0
		}
		return float64(len(response.Text))
	}
	tests := []struct {
		name     string
		options  *Options[*engines.ChatPrompt, *engines.ChatMessage]
		engine   engines.LLM
		testPack []*engines.ChatPrompt
		want     []float64
	}{
		{
			name: "Test echo engine with response length goodness and 1 repetition",
			options: &Options[*engines.ChatPrompt, *engines.ChatMessage]{
				GoodnessFunction: responseLength,
				Repetitions:      1,
			},
			engine:   createMockEchoLLM(t),
			testPack: testPack,
			want:     []float64{5, 11, 23, 35},
		},
		{
			name: "Test echo engine with response length goodness and 5 repetitions",
			options: &Options[*engines.ChatPrompt, *engines.ChatMessage]{
				GoodnessFunction: responseLength,
				Repetitions:      5,
			},
			engine:   createMockEchoLLM(t),
			testPack: testPack,
			want:     []float64{5, 11, 23, 35},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := NewLLMTester(tt.engine)
			evaluator := NewEvaluator(tester, tt.options)

			got, err := evaluator.Evaluate(context.Background(), tt.testPack)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type scriptedAgent struct {
	calls map[string][]string
	err   map[string]error
}

func (a *scriptedAgent) Run(_ context.Context, input string) (*agents.Turn, error) {
	turn := &agents.Turn{Request: input, FunctionCalls: []agents.FunctionCallTrace{}}
	for _, name := range a.calls[input] {
		turn.FunctionCalls = append(turn.FunctionCalls, agents.FunctionCallTrace{Name: name})
	}
	return turn, a.err[input]
}

func TestFunctionSelection(t *testing.T) {
	agent := &scriptedAgent{
		calls: map[string][]string{
			"Show me all speed cameras in zipcode 10036":          {"get_cameras_by_zipcode"},
			"Are there any cameras on Broadway in zipcode 10001?": {"get_cameras_by_zipcode"},
			"What speed cameras are in the 90212 area code?":      {"get_cameras_by_zipcode"},
		},
		err: map[string]error{
			"Find cameras on Market St in San Francisco's 94103 zipcode": errors.New("quota"),
		},
	}
	expected := map[string]tools.Function{
		"Show me all speed cameras in zipcode 10036":                 tools.FunctionGetCamerasByZipcode,
		"Are there any cameras on Broadway in zipcode 10001?":        tools.FunctionSearchCamerasByStreet,
		"What speed cameras are in the 90212 area code?":             tools.FunctionGetCamerasByZipcode,
		"Find cameras on Market St in San Francisco's 94103 zipcode": tools.FunctionSearchCamerasByStreet,
		"hello": tools.FunctionUnknown,
	}
	testPack := []string{
		"Show me all speed cameras in zipcode 10036",
		"Are there any cameras on Broadway in zipcode 10001?",
		"What speed cameras are in the 90212 area code?",
		"Find cameras on Market St in San Francisco's 94103 zipcode",
		"hello",
	}
	evaluator := NewEvaluator[string, *agents.Turn](NewAgentTester[string, *agents.Turn](agent), &Options[string, *agents.Turn]{
		GoodnessFunction: FunctionSelectionGoodness(expected),
		Repetitions:      3,
	})

	got, err := evaluator.Evaluate(context.Background(), testPack)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1, 0, 1}, got)
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	evaluator := NewEvaluator(NewLLMTester(createMockEchoLLM(t)), &Options[*engines.ChatPrompt, *engines.ChatMessage]{
		GoodnessFunction: func(*engines.ChatPrompt, *engines.ChatMessage, error) float64 { return 1 },
	})
	_, err := evaluator.Evaluate(ctx, []*engines.ChatPrompt{{History: []*engines.ChatMessage{{Text: "Hello"}}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport(t *testing.T) {
	report := Report(map[string]float64{
		"b question": 0.5,
		"a question": 1,
	})
	assert.Equal(t, "100.0%  a question\n 50.0%  b question\n", report)
}
