package prebuilt

import (
	"fmt"

	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/tools"
)

// ExampleQuestion is a demo utterance and the function a well-behaved model
// should pick for it.
type ExampleQuestion struct {
	Text     string
	Function tools.Function
}

var ExampleQuestions = []ExampleQuestion{
	{Text: "Show me all speed cameras in zipcode 10036", Function: tools.FunctionGetCamerasByZipcode},
	{Text: "Are there any cameras on Broadway in zipcode 10001?", Function: tools.FunctionSearchCamerasByStreet},
	{Text: "What speed cameras are in the 90212 area code?", Function: tools.FunctionGetCamerasByZipcode},
	{Text: "Find cameras on Market St in San Francisco's 94103 zipcode", Function: tools.FunctionSearchCamerasByStreet},
}

// NewSpeedCameraAssistant wires the camera functions into engine. The engine's
// function declarations are replaced, so share it only between assistants
// built here.
func NewSpeedCameraAssistant(engine engines.LLMWithFunctionCalls, finder cameras.Finder) (*agents.ConversationAgent, error) {
	registry, err := tools.NewCameraRegistry(finder)
	if err != nil {
		return nil, fmt.Errorf("failed to build function registry: %w", err)
	}
	return agents.NewConversationAgent(engine, registry), nil
}
