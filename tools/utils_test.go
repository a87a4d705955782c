package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(context.Context, json.RawMessage) (json.RawMessage, error) {
	return nil, nil
}

func TestConvertToNativeFunctionSpecs(t *testing.T) {
	testCases := []struct {
		name           string
		tool           Tool
		expectedOutput engines.FunctionSpecs
		expectedErr    error
	}{
		{
			name: "Reflected args",
			tool: NewGenericTool("get_cameras_by_zipcode", "Get cameras.", ReflectArgsSchema(&ZipcodeArgs{}), noopHandler),
			expectedOutput: engines.FunctionSpecs{
				Name:        "get_cameras_by_zipcode",
				Description: "Get cameras.",
				Parameters: &engines.ParameterSpecs{
					Type: "object",
					Properties: map[string]*engines.ParameterSpecs{
						"zipcode": {
							Type:        "string",
							Description: "5-digit US zipcode (e.g., '10036', '90212')",
						},
					},
					Required: []string{"zipcode"},
				},
			},
		},
		{
			name: "Hand-written schema",
			tool: NewGenericTool("test", "This is a test.", json.RawMessage(`{"type": "object", "properties": {"num": {"type": "number", "description": "a number"}}}`), noopHandler),
			expectedOutput: engines.FunctionSpecs{
				Name:        "test",
				Description: "This is a test.",
				Parameters: &engines.ParameterSpecs{
					Type: "object",
					Properties: map[string]*engines.ParameterSpecs{
						"num": {Type: "number", Description: "a number"},
					},
				},
			},
		},
		{
			name:        "Not an object",
			tool:        NewGenericTool("test", "This is a test.", json.RawMessage(`{"type": "string"}`), noopHandler),
			expectedErr: ErrCannotAutoConvertArgSchema,
		},
		{
			name:        "Not JSON",
			tool:        NewGenericTool("test", "This is a test.", json.RawMessage(`text`), noopHandler),
			expectedErr: ErrCannotAutoConvertArgSchema,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := ConvertToNativeFunctionSpecs(tc.tool)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOutput, output)
		})
	}
}

func TestReflectStreetSearchSchema(t *testing.T) {
	specs, err := convertArgSchemaToParameterSpecs(ReflectArgsSchema(&StreetSearchArgs{}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"street", "zipcode"}, specs.Required)
	require.Contains(t, specs.Properties, "street")
	assert.Contains(t, specs.Properties["street"].Description, "'5th Ave' not '5th Avenue'")
	assert.Equal(t, "string", specs.Properties["zipcode"].Type)
}
