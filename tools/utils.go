package tools

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/natexcvi/speedcam-llm/engines"
)

var (
	ErrCannotAutoConvertArgSchema = fmt.Errorf("cannot auto-convert arg schema")
)

// ReflectArgsSchema builds the JSON schema of an argument record. Fields
// without omitempty are required.
func ReflectArgsSchema(args any) json.RawMessage {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema, err := reflector.Reflect(args).MarshalJSON()
	if err != nil {
		panic(err)
	}
	return schema
}

func ConvertToNativeFunctionSpecs(tool Tool) (engines.FunctionSpecs, error) {
	parameterSpecs, err := convertArgSchemaToParameterSpecs(tool.ArgsSchema())
	if err != nil {
		return engines.FunctionSpecs{}, fmt.Errorf("tool %s: %w", tool.Name(), err)
	}
	return engines.FunctionSpecs{
		Name:        tool.Name(),
		Description: tool.Description(),
		Parameters:  &parameterSpecs,
	}, nil
}

func convertArgSchemaToParameterSpecs(argSchema json.RawMessage) (engines.ParameterSpecs, error) {
	var specs engines.ParameterSpecs
	if err := json.Unmarshal(argSchema, &specs); err != nil {
		return engines.ParameterSpecs{}, fmt.Errorf("%w: %s", ErrCannotAutoConvertArgSchema, err.Error())
	}
	if specs.Type != "object" {
		return engines.ParameterSpecs{}, fmt.Errorf("%w: arguments must be an object, got %q", ErrCannotAutoConvertArgSchema, specs.Type)
	}
	if specs.Properties == nil {
		specs.Properties = map[string]*engines.ParameterSpecs{}
	}
	return specs, nil
}
