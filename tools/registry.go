package tools

import (
	"fmt"

	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/samber/lo"
)

type registryEntry struct {
	function Function
	tool     Tool
	specs    engines.FunctionSpecs
}

// Registry is the fixed, ordered set of functions offered to the model. It
// is not modified after construction and is safe for concurrent reads.
type Registry struct {
	entries []registryEntry
}

func NewRegistry(tools map[Function]Tool) (*Registry, error) {
	for fn := range tools {
		if fn.String() == FunctionUnknown.String() {
			return nil, fmt.Errorf("%w: cannot register function %d", ErrUnknownFunction, fn)
		}
	}
	registry := &Registry{}
	for _, fn := range Functions() {
		tool, ok := tools[fn]
		if !ok {
			continue
		}
		specs, err := ConvertToNativeFunctionSpecs(tool)
		if err != nil {
			return nil, err
		}
		registry.entries = append(registry.entries, registryEntry{
			function: fn,
			tool:     tool,
			specs:    specs,
		})
	}
	return registry, nil
}

// NewCameraRegistry registers every known function against finder.
func NewCameraRegistry(finder cameras.Finder) (*Registry, error) {
	tools := make(map[Function]Tool, len(Functions()))
	for _, fn := range Functions() {
		tool, err := NewCameraTool(fn, finder)
		if err != nil {
			return nil, err
		}
		tools[fn] = tool
	}
	return NewRegistry(tools)
}

func (r *Registry) Lookup(fn Function) (Tool, bool) {
	for _, entry := range r.entries {
		if entry.function == fn {
			return entry.tool, true
		}
	}
	return nil, false
}

// Specs returns the function declarations in registry order.
func (r *Registry) Specs() []engines.FunctionSpecs {
	return lo.Map(r.entries, func(entry registryEntry, _ int) engines.FunctionSpecs {
		return entry.specs
	})
}

func (r *Registry) Names() []string {
	return lo.Map(r.entries, func(entry registryEntry, _ int) string {
		return entry.function.String()
	})
}

func (r *Registry) Len() int {
	return len(r.entries)
}
