package tools

import (
	"context"
	"encoding/json"
)

type HandlerFunc func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

type GenericTool struct {
	name        string
	description string
	argSchema   json.RawMessage
	handler     HandlerFunc
}

func (b *GenericTool) Execute(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	return b.handler(ctx, args)
}

func (b *GenericTool) Name() string {
	return b.name
}

func (b *GenericTool) Description() string {
	return b.description
}

func (b *GenericTool) ArgsSchema() json.RawMessage {
	return b.argSchema
}

func NewGenericTool(name, description string, argSchema json.RawMessage, handler HandlerFunc) *GenericTool {
	return &GenericTool{
		name:        name,
		description: description,
		argSchema:   argSchema,
		handler:     handler,
	}
}
