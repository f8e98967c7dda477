// Package llm provides the schema-validated completion primitive: every
// pipeline phase talks to the completion provider through it and receives
// either a value matching its declared output schema or a typed error.
package llm

import (
	"context"
	"encoding/json"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// ChatService is the subset of the OpenAI client the completer needs.
// *openai.Client satisfies it directly; tests drive the loop with
// scripted fakes.
type ChatService interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ToolFunc answers one tool invocation synchronously. The returned string
// is handed back to the model verbatim as the tool result payload.
type ToolFunc func(ctx context.Context, arguments json.RawMessage) (string, error)

// Tool couples a strict function declaration with its local handler.
// The strictness flag forbids undeclared properties in arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
	Handler     ToolFunc
}

// Request describes one schema-validated completion
type Request struct {
	Model        string
	Instructions string
	Input        string
	SchemaName   string
	Schema       jsonschema.Definition
	Tools        []Tool
}

// openAITools converts registered tools to the wire declaration
func openAITools(tools []Tool) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		params := t.Parameters
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Strict:      true,
				Parameters:  &params,
			},
		})
	}
	return out
}
