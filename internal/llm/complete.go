package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sashabaranov/go-openai"
)

// SchemaCompleter invokes the completion service with an instruction
// string, input payload and declared output schema, blocking until the
// provider completes or fails. Callers never receive a partially
// validated value.
type SchemaCompleter struct {
	svc      ChatService
	timeout  time.Duration // bound on each upstream call
	validate *validator.Validate
}

// NewSchemaCompleter creates a completer over the given chat service
func NewSchemaCompleter(svc ChatService, timeout time.Duration) *SchemaCompleter {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &SchemaCompleter{
		svc:      svc,
		timeout:  timeout,
		validate: validator.New(),
	}
}

// Complete runs the completion, answering any tool invocations
// synchronously, and unmarshals the final payload into out. out must be
// a pointer to the struct matching req.Schema.
func (c *SchemaCompleter) Complete(ctx context.Context, req Request, out any) error {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.Instructions},
		{Role: openai.ChatMessageRoleUser, Content: req.Input},
	}

	handlers := make(map[string]ToolFunc, len(req.Tools))
	for _, t := range req.Tools {
		handlers[t.Name] = t.Handler
	}

	schema := req.Schema
	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Tools: openAITools(req.Tools),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: &schema,
				Strict: true,
			},
		},
	}

	// Round state machine: AWAITING_MODEL -> (TOOL_REQUESTED ->
	// TOOL_ANSWERED -> AWAITING_MODEL)* -> COMPLETED | FAILED. Each loop
	// iteration is one model turn; a turn either requests tools (answered
	// synchronously below before control returns to the model) or emits
	// the final payload. Termination is the model's responsibility; there
	// is no local turn cap.
	for {
		chatReq.Messages = messages

		resp, err := c.create(ctx, chatReq)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return &UpstreamError{Err: errors.New("provider returned no choices")}
		}
		choice := resp.Choices[0]

		switch {
		case len(choice.Message.ToolCalls) > 0:
			messages = append(messages, choice.Message)

			for _, call := range choice.Message.ToolCalls {
				handler, ok := handlers[call.Function.Name]
				if !ok {
					return &UpstreamError{Err: fmt.Errorf("model invoked undeclared tool %q", call.Function.Name)}
				}
				result, err := handler(ctx, json.RawMessage(call.Function.Arguments))
				if err != nil {
					return fmt.Errorf("tool %s: %w", call.Function.Name, err)
				}
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    result,
					ToolCallID: call.ID,
				})
			}

		case choice.FinishReason == openai.FinishReasonStop || choice.FinishReason == "":
			return c.parse(req, choice.Message.Content, out)

		default:
			return &UpstreamError{Err: fmt.Errorf("completion did not finish: %s", choice.FinishReason)}
		}
	}
}

// parse validates the final payload against the declared schema before it
// reaches the caller
func (c *SchemaCompleter) parse(req Request, content string, out any) error {
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return &SchemaMismatchError{Schema: req.SchemaName, Err: err}
	}
	if err := c.validate.Struct(out); err != nil {
		return &SchemaMismatchError{Schema: req.SchemaName, Err: err}
	}
	return nil
}

// create issues one bounded upstream call and maps transport failures to
// the error taxonomy
func (c *SchemaCompleter) create(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.CreateChatCompletion(callCtx, req)
	if err != nil {
		return resp, mapProviderError(err)
	}
	return resp, nil
}

func mapProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Timeout: true, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Status: reqErr.HTTPStatusCode, Err: err}
	}

	return &UpstreamError{Err: err}
}
