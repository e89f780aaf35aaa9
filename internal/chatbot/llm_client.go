package chatbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Tool is a function-calling tool exposed to the model.
type Tool interface {
	Definition() openai.FunctionDefinitionParam
	Execute(ctx context.Context, arguments string) (string, error)
}

// llmClient drives the chat completion loop with function calling.
type llmClient struct {
	client openai.Client
	logger *slog.Logger
	tools  map[string]Tool
}

func newLLMClient(apiKey string, logger *slog.Logger) *llmClient {
	return &llmClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
		tools:  make(map[string]Tool),
	}
}

// RegisterTool makes a tool callable by the model.
func (c *llmClient) RegisterTool(tool Tool) {
	c.tools[tool.Definition().Name] = tool
}

// maxToolRounds bounds the tool call loop so a confused model cannot spin
// forever.
const maxToolRounds = 5

// GenerateResponse runs the completion loop: the model may call tools, their
// results are fed back, and the final text answer is returned.
func (c *llmClient) GenerateResponse(
	ctx context.Context,
	systemPrompt string,
	history []ChatMessage,
) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, msg := range history {
		switch msg.MessageType {
		case MessageTypeAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	toolParams := make([]openai.ChatCompletionToolUnionParam, 0, len(c.tools))
	for _, tool := range c.tools {
		toolParams = append(toolParams, openai.ChatCompletionFunctionTool(tool.Definition()))
	}

	for round := 0; round < maxToolRounds; round++ {
		completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModelGPT4o,
			Messages: messages,
			Tools:    toolParams,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		message := completion.Choices[0].Message
		c.logger.LogAttrs(ctx, slog.LevelDebug, "chat completion round",
			slog.Int("round", round),
			slog.Int("toolCalls", len(message.ToolCalls)),
			slog.Int64("totalTokens", completion.Usage.TotalTokens))

		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}

		messages = append(messages, message.ToParam())
		for _, toolCall := range message.ToolCalls {
			result := c.executeToolCall(ctx, toolCall.Function.Name, toolCall.Function.Arguments)
			messages = append(messages, openai.ToolMessage(result, toolCall.ID))
		}
	}

	return "", fmt.Errorf("tool call loop exceeded %d rounds", maxToolRounds)
}

// executeToolCall runs one tool and folds failures into the transcript so the
// model can recover instead of the whole request failing.
func (c *llmClient) executeToolCall(ctx context.Context, name, arguments string) string {
	tool, ok := c.tools[name]
	if !ok {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "model called unknown tool", slog.String("tool", name))
		return fmt.Sprintf("unknown tool: %s", name)
	}

	result, err := tool.Execute(ctx, arguments)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "tool execution failed",
			slog.String("tool", name), slog.Any("error", err))
		return fmt.Sprintf("tool %s failed: %v", name, err)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "tool executed",
		slog.String("tool", name), slog.Int("resultLength", len(result)))
	return result
}

// systemPrompt frames the assistant and points it at the tools.
const systemPrompt = `You are a heart-rate focused personal trainer assistant. You help users understand their training zones, judge whether their current heart rate is safe, and plan exercise sessions.

Use the available tools to compute zone tables, safety verdicts, session recommendations, and training statistics instead of estimating numbers yourself. Always state heart rates in bpm and durations in minutes.

Guidelines:
- Be encouraging but honest about safety. If a reading is unsafe, lead with that.
- Explain which zone a number falls into and what training effect it has.
- When recommending sessions, mention warm-up and cool-down explicitly.
- Recommend consulting a doctor for symptoms such as chest pain or dizziness.`
