package judge

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicJudge implements Judge over the Anthropic Messages API. The
// JSON contract is the same as the OpenAI adapter's; the answer is parsed
// from the first text block.
type AnthropicJudge struct {
	client anthropic.Client
	config Config
}

// NewAnthropicJudge creates the adapter
func NewAnthropicJudge(config Config) (*AnthropicJudge, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("judgment API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &AnthropicJudge{
		client: anthropic.NewClient(opts...),
		config: config,
	}, nil
}

// Name returns the provider name
func (j *AnthropicJudge) Name() string {
	return "anthropic"
}

// Judge performs the final adjudication call
func (j *AnthropicJudge) Judge(ctx context.Context, req Request) (*Response, error) {
	raw, err := j.complete(ctx, auditSystemPrompt, buildUserPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseResponse(raw)
}

// AssessTone runs the advisory exaggeration check
func (j *AnthropicJudge) AssessTone(ctx context.Context, req Request) (Verdict, error) {
	raw, err := j.complete(ctx, toneSystemPrompt, buildUserPrompt(req))
	if err != nil {
		return VerdictPass, err
	}
	resp, err := parseResponse(raw)
	if err != nil {
		return VerdictPass, err
	}
	return resp.Verdict, nil
}

func (j *AnthropicJudge) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := j.config.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	maxTokens := j.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	timeout := time.Duration(j.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeoutSec * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	message, err := j.client.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: no text content in response", ErrParse)
}
