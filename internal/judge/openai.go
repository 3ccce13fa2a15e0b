package judge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	deepseekBaseURL   = "https://api.deepseek.com/v1"
	defaultChatModel  = "deepseek-chat"
	maxRetries        = 3
	retryBaseDelay    = 2 * time.Second
	defaultMaxTokens  = 2000
	defaultTimeoutSec = 60
)

// OpenAIJudge implements Judge over any OpenAI-compatible chat endpoint.
// DeepSeek is the default, matching the upstream drafting pipeline.
type OpenAIJudge struct {
	client *openai.Client
	config Config
}

// NewOpenAIJudge creates the adapter
func NewOpenAIJudge(config Config) (*OpenAIJudge, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("judgment API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	switch {
	case config.BaseURL != "":
		clientConfig.BaseURL = config.BaseURL
	case config.Provider == "" || config.Provider == "deepseek":
		clientConfig.BaseURL = deepseekBaseURL
	}

	return &OpenAIJudge{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (j *OpenAIJudge) Name() string {
	if j.config.Provider != "" {
		return j.config.Provider
	}
	return "deepseek"
}

// Judge performs the final adjudication call. Transport failures and
// unparseable responses surface as typed errors; the caller decides the
// fatal-vs-fail-open policy.
func (j *OpenAIJudge) Judge(ctx context.Context, req Request) (*Response, error) {
	raw, err := j.complete(ctx, auditSystemPrompt, buildUserPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseResponse(raw)
}

// AssessTone runs the advisory exaggeration check with a lighter prompt
func (j *OpenAIJudge) AssessTone(ctx context.Context, req Request) (Verdict, error) {
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

// complete runs one chat completion with JSON output, temperature 0, and
// exponential backoff on rate-limit rejections.
func (j *OpenAIJudge) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := j.config.Model
	if model == "" {
		model = defaultChatModel
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

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := j.client.CreateChatCompletion(callCtx, chatReq)
		if err != nil {
			if isRateLimited(err) && attempt < maxRetries {
				lastErr = err
				select {
				case <-callCtx.Done():
					return "", fmt.Errorf("%w: %v", ErrTransport, callCtx.Err())
				case <-time.After(retryBaseDelay * time.Duration(1<<attempt)):
				}
				continue
			}
			return "", fmt.Errorf("%w: %v", ErrTransport, err)
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: empty choices", ErrParse)
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: %v", ErrTransport, lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
