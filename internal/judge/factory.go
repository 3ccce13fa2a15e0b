package judge

import (
	"fmt"
	"strings"
)

// New creates a judgment capability from configuration
func New(config Config) (Judge, error) {
	switch strings.ToLower(config.Provider) {
	case "deepseek", "openai", "":
		return NewOpenAIJudge(config)

	case "anthropic", "claude":
		return NewAnthropicJudge(config)

	default:
		return nil, fmt.Errorf("unknown judgment provider: %s (supported: deepseek, openai, anthropic)", config.Provider)
	}
}
