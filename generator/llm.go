package generator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredential is returned when a provider has no API key configured.
var ErrMissingCredential = errors.New("missing credential")

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	// MockDelay only applies to the mock provider.
	MockDelay time.Duration
}

// NewLLM builds the client for settings.Provider. A provider without an API
// key yields a client that fails each call, so one missing secret only breaks
// the operations that need it.
func NewLLM(s LLMSettings) (LLMClient, error) {
	switch s.Provider {
	case "mock":
		return MockLLM{Delay: s.MockDelay}, nil
	case "openai", "deepseek", "anthropic":
	case "":
		return nil, errors.New("llm provider is required")
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
	if s.APIKey == "" {
		return unavailableLLM{err: fmt.Errorf("%s: %w", s.Provider, ErrMissingCredential)}, nil
	}
	switch s.Provider {
	case "anthropic":
		return NewAnthropicLLM(&s)
	case "deepseek":
		// DeepSeek only exposes an OpenAI-compatible endpoint.
		if s.BaseURL == "" {
			return nil, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	}
	return NewOpenAILLMFromConfig(&s)
}

type unavailableLLM struct {
	err error
}

func (u unavailableLLM) Complete(context.Context, Prompt) (string, error) {
	return "", u.err
}
