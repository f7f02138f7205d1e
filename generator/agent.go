package generator

import (
	"context"
	"errors"
	"log/slog"
)

// Agent sends the conversation to the model and extracts page content from the reply.
type Agent struct {
	llm      LLMClient
	language *LanguageDetector
	logger   *slog.Logger
}

// AgentOption customizes an Agent.
type AgentOption func(*Agent)

// WithLanguageDetector enables the reply-language hint.
func WithLanguageDetector(d *LanguageDetector) AgentOption {
	return func(a *Agent) { a.language = d }
}

func WithLogger(l *slog.Logger) AgentOption {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAgent(llm LLMClient, opts ...AgentOption) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Agent{llm: llm, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Generate runs one completion over log. Extraction problems are logged and
// downgraded to plain text; only gateway failures are returned as errors.
func (a *Agent) Generate(ctx context.Context, log []ConversationMessage, current *ContentModel) (Extraction, error) {
	var language string
	if a.language != nil {
		for i := len(log) - 1; i >= 0; i-- {
			if log[i].Sender == SenderUser && !log[i].Local {
				language = a.language.Detect(log[i].Text)
				break
			}
		}
	}

	raw, err := a.llm.Complete(ctx, BuildPrompt(log, current, language))
	if err != nil {
		return Extraction{}, err
	}

	ex := Extract(raw)
	switch ex.Status {
	case PayloadInvalid:
		a.logger.Warn("landing page payload rejected", "reason", ex.Reason, "raw_len", len(raw))
	case PayloadValid:
		if ex.Coerced != "" {
			a.logger.Warn("unknown theme replaced by default", "theme", ex.Coerced)
		}
		a.logger.Debug("landing page payload extracted", "company", ex.Content.CompanyName, "theme", ex.Content.Theme)
	}
	return ex, nil
}
