package server

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"

	"landing_page_studio/generator"
)

// messageView is a transcript entry with its text pre-rendered for the UI.
type messageView struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	HTML      string           `json:"html"`
	Sender    generator.Sender `json:"sender"`
	Timestamp time.Time        `json:"timestamp"`
	Local     bool             `json:"local,omitempty"`
}

// goldmark's default renderer drops raw HTML, so model output cannot inject markup.
var markdown = goldmark.New()

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderMessages(msgs []generator.ConversationMessage, logger *slog.Logger) []messageView {
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		html, err := mdToHTML(m.Text)
		if err != nil {
			logger.Warn("render message failed", "id", m.ID, "error", err)
			html = ""
		}
		out = append(out, messageView{
			ID:        m.ID,
			Text:      m.Text,
			HTML:      html,
			Sender:    m.Sender,
			Timestamp: m.Timestamp,
			Local:     m.Local,
		})
	}
	return out
}
