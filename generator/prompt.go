package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System  string
	History []Message
}

// Message is one role-tagged turn sent to the model.
type Message struct {
	Role    string
	Content string
}

// SystemInstruction is the fixed role description sent with every request.
const SystemInstruction = `You are an expert in building landing pages for startups. Help the user create an effective landing page by asking relevant questions about their company, market and value proposition.

Ask about:
- the problem their product solves
- their target market and ideal users
- their unique value proposition
- their main features
- their sector (fintech, saas, ecommerce, ...)

Be conversational, friendly and professional, and help them sharpen their message.

When you have enough information, generate a complete landing page as JSON with exactly this structure:

{
  "companyName": "Company name",
  "tagline": "Catchy tagline",
  "description": "Short description",
  "heroTitle": "Impactful main title",
  "heroSubtitle": "Explanatory subtitle",
  "features": [
    { "title": "Feature 1", "description": "Description" },
    { "title": "Feature 2", "description": "Description" },
    { "title": "Feature 3", "description": "Description" }
  ],
  "cta": "Call to action button text",
  "theme": "fintech" | "saas" | "ecommerce" | "default"
}

When you generate a landing page, start your reply with "` + Sentinel + `" followed by the JSON, then add a short explanation after a blank line.`

// BuildPrompt assembles the system instruction and the history sent to the
// model. current, when set, is the page on display so revisions start from it.
func BuildPrompt(log []ConversationMessage, current *ContentModel, language string) Prompt {
	var sb strings.Builder
	sb.WriteString(SystemInstruction)

	if current != nil {
		if data, err := json.MarshalIndent(current, "", "  "); err == nil {
			sb.WriteString("\n\nThe landing page currently on display is below. When the user asks for changes, return the full updated JSON with the same structure.\n")
			sb.Write(data)
		}
	}
	if language != "" {
		sb.WriteString(fmt.Sprintf("\n\nReply in %s. Keep the JSON keys and theme values in English.", language))
	}

	var msgs []Message
	for _, m := range log {
		if m.Local {
			continue
		}
		role := RoleUser
		if m.Sender == SenderAssistant {
			role = RoleAssistant
		}
		msgs = append(msgs, Message{Role: role, Content: m.Text})
	}

	return Prompt{
		System:  sb.String(),
		History: msgs,
	}
}
