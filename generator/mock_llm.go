package generator

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// MockLLM answers from canned pages without calling an external model. It
// speaks the same sentinel convention as a real model, which keeps offline
// runs on the full extraction path.
type MockLLM struct {
	// Delay simulates thinking time.
	Delay time.Duration
}

var cannedPages = []struct {
	keywords []string
	reply    string
	page     ContentModel
}{
	{
		keywords: []string{"fintech", "finance", "payment"},
		reply:    "A fintech reinventing payments. Here is a first version of your landing page focused on security and easy integration. Would you like me to change anything?",
		page: ContentModel{
			CompanyName:  "FinTechPro",
			Tagline:      "Reinvent your payments",
			Description:  "The next-generation payment platform for modern businesses",
			HeroTitle:    "Simplify your financial transactions",
			HeroSubtitle: "FinTechPro gives you a secure, intuitive platform to manage every online payment",
			Features: []Feature{
				{Title: "Bank-grade security", Description: "Every transaction encrypted end to end"},
				{Title: "Simple API", Description: "Integrate in a few lines of code"},
				{Title: "Advanced analytics", Description: "Detailed dashboards to track performance"},
			},
			CTA:   "Start for free",
			Theme: ThemeFintech,
		},
	},
	{
		keywords: []string{"saas", "software", "productivity"},
		reply:    "A productivity SaaS, a strong market. This landing page puts efficiency and collaboration first. What do you think of the positioning?",
		page: ContentModel{
			CompanyName:  "ProductiFlow",
			Tagline:      "Boost your productivity",
			Description:  "The SaaS tool that changes the way you work",
			HeroTitle:    "Streamline your workflow",
			HeroSubtitle: "ProductiFlow brings all your productivity tools into one simple, powerful interface",
			Features: []Feature{
				{Title: "One place", Description: "All your tools in a single workspace"},
				{Title: "Automation", Description: "Automate your repetitive tasks"},
				{Title: "Collaboration", Description: "Work with your team in real time"},
			},
			CTA:   "Try it free",
			Theme: ThemeSaaS,
		},
	},
	{
		keywords: []string{"e-commerce", "ecommerce", "shop", "store"},
		reply:    "An e-commerce platform, great timing. This landing page highlights how easy it is to launch and run a store. Want to adjust the main message?",
		page: ContentModel{
			CompanyName:  "ShopFlow",
			Tagline:      "Your store, everywhere",
			Description:  "Create and run your online store in a few clicks",
			HeroTitle:    "Launch your online store",
			HeroSubtitle: "ShopFlow gives you every tool to build, manage and grow your e-commerce business",
			Features: []Feature{
				{Title: "Custom templates", Description: "Professional designs that fit your brand"},
				{Title: "Inventory", Description: "Track stock in real time"},
				{Title: "Secure checkout", Description: "Accept every payment method"},
			},
			CTA:   "Create my store",
			Theme: ThemeEcommerce,
		},
	},
}

const mockFollowUp = "Thanks! Can you tell me more about your sector, your unique value proposition and your target users? The more I know, the better I can tailor your landing page."

func (m MockLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	var last string
	for i := len(prompt.History) - 1; i >= 0; i-- {
		if prompt.History[i].Role == RoleUser {
			last = strings.ToLower(prompt.History[i].Content)
			break
		}
	}

	for _, c := range cannedPages {
		for _, kw := range c.keywords {
			if !strings.Contains(last, kw) {
				continue
			}
			data, err := json.MarshalIndent(c.page, "", "  ")
			if err != nil {
				return "", err
			}
			var sb strings.Builder
			sb.WriteString(Sentinel)
			sb.Write(data)
			sb.WriteString("\n\n")
			sb.WriteString(c.reply)
			return sb.String(), nil
		}
	}
	return mockFollowUp, nil
}
