package generator

import (
	"fmt"
	"strings"
	"time"
)

// Theme selects the landing page color palette.
type Theme string

const (
	ThemeFintech   Theme = "fintech"
	ThemeSaaS      Theme = "saas"
	ThemeEcommerce Theme = "ecommerce"
	ThemeDefault   Theme = "default"
)

// Themes lists the closed set of accepted themes.
var Themes = []Theme{ThemeFintech, ThemeSaaS, ThemeEcommerce, ThemeDefault}

func (t Theme) Valid() bool {
	switch t {
	case ThemeFintech, ThemeSaaS, ThemeEcommerce, ThemeDefault:
		return true
	}
	return false
}

// ParseTheme accepts a theme name case-insensitively.
func ParseTheme(s string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return ThemeDefault, false
	}
	return t, true
}

// NormalizeTheme coerces anything outside the closed set to ThemeDefault.
func NormalizeTheme(s string) Theme {
	t, _ := ParseTheme(s)
	return t
}

// Feature is one entry of the features grid.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContentModel is the generated landing page.
type ContentModel struct {
	CompanyName  string    `json:"companyName"`
	Tagline      string    `json:"tagline"`
	Description  string    `json:"description"`
	HeroTitle    string    `json:"heroTitle"`
	HeroSubtitle string    `json:"heroSubtitle"`
	Features     []Feature `json:"features"`
	CTA          string    `json:"cta"`
	Theme        Theme     `json:"theme"`
}

// Validate reports the first required field that is empty or an invalid theme.
func (c ContentModel) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"companyName", c.CompanyName},
		{"tagline", c.Tagline},
		{"description", c.Description},
		{"heroTitle", c.HeroTitle},
		{"heroSubtitle", c.HeroSubtitle},
		{"cta", c.CTA},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("field %s is required", f.name)
		}
	}
	if c.Features == nil {
		return fmt.Errorf("field features is required")
	}
	if !c.Theme.Valid() {
		return fmt.Errorf("theme %q is not one of fintech, saas, ecommerce, default", c.Theme)
	}
	return nil
}

// Clone returns a deep copy so callers cannot alias the features slice.
func (c ContentModel) Clone() ContentModel {
	out := c
	if c.Features != nil {
		out.Features = append([]Feature(nil), c.Features...)
	}
	return out
}

// Sender identifies who produced a conversation message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ConversationMessage is one entry of the session log. Never mutated once appended.
type ConversationMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	// Local marks text produced by the application (greeting, failure notice);
	// it is displayed but never sent to the model.
	Local bool `json:"local,omitempty"`
}
