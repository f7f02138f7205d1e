package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel prefixes the JSON payload embedded in an assistant reply.
const Sentinel = "LANDING_PAGE_DATA:"

// PayloadStatus tells whether a completion carried usable page content.
type PayloadStatus int

const (
	PayloadAbsent PayloadStatus = iota
	PayloadValid
	PayloadInvalid
)

func (s PayloadStatus) String() string {
	switch s {
	case PayloadValid:
		return "valid"
	case PayloadInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Extraction is the result of splitting a raw completion into the text shown
// to the user and the structured payload, if any.
type Extraction struct {
	DisplayText string
	Status      PayloadStatus
	// Content is only meaningful when Status is PayloadValid; use Valid.
	Content ContentModel
	// Reason explains a PayloadInvalid status.
	Reason string
	// Coerced holds the rejected theme value when it was replaced by default.
	Coerced string
}

// Valid returns the content and true only for a valid payload.
func (e Extraction) Valid() (ContentModel, bool) {
	if e.Status != PayloadValid {
		return ContentModel{}, false
	}
	return e.Content.Clone(), true
}

// Extract never fails: every malformed payload degrades to plain text.
func Extract(raw string) Extraction {
	idx := strings.Index(raw, Sentinel)
	if idx < 0 {
		return Extraction{DisplayText: raw, Status: PayloadAbsent}
	}
	suffix := raw[idx+len(Sentinel):]

	invalid := func(reason string) Extraction {
		display := strings.TrimSpace(suffix)
		if display == "" {
			display = raw
		}
		return Extraction{DisplayText: display, Status: PayloadInvalid, Reason: reason}
	}

	start, end, err := scanObject(suffix)
	if err != nil {
		return invalid(err.Error())
	}

	content, coerced, err := decodeContent([]byte(suffix[start:end]))
	if err != nil {
		return invalid(err.Error())
	}

	return Extraction{
		DisplayText: trailingProse(suffix[end:]),
		Status:      PayloadValid,
		Content:     content,
		Coerced:     coerced,
	}
}

var (
	errNoObject   = errors.New("no JSON object after sentinel")
	errUnbalanced = errors.New("unbalanced braces in JSON payload")
)

// scanObject finds the first balanced {...} block in s. Braces inside JSON
// string literals do not count toward depth.
func scanObject(s string) (int, int, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return 0, 0, errNoObject
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, nil
			}
		}
	}
	return 0, 0, errUnbalanced
}

// wireContent uses pointers so absent keys can be told apart from empty ones.
type wireContent struct {
	CompanyName  *string    `json:"companyName"`
	Tagline      *string    `json:"tagline"`
	Description  *string    `json:"description"`
	HeroTitle    *string    `json:"heroTitle"`
	HeroSubtitle *string    `json:"heroSubtitle"`
	Features     *[]Feature `json:"features"`
	CTA          *string    `json:"cta"`
	Theme        *string    `json:"theme"`
}

func decodeContent(data []byte) (ContentModel, string, error) {
	var w wireContent
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return ContentModel{}, "", fmt.Errorf("decode payload: %w", err)
	}

	fields := []struct {
		name string
		ptr  *string
	}{
		{"companyName", w.CompanyName},
		{"tagline", w.Tagline},
		{"description", w.Description},
		{"heroTitle", w.HeroTitle},
		{"heroSubtitle", w.HeroSubtitle},
		{"cta", w.CTA},
	}
	for _, f := range fields {
		if f.ptr == nil {
			return ContentModel{}, "", fmt.Errorf("payload missing field %s", f.name)
		}
	}
	if w.Features == nil {
		return ContentModel{}, "", errors.New("payload missing field features")
	}

	content := ContentModel{
		CompanyName:  *w.CompanyName,
		Tagline:      *w.Tagline,
		Description:  *w.Description,
		HeroTitle:    *w.HeroTitle,
		HeroSubtitle: *w.HeroSubtitle,
		Features:     *w.Features,
		CTA:          *w.CTA,
		Theme:        ThemeDefault,
	}
	if content.Features == nil {
		content.Features = []Feature{}
	}

	var coerced string
	if w.Theme != nil {
		theme, ok := ParseTheme(*w.Theme)
		if !ok {
			coerced = *w.Theme
		}
		content.Theme = theme
	}
	if err := content.Validate(); err != nil {
		return ContentModel{}, "", fmt.Errorf("payload %w", err)
	}
	return content, coerced, nil
}

func trailingProse(s string) string {
	s = strings.TrimSpace(s)
	// drop the fence closing a wrapped payload, but keep a block that opens here
	switch {
	case s == "```":
		return ""
	case strings.HasPrefix(s, "```\n"), strings.HasPrefix(s, "```\r\n"):
		return strings.TrimSpace(s[3:])
	}
	return s
}
