package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() ContentModel {
	return ContentModel{
		CompanyName:  "FinTechPro",
		Tagline:      "Reinvent your payments",
		Description:  "Payments for {modern} businesses",
		HeroTitle:    "Simplify your transactions",
		HeroSubtitle: "Secure and fast",
		Features: []Feature{
			{Title: "Security", Description: "Bank-grade \"encryption\""},
			{Title: "API", Description: "Integrate in minutes}"},
		},
		CTA:   "Start now",
		Theme: ThemeFintech,
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestExtract_NoSentinel(t *testing.T) {
	tests := []string{
		"",
		"Hello, tell me more about your business.",
		"Here is some JSON without a marker: {\"companyName\": \"x\"}",
		"  padded text\n\n",
	}
	for _, raw := range tests {
		ex := Extract(raw)
		assert.Equal(t, PayloadAbsent, ex.Status)
		assert.Equal(t, raw, ex.DisplayText, "display text must be raw unchanged")
		_, ok := ex.Valid()
		assert.False(t, ok)
	}
}

func TestExtract_ValidPayload(t *testing.T) {
	page := samplePage()
	raw := "Some prose first. " + Sentinel + mustJSON(t, page) + "\n\n" + "  Want any changes?  "

	ex := Extract(raw)
	require.Equal(t, PayloadValid, ex.Status)
	got, ok := ex.Valid()
	require.True(t, ok)
	assert.Equal(t, page, got)
	assert.Equal(t, "Want any changes?", ex.DisplayText)
	assert.Empty(t, ex.Coerced)
}

func TestExtract_ValidPayloadNoTrailingText(t *testing.T) {
	page := samplePage()
	ex := Extract(Sentinel + mustJSON(t, page))
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, "", ex.DisplayText)
}

func TestExtract_IndentedAndFenced(t *testing.T) {
	page := samplePage()
	body, err := json.MarshalIndent(page, "", "  ")
	require.NoError(t, err)

	raw := Sentinel + "\n```json\n" + string(body) + "\n```\n\nLet me know what you think."
	ex := Extract(raw)
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, page, ex.Content)
	assert.Equal(t, "Let me know what you think.", ex.DisplayText)
}

func TestExtract_TrailingFencedBlockKept(t *testing.T) {
	page := samplePage()
	prose := "```bash\nnpm install\n```"
	ex := Extract(Sentinel + mustJSON(t, page) + "\n\n" + prose)
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, prose, ex.DisplayText)

	ex = Extract(Sentinel + mustJSON(t, page) + "\n```")
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, "", ex.DisplayText)
}

func TestExtract_ValidPayloadPassesValidate(t *testing.T) {
	ex := Extract(Sentinel + `{"companyName":"Acme","tagline":"t","description":"d","heroTitle":"h","heroSubtitle":"s","features":[],"cta":"c","theme":"retro"}`)
	require.Equal(t, PayloadValid, ex.Status)
	content, ok := ex.Valid()
	require.True(t, ok)
	assert.NoError(t, content.Validate())
}

func TestExtract_StopsAtFirstBalancedObject(t *testing.T) {
	page := samplePage()
	raw := Sentinel + mustJSON(t, page) + "\n\nExample of another block: {\"foo\": 1}"

	ex := Extract(raw)
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, page, ex.Content)
	assert.Equal(t, "Example of another block: {\"foo\": 1}", ex.DisplayText)
}

func TestExtract_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"syntax error", Sentinel + `{"companyName": "Acme",}` + "\n\nthanks"},
		{"unbalanced", Sentinel + `{"companyName": "Acme"`},
		{"no object", Sentinel + " nothing here"},
		{"missing field", Sentinel + `{"companyName":"Acme","tagline":"t","description":"d","heroTitle":"h","heroSubtitle":"s","cta":"c","theme":"saas"}`},
		{"wrong type", Sentinel + `{"companyName":1,"tagline":"t","description":"d","heroTitle":"h","heroSubtitle":"s","features":[],"cta":"c"}`},
		{"blank field", Sentinel + `{"companyName":"Acme","tagline":"","description":"d","heroTitle":"h","heroSubtitle":"s","features":[],"cta":"c","theme":"saas"}`},
		{"whitespace field", Sentinel + `{"companyName":"Acme","tagline":"t","description":"d","heroTitle":"h","heroSubtitle":"s","features":[],"cta":"   "}`},
		{"null features", Sentinel + `{"companyName":"Acme","tagline":"t","description":"d","heroTitle":"h","heroSubtitle":"s","features":null,"cta":"c"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ex Extraction
			require.NotPanics(t, func() { ex = Extract(tt.raw) })
			assert.Equal(t, PayloadInvalid, ex.Status)
			assert.NotEmpty(t, ex.Reason)
			assert.NotEmpty(t, ex.DisplayText)
			_, ok := ex.Valid()
			assert.False(t, ok)
		})
	}
}

func TestExtract_EmptySuffixKeepsRaw(t *testing.T) {
	raw := "I was about to send data " + Sentinel
	ex := Extract(raw)
	assert.Equal(t, PayloadInvalid, ex.Status)
	assert.Equal(t, raw, ex.DisplayText)
}

func TestExtract_ThemeCoercion(t *testing.T) {
	page := samplePage()
	wire := map[string]any{
		"companyName":  page.CompanyName,
		"tagline":      page.Tagline,
		"description":  page.Description,
		"heroTitle":    page.HeroTitle,
		"heroSubtitle": page.HeroSubtitle,
		"features":     page.Features,
		"cta":          page.CTA,
		"theme":        "neon",
	}
	ex := Extract(Sentinel + mustJSON(t, wire))
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, ThemeDefault, ex.Content.Theme)
	assert.Equal(t, "neon", ex.Coerced)

	wire["theme"] = "SaaS"
	ex = Extract(Sentinel + mustJSON(t, wire))
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, ThemeSaaS, ex.Content.Theme)
	assert.Empty(t, ex.Coerced)

	delete(wire, "theme")
	ex = Extract(Sentinel + mustJSON(t, wire))
	require.Equal(t, PayloadValid, ex.Status)
	assert.Equal(t, ThemeDefault, ex.Content.Theme)
	assert.Empty(t, ex.Coerced)
}

func TestScanObject_IgnoresBracesInStrings(t *testing.T) {
	s := `prefix {"a": "}{", "b": {"c": "\"}"}} tail`
	start, end, err := scanObject(s)
	require.NoError(t, err)
	assert.Equal(t, `{"a": "}{", "b": {"c": "\"}"}}`, s[start:end])
}

func TestContentModelValidate(t *testing.T) {
	page := samplePage()
	require.NoError(t, page.Validate())

	bad := page.Clone()
	bad.CompanyName = "  "
	assert.Error(t, bad.Validate())

	bad = page.Clone()
	bad.Features = nil
	assert.Error(t, bad.Validate())

	bad = page.Clone()
	bad.Theme = "neon"
	assert.Error(t, bad.Validate())

	empty := page.Clone()
	empty.Features = []Feature{}
	assert.NoError(t, empty.Validate())
}

func TestContentModelCloneDoesNotAlias(t *testing.T) {
	page := samplePage()
	c := page.Clone()
	c.Features[0].Title = "changed"
	assert.Equal(t, "Security", page.Features[0].Title)
}

func TestParseTheme(t *testing.T) {
	for _, th := range Themes {
		got, ok := ParseTheme(string(th))
		assert.True(t, ok)
		assert.Equal(t, th, got)
	}
	got, ok := ParseTheme(" ECOMMERCE ")
	assert.True(t, ok)
	assert.Equal(t, ThemeEcommerce, got)

	got, ok = ParseTheme("retro")
	assert.False(t, ok)
	assert.Equal(t, ThemeDefault, got)
	assert.Equal(t, ThemeDefault, NormalizeTheme(""))
}
