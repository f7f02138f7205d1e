package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"regexp"
	"strings"
	texttemplate "text/template"

	"landing_page_studio/generator"
)

// Format names an export artifact.
type Format string

const (
	FormatHTML      Format = "html"
	FormatComponent Format = "component"
)

// ParseFormat accepts "html" and "component" (alias "react", "jsx").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return FormatHTML, nil
	case "component", "react", "jsx":
		return FormatComponent, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Palette holds the CSS colors of a theme.
type Palette struct {
	Primary   htmltemplate.CSS
	Secondary htmltemplate.CSS
	Accent    htmltemplate.CSS
}

// Classes holds the Tailwind classes of a theme.
type Classes struct {
	Primary   string
	Secondary string
	Accent    string
}

var palettes = map[generator.Theme]Palette{
	generator.ThemeFintech:   {Primary: "#2563eb", Secondary: "#eff6ff", Accent: "#bfdbfe"},
	generator.ThemeSaaS:      {Primary: "#7c3aed", Secondary: "#f3e8ff", Accent: "#c4b5fd"},
	generator.ThemeEcommerce: {Primary: "#059669", Secondary: "#ecfdf5", Accent: "#a7f3d0"},
	generator.ThemeDefault:   {Primary: "#030213", Secondary: "#f1f5f9", Accent: "#e2e8f0"},
}

var classes = map[generator.Theme]Classes{
	generator.ThemeFintech:   {Primary: "bg-blue-600 hover:bg-blue-700", Secondary: "bg-blue-50 text-blue-700", Accent: "border-blue-200"},
	generator.ThemeSaaS:      {Primary: "bg-purple-600 hover:bg-purple-700", Secondary: "bg-purple-50 text-purple-700", Accent: "border-purple-200"},
	generator.ThemeEcommerce: {Primary: "bg-green-600 hover:bg-green-700", Secondary: "bg-green-50 text-green-700", Accent: "border-green-200"},
	generator.ThemeDefault:   {Primary: "bg-gray-900 hover:bg-gray-800", Secondary: "bg-gray-50 text-gray-700", Accent: "border-gray-200"},
}

// ThemePalette returns the colors for t, falling back to the default theme.
func ThemePalette(t generator.Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[generator.ThemeDefault]
}

func themeClasses(t generator.Theme) Classes {
	if c, ok := classes[t]; ok {
		return c
	}
	return classes[generator.ThemeDefault]
}

var (
	htmlTmpl      = htmltemplate.Must(htmltemplate.New("landing.html").Parse(htmlTemplate))
	componentTmpl = texttemplate.Must(texttemplate.New("landing.jsx").Parse(componentTemplate))
)

// RenderHTML returns a standalone HTML document with inline styles.
func RenderHTML(c generator.ContentModel) (string, error) {
	view := struct {
		generator.ContentModel
		Palette Palette
	}{c, ThemePalette(c.Theme)}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// RenderComponent returns a standalone React/Tailwind component source.
func RenderComponent(c generator.ContentModel) (string, error) {
	if c.Features == nil {
		c.Features = []generator.Feature{}
	}
	var data bytes.Buffer
	enc := json.NewEncoder(&data)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("render component: %w", err)
	}
	view := struct {
		Data    string
		Classes Classes
	}{strings.TrimSpace(data.String()), themeClasses(c.Theme)}

	var buf bytes.Buffer
	if err := componentTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render component: %w", err)
	}
	return buf.String(), nil
}

// Render dispatches on format.
func Render(c generator.ContentModel, f Format) (string, error) {
	switch f {
	case FormatHTML:
		return RenderHTML(c)
	case FormatComponent:
		return RenderComponent(c)
	}
	return "", fmt.Errorf("unknown export format %q", f)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// HTMLFilename is "<company>-landing.html" in lower case.
func HTMLFilename(c generator.ContentModel) string {
	return strings.ToLower(safeName(c.CompanyName)) + "-landing.html"
}

// ComponentFilename is "<Company>LandingPage.jsx".
func ComponentFilename(c generator.ContentModel) string {
	return safeName(c.CompanyName) + "LandingPage.jsx"
}

// Filename returns the artifact file name for format f.
func Filename(c generator.ContentModel, f Format) string {
	if f == FormatComponent {
		return ComponentFilename(c)
	}
	return HTMLFilename(c)
}

func safeName(s string) string {
	name := strings.Trim(unsafeName.ReplaceAllString(s, ""), "-_")
	if name == "" {
		return "Untitled"
	}
	return name
}
