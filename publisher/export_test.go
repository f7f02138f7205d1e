package publisher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landing_page_studio/generator"
)

func samplePage(theme generator.Theme) generator.ContentModel {
	return generator.ContentModel{
		CompanyName:  "Smith & Sons",
		Tagline:      "Tools <for> everyone",
		Description:  "Hardware delivered in 24h",
		HeroTitle:    "Build anything",
		HeroSubtitle: "Quality tools at fair prices",
		Features: []generator.Feature{
			{Title: "Fast delivery", Description: "Next day"},
			{Title: "Lifetime warranty", Description: "No questions asked"},
			{Title: "\"Expert\" advice", Description: "Real humans"},
		},
		CTA:   "Shop now",
		Theme: theme,
	}
}

func TestRenderHTML_ContainsContent(t *testing.T) {
	page := samplePage(generator.ThemeEcommerce)
	out, err := RenderHTML(page)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, page.CompanyName, doc.Find(".logo span").First().Text())
	assert.Equal(t, page.Tagline, doc.Find(".badge").Text())
	assert.Equal(t, page.HeroTitle, doc.Find(".hero h1").Text())
	assert.Equal(t, page.HeroSubtitle, doc.Find(".hero p").Text())

	var titles []string
	doc.Find(".feature-card h3").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	require.Len(t, titles, len(page.Features))
	for i, f := range page.Features {
		assert.Equal(t, f.Title, titles[i])
	}

	text := doc.Text()
	assert.Contains(t, text, page.CompanyName)
	assert.Contains(t, text, page.Tagline)
	assert.Contains(t, text, page.CTA)
}

func TestRenderHTML_EscapesMarkup(t *testing.T) {
	out, err := RenderHTML(samplePage(generator.ThemeDefault))
	require.NoError(t, err)
	assert.NotContains(t, out, "<for>")
	assert.Contains(t, out, "Tools &lt;for&gt; everyone")
}

func TestRenderHTML_ThemePalette(t *testing.T) {
	for _, theme := range generator.Themes {
		out, err := RenderHTML(samplePage(theme))
		require.NoError(t, err)
		assert.Contains(t, out, string(ThemePalette(theme).Primary), theme)
		assert.Contains(t, out, string(ThemePalette(theme).Accent), theme)
	}

	out, err := RenderHTML(samplePage(generator.ThemeFintech))
	require.NoError(t, err)
	assert.Contains(t, out, "#2563eb")
	assert.NotContains(t, out, "#059669")

	assert.Equal(t, ThemePalette(generator.ThemeDefault), ThemePalette("neon"))
}

func TestRender_Deterministic(t *testing.T) {
	page := samplePage(generator.ThemeSaaS)
	for _, f := range []Format{FormatHTML, FormatComponent} {
		a, err := Render(page, f)
		require.NoError(t, err)
		b, err := Render(page, f)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, Digest(a), Digest(b))
	}
}

func TestRenderComponent(t *testing.T) {
	page := samplePage(generator.ThemeSaaS)
	out, err := RenderComponent(page)
	require.NoError(t, err)

	assert.Contains(t, out, "import React from 'react';")
	assert.Contains(t, out, "export default LandingPage;")
	assert.Contains(t, out, `"companyName": "Smith & Sons"`)
	assert.Contains(t, out, `"theme": "saas"`)
	assert.Contains(t, out, "primary: 'bg-purple-600 hover:bg-purple-700'")
	for _, f := range page.Features {
		assert.Contains(t, out, f.Description)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"html":      FormatHTML,
		"HTML":      FormatHTML,
		"component": FormatComponent,
		"react":     FormatComponent,
		" jsx ":     FormatComponent,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFilenames(t *testing.T) {
	page := samplePage(generator.ThemeDefault)
	page.CompanyName = "FinTech Pro!"
	assert.Equal(t, "fintechpro-landing.html", HTMLFilename(page))
	assert.Equal(t, "FinTechProLandingPage.jsx", ComponentFilename(page))
	assert.Equal(t, ComponentFilename(page), Filename(page, FormatComponent))

	page.CompanyName = "../../etc"
	assert.Equal(t, "etc-landing.html", HTMLFilename(page))

	page.CompanyName = "日本"
	assert.Equal(t, "UntitledLandingPage.jsx", ComponentFilename(page))
}

func TestPublisherWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	pub, err := New(dir, nil)
	require.NoError(t, err)

	page := samplePage(generator.ThemeFintech)
	page.CompanyName = "Acme"
	paths, err := pub.Write(page)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "acme-landing.html"), paths[0])
	assert.Equal(t, filepath.Join(dir, "AcmeLandingPage.jsx"), paths[1])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	want, err := RenderHTML(page)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))

	paths, err = pub.Write(page, FormatComponent)
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	_, err = New("", nil)
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	assert.Len(t, Digest("x"), 64)
	assert.NotEqual(t, Digest("a"), Digest("b"))
}
