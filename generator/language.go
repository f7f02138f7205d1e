package generator

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

var supportedLanguages = map[string]lingua.Language{
	"english":    lingua.English,
	"french":     lingua.French,
	"german":     lingua.German,
	"spanish":    lingua.Spanish,
	"italian":    lingua.Italian,
	"portuguese": lingua.Portuguese,
	"dutch":      lingua.Dutch,
	"chinese":    lingua.Chinese,
	"japanese":   lingua.Japanese,
}

// LanguageDetector picks the reply language from the user's own words.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector returns nil when fewer than two languages are
// configured, in which case no language hint is sent.
func NewLanguageDetector(names []string) (*LanguageDetector, error) {
	var langs []lingua.Language
	seen := map[lingua.Language]bool{}
	for _, n := range names {
		l, ok := supportedLanguages[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("language %q not supported", n)
		}
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	if len(langs) < 2 {
		return nil, nil
	}
	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
	}, nil
}

// Detect returns the language name, or "" when undecided.
func (d *LanguageDetector) Detect(text string) string {
	if d == nil || strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return lang.String()
}
