package translation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageOption describes a language for selector UIs.
type LanguageOption struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// DisplayName returns the English name of code ("es" -> "Spanish"). Codes
// that do not parse or have no known name fall back to the upper-cased code.
func DisplayName(code string) string {
	code = NormalizeCode(code)
	if code == "" {
		return ""
	}
	if tag, err := language.Parse(code); err == nil {
		if name := strings.TrimSpace(display.English.Languages().Name(tag)); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}

// BuildLanguageOptions labels codes and flags the active one.
func BuildLanguageOptions(codes []string, active string) []LanguageOption {
	active = NormalizeCode(active)
	options := make([]LanguageOption, 0, len(codes))
	for _, code := range codes {
		code = NormalizeCode(code)
		options = append(options, LanguageOption{
			Code:   code,
			Label:  DisplayName(code),
			Active: code == active,
		})
	}
	return options
}

// MatchAcceptLanguage picks the code from codes that best matches an
// Accept-Language header. The boolean is false when nothing matches with at
// least low confidence.
func MatchAcceptLanguage(codes []string, header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" || len(codes) == 0 {
		return "", false
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return "", false
	}

	supported := make([]language.Tag, 0, len(codes))
	indexed := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		indexed = append(indexed, NormalizeCode(code))
	}
	if len(supported) == 0 {
		return "", false
	}

	matcher := language.NewMatcher(supported)
	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No || index < 0 || index >= len(indexed) {
		return "", false
	}
	return indexed[index], true
}
