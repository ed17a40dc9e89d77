package html

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy

	inlineTag = regexp.MustCompile(`(?i)</?(b|strong|em|i|u|small|sub|sup|br)\s*/?>`)
)

// inlineHTML returns raw sanitised down to inline emphasis when it carries at
// least one allowed tag. Text without such tags returns "" and is rendered as
// escaped plain text instead.
func inlineHTML(raw string) string {
	if !inlineTag.MatchString(raw) {
		return ""
	}
	return strings.TrimSpace(inlineSanitizer().Sanitize(raw))
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "em", "i", "u", "small", "sub", "sup", "br")
		inlinePolicy = policy
	})
	return inlinePolicy
}
