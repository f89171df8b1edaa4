package markup

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// renderDescription converts a markdown description to sanitized HTML.
// Descriptions are authored alongside catalog data and may pass through
// several config layers, so the output is scrubbed down to inline formatting
// and links before it lands in the page.
func renderDescription(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(trimmed), &buf); err != nil {
		return "", fmt.Errorf("markup: render description: %w", err)
	}

	cleaned := strings.TrimSpace(descriptionSanitizer().Sanitize(buf.String()))
	return cleaned, nil
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "em", "strong", "code", "br", "ul", "ol", "li")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
