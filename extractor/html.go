package extractor

import (
	"context"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var repeatedSpaceRegex = regexp.MustCompile(`\s+`)

// Static and compile-time check to ensure HTMLExtractor implements
// Extractor.
var _ Extractor = (*HTMLExtractor)(nil)

// HTMLExtractor strips markup from HTML files and returns the remaining
// text with collapsed whitespace.
type HTMLExtractor struct {
	policyPool sync.Pool
}

// NewHTMLExtractor returns an HTMLExtractor instance.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

// ExtractText reads the HTML file at path, strips it of all tags and
// unnecessary white space and returns the remaining text.
func (e *HTMLExtractor) ExtractText(
	_ context.Context, path, _ string,
) (string, error) {

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extract html text: %w", err)
	}

	policy := e.policyPool.Get().(*bluemonday.Policy)
	defer e.policyPool.Put(policy)

	text := repeatedSpaceRegex.ReplaceAllString(
		policy.Sanitize(string(raw)), " ",
	)

	return strings.TrimSpace(html.UnescapeString(text)), nil
}
