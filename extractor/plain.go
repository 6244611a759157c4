package extractor

import (
	"context"
	"fmt"
	"os"
)

// Static and compile-time check to ensure PlainTextExtractor
// implements Extractor.
var _ Extractor = (*PlainTextExtractor)(nil)

// PlainTextExtractor passes file contents through unchanged. It also
// serves as the fallback for formats without a dedicated extractor.
type PlainTextExtractor struct{}

// NewPlainTextExtractor returns a PlainTextExtractor instance.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractText reads the file at path and returns its contents verbatim.
func (e *PlainTextExtractor) ExtractText(
	_ context.Context, path, _ string,
) (string, error) {

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extract plain text: %w", err)
	}

	return string(content), nil
}
