package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Static and compile-time check to ensure PDFExtractor implements
// Extractor.
var _ Extractor = (*PDFExtractor)(nil)

// PDFExtractor recovers text from PDF files using pdfcpu page content
// extraction. Pages without extractable text contribute nothing to the
// result; a PDF with no text at all yields an empty string rather than
// an error.
type PDFExtractor struct {
	conf *model.Configuration
}

// NewPDFExtractor returns a PDFExtractor instance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		conf: model.NewDefaultConfiguration(),
	}
}

// ExtractText reads the PDF file at path and returns the concatenated
// text of all its pages.
func (e *PDFExtractor) ExtractText(
	_ context.Context, path, _ string,
) (string, error) {

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	// pdfcpu extracts page content into per-page files within an
	// output directory.
	outDir, err := os.MkdirTemp("", "pdf-extract-")
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, e.conf); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	pageTexts := make(map[int]string, pdfCtx.PageCount)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		var pageNum int
		if _, err := fmt.Sscanf(
			entry.Name(), "Content_page_%d", &pageNum,
		); err != nil {
			if _, err := fmt.Sscanf(
				entry.Name(), "page_%d", &pageNum,
			); err != nil {
				continue
			}
		}

		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}

		pageTexts[pageNum] = string(content)
	}

	pageNums := make([]int, 0, len(pageTexts))
	for pageNum := range pageTexts {
		pageNums = append(pageNums, pageNum)
	}
	sort.Ints(pageNums)

	var builder strings.Builder
	for i, pageNum := range pageNums {
		if i > 0 {
			builder.WriteString("\n\n")
		}

		builder.WriteString(pageTexts[pageNum])
	}

	return builder.String(), nil
}
