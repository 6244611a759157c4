/*
	extractor package turns the raw bytes of an uploaded file into
	plain text. Extraction is stateless and potentially slow; no
	artificial timeout or output size cap is imposed here.
*/

package extractor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Extractor should be implemented by objects that can recover the plain
// text content of a file, given a hint of its original filename.
type Extractor interface {
	// ExtractText reads the file at path and returns its textual
	// content. The original upload filename serves as a format hint.
	ExtractText(ctx context.Context, path, originalFilename string) (string, error)
}

// Static and compile-time check to ensure AutoDetectExtractor
// implements Extractor.
var _ Extractor = (*AutoDetectExtractor)(nil)

// AutoDetectExtractor selects a format-specific extractor based on the
// original filename extension and the leading bytes of the file.
// Unrecognized formats degrade to a best-effort plain text read.
type AutoDetectExtractor struct {
	html  *HTMLExtractor
	pdf   *PDFExtractor
	plain *PlainTextExtractor
}

// NewAutoDetectExtractor returns an AutoDetectExtractor instance.
func NewAutoDetectExtractor() *AutoDetectExtractor {
	return &AutoDetectExtractor{
		html:  NewHTMLExtractor(),
		pdf:   NewPDFExtractor(),
		plain: NewPlainTextExtractor(),
	}
}

// ExtractText reads the file at path and returns its textual content.
func (e *AutoDetectExtractor) ExtractText(
	ctx context.Context, path, originalFilename string,
) (string, error) {

	head, err := readHead(path)
	if err != nil {
		return "", err
	}

	switch {
	case isPDF(originalFilename, head):
		return e.pdf.ExtractText(ctx, path, originalFilename)
	case isHTML(originalFilename, head):
		return e.html.ExtractText(ctx, path, originalFilename)
	default:
		return e.plain.ExtractText(ctx, path, originalFilename)
	}
}

// readHead returns up to the first 512 bytes of the file for content
// sniffing.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		// An empty file sniffs as plain text.
		return nil, nil
	}

	return head[:n], nil
}

func isPDF(filename string, head []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}

	return bytes.HasPrefix(head, []byte("%PDF-"))
}

func isHTML(filename string, head []byte) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm", ".xhtml":
		return true
	}

	probe := strings.ToLower(string(bytes.TrimSpace(head)))

	return strings.HasPrefix(probe, "<!doctype html") ||
		strings.HasPrefix(probe, "<html")
}
