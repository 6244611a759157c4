package extractor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	check "gopkg.in/check.v1"
)

// Initialize and register an instance of the extractorTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(extractorTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type extractorTestSuite struct {
	e *AutoDetectExtractor
}

func (s *extractorTestSuite) SetUpSuite(c *check.C) {
	s.e = NewAutoDetectExtractor()
}

func (s *extractorTestSuite) TestPlainTextPassThrough(c *check.C) {
	path := writeTempFile(c, "upload.txt", []byte("hello world"))

	content, err := s.e.ExtractText(context.Background(), path, "upload.txt")
	c.Assert(err, check.IsNil)
	c.Assert(content, check.Equals, "hello world")
}

func (s *extractorTestSuite) TestEmptyFileYieldsEmptyContent(c *check.C) {
	path := writeTempFile(c, "empty.txt", nil)

	content, err := s.e.ExtractText(context.Background(), path, "empty.txt")
	c.Assert(err, check.IsNil)
	c.Assert(content, check.Equals, "")
}

func (s *extractorTestSuite) TestHTMLTagStripping(c *check.C) {
	raw := []byte(`<!DOCTYPE html>
<html>
  <body>
    <h1>Install   guide</h1>
    <p>Step &amp; step instructions</p>
    <script>ignored()</script>
  </body>
</html>`)

	path := writeTempFile(c, "guide.html", raw)

	content, err := s.e.ExtractText(context.Background(), path, "guide.html")
	c.Assert(err, check.IsNil)
	c.Assert(content, check.Equals, "Install guide Step & step instructions")
}

func (s *extractorTestSuite) TestHTMLDetectionWithoutExtension(c *check.C) {
	raw := []byte("<html><body><p>body text</p></body></html>")

	// The upload carries no useful extension; detection falls back to
	// content sniffing.
	path := writeTempFile(c, "upload.bin", raw)

	content, err := s.e.ExtractText(context.Background(), path, "upload.bin")
	c.Assert(err, check.IsNil)
	c.Assert(content, check.Equals, "body text")
}

func (s *extractorTestSuite) TestMissingFile(c *check.C) {
	_, err := s.e.ExtractText(
		context.Background(),
		filepath.Join(c.MkDir(), "does-not-exist"),
		"missing.txt",
	)
	c.Assert(err, check.Not(check.IsNil))
}

func writeTempFile(c *check.C, name string, content []byte) string {
	path := filepath.Join(c.MkDir(), name)
	c.Assert(os.WriteFile(path, content, 0o600), check.IsNil)

	return path
}
