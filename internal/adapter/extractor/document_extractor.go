package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/domain"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	htmlTagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`[ \t\f\v]+`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".log": true, ".json": true,
	".yaml": true, ".yml": true, ".xml": true, ".html": true, ".htm": true,
}

// DocumentExtractor implements domain.TextExtractor for PDFs and text-like files.
type DocumentExtractor struct {
	maxChars int
	logger   *zap.Logger
}

// NewDocumentExtractor caps extracted text at maxChars runes; zero means no cap.
func NewDocumentExtractor(maxChars int, logger *zap.Logger) *DocumentExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentExtractor{maxChars: maxChars, logger: logger}
}

// Extract returns the plain text of doc. Unsupported formats, unreadable PDFs
// and documents without text fail with EXTRACTION_FAILURE.
func (e *DocumentExtractor) Extract(ctx context.Context, doc domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(doc.Data) == 0 {
		return "", domain.NewExtractionFailureError("document is empty", nil)
	}

	mime := strings.ToLower(strings.TrimSpace(doc.MimeType))
	ext := strings.ToLower(filepath.Ext(doc.Name))

	var (
		text string
		err  error
	)
	switch {
	case mime == "application/pdf" || ext == ".pdf" || bytes.HasPrefix(doc.Data, []byte("%PDF-")):
		text, err = pdfText(doc.Data)
	case strings.HasPrefix(mime, "text/") || mime == "application/json" || mime == "application/xml" || textExtensions[ext]:
		text = string(doc.Data)
		if mime == "text/html" || ext == ".html" || ext == ".htm" {
			text = htmlTagPattern.ReplaceAllString(text, " ")
		}
	case looksLikeText(doc.Data):
		text = string(doc.Data)
	default:
		err = fmt.Errorf("unsupported document type mime=%q ext=%q", doc.MimeType, ext)
	}
	if err != nil {
		e.logger.Warn("Document extraction failed", zap.String("name", doc.Name), zap.Error(err))
		return "", domain.NewExtractionFailureError("Failed to extract document text", err)
	}

	text = normalize(text)
	if text == "" {
		return "", domain.NewExtractionFailureError("document contains no extractable text", nil)
	}
	if e.maxChars > 0 && utf8.RuneCountInString(text) > e.maxChars {
		e.logger.Info("Truncating extracted text",
			zap.String("name", doc.Name),
			zap.Int("max_chars", e.maxChars))
		text = string([]rune(text)[:e.maxChars])
	}
	return text, nil
}

// pdfText reads the plain text layer of a PDF. The pdf package panics on some
// malformed inputs, so panics are turned into errors.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// looksLikeText accepts valid UTF-8 where over 90% of runes are printable.
func looksLikeText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	printable, total := 0, 0
	for _, r := range string(data) {
		total++
		if r == '\n' || r == '\r' || r == '\t' || r == ' ' || (r >= 32 && r != 127) {
			printable++
		}
	}
	return total > 0 && float64(printable)/float64(total) > 0.90
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = blankLinesPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

var _ domain.TextExtractor = (*DocumentExtractor)(nil)
