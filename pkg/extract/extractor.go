package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const visionPrompt = "Extract all text content from this document. Preserve structure and formatting."

// FileAnalyzer reads a binary document (pdf, image) through a vision model.
type FileAnalyzer interface {
	AnalyzeFile(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// Result holds the text extracted from an uploaded file.
type Result struct {
	Content  string
	MimeType string
	Method   string // "plain", "vision"
}

type Extractor struct {
	analyzer FileAnalyzer
}

func NewExtractor(analyzer FileAnalyzer) *Extractor {
	return &Extractor{analyzer: analyzer}
}

// SupportedMimeType reports whether the extractor can handle the sniffed type.
func SupportedMimeType(mime string) bool {
	switch {
	case strings.HasPrefix(mime, "text/"):
		return true
	case mime == "application/pdf":
		return true
	case mime == "image/png", mime == "image/jpeg", mime == "image/gif", mime == "image/webp":
		return true
	}
	return false
}

// ExtractFile sniffs the file's real type and extracts its text content.
// Plain text files are read directly, pdfs and images go through the
// vision model.
func (e *Extractor) ExtractFile(ctx context.Context, filePath string) (*Result, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(ctx, data)
}

func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (*Result, error) {
	mime := mimetype.Detect(data)
	mimeStr := mime.String()
	if idx := strings.Index(mimeStr, ";"); idx >= 0 {
		mimeStr = mimeStr[:idx]
	}

	switch {
	case strings.HasPrefix(mimeStr, "text/"):
		return &Result{
			Content:  string(data),
			MimeType: mimeStr,
			Method:   "plain",
		}, nil
	case mimeStr == "application/pdf",
		mimeStr == "image/png",
		mimeStr == "image/jpeg",
		mimeStr == "image/gif",
		mimeStr == "image/webp":
		if e.analyzer == nil {
			return nil, fmt.Errorf("no vision analyzer configured for %s", mimeStr)
		}
		content, err := e.analyzer.AnalyzeFile(ctx, visionPrompt, mimeStr, data)
		if err != nil {
			return nil, fmt.Errorf("vision extraction failed: %w", err)
		}
		return &Result{
			Content:  content,
			MimeType: mimeStr,
			Method:   "vision",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", mimeStr)
	}
}
