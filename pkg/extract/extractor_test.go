package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeAnalyzer struct {
	content string
	err     error

	gotMime string
	gotData []byte
}

func (f *fakeAnalyzer) AnalyzeFile(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	f.gotMime = mimeType
	f.gotData = data
	return f.content, f.err
}

// %PDF magic bytes are enough for mimetype sniffing
var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< >>\n%%EOF")

func TestExtractBytesPlainText(t *testing.T) {
	e := NewExtractor(&fakeAnalyzer{content: "should not be used"})

	result, err := e.ExtractBytes(context.Background(), []byte("Just some notes.\nSecond line."))
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if result.Method != "plain" {
		t.Errorf("Method = %q, want plain", result.Method)
	}
	if result.Content != "Just some notes.\nSecond line." {
		t.Errorf("Content = %q", result.Content)
	}
	if !strings.HasPrefix(result.MimeType, "text/") {
		t.Errorf("MimeType = %q", result.MimeType)
	}
}

func TestExtractBytesPDFUsesVision(t *testing.T) {
	analyzer := &fakeAnalyzer{content: "extracted pdf text"}
	e := NewExtractor(analyzer)

	result, err := e.ExtractBytes(context.Background(), pdfBytes)
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if result.Method != "vision" {
		t.Errorf("Method = %q, want vision", result.Method)
	}
	if result.Content != "extracted pdf text" {
		t.Errorf("Content = %q", result.Content)
	}
	if analyzer.gotMime != "application/pdf" {
		t.Errorf("analyzer mime = %q", analyzer.gotMime)
	}
	if len(analyzer.gotData) != len(pdfBytes) {
		t.Errorf("analyzer did not receive the raw bytes")
	}
}

func TestExtractBytesGIFUsesVision(t *testing.T) {
	analyzer := &fakeAnalyzer{content: "text from the gif"}
	e := NewExtractor(analyzer)

	// GIF89a header followed by a minimal logical screen descriptor
	gif := append([]byte("GIF89a"), 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x3B)
	result, err := e.ExtractBytes(context.Background(), gif)
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if result.Method != "vision" {
		t.Errorf("Method = %q, want vision", result.Method)
	}
	if result.Content != "text from the gif" {
		t.Errorf("Content = %q", result.Content)
	}
	if analyzer.gotMime != "image/gif" {
		t.Errorf("analyzer mime = %q, want image/gif", analyzer.gotMime)
	}
}

func TestExtractBytesVisionFailure(t *testing.T) {
	e := NewExtractor(&fakeAnalyzer{err: errors.New("model unavailable")})

	if _, err := e.ExtractBytes(context.Background(), pdfBytes); err == nil {
		t.Error("expected error when vision analyzer fails")
	}
}

func TestExtractBytesNoAnalyzerConfigured(t *testing.T) {
	e := NewExtractor(nil)

	if _, err := e.ExtractBytes(context.Background(), pdfBytes); err == nil {
		t.Error("expected error when no analyzer is configured for binary input")
	}
}

func TestExtractBytesUnsupportedType(t *testing.T) {
	e := NewExtractor(&fakeAnalyzer{})

	// ZIP magic bytes
	zip := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}
	if _, err := e.ExtractBytes(context.Background(), zip); err == nil {
		t.Error("expected error for unsupported archive type")
	}
}

func TestSupportedMimeType(t *testing.T) {
	tests := []struct {
		mime string
		want bool
	}{
		{"text/plain", true},
		{"text/markdown", true},
		{"application/pdf", true},
		{"image/png", true},
		{"image/jpeg", true},
		{"image/gif", true},
		{"image/webp", true},
		{"application/zip", false},
		{"video/mp4", false},
	}
	for _, tt := range tests {
		if got := SupportedMimeType(tt.mime); got != tt.want {
			t.Errorf("SupportedMimeType(%q) = %v, want %v", tt.mime, got, tt.want)
		}
	}
}
