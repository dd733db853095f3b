package analyst

import (
	"strings"
	"testing"

	"research-assistant-be/pkg/llm"
)

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		name           string
		analysis       string
		wantAnswer     string
		wantConfidence float64
	}{
		{
			name:           "trailing confidence line",
			analysis:       "The answer is clear.\nCONFIDENCE: 0.85",
			wantAnswer:     "The answer is clear.",
			wantConfidence: 0.85,
		},
		{
			name:           "lowercase prefix accepted",
			analysis:       "Some analysis.\nconfidence: 0.4",
			wantAnswer:     "Some analysis.",
			wantConfidence: 0.4,
		},
		{
			name:           "confidence not on last line",
			analysis:       "Analysis body.\nCONFIDENCE: 0.9\n",
			wantAnswer:     "Analysis body.",
			wantConfidence: 0.9,
		},
		{
			name:           "missing confidence falls back to default",
			analysis:       "Just an answer without the marker.",
			wantAnswer:     "Just an answer without the marker.",
			wantConfidence: 0.7,
		},
		{
			name:           "unparseable value falls back to default",
			analysis:       "Answer.\nCONFIDENCE: very high",
			wantAnswer:     "Answer.",
			wantConfidence: 0.7,
		},
		{
			name:           "out of range value falls back to default",
			analysis:       "Answer.\nCONFIDENCE: 1.8",
			wantAnswer:     "Answer.",
			wantConfidence: 0.7,
		},
		{
			name:           "marker too far from the end is left alone",
			analysis:       "CONFIDENCE: 0.2\nline\nline\nline\nline",
			wantAnswer:     "CONFIDENCE: 0.2\nline\nline\nline\nline",
			wantConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, confidence := ParseConfidence(tt.analysis)
			if answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", answer, tt.wantAnswer)
			}
			if confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", confidence, tt.wantConfidence)
			}
		})
	}
}

func TestBuildHistoryContext(t *testing.T) {
	t.Run("empty history gives empty context", func(t *testing.T) {
		if got := buildHistoryContext(nil); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("keeps only the last three messages", func(t *testing.T) {
		history := []llm.Message{
			{Role: "user", Content: "first"},
			{Role: "assistant", Content: "second"},
			{Role: "user", Content: "third"},
			{Role: "assistant", Content: "fourth"},
		}
		got := buildHistoryContext(history)
		if strings.Contains(got, "first") {
			t.Errorf("oldest message should be dropped: %q", got)
		}
		for _, want := range []string{"second", "third", "fourth"} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in %q", want, got)
			}
		}
	})

	t.Run("truncates long messages", func(t *testing.T) {
		long := strings.Repeat("a", 300)
		got := buildHistoryContext([]llm.Message{{Role: "user", Content: long}})
		if !strings.Contains(got, strings.Repeat("a", 200)+"...") {
			t.Errorf("long message not truncated: %q", got)
		}
		if strings.Contains(got, strings.Repeat("a", 201)) {
			t.Errorf("truncation limit exceeded")
		}
	})
}
