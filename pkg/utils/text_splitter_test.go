package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{
			name:       "short text stays whole",
			text:       "hello world",
			chunkSize:  100,
			overlap:    10,
			wantChunks: 1,
		},
		{
			name:       "exact fit stays whole",
			text:       strings.Repeat("a", 50),
			chunkSize:  50,
			overlap:    10,
			wantChunks: 1,
		},
		{
			name:       "splits with overlap",
			text:       strings.Repeat("a", 100),
			chunkSize:  40,
			overlap:    10,
			wantChunks: 3, // steps of 30: 0, 30, 60 (last chunk reaches the end)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitText(tt.text, tt.chunkSize, tt.overlap)

			if len(chunks) != tt.wantChunks {
				t.Errorf("chunk count = %d, want %d", len(chunks), tt.wantChunks)
			}
			for i, chunk := range chunks {
				if len([]rune(chunk)) > tt.chunkSize {
					t.Errorf("chunk %d length %d exceeds chunkSize %d", i, len(chunk), tt.chunkSize)
				}
			}
		})
	}
}

func TestSplitTextOverlapPreservesContext(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := splitText(text, 40, 10)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-10:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's tail", i)
		}
	}
}

func TestSplitTextSentences(t *testing.T) {
	t.Run("empty input returns nil", func(t *testing.T) {
		if got := SplitTextSentences("   \n ", 100, 20, 50); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("short text stays whole and trimmed", func(t *testing.T) {
		got := SplitTextSentences("  One sentence.  ", 100, 20, 50)
		if len(got) != 1 || got[0] != "One sentence." {
			t.Errorf("got %v", got)
		}
	})

	t.Run("chunks end on sentence boundaries", func(t *testing.T) {
		sentence := "This is a complete sentence about research. "
		text := strings.Repeat(sentence, 20)

		chunks := SplitTextSentences(text, 200, 40, 100)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		// Every chunk except possibly the last should end with punctuation
		for i := 0; i < len(chunks)-1; i++ {
			if !strings.HasSuffix(chunks[i], ".") {
				t.Errorf("chunk %d does not end on a sentence boundary: %q", i, chunks[i])
			}
		}
	})

	t.Run("no boundary falls back to hard split", func(t *testing.T) {
		text := strings.Repeat("x", 500)
		chunks := SplitTextSentences(text, 200, 40, 50)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for _, chunk := range chunks {
			if chunk == "" {
				t.Error("produced empty chunk")
			}
		}
	})
}
