package utils

import "strings"

// sentence boundaries searched near a chunk edge, in priority order
var sentenceEndings = []string{". ", ".\n", "! ", "!\n", "? ", "?\n", "\n\n"}

// splitText splits a long string into chunks of approximately 'chunkSize' characters.
// It includes an 'overlap' to preserve context at boundaries.
// This is a simple character-based splitter. Ideally, use a tokenizer-aware splitter.
func splitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// SplitTextSentences behaves like SplitText but shifts each chunk edge to the
// nearest sentence boundary within 'window' runes, so chunks end on complete
// sentences where possible. Whitespace-only chunks are dropped.
func SplitTextSentences(text string, chunkSize, overlap, window int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}
	if window <= 0 {
		window = 100
	}

	var chunks []string
	start := 0
	for start < totalLen {
		end := start + chunkSize
		if end >= totalLen {
			end = totalLen
		} else {
			end = adjustToSentenceBoundary(runes, end, window)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= totalLen {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}

// adjustToSentenceBoundary searches within the window around pos for the
// latest sentence ending and returns the position just after its punctuation.
// Falls back to pos when no boundary is found.
func adjustToSentenceBoundary(runes []rune, pos, window int) int {
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	hi := pos + window
	if hi > len(runes) {
		hi = len(runes)
	}
	seg := string(runes[lo:hi])

	best := -1
	for _, ending := range sentenceEndings {
		idx := strings.LastIndex(seg, ending)
		if idx < 0 {
			continue
		}
		candidate := lo + len([]rune(seg[:idx])) + 1
		if candidate > best {
			best = candidate
		}
	}
	if best > 0 {
		return best
	}
	return pos
}
