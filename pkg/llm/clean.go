package llm

import "bytes"

// CleanJSONResponse strips markdown code fences that chat models wrap around
// JSON output before it can be unmarshalled.
func CleanJSONResponse(raw string) []byte {
	b := []byte(raw)
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
