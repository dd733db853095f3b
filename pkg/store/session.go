package store

// Document represents a retrieved evidence item kept in the session state
type Document struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Session represents the active research session state in memory
type Session struct {
	ID     string `json:"id"` // ResearchSessionID
	UserID string `json:"user_id"`
	State  string `json:"state"` // "IDLE" | "RESEARCHING"
	Mode   string `json:"mode"`  // "PIPELINE" | "MEMORY" - how the last query was answered

	// Evidence gathered by the last pipeline run, reused for follow-ups
	LastSources []Document `json:"last_sources"`

	// Metadata for last interaction
	LastQuery  string  `json:"last_query"`
	LastStep   string  `json:"last_step"`
	Confidence float64 `json:"confidence"`
}

const (
	StateIdle        = "IDLE"
	StateResearching = "RESEARCHING"

	// Answer modes
	ModePipeline = "PIPELINE"
	ModeMemory   = "MEMORY"
)
