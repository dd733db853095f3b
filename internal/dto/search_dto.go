package dto

import "github.com/google/uuid"

type WebSearchRequest struct {
	Query string `json:"query" validate:"required"`
	Focus string `json:"focus" validate:"omitempty,oneof=academic internet general"`
}

type WebSearchResponse struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
	Model     string   `json:"model"`
}

type ArxivPaperResponse struct {
	Title           string   `json:"title"`
	Authors         string   `json:"authors"`
	Summary         string   `json:"summary"`
	Published       string   `json:"published"`
	ArxivID         string   `json:"arxiv_id"`
	PDFURL          string   `json:"pdf_url"`
	PrimaryCategory string   `json:"primary_category"`
	Categories      []string `json:"categories"`
}

type SemanticSearchRequest struct {
	Query          string   `json:"query" validate:"required"`
	Limit          int      `json:"limit" validate:"omitempty,min=1,max=20"`
	ScoreThreshold *float64 `json:"score_threshold" validate:"omitempty,min=0,max=1"`
}

type SemanticSearchHit struct {
	DocumentId uuid.UUID `json:"document_id"`
	FileName   string    `json:"file_name"`
	ChunkText  string    `json:"chunk_text"`
	Score      float64   `json:"score"`
}
