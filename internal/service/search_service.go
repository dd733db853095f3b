package service

import (
	"context"

	"research-assistant-be/internal/dto"
	"research-assistant-be/pkg/arxiv"
	"research-assistant-be/pkg/websearch"
)

type ISearchService interface {
	SearchArxiv(ctx context.Context, query string, maxResults int) ([]*dto.ArxivPaperResponse, error)
	GetArxivPaper(ctx context.Context, arxivID string) (*dto.ArxivPaperResponse, error)
	SearchWeb(ctx context.Context, req *dto.WebSearchRequest) (*dto.WebSearchResponse, error)
}

type searchService struct {
	arxivClient *arxiv.Client
	webClient   *websearch.PerplexityClient
}

func NewSearchService(arxivClient *arxiv.Client, webClient *websearch.PerplexityClient) ISearchService {
	return &searchService{
		arxivClient: arxivClient,
		webClient:   webClient,
	}
}

func (s *searchService) SearchArxiv(ctx context.Context, query string, maxResults int) ([]*dto.ArxivPaperResponse, error) {
	papers, err := s.arxivClient.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ArxivPaperResponse, 0, len(papers))
	for i := range papers {
		response = append(response, toArxivPaperResponse(&papers[i]))
	}
	return response, nil
}

func (s *searchService) GetArxivPaper(ctx context.Context, arxivID string) (*dto.ArxivPaperResponse, error) {
	paper, err := s.arxivClient.GetByID(ctx, arxivID)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, &dto.NotFoundError{Resource: "arxiv paper"}
	}
	return toArxivPaperResponse(paper), nil
}

func toArxivPaperResponse(paper *arxiv.Paper) *dto.ArxivPaperResponse {
	return &dto.ArxivPaperResponse{
		Title:           paper.Title,
		Authors:         paper.Authors,
		Summary:         paper.Summary,
		Published:       paper.Published,
		ArxivID:         paper.ArxivID,
		PDFURL:          paper.PDFURL,
		PrimaryCategory: paper.PrimaryCategory,
		Categories:      paper.Categories,
	}
}

func (s *searchService) SearchWeb(ctx context.Context, req *dto.WebSearchRequest) (*dto.WebSearchResponse, error) {
	focus := req.Focus
	if focus == "" {
		focus = websearch.FocusGeneral
	}

	result, err := s.webClient.Search(ctx, req.Query, focus)
	if err != nil {
		return nil, err
	}

	return &dto.WebSearchResponse{
		Answer:    result.Answer,
		Citations: result.Citations,
		Model:     result.Model,
	}, nil
}
