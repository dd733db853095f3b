package researcher

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/agent/docsearch"
	"research-assistant-be/pkg/arxiv"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/store"
	"research-assistant-be/pkg/websearch"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ArxivSearcher finds papers for a query
type ArxivSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]arxiv.Paper, error)
}

// WebSearcher answers a query from live web sources
type WebSearcher interface {
	Search(ctx context.Context, query, focus string) (*websearch.Result, error)
}

// DocumentSearcher finds relevant chunks in the user's uploaded documents
type DocumentSearcher interface {
	Execute(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, query string, config docsearch.Config) ([]store.Document, error)
}

// Options selects which sources a research run consults
type Options struct {
	UseArxiv     bool
	UseWeb       bool
	UseDocuments bool
	MaxResults   int
}

func DefaultOptions() Options {
	return Options{
		UseArxiv:     true,
		UseWeb:       true,
		UseDocuments: true,
		MaxResults:   5,
	}
}

// Findings holds raw research results gathered from all sources
type Findings struct {
	Query        string
	Papers       []arxiv.Paper
	Web          *websearch.Result
	Chunks       []store.Document
	SourcesCount int
}

// Researcher gathers evidence from arXiv, the web and uploaded documents
type Researcher struct {
	arxivClient    ArxivSearcher
	webClient      WebSearcher
	documentSearch DocumentSearcher
	llmProvider    llm.LLMProvider
	searchConfig   docsearch.Config
	logger         *log.Logger
}

func NewResearcher(
	arxivClient ArxivSearcher,
	webClient WebSearcher,
	documentSearch DocumentSearcher,
	llmProvider llm.LLMProvider,
	searchConfig docsearch.Config,
	logger *log.Logger,
) *Researcher {
	return &Researcher{
		arxivClient:    arxivClient,
		webClient:      webClient,
		documentSearch: documentSearch,
		llmProvider:    llmProvider,
		searchConfig:   searchConfig,
		logger:         logger,
	}
}

// Conduct fans out to the requested sources in parallel. A failing source
// contributes nothing but does not abort the run. An error is returned only
// when every requested source failed.
func (r *Researcher) Conduct(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	query string,
	opts Options,
) (*Findings, error) {

	findings := &Findings{Query: query}

	var (
		g, gctx   = errgroup.WithContext(ctx)
		requested int
		failures  int
		failMu    sync.Mutex
	)
	recordFailure := func() {
		failMu.Lock()
		failures++
		failMu.Unlock()
	}

	if opts.UseArxiv && r.arxivClient != nil {
		requested++
		g.Go(func() error {
			papers, err := r.arxivClient.Search(gctx, query, opts.MaxResults)
			if err != nil {
				r.logger.Printf("[RESEARCHER] arXiv search failed: %v", err)
				recordFailure()
				return nil
			}
			findings.Papers = papers
			r.logger.Printf("[RESEARCHER] Found %d papers on arXiv", len(papers))
			return nil
		})
	}

	if opts.UseWeb && r.webClient != nil {
		requested++
		g.Go(func() error {
			result, err := r.webClient.Search(gctx, query, websearch.FocusAcademic)
			if err != nil {
				r.logger.Printf("[RESEARCHER] Web search failed: %v", err)
				recordFailure()
				return nil
			}
			findings.Web = result
			r.logger.Printf("[RESEARCHER] Web search completed")
			return nil
		})
	}

	if opts.UseDocuments && r.documentSearch != nil {
		requested++
		g.Go(func() error {
			chunks, err := r.documentSearch.Execute(gctx, uow, userId, query, r.searchConfig)
			if err != nil {
				r.logger.Printf("[RESEARCHER] Document search failed: %v", err)
				recordFailure()
				return nil
			}
			findings.Chunks = chunks
			r.logger.Printf("[RESEARCHER] Found %d relevant document chunks", len(chunks))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if requested > 0 && failures == requested {
		return nil, fmt.Errorf("all %d research sources failed", requested)
	}

	findings.SourcesCount = len(findings.Papers) + len(findings.Chunks)
	if findings.Web != nil && findings.Web.Answer != "" {
		findings.SourcesCount++
	}

	r.logger.Printf("[RESEARCHER] Research completed: %d sources found", findings.SourcesCount)
	return findings, nil
}

// Synthesize turns raw findings into a structured research report
func (r *Researcher) Synthesize(ctx context.Context, findings *Findings) (string, error) {
	researchContext := BuildContext(findings)
	if researchContext == "" {
		return "", nil
	}

	prompt := fmt.Sprintf(`%s

Research Query: %s

Research Findings:
%s

Task: Synthesize these research findings into a clear, organized report with proper citations.
Focus on the most relevant and reliable information.`,
		constant.ResearcherSystemPrompt, findings.Query, researchContext)

	synthesis, err := r.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("synthesis failed: %w", err)
	}

	r.logger.Printf("[RESEARCHER] Research findings synthesized")
	return synthesis, nil
}

// BuildContext renders findings as sectioned plain text for the LLM
func BuildContext(findings *Findings) string {
	var parts []string

	if len(findings.Papers) > 0 {
		parts = append(parts, "=== ARXIV PAPERS ===")
		for _, paper := range top(findings.Papers, 3) {
			parts = append(parts, fmt.Sprintf("\nTitle: %s", paper.Title))
			parts = append(parts, fmt.Sprintf("Authors: %s", paper.Authors))
			parts = append(parts, fmt.Sprintf("Summary: %s", truncate(paper.Summary, 500)))
			parts = append(parts, fmt.Sprintf("URL: %s\n", paper.PDFURL))
		}
	}

	if findings.Web != nil && findings.Web.Answer != "" {
		parts = append(parts, "\n=== WEB SEARCH RESULTS ===")
		parts = append(parts, findings.Web.Answer)
		if len(findings.Web.Citations) > 0 {
			parts = append(parts, fmt.Sprintf("\nCitations: %s", strings.Join(findings.Web.Citations, ", ")))
		}
	}

	if len(findings.Chunks) > 0 {
		parts = append(parts, "\n=== USER DOCUMENTS ===")
		for _, chunk := range top(findings.Chunks, 3) {
			parts = append(parts, fmt.Sprintf("\nFrom: %s", chunk.Title))
			parts = append(parts, fmt.Sprintf("Content: %s", truncate(chunk.Content, 300)))
			parts = append(parts, fmt.Sprintf("Relevance: %.2f\n", chunk.Score))
		}
	}

	return strings.Join(parts, "\n")
}

func top[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
