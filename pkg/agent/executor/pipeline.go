package executor

import (
	"context"
	"log"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/memory"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/agent/analyst"
	"research-assistant-be/pkg/agent/researcher"
	"research-assistant-be/pkg/agent/summarizer"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// PipelineExecutor orchestrates the three-phase research pipeline
// Phase 1: Research → Phase 2: Summarize → Phase 3: Analyze
type PipelineExecutor struct {
	researcher  *researcher.Researcher
	summarizer  *summarizer.Summarizer
	analyst     *analyst.Analyst
	sessionRepo *memory.SessionRepository
	logger      *log.Logger
}

func NewPipelineExecutor(
	res *researcher.Researcher,
	sum *summarizer.Summarizer,
	ana *analyst.Analyst,
	sessionRepo *memory.SessionRepository,
	logger *log.Logger,
) *PipelineExecutor {
	return &PipelineExecutor{
		researcher:  res,
		summarizer:  sum,
		analyst:     ana,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// ExecutionResult contains the result of a full pipeline run
type ExecutionResult struct {
	Answer       string
	Sources      []entity.Source
	Confidence   float64
	SourcesCount int
}

// Execute runs the complete three-phase pipeline. The in-memory session
// tracks the current step so concurrent status reads see pipeline progress.
func (p *PipelineExecutor) Execute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	sessionId uuid.UUID,
	query string,
	history []llm.Message,
	opts researcher.Options,
) (*ExecutionResult, error) {

	session, found := p.sessionRepo.Get(sessionId.String())
	if !found {
		session = &store.Session{
			ID:     sessionId.String(),
			UserID: userId.String(),
			State:  store.StateIdle,
		}
	}

	session.State = store.StateResearching
	session.Mode = store.ModePipeline
	session.LastQuery = query
	defer func() {
		session.State = store.StateIdle
		p.sessionRepo.Save(session)
	}()

	p.logger.Printf("[PIPELINE] Starting three-phase execution for query: %s", truncate(query, 50))

	// ═══════════════════════════════════════════════════════════════
	// PHASE 1: RESEARCH (multi-source evidence gathering)
	// ═══════════════════════════════════════════════════════════════
	p.setStep(session, constant.PipelineStepResearching)

	findings, err := p.researcher.Conduct(ctx, uow, userId, query, opts)
	if err != nil {
		p.logger.Printf("[ERROR] Research phase failed: %v", err)
		return nil, err
	}

	synthesis, err := p.researcher.Synthesize(ctx, findings)
	if err != nil {
		p.logger.Printf("[ERROR] Synthesis failed: %v", err)
		return nil, err
	}

	p.logger.Printf("[PHASE 1] Research completed: %d sources", findings.SourcesCount)

	// ═══════════════════════════════════════════════════════════════
	// PHASE 2: SUMMARIZE (condense and organize)
	// ═══════════════════════════════════════════════════════════════
	p.setStep(session, constant.PipelineStepSummarizing)

	summary, err := p.summarizer.Summarize(ctx, synthesis, query)
	if err != nil {
		p.logger.Printf("[ERROR] Summarizer phase failed: %v", err)
		return nil, err
	}

	p.logger.Printf("[PHASE 2] Summary created")

	// ═══════════════════════════════════════════════════════════════
	// PHASE 3: ANALYZE (final answer with confidence)
	// ═══════════════════════════════════════════════════════════════
	p.setStep(session, constant.PipelineStepAnalyzing)

	analysis, err := p.analyst.Analyze(ctx, summary, query, history)
	if err != nil {
		p.logger.Printf("[ERROR] Analyst phase failed: %v", err)
		return nil, err
	}

	sources := BuildSources(findings)

	session.LastStep = constant.PipelineStepComplete
	session.Confidence = analysis.Confidence
	session.LastSources = findings.Chunks

	p.logger.Printf("[PHASE 3] Answer generated, %d sources, confidence %.2f",
		len(sources), analysis.Confidence)

	return &ExecutionResult{
		Answer:       analysis.Answer,
		Sources:      sources,
		Confidence:   analysis.Confidence,
		SourcesCount: findings.SourcesCount,
	}, nil
}

func (p *PipelineExecutor) setStep(session *store.Session, step string) {
	session.LastStep = step
	p.sessionRepo.Save(session)
}

// BuildSources flattens findings into citation entries for persistence
func BuildSources(findings *researcher.Findings) []entity.Source {
	var sources []entity.Source

	for _, paper := range findings.Papers {
		sources = append(sources, entity.Source{
			Type:  "arxiv",
			Title: paper.Title,
			URL:   paper.PDFURL,
			ID:    paper.ArxivID,
		})
	}

	if findings.Web != nil {
		for _, citation := range findings.Web.Citations {
			sources = append(sources, entity.Source{
				Type: "web",
				URL:  citation,
			})
		}
	}

	for _, chunk := range findings.Chunks {
		sources = append(sources, entity.Source{
			Type:  "document",
			Title: chunk.Title,
			ID:    chunk.ID,
		})
	}

	return sources
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
