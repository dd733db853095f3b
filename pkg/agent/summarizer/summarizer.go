package summarizer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"research-assistant-be/internal/constant"
	"research-assistant-be/pkg/llm"
)

// Summarizer condenses a research synthesis into an organized summary
type Summarizer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewSummarizer(llmProvider llm.LLMProvider, logger *log.Logger) *Summarizer {
	return &Summarizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Summarize organizes the research synthesis by theme. An empty synthesis
// short-circuits so the analyst can report the lack of findings instead of
// inventing them.
func (s *Summarizer) Summarize(ctx context.Context, researchSynthesis, originalQuery string) (string, error) {
	if strings.TrimSpace(researchSynthesis) == "" {
		s.logger.Printf("[SUMMARIZER] Empty synthesis, skipping summary")
		return "", nil
	}

	prompt := fmt.Sprintf(`%s

Original Question: %s

Research Findings:
%s

Task: Create a clear, concise summary of these research findings.
Organize by key themes, highlight main points, and preserve important citations.`,
		constant.SummarizerSystemPrompt, originalQuery, researchSynthesis)

	summary, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	s.logger.Printf("[SUMMARIZER] Research summary created")
	return summary, nil
}
