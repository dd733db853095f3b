package analyst

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"research-assistant-be/internal/constant"
	"research-assistant-be/pkg/llm"
)

const (
	confidencePrefix  = "CONFIDENCE:"
	defaultConfidence = 0.7
	historyWindow     = 3
	historyCharLimit  = 200
)

// Result is the analyst's final answer with its self-reported confidence
type Result struct {
	Answer     string
	Confidence float64
}

// Analyst draws the final answer and insights from the summarized research
type Analyst struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewAnalyst(llmProvider llm.LLMProvider, logger *log.Logger) *Analyst {
	return &Analyst{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Analyze answers the original question from the research summary, taking the
// tail of the conversation into account for follow-up context.
func (a *Analyst) Analyze(
	ctx context.Context,
	summary string,
	originalQuery string,
	history []llm.Message,
) (*Result, error) {

	historyContext := buildHistoryContext(history)

	prompt := fmt.Sprintf(`%s

Original Question: %s
%s

Research Summary:
%s

Task: Provide a comprehensive analysis that:
1. Directly answers the user's question
2. Identifies key insights and patterns
3. Discusses implications and significance
4. Notes any limitations or gaps
5. Offers actionable takeaways or recommendations

Be thorough yet clear. Support your analysis with evidence from the research.`,
		constant.AnalystSystemPrompt, originalQuery, historyContext, summary)

	analysis, err := a.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	answer, confidence := ParseConfidence(analysis)

	a.logger.Printf("[ANALYST] Analysis completed (confidence %.2f)", confidence)
	return &Result{
		Answer:     answer,
		Confidence: confidence,
	}, nil
}

func buildHistoryContext(history []llm.Message) string {
	if len(history) == 0 {
		return ""
	}

	tail := history
	if len(tail) > historyWindow {
		tail = tail[len(tail)-historyWindow:]
	}

	var b strings.Builder
	b.WriteString("\nPrevious Conversation Context:\n")
	for _, msg := range tail {
		content := msg.Content
		if len([]rune(content)) > historyCharLimit {
			content = string([]rune(content)[:historyCharLimit]) + "..."
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, content))
	}
	return b.String()
}

// ParseConfidence strips the trailing confidence line from the analysis and
// returns the parsed value, falling back to a neutral default when the model
// did not follow the format.
func ParseConfidence(analysis string) (string, float64) {
	lines := strings.Split(strings.TrimRight(analysis, "\n "), "\n")

	for i := len(lines) - 1; i >= 0 && i >= len(lines)-3; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(strings.ToUpper(trimmed), confidencePrefix) {
			continue
		}

		raw := strings.TrimSpace(trimmed[len(confidencePrefix):])
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 1 {
			value = defaultConfidence
		}

		answer := strings.TrimSpace(strings.Join(append(lines[:i:i], lines[i+1:]...), "\n"))
		return answer, value
	}

	return strings.TrimSpace(analysis), defaultConfidence
}
