package researcher

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/agent/docsearch"
	"research-assistant-be/pkg/arxiv"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/store"
	"research-assistant-be/pkg/websearch"

	"github.com/google/uuid"
)

type fakeArxiv struct {
	papers []arxiv.Paper
	err    error
}

func (f *fakeArxiv) Search(ctx context.Context, query string, maxResults int) ([]arxiv.Paper, error) {
	return f.papers, f.err
}

type fakeWeb struct {
	result *websearch.Result
	err    error
}

func (f *fakeWeb) Search(ctx context.Context, query, focus string) (*websearch.Result, error) {
	return f.result, f.err
}

type fakeDocs struct {
	chunks []store.Document
	err    error
}

func (f *fakeDocs) Execute(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, query string, config docsearch.Config) ([]store.Document, error) {
	return f.chunks, f.err
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func newTestResearcher(a ArxivSearcher, w WebSearcher, d DocumentSearcher, provider llm.LLMProvider) *Researcher {
	return NewResearcher(a, w, d, provider, docsearch.DefaultConfig(), log.New(io.Discard, "", 0))
}

func TestConductCollectsAllSources(t *testing.T) {
	r := newTestResearcher(
		&fakeArxiv{papers: []arxiv.Paper{{Title: "Paper A"}, {Title: "Paper B"}}},
		&fakeWeb{result: &websearch.Result{Answer: "web answer", Citations: []string{"https://a"}}},
		&fakeDocs{chunks: []store.Document{{ID: "c1", Title: "doc.pdf", Content: "chunk"}}},
		&fakeLLM{},
	)

	findings, err := r.Conduct(context.Background(), nil, uuid.New(), "query", DefaultOptions())
	if err != nil {
		t.Fatalf("Conduct() error = %v", err)
	}

	if len(findings.Papers) != 2 {
		t.Errorf("Papers = %d, want 2", len(findings.Papers))
	}
	if findings.Web == nil || findings.Web.Answer != "web answer" {
		t.Errorf("Web = %+v", findings.Web)
	}
	if len(findings.Chunks) != 1 {
		t.Errorf("Chunks = %d, want 1", len(findings.Chunks))
	}
	// 2 papers + 1 chunk + 1 web answer
	if findings.SourcesCount != 4 {
		t.Errorf("SourcesCount = %d, want 4", findings.SourcesCount)
	}
}

func TestConductPartialFailureStillSucceeds(t *testing.T) {
	r := newTestResearcher(
		&fakeArxiv{err: errors.New("arxiv down")},
		&fakeWeb{result: &websearch.Result{Answer: "still got the web"}},
		&fakeDocs{err: errors.New("db down")},
		&fakeLLM{},
	)

	findings, err := r.Conduct(context.Background(), nil, uuid.New(), "query", DefaultOptions())
	if err != nil {
		t.Fatalf("partial failure should not error, got %v", err)
	}
	if findings.SourcesCount != 1 {
		t.Errorf("SourcesCount = %d, want 1", findings.SourcesCount)
	}
}

func TestConductAllSourcesFailed(t *testing.T) {
	r := newTestResearcher(
		&fakeArxiv{err: errors.New("down")},
		&fakeWeb{err: errors.New("down")},
		&fakeDocs{err: errors.New("down")},
		&fakeLLM{},
	)

	if _, err := r.Conduct(context.Background(), nil, uuid.New(), "query", DefaultOptions()); err == nil {
		t.Error("expected error when every requested source failed")
	}
}

func TestConductHonorsSourceToggles(t *testing.T) {
	// Only documents enabled, both remote sources would fail if called
	r := newTestResearcher(
		&fakeArxiv{err: errors.New("must not matter")},
		&fakeWeb{err: errors.New("must not matter")},
		&fakeDocs{chunks: []store.Document{{ID: "c1"}}},
		&fakeLLM{},
	)

	opts := Options{UseDocuments: true, MaxResults: 5}
	findings, err := r.Conduct(context.Background(), nil, uuid.New(), "query", opts)
	if err != nil {
		t.Fatalf("Conduct() error = %v", err)
	}
	if len(findings.Papers) != 0 || findings.Web != nil {
		t.Errorf("disabled sources leaked into findings: %+v", findings)
	}
	if findings.SourcesCount != 1 {
		t.Errorf("SourcesCount = %d, want 1", findings.SourcesCount)
	}
}

func TestBuildContextSections(t *testing.T) {
	findings := &Findings{
		Query: "q",
		Papers: []arxiv.Paper{
			{Title: "P1", Authors: "A", Summary: strings.Repeat("s", 600), PDFURL: "http://pdf/1"},
			{Title: "P2"}, {Title: "P3"}, {Title: "P4"},
		},
		Web: &websearch.Result{Answer: "web says", Citations: []string{"https://a", "https://b"}},
		Chunks: []store.Document{
			{Title: "doc.pdf", Content: strings.Repeat("c", 400), Score: 0.91},
		},
	}

	got := BuildContext(findings)

	for _, section := range []string{"=== ARXIV PAPERS ===", "=== WEB SEARCH RESULTS ===", "=== USER DOCUMENTS ==="} {
		if !strings.Contains(got, section) {
			t.Errorf("missing section %q", section)
		}
	}
	if strings.Contains(got, "P4") {
		t.Error("only the top 3 papers should be rendered")
	}
	if !strings.Contains(got, strings.Repeat("s", 500)+"...") {
		t.Error("paper summary not truncated to 500 runes")
	}
	if !strings.Contains(got, strings.Repeat("c", 300)+"...") {
		t.Error("chunk content not truncated to 300 runes")
	}
	if !strings.Contains(got, "Citations: https://a, https://b") {
		t.Error("web citations missing")
	}
}

func TestBuildContextEmptyFindings(t *testing.T) {
	if got := BuildContext(&Findings{Query: "q"}); got != "" {
		t.Errorf("empty findings should render empty context, got %q", got)
	}
}

func TestSynthesizeSkipsEmptyContext(t *testing.T) {
	r := newTestResearcher(nil, nil, nil, &fakeLLM{response: "should not be used"})

	synthesis, err := r.Synthesize(context.Background(), &Findings{Query: "q"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if synthesis != "" {
		t.Errorf("synthesis = %q, want empty for empty findings", synthesis)
	}
}

func TestSynthesizeUsesLLM(t *testing.T) {
	r := newTestResearcher(nil, nil, nil, &fakeLLM{response: "a structured report"})

	findings := &Findings{
		Query:  "q",
		Papers: []arxiv.Paper{{Title: "P1"}},
	}
	synthesis, err := r.Synthesize(context.Background(), findings)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if synthesis != "a structured report" {
		t.Errorf("synthesis = %q", synthesis)
	}
}
