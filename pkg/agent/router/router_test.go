package router

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"research-assistant-be/pkg/llm"
)

// fakeLLM returns a canned response or error for every call.
type fakeLLM struct {
	response string
	err      error

	lastHistory []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastHistory = history
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func someHistory() []llm.Message {
	return []llm.Message{
		{Role: "user", Content: "What did we discuss about transformers?"},
		{Role: "assistant", Content: "We covered attention mechanisms."},
	}
}

func TestDecideEmptyHistoryRoutesToResearch(t *testing.T) {
	r := NewRouter(&fakeLLM{response: `{"answer_directly": true}`}, testLogger())

	decision := r.Decide(context.Background(), "anything", nil)
	if decision.AnswerDirectly {
		t.Error("empty history must route to research regardless of LLM output")
	}
}

func TestDecideParsesMemoryVerdict(t *testing.T) {
	fake := &fakeLLM{response: `{"answer_directly": true, "reason": "already discussed"}`}
	r := NewRouter(fake, testLogger())

	decision := r.Decide(context.Background(), "remind me", someHistory())
	if !decision.AnswerDirectly {
		t.Error("expected memory route")
	}
	if decision.Reason != "already discussed" {
		t.Errorf("Reason = %q", decision.Reason)
	}
}

func TestDecideStripsMarkdownFences(t *testing.T) {
	fake := &fakeLLM{response: "```json\n{\"answer_directly\": true, \"reason\": \"fenced\"}\n```"}
	r := NewRouter(fake, testLogger())

	decision := r.Decide(context.Background(), "remind me", someHistory())
	if !decision.AnswerDirectly {
		t.Error("fenced JSON should still parse")
	}
}

func TestDecideLLMErrorFallsBackToResearch(t *testing.T) {
	r := NewRouter(&fakeLLM{err: errors.New("provider down")}, testLogger())

	decision := r.Decide(context.Background(), "query", someHistory())
	if decision.AnswerDirectly {
		t.Error("LLM failure must fall back to research")
	}
}

func TestDecideUnparseableResponseFallsBackToResearch(t *testing.T) {
	r := NewRouter(&fakeLLM{response: "I think you should research this"}, testLogger())

	decision := r.Decide(context.Background(), "query", someHistory())
	if decision.AnswerDirectly {
		t.Error("unparseable response must fall back to research")
	}
}

func TestDecideSendsSystemPromptAndQuestion(t *testing.T) {
	fake := &fakeLLM{response: `{"answer_directly": false}`}
	r := NewRouter(fake, testLogger())

	history := someHistory()
	r.Decide(context.Background(), "new question", history)

	if len(fake.lastHistory) != len(history)+2 {
		t.Fatalf("messages = %d, want system + history + question", len(fake.lastHistory))
	}
	if fake.lastHistory[0].Role != "system" {
		t.Errorf("first message role = %q, want system", fake.lastHistory[0].Role)
	}
	last := fake.lastHistory[len(fake.lastHistory)-1]
	if last.Role != "user" || last.Content != "Question: new question" {
		t.Errorf("last message = %+v", last)
	}
}

func TestAnswerFromMemory(t *testing.T) {
	fake := &fakeLLM{response: "We discussed attention mechanisms."}
	r := NewRouter(fake, testLogger())

	answer, err := r.AnswerFromMemory(context.Background(), "remind me", someHistory())
	if err != nil {
		t.Fatalf("AnswerFromMemory() error = %v", err)
	}
	if answer != "We discussed attention mechanisms." {
		t.Errorf("answer = %q", answer)
	}
	if fake.lastHistory[0].Role != "system" {
		t.Errorf("memory answer must carry the system prompt first")
	}
}

func TestAnswerFromMemoryError(t *testing.T) {
	r := NewRouter(&fakeLLM{err: errors.New("provider down")}, testLogger())
	if _, err := r.AnswerFromMemory(context.Background(), "q", someHistory()); err == nil {
		t.Error("expected error when provider fails")
	}
}
