package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"research-assistant-be/internal/constant"
	"research-assistant-be/pkg/llm"
)

// Decision is the routing verdict for an incoming query
type Decision struct {
	AnswerDirectly bool   `json:"answer_directly"`
	Reason         string `json:"reason"`
}

// Router decides whether a query needs the research pipeline or can be
// answered from conversation memory alone
type Router struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewRouter(llmProvider llm.LLMProvider, logger *log.Logger) *Router {
	return &Router{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Decide routes the query. An empty history always routes to research, and
// any routing failure falls back to research rather than risking a memory
// answer without evidence.
func (r *Router) Decide(ctx context.Context, query string, history []llm.Message) *Decision {
	if len(history) == 0 {
		r.logger.Printf("[ROUTER] Empty history, routing to research")
		return &Decision{AnswerDirectly: false, Reason: "empty conversation history"}
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ConversationRoleSystem,
		Content: constant.RouteDecisionPrompt,
	})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{
		Role:    constant.ConversationRoleUser,
		Content: fmt.Sprintf("Question: %s", query),
	})

	response, err := r.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.1))
	if err != nil {
		r.logger.Printf("[ROUTER] Routing call failed, defaulting to research: %v", err)
		return &Decision{AnswerDirectly: false, Reason: "routing failed"}
	}

	var decision Decision
	if err := json.Unmarshal(llm.CleanJSONResponse(response), &decision); err != nil {
		r.logger.Printf("[ROUTER] Unparseable routing response, defaulting to research: %v", err)
		return &Decision{AnswerDirectly: false, Reason: "unparseable routing response"}
	}

	r.logger.Printf("[ROUTER] Decision: answer_directly=%t (%s)", decision.AnswerDirectly, decision.Reason)
	return &decision
}

// AnswerFromMemory produces a direct answer grounded only in the
// conversation history
func (r *Router) AnswerFromMemory(ctx context.Context, query string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ConversationRoleSystem,
		Content: constant.MemoryAnswerSystemPrompt,
	})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{
		Role:    constant.ConversationRoleUser,
		Content: query,
	})

	answer, err := r.llmProvider.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("memory answer failed: %w", err)
	}

	r.logger.Printf("[ROUTER] Answered from conversation memory")
	return answer, nil
}
