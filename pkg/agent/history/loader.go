package history

import (
	"context"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads recent conversation turns back as LLM chat history
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLoader(uowFactory unitofwork.RepositoryFactory) *Loader {
	return &Loader{uowFactory: uowFactory}
}

// LoadConversationHistory returns the last `limit` turns of a session in
// chronological order, mapped to provider-agnostic chat messages.
func (l *Loader) LoadConversationHistory(ctx context.Context, sessionId uuid.UUID, limit int) ([]llm.Message, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(turns) > limit {
		turns = turns[:limit]
	}

	messages := make([]llm.Message, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		turn := turns[i]

		role := constant.ConversationRoleUser
		if turn.Role == constant.ConversationRoleAssistant {
			role = constant.ConversationRoleAssistant
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: turn.Content,
		})
	}

	return messages, nil
}
