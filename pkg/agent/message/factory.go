package message

import (
	"context"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Factory handles conversation turn creation and persistence
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// CreateUserTurn creates a turn from the user's query
func (f *Factory) CreateUserTurn(sessionId uuid.UUID, content string, now time.Time) entity.ConversationTurn {
	return entity.ConversationTurn{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      constant.ConversationRoleUser,
		Content:   content,
		CreatedAt: now,
	}
}

// CreateAssistantTurn creates the answering turn. Created one second after
// the user turn so chronological ordering is stable.
func (f *Factory) CreateAssistantTurn(
	sessionId uuid.UUID,
	content string,
	agentType string,
	sources []entity.Source,
	processingTimeSec float64,
	now time.Time,
) entity.ConversationTurn {
	return entity.ConversationTurn{
		Id:                uuid.New(),
		SessionId:         sessionId,
		Role:              constant.ConversationRoleAssistant,
		Content:           content,
		AgentType:         agentType,
		Sources:           sources,
		ProcessingTimeSec: processingTimeSec,
		CreatedAt:         now.Add(1 * time.Second),
	}
}

// SaveTurns persists the user/assistant pair and bumps session counters
func (f *Factory) SaveTurns(ctx context.Context, uow unitofwork.UnitOfWork, userTurn, assistantTurn entity.ConversationTurn) error {
	if err := uow.ConversationTurnRepository().Create(ctx, &userTurn); err != nil {
		return err
	}
	if err := uow.ConversationTurnRepository().Create(ctx, &assistantTurn); err != nil {
		return err
	}
	return uow.ResearchSessionRepository().TouchActivity(ctx, userTurn.SessionId, 2)
}
