package message

import (
	"testing"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/entity"

	"github.com/google/uuid"
)

func TestTurnPairOrdering(t *testing.T) {
	f := NewFactory()
	sessionId := uuid.New()
	now := time.Now()

	userTurn := f.CreateUserTurn(sessionId, "what is pgvector?", now)
	assistantTurn := f.CreateAssistantTurn(
		sessionId,
		"pgvector is a Postgres extension.",
		constant.AgentTypeAnalyst,
		[]entity.Source{{Type: "web", Title: "pgvector docs", URL: "https://github.com/pgvector/pgvector"}},
		2.5,
		now,
	)

	if !assistantTurn.CreatedAt.After(userTurn.CreatedAt) {
		t.Errorf("assistant turn at %v must be strictly after user turn at %v",
			assistantTurn.CreatedAt, userTurn.CreatedAt)
	}
	if userTurn.Role != constant.ConversationRoleUser {
		t.Errorf("user turn role = %q", userTurn.Role)
	}
	if assistantTurn.Role != constant.ConversationRoleAssistant {
		t.Errorf("assistant turn role = %q", assistantTurn.Role)
	}
	if userTurn.SessionId != sessionId || assistantTurn.SessionId != sessionId {
		t.Error("turns must share the session id")
	}
}

func TestCreateAssistantTurnCarriesMetadata(t *testing.T) {
	f := NewFactory()
	sources := []entity.Source{
		{Type: "arxiv", Title: "Paper A", ID: "2401.12345"},
		{Type: "document", Title: "notes.pdf"},
	}

	turn := f.CreateAssistantTurn(uuid.New(), "answer", constant.AgentTypeMemory, sources, 0.8, time.Now())

	if turn.AgentType != constant.AgentTypeMemory {
		t.Errorf("AgentType = %q", turn.AgentType)
	}
	if len(turn.Sources) != 2 {
		t.Errorf("Sources = %d, want 2", len(turn.Sources))
	}
	if turn.ProcessingTimeSec != 0.8 {
		t.Errorf("ProcessingTimeSec = %v", turn.ProcessingTimeSec)
	}
	if turn.Id == uuid.Nil {
		t.Error("turn must get a fresh id")
	}
}
