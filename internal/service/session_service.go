package service

import (
	"context"
	"fmt"
	"time"

	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, limit int) (*dto.SessionHistoryResponse, error)
	Activate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error)
	GetActive(ctx context.Context, userId uuid.UUID) (*dto.SessionResponse, error)
	// GetOrCreateActive resolves the active session, creating one when the
	// user has none. Used by the research flow when no session id is given.
	GetOrCreateActive(ctx context.Context, userId uuid.UUID) (*entity.ResearchSession, error)
	Delete(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Research Session %s", time.Now().Format("2006-01-02 15:04"))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// A new session becomes the single active one
	if err := uow.ResearchSessionRepository().DeactivateAll(ctx, userId); err != nil {
		return nil, err
	}

	session := entity.ResearchSession{
		Id:           uuid.New(),
		UserId:       userId,
		Title:        title,
		IsActive:     true,
		LastActiveAt: time.Now(),
		CreatedAt:    time.Now(),
	}
	if err := uow.ResearchSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().IncrementSessionCount(ctx, userId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		Id:    session.Id,
		Title: session.Title,
	}, nil
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ResearchSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "last_active_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, toSessionResponse(session))
	}
	return response, nil
}

func (s *sessionService) GetHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, limit int) (*dto.SessionHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	turns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	response := &dto.SessionHistoryResponse{
		SessionId: session.Id,
		Turns:     make([]dto.ConversationTurnResponse, 0, len(turns)),
	}
	for _, turn := range turns {
		response.Turns = append(response.Turns, toTurnResponse(turn))
	}
	return response, nil
}

func (s *sessionService) Activate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ResearchSessionRepository().DeactivateAll(ctx, userId); err != nil {
		return nil, err
	}

	now := time.Now()
	session.IsActive = true
	session.LastActiveAt = now
	session.UpdatedAt = &now
	if err := uow.ResearchSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) GetActive(ctx context.Context, userId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ResearchSessionRepository().FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &dto.NotFoundError{Resource: "active session"}
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) GetOrCreateActive(ctx context.Context, userId uuid.UUID) (*entity.ResearchSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ResearchSessionRepository().FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	created, err := s.Create(ctx, userId, &dto.CreateSessionRequest{})
	if err != nil {
		return nil, err
	}

	return uow.ResearchSessionRepository().FindOne(ctx, specification.ByID{ID: created.Id})
}

func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationTurnRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.ResearchSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *sessionService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.ResearchSession, error) {
	session, err := uow.ResearchSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &dto.NotFoundError{Resource: "session"}
	}
	return session, nil
}

func toSessionResponse(session *entity.ResearchSession) *dto.SessionResponse {
	lastActive := session.LastActiveAt
	return &dto.SessionResponse{
		Id:           session.Id,
		Title:        session.Title,
		IsActive:     session.IsActive,
		MessageCount: session.MessageCount,
		CreatedAt:    session.CreatedAt,
		LastActiveAt: &lastActive,
	}
}

func toTurnResponse(turn *entity.ConversationTurn) dto.ConversationTurnResponse {
	sources := make([]dto.SourceDTO, 0, len(turn.Sources))
	for _, source := range turn.Sources {
		sources = append(sources, dto.SourceDTO{
			Type:  source.Type,
			Title: source.Title,
			URL:   source.URL,
			ID:    source.ID,
		})
	}

	return dto.ConversationTurnResponse{
		Id:                turn.Id,
		Role:              turn.Role,
		Content:           turn.Content,
		AgentType:         turn.AgentType,
		Sources:           sources,
		ProcessingTimeSec: turn.ProcessingTimeSec,
		CreatedAt:         turn.CreatedAt,
	}
}
