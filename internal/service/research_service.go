package service

import (
	"context"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/agent/executor"
	"research-assistant-be/pkg/agent/history"
	"research-assistant-be/pkg/agent/message"
	"research-assistant-be/pkg/agent/researcher"
	agentrouter "research-assistant-be/pkg/agent/router"
	"research-assistant-be/pkg/events"
	"research-assistant-be/pkg/llm"
	pktNats "research-assistant-be/pkg/nats"
)

type IResearchService interface {
	ProcessQuery(ctx context.Context, req *dto.ResearchQueryRequest) (*dto.ResearchQueryResponse, error)
	QuickAnswer(ctx context.Context, req *dto.QuickAnswerRequest) (*dto.QuickAnswerResponse, error)
}

type researchService struct {
	uowFactory     unitofwork.RepositoryFactory
	userService    IUserService
	sessionService ISessionService
	historyLoader  *history.Loader
	router         *agentrouter.Router
	pipeline       *executor.PipelineExecutor
	messageFactory *message.Factory
	llmProvider    llm.LLMProvider
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	historyLimit   int
}

func NewResearchService(
	uowFactory unitofwork.RepositoryFactory,
	userService IUserService,
	sessionService ISessionService,
	historyLoader *history.Loader,
	router *agentrouter.Router,
	pipeline *executor.PipelineExecutor,
	llmProvider llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	historyLimit int,
) IResearchService {
	return &researchService{
		uowFactory:     uowFactory,
		userService:    userService,
		sessionService: sessionService,
		historyLoader:  historyLoader,
		router:         router,
		pipeline:       pipeline,
		messageFactory: message.NewFactory(),
		llmProvider:    llmProvider,
		eventPublisher: eventPublisher,
		logger:         log,
		historyLimit:   historyLimit,
	}
}

func (s *researchService) ProcessQuery(ctx context.Context, req *dto.ResearchQueryRequest) (*dto.ResearchQueryResponse, error) {
	start := time.Now()

	user, err := s.userService.GetOrCreateLocalUser(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.resolveSession(ctx, user, req)
	if err != nil {
		return nil, err
	}

	conversationHistory, err := s.historyLoader.LoadConversationHistory(ctx, session.Id, s.historyLimit)
	if err != nil {
		return nil, err
	}

	decision := s.router.Decide(ctx, req.Query, conversationHistory)

	var (
		answer       string
		sources      []entity.Source
		confidence   float64
		sourcesCount int
		agentType    string
		mode         string
	)

	if decision.AnswerDirectly {
		answer, err = s.router.AnswerFromMemory(ctx, req.Query, conversationHistory)
		if err != nil {
			return nil, err
		}
		agentType = constant.AgentTypeMemory
		mode = "memory"
		confidence = 1.0
	} else {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		result, err := s.pipeline.Execute(
			ctx, uow, user.Id, session.Id, req.Query, conversationHistory, s.researchOptions(req),
		)
		if err != nil {
			return nil, err
		}
		answer = result.Answer
		sources = result.Sources
		confidence = result.Confidence
		sourcesCount = result.SourcesCount
		agentType = constant.AgentTypeAnalyst
		mode = "pipeline"
	}

	processingTime := time.Since(start).Seconds()

	if err := s.persistTurns(ctx, session, req.Query, answer, agentType, sources, processingTime); err != nil {
		return nil, err
	}

	s.publishResearchCompleted(ctx, user, session, sourcesCount, processingTime)

	return &dto.ResearchQueryResponse{
		Answer:         answer,
		Sources:        toSourceDTOs(sources),
		SourcesCount:   sourcesCount,
		ProcessingTime: processingTime,
		Confidence:     confidence,
		SessionId:      session.Id,
		Mode:           mode,
	}, nil
}

func (s *researchService) QuickAnswer(ctx context.Context, req *dto.QuickAnswerRequest) (*dto.QuickAnswerResponse, error) {
	start := time.Now()

	answer, err := s.llmProvider.Generate(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	return &dto.QuickAnswerResponse{
		Answer:         answer,
		ProcessingTime: time.Since(start).Seconds(),
	}, nil
}

func (s *researchService) resolveSession(ctx context.Context, user *entity.User, req *dto.ResearchQueryRequest) (*entity.ResearchSession, error) {
	if req.SessionId == nil {
		return s.sessionService.GetOrCreateActive(ctx, user.Id)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ResearchSessionRepository().FindOne(ctx,
		specification.ByID{ID: *req.SessionId},
		specification.ByUserID{UserID: user.Id},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &dto.NotFoundError{Resource: "session"}
	}
	return session, nil
}

func (s *researchService) researchOptions(req *dto.ResearchQueryRequest) researcher.Options {
	opts := researcher.DefaultOptions()
	if req.UseArxiv != nil {
		opts.UseArxiv = *req.UseArxiv
	}
	if req.UseWeb != nil {
		opts.UseWeb = *req.UseWeb
	}
	if req.UseDocuments != nil {
		opts.UseDocuments = *req.UseDocuments
	}
	return opts
}

func (s *researchService) persistTurns(
	ctx context.Context,
	session *entity.ResearchSession,
	query, answer, agentType string,
	sources []entity.Source,
	processingTime float64,
) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	now := time.Now()
	userTurn := s.messageFactory.CreateUserTurn(session.Id, query, now)
	assistantTurn := s.messageFactory.CreateAssistantTurn(
		session.Id, answer, agentType, sources, processingTime, now,
	)

	if err := s.messageFactory.SaveTurns(ctx, uow, userTurn, assistantTurn); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *researchService) publishResearchCompleted(
	ctx context.Context,
	user *entity.User,
	session *entity.ResearchSession,
	sourcesCount int,
	processingTime float64,
) {
	if s.eventPublisher == nil {
		return
	}

	evt := events.NewResearchCompletedEvent(
		user.Id.String(), session.Id.String(), sourcesCount, processingTime,
	)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ResearchService", "Failed to publish research completed event",
			map[string]interface{}{"error": err.Error()})
	}
}

func toSourceDTOs(sources []entity.Source) []dto.SourceDTO {
	result := make([]dto.SourceDTO, 0, len(sources))
	for _, source := range sources {
		result = append(result, dto.SourceDTO{
			Type:  source.Type,
			Title: source.Title,
			URL:   source.URL,
			ID:    source.ID,
		})
	}
	return result
}
