package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ResearchSessionRepository())
	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.DocumentEmbeddingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Session Repository", func(t *testing.T) {
		count, err := uow.ResearchSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Session count: %d", count)
	})

	t.Run("Check Document Embedding Repository", func(t *testing.T) {
		// Count implies table check
		count, err := uow.DocumentEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentEmbedding count: %d", count)
	})

	t.Run("Check Transactional Session With Turns", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:        userId,
			Username:  "integration-" + uuid.New().String(),
			CreatedAt: time.Now(),
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		sessionId := uuid.New()
		session := &entity.ResearchSession{
			Id:           sessionId,
			UserId:       userId,
			Title:        "Integration Session",
			IsActive:     true,
			LastActiveAt: time.Now(),
			CreatedAt:    time.Now(),
		}
		err = uow.ResearchSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		turns := []*entity.ConversationTurn{
			{
				Id:        uuid.New(),
				SessionId: sessionId,
				Role:      "user",
				Content:   "What is retrieval augmented generation?",
				CreatedAt: time.Now(),
			},
			{
				Id:        uuid.New(),
				SessionId: sessionId,
				Role:      "assistant",
				Content:   "It combines document retrieval with generation.",
				AgentType: "analyst",
				CreatedAt: time.Now().Add(time.Second),
			},
		}
		err = uow.ConversationTurnRepository().CreateBulk(ctx, turns)
		assert.NoError(t, err)

		err = uow.ResearchSessionRepository().TouchActivity(ctx, sessionId, 2)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		// Verify the counter moved
		saved, err := uow.ResearchSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			assert.Equal(t, 2, saved.MessageCount)
		}

		t.Log("Successfully created Session with Turns in Transaction")
	})
}
