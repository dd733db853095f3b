package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/embedding"
	"research-assistant-be/pkg/events"
	"research-assistant-be/pkg/extract"
	pktNats "research-assistant-be/pkg/nats"
	"research-assistant-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const sentenceWindow = 100

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	extractor         *extract.Extractor
	eventPublisher    *pktNats.Publisher
	chunkSize         int
	chunkOverlap      int
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	extractor *extract.Extractor,
	eventPublisher *pktNats.Publisher,
	chunkSize int,
	chunkOverlap int,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		extractor:         extractor,
		eventPublisher:    eventPublisher,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing document: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if document == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Deleted before processing? Ack.
		return
	}

	if err := uow.DocumentRepository().SetStatus(
		ctx, document.Id, constant.DocumentStatusProcessing, 0, "", nil,
	); err != nil {
		log.Printf("[ERROR] Failed to mark document processing: %v", err)
		msg.Nack()
		return
	}
	cs.publishStatusEvent(ctx, document, constant.DocumentStatusProcessing, "")

	// Extraction errors are permanent (bad file), everything after is
	// infrastructure and retriable
	result, err := cs.extractor.ExtractFile(ctx, document.FilePath)
	if err != nil {
		log.Printf("[ERROR] Extraction failed for document %s: %v", document.Id, err)
		cs.markFailed(ctx, uow, document, fmt.Sprintf("extraction failed: %v", err))
		msg.Ack()
		return
	}

	chunks := utils.SplitTextSentences(result.Content, cs.chunkSize, cs.chunkOverlap, sentenceWindow)
	log.Printf("[INFO] Document %s split into %d chunks (method: %s)", document.Id, len(chunks), result.Method)

	if len(chunks) == 0 {
		cs.markFailed(ctx, uow, document, "no extractable text content")
		msg.Ack()
		return
	}

	var newEmbeddings []*entity.DocumentEmbedding
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, constant.EmbeddingTaskDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, document.Id, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			DocumentId:     document.Id,
			ChunkIndex:     i,
			ChunkText:      chunk,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
		msg.Nack()
		return
	}

	now := time.Now()
	if err := uow.DocumentRepository().SetStatus(
		ctx, document.Id, constant.DocumentStatusDone, len(newEmbeddings), "", &now,
	); err != nil {
		log.Printf("[ERROR] Failed to mark document done: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	cs.publishStatusEvent(ctx, document, constant.DocumentStatusDone, "")
	log.Printf("[SUCCESS] Document processed: %d chunks for %s", len(newEmbeddings), document.Id)
	msg.Ack()
}

func (cs *consumerService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document, reason string) {
	now := time.Now()
	if err := uow.DocumentRepository().SetStatus(
		ctx, document.Id, constant.DocumentStatusFailed, 0, reason, &now,
	); err != nil {
		log.Printf("[ERROR] Failed to mark document failed: %v", err)
		return
	}
	cs.publishStatusEvent(ctx, document, constant.DocumentStatusFailed, reason)
}

func (cs *consumerService) publishStatusEvent(ctx context.Context, document *entity.Document, status, errorMessage string) {
	if cs.eventPublisher == nil {
		return
	}

	evt := events.NewDocumentStatusEvent(
		document.UserId.String(), document.Id.String(), document.FileName, status, errorMessage,
	)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish document status event: %v", err)
	}
}
