package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/embedding"
	"research-assistant-be/pkg/extract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type fakeDocumentRepo struct {
	doc     *entity.Document
	findErr error

	statuses   []string
	lastChunks int
	lastErrMsg string
}

func (f *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error { return nil }
func (f *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error { return nil }
func (f *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (f *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	return f.doc, f.findErr
}

func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return nil, nil
}

func (f *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeDocumentRepo) SetStatus(ctx context.Context, id uuid.UUID, status string, chunkCount int, errorMessage string, processedAt *time.Time) error {
	f.statuses = append(f.statuses, status)
	f.lastChunks = chunkCount
	f.lastErrMsg = errorMessage
	return nil
}

type fakeEmbeddingRepo struct {
	created    []*entity.DocumentEmbedding
	deletedFor []uuid.UUID
}

func (f *fakeEmbeddingRepo) Create(ctx context.Context, e *entity.DocumentEmbedding) error {
	return nil
}

func (f *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	f.created = append(f.created, embeddings...)
	return nil
}

func (f *fakeEmbeddingRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	f.deletedFor = append(f.deletedFor, documentId)
	return nil
}

func (f *fakeEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	return nil, nil
}

func (f *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	return nil, nil
}

type fakeUow struct {
	docs   *fakeDocumentRepo
	embeds *fakeEmbeddingRepo

	began      bool
	committed  bool
	rolledBack bool
}

func (f *fakeUow) Begin(ctx context.Context) error { f.began = true; return nil }
func (f *fakeUow) Commit() error                   { f.committed = true; return nil }
func (f *fakeUow) Rollback() error                 { f.rolledBack = true; return nil }

func (f *fakeUow) UserRepository() contract.UserRepository                       { return nil }
func (f *fakeUow) ResearchSessionRepository() contract.ResearchSessionRepository { return nil }
func (f *fakeUow) ConversationTurnRepository() contract.ConversationTurnRepository {
	return nil
}
func (f *fakeUow) DocumentRepository() contract.DocumentRepository { return f.docs }
func (f *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return f.embeds
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

func newTestConsumer(uow *fakeUow, embedder *fakeEmbedder) *consumerService {
	return &consumerService{
		topicName:         "process_document",
		uowFactory:        &fakeUowFactory{uow: uow},
		embeddingProvider: embedder,
		extractor:         extract.NewExtractor(nil),
		chunkSize:         200,
		chunkOverlap:      20,
	}
}

func processMessageFor(t *testing.T, documentId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.PublishProcessDocumentMessage{DocumentId: documentId})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return message.NewMessage("test-msg", payload)
}

func ackState(msg *message.Message) string {
	select {
	case <-msg.Acked():
		return "acked"
	default:
	}
	select {
	case <-msg.Nacked():
		return "nacked"
	default:
	}
	return "pending"
}

func writeTextFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func testDocument(filePath string) *entity.Document {
	return &entity.Document{
		Id:       uuid.New(),
		UserId:   uuid.New(),
		FileName: "doc.txt",
		FilePath: filePath,
		Status:   constant.DocumentStatusPending,
	}
}

func TestProcessMessageDone(t *testing.T) {
	doc := testDocument(writeTextFile(t, "First sentence here. Second sentence follows. Third one closes it."))
	uow := &fakeUow{docs: &fakeDocumentRepo{doc: doc}, embeds: &fakeEmbeddingRepo{}}
	embedder := &fakeEmbedder{}
	cs := newTestConsumer(uow, embedder)

	msg := processMessageFor(t, doc.Id)
	cs.processMessage(context.Background(), msg)

	if got := ackState(msg); got != "acked" {
		t.Errorf("message state = %s, want acked", got)
	}
	wantStatuses := []string{constant.DocumentStatusProcessing, constant.DocumentStatusDone}
	if len(uow.docs.statuses) != 2 || uow.docs.statuses[0] != wantStatuses[0] || uow.docs.statuses[1] != wantStatuses[1] {
		t.Errorf("statuses = %v, want %v", uow.docs.statuses, wantStatuses)
	}
	if len(uow.embeds.created) == 0 {
		t.Fatal("no embeddings were stored")
	}
	if uow.docs.lastChunks != len(uow.embeds.created) {
		t.Errorf("chunk count %d does not match stored embeddings %d", uow.docs.lastChunks, len(uow.embeds.created))
	}
	if embedder.calls != len(uow.embeds.created) {
		t.Errorf("embedder calls = %d, want %d", embedder.calls, len(uow.embeds.created))
	}
	if len(uow.embeds.deletedFor) != 1 || uow.embeds.deletedFor[0] != doc.Id {
		t.Errorf("old embeddings not replaced: %v", uow.embeds.deletedFor)
	}
	if !uow.committed {
		t.Error("transaction was not committed")
	}
	for i, e := range uow.embeds.created {
		if e.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, e.ChunkIndex)
		}
		if e.DocumentId != doc.Id {
			t.Errorf("chunk %d bound to wrong document", i)
		}
	}
}

func TestProcessMessageExtractionFailureIsPermanent(t *testing.T) {
	doc := testDocument(filepath.Join(t.TempDir(), "missing.txt"))
	uow := &fakeUow{docs: &fakeDocumentRepo{doc: doc}, embeds: &fakeEmbeddingRepo{}}
	cs := newTestConsumer(uow, &fakeEmbedder{})

	msg := processMessageFor(t, doc.Id)
	cs.processMessage(context.Background(), msg)

	if got := ackState(msg); got != "acked" {
		t.Errorf("message state = %s, want acked (permanent failure)", got)
	}
	if len(uow.docs.statuses) != 2 || uow.docs.statuses[1] != constant.DocumentStatusFailed {
		t.Errorf("statuses = %v, want [processing failed]", uow.docs.statuses)
	}
	if !strings.HasPrefix(uow.docs.lastErrMsg, "extraction failed") {
		t.Errorf("error message = %q", uow.docs.lastErrMsg)
	}
	if uow.committed {
		t.Error("nothing should be committed on failure")
	}
}

func TestProcessMessageEmbeddingErrorNacks(t *testing.T) {
	doc := testDocument(writeTextFile(t, "Some content to embed."))
	uow := &fakeUow{docs: &fakeDocumentRepo{doc: doc}, embeds: &fakeEmbeddingRepo{}}
	cs := newTestConsumer(uow, &fakeEmbedder{err: errors.New("embedding api down")})

	msg := processMessageFor(t, doc.Id)
	cs.processMessage(context.Background(), msg)

	if got := ackState(msg); got != "nacked" {
		t.Errorf("message state = %s, want nacked (transient failure)", got)
	}
	// The document stays in processing so a redelivery can finish the job
	if len(uow.docs.statuses) != 1 || uow.docs.statuses[0] != constant.DocumentStatusProcessing {
		t.Errorf("statuses = %v, want [processing]", uow.docs.statuses)
	}
	if len(uow.embeds.created) != 0 {
		t.Error("no embeddings should be stored when embedding fails")
	}
}

func TestProcessMessageBadPayloadAcked(t *testing.T) {
	uow := &fakeUow{docs: &fakeDocumentRepo{}, embeds: &fakeEmbeddingRepo{}}
	cs := newTestConsumer(uow, &fakeEmbedder{})

	msg := message.NewMessage("bad", []byte("{not json"))
	cs.processMessage(context.Background(), msg)

	if got := ackState(msg); got != "acked" {
		t.Errorf("message state = %s, want acked (poison message)", got)
	}
	if len(uow.docs.statuses) != 0 {
		t.Errorf("statuses = %v, want none", uow.docs.statuses)
	}
}

func TestProcessMessageMissingDocumentAcked(t *testing.T) {
	uow := &fakeUow{docs: &fakeDocumentRepo{doc: nil}, embeds: &fakeEmbeddingRepo{}}
	cs := newTestConsumer(uow, &fakeEmbedder{})

	msg := processMessageFor(t, uuid.New())
	cs.processMessage(context.Background(), msg)

	if got := ackState(msg); got != "acked" {
		t.Errorf("message state = %s, want acked (document deleted before processing)", got)
	}
}
