package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/agent/docsearch"
	"research-assistant-be/pkg/webscrape"

	"github.com/google/uuid"
)

// allowedExtensions is the upload allow list. Anything else is rejected
// before touching disk.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.UploadDocumentResponse, error)
	IngestURL(ctx context.Context, userId uuid.UUID, req *dto.IngestURLRequest) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	GetChunks(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentChunksResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	SemanticSearch(ctx context.Context, userId uuid.UUID, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchHit, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	documentSearch   *docsearch.Orchestrator
	scraper          *webscrape.Scraper
	logger           logger.ILogger
	uploadDir        string
	maxUploadBytes   int64
	searchConfig     docsearch.Config
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	documentSearch *docsearch.Orchestrator,
	scraper *webscrape.Scraper,
	log logger.ILogger,
	uploadDir string,
	maxUploadSizeMB int,
	searchConfig docsearch.Config,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		documentSearch:   documentSearch,
		scraper:          scraper,
		logger:           log,
		uploadDir:        uploadDir,
		maxUploadBytes:   int64(maxUploadSizeMB) * 1024 * 1024,
		searchConfig:     searchConfig,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.UploadDocumentResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, &dto.UnsupportedFileTypeError{Extension: ext}
	}
	if file.Size > s.maxUploadBytes {
		return nil, &dto.LimitExceededError{
			LimitBytes: s.maxUploadBytes,
			SizeBytes:  file.Size,
		}
	}

	documentId := uuid.New()
	filePath := filepath.Join(s.uploadDir, fmt.Sprintf("%s%s", documentId, ext))

	if err := s.saveUploadedFile(file, filePath); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	document := entity.Document{
		Id:         documentId,
		UserId:     userId,
		FileName:   file.Filename,
		FileType:   strings.TrimPrefix(ext, "."),
		FilePath:   filePath,
		SizeBytes:  file.Size,
		Status:     constant.DocumentStatusPending,
		UploadedAt: time.Now(),
	}

	if err := s.createAndEnqueue(ctx, userId, &document); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		Id:       document.Id,
		FileName: document.FileName,
		Status:   document.Status,
	}, nil
}

func (s *documentService) IngestURL(ctx context.Context, userId uuid.UUID, req *dto.IngestURLRequest) (*dto.UploadDocumentResponse, error) {
	page, err := s.scraper.Fetch(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch url: %w", err)
	}

	documentId := uuid.New()
	filePath := filepath.Join(s.uploadDir, fmt.Sprintf("%s.txt", documentId))

	content := page.Content
	if page.Title != "" {
		content = fmt.Sprintf("%s\n\n%s", page.Title, page.Content)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("save page content: %w", err)
	}

	fileName := page.Title
	if fileName == "" {
		fileName = req.URL
	}

	document := entity.Document{
		Id:         documentId,
		UserId:     userId,
		FileName:   fileName,
		FileType:   "url",
		FilePath:   filePath,
		SourceURL:  req.URL,
		SizeBytes:  int64(len(content)),
		Status:     constant.DocumentStatusPending,
		UploadedAt: time.Now(),
	}

	if err := s.createAndEnqueue(ctx, userId, &document); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		Id:       document.Id,
		FileName: document.FileName,
		Status:   document.Status,
	}, nil
}

// createAndEnqueue persists the pending row and hands the document to the
// async processing queue.
func (s *documentService) createAndEnqueue(ctx context.Context, userId uuid.UUID, document *entity.Document) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return err
	}
	if err := uow.UserRepository().IncrementDocumentCount(ctx, userId, 1); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.PublishProcessDocumentMessage{DocumentId: document.Id})
	if err != nil {
		return err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return err
	}

	s.logger.Info("DocumentService", "Document queued for processing", map[string]interface{}{
		"document_id": document.Id,
		"file_name":   document.FileName,
	})
	return nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "uploaded_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		response = append(response, toDocumentResponse(document))
	}
	return response, nil
}

func (s *documentService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := s.findOwnedDocument(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(document), nil
}

func (s *documentService) GetChunks(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentChunksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := s.findOwnedDocument(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	embeddings, err := uow.DocumentEmbeddingRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: id},
		specification.OrderBy{Field: "chunk_index", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := &dto.DocumentChunksResponse{
		DocumentId: document.Id,
		FileName:   document.FileName,
		Chunks:     make([]dto.DocumentChunkResponse, 0, len(embeddings)),
	}
	for _, embedding := range embeddings {
		response.Chunks = append(response.Chunks, dto.DocumentChunkResponse{
			ChunkIndex: embedding.ChunkIndex,
			ChunkText:  embedding.ChunkText,
		})
	}
	return response, nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := s.findOwnedDocument(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.UserRepository().IncrementDocumentCount(ctx, userId, -1); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// The row is gone, a leftover file is only disk noise
	if document.FilePath != "" {
		if err := os.Remove(document.FilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("DocumentService", "Failed to remove stored file", map[string]interface{}{
				"document_id": id,
				"error":       err.Error(),
			})
		}
	}

	return nil
}

func (s *documentService) SemanticSearch(ctx context.Context, userId uuid.UUID, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchHit, error) {
	config := s.searchConfig
	if req.Limit > 0 {
		config.TopK = req.Limit
	}
	if req.ScoreThreshold != nil {
		config.ScoreThreshold = *req.ScoreThreshold
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := s.documentSearch.Execute(ctx, uow, userId, req.Query, config)
	if err != nil {
		return nil, err
	}

	hits := make([]*dto.SemanticSearchHit, 0, len(chunks))
	for _, chunk := range chunks {
		documentId, err := uuid.Parse(chunk.ID)
		if err != nil {
			continue
		}
		hits = append(hits, &dto.SemanticSearchHit{
			DocumentId: documentId,
			FileName:   chunk.Title,
			ChunkText:  chunk.Content,
			Score:      float64(chunk.Score),
		})
	}
	return hits, nil
}

func (s *documentService) findOwnedDocument(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, &dto.NotFoundError{Resource: "document"}
	}
	return document, nil
}

func (s *documentService) saveUploadedFile(file *multipart.FileHeader, dst string) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func toDocumentResponse(document *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           document.Id,
		FileName:     document.FileName,
		FileType:     document.FileType,
		SourceURL:    document.SourceURL,
		SizeBytes:    document.SizeBytes,
		Status:       document.Status,
		ChunkCount:   document.ChunkCount,
		ErrorMessage: document.ErrorMessage,
		UploadedAt:   document.UploadedAt,
		ProcessedAt:  document.ProcessedAt,
	}
}
