package service

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/events"
	pktNats "mcq-writer-be/pkg/nats"
	"mcq-writer-be/pkg/pdfext"
	"mcq-writer-be/pkg/pubmed"

	"github.com/google/uuid"
)

const sourcePreviewLength = 500

type ISourceService interface {
	SearchPubMed(ctx context.Context, req *dto.PubMedSearchRequest) ([]*dto.PubMedArticleResponse, error)
	RegisterPubMed(ctx context.Context, userId string, req *dto.RegisterPubMedRequest) (*dto.RegisterSourceResponse, error)
	RegisterPDF(ctx context.Context, userId string, filename string, data []byte) (*dto.RegisterSourceResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowSourceResponse, error)
	List(ctx context.Context) ([]*dto.ShowSourceResponse, error)
}

type sourceService struct {
	uowFactory       unitofwork.RepositoryFactory
	pubmedClient     *pubmed.Client
	pdfExtractor     *pdfext.Extractor
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewSourceService(
	uowFactory unitofwork.RepositoryFactory,
	pubmedClient *pubmed.Client,
	pdfExtractor *pdfext.Extractor,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) ISourceService {
	return &sourceService{
		uowFactory:       uowFactory,
		pubmedClient:     pubmedClient,
		pdfExtractor:     pdfExtractor,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *sourceService) SearchPubMed(ctx context.Context, req *dto.PubMedSearchRequest) ([]*dto.PubMedArticleResponse, error) {
	pmids, err := s.pubmedClient.Search(ctx, req.Query, req.MaxResults)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return []*dto.PubMedArticleResponse{}, nil
	}

	articles, err := s.pubmedClient.Fetch(ctx, pmids)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PubMedArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, &dto.PubMedArticleResponse{
			PMID:     a.PMID,
			Title:    a.Title,
			Authors:  pubmed.FormatAuthors(a.Authors),
			Year:     formatYear(a.Year),
			Abstract: a.Abstract,
		})
	}
	return res, nil
}

func (s *sourceService) RegisterPubMed(ctx context.Context, userId string, req *dto.RegisterPubMedRequest) (*dto.RegisterSourceResponse, error) {
	// A "PMID:" prefix on input is tolerated.
	pmid := strings.TrimPrefix(strings.TrimSpace(req.PMID), "PMID:")
	sourceKey := fmt.Sprintf("PMID:%s", pmid)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Re-registration is idempotent: the existing row wins.
	existing, err := uow.SourceRepository().FindOne(ctx, specification.BySourceKey{SourceId: sourceKey})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.RegisterSourceResponse{
			Id:             existing.Id,
			SourceId:       existing.SourceId,
			SourceType:     existing.SourceType,
			Title:          existing.Title,
			AlreadyExisted: true,
		}, nil
	}

	article, err := s.pubmedClient.FetchOne(ctx, pmid)
	if err != nil {
		return nil, err
	}

	source := entity.Source{
		Id:         uuid.New(),
		SourceId:   sourceKey,
		SourceType: entity.SourceTypePubMed,
		Title:      article.Title,
		Authors:    pubmed.FormatAuthors(article.Authors),
		Content:    article.Abstract,
		CreatedAt:  time.Now(),
	}
	if article.Year > 0 {
		year := article.Year
		source.PublicationYear = &year
	}

	return s.persistAndQueue(ctx, uow, userId, &source)
}

func (s *sourceService) RegisterPDF(ctx context.Context, userId string, filename string, data []byte) (*dto.RegisterSourceResponse, error) {
	hash := md5.Sum([]byte(filename))
	sourceKey := fmt.Sprintf("pdf_%x", hash)[:12] // "pdf_" + first 8 hex chars

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SourceRepository().FindOne(ctx, specification.BySourceKey{SourceId: sourceKey})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.RegisterSourceResponse{
			Id:             existing.Id,
			SourceId:       existing.SourceId,
			SourceType:     existing.SourceType,
			Title:          existing.Title,
			AlreadyExisted: true,
		}, nil
	}

	content, err := s.pdfExtractor.ExtractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("pdf extraction failed: %w", err)
	}
	if content == "" {
		return nil, fmt.Errorf("no text could be extracted from %s", filename)
	}

	source := entity.Source{
		Id:         uuid.New(),
		SourceId:   sourceKey,
		SourceType: entity.SourceTypePDF,
		Title:      filename,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	return s.persistAndQueue(ctx, uow, userId, &source)
}

func (s *sourceService) persistAndQueue(ctx context.Context, uow unitofwork.UnitOfWork, userId string, source *entity.Source) (*dto.RegisterSourceResponse, error) {
	if err := uow.SourceRepository().Create(ctx, source); err != nil {
		return nil, err
	}

	// Queue async triplet extraction.
	extractionQueued := false
	msgPayload := dto.PublishExtractTripletsMessage{SourceId: source.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err == nil {
			extractionQueued = true
		} else {
			fmt.Printf("[WARN] Failed to queue triplet extraction for source %s: %v\n", source.Id, err)
		}
	}

	// Notify; auxiliary, never fails the request.
	if s.eventPublisher != nil {
		evt := events.NewSourceRegistered(source.SourceId, source.SourceType, source.Title, userId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish SOURCE_REGISTERED event: %v\n", err)
		}
	}

	return &dto.RegisterSourceResponse{
		Id:            source.Id,
		SourceId:      source.SourceId,
		SourceType:    source.SourceType,
		Title:         source.Title,
		ExtractionJob: extractionQueued,
	}, nil
}

func (s *sourceService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowSourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	source, err := uow.SourceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, nil // Not found
	}
	return toSourceResponse(source), nil
}

func (s *sourceService) List(ctx context.Context) ([]*dto.ShowSourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sources, err := uow.SourceRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ShowSourceResponse, 0, len(sources))
	for _, src := range sources {
		res = append(res, toSourceResponse(src))
	}
	return res, nil
}

func toSourceResponse(source *entity.Source) *dto.ShowSourceResponse {
	preview := truncate(source.Content, sourcePreviewLength)

	year := "Unknown"
	if source.PublicationYear != nil && *source.PublicationYear > 0 {
		year = strconv.Itoa(*source.PublicationYear)
	}

	return &dto.ShowSourceResponse{
		Id:              source.Id,
		SourceId:        source.SourceId,
		SourceType:      source.SourceType,
		Title:           source.Title,
		Authors:         source.Authors,
		PublicationYear: year,
		ContentPreview:  preview,
		CreatedAt:       source.CreatedAt,
		UpdatedAt:       source.UpdatedAt,
	}
}

func formatYear(year int) string {
	if year <= 0 {
		return "Unknown"
	}
	return strconv.Itoa(year)
}
