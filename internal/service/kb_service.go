package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/embedding"
	"mcq-writer-be/pkg/provenance"

	"github.com/google/uuid"
)

const distractorQueryLimit = 10

type IKBService interface {
	ListTriplets(ctx context.Context, status string, sourceId *uuid.UUID) ([]*dto.TripletResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateTripletStatusRequest) (*dto.TripletResponse, error)
	EditTriplet(ctx context.Context, req *dto.EditTripletRequest) (*dto.TripletResponse, error)
	QueryDistractors(ctx context.Context, req *dto.DistractorQueryRequest) (*dto.DistractorQueryResponse, error)
	CheckProvenance(ctx context.Context, tripletId uuid.UUID) (*dto.ProvenanceCheckResponse, error)
	UpsertTriplet(ctx context.Context, triplet *entity.Triplet) (*entity.Triplet, error)
}

type kbService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	vectorEnabled     bool
}

func NewKBService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	vectorEnabled bool,
) IKBService {
	return &kbService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		vectorEnabled:     vectorEnabled,
	}
}

// UpsertTriplet stores a triplet keyed by (subject, action, object, source).
// An existing row keeps its id and status; context sentences and schema
// validity are refreshed.
func (s *kbService) UpsertTriplet(ctx context.Context, triplet *entity.Triplet) (*entity.Triplet, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.TripletRepository().FindOne(ctx, specification.TripletKey{
		Subject:  triplet.Subject,
		Action:   triplet.Action,
		Object:   triplet.Object,
		SourceId: triplet.SourceId,
	})
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if len(triplet.ContextSentences) > 0 {
			existing.ContextSentences = triplet.ContextSentences
		}
		existing.SchemaValid = triplet.SchemaValid
		if triplet.Relation != "" {
			existing.Relation = triplet.Relation
		}
		if err := uow.TripletRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if triplet.Id == uuid.Nil {
		triplet.Id = uuid.New()
	}
	triplet.Status = entity.TripletStatusPending
	triplet.CreatedAt = time.Now()
	if err := uow.TripletRepository().Create(ctx, triplet); err != nil {
		return nil, err
	}
	return triplet, nil
}

func (s *kbService) ListTriplets(ctx context.Context, status string, sourceId *uuid.UUID) ([]*dto.TripletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	if sourceId != nil {
		specs = append(specs, specification.BySource{SourceId: *sourceId})
	}

	triplets, err := uow.TripletRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TripletResponse, 0, len(triplets))
	for _, t := range triplets {
		res = append(res, toTripletResponse(t))
	}
	return res, nil
}

func (s *kbService) UpdateStatus(ctx context.Context, req *dto.UpdateTripletStatusRequest) (*dto.TripletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	triplet, err := uow.TripletRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if triplet == nil {
		return nil, nil // Not found
	}

	triplet.Status = req.Status
	if err := uow.TripletRepository().Update(ctx, triplet); err != nil {
		return nil, err
	}

	// Accepted triplets join the similarity index; anything else leaves it.
	if s.vectorEnabled && s.embeddingProvider != nil {
		if req.Status == entity.TripletStatusAccepted {
			if err := s.indexTriplet(ctx, uow, triplet); err != nil {
				fmt.Printf("[WARN] Failed to index triplet %s: %v\n", triplet.Id, err)
			}
		} else {
			if err := uow.TripletEmbeddingRepository().DeleteByTripletId(ctx, triplet.Id); err != nil {
				fmt.Printf("[WARN] Failed to deindex triplet %s: %v\n", triplet.Id, err)
			}
		}
	}

	return toTripletResponse(triplet), nil
}

func (s *kbService) EditTriplet(ctx context.Context, req *dto.EditTripletRequest) (*dto.TripletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	triplet, err := uow.TripletRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if triplet == nil {
		return nil, nil // Not found
	}

	triplet.Subject = req.Subject
	triplet.Action = req.Action
	triplet.Object = req.Object
	if req.Relation != "" {
		triplet.Relation = req.Relation
	}
	if req.ContextSentences != nil {
		triplet.ContextSentences = req.ContextSentences
	}

	// Edits invalidate prior provenance; re-verify against the source.
	source, err := uow.SourceRepository().FindOne(ctx, specification.ByID{ID: triplet.SourceId})
	if err != nil {
		return nil, err
	}
	if source != nil {
		triplet.SchemaValid = provenance.VerifyAll(source.Content, triplet.ContextSentences)
	}

	if err := uow.TripletRepository().Update(ctx, triplet); err != nil {
		return nil, err
	}
	return toTripletResponse(triplet), nil
}

// QueryDistractors runs the two documented knowledge-base queries over
// accepted triplets: same subject (swap action/object), and same
// action+object (swap subject). When neither criterion is given and the
// vector index is available, it falls back to embedding similarity.
func (s *kbService) QueryDistractors(ctx context.Context, req *dto.DistractorQueryRequest) (*dto.DistractorQueryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByStatus{Status: entity.TripletStatusAccepted},
		specification.Limit{N: distractorQueryLimit},
	}
	if req.Subject != "" {
		specs = append(specs, specification.SameSubject{Subject: req.Subject})
	}
	if req.Action != "" && req.Object != "" {
		specs = append(specs, specification.SameActionObject{Action: req.Action, Object: req.Object})
	}

	triplets, err := uow.TripletRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	if len(triplets) == 0 && s.vectorEnabled && s.embeddingProvider != nil {
		triplets, err = s.queryBySimilarity(ctx, uow, req)
		if err != nil {
			fmt.Printf("[WARN] Similarity fallback failed: %v\n", err)
			triplets = nil
		}
	}

	res := &dto.DistractorQueryResponse{
		Triplets: make([]dto.TripletResponse, 0, len(triplets)),
		Count:    len(triplets),
	}
	for _, t := range triplets {
		res.Triplets = append(res.Triplets, *toTripletResponse(t))
	}
	return res, nil
}

func (s *kbService) CheckProvenance(ctx context.Context, tripletId uuid.UUID) (*dto.ProvenanceCheckResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	triplet, err := uow.TripletRepository().FindOne(ctx, specification.ByID{ID: tripletId})
	if err != nil {
		return nil, err
	}
	if triplet == nil {
		return nil, nil // Not found
	}

	source, err := uow.SourceRepository().FindOne(ctx, specification.ByID{ID: triplet.SourceId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("source %s for triplet %s is missing", triplet.SourceId, triplet.Id)
	}

	res := &dto.ProvenanceCheckResponse{
		TripletId:   triplet.Id,
		AllVerified: true,
		Sentences:   make([]dto.SentenceCheck, 0, len(triplet.ContextSentences)),
	}
	for _, sentence := range triplet.ContextSentences {
		verified := provenance.Verify(source.Content, sentence)
		if !verified {
			res.AllVerified = false
		}
		res.Sentences = append(res.Sentences, dto.SentenceCheck{
			Sentence: sentence,
			Verified: verified,
		})
	}
	if len(triplet.ContextSentences) == 0 {
		res.AllVerified = false
	}
	return res, nil
}

func (s *kbService) indexTriplet(ctx context.Context, uow unitofwork.UnitOfWork, triplet *entity.Triplet) error {
	document := tripletDocument(triplet)
	res, err := s.embeddingProvider.Generate(document, "SEMANTIC_SIMILARITY")
	if err != nil {
		return err
	}
	return uow.TripletEmbeddingRepository().Upsert(ctx, &entity.TripletEmbedding{
		Id:             uuid.New(),
		TripletId:      triplet.Id,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      time.Now(),
	})
}

func (s *kbService) queryBySimilarity(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.DistractorQueryRequest) ([]*entity.Triplet, error) {
	query := strings.TrimSpace(strings.Join([]string{req.Subject, req.Action, req.Object}, " "))
	if query == "" {
		return nil, nil
	}

	res, err := s.embeddingProvider.Generate(query, "SEMANTIC_SIMILARITY")
	if err != nil {
		return nil, err
	}

	ids, err := uow.TripletEmbeddingRepository().FindNearest(ctx, res.Embedding.Values, distractorQueryLimit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return uow.TripletRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.ByStatus{Status: entity.TripletStatusAccepted},
	)
}

func tripletDocument(triplet *entity.Triplet) string {
	return fmt.Sprintf("%s %s %s", triplet.Subject, triplet.Action, triplet.Object)
}

func toTripletResponse(t *entity.Triplet) *dto.TripletResponse {
	return &dto.TripletResponse{
		Id:               t.Id,
		Subject:          t.Subject,
		Action:           t.Action,
		Object:           t.Object,
		Relation:         t.Relation,
		SourceId:         t.SourceId,
		ContextSentences: t.ContextSentences,
		SchemaValid:      t.SchemaValid,
		Status:           t.Status,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
