package service

import (
	"context"
	"testing"

	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/contract"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// --- in-memory fakes ---

type fakeKBStore struct {
	sources  []*entity.Source
	triplets []*entity.Triplet
}

type fakeKBUnitOfWork struct {
	store *fakeKBStore
}

func (u *fakeKBUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeKBUnitOfWork) Commit() error                   { return nil }
func (u *fakeKBUnitOfWork) Rollback() error                 { return nil }

func (u *fakeKBUnitOfWork) SourceRepository() contract.SourceRepository {
	return &fakeSourceRepo{store: u.store}
}

func (u *fakeKBUnitOfWork) TripletRepository() contract.TripletRepository {
	return &fakeTripletRepo{store: u.store}
}

func (u *fakeKBUnitOfWork) TripletEmbeddingRepository() contract.TripletEmbeddingRepository {
	return nil
}
func (u *fakeKBUnitOfWork) MCQRepository() contract.MCQRepository { return nil }
func (u *fakeKBUnitOfWork) ReviewSessionRepository() contract.ReviewSessionRepository {
	return nil
}
func (u *fakeKBUnitOfWork) SessionEventRepository() contract.SessionEventRepository { return nil }

type fakeKBFactory struct {
	store *fakeKBStore
}

func (f *fakeKBFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeKBUnitOfWork{store: f.store}
}

type fakeSourceRepo struct {
	store *fakeKBStore
}

func (r *fakeSourceRepo) Create(ctx context.Context, source *entity.Source) error {
	r.store.sources = append(r.store.sources, source)
	return nil
}

func (r *fakeSourceRepo) Update(ctx context.Context, source *entity.Source) error { return nil }
func (r *fakeSourceRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

func (r *fakeSourceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Source, error) {
	for _, s := range r.store.sources {
		if sourceMatches(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSourceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Source, error) {
	var out []*entity.Source
	for _, s := range r.store.sources {
		if sourceMatches(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSourceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func sourceMatches(s *entity.Source, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.BySourceKey:
			if s.SourceId != sp.SourceId {
				return false
			}
		}
	}
	return true
}

type fakeTripletRepo struct {
	store *fakeKBStore
}

func (r *fakeTripletRepo) Create(ctx context.Context, triplet *entity.Triplet) error {
	r.store.triplets = append(r.store.triplets, triplet)
	return nil
}

func (r *fakeTripletRepo) Update(ctx context.Context, triplet *entity.Triplet) error {
	for i, t := range r.store.triplets {
		if t.Id == triplet.Id {
			r.store.triplets[i] = triplet
			return nil
		}
	}
	return nil
}

func (r *fakeTripletRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeTripletRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Triplet, error) {
	for _, t := range r.store.triplets {
		if tripletMatches(t, specs) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTripletRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Triplet, error) {
	limit := 0
	var out []*entity.Triplet
	for _, spec := range specs {
		if l, ok := spec.(specification.Limit); ok {
			limit = l.N
		}
	}
	for _, t := range r.store.triplets {
		if tripletMatches(t, specs) {
			out = append(out, t)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTripletRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func tripletMatches(t *entity.Triplet, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if t.Id != sp.ID {
				return false
			}
		case specification.ByStatus:
			if t.Status != sp.Status {
				return false
			}
		case specification.BySource:
			if t.SourceId != sp.SourceId {
				return false
			}
		case specification.TripletKey:
			if t.Subject != sp.Subject || t.Action != sp.Action ||
				t.Object != sp.Object || t.SourceId != sp.SourceId {
				return false
			}
		case specification.SameSubject:
			if t.Subject != sp.Subject {
				return false
			}
		case specification.SameActionObject:
			if t.Action != sp.Action || t.Object != sp.Object {
				return false
			}
		}
	}
	return true
}

// --- tests ---

func TestUpsertTripletIsKeyedBySubjectActionObjectSource(t *testing.T) {
	store := &fakeKBStore{}
	svc := NewKBService(&fakeKBFactory{store: store}, nil, false)
	ctx := context.Background()

	sourceId := uuid.New()
	first, err := svc.UpsertTriplet(ctx, &entity.Triplet{
		Subject:          "Metformin",
		Action:           "treats",
		Object:           "type 2 diabetes",
		SourceId:         sourceId,
		ContextSentences: []string{"Metformin is first-line therapy."},
		SchemaValid:      true,
	})
	if err != nil {
		t.Fatalf("UpsertTriplet() error = %v", err)
	}
	if first.Status != entity.TripletStatusPending {
		t.Errorf("Status = %q, want pending", first.Status)
	}

	// Re-extraction of the same fact keeps the row and refreshes context.
	second, err := svc.UpsertTriplet(ctx, &entity.Triplet{
		Subject:          "Metformin",
		Action:           "treats",
		Object:           "type 2 diabetes",
		SourceId:         sourceId,
		ContextSentences: []string{"Metformin is first-line therapy.", "It reduces hepatic glucose production."},
		SchemaValid:      true,
	})
	if err != nil {
		t.Fatalf("UpsertTriplet() error = %v", err)
	}
	if second.Id != first.Id {
		t.Errorf("upsert created a new row (%s != %s)", second.Id, first.Id)
	}
	if len(store.triplets) != 1 {
		t.Fatalf("got %d triplets, want 1", len(store.triplets))
	}
	if len(store.triplets[0].ContextSentences) != 2 {
		t.Errorf("context sentences not refreshed: %v", store.triplets[0].ContextSentences)
	}

	// Same fact from another source is a distinct row.
	_, err = svc.UpsertTriplet(ctx, &entity.Triplet{
		Subject:  "Metformin",
		Action:   "treats",
		Object:   "type 2 diabetes",
		SourceId: uuid.New(),
	})
	if err != nil {
		t.Fatalf("UpsertTriplet() error = %v", err)
	}
	if len(store.triplets) != 2 {
		t.Errorf("got %d triplets, want 2", len(store.triplets))
	}
}

func TestQueryDistractorsAcceptedOnly(t *testing.T) {
	store := &fakeKBStore{}
	svc := NewKBService(&fakeKBFactory{store: store}, nil, false)
	ctx := context.Background()

	sourceId := uuid.New()
	store.triplets = []*entity.Triplet{
		{Id: uuid.New(), Subject: "Metformin", Action: "treats", Object: "type 2 diabetes", SourceId: sourceId, Status: entity.TripletStatusAccepted},
		{Id: uuid.New(), Subject: "Metformin", Action: "causes", Object: "lactic acidosis", SourceId: sourceId, Status: entity.TripletStatusAccepted},
		{Id: uuid.New(), Subject: "Metformin", Action: "reduces", Object: "hepatic glucose production", SourceId: sourceId, Status: entity.TripletStatusPending},
		{Id: uuid.New(), Subject: "Insulin", Action: "treats", Object: "type 2 diabetes", SourceId: sourceId, Status: entity.TripletStatusAccepted},
	}

	bySubject, err := svc.QueryDistractors(ctx, &dto.DistractorQueryRequest{Subject: "Metformin"})
	if err != nil {
		t.Fatalf("QueryDistractors() error = %v", err)
	}
	if bySubject.Count != 2 {
		t.Errorf("same-subject count = %d, want 2 (pending rows excluded)", bySubject.Count)
	}

	byActionObject, err := svc.QueryDistractors(ctx, &dto.DistractorQueryRequest{Action: "treats", Object: "type 2 diabetes"})
	if err != nil {
		t.Fatalf("QueryDistractors() error = %v", err)
	}
	if byActionObject.Count != 2 {
		t.Errorf("same-action-object count = %d, want 2", byActionObject.Count)
	}
}

func TestCheckProvenance(t *testing.T) {
	store := &fakeKBStore{}
	svc := NewKBService(&fakeKBFactory{store: store}, nil, false)
	ctx := context.Background()

	source := &entity.Source{
		Id:      uuid.New(),
		Content: "Metformin is first-line therapy. It reduces hepatic glucose production.",
	}
	store.sources = append(store.sources, source)

	triplet := &entity.Triplet{
		Id:       uuid.New(),
		Subject:  "Metformin",
		Action:   "treats",
		Object:   "type 2 diabetes",
		SourceId: source.Id,
		ContextSentences: []string{
			"Metformin is first-line therapy.",
			"Metformin cures type 1 diabetes.",
		},
	}
	store.triplets = append(store.triplets, triplet)

	res, err := svc.CheckProvenance(ctx, triplet.Id)
	if err != nil {
		t.Fatalf("CheckProvenance() error = %v", err)
	}
	if res.AllVerified {
		t.Error("AllVerified = true, want false with one fabricated sentence")
	}
	if len(res.Sentences) != 2 {
		t.Fatalf("got %d sentence checks, want 2", len(res.Sentences))
	}
	if !res.Sentences[0].Verified {
		t.Error("grounded sentence flagged as unverified")
	}
	if res.Sentences[1].Verified {
		t.Error("fabricated sentence flagged as verified")
	}

	if res, _ := svc.CheckProvenance(ctx, uuid.New()); res != nil {
		t.Errorf("CheckProvenance() for unknown id = %+v, want nil", res)
	}
}
