package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"mcq-writer-be/internal/constant"
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/contract"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/llm"

	"github.com/google/uuid"
)

// --- in-memory fakes ---

type fakeSessionStore struct {
	sessions []*entity.ReviewSession
	events   []*entity.SessionEvent

	failSessionCreate bool
}

type fakeUnitOfWork struct {
	store *fakeSessionStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) SourceRepository() contract.SourceRepository   { return nil }
func (u *fakeUnitOfWork) TripletRepository() contract.TripletRepository { return nil }
func (u *fakeUnitOfWork) TripletEmbeddingRepository() contract.TripletEmbeddingRepository {
	return nil
}
func (u *fakeUnitOfWork) MCQRepository() contract.MCQRepository { return nil }

func (u *fakeUnitOfWork) ReviewSessionRepository() contract.ReviewSessionRepository {
	return &fakeReviewSessionRepo{store: u.store}
}

func (u *fakeUnitOfWork) SessionEventRepository() contract.SessionEventRepository {
	return &fakeSessionEventRepo{store: u.store}
}

type fakeFactory struct {
	store *fakeSessionStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeReviewSessionRepo struct {
	store *fakeSessionStore
}

func (r *fakeReviewSessionRepo) Create(ctx context.Context, session *entity.ReviewSession) error {
	if r.store.failSessionCreate {
		return fmt.Errorf("database is down")
	}
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *fakeReviewSessionRepo) Update(ctx context.Context, session *entity.ReviewSession) error {
	return nil
}

func (r *fakeReviewSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeReviewSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReviewSession, error) {
	matches := r.filter(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[len(matches)-1], nil
}

func (r *fakeReviewSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReviewSession, error) {
	return r.filter(specs), nil
}

func (r *fakeReviewSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

func (r *fakeReviewSessionRepo) filter(specs []specification.Specification) []*entity.ReviewSession {
	var out []*entity.ReviewSession
	for _, s := range r.store.sessions {
		keep := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByUser:
				if s.UserId != sp.UserId {
					keep = false
				}
			case specification.BySessionKey:
				if s.SessionId != sp.SessionId {
					keep = false
				}
			}
		}
		if keep {
			out = append(out, s)
		}
	}
	return out
}

type fakeSessionEventRepo struct {
	store *fakeSessionStore
}

func (r *fakeSessionEventRepo) Create(ctx context.Context, event *entity.SessionEvent) error {
	r.store.events = append(r.store.events, event)
	return nil
}

func (r *fakeSessionEventRepo) Update(ctx context.Context, event *entity.SessionEvent) error {
	return nil
}

func (r *fakeSessionEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionEvent, error) {
	out := r.filter(specs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Turn < out[j].Turn })
	return out, nil
}

func (r *fakeSessionEventRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

func (r *fakeSessionEventRepo) MarkCompacted(ctx context.Context, ids []uuid.UUID) error {
	marked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	for _, e := range r.store.events {
		if marked[e.Id] {
			e.Compacted = true
		}
	}
	return nil
}

func (r *fakeSessionEventRepo) filter(specs []specification.Specification) []*entity.SessionEvent {
	var out []*entity.SessionEvent
	for _, e := range r.store.events {
		keep := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.BySession:
				if e.SessionId != sp.SessionId {
					keep = false
				}
			case specification.Uncompacted:
				if e.Compacted {
					keep = false
				}
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}

type fakeLLM struct {
	response string
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, nil
}

// --- tests ---

func TestSessionCreateReturnsIdOnPersistFailure(t *testing.T) {
	store := &fakeSessionStore{failSessionCreate: true}
	svc := NewSessionService(&fakeFactory{store: store}, &fakeLLM{})

	res, err := svc.Create(context.Background(), "reviewer-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(res.SessionId, "session_") {
		t.Errorf("SessionId = %q, want session_ prefix", res.SessionId)
	}
	if res.Persisted {
		t.Error("Persisted = true, want false when the write fails")
	}
}

func TestSessionLastReturnsMostRecent(t *testing.T) {
	store := &fakeSessionStore{}
	svc := NewSessionService(&fakeFactory{store: store}, &fakeLLM{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "reviewer-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.sessions[0].SessionId = "session_100"
	if _, err := svc.Create(ctx, "reviewer-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.sessions[1].SessionId = "session_200"

	res, err := svc.Last(ctx, "reviewer-1")
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if res == nil {
		t.Fatal("Last() = nil, want session")
	}
	if res.SessionId != "session_200" {
		t.Errorf("SessionId = %q, want session_200", res.SessionId)
	}

	if res, _ := svc.Last(ctx, "reviewer-2"); res != nil {
		t.Errorf("Last() for unknown user = %+v, want nil", res)
	}
}

func TestSessionCompaction(t *testing.T) {
	store := &fakeSessionStore{}
	llmFake := &fakeLLM{response: "Reviewer approved two questions about metformin."}
	svc := NewSessionService(&fakeFactory{store: store}, llmFake)
	ctx := context.Background()

	created, err := svc.Create(ctx, "reviewer-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Fill up to one turn below the compaction interval: no summary yet.
	for i := 0; i < constant.SessionCompactionInterval-1; i++ {
		role := entity.EventRoleUser
		if i%2 == 1 {
			role = entity.EventRoleModel
		}
		if _, err := svc.AppendEvent(ctx, "reviewer-1", &dto.AppendEventRequest{
			SessionId: created.SessionId,
			Role:      role,
			Content:   fmt.Sprintf("turn %d", i+1),
		}); err != nil {
			t.Fatalf("AppendEvent() error = %v", err)
		}
	}
	if llmFake.calls != 0 {
		t.Fatalf("summary generated too early (%d llm calls)", llmFake.calls)
	}

	// The interval-th turn triggers compaction.
	if _, err := svc.AppendEvent(ctx, "reviewer-1", &dto.AppendEventRequest{
		SessionId: created.SessionId,
		Role:      entity.EventRoleUser,
		Content:   "turn 5",
	}); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}
	if llmFake.calls != 1 {
		t.Fatalf("got %d llm calls, want 1", llmFake.calls)
	}

	res, err := svc.Restore(ctx, "reviewer-1", created.SessionId)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	// Live view: one summary plus the overlap turns kept verbatim.
	wantLive := 1 + constant.SessionCompactionOverlap
	if len(res.Events) != wantLive {
		t.Fatalf("got %d live events, want %d: %+v", len(res.Events), wantLive, res.Events)
	}

	var summaries, verbatim int
	for _, e := range res.Events {
		if e.Role == entity.EventRoleSummary {
			summaries++
			if e.Content != llmFake.response {
				t.Errorf("summary content = %q", e.Content)
			}
		} else {
			verbatim++
		}
	}
	if summaries != 1 {
		t.Errorf("got %d summaries, want 1", summaries)
	}
	if verbatim != constant.SessionCompactionOverlap {
		t.Errorf("got %d verbatim turns, want %d", verbatim, constant.SessionCompactionOverlap)
	}

	// The full event log still holds every turn.
	all, err := svc.ListEvents(ctx, "reviewer-1", created.SessionId)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(all) != constant.SessionCompactionInterval+1 {
		t.Errorf("got %d total events, want %d", len(all), constant.SessionCompactionInterval+1)
	}
}
