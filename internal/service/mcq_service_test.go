package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/contract"
	"mcq-writer-be/internal/repository/memory"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/llm"

	"github.com/google/uuid"
)

const validMCQJSON = `{
  "mcq": {
    "stem": "A 54-year-old presents with polyuria.",
    "question": "Which drug is first-line therapy?",
    "options": ["Metformin", "Insulin", "Glipizide", "Empagliflozin", "Acarbose"],
    "correct_option": 0
  },
  "triplets": [
    {"subject": "Metformin", "action": "treats", "object": "type 2 diabetes", "relation": "treats"}
  ],
  "visual_prompt": "A simple diagram of hepatic glucose production."
}`

func TestParseMCQPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid payload",
			raw:  validMCQJSON,
		},
		{
			name: "fenced payload",
			raw:  "```json\n" + validMCQJSON + "\n```",
		},
		{
			name:    "not json",
			raw:     "Sure! Here is your question: ...",
			wantErr: true,
		},
		{
			name:    "four options",
			raw:     strings.Replace(validMCQJSON, `, "Acarbose"`, "", 1),
			wantErr: true,
		},
		{
			name:    "correct option out of range",
			raw:     strings.Replace(validMCQJSON, `"correct_option": 0`, `"correct_option": 5`, 1),
			wantErr: true,
		},
		{
			name:    "negative correct option",
			raw:     strings.Replace(validMCQJSON, `"correct_option": 0`, `"correct_option": -1`, 1),
			wantErr: true,
		},
		{
			name:    "no triplets",
			raw:     strings.Replace(validMCQJSON, `{"subject": "Metformin", "action": "treats", "object": "type 2 diabetes", "relation": "treats"}`, "", 1),
			wantErr: true,
		},
		{
			name:    "empty question",
			raw:     strings.Replace(validMCQJSON, `"question": "Which drug is first-line therapy?"`, `"question": ""`, 1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := parseMCQPayload(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMCQPayload() error = %v", err)
			}
			if payload.MCQ.Question != "Which drug is first-line therapy?" {
				t.Errorf("Question = %q", payload.MCQ.Question)
			}
			if len(payload.MCQ.Options) != entity.MCQOptionCount {
				t.Errorf("got %d options, want %d", len(payload.MCQ.Options), entity.MCQOptionCount)
			}
			if payload.Triplets[0].Subject != "Metformin" {
				t.Errorf("triplet subject = %q", payload.Triplets[0].Subject)
			}
		})
	}
}

func TestMarshalMCQPayloadRoundTrip(t *testing.T) {
	mcq := &entity.MCQ{
		Id:            uuid.New(),
		Stem:          "A 54-year-old presents with polyuria.",
		Question:      "Which drug is first-line therapy?",
		Options:       []string{"Metformin", "Insulin", "Glipizide", "Empagliflozin", "Acarbose"},
		CorrectOption: 2,
		VisualPrompt:  "A diagram.",
	}

	raw, err := marshalMCQPayload(mcq)
	if err != nil {
		t.Fatalf("marshalMCQPayload() error = %v", err)
	}

	var decoded struct {
		MCQ struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectOption int      `json:"correct_option"`
		} `json:"mcq"`
		VisualPrompt string `json:"visual_prompt"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.MCQ.Question != mcq.Question {
		t.Errorf("question = %q, want %q", decoded.MCQ.Question, mcq.Question)
	}
	if decoded.MCQ.CorrectOption != 2 {
		t.Errorf("correct_option = %d, want 2", decoded.MCQ.CorrectOption)
	}
	if len(decoded.MCQ.Options) != 5 {
		t.Errorf("got %d options, want 5", len(decoded.MCQ.Options))
	}
	if decoded.VisualPrompt != "A diagram." {
		t.Errorf("visual_prompt = %q", decoded.VisualPrompt)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abcd" {
		t.Errorf("truncate() = %q, want %q", got, "abcd")
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate() = %q, want %q", got, "abc")
	}

	// A cut landing inside a multi-byte rune must not emit invalid UTF-8.
	got := truncate("µg/dL dosing", 2)
	if got != "µg" {
		t.Errorf("truncate() = %q, want %q", got, "µg")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncate() produced invalid UTF-8: %q", got)
	}
}

// --- generation pipeline fakes ---

// scriptedLLM replays a fixed list of responses in call order.
type scriptedLLM struct {
	responses []string
	calls     int
}

func (f *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.next()
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.next()
}

func (f *scriptedLLM) next() (string, error) {
	if f.calls >= len(f.responses) {
		return "", fmt.Errorf("unexpected llm call %d", f.calls+1)
	}
	r := f.responses[f.calls]
	f.calls++
	return r, nil
}

type fakeMCQStore struct {
	kb       *fakeKBStore
	mcqs     []*entity.MCQ
	links    map[uuid.UUID][]uuid.UUID
	failLink bool

	begins    int
	commits   int
	rollbacks int
}

func newFakeMCQStore() *fakeMCQStore {
	return &fakeMCQStore{
		kb:    &fakeKBStore{},
		links: make(map[uuid.UUID][]uuid.UUID),
	}
}

type fakeMCQUnitOfWork struct {
	store *fakeMCQStore
}

func (u *fakeMCQUnitOfWork) Begin(ctx context.Context) error {
	u.store.begins++
	return nil
}

func (u *fakeMCQUnitOfWork) Commit() error {
	u.store.commits++
	return nil
}

func (u *fakeMCQUnitOfWork) Rollback() error {
	u.store.rollbacks++
	return nil
}

func (u *fakeMCQUnitOfWork) SourceRepository() contract.SourceRepository {
	return &fakeSourceRepo{store: u.store.kb}
}

func (u *fakeMCQUnitOfWork) TripletRepository() contract.TripletRepository {
	return &fakeTripletRepo{store: u.store.kb}
}

func (u *fakeMCQUnitOfWork) MCQRepository() contract.MCQRepository {
	return &fakeMCQRepo{store: u.store}
}

func (u *fakeMCQUnitOfWork) TripletEmbeddingRepository() contract.TripletEmbeddingRepository {
	return nil
}
func (u *fakeMCQUnitOfWork) ReviewSessionRepository() contract.ReviewSessionRepository { return nil }
func (u *fakeMCQUnitOfWork) SessionEventRepository() contract.SessionEventRepository   { return nil }

type fakeMCQFactory struct {
	store *fakeMCQStore
}

func (f *fakeMCQFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeMCQUnitOfWork{store: f.store}
}

type fakeMCQRepo struct {
	store *fakeMCQStore
}

func (r *fakeMCQRepo) Create(ctx context.Context, mcq *entity.MCQ) error {
	r.store.mcqs = append(r.store.mcqs, mcq)
	return nil
}

func (r *fakeMCQRepo) Update(ctx context.Context, mcq *entity.MCQ) error {
	for i, m := range r.store.mcqs {
		if m.Id == mcq.Id {
			r.store.mcqs[i] = mcq
			return nil
		}
	}
	return nil
}

func (r *fakeMCQRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeMCQRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MCQ, error) {
	for _, m := range r.store.mcqs {
		if mcqMatches(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMCQRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MCQ, error) {
	var out []*entity.MCQ
	for _, m := range r.store.mcqs {
		if mcqMatches(m, specs) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMCQRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeMCQRepo) LinkTriplets(ctx context.Context, mcqId uuid.UUID, tripletIds []uuid.UUID) error {
	if r.store.failLink {
		return fmt.Errorf("link write rejected")
	}
	r.store.links[mcqId] = tripletIds
	return nil
}

func (r *fakeMCQRepo) ReplaceTriplets(ctx context.Context, mcqId uuid.UUID, tripletIds []uuid.UUID) error {
	r.store.links[mcqId] = tripletIds
	return nil
}

func (r *fakeMCQRepo) FindTripletIds(ctx context.Context, mcqId uuid.UUID) ([]uuid.UUID, error) {
	return r.store.links[mcqId], nil
}

func mcqMatches(m *entity.MCQ, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if m.Id != sp.ID {
				return false
			}
		case specification.ByStatus:
			if m.Status != sp.Status {
				return false
			}
		}
	}
	return true
}

func newTestMCQService(store *fakeMCQStore, provider llm.LLMProvider) IMCQService {
	kb := NewKBService(&fakeKBFactory{store: store.kb}, nil, false)
	return NewMCQService(&fakeMCQFactory{store: store}, provider, nil, nil, memory.NewDraftRepository(), kb, nil, "gemini-2.0-flash")
}

// --- pipeline tests ---

func TestGenerateRunsFixedCritiqueRounds(t *testing.T) {
	store := newFakeMCQStore()
	store.kb.sources = append(store.kb.sources, &entity.Source{
		Id:       uuid.New(),
		SourceId: "PMID:12345",
		Title:    "Metformin in type 2 diabetes",
		Content:  "Metformin is first-line therapy. It reduces hepatic glucose production.",
	})

	refined := strings.Replace(validMCQJSON,
		"Which drug is first-line therapy?",
		"Which drug is first-line therapy for type 2 diabetes?", 1)

	// Author, then two critique/refine rounds. The second refinement is
	// garbage and must not displace the round-one draft.
	provider := &scriptedLLM{responses: []string{
		validMCQJSON,
		"The question should name the condition.",
		refined,
		"Looks good.",
		"I cannot refine this further, sorry!",
	}}

	svc := newTestMCQService(store, provider)
	res, err := svc.Generate(context.Background(), "reviewer-1", &dto.GenerateMCQRequest{SourceId: "PMID:12345"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if provider.calls != 5 {
		t.Errorf("llm calls = %d, want 5 (author + 2 critique/refine rounds)", provider.calls)
	}
	if res.Question != "Which drug is first-line therapy for type 2 diabetes?" {
		t.Errorf("Question = %q, want the round-one refinement kept", res.Question)
	}
	if res.Status != entity.MCQStatusDraft {
		t.Errorf("Status = %q, want draft", res.Status)
	}
	if len(store.mcqs) != 1 {
		t.Fatalf("got %d persisted questions, want 1", len(store.mcqs))
	}
	if len(store.links[store.mcqs[0].Id]) == 0 {
		t.Error("no triplets linked to the persisted question")
	}
	if len(store.kb.triplets) != 1 {
		t.Fatalf("got %d triplets in the knowledge base, want 1", len(store.kb.triplets))
	}
	if store.kb.triplets[0].Status != entity.TripletStatusPending {
		t.Errorf("triplet status = %q, want pending", store.kb.triplets[0].Status)
	}
}

func TestRefineRunsFixedCritiqueRounds(t *testing.T) {
	store := newFakeMCQStore()
	source := &entity.Source{
		Id:       uuid.New(),
		SourceId: "PMID:12345",
		Title:    "Metformin in type 2 diabetes",
		Content:  "Metformin is first-line therapy. It reduces hepatic glucose production.",
	}
	store.kb.sources = append(store.kb.sources, source)

	mcq := &entity.MCQ{
		Id:            uuid.New(),
		Stem:          "A 54-year-old presents with polyuria.",
		Question:      "Which drug is first-line therapy?",
		Options:       []string{"Metformin", "Insulin", "Glipizide", "Empagliflozin", "Acarbose"},
		CorrectOption: 0,
		SourceId:      source.Id,
		Status:        entity.MCQStatusDraft,
	}
	store.mcqs = append(store.mcqs, mcq)

	refined := strings.Replace(validMCQJSON,
		"Which drug is first-line therapy?",
		"Which drug is first-line therapy for type 2 diabetes?", 1)

	// Two critique/refine rounds, seeded with the reviewer's feedback.
	// The second refinement is garbage and must not displace round one.
	provider := &scriptedLLM{responses: []string{
		"Name the condition in the question.",
		refined,
		"Looks good.",
		"I cannot refine this further, sorry!",
	}}

	svc := newTestMCQService(store, provider)
	res, err := svc.Refine(context.Background(), "reviewer-1", &dto.RefineMCQRequest{
		Id:       mcq.Id,
		Feedback: "Be explicit about the condition.",
	})
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}

	if provider.calls != 4 {
		t.Errorf("llm calls = %d, want 4 (2 critique/refine rounds)", provider.calls)
	}
	if res.Question != "Which drug is first-line therapy for type 2 diabetes?" {
		t.Errorf("Question = %q, want the round-one refinement kept", res.Question)
	}
	if len(store.links[mcq.Id]) == 0 {
		t.Error("refined question has no replaced triplet links")
	}
}

func TestGenerateRollsBackWhenLinkingFails(t *testing.T) {
	store := newFakeMCQStore()
	store.failLink = true
	store.kb.sources = append(store.kb.sources, &entity.Source{
		Id:       uuid.New(),
		SourceId: "PMID:12345",
		Title:    "Metformin in type 2 diabetes",
		Content:  "Metformin is first-line therapy.",
	})

	provider := &scriptedLLM{responses: []string{
		validMCQJSON,
		"Fine as is.",
		validMCQJSON,
		"Fine as is.",
		validMCQJSON,
	}}

	svc := newTestMCQService(store, provider)
	if _, err := svc.Generate(context.Background(), "reviewer-1", &dto.GenerateMCQRequest{SourceId: "PMID:12345"}); err == nil {
		t.Fatal("Generate() succeeded despite the link write failing")
	}

	if store.begins == 0 {
		t.Error("persistence ran outside a transaction")
	}
	if store.commits != 0 {
		t.Errorf("commits = %d, want 0 after a failed link write", store.commits)
	}
	if store.rollbacks == 0 {
		t.Error("failed transaction was never rolled back")
	}
}

func TestApprovalRequiresLinkedTriplets(t *testing.T) {
	store := newFakeMCQStore()
	mcq := &entity.MCQ{
		Id:       uuid.New(),
		Question: "Which drug is first-line therapy?",
		Options:  []string{"A", "B", "C", "D", "E"},
		SourceId: uuid.New(),
		Status:   entity.MCQStatusDraft,
	}
	store.mcqs = append(store.mcqs, mcq)

	svc := newTestMCQService(store, &scriptedLLM{})

	if _, err := svc.UpdateStatus(context.Background(), &dto.UpdateMCQStatusRequest{
		Id:     mcq.Id,
		Status: entity.MCQStatusApproved,
	}); err == nil {
		t.Fatal("approval succeeded with no linked triplets")
	}

	store.links[mcq.Id] = []uuid.UUID{uuid.New()}
	res, err := svc.UpdateStatus(context.Background(), &dto.UpdateMCQStatusRequest{
		Id:     mcq.Id,
		Status: entity.MCQStatusApproved,
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if res.Status != entity.MCQStatusApproved {
		t.Errorf("Status = %q, want approved", res.Status)
	}
}
