package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mcq-writer-be/internal/constant"
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/memory"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/events"
	"mcq-writer-be/pkg/imagen"
	"mcq-writer-be/pkg/llm"
	"mcq-writer-be/pkg/media"
	pktNats "mcq-writer-be/pkg/nats"
	"mcq-writer-be/pkg/store"
	"mcq-writer-be/pkg/utils"

	"github.com/google/uuid"
)

type IMCQService interface {
	Generate(ctx context.Context, userId string, req *dto.GenerateMCQRequest) (*dto.MCQResponse, error)
	Refine(ctx context.Context, userId string, req *dto.RefineMCQRequest) (*dto.MCQResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateMCQStatusRequest) (*dto.MCQResponse, error)
	GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error)
	RemoveImage(ctx context.Context, id uuid.UUID) (*dto.MCQResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.MCQResponse, error)
	List(ctx context.Context, status string) ([]*dto.MCQResponse, error)
}

type mcqService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	imageProvider  imagen.ImageProvider
	mediaStore     *media.Store
	draftRepo      *memory.DraftRepository
	kbService      IKBService
	eventPublisher *pktNats.Publisher
	modelName      string
}

func NewMCQService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	imageProvider imagen.ImageProvider,
	mediaStore *media.Store,
	draftRepo *memory.DraftRepository,
	kbService IKBService,
	eventPublisher *pktNats.Publisher,
	modelName string,
) IMCQService {
	return &mcqService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		imageProvider:  imageProvider,
		mediaStore:     mediaStore,
		draftRepo:      draftRepo,
		kbService:      kbService,
		eventPublisher: eventPublisher,
		modelName:      modelName,
	}
}

// mcqPayload mirrors the JSON schema the author and refiner prompts demand.
type mcqPayload struct {
	MCQ struct {
		Stem          string   `json:"stem"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectOption int      `json:"correct_option"`
	} `json:"mcq"`
	Triplets []struct {
		Subject  string `json:"subject"`
		Action   string `json:"action"`
		Object   string `json:"object"`
		Relation string `json:"relation"`
	} `json:"triplets"`
	VisualPrompt string `json:"visual_prompt"`
}

func parseMCQPayload(raw string) (*mcqPayload, error) {
	cleaned := utils.StripCodeFences(raw)

	var payload mcqPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("model returned non-JSON output: %w", err)
	}

	if len(payload.MCQ.Options) != entity.MCQOptionCount {
		return nil, fmt.Errorf("expected %d options, got %d", entity.MCQOptionCount, len(payload.MCQ.Options))
	}
	if payload.MCQ.CorrectOption < 0 || payload.MCQ.CorrectOption >= entity.MCQOptionCount {
		return nil, fmt.Errorf("correct_option %d out of range", payload.MCQ.CorrectOption)
	}
	if payload.MCQ.Question == "" {
		return nil, fmt.Errorf("question text is empty")
	}
	if len(payload.Triplets) == 0 {
		return nil, fmt.Errorf("no triplets in response")
	}
	return &payload, nil
}

// Generate authors a question from a registered source, then runs the
// fixed critique/refine loop before persisting. The loop always runs
// the full number of rounds; there is no convergence check.
func (s *mcqService) Generate(ctx context.Context, userId string, req *dto.GenerateMCQRequest) (*dto.MCQResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.SourceRepository().FindOne(ctx, specification.BySourceKey{SourceId: req.SourceId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("source %s is not registered", req.SourceId)
	}

	content := truncate(source.Content, constant.MCQGenerateContentLimit)
	excerpt := truncate(source.Content, constant.MCQRefineContentLimit)

	modelName := s.modelName
	if req.Model != "" {
		modelName = req.Model
	}

	prompt := fmt.Sprintf(constant.MCQAuthorPromptV1, source.Title, content)
	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.7), llm.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("authoring failed: %w", err)
	}

	payload, err := parseMCQPayload(raw)
	if err != nil {
		return nil, err
	}
	currentJson := utils.StripCodeFences(raw)

	instruction := req.Instruction
	if instruction == "" {
		instruction = "Ensure the question is board-exam quality and unambiguous."
	}

	refined, critiques := s.runCritiqueRounds(ctx, instruction, currentJson, source.Title, excerpt, modelName)
	if refined != nil {
		payload = refined
	}

	mcq := &entity.MCQ{
		Id:            uuid.New(),
		Stem:          payload.MCQ.Stem,
		Question:      payload.MCQ.Question,
		Options:       payload.MCQ.Options,
		CorrectOption: payload.MCQ.CorrectOption,
		SourceId:      source.Id,
		VisualPrompt:  payload.VisualPrompt,
		Status:        entity.MCQStatusDraft,
		Model:         modelName,
		CreatedAt:     time.Now(),
	}

	tripletIds, err := s.upsertTriplets(ctx, source.Id, payload)
	if err != nil {
		return nil, err
	}
	mcq.TripletIds = tripletIds

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MCQRepository().Create(ctx, mcq); err != nil {
		return nil, err
	}
	if err := uow.MCQRepository().LinkTriplets(ctx, mcq.Id, tripletIds); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.draftRepo.Save(&store.Draft{
		ID:              mcq.Id.String(),
		UserID:          userId,
		State:           store.StateReviewed,
		SourceExcerpt:   excerpt,
		Critiques:       critiques,
		Rounds:          len(critiques),
		LastInstruction: instruction,
	})

	return s.toMCQResponse(mcq, source.SourceId), nil
}

// runCritiqueRounds runs the fixed critic/refiner loop over a draft.
// Each round critiques the current JSON against the instruction, then
// asks the refiner for a revision. A malformed revision never replaces
// a valid draft; LLM transport errors end the loop early. Returns the
// last valid revision, or nil when no round produced one.
func (s *mcqService) runCritiqueRounds(ctx context.Context, instruction, currentJson, title, excerpt, modelName string) (*mcqPayload, []store.CritiqueNote) {
	var payload *mcqPayload
	critiques := make([]store.CritiqueNote, 0, constant.MCQRefineRounds)

	for round := 1; round <= constant.MCQRefineRounds; round++ {
		criticPrompt := fmt.Sprintf(constant.MCQCriticPromptV1, instruction, currentJson, excerpt)
		feedback, err := s.llmProvider.Generate(ctx, criticPrompt, llm.WithTemperature(0.3), llm.WithModel(modelName))
		if err != nil {
			fmt.Printf("[WARN] Critique round %d failed, keeping current draft: %v\n", round, err)
			break
		}
		critiques = append(critiques, store.CritiqueNote{Round: round, Feedback: feedback})

		refinerPrompt := fmt.Sprintf(constant.MCQRefinerPromptV1, feedback, currentJson, title, excerpt)
		refinedRaw, err := s.llmProvider.Generate(ctx, refinerPrompt, llm.WithTemperature(0.7), llm.WithModel(modelName))
		if err != nil {
			fmt.Printf("[WARN] Refine round %d failed, keeping current draft: %v\n", round, err)
			break
		}

		refined, err := parseMCQPayload(refinedRaw)
		if err != nil {
			fmt.Printf("[WARN] Refine round %d returned invalid JSON, keeping current draft: %v\n", round, err)
			continue
		}
		payload = refined
		currentJson = utils.StripCodeFences(refinedRaw)
	}

	return payload, critiques
}

// Refine reruns the full critique/refine loop on an existing question,
// seeded with the reviewer's feedback. The source excerpt comes from the
// draft cache when warm, otherwise it is re-read from the source row.
func (s *mcqService) Refine(ctx context.Context, userId string, req *dto.RefineMCQRequest) (*dto.MCQResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mcq, err := uow.MCQRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if mcq == nil {
		return nil, nil // Not found
	}

	source, err := uow.SourceRepository().FindOne(ctx, specification.ByID{ID: mcq.SourceId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("source %s for question %s is missing", mcq.SourceId, mcq.Id)
	}

	draft, cached := s.draftRepo.Get(mcq.Id.String())
	excerpt := ""
	if cached {
		excerpt = draft.SourceExcerpt
	}
	if excerpt == "" {
		excerpt = truncate(source.Content, constant.MCQRefineContentLimit)
	}

	currentJson, err := marshalMCQPayload(mcq)
	if err != nil {
		return nil, err
	}

	modelName := mcq.Model
	if req.Model != "" {
		modelName = req.Model
	}
	if modelName == "" {
		modelName = s.modelName
	}

	payload, notes := s.runCritiqueRounds(ctx, req.Feedback, currentJson, source.Title, excerpt, modelName)
	if payload == nil {
		return nil, fmt.Errorf("refinement produced no valid revision for question %s", mcq.Id)
	}

	mcq.Stem = payload.MCQ.Stem
	mcq.Question = payload.MCQ.Question
	mcq.Options = payload.MCQ.Options
	mcq.CorrectOption = payload.MCQ.CorrectOption
	if payload.VisualPrompt != "" {
		mcq.VisualPrompt = payload.VisualPrompt
	}
	mcq.Status = entity.MCQStatusDraft
	mcq.Model = modelName

	tripletIds, err := s.upsertTriplets(ctx, source.Id, payload)
	if err != nil {
		return nil, err
	}
	mcq.TripletIds = tripletIds

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MCQRepository().Update(ctx, mcq); err != nil {
		return nil, err
	}
	if err := uow.MCQRepository().ReplaceTriplets(ctx, mcq.Id, tripletIds); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if !cached {
		draft = &store.Draft{
			ID:            mcq.Id.String(),
			UserID:        userId,
			SourceExcerpt: excerpt,
		}
	}
	draft.State = store.StateReviewed
	for _, note := range notes {
		draft.Rounds++
		draft.Critiques = append(draft.Critiques, store.CritiqueNote{
			Round:    draft.Rounds,
			Feedback: note.Feedback,
		})
	}
	s.draftRepo.Save(draft)

	return s.toMCQResponse(mcq, source.SourceId), nil
}

func (s *mcqService) UpdateStatus(ctx context.Context, req *dto.UpdateMCQStatusRequest) (*dto.MCQResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mcq, err := uow.MCQRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if mcq == nil {
		return nil, nil // Not found
	}

	// Approval requires at least one linked triplet from the source.
	if req.Status == entity.MCQStatusApproved {
		tripletIds, err := uow.MCQRepository().FindTripletIds(ctx, mcq.Id)
		if err != nil {
			return nil, err
		}
		if len(tripletIds) == 0 {
			return nil, fmt.Errorf("question %s has no linked triplets and cannot be approved", mcq.Id)
		}
	}

	mcq.Status = req.Status
	if err := uow.MCQRepository().Update(ctx, mcq); err != nil {
		return nil, err
	}

	if req.Status == entity.MCQStatusApproved && s.eventPublisher != nil {
		evt := events.NewMCQApproved(mcq.Id.String(), mcq.SourceId.String())
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MCQ_APPROVED event: %v\n", err)
		}
	}

	return s.toMCQResponse(mcq, s.sourceKey(ctx, uow, mcq.SourceId)), nil
}

// GenerateImage renders the stored visual prompt and attaches the
// resulting file to the question. A repeated call overwrites the image.
func (s *mcqService) GenerateImage(ctx context.Context, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	if s.imageProvider == nil {
		return nil, fmt.Errorf("image generation is not configured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	mcq, err := uow.MCQRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if mcq == nil {
		return nil, nil // Not found
	}
	if mcq.VisualPrompt == "" {
		return nil, fmt.Errorf("question %s has no visual prompt", mcq.Id)
	}

	size := imagen.ParseSize(req.Size)
	data, err := s.imageProvider.Generate(ctx, mcq.VisualPrompt, size)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	imagePath, err := s.mediaStore.SaveMCQImage(mcq.Id.String(), data)
	if err != nil {
		return nil, err
	}

	mcq.ImagePath = imagePath
	if err := uow.MCQRepository().Update(ctx, mcq); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewImageAttached(mcq.Id.String(), imagePath)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish IMAGE_ATTACHED event: %v\n", err)
		}
	}

	return &dto.GenerateImageResponse{
		Id:        mcq.Id,
		ImagePath: imagePath,
	}, nil
}

// RemoveImage deletes the stored illustration and clears the path.
func (s *mcqService) RemoveImage(ctx context.Context, id uuid.UUID) (*dto.MCQResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mcq, err := uow.MCQRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if mcq == nil {
		return nil, nil // Not found
	}

	if mcq.ImagePath != "" {
		if err := s.mediaStore.Remove(mcq.ImagePath); err != nil {
			return nil, err
		}
		mcq.ImagePath = ""
		if err := uow.MCQRepository().Update(ctx, mcq); err != nil {
			return nil, err
		}
	}

	return s.toMCQResponse(mcq, s.sourceKey(ctx, uow, mcq.SourceId)), nil
}

func (s *mcqService) Show(ctx context.Context, id uuid.UUID) (*dto.MCQResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	mcq, err := uow.MCQRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if mcq == nil {
		return nil, nil // Not found
	}
	return s.toMCQResponse(mcq, s.sourceKey(ctx, uow, mcq.SourceId)), nil
}

func (s *mcqService) List(ctx context.Context, status string) ([]*dto.MCQResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	mcqs, err := uow.MCQRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MCQResponse, 0, len(mcqs))
	for _, m := range mcqs {
		res = append(res, s.toMCQResponse(m, s.sourceKey(ctx, uow, m.SourceId)))
	}
	return res, nil
}

// upsertTriplets stores the generated triplets as pending knowledge-base
// rows and returns their ids in payload order.
func (s *mcqService) upsertTriplets(ctx context.Context, sourceId uuid.UUID, payload *mcqPayload) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(payload.Triplets))
	for _, t := range payload.Triplets {
		if t.Subject == "" || t.Action == "" || t.Object == "" {
			continue
		}
		stored, err := s.kbService.UpsertTriplet(ctx, &entity.Triplet{
			Subject:     t.Subject,
			Action:      t.Action,
			Object:      t.Object,
			Relation:    t.Relation,
			SourceId:    sourceId,
			SchemaValid: true,
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, stored.Id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no valid triplets in response")
	}
	return ids, nil
}

// marshalMCQPayload rebuilds the prompt-schema JSON from a persisted
// question so refinement can hand the model its previous answer.
func marshalMCQPayload(mcq *entity.MCQ) (string, error) {
	payload := map[string]interface{}{
		"mcq": map[string]interface{}{
			"stem":           mcq.Stem,
			"question":       mcq.Question,
			"options":        mcq.Options,
			"correct_option": mcq.CorrectOption,
		},
		"visual_prompt": mcq.VisualPrompt,
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *mcqService) sourceKey(ctx context.Context, uow unitofwork.UnitOfWork, sourceId uuid.UUID) string {
	source, err := uow.SourceRepository().FindOne(ctx, specification.ByID{ID: sourceId})
	if err != nil || source == nil {
		return ""
	}
	return source.SourceId
}

func (s *mcqService) toMCQResponse(mcq *entity.MCQ, sourceKey string) *dto.MCQResponse {
	tripletIds := make([]string, 0, len(mcq.TripletIds))
	for _, id := range mcq.TripletIds {
		tripletIds = append(tripletIds, id.String())
	}
	return &dto.MCQResponse{
		Id:            mcq.Id,
		Stem:          mcq.Stem,
		Question:      mcq.Question,
		Options:       mcq.Options,
		CorrectOption: mcq.CorrectOption,
		SourceId:      sourceKey,
		TripletIds:    tripletIds,
		VisualPrompt:  mcq.VisualPrompt,
		ImagePath:     mcq.ImagePath,
		Status:        mcq.Status,
		Model:         mcq.Model,
		CreatedAt:     mcq.CreatedAt,
		UpdatedAt:     mcq.UpdatedAt,
	}
}

// truncate cuts on rune boundaries so a multi-byte character is never
// split into invalid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
