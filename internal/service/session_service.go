package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mcq-writer-be/internal/constant"
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/llm"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userId string) (*dto.CreateSessionResponse, error)
	Last(ctx context.Context, userId string) (*dto.SessionResponse, error)
	Restore(ctx context.Context, userId string, sessionId string) (*dto.RestoreSessionResponse, error)
	AppendEvent(ctx context.Context, userId string, req *dto.AppendEventRequest) (*dto.SessionEventResponse, error)
	ListEvents(ctx context.Context, userId string, sessionId string) ([]*dto.SessionEventResponse, error)
}

type sessionService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, llmProvider llm.LLMProvider) ISessionService {
	return &sessionService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
	}
}

// Create issues a new session identifier. The identifier is handed back
// even when the persistence write fails, flagged by Persisted, so a
// review can proceed without server-side history.
func (s *sessionService) Create(ctx context.Context, userId string) (*dto.CreateSessionResponse, error) {
	sessionId := fmt.Sprintf("session_%d", time.Now().Unix())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.ReviewSession{
		Id:        uuid.New(),
		SessionId: sessionId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	persisted := true
	if err := uow.ReviewSessionRepository().Create(ctx, session); err != nil {
		fmt.Printf("[WARN] Failed to persist session %s: %v\n", sessionId, err)
		persisted = false
	}

	return &dto.CreateSessionResponse{
		SessionId: sessionId,
		Persisted: persisted,
	}, nil
}

// Last returns the user's most recently created session.
func (s *sessionService) Last(ctx context.Context, userId string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ReviewSessionRepository().FindOne(ctx,
		specification.ByUser{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil // Not found
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) Restore(ctx context.Context, userId string, sessionId string) (*dto.RestoreSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil // Not found
	}

	// Restore returns the live view: summaries plus turns that have not
	// been folded away.
	events, err := uow.SessionEventRepository().FindAll(ctx,
		specification.BySession{SessionId: session.Id},
		specification.Uncompacted{},
		specification.OrderBy{Field: "turn", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.RestoreSessionResponse{
		Session: *toSessionResponse(session),
		Events:  make([]dto.SessionEventResponse, 0, len(events)),
	}
	for _, e := range events {
		res.Events = append(res.Events, *toSessionEventResponse(e))
	}
	return res, nil
}

// AppendEvent records one conversation turn and compacts the history
// when enough uncompacted turns have accumulated.
func (s *sessionService) AppendEvent(ctx context.Context, userId string, req *dto.AppendEventRequest) (*dto.SessionEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", req.SessionId)
	}

	count, err := uow.SessionEventRepository().Count(ctx, specification.BySession{SessionId: session.Id})
	if err != nil {
		return nil, err
	}

	event := &entity.SessionEvent{
		Id:        uuid.New(),
		SessionId: session.Id,
		Turn:      int(count) + 1,
		Role:      req.Role,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.SessionEventRepository().Create(ctx, event); err != nil {
		return nil, err
	}

	if err := s.maybeCompact(ctx, uow, session.Id); err != nil {
		// Compaction failure never loses the appended turn.
		fmt.Printf("[WARN] Compaction failed for session %s: %v\n", session.SessionId, err)
	}

	return toSessionEventResponse(event), nil
}

func (s *sessionService) ListEvents(ctx context.Context, userId string, sessionId string) ([]*dto.SessionEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionId)
	}

	events, err := uow.SessionEventRepository().FindAll(ctx,
		specification.BySession{SessionId: session.Id},
		specification.OrderBy{Field: "turn", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionEventResponse, 0, len(events))
	for _, e := range events {
		res = append(res, toSessionEventResponse(e))
	}
	return res, nil
}

// maybeCompact folds older uncompacted turns into a single summary event
// once the live window reaches the compaction interval, keeping the most
// recent overlap turns verbatim. Summary events themselves are never
// folded by counting but are included in the text handed to the model.
func (s *sessionService) maybeCompact(ctx context.Context, uow unitofwork.UnitOfWork, sessionRowId uuid.UUID) error {
	live, err := uow.SessionEventRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionRowId},
		specification.Uncompacted{},
		specification.OrderBy{Field: "turn", Desc: false},
	)
	if err != nil {
		return err
	}

	conversational := 0
	for _, e := range live {
		if e.Role != entity.EventRoleSummary {
			conversational++
		}
	}
	if conversational < constant.SessionCompactionInterval {
		return nil
	}
	if s.llmProvider == nil {
		return nil
	}

	// Everything except the trailing overlap gets folded.
	keepFrom := len(live) - constant.SessionCompactionOverlap
	if keepFrom <= 0 {
		return nil
	}
	toFold := live[:keepFrom]

	var sb strings.Builder
	for _, e := range toFold {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Role, e.Content))
	}

	summary, err := s.llmProvider.Generate(ctx,
		fmt.Sprintf(constant.SessionSummaryPromptV1, sb.String()),
		llm.WithTemperature(0.2),
	)
	if err != nil {
		return err
	}

	lastFolded := toFold[len(toFold)-1]
	summaryEvent := &entity.SessionEvent{
		Id:        uuid.New(),
		SessionId: sessionRowId,
		Turn:      lastFolded.Turn,
		Role:      entity.EventRoleSummary,
		Content:   summary,
		CreatedAt: time.Now(),
	}

	// The summary and the fold markers land together or not at all;
	// otherwise a retry would show the folded turns twice.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SessionEventRepository().Create(ctx, summaryEvent); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(toFold))
	for _, e := range toFold {
		ids = append(ids, e.Id)
	}
	if err := uow.SessionEventRepository().MarkCompacted(ctx, ids); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *sessionService) findSession(ctx context.Context, uow unitofwork.UnitOfWork, userId string, sessionId string) (*entity.ReviewSession, error) {
	return uow.ReviewSessionRepository().FindOne(ctx,
		specification.BySessionKey{SessionId: sessionId},
		specification.ByUser{UserId: userId},
	)
}

func toSessionResponse(session *entity.ReviewSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		SessionId: session.SessionId,
		UserId:    session.UserId,
		CreatedAt: session.CreatedAt,
	}
}

func toSessionEventResponse(event *entity.SessionEvent) *dto.SessionEventResponse {
	return &dto.SessionEventResponse{
		Id:        event.Id,
		Turn:      event.Turn,
		Role:      event.Role,
		Content:   event.Content,
		Compacted: event.Compacted,
		CreatedAt: event.CreatedAt,
	}
}
