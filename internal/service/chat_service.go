package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"teen-coach-be/internal/dto"
	"teen-coach-be/internal/entity"
	"teen-coach-be/internal/repository/memory"
	"teen-coach-be/internal/repository/specification"
	"teen-coach-be/internal/repository/unitofwork"
	"teen-coach-be/internal/websocket"
	"teen-coach-be/pkg/coach"
	"teen-coach-be/pkg/events"
	"teen-coach-be/pkg/store"

	"github.com/google/uuid"
)

const sessionTitleLimit = 60

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

// chatService coordinates the per-turn pipeline with persistence, the
// in-memory conversation cache and the event bus.
type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	pipeline    *coach.Pipeline
	sessionRepo *memory.SessionRepository
	publisher   IPublisherService
	wsHub       *websocket.Hub
	coachLogger *log.Logger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *coach.Pipeline,
	sessionRepo *memory.SessionRepository,
	publisher IPublisherService,
	wsHub *websocket.Hub,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		pipeline:    pipeline,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		wsHub:       wsHub,
		coachLogger: initCoachLogger(),
	}
}

func initCoachLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "coach.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[COACH] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession creates a new chat session
func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	title := request.Title
	if title == "" {
		title = "Unnamed session"
	}

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Country:   request.Country,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.sessionRepo.Save(store.NewConversation(chatSession.Id.String(), chatSession.Country))

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

// GetAllSessions retrieves all chat sessions
func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			Country:   s.Country,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

// GetChatHistory retrieves the recorded turns for a session
func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(turns))
	for _, t := range turns {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:               t.Id,
			UserMessage:      t.UserMessage,
			AssistantMessage: t.AssistantMessage,
			Intent:           t.Intent,
			Tone:             t.Tone,
			RiskLevel:        t.RiskLevel,
			Crisis:           t.Crisis,
			CardTitles:       t.CardTitles,
			DocumentTitles:   t.DocumentTitles,
			CreatedAt:        t.CreatedAt,
		})
	}

	return resp, nil
}

// SendChat processes one user message through the pipeline and records the turn
func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: request.ChatSessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chatSession == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	conv, err := cs.loadConversation(ctx, uow, chatSession)
	if err != nil {
		return nil, err
	}

	result := cs.pipeline.Run(ctx, coach.TurnInput{
		Message: request.Message,
		Country: conv.Country,
		History: conv.History,
	})

	turn := buildTurnEntity(chatSession.Id, request.Message, result)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatTurnRepository().Create(ctx, &turn); err != nil {
		return nil, err
	}

	// Name the session after its first message
	if chatSession.Title == "Unnamed session" {
		chatSession.Title = truncateTitle(request.Message)
		if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	conv.AppendTurn(request.Message, result.Reply)
	cs.sessionRepo.Save(conv)

	cs.publishTurn(ctx, userId, &turn)
	cs.notifyClient(userId, &turn)

	cs.coachLogger.Printf("turn=%s session=%s intent=%s risk=%s crisis=%t cards=%d docs=%d",
		turn.Id, turn.ChatSessionId, turn.Intent, turn.RiskLevel, turn.Crisis,
		len(turn.CardTitles), len(turn.DocumentTitles))

	return buildSendChatResponse(&turn, result), nil
}

// DeleteSession removes a session and its recorded turns
func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: request.ChatSessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("session not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatTurnRepository().DeleteAllBySessionIdUnscoped(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.sessionRepo.Delete(request.ChatSessionId.String())
	return nil
}

// loadConversation returns the cached conversation state, rebuilding it from
// the persisted turns on a cache miss (e.g. after a restart).
func (cs *chatService) loadConversation(ctx context.Context, uow unitofwork.UnitOfWork, sess *entity.ChatSession) (*store.Conversation, error) {
	if conv, found := cs.sessionRepo.Get(sess.Id.String()); found {
		return conv, nil
	}

	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sess.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	conv := store.NewConversation(sess.Id.String(), sess.Country)
	for _, t := range turns {
		conv.AppendTurn(t.UserMessage, t.AssistantMessage)
	}
	return conv, nil
}

func (cs *chatService) publishTurn(ctx context.Context, userId uuid.UUID, turn *entity.ChatTurn) {
	payload := events.TurnRecordedPayload{
		TurnId:        turn.Id.String(),
		ChatSessionId: turn.ChatSessionId.String(),
		UserId:        userId.String(),
		Intent:        turn.Intent,
		Tone:          turn.Tone,
		RiskLevel:     turn.RiskLevel,
		Crisis:        turn.Crisis,
		CardTitles:    turn.CardTitles,
		Timestamp:     turn.CreatedAt,
	}
	if err := cs.publisher.PublishTurnRecorded(ctx, payload); err != nil {
		log.Printf("[WARN] Failed to publish turn event %s: %v", turn.Id, err)
	}
}

func (cs *chatService) notifyClient(userId uuid.UUID, turn *entity.ChatTurn) {
	if cs.wsHub == nil {
		return
	}
	cs.wsHub.SendTurnUpdate(userId, websocket.TurnUpdate{
		ChatSessionId: turn.ChatSessionId,
		TurnId:        turn.Id,
		Reply:         turn.AssistantMessage,
		Crisis:        turn.Crisis,
		Intent:        turn.Intent,
		RiskLevel:     turn.RiskLevel,
		CreatedAt:     turn.CreatedAt,
	})
}

func buildTurnEntity(sessionId uuid.UUID, userMessage string, result coach.TurnResult) entity.ChatTurn {
	turn := entity.ChatTurn{
		Id:               uuid.New(),
		ChatSessionId:    sessionId,
		UserMessage:      userMessage,
		AssistantMessage: result.Reply,
		Crisis:           result.Crisis,
		CreatedAt:        time.Now(),
	}

	if result.Crisis {
		turn.Intent = string(coach.IntentOther)
		turn.Tone = string(coach.ToneOther)
		turn.RiskLevel = string(coach.RiskHigh)
		return turn
	}

	turn.Intent = string(result.Classification.Intent)
	turn.Tone = string(result.Classification.Tone)
	turn.RiskLevel = string(result.Classification.RiskLevel)
	turn.ShouldOfferSkill = result.Classification.ShouldOfferSkill
	turn.IntentConfidence = result.Classification.IntentConfidence
	turn.ToneConfidence = result.Classification.ToneConfidence

	for _, c := range result.Retrieval.SkillCards {
		turn.CardTitles = append(turn.CardTitles, c.Title)
	}
	for _, d := range result.Retrieval.Documents {
		turn.DocumentTitles = append(turn.DocumentTitles, d.Document.Title)
	}
	return turn
}

func buildSendChatResponse(turn *entity.ChatTurn, result coach.TurnResult) *dto.SendChatResponse {
	resp := &dto.SendChatResponse{
		ChatSessionId:    turn.ChatSessionId,
		TurnId:           turn.Id,
		Reply:            turn.AssistantMessage,
		Crisis:           turn.Crisis,
		Intent:           turn.Intent,
		Tone:             turn.Tone,
		RiskLevel:        turn.RiskLevel,
		ShouldOfferSkill: turn.ShouldOfferSkill,
		Resources:        toHotlineDTOs(result.Resources.Matches),
		CreatedAt:        turn.CreatedAt,
	}

	for _, c := range result.Retrieval.SkillCards {
		resp.SkillCards = append(resp.SkillCards, dto.SkillCardDTO{
			Title: c.Title,
			Tags:  c.Tags,
			Steps: c.Steps,
			Notes: c.Notes,
		})
	}
	for _, d := range result.Retrieval.Documents {
		resp.Documents = append(resp.Documents, dto.DocumentMatchDTO{
			Title:      d.Document.Title,
			Similarity: d.Similarity,
			Excerpt:    d.Excerpt,
		})
	}
	return resp
}

func truncateTitle(message string) string {
	if utf8.RuneCountInString(message) <= sessionTitleLimit {
		return message
	}
	runes := []rune(message)
	return string(runes[:sessionTitleLimit]) + "..."
}
