package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
)

const maxCatalogPromptSpots = 50

// SessionRepository persists chat sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.ChatSession) error
	FindBySessionID(ctx context.Context, sessionID string) (domain.ChatSession, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.ChatSession, error)
	UpdateTitle(ctx context.Context, sessionID, title string) error
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	FindBySessionID(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}

// ChatClient is the model backend. Implemented by the Gemini wrapper.
type ChatClient interface {
	Generate(ctx context.Context, systemPrompt string, history []domain.ChatMessage, message string) (string, error)
}

// SpotRepository is the catalog slice the assistant grounds its answers in.
type SpotRepository interface {
	FindAll(ctx context.Context) ([]domain.ScenicSpot, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error)
}

// CategoryRepository resolves category names for prompt and enrichment.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.ScenicCategory, error)
}

// RatingFiller decorates spots with their aggregated ratings.
type RatingFiller interface {
	FillRatings(ctx context.Context, spots []domain.ScenicSpot) error
}

type assistantService struct {
	sessionRepo  SessionRepository
	messageRepo  MessageRepository
	chatClient   ChatClient
	spotRepo     SpotRepository
	categoryRepo CategoryRepository
	ratingFiller RatingFiller
}

func NewAssistantService(
	sessionRepo SessionRepository,
	messageRepo MessageRepository,
	chatClient ChatClient,
	spotRepo SpotRepository,
	categoryRepo CategoryRepository,
	ratingFiller RatingFiller,
) *assistantService {
	return &assistantService{
		sessionRepo:  sessionRepo,
		messageRepo:  messageRepo,
		chatClient:   chatClient,
		spotRepo:     spotRepo,
		categoryRepo: categoryRepo,
		ratingFiller: ratingFiller,
	}
}

// Reply is the assistant's answer for one turn.
type Reply struct {
	SessionID       string                          `json:"session_id"`
	Message         string                          `json:"message"`
	Recommendations []domain.EnrichedRecommendation `json:"recommendations"`
}

// modelOutput is the structured shape the system prompt asks the model for.
type modelOutput struct {
	Reply           string `json:"reply"`
	Recommendations []struct {
		ScenicID uint64 `json:"scenic_id"`
		Reason   string `json:"reason"`
	} `json:"recommendations"`
}

func (s *assistantService) CreateSession(ctx context.Context, userID uint, title string) (*domain.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		logger.Error("invalid user id when creating chat session")
		return nil, errors.New("invalid user id")
	}

	if title == "" {
		title = "New conversation"
	}

	session := domain.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Title:     title,
	}

	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		logger.Error("failed to create chat session", err)
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	logger.Info("chat session created", "sessionID", session.SessionID)

	return &session, nil
}

func (s *assistantService) GetUserSessions(ctx context.Context, userID uint) ([]domain.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	sessions, err := s.sessionRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to find chat sessions", err)
		return nil, err
	}

	return sessions, nil
}

func (s *assistantService) GetSessionMessages(ctx context.Context, userID uint, sessionID string) ([]domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		logger.Error("failed to find chat messages", err)
		return nil, err
	}

	return messages, nil
}

// Chat runs one conversation turn: persists the user message, asks the
// model with the catalog in its system prompt, validates every recommended
// spot against the catalog and persists the assistant reply.
func (s *assistantService) Chat(ctx context.Context, userID uint, sessionID, message string) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when chatting")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if strings.TrimSpace(message) == "" {
		logger.Error("empty chat message")
		return nil, errors.New("message is required")
	}

	var session domain.ChatSession
	if sessionID == "" {
		created, err := s.CreateSession(ctx, userID, truncate(message, 40))
		if err != nil {
			return nil, err
		}
		session = *created
	} else {
		owned, err := s.ownedSession(ctx, userID, sessionID)
		if err != nil {
			return nil, err
		}
		session = owned
	}

	history, err := s.messageRepo.FindBySessionID(ctx, session.SessionID)
	if err != nil {
		logger.Error("failed to load chat history", err)
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	userMsg := domain.ChatMessage{
		SessionID: session.SessionID,
		Role:      domain.ChatRoleUser,
		Content:   message,
	}
	if err := s.messageRepo.Create(ctx, &userMsg); err != nil {
		logger.Error("failed to persist user message", err)
		return nil, fmt.Errorf("failed to persist user message: %w", err)
	}

	systemPrompt, catalogIDs, err := s.buildSystemPrompt(ctx)
	if err != nil {
		logger.Error("failed to build system prompt", err)
		return nil, err
	}

	raw, err := s.chatClient.Generate(ctx, systemPrompt, history, message)
	if err != nil {
		logger.Error("model generation failed", err)
		return nil, fmt.Errorf("model generation failed: %w", err)
	}

	reply, recs := s.parseModelOutput(ctx, raw, catalogIDs)

	recommendedIDs := make([]any, 0, len(recs))
	for _, r := range recs {
		recommendedIDs = append(recommendedIDs, r.ScenicID)
	}

	assistantMsg := domain.ChatMessage{
		SessionID: session.SessionID,
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
		Metadata:  datatypes.JSONMap{"recommended_ids": recommendedIDs},
	}
	if err := s.messageRepo.Create(ctx, &assistantMsg); err != nil {
		logger.Error("failed to persist assistant message", err)
		return nil, fmt.Errorf("failed to persist assistant message: %w", err)
	}

	logger.Debug("assistant turn completed",
		"sessionID", session.SessionID,
		"recommendations", len(recs))

	return &Reply{
		SessionID:       session.SessionID,
		Message:         reply,
		Recommendations: recs,
	}, nil
}

func (s *assistantService) ownedSession(ctx context.Context, userID uint, sessionID string) (domain.ChatSession, error) {
	session, err := s.sessionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		logger.Error("chat session not found", err)
		return domain.ChatSession{}, errors.New("chat session not found")
	}

	if session.UserID != userID {
		logger.Error("user does not own chat session", "sessionID", sessionID)
		return domain.ChatSession{}, errors.New("chat session does not belong to user")
	}

	return session, nil
}

// buildSystemPrompt embeds a compact catalog listing so the model can only
// recommend spots that exist. Returns the set of valid IDs for validation.
func (s *assistantService) buildSystemPrompt(ctx context.Context) (string, map[uint64]bool, error) {
	spots, err := s.spotRepo.FindAll(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	categoryNames := s.categoryNames(ctx)

	valid := make(map[uint64]bool, len(spots))
	var b strings.Builder
	b.WriteString("You are a travel assistant for a tourist attraction platform. ")
	b.WriteString("Answer the user's travel questions and, when it helps, recommend attractions from the catalog below. ")
	b.WriteString("Only recommend attractions listed in the catalog, referenced by their numeric id.\n")
	b.WriteString("Respond with a single JSON object, no markdown fences, shaped as: ")
	b.WriteString(`{"reply": "<your answer>", "recommendations": [{"scenic_id": <id>, "reason": "<why>"}]}` + "\n")
	b.WriteString("Leave recommendations empty when none fit.\n\nCatalog:\n")

	for i, spot := range spots {
		valid[spot.ID] = true
		if i >= maxCatalogPromptSpots {
			continue
		}
		fmt.Fprintf(&b, "- id=%d name=%q location=%q price=%.2f category=%s\n",
			spot.ID, spot.Name, spot.Location, spot.Price, categoryNames[spot.CategoryID])
	}

	return b.String(), valid, nil
}

// categoryNames is best effort; a failed lookup leaves names blank.
func (s *assistantService) categoryNames(ctx context.Context) map[uint64]string {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Warn("failed to load categories for assistant", err)
		return map[uint64]string{}
	}

	names := make(map[uint64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	return names
}

// parseModelOutput extracts the structured reply. Malformed output degrades
// to the raw text with no recommendations rather than failing the turn.
func (s *assistantService) parseModelOutput(ctx context.Context, raw string, valid map[uint64]bool) (string, []domain.EnrichedRecommendation) {
	var out modelOutput
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil || out.Reply == "" {
		logger.Warn("assistant output was not structured, serving raw text")
		return raw, []domain.EnrichedRecommendation{}
	}

	reasons := make(map[uint64]string)
	ids := make([]uint64, 0, len(out.Recommendations))
	for _, rec := range out.Recommendations {
		if !valid[rec.ScenicID] {
			logger.Warn("assistant recommended unknown spot", "scenicID", rec.ScenicID)
			continue
		}
		if _, dup := reasons[rec.ScenicID]; dup {
			continue
		}
		reasons[rec.ScenicID] = rec.Reason
		ids = append(ids, rec.ScenicID)
	}

	return out.Reply, s.enrich(ctx, ids, reasons)
}

func (s *assistantService) enrich(ctx context.Context, ids []uint64, reasons map[uint64]string) []domain.EnrichedRecommendation {
	if len(ids) == 0 {
		return []domain.EnrichedRecommendation{}
	}

	spots, err := s.spotRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn("failed to enrich recommendations", err)
		return []domain.EnrichedRecommendation{}
	}

	if err := s.ratingFiller.FillRatings(ctx, spots); err != nil {
		logger.Warn("failed to fill rating stats", err)
	}

	categoryNames := s.categoryNames(ctx)

	byID := make(map[uint64]domain.ScenicSpot, len(spots))
	for _, spot := range spots {
		byID[spot.ID] = spot
	}

	// keep the model's ordering
	enriched := make([]domain.EnrichedRecommendation, 0, len(ids))
	for _, id := range ids {
		spot, ok := byID[id]
		if !ok {
			continue
		}
		enriched = append(enriched, domain.EnrichedRecommendation{
			ScenicID:     spot.ID,
			Name:         spot.Name,
			ImageUrl:     spot.ImageUrl,
			Location:     spot.Location,
			Price:        spot.Price,
			CategoryName: categoryNames[spot.CategoryID],
			Rating:       spot.Rating,
			CommentCount: spot.CommentCount,
			Reason:       reasons[spot.ID],
		})
	}

	return enriched
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
