package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTourGuide/domain"

	"gorm.io/gorm"
)

type ChatSessionRepository struct {
	DB *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) *ChatSessionRepository {
	return &ChatSessionRepository{
		DB: db,
	}
}

func (r *ChatSessionRepository) Create(ctx context.Context, session *domain.ChatSession) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	return nil
}

func (r *ChatSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (domain.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChatSession{}, fmt.Errorf("context error: %w", err)
	}

	var session domain.ChatSession

	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ChatSession{}, errors.New("chat session not found")
		}
		return domain.ChatSession{}, fmt.Errorf("failed to find chat session: %w", err)
	}

	return session, nil
}

func (r *ChatSessionRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var sessions []domain.ChatSession
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find chat sessions: %w", err)
	}

	return sessions, nil
}

func (r *ChatSessionRepository) UpdateTitle(ctx context.Context, sessionID, title string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("session_id = ?", sessionID).
		Update("title", title)
	if result.Error != nil {
		return fmt.Errorf("failed to update chat session title: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("chat session not found")
	}

	return nil
}

type ChatMessageRepository struct {
	DB *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{
		DB: db,
	}
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

func (r *ChatMessageRepository) FindBySessionID(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var messages []domain.ChatMessage
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find chat messages: %w", err)
	}

	return messages, nil
}
