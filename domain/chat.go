package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatSession struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"column:session_id;unique;not null" json:"session_id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	Title     string    `gorm:"column:title;type:text" json:"title"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ChatSession) TableName() string {
	return "ai_chat_sessions"
}

type ChatMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"column:session_id;not null;index" json:"session_id"`
	Role      string    `gorm:"column:role;not null" json:"role"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// assistant replies store the recommended scenic ids here
	Metadata datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata"`
}

func (ChatMessage) TableName() string {
	return "ai_chat_messages"
}
