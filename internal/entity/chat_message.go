package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Papéis de uma mensagem de chat
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage representa um turno da conversa do widget de chat.
// LeadID fica nulo enquanto o visitante não informa o email.
type ChatMessage struct {
	ID        string    `json:"id"`
	LeadID    *string   `json:"lead_id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewChatMessage(sessionID, role, content string, leadID *string) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

func (m *ChatMessage) Validate() error {
	if m.SessionID == "" {
		return errors.New("session_id is required")
	}
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return errors.New("role must be user or assistant")
	}
	if m.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

type ChatHistoryRepositoryInterface interface {
	Create(ctx context.Context, msg *ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]*ChatMessage, error)

	// LinkSession associa ao lead as mensagens anônimas da sessão
	// (gravadas antes do visitante ser identificado).
	LinkSession(ctx context.Context, sessionID, leadID string) error
}
