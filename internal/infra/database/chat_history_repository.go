package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type ChatHistoryRepository struct {
	DB *sql.DB
}

func NewChatHistoryRepository(db *sql.DB) *ChatHistoryRepository {
	return &ChatHistoryRepository{DB: db}
}

func (r *ChatHistoryRepository) Create(ctx context.Context, msg *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_history (id, lead_id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		msg.ID,
		msg.LeadID,
		msg.SessionID,
		msg.Role,
		msg.Content,
	).Scan(&msg.CreatedAt)
}

// ListBySession devolve a conversa na ordem em que aconteceu
// (o widget recarrega o histórico ao reabrir a sessão)
func (r *ChatHistoryRepository) ListBySession(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, lead_id, session_id, role, content, created_at
		FROM chat_history
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*entity.ChatMessage{}
	for rows.Next() {
		msg := &entity.ChatMessage{}
		if err := rows.Scan(&msg.ID, &msg.LeadID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// LinkSession adota as mensagens anônimas da sessão. Só mexe em linhas
// com lead_id nulo: histórico já vinculado nunca troca de dono.
func (r *ChatHistoryRepository) LinkSession(ctx context.Context, sessionID, leadID string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE chat_history SET lead_id = $2 WHERE session_id = $1 AND lead_id IS NULL`,
		sessionID,
		leadID,
	)
	return err
}
