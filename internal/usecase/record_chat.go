package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type RecordChatMessageInput struct {
	SessionID string  `json:"session_id"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	LeadID    *string `json:"lead_id,omitempty"`
}

type RecordChatMessageUseCase struct {
	ChatRepo entity.ChatHistoryRepositoryInterface
}

func NewRecordChatMessageUseCase(chatRepo entity.ChatHistoryRepositoryInterface) *RecordChatMessageUseCase {
	return &RecordChatMessageUseCase{ChatRepo: chatRepo}
}

// Execute grava um turno da conversa. Append-only: o histórico nunca é
// alterado depois de gravado.
func (uc *RecordChatMessageUseCase) Execute(ctx context.Context, input RecordChatMessageInput) (*entity.ChatMessage, error) {
	msg, err := entity.NewChatMessage(input.SessionID, input.Role, input.Content, input.LeadID)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	if err := uc.ChatRepo.Create(ctx, msg); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to save chat message: " + err.Error(),
		}
	}

	return msg, nil
}
