package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type CaptureLeadInput struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Objective string `json:"objective,omitempty"`
	Source    string `json:"source"`
	SessionID string `json:"session_id,omitempty"`

	// Sinais da sessão usados no cálculo do score
	MessageCount           int     `json:"message_count,omitempty"`
	SessionDurationMinutes float64 `json:"session_duration_minutes,omitempty"`
}

type CaptureLeadOutput struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

type CaptureLeadUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	ChatRepo        entity.ChatHistoryRepositoryInterface
	InteractionRepo entity.InteractionRepositoryInterface
	Queue           QueueProducerInterface
}

func NewCaptureLeadUseCase(
	leadRepo entity.LeadRepositoryInterface,
	chatRepo entity.ChatHistoryRepositoryInterface,
	interactionRepo entity.InteractionRepositoryInterface,
	queueProducer QueueProducerInterface,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		LeadRepo:        leadRepo,
		ChatRepo:        chatRepo,
		InteractionRepo: interactionRepo,
		Queue:           queueProducer,
	}
}

// Execute valida os dados do widget, calcula o score e faz o upsert do
// lead pela chave natural (email). O upsert é um único statement atômico
// no banco, então duas capturas concorrentes do mesmo email nunca criam
// duas linhas. Histórico de chat, interação e evento de fila são efeitos
// secundários: falha neles é logada mas não derruba a captura.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {

	validationErrors := ValidateCaptureLeadInput(input)
	if len(validationErrors) > 0 {

		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	hasObjective := input.Objective != ""
	hasPhone := input.Phone != ""
	score := CalculateLeadScore(input.MessageCount, hasObjective, hasPhone, input.SessionDurationMinutes)

	lead := &entity.Lead{
		Email:     input.Email,
		Name:      input.Name,
		Phone:     input.Phone,
		Company:   input.Company,
		Objective: input.Objective,
		Source:    input.Source,
		Score:     score,
	}

	if err := uc.LeadRepo.Upsert(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to upsert lead: " + err.Error(),
		}
	}

	// Mensagens anônimas da sessão passam a pertencer ao lead
	if input.SessionID != "" {
		if err := uc.ChatRepo.LinkSession(ctx, input.SessionID, lead.ID); err != nil {
			log.Printf("⚠️ Falha ao vincular sessão %s ao lead %s: %v", input.SessionID, lead.ID, err)
		}
	}

	interactionType := entity.InteractionFormSubmit
	if input.Source == entity.SourceChat {
		interactionType = entity.InteractionMessage
	}

	interaction, err := entity.NewInteraction(lead.ID, interactionType, map[string]any{
		"source":        input.Source,
		"session_id":    input.SessionID,
		"message_count": input.MessageCount,
	})
	if err == nil {
		if err := uc.InteractionRepo.Create(ctx, interaction); err != nil {
			log.Printf("⚠️ Falha ao registrar interação do lead %s: %v", lead.ID, err)
		}
	}

	// Evento assíncrono para o time de vendas. O lead já está salvo:
	// falha aqui não pode virar erro para o visitante.
	if uc.Queue != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:    lead.ID,
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Source:    lead.Source,
			Score:     lead.Score,
			Objective: lead.Objective,
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar evento de lead capturado: %v", err)
		}
	}

	return &CaptureLeadOutput{
		ID:     lead.ID,
		Email:  lead.Email,
		Score:  lead.Score,
		Status: lead.Status,
	}, nil
}
