package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tipos de interação registrados pelo site
const (
	InteractionMessage     = "message"
	InteractionPageView    = "page_view"
	InteractionFormSubmit  = "form_submit"
	InteractionButtonClick = "button_click"
)

// Interaction é um evento tipado vinculado a um lead já identificado.
// Append-only: nunca é alterada ou removida.
type Interaction struct {
	ID        string         `json:"id"`
	LeadID    string         `json:"lead_id"`
	Type      string         `json:"type"` // message, page_view, form_submit, button_click
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewInteraction(leadID, interactionType string, metadata map[string]any) (*Interaction, error) {
	interaction := &Interaction{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Type:      interactionType,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if err := interaction.Validate(); err != nil {
		return nil, err
	}

	return interaction, nil
}

func (i *Interaction) Validate() error {
	if i.LeadID == "" {
		return errors.New("lead_id is required")
	}
	if !IsValidInteractionType(i.Type) {
		return errors.New("type must be message, page_view, form_submit or button_click")
	}
	return nil
}

func IsValidInteractionType(t string) bool {
	switch t {
	case InteractionMessage, InteractionPageView, InteractionFormSubmit, InteractionButtonClick:
		return true
	}
	return false
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, interaction *Interaction) error
	ListByLead(ctx context.Context, leadID string) ([]*Interaction, error)
}
