package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Fontes de captação de lead
const (
	SourceChat     = "chat"
	SourceForm     = "form"
	SourceWhatsApp = "whatsapp"
)

// Status do funil de vendas
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// Entidade: Lead
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Objective string    `json:"objective,omitempty"`
	Source    string    `json:"source"` // chat, form, whatsapp
	Score     int       `json:"score"`  // 0-100 - qualificação do lead
	Status    string    `json:"status"` // new, contacted, qualified, converted, lost
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(email, name, source string) (*Lead, error) {
	lead := &Lead{
		ID:     uuid.New().String(),
		Email:  email,
		Name:   name,
		Source: source,

		Score:     0,
		Status:    StatusNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Email == "" {
		return errors.New("email is required")
	}
	if !IsValidSource(l.Source) {
		return errors.New("source must be chat, form or whatsapp")
	}
	if l.Score < 0 || l.Score > 100 {
		return errors.New("score must be between 0 and 100")
	}
	return nil
}

func IsValidSource(source string) bool {
	return source == SourceChat || source == SourceForm || source == SourceWhatsApp
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

// LeadUpdate carrega os campos editáveis pelo admin.
// Ponteiro nil = campo não enviado (mantém o valor atual).
type LeadUpdate struct {
	Name      *string `json:"name,omitempty"`
	Objective *string `json:"objective,omitempty"`
	Score     *int    `json:"score,omitempty"`
	Status    *string `json:"status,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (u *LeadUpdate) Validate() error {
	if u.Status != nil && !IsValidStatus(*u.Status) {
		return errors.New("status must be new, contacted, qualified, converted or lost")
	}
	if u.Score != nil && (*u.Score < 0 || *u.Score > 100) {
		return errors.New("score must be between 0 and 100")
	}
	return nil
}

type LeadRepositoryInterface interface {

	// Upsert é atômico (ON CONFLICT no email): nunca gera duas linhas
	// para o mesmo email, mesmo com capturas concorrentes.
	Upsert(ctx context.Context, lead *Lead) error

	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
	UpdateFields(ctx context.Context, id string, update LeadUpdate) (*Lead, error)
	Delete(ctx context.Context, id string) error
}
