package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, email, COALESCE(name, ''), COALESCE(phone, ''), COALESCE(company, ''),
		COALESCE(objective, ''), source, score, status, COALESCE(notes, ''), created_at, updated_at`

// Upsert insere ou atualiza pelo email em um único statement. O ON CONFLICT
// usa a constraint UNIQUE de leads.email, então duas capturas concorrentes
// do mesmo email nunca criam duas linhas. Campos vazios no struct não
// sobrescrevem valores já gravados (COALESCE). created_at só é definido no
// insert; updated_at é carimbado em toda escrita.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, email, name, phone, company, objective, source, score, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, 'chat'), $8, COALESCE($9, 'new'), NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name       = COALESCE($3, leads.name),
			phone      = COALESCE($4, leads.phone),
			company    = COALESCE($5, leads.company),
			objective  = COALESCE($6, leads.objective),
			source     = COALESCE($7, leads.source),
			score      = $8,
			status     = COALESCE($9, leads.status),
			updated_at = NOW()
		RETURNING ` + leadColumns

	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}

	return r.scanLead(r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		nullString(lead.Company),
		nullString(lead.Objective),
		nullString(lead.Source),
		lead.Score,
		nullString(lead.Status),
	), lead)
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1`

	lead := &entity.Lead{}
	err := r.scanLead(r.DB.QueryRowContext(ctx, query, email), lead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead := &entity.Lead{}
	err := r.scanLead(r.DB.QueryRowContext(ctx, query, id), lead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// List retorna todos os leads, mais recentes primeiro (ordem do painel admin)
func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead := &entity.Lead{}
		if err := r.scanLead(rows, lead); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// UpdateFields aplica um patch parcial (edição do admin). Campos nil do
// patch mantêm o valor atual.
func (r *LeadRepository) UpdateFields(ctx context.Context, id string, update entity.LeadUpdate) (*entity.Lead, error) {
	query := `
		UPDATE leads SET
			name       = COALESCE($2, name),
			objective  = COALESCE($3, objective),
			score      = COALESCE($4, score),
			status     = COALESCE($5, status),
			phone      = COALESCE($6, phone),
			company    = COALESCE($7, company),
			notes      = COALESCE($8, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead := &entity.Lead{}
	err := r.scanLead(r.DB.QueryRowContext(
		ctx,
		query,
		id,
		update.Name,
		update.Objective,
		update.Score,
		update.Status,
		update.Phone,
		update.Company,
		update.Notes,
	), lead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// Delete remove de vez (hard delete, sem tombstone)
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *LeadRepository) scanLead(row rowScanner, lead *entity.Lead) error {
	return row.Scan(
		&lead.ID,
		&lead.Email,
		&lead.Name,
		&lead.Phone,
		&lead.Company,
		&lead.Objective,
		&lead.Source,
		&lead.Score,
		&lead.Status,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
}


func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
