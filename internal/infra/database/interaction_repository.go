package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	// jsonb entra como texto; []byte viraria bytea e o insert falharia
	var metadata any
	if interaction.Metadata != nil {
		b, err := json.Marshal(interaction.Metadata)
		if err != nil {
			return err
		}
		metadata = string(b)
	}

	query := `
		INSERT INTO interactions (id, lead_id, type, metadata, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		interaction.ID,
		interaction.LeadID,
		interaction.Type,
		metadata,
	).Scan(&interaction.CreatedAt)

	if err != nil {

		var pgErr *pq.Error
		if errors.As(err, &pgErr) {
			// 23503 = FK violada: o lead_id não existe
			if pgErr.Code == "23503" {
				return entity.ErrLeadNotFound
			}
		}

		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	query := `
		SELECT id, lead_id, type, metadata, created_at
		FROM interactions
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []*entity.Interaction{}
	for rows.Next() {
		interaction := &entity.Interaction{}
		var metadata []byte
		if err := rows.Scan(&interaction.ID, &interaction.LeadID, &interaction.Type, &metadata, &interaction.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &interaction.Metadata); err != nil {
				return nil, err
			}
		}
		interactions = append(interactions, interaction)
	}

	return interactions, rows.Err()
}
