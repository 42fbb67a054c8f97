package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type InteractionHandler struct {
	InteractionRepo entity.InteractionRepositoryInterface
}

func NewInteractionHandler(interactionRepo entity.InteractionRepositoryInterface) *InteractionHandler {
	return &InteractionHandler{InteractionRepo: interactionRepo}
}

type LogInteractionRequest struct {
	LeadID   string         `json:"lead_id"`
	Type     string         `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// HandleLog registra um evento tipado de um lead já identificado.
// Lead desconhecido é barrado pela FK e vira 404, não um false silencioso.
func (h *InteractionHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	var req LogInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	interaction, err := entity.NewInteraction(req.LeadID, req.Type, req.Metadata)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.InteractionRepo.Create(r.Context(), interaction); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao registrar interação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(interaction)
}
