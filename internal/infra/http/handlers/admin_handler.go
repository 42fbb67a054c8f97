package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// AdminLeadHandler expõe o CRUD consumido pelo painel admin.
// Passthrough direto pro repositório: sem regra de negócio aqui.
type AdminLeadHandler struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewAdminLeadHandler(leadRepo entity.LeadRepositoryInterface) *AdminLeadHandler {
	return &AdminLeadHandler{LeadRepo: leadRepo}
}

// HandleList lista todos os leads, mais recentes primeiro
func (h *AdminLeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Erro ao listar leads", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

// HandleUpdate aplica um patch parcial (tipicamente mudança de status)
func (h *AdminLeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update entity.LeadUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if err := update.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := h.LeadRepo.UpdateFields(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar lead", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

func (h *AdminLeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.LeadRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			http.Error(w, "Lead não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao deletar lead", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExportCSV exporta os leads no formato da planilha do time de
// vendas. encoding/csv cuida do escape de vírgulas e aspas.
func (h *AdminLeadHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Erro ao exportar leads", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)

	writer := csv.NewWriter(w)
	writer.Write([]string{"Nome", "Email", "Telefone", "Empresa", "Objetivo", "Score", "Status", "Fonte", "Data"})

	for _, lead := range leads {
		writer.Write([]string{
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Company,
			lead.Objective,
			fmt.Sprintf("%d", lead.Score),
			lead.Status,
			lead.Source,
			lead.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	writer.Flush()
}
