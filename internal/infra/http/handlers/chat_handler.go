package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ChatHandler struct {
	recordUC *usecase.RecordChatMessageUseCase
	chatRepo entity.ChatHistoryRepositoryInterface
}

func NewChatHandler(recordUC *usecase.RecordChatMessageUseCase, chatRepo entity.ChatHistoryRepositoryInterface) *ChatHandler {
	return &ChatHandler{
		recordUC: recordUC,
		chatRepo: chatRepo,
	}
}

// HandlePostMessage grava um turno da conversa do widget
func (h *ChatHandler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordChatMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	msg, err := h.recordUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Erro ao salvar mensagem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// HandleGetHistory devolve a conversa de uma sessão, na ordem original
func (h *ChatHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	messages, err := h.chatRepo.ListBySession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Erro ao carregar histórico", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}
