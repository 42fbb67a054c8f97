package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============ TESTES DO QUEUE PRODUCER ============

// TestLeadCapturedPayloadMarshalling - Teste que o payload serializa corretamente
func TestLeadCapturedPayloadMarshalling(t *testing.T) {
	payload := LeadCapturedPayload{
		LeadID:    "lead-123",
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		Phone:     "(11) 99999-9999",
		Source:    "chat",
		Score:     80,
		Objective: "automatizar o atendimento",
	}

	// Serializar
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.NotEmpty(t, body)

	// Desserializar
	var received LeadCapturedPayload
	err = json.Unmarshal(body, &received)
	assert.NoError(t, err)

	// Validar
	assert.Equal(t, "lead-123", received.LeadID)
	assert.Equal(t, "Ana Souza", received.Name)
	assert.Equal(t, "ana@example.com", received.Email)
	assert.Equal(t, "(11) 99999-9999", received.Phone)
	assert.Equal(t, "chat", received.Source)
	assert.Equal(t, 80, received.Score)
	assert.Equal(t, "automatizar o atendimento", received.Objective)
}

// TestLeadCapturedPayloadAllFieldsPresent - Teste que o worker recebe todas as chaves
func TestLeadCapturedPayloadAllFieldsPresent(t *testing.T) {
	payload := LeadCapturedPayload{
		LeadID:    "lead-123",
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		Phone:     "(11) 99999-9999",
		Source:    "whatsapp",
		Score:     65,
		Objective: "orçamento",
	}

	body, _ := json.Marshal(payload)

	var data map[string]interface{}
	json.Unmarshal(body, &data)

	requiredFields := []string{
		"lead_id", "name", "email", "phone", "source", "score", "objective",
	}

	for _, field := range requiredFields {
		assert.Contains(t, data, field, "field %s is missing", field)
	}
}

// TestLeadCapturedPayloadScoreZero - Score zero não pode sumir do JSON
func TestLeadCapturedPayloadScoreZero(t *testing.T) {
	payload := LeadCapturedPayload{
		LeadID: "lead-123",
		Email:  "ana@example.com",
		Source: "form",
		Score:  0,
	}

	body, _ := json.Marshal(payload)

	var data map[string]interface{}
	json.Unmarshal(body, &data)

	// O worker decide notificar pelo score: a chave precisa existir mesmo zerada
	assert.Contains(t, data, "score")
	assert.Equal(t, float64(0), data["score"])
}
