package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============ TESTES DO SCORE DE QUALIFICAÇÃO ============

func TestCalculateLeadScore_MaximalCase(t *testing.T) {
	// 8+ mensagens, objetivo, telefone e 10+ minutos = exatamente 100
	score := CalculateLeadScore(8, true, true, 10)
	assert.Equal(t, 100, score)

	// Passar dos tetos não passa de 100
	score = CalculateLeadScore(50, true, true, 120)
	assert.Equal(t, 100, score)
}

func TestCalculateLeadScore_MinimalCase(t *testing.T) {
	score := CalculateLeadScore(0, false, false, 0)
	assert.Equal(t, 0, score)
}

func TestCalculateLeadScore_MessageTermCapsAt40(t *testing.T) {
	// 5 pontos por mensagem até o teto de 40 (8 mensagens)
	assert.Equal(t, 5, CalculateLeadScore(1, false, false, 0))
	assert.Equal(t, 35, CalculateLeadScore(7, false, false, 0))
	assert.Equal(t, 40, CalculateLeadScore(8, false, false, 0))
	assert.Equal(t, 40, CalculateLeadScore(9, false, false, 0))
	assert.Equal(t, 40, CalculateLeadScore(1000, false, false, 0))
}

func TestCalculateLeadScore_DurationTermCapsAt25(t *testing.T) {
	// Crédito proporcional, cheio aos 10 minutos
	assert.Equal(t, 25, CalculateLeadScore(0, false, false, 10))
	assert.Equal(t, 25, CalculateLeadScore(0, false, false, 10.01))
	assert.Equal(t, 25, CalculateLeadScore(0, false, false, 600))

	// 5 minutos = 12.5 pontos, arredonda para 13
	assert.Equal(t, 13, CalculateLeadScore(0, false, false, 5))
}

func TestCalculateLeadScore_FlatBonuses(t *testing.T) {
	assert.Equal(t, 20, CalculateLeadScore(0, true, false, 0))
	assert.Equal(t, 15, CalculateLeadScore(0, false, true, 0))
	assert.Equal(t, 35, CalculateLeadScore(0, true, true, 0))
}

func TestCalculateLeadScore_AlwaysInRange(t *testing.T) {
	cases := []struct {
		messages  int
		objective bool
		phone     bool
		duration  float64
	}{
		{0, false, false, 0},
		{3, false, true, 2.5},
		{8, true, false, 7},
		{100, true, true, 1000},
		{1, true, true, 0.1},
	}

	for _, c := range cases {
		score := CalculateLeadScore(c.messages, c.objective, c.phone, c.duration)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestCalculateLeadScore_NegativeInputsClampedToZero(t *testing.T) {
	// Entrada negativa é violação de pré-condição do chamador, mas a
	// função não pode devolver score fora de [0, 100] por causa disso
	assert.Equal(t, 0, CalculateLeadScore(-5, false, false, 0))
	assert.Equal(t, 0, CalculateLeadScore(0, false, false, -3))
	assert.Equal(t, 20, CalculateLeadScore(-5, true, false, -3))
}

func TestCalculateLeadScore_Deterministic(t *testing.T) {
	first := CalculateLeadScore(4, true, false, 6)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateLeadScore(4, true, false, 6))
	}
}
