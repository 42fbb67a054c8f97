package usecase

import "math"

// CalculateLeadScore converte sinais de interação em um score de
// qualificação de 0 a 100. Função pura, sem efeito colateral — segura
// para chamadas concorrentes.
//
// Pesos:
//   - mensagens: 5 pontos cada, teto de 40 (8+ mensagens)
//   - objetivo informado: +20
//   - telefone informado: +15
//   - tempo de sessão: proporcional, teto de 25 aos 10 minutos
func CalculateLeadScore(messageCount int, hasObjective, hasPhone bool, sessionDurationMinutes float64) int {
	if messageCount < 0 {
		messageCount = 0
	}
	if sessionDurationMinutes < 0 {
		sessionDurationMinutes = 0
	}

	score := 0.0

	// Engajamento por mensagens (máx 40 pontos)
	score += math.Min(float64(messageCount)*5, 40)

	// Bonus por ter objetivo (20 pontos)
	if hasObjective {
		score += 20
	}

	// Bonus por telefone (15 pontos)
	if hasPhone {
		score += 15
	}

	// Bonus por tempo de sessão (máx 25 pontos)
	score += math.Min((sessionDurationMinutes/10)*25, 25)

	return int(math.Round(math.Min(score, 100)))
}
