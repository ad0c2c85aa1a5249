// Package scoring считает баллы за попытку с учетом штрафа за неверные ответы.
package scoring

import "github.com/IT-Nick/quizbot/internal/domain/model"

// AnswerPoints возвращает вклад одного ответа в итоговый балл:
// +1 за верный ответ, -factor за неверный выбранный ответ, 0 если ответа нет.
func AnswerPoints(a model.AnswerRecord, factor float64) float64 {
	switch {
	case a.IsCorrect:
		return 1
	case a.Answered():
		return -factor
	default:
		return 0
	}
}

// CalculateScore суммирует баллы по всем ответам. Итог не бывает меньше нуля.
func CalculateScore(answers []model.AnswerRecord, factor float64) float64 {
	score := 0.0
	for _, a := range answers {
		score += AnswerPoints(a, factor)
	}
	if score < 0 {
		return 0
	}
	return score
}

// MaxScore - максимально возможный балл, равный количеству вопросов
func MaxScore(questionCount int) int {
	return questionCount
}
