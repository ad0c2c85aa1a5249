package presenter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/session"
	"github.com/IT-Nick/quizbot/internal/infra/timer"
)

// ErrBadCallback возвращается при разборе чужих или поврежденных данных кнопки
var ErrBadCallback = errors.New("malformed answer callback")

// AnswerData - данные кнопки ответа: номер вопроса, поколение и выбранный вариант
type AnswerData struct {
	Question   int
	Generation uint64
	Option     int
}

// EncodeAnswer кодирует данные кнопки в строку "вопрос|поколение|вариант"
func EncodeAnswer(d AnswerData) string {
	return strconv.Itoa(d.Question) + "|" + strconv.FormatUint(d.Generation, 10) + "|" + strconv.Itoa(d.Option)
}

// DecodeAnswer разбирает строку, полученную от EncodeAnswer
func DecodeAnswer(data string) (AnswerData, error) {
	parts := strings.Split(strings.TrimSpace(data), "|")
	if len(parts) != 3 {
		return AnswerData{}, ErrBadCallback
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return AnswerData{}, ErrBadCallback
	}
	gen, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return AnswerData{}, ErrBadCallback
	}
	opt, err := strconv.Atoi(parts[2])
	if err != nil {
		return AnswerData{}, ErrBadCallback
	}
	return AnswerData{Question: q, Generation: gen, Option: opt}, nil
}

// QuestionText формирует текст сообщения с вопросом и оставшимся временем
func QuestionText(v session.QuestionView, remaining time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s\nQuestion %d/%d\n\n%s\n\n", v.QuizTitle, v.Index+1, v.Total, v.Text)
	for i, opt := range v.Options {
		fmt.Fprintf(&b, "%s. %s\n", model.OptionLetter(i), opt)
	}
	fmt.Fprintf(&b, "\n⏰ Time left: %s", timer.Format(remaining))
	return b.String()
}

// RetiredText формирует отзыв о закрытом вопросе
func RetiredText(v session.RetiredView) string {
	a := v.Answer
	correct := fmt.Sprintf("%s. %s", model.OptionLetter(a.CorrectOption), a.CorrectText())
	header := fmt.Sprintf("Question %d/%d: %s\n\n", v.Index+1, v.Total, a.QuestionText)
	switch {
	case v.Reason == session.RetireTimedOut:
		return header + "⏰ Time's up! The correct answer was: " + correct
	case a.IsCorrect:
		return header + "✅ Correct!"
	default:
		return header + "❌ Incorrect! The correct answer was: " + correct
	}
}

// ResultText формирует итог попытки
func ResultText(r model.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 Quiz completed: %s\n\n", r.QuizTitle)
	fmt.Fprintf(&b, "Score: %s/%d (%.1f%%)\n", FormatScore(r.Score), r.MaxScore, r.Percentage())
	correct, wrong, skipped := 0, 0, 0
	for _, a := range r.Answers {
		switch {
		case a.IsCorrect:
			correct++
		case a.Answered():
			wrong++
		default:
			skipped++
		}
	}
	fmt.Fprintf(&b, "Correct: %d, incorrect: %d, unanswered: %d\n", correct, wrong, skipped)
	if r.NegativeMarkingFactor > 0 {
		fmt.Fprintf(&b, "Negative marking: -%s per wrong answer\n", FormatScore(r.NegativeMarkingFactor))
	}
	return b.String()
}

// FormatScore печатает балл без лишних нулей: 3, 0.75, 2.5
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
