package model

import "time"

// NoAnswer обозначает вопрос, на который пользователь не ответил
const NoAnswer = -1

// AnswerRecord хранит ответ пользователя вместе со снимком вопроса
type AnswerRecord struct {
	QuestionIndex  int      `json:"question_index"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	CorrectOption  int      `json:"correct_option"`
	SelectedOption int      `json:"selected_option"`
	IsCorrect      bool     `json:"is_correct"`
}

// NewAnswerRecord создает запись "без ответа" для вопроса с индексом index
func NewAnswerRecord(index int, q Question) AnswerRecord {
	return AnswerRecord{
		QuestionIndex:  index,
		QuestionText:   q.Text,
		Options:        append([]string(nil), q.Options...),
		CorrectOption:  q.CorrectOption,
		SelectedOption: NoAnswer,
	}
}

// Answered сообщает, был ли выбран какой-либо вариант
func (a AnswerRecord) Answered() bool {
	return a.SelectedOption != NoAnswer
}

// SelectedText возвращает текст выбранного варианта или пустую строку
func (a AnswerRecord) SelectedText() string {
	if !a.Answered() || a.SelectedOption >= len(a.Options) {
		return ""
	}
	return a.Options[a.SelectedOption]
}

// CorrectText возвращает текст правильного варианта
func (a AnswerRecord) CorrectText() string {
	if a.CorrectOption < 0 || a.CorrectOption >= len(a.Options) {
		return ""
	}
	return a.Options[a.CorrectOption]
}

// Result - итог завершенной попытки прохождения викторины
type Result struct {
	UserID                int64          `json:"user_id"`
	QuizID                string         `json:"quiz_id"`
	QuizTitle             string         `json:"quiz_title"`
	Score                 float64        `json:"score"`
	MaxScore              int            `json:"max_score"`
	NegativeMarkingFactor float64        `json:"negative_marking_factor"`
	Answers               []AnswerRecord `json:"answers"`
	Timestamp             time.Time      `json:"timestamp"`
}

// Percentage возвращает процент набранных баллов, округленный до десятых
func (r Result) Percentage() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	p := r.Score / float64(r.MaxScore) * 100
	return float64(int(p*10+0.5)) / 10
}

// Clone возвращает копию результата с независимым срезом ответов
func (r Result) Clone() Result {
	c := r
	c.Answers = make([]AnswerRecord, len(r.Answers))
	for i, a := range r.Answers {
		a.Options = append([]string(nil), a.Options...)
		c.Answers[i] = a
	}
	return c
}
