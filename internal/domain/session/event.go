package session

// Event - событие, изменяющее состояние попытки. Обрабатывается единственной точкой входа Engine.HandleEvent.
type Event interface {
	tag() (question int, generation uint64)
}

// AnswerSubmitted - пользователь выбрал вариант ответа
type AnswerSubmitted struct {
	Question   int
	Generation uint64
	Option     int
}

// DeadlineFired - истекло время на вопрос
type DeadlineFired struct {
	Question   int
	Generation uint64
}

// advanceDue - закончилась пауза между вопросами, пора показать следующий
type advanceDue struct {
	question   int
	generation uint64
}

func (e AnswerSubmitted) tag() (int, uint64) { return e.Question, e.Generation }
func (e DeadlineFired) tag() (int, uint64)   { return e.Question, e.Generation }
func (e advanceDue) tag() (int, uint64)      { return e.question, e.generation }
