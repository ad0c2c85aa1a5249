package authoring

import "github.com/IT-Nick/quizbot/internal/domain/model"

// State - этап создания викторины администратором. Конкретный тип определяет,
// как трактуется следующее текстовое сообщение.
type State interface {
	isState()
}

// AwaitingTitle - ожидается строка "Название | Описание"
type AwaitingTitle struct{}

// AddingQuestions - ожидаются вопросы "Вопрос | A | B | C | D | n" или команда /done
type AddingQuestions struct {
	Title       string
	Description string
	Questions   []model.Question
}

// AwaitingTimeLimit - ожидается лимит времени на вопрос в секундах
type AwaitingTimeLimit struct {
	Title       string
	Description string
	Questions   []model.Question
}

// AwaitingNegativeMarking - ожидается коэффициент штрафа от 0 до 1
type AwaitingNegativeMarking struct {
	Title       string
	Description string
	Questions   []model.Question
	TimeLimit   int
}

// CollectingPolls - марафон: пересланные опросы становятся вопросами
type CollectingPolls struct {
	Title       string
	Description string
	Questions   []model.Question
}

func (AwaitingTitle) isState()           {}
func (AddingQuestions) isState()         {}
func (AwaitingTimeLimit) isState()       {}
func (AwaitingNegativeMarking) isState() {}
func (CollectingPolls) isState()         {}
