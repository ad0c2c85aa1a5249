package session

import "errors"

var (
	// ErrAlreadyInSession возвращается при попытке начать вторую попытку параллельно первой
	ErrAlreadyInSession = errors.New("user already has an active quiz session")
	// ErrNoActiveSession возвращается, когда у пользователя нет активной попытки
	ErrNoActiveSession = errors.New("no active quiz session")
	// ErrStaleEvent - событие относится к уже закрытому вопросу. Не показывается пользователю.
	ErrStaleEvent = errors.New("stale session event")
	// ErrInvalidQuizState - викторина не содержит вопросов
	ErrInvalidQuizState = errors.New("quiz has no questions")
	// ErrInvalidOption - выбранный вариант вне диапазона вариантов вопроса
	ErrInvalidOption = errors.New("option index out of range")
)
