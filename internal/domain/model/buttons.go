package model

// Константы для inline-кнопок. Привязаны к названиям обработчиков callback-запросов.
// Не следует изменять константы без изменения регистрации в app.bootstrapHandlers
const (
	AnswerKey     = "answer"
	TakeQuizKey   = "take_quiz"
	ResultsPDFKey = "results_pdf"
)
