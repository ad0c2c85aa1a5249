package model

import "errors"

var (
	ErrQuizNotFound           = errors.New("quiz not found")
	ErrInvalidQuiz            = errors.New("invalid quiz")
	ErrInvalidQuestion        = errors.New("invalid question")
	ErrInvalidTimeLimit       = errors.New("invalid time limit")
	ErrInvalidNegativeMarking = errors.New("invalid negative marking factor")
)
