package authoring

import "errors"

var (
	ErrNoDraft          = errors.New("no quiz is being created")
	ErrDraftInProgress  = errors.New("another quiz is already being created")
	ErrBadFormat        = errors.New("unexpected input format")
	ErrNoQuestions      = errors.New("add at least one question first")
	ErrNotInMarathon    = errors.New("no active marathon quiz")
	ErrUnexpectedInput  = errors.New("input is not expected at this step")
	ErrQuestionNotFound = errors.New("question number out of range")
)
