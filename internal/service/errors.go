package service

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// Deliberately generic: no signal about whether the account or token exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrExpertNotFound         = errors.New("expert not found")

	ErrInvalidState       = errors.New("invalid state for this action")
	ErrHasRecordedAnswers = errors.New("expert has recorded test answers")

	ErrTestNotEnabled       = errors.New("test is not enabled for this expert")
	ErrNoEligibleQuestions  = errors.New("no eligible questions available")
	ErrIncompleteSubmission = errors.New("all questions must be answered")
	ErrResultNotReady       = errors.New("test result not available yet")

	ErrQuestionNotFound   = errors.New("question not found")
	ErrQuestionTooLong    = errors.New("question text exceeds 500 characters")
	ErrAnswerTooLong      = errors.New("answer text exceeds 200 characters")
	ErrTooFewAnswers      = errors.New("at least 2 answers are required")
	ErrNoCorrectAnswer    = errors.New("at least one answer must be marked correct")
	ErrPositionTaken      = errors.New("another question already uses this position")
	ErrQuestionInUse      = errors.New("question is referenced by recorded answers")

	ErrDiseaseNotFound   = errors.New("disease not found")
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrNotOwner          = errors.New("treatment belongs to another expert")
	ErrNotActiveExpert   = errors.New("expert is not active")
)
