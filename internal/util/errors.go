package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCandidateNotFound  = errors.New("candidate not found")

	ErrInvalidInterviewID        = errors.New("invalid interview id format")
	ErrInterviewNotFound         = errors.New("interview not found")
	ErrQuestionIndexOutOfRange   = errors.New("question index out of bounds")
	ErrEmptyAnswer               = errors.New("answer is required")
	ErrInterviewNotInProgress    = errors.New("interview is not in progress")
	ErrInterviewNotPending       = errors.New("interview is not pending")
	ErrInterviewAlreadyCompleted = errors.New("interview already completed")
	ErrInvalidQuestionSet        = errors.New("each question must contain 'question', 'difficulty' and 'timeLimit'")

	ErrResumeRequired    = errors.New("resume file required")
	ErrEmptyResume       = errors.New("no text could be extracted from the resume")
	ErrUnsupportedResume = errors.New("unsupported resume file type")
	ErrResumeNotFound    = errors.New("resume not found")

	ErrMalformedAIOutput  = errors.New("malformed AI output")
	ErrNotificationFailed = errors.New("results email could not be sent")
)
