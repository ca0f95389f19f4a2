package controller

import (
	"ai_interview_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// respondError 将业务错误映射为 HTTP 响应；未识别的错误记录日志后返回 fallback
func respondError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, util.ErrInvalidInterviewID):
		util.BadRequest(ctx, "Invalid Interview ID format.")
	case errors.Is(err, util.ErrInterviewNotFound):
		util.NotFound(ctx, "Interview not found")
	case errors.Is(err, util.ErrCandidateNotFound):
		util.NotFound(ctx, "Candidate not found")
	case errors.Is(err, util.ErrResumeNotFound):
		util.NotFound(ctx, "Resume not found")

	case errors.Is(err, util.ErrQuestionIndexOutOfRange):
		util.BadRequest(ctx, "Question index out of bounds")
	case errors.Is(err, util.ErrEmptyAnswer):
		util.BadRequest(ctx, "Invalid questionIndex or missing answer")
	case errors.Is(err, util.ErrInterviewNotInProgress):
		util.BadRequest(ctx, "Interview is not in progress")
	case errors.Is(err, util.ErrInterviewNotPending):
		util.BadRequest(ctx, "Interview is not pending")
	case errors.Is(err, util.ErrInterviewAlreadyCompleted):
		util.BadRequest(ctx, "Interview already completed.")
	case errors.Is(err, util.ErrInvalidQuestionSet):
		util.BadRequest(ctx, "Each question must contain 'question', 'difficulty', and 'timeLimit'")

	case errors.Is(err, util.ErrResumeRequired):
		util.BadRequest(ctx, "Resume file required")
	case errors.Is(err, util.ErrUnsupportedResume):
		util.BadRequest(ctx, "Resume must be a PDF or plain text file")
	case errors.Is(err, util.ErrEmptyResume):
		util.BadRequest(ctx, "No text could be extracted from the resume")

	case errors.Is(err, util.ErrNotificationFailed):
		util.LogInternalError(ctx, err, "Interview was scored, but the results email could not be sent.")
	default:
		util.LogInternalError(ctx, err, fallback)
	}
}
