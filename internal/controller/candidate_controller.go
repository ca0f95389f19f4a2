package controller

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/service"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CandidateController struct {
	InterviewService *service.InterviewService
	Upload           config.UploadConfig
}

func NewCandidateController(interviewService *service.InterviewService, upload config.UploadConfig) *CandidateController {
	return &CandidateController{InterviewService: interviewService, Upload: upload}
}

// InterviewIDRequest swagger:model InterviewIDRequest
type InterviewIDRequest struct {
	InterviewID string `json:"interviewId" binding:"required"`
}

// SubmitAnswerRequest swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	InterviewID   string `json:"interviewId" binding:"required"`
	QuestionIndex *int   `json:"questionIndex" binding:"required"`
	Answer        string `json:"answer"`
}

// StartInterview godoc
// @Summary 上传简历开始面试
// @Description 解析简历并由 AI 生成题目，面试直接进入 in-progress
// @Tags 候选人
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   resume formData file true "简历文件（PDF 或 TXT）"
// @Param   phone formData string false "联系电话"
// @Success 200 {object} object "面试已创建"
// @Failure 400 {object} util.ErrorResponse "缺少文件或文件无法解析"
// @Failure 500 {object} util.ErrorResponse "题目生成失败"
// @Router /api/candidate/start [post]
func (c *CandidateController) StartInterview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("resume")
	if err != nil {
		util.BadRequest(ctx, "Resume file required")
		return
	}
	if c.Upload.MaxBytes > 0 && file.Size > c.Upload.MaxBytes {
		util.BadRequest(ctx, fmt.Sprintf("Resume exceeds %d bytes", c.Upload.MaxBytes))
		return
	}
	if _, ok := util.ResumeContentType(file.Filename); !ok {
		util.BadRequest(ctx, "Resume must be a PDF or plain text file")
		return
	}

	tmp, err := os.CreateTemp(c.Upload.TempDir, "resume-*"+strings.ToLower(filepath.Ext(file.Filename)))
	if err != nil {
		util.LogInternalError(ctx, err, "Failed to start interview.")
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// 无论成功与否都删除临时文件
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logger.Log.Warn("Failed to remove temp resume", zap.String("path", tmpPath), zap.Error(err))
		}
	}()

	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err, "Failed to start interview.")
		return
	}

	interview, err := c.InterviewService.StartFromResume(ctx.Request.Context(), user, service.ResumeUpload{
		Path:     tmpPath,
		Filename: file.Filename,
		Phone:    ctx.PostForm("phone"),
	})
	if err != nil {
		respondError(ctx, err, "Failed to start interview.")
		return
	}

	util.Success(ctx, gin.H{
		"message":   "Interview started with AI generated questions",
		"interview": interview,
	})
}

// GetInterview godoc
// @Summary 获取本人的面试
// @Tags 候选人
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试ID"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse "ID 格式错误"
// @Failure 404 {object} util.ErrorResponse "面试不存在"
// @Router /api/candidate/interview/{id} [get]
func (c *CandidateController) GetInterview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	interview, err := c.InterviewService.GetOwned(ctx.Request.Context(), user, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Error retrieving interview details.")
		return
	}

	util.Success(ctx, gin.H{"interview": interview})
}

// ListInterviews godoc
// @Summary 本人的全部面试
// @Tags 候选人
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} object
// @Router /api/candidate/interviews [get]
func (c *CandidateController) ListInterviews(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	interviews, err := c.InterviewService.ListOwned(ctx.Request.Context(), user)
	if err != nil {
		respondError(ctx, err, "Error retrieving interviews.")
		return
	}

	util.Success(ctx, gin.H{"interviews": interviews})
}

// BeginInterview godoc
// @Summary 开始面试官分配的面试
// @Description pending 状态的面试进入 in-progress
// @Tags 候选人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body InterviewIDRequest true "面试ID"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse "状态不是 pending"
// @Failure 404 {object} util.ErrorResponse "面试不存在"
// @Router /api/candidate/begin-interview [post]
func (c *CandidateController) BeginInterview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req InterviewIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing interviewId")
		return
	}

	interview, err := c.InterviewService.Begin(ctx.Request.Context(), user, req.InterviewID)
	if err != nil {
		respondError(ctx, err, "Failed to begin interview.")
		return
	}

	util.Success(ctx, gin.H{
		"message":   "Interview started",
		"interview": interview,
	})
}

// SubmitAnswer godoc
// @Summary 提交单题答案
// @Tags 候选人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAnswerRequest true "答案"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse "题号越界、答案为空或状态不符"
// @Failure 404 {object} util.ErrorResponse "面试不存在"
// @Router /api/candidate/submit-answer [post]
func (c *CandidateController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid questionIndex or missing answer")
		return
	}

	result, err := c.InterviewService.SubmitAnswer(ctx.Request.Context(), user, service.SubmitAnswerInput{
		InterviewID:   req.InterviewID,
		QuestionIndex: *req.QuestionIndex,
		Answer:        req.Answer,
	})
	if err != nil {
		respondError(ctx, err, "Failed to submit answer.")
		return
	}

	util.Success(ctx, gin.H{
		"message":           "Answer saved successfully",
		"nextQuestionIndex": result.NextQuestionIndex,
		"isFinished":        result.IsFinished,
	})
}

// FinalizeInterview godoc
// @Summary 结束面试
// @Description 评分、生成总结并发送结果邮件
// @Tags 候选人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body InterviewIDRequest true "面试ID"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse "面试已完成"
// @Failure 404 {object} util.ErrorResponse "面试不存在"
// @Failure 500 {object} util.ErrorResponse "评分、总结或邮件失败"
// @Router /api/candidate/finalize-interview [post]
func (c *CandidateController) FinalizeInterview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req InterviewIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing interviewId")
		return
	}

	result, err := c.InterviewService.Finalize(ctx.Request.Context(), user, req.InterviewID)
	if err != nil {
		respondError(ctx, err, "Error finalizing interview or sending email.")
		return
	}

	util.Success(ctx, gin.H{
		"message":    "Interview finalized, scored, and results emailed!",
		"totalScore": result.TotalScore,
		"summary":    result.Summary,
	})
}
