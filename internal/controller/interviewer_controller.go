package controller

import (
	"ai_interview_backend/internal/service"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InterviewerController struct {
	InterviewService   *service.InterviewService
	InterviewerService *service.InterviewerService
}

func NewInterviewerController(interviewService *service.InterviewService, interviewerService *service.InterviewerService) *InterviewerController {
	return &InterviewerController{
		InterviewService:   interviewService,
		InterviewerService: interviewerService,
	}
}

// AssignQuestionsRequest swagger:model AssignQuestionsRequest
type AssignQuestionsRequest struct {
	Questions []service.QuestionInput `json:"questions"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Scoreboard godoc
// @Summary 排行榜
// @Description 已完成面试的得分和总结，按时间倒序
// @Tags 面试官
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} object
// @Router /api/interviewer/scoreboard [get]
func (c *InterviewerController) Scoreboard(ctx *gin.Context) {
	entries, err := c.InterviewerService.Scoreboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Error fetching scoreboard")
		return
	}
	util.Success(ctx, gin.H{"scoreboard": entries})
}

// ExportScoreboard godoc
// @Summary 导出排行榜
// @Tags 面试官
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Router /api/interviewer/scoreboard/export [get]
func (c *InterviewerController) ExportScoreboard(ctx *gin.Context) {
	entries, err := c.InterviewerService.Scoreboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Error fetching scoreboard")
		return
	}

	buf, err := service.ExportScoreboard(entries)
	if err != nil {
		util.LogInternalError(ctx, err, "Error exporting scoreboard")
		return
	}

	filename := fmt.Sprintf("scoreboard-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// InterviewDetails godoc
// @Summary 面试详情
// @Tags 面试官
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "面试ID"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Router /api/interviewer/interview-details/{id} [get]
func (c *InterviewerController) InterviewDetails(ctx *gin.Context) {
	view, err := c.InterviewerService.Details(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Error fetching interview details")
		return
	}
	util.Success(ctx, gin.H{"interview": view})
}

// Resume godoc
// @Summary 简历文本
// @Tags 面试官
// @Produce  plain
// @Security ApiKeyAuth
// @Param   id path string true "面试ID"
// @Success 200 {string} string
// @Failure 404 {object} util.ErrorResponse
// @Router /api/interviewer/resume/{id} [get]
func (c *InterviewerController) Resume(ctx *gin.Context) {
	text, err := c.InterviewerService.ResumeText(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Error fetching resume content")
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// ResumeOriginal godoc
// @Summary 下载简历原件
// @Tags 面试官
// @Produce  octet-stream
// @Security ApiKeyAuth
// @Param   id path string true "面试ID"
// @Success 200 {file} file
// @Failure 404 {object} util.ErrorResponse
// @Router /api/interviewer/resume/{id}/original [get]
func (c *InterviewerController) ResumeOriginal(ctx *gin.Context) {
	file, err := c.InterviewerService.ResumeOriginal(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Error fetching resume file")
		return
	}
	defer file.Body.Close()

	ctx.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, file.Filename))
	ctx.Header("Content-Type", file.ContentType)
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, file.Body); err != nil {
		logger.Log.Warn("Resume stream interrupted", zap.String("interview_id", ctx.Param("id")), zap.Error(err))
	}
}

// Candidates godoc
// @Summary 候选人列表
// @Tags 面试官
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} object
// @Router /api/interviewer/candidates [get]
func (c *InterviewerController) Candidates(ctx *gin.Context) {
	candidates, err := c.InterviewerService.Candidates()
	if err != nil {
		respondError(ctx, err, "Error fetching candidates")
		return
	}
	util.Success(ctx, gin.H{"candidates": candidates})
}

// CandidateInterviews godoc
// @Summary 候选人的全部面试
// @Tags 面试官
// @Produce  json
// @Security ApiKeyAuth
// @Param   candidateId path int true "候选人ID"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Router /api/interviewer/candidates/{candidateId}/interviews [get]
func (c *InterviewerController) CandidateInterviews(ctx *gin.Context) {
	candidateID, ok := util.ParseUintID(ctx.Param("candidateId"))
	if !ok {
		util.BadRequest(ctx, "Invalid candidate ID")
		return
	}

	interviews, err := c.InterviewerService.CandidateInterviews(ctx.Request.Context(), candidateID)
	if err != nil {
		respondError(ctx, err, "Error fetching interviews")
		return
	}
	util.Success(ctx, gin.H{"interviews": interviews})
}

// AssignQuestions godoc
// @Summary 为候选人分配题目
// @Description 覆盖候选人最近一场面试的题目并重置为 pending，没有面试时新建
// @Tags 面试官
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   candidateId path int true "候选人ID"
// @Param   body body AssignQuestionsRequest true "题目列表"
// @Success 200 {object} object
// @Failure 400 {object} util.ErrorResponse "题目格式错误"
// @Failure 404 {object} util.ErrorResponse "候选人不存在"
// @Router /api/interviewer/questions/{candidateId} [post]
func (c *InterviewerController) AssignQuestions(ctx *gin.Context) {
	interviewer := util.GetUserFromContext(ctx)

	candidateID, ok := util.ParseUintID(ctx.Param("candidateId"))
	if !ok {
		util.BadRequest(ctx, "Invalid candidate ID")
		return
	}

	var req AssignQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || len(req.Questions) == 0 {
		util.BadRequest(ctx, "Questions must be a non-empty array")
		return
	}

	candidate, err := c.InterviewerService.Candidate(candidateID)
	if err != nil {
		respondError(ctx, err, "Error saving questions")
		return
	}

	interview, err := c.InterviewService.AssignQuestions(ctx.Request.Context(), interviewer, candidate, req.Questions)
	if err != nil {
		respondError(ctx, err, "Error saving questions")
		return
	}

	util.Success(ctx, gin.H{
		"message":   "Questions saved for candidate",
		"interview": interview,
	})
}
