package app

import (
	"ai_interview_backend/docs"
	"ai_interview_backend/internal/middleware"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	secret := a.Config.JWT.Secret
	anyUser := middleware.Authorize(secret, repos.user, middleware.AnyAuthenticated())
	candidateOnly := middleware.Authorize(secret, repos.user, middleware.OneOf(model.Candidate))
	interviewerOnly := middleware.Authorize(secret, repos.user, middleware.OneOf(model.Interviewer))

	// 1. 公共路由(无需登录)
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/signup", c.auth.Signup)
		auth.POST("/login", c.auth.Login)
		auth.GET("/profile", anyUser, c.auth.Profile)
	}

	// 2. 候选人接口
	candidate := api.Group("/candidate", candidateOnly)
	{
		candidate.POST("/start", c.candidate.StartInterview)
		candidate.GET("/interview/:id", c.candidate.GetInterview)
		candidate.GET("/interviews", c.candidate.ListInterviews)
		candidate.POST("/begin-interview", c.candidate.BeginInterview)
		candidate.POST("/submit-answer", c.candidate.SubmitAnswer)
		candidate.POST("/finalize-interview", c.candidate.FinalizeInterview)
	}

	// 3. 面试官接口
	interviewer := api.Group("/interviewer", interviewerOnly)
	{
		interviewer.GET("/scoreboard", c.interviewer.Scoreboard)
		interviewer.GET("/scoreboard/export", c.interviewer.ExportScoreboard)
		interviewer.GET("/interview-details/:id", c.interviewer.InterviewDetails)
		interviewer.GET("/resume/:id", c.interviewer.Resume)
		interviewer.GET("/resume/:id/original", c.interviewer.ResumeOriginal)
		interviewer.GET("/candidates", c.interviewer.Candidates)
		interviewer.GET("/candidates/:candidateId/interviews", c.interviewer.CandidateInterviews)
		interviewer.POST("/questions/:candidateId", c.interviewer.AssignQuestions)
	}
}
