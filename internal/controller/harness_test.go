package controller

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/middleware"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/repository"
	"ai_interview_backend/internal/service"
	"ai_interview_backend/internal/testhelpers"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "controller-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGemini struct {
	mu     sync.Mutex
	score  int
	failed bool
}

func (f *fakeGemini) GenerateQuestions(ctx context.Context, resumeText string) ([]service.GeneratedQuestion, error) {
	return []service.GeneratedQuestion{
		{Text: "What is a goroutine?", Difficulty: model.Easy},
		{Text: "What does defer do?", Difficulty: model.Easy},
		{Text: "How are maps implemented?", Difficulty: model.Medium},
		{Text: "Explain select.", Difficulty: model.Medium},
		{Text: "Design a job queue.", Difficulty: model.Hard},
		{Text: "Explain escape analysis.", Difficulty: model.Hard},
	}, nil
}

func (f *fakeGemini) ScoreAnswer(ctx context.Context, q model.Question, resumeText string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return 0, errors.New("model unavailable")
	}
	return f.score, nil
}

func (f *fakeGemini) GenerateSummary(ctx context.Context, questions []model.Question, total int) (string, error) {
	return "Potential Hire\nSolid basics", nil
}

type recordingMailer struct {
	mu   sync.Mutex
	to   []string
	fail bool
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.to = append(m.to, to)
	return nil
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	store  *testhelpers.MemoryInterviewStore
	gemini *fakeGemini
	mailer *recordingMailer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	users := repository.NewUserRepository(db)
	store := testhelpers.NewMemoryInterviewStore()
	archive := &service.LocalStorageProvider{Root: t.TempDir()}
	gemini := &fakeGemini{score: 90}
	mailer := &recordingMailer{}

	cfg := &config.Config{
		JWT:            config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		AI:             config.AIConfig{QuestionCount: 6, ScoringConcurrency: 2},
		Upload:         config.UploadConfig{MaxBytes: 1 << 20, TempDir: t.TempDir()},
		FailureMarking: config.FailureMarkingConfig{Attempts: 2},
	}

	interviews := service.NewInterviewService(cfg, service.InterviewDeps{
		Interviews: store,
		Resumes:    service.NewResumeService(cfg.Upload.MaxBytes),
		Archive:    archive,
		Generator:  gemini,
		Scorer:     gemini,
		Summaries:  gemini,
		Notifier:   mailer,
		Alerts:     service.LogAlertReporter{},
	})
	interviewer := service.NewInterviewerService(store, users, archive)

	authC := NewAuthController(service.NewAuthService(users, &cfg.JWT))
	candidateC := NewCandidateController(interviews, cfg.Upload)
	interviewerC := NewInterviewerController(interviews, interviewer)

	anyUser := middleware.Authorize(testSecret, users, middleware.AnyAuthenticated())
	candidateOnly := middleware.Authorize(testSecret, users, middleware.OneOf(model.Candidate))
	interviewerOnly := middleware.Authorize(testSecret, users, middleware.OneOf(model.Interviewer))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/signup", authC.Signup)
	api.POST("/auth/login", authC.Login)
	api.GET("/auth/profile", anyUser, authC.Profile)

	cg := api.Group("/candidate", candidateOnly)
	cg.POST("/start", candidateC.StartInterview)
	cg.GET("/interview/:id", candidateC.GetInterview)
	cg.GET("/interviews", candidateC.ListInterviews)
	cg.POST("/begin-interview", candidateC.BeginInterview)
	cg.POST("/submit-answer", candidateC.SubmitAnswer)
	cg.POST("/finalize-interview", candidateC.FinalizeInterview)

	ig := api.Group("/interviewer", interviewerOnly)
	ig.GET("/scoreboard", interviewerC.Scoreboard)
	ig.GET("/scoreboard/export", interviewerC.ExportScoreboard)
	ig.GET("/interview-details/:id", interviewerC.InterviewDetails)
	ig.GET("/resume/:id", interviewerC.Resume)
	ig.GET("/resume/:id/original", interviewerC.ResumeOriginal)
	ig.GET("/candidates", interviewerC.Candidates)
	ig.GET("/candidates/:candidateId/interviews", interviewerC.CandidateInterviews)
	ig.POST("/questions/:candidateId", interviewerC.AssignQuestions)

	return &harness{t: t, router: r, db: db, store: store, gemini: gemini, mailer: mailer}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) upload(token, filename, content, phone string) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("resume", filename)
		require.NoError(h.t, err)
		part.Write([]byte(content))
	}
	if phone != "" {
		mw.WriteField("phone", phone)
	}
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/candidate/start", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// signup 注册并登录，返回令牌和用户 ID
func (h *harness) signup(name, email string, role model.UserRole) (string, uint) {
	h.t.Helper()
	w := h.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "secret1", "role": role,
	})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string            `json:"token"`
		User  model.UserSummary `json:"user"`
	}
	decode(h.t, w, &resp)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	return resp.Message
}

type interviewEnvelope struct {
	Message   string          `json:"message"`
	Interview model.Interview `json:"interview"`
}

func (h *harness) startInterview(token string) model.Interview {
	h.t.Helper()
	w := h.upload(token, "resume.txt", "Jane Doe\nBackend engineer: Go, PostgreSQL, Kafka", "555-0100")
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	var resp interviewEnvelope
	decode(h.t, w, &resp)
	return resp.Interview
}
