package service

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"ai_interview_backend/pkg/monitoring"
	"ai_interview_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type InterviewStore interface {
	Create(ctx context.Context, interview *model.Interview) error
	FindByID(ctx context.Context, id string) (*model.Interview, error)
	FindOwned(ctx context.Context, id string, candidateID uint) (*model.Interview, error)
	FindLatestByCandidate(ctx context.Context, candidateID uint) (*model.Interview, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]model.Interview, error)
	ListCompleted(ctx context.Context) ([]model.Interview, error)
	SetAnswer(ctx context.Context, id primitive.ObjectID, candidateID uint, index int, answer string) error
	Replace(ctx context.Context, interview *model.Interview) error
	CompleteInterview(ctx context.Context, id primitive.ObjectID, from []model.InterviewStatus, scores map[int]int, totalScore int, summary string) error
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from []model.InterviewStatus, to model.InterviewStatus) error
}

type ResumeExtractor interface {
	Extract(path, filename string) (string, error)
}

type ResumeArchive interface {
	UploadFile(ctx context.Context, key string, localPath string, contentType string) error
}

// InterviewDeps 生命周期服务依赖的全部协作者，缺一不可
type InterviewDeps struct {
	Interviews InterviewStore
	Resumes    ResumeExtractor
	Archive    ResumeArchive
	Generator  QuestionGenerator
	Scorer     AnswerScorer
	Summaries  SummaryWriter
	Notifier   Notifier
	Alerts     FailureReporter
}

// InterviewService 面试生命周期：出题、作答、评分、总结和结果通知
type InterviewService struct {
	interviews InterviewStore
	resumes    ResumeExtractor
	archive    ResumeArchive
	generator  QuestionGenerator
	scorer     AnswerScorer
	summaries  SummaryWriter
	notifier   Notifier
	alerts     FailureReporter

	questionCount      int
	scoringConcurrency int
	marking            config.FailureMarkingConfig
}

func NewInterviewService(cfg *config.Config, deps InterviewDeps) *InterviewService {
	concurrency := cfg.AI.ScoringConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	alerts := deps.Alerts
	if alerts == nil {
		alerts = LogAlertReporter{}
	}

	return &InterviewService{
		interviews:         deps.Interviews,
		resumes:            deps.Resumes,
		archive:            deps.Archive,
		generator:          deps.Generator,
		scorer:             deps.Scorer,
		summaries:          deps.Summaries,
		notifier:           deps.Notifier,
		alerts:             alerts,
		questionCount:      cfg.AI.QuestionCount,
		scoringConcurrency: concurrency,
		marking:            cfg.FailureMarking,
	}
}

// ResumeUpload 已落盘的临时简历文件，由调用方负责删除
type ResumeUpload struct {
	Path     string
	Filename string
	Phone    string
}

// StartFromResume 解析简历并生成题目，创建 in-progress 面试
func (s *InterviewService) StartFromResume(ctx context.Context, candidate *model.User, upload ResumeUpload) (*model.Interview, error) {
	ctx, span := tracing.Start(ctx, "interview.start")
	var err error
	defer func() { tracing.End(span, err) }()

	contentType, ok := util.ResumeContentType(upload.Filename)
	if !ok {
		err = util.ErrUnsupportedResume
		return nil, err
	}

	resumeText, err := s.resumes.Extract(upload.Path, upload.Filename)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateQuestions(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	if len(generated) != s.questionCount {
		err = fmt.Errorf("%w: got %d questions, want %d", util.ErrMalformedAIOutput, len(generated), s.questionCount)
		return nil, err
	}

	questions := make([]model.Question, 0, len(generated))
	for _, g := range generated {
		if !g.Difficulty.Valid() {
			err = fmt.Errorf("%w: difficulty %q", util.ErrMalformedAIOutput, g.Difficulty)
			return nil, err
		}
		questions = append(questions, model.Question{
			Text:       g.Text,
			Difficulty: g.Difficulty,
			TimeLimit:  g.Difficulty.TimeLimit(),
		})
	}

	interview := &model.Interview{
		CandidateID:    candidate.ID,
		CandidatePhone: strings.TrimSpace(upload.Phone),
		ResumeText:     resumeText,
		Questions:      questions,
		Status:         model.StatusInProgress,
	}

	// 原件归档失败不影响面试，只记录日志
	key := fmt.Sprintf("resumes/%d/%s%s", candidate.ID, uuid.NewString(), strings.ToLower(filepath.Ext(upload.Filename)))
	if archiveErr := s.archive.UploadFile(ctx, key, upload.Path, contentType); archiveErr != nil {
		logger.Log.Warn("Failed to archive resume",
			zap.Uint("candidate_id", candidate.ID),
			zap.Error(archiveErr),
		)
	} else {
		interview.ResumeObject = key
	}

	if err = s.interviews.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	monitoring.InterviewTransitions.WithLabelValues(string(model.StatusInProgress)).Inc()

	logger.Log.Info("Interview started",
		zap.String("interview_id", interview.ID.Hex()),
		zap.Uint("candidate_id", candidate.ID),
		zap.Int("questions", len(questions)),
	)
	return interview, nil
}

func (s *InterviewService) GetOwned(ctx context.Context, candidate *model.User, interviewID string) (*model.Interview, error) {
	return s.interviews.FindOwned(ctx, interviewID, candidate.ID)
}

func (s *InterviewService) ListOwned(ctx context.Context, candidate *model.User) ([]model.Interview, error) {
	return s.interviews.ListByCandidate(ctx, candidate.ID)
}

// Begin 候选人开始面试官分配的题目：pending -> in-progress
func (s *InterviewService) Begin(ctx context.Context, candidate *model.User, interviewID string) (*model.Interview, error) {
	interview, err := s.interviews.FindOwned(ctx, interviewID, candidate.ID)
	if err != nil {
		return nil, err
	}
	if interview.Status != model.StatusPending {
		return nil, util.ErrInterviewNotPending
	}

	err = s.interviews.TransitionStatus(ctx, interview.ID, []model.InterviewStatus{model.StatusPending}, model.StatusInProgress)
	if errors.Is(err, util.ErrInterviewNotFound) {
		return nil, util.ErrInterviewNotPending
	}
	if err != nil {
		return nil, err
	}
	monitoring.InterviewTransitions.WithLabelValues(string(model.StatusInProgress)).Inc()

	interview.Status = model.StatusInProgress
	return interview, nil
}

type SubmitAnswerInput struct {
	InterviewID   string
	QuestionIndex int
	Answer        string
}

type SubmitAnswerResult struct {
	NextQuestionIndex int
	IsFinished        bool
}

// SubmitAnswer 写入单题答案，不触发评分
func (s *InterviewService) SubmitAnswer(ctx context.Context, candidate *model.User, in SubmitAnswerInput) (*SubmitAnswerResult, error) {
	interview, err := s.interviews.FindOwned(ctx, in.InterviewID, candidate.ID)
	if err != nil {
		return nil, err
	}

	if in.QuestionIndex < 0 || in.QuestionIndex >= len(interview.Questions) {
		return nil, util.ErrQuestionIndexOutOfRange
	}
	if strings.TrimSpace(in.Answer) == "" {
		return nil, util.ErrEmptyAnswer
	}
	if interview.Status != model.StatusInProgress {
		return nil, util.ErrInterviewNotInProgress
	}

	if err := s.interviews.SetAnswer(ctx, interview.ID, candidate.ID, in.QuestionIndex, in.Answer); err != nil {
		return nil, err
	}

	return &SubmitAnswerResult{
		NextQuestionIndex: in.QuestionIndex + 1,
		IsFinished:        in.QuestionIndex == len(interview.Questions)-1,
	}, nil
}

type FinalizeResult struct {
	TotalScore int
	Summary    string
}

// Finalize 评分、总结并标记完成，最后发送结果邮件。
// 持久化之前出错会把面试标记为 failed；邮件失败时面试保持 completed，返回 ErrNotificationFailed。
func (s *InterviewService) Finalize(ctx context.Context, candidate *model.User, interviewID string) (result *FinalizeResult, err error) {
	ctx, span := tracing.Start(ctx, "interview.finalize")
	defer func() { tracing.End(span, err) }()

	interview, err := s.interviews.FindOwned(ctx, interviewID, candidate.ID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("interview.id", interview.ID.Hex()))

	switch interview.Status {
	case model.StatusCompleted:
		return nil, util.ErrInterviewAlreadyCompleted
	case model.StatusInProgress, model.StatusFailed:
	default:
		return nil, util.ErrInterviewNotInProgress
	}
	from := interview.Status

	questions, err := s.scoreAnswers(ctx, interview)
	if err != nil {
		s.markFailed(ctx, interview, err)
		return nil, fmt.Errorf("score answers: %w", err)
	}

	total := AggregateScore(questions)
	summary, err := s.summaries.GenerateSummary(ctx, questions, total)
	if err != nil {
		s.markFailed(ctx, interview, err)
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	scores := make(map[int]int, len(questions))
	for i, q := range questions {
		if q.Scored() {
			scores[i] = *q.Score
		}
	}

	// 只写评分结果，不覆盖评分期间提交的答案
	// 以读取时的状态为条件，并发的第二次 finalize 不会重复完成
	if err = s.interviews.CompleteInterview(ctx, interview.ID, []model.InterviewStatus{from}, scores, total, summary); err != nil {
		if errors.Is(err, util.ErrInterviewNotFound) {
			err = util.ErrInterviewAlreadyCompleted
			return nil, err
		}
		s.markFailed(ctx, interview, err)
		return nil, fmt.Errorf("persist results: %w", err)
	}
	monitoring.InterviewTransitions.WithLabelValues(string(model.StatusCompleted)).Inc()

	result = &FinalizeResult{TotalScore: total, Summary: summary}

	logger.Log.Info("Interview completed",
		zap.String("interview_id", interview.ID.Hex()),
		zap.Uint("candidate_id", candidate.ID),
		zap.Int("total_score", total),
	)

	body, err := RenderResultEmail(candidate.Name, total, summary)
	if err == nil {
		err = s.notifier.Send(ctx, candidate.Email, ResultSubject, body)
	}
	if err != nil {
		logger.Log.Error("Failed to send results email",
			zap.String("interview_id", interview.ID.Hex()),
			zap.Uint("candidate_id", candidate.ID),
			zap.Error(err),
		)
		err = fmt.Errorf("%w: %v", util.ErrNotificationFailed, err)
		return result, err
	}

	return result, nil
}

// scoreAnswers 并发评分已作答且尚未评分的题目，返回题目副本
func (s *InterviewService) scoreAnswers(ctx context.Context, interview *model.Interview) ([]model.Question, error) {
	questions := make([]model.Question, len(interview.Questions))
	copy(questions, interview.Questions)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.scoringConcurrency)

	for i := range questions {
		q := questions[i]
		if !q.Answered() || q.Scored() {
			continue
		}
		g.Go(func() error {
			score, err := s.scorer.ScoreAnswer(gctx, q, interview.ResumeText)
			if err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
			if score < 0 || score > 100 {
				return fmt.Errorf("%w: question %d scored %d", util.ErrMalformedAIOutput, i, score)
			}
			questions[i].Score = &score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return questions, nil
}

// markFailed 补偿操作：使用独立的 context，带重试；全部失败时上报告警
func (s *InterviewService) markFailed(ctx context.Context, interview *model.Interview, cause error) {
	attempts := s.marking.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	base := context.WithoutCancel(ctx)
	from := []model.InterviewStatus{model.StatusInProgress, model.StatusFailed}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		mctx, cancel := context.WithTimeout(base, 5*time.Second)
		err = s.interviews.TransitionStatus(mctx, interview.ID, from, model.StatusFailed)
		cancel()
		if err == nil {
			monitoring.InterviewTransitions.WithLabelValues(string(model.StatusFailed)).Inc()
			logger.Log.Warn("Interview marked failed",
				zap.String("interview_id", interview.ID.Hex()),
				zap.Error(cause),
			)
			return
		}

		logger.Log.Error("Failed to mark interview failed",
			zap.String("interview_id", interview.ID.Hex()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < attempts {
			time.Sleep(s.marking.Backoff() * time.Duration(attempt))
		}
	}

	monitoring.FailedMarkingErrors.Inc()
	alert := FailureAlert{
		InterviewID: interview.ID.Hex(),
		CandidateID: interview.CandidateID,
		Cause:       cause.Error(),
		MarkError:   err.Error(),
		Attempts:    attempts,
		At:          time.Now().UTC(),
	}
	if reportErr := s.alerts.ReportFailedMarking(base, alert); reportErr != nil {
		logger.Log.Error("Failed to report stuck interview",
			zap.String("interview_id", alert.InterviewID),
			zap.Error(reportErr),
		)
	}
}

// QuestionInput 面试官手动分配的题目
type QuestionInput struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
	TimeLimit  int    `json:"timeLimit"`
}

// AssignQuestions 覆盖候选人最近一场面试的题目并重置为 pending，没有面试时新建
func (s *InterviewService) AssignQuestions(ctx context.Context, interviewer *model.User, candidate *model.User, inputs []QuestionInput) (*model.Interview, error) {
	if len(inputs) == 0 {
		return nil, util.ErrInvalidQuestionSet
	}
	questions := make([]model.Question, 0, len(inputs))
	for _, in := range inputs {
		// 难度必须是小写规范值，题目原样保存
		d := model.Difficulty(in.Difficulty)
		if strings.TrimSpace(in.Question) == "" || !d.Valid() || in.TimeLimit <= 0 {
			return nil, util.ErrInvalidQuestionSet
		}
		questions = append(questions, model.Question{
			Text:       in.Question,
			Difficulty: d,
			TimeLimit:  in.TimeLimit,
		})
	}

	interviewerID := interviewer.ID
	interview, err := s.interviews.FindLatestByCandidate(ctx, candidate.ID)
	switch {
	case errors.Is(err, util.ErrInterviewNotFound):
		interview = &model.Interview{
			CandidateID:   candidate.ID,
			InterviewerID: &interviewerID,
			Questions:     questions,
			Status:        model.StatusPending,
		}
		if err := s.interviews.Create(ctx, interview); err != nil {
			return nil, fmt.Errorf("create interview: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		interview.InterviewerID = &interviewerID
		interview.Questions = questions
		interview.Status = model.StatusPending
		interview.TotalScore = 0
		interview.Summary = ""
		if err := s.interviews.Replace(ctx, interview); err != nil {
			return nil, fmt.Errorf("replace interview questions: %w", err)
		}
	}
	monitoring.InterviewTransitions.WithLabelValues(string(model.StatusPending)).Inc()

	logger.Log.Info("Questions assigned",
		zap.String("interview_id", interview.ID.Hex()),
		zap.Uint("candidate_id", candidate.ID),
		zap.Uint("interviewer_id", interviewer.ID),
		zap.Int("questions", len(questions)),
	)
	return interview, nil
}
