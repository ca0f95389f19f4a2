package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"errors"
	"io"
	"strings"
)

type ResumeReader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// InterviewerService 面试官侧的只读视图：排行榜、详情、简历和候选人列表
type InterviewerService struct {
	interviews InterviewStore
	users      UserStore
	resumes    ResumeReader
}

func NewInterviewerService(interviews InterviewStore, users UserStore, resumes ResumeReader) *InterviewerService {
	return &InterviewerService{interviews: interviews, users: users, resumes: resumes}
}

// Scoreboard 已完成的面试，按创建时间倒序
func (s *InterviewerService) Scoreboard(ctx context.Context) ([]model.ScoreboardEntry, error) {
	interviews, err := s.interviews.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(candidateIDs(interviews))
	if err != nil {
		return nil, err
	}

	entries := make([]model.ScoreboardEntry, 0, len(interviews))
	for _, iv := range interviews {
		entries = append(entries, model.ScoreboardEntry{
			InterviewID: iv.ID.Hex(),
			Candidate:   contactSummary(users[iv.CandidateID]),
			TotalScore:  iv.TotalScore,
			Summary:     iv.Summary,
			CreatedAt:   iv.CreatedAt,
		})
	}
	return entries, nil
}

// Details 候选人已被删除时 Candidate 为空
func (s *InterviewerService) Details(ctx context.Context, interviewID string) (*model.InterviewView, error) {
	interview, err := s.interviews.FindByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	view := &model.InterviewView{Interview: interview}
	user, err := s.users.FindByID(interview.CandidateID)
	switch {
	case err == nil:
		summary := user.Summary()
		view.Candidate = &summary
	case !errors.Is(err, util.ErrUserNotFound):
		return nil, err
	}
	return view, nil
}

func (s *InterviewerService) ResumeText(ctx context.Context, interviewID string) (string, error) {
	interview, err := s.interviews.FindByID(ctx, interviewID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(interview.ResumeText) == "" {
		return "", util.ErrResumeNotFound
	}
	return interview.ResumeText, nil
}

// ResumeFile 打开归档的简历原件，调用方负责关闭
type ResumeFile struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
}

func (s *InterviewerService) ResumeOriginal(ctx context.Context, interviewID string) (*ResumeFile, error) {
	interview, err := s.interviews.FindByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.ResumeObject == "" {
		return nil, util.ErrResumeNotFound
	}

	body, err := s.resumes.Open(ctx, interview.ResumeObject)
	if err != nil {
		return nil, err
	}

	contentType, ok := util.ResumeContentType(interview.ResumeObject)
	if !ok {
		contentType = util.MimeOctetStream
	}
	name := interview.ResumeObject[strings.LastIndex(interview.ResumeObject, "/")+1:]
	return &ResumeFile{Body: body, ContentType: contentType, Filename: name}, nil
}

func (s *InterviewerService) Candidates() ([]model.User, error) {
	return s.users.ListByRole(model.Candidate)
}

// Candidate 按 ID 查找候选人，非候选人角色视为不存在
func (s *InterviewerService) Candidate(id uint) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, util.ErrCandidateNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.Role != model.Candidate {
		return nil, util.ErrCandidateNotFound
	}
	return user, nil
}

// CandidateInterviews 候选人的全部面试，按创建时间倒序
func (s *InterviewerService) CandidateInterviews(ctx context.Context, candidateID uint) ([]model.Interview, error) {
	if _, err := s.Candidate(candidateID); err != nil {
		return nil, err
	}
	return s.interviews.ListByCandidate(ctx, candidateID)
}

func candidateIDs(interviews []model.Interview) []uint {
	seen := make(map[uint]struct{}, len(interviews))
	ids := make([]uint, 0, len(interviews))
	for _, iv := range interviews {
		if _, ok := seen[iv.CandidateID]; ok {
			continue
		}
		seen[iv.CandidateID] = struct{}{}
		ids = append(ids, iv.CandidateID)
	}
	return ids
}

func contactSummary(u *model.User) *model.UserSummary {
	if u == nil {
		return nil
	}
	summary := u.Summary()
	summary.Role = ""
	return &summary
}
