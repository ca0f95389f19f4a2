package testhelpers

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryInterviewStore mirrors the Mongo interview repository's filters and
// status guards in memory. Documents are copied on every read and write.
type MemoryInterviewStore struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]*model.Interview
	ticks int

	// TransitionErr, when set, is returned by TransitionStatus.
	TransitionErr   error
	TransitionCalls int
	// CompleteErr, when set, is returned by CompleteInterview.
	CompleteErr error
}

func NewMemoryInterviewStore() *MemoryInterviewStore {
	return &MemoryInterviewStore{docs: make(map[primitive.ObjectID]*model.Interview)}
}

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// now advances one second per call so created_at ordering is deterministic.
func (s *MemoryInterviewStore) now() time.Time {
	s.ticks++
	return epoch.Add(time.Duration(s.ticks) * time.Second)
}

func (s *MemoryInterviewStore) Create(ctx context.Context, interview *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interview.ID.IsZero() {
		interview.ID = primitive.NewObjectID()
	}
	now := s.now()
	interview.CreatedAt, interview.UpdatedAt = now, now
	if interview.Questions == nil {
		interview.Questions = []model.Question{}
	}
	s.docs[interview.ID] = clone(interview)
	return nil
}

func (s *MemoryInterviewStore) FindByID(ctx context.Context, id string) (*model.Interview, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ErrInvalidInterviewID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[oid]
	if !ok {
		return nil, util.ErrInterviewNotFound
	}
	return clone(doc), nil
}

func (s *MemoryInterviewStore) FindOwned(ctx context.Context, id string, candidateID uint) (*model.Interview, error) {
	doc, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.CandidateID != candidateID {
		return nil, util.ErrInterviewNotFound
	}
	return doc, nil
}

func (s *MemoryInterviewStore) FindLatestByCandidate(ctx context.Context, candidateID uint) (*model.Interview, error) {
	list, _ := s.ListByCandidate(ctx, candidateID)
	if len(list) == 0 {
		return nil, util.ErrInterviewNotFound
	}
	return &list[0], nil
}

func (s *MemoryInterviewStore) ListByCandidate(ctx context.Context, candidateID uint) ([]model.Interview, error) {
	return s.list(func(iv *model.Interview) bool { return iv.CandidateID == candidateID }), nil
}

func (s *MemoryInterviewStore) ListCompleted(ctx context.Context) ([]model.Interview, error) {
	return s.list(func(iv *model.Interview) bool { return iv.Status == model.StatusCompleted }), nil
}

func (s *MemoryInterviewStore) SetAnswer(ctx context.Context, id primitive.ObjectID, candidateID uint, index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok || doc.CandidateID != candidateID || doc.Status != model.StatusInProgress {
		return util.ErrInterviewNotInProgress
	}
	if index < 0 || index >= len(doc.Questions) {
		return util.ErrQuestionIndexOutOfRange
	}
	doc.Questions[index].Answer = answer
	doc.UpdatedAt = s.now()
	return nil
}

func (s *MemoryInterviewStore) Replace(ctx context.Context, interview *model.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[interview.ID]; !ok {
		return util.ErrInterviewNotFound
	}
	interview.UpdatedAt = s.now()
	s.docs[interview.ID] = clone(interview)
	return nil
}

func (s *MemoryInterviewStore) CompleteInterview(ctx context.Context, id primitive.ObjectID, from []model.InterviewStatus, scores map[int]int, totalScore int, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CompleteErr != nil {
		return s.CompleteErr
	}
	doc, ok := s.docs[id]
	if !ok || !slices.Contains(from, doc.Status) {
		return util.ErrInterviewNotFound
	}
	for i, score := range scores {
		if i >= 0 && i < len(doc.Questions) {
			score := score
			doc.Questions[i].Score = &score
		}
	}
	doc.TotalScore = totalScore
	doc.Summary = summary
	doc.Status = model.StatusCompleted
	doc.UpdatedAt = s.now()
	return nil
}

func (s *MemoryInterviewStore) TransitionStatus(ctx context.Context, id primitive.ObjectID, from []model.InterviewStatus, to model.InterviewStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.TransitionCalls++
	if s.TransitionErr != nil {
		return s.TransitionErr
	}
	doc, ok := s.docs[id]
	if !ok || (len(from) > 0 && !slices.Contains(from, doc.Status)) {
		return util.ErrInterviewNotFound
	}
	doc.Status = to
	doc.UpdatedAt = s.now()
	return nil
}

// Get returns a copy of the stored document, or nil.
func (s *MemoryInterviewStore) Get(id primitive.ObjectID) *model.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok {
		return clone(doc)
	}
	return nil
}

// Put stores a document as-is, bypassing lifecycle rules.
func (s *MemoryInterviewStore) Put(interview *model.Interview) *model.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	if interview.ID.IsZero() {
		interview.ID = primitive.NewObjectID()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = s.now()
	}
	s.docs[interview.ID] = clone(interview)
	return interview
}

func (s *MemoryInterviewStore) list(match func(*model.Interview) bool) []model.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Interview{}
	for _, doc := range s.docs {
		if match(doc) {
			out = append(out, *clone(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func clone(iv *model.Interview) *model.Interview {
	cp := *iv
	cp.Questions = make([]model.Question, len(iv.Questions))
	for i, q := range iv.Questions {
		if q.Score != nil {
			score := *q.Score
			q.Score = &score
		}
		cp.Questions[i] = q
	}
	if iv.InterviewerID != nil {
		id := *iv.InterviewerID
		cp.InterviewerID = &id
	}
	return &cp
}
