package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InterviewStatus string

const (
	StatusPending    InterviewStatus = "pending"
	StatusInProgress InterviewStatus = "in-progress"
	StatusCompleted  InterviewStatus = "completed"
	StatusFailed     InterviewStatus = "failed"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var timeLimits = map[Difficulty]int{
	Easy:   30,
	Medium: 50,
	Hard:   80,
}

// ParseDifficulty 忽略大小写和首尾空白
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	_, ok := timeLimits[d]
	return d, ok
}

func (d Difficulty) Valid() bool {
	_, ok := timeLimits[d]
	return ok
}

// TimeLimit 每题作答秒数，由难度决定
func (d Difficulty) TimeLimit() int {
	return timeLimits[d]
}

// swagger:model Question
type Question struct {
	Text       string     `bson:"question" json:"question"`
	Difficulty Difficulty `bson:"difficulty" json:"difficulty"`
	TimeLimit  int        `bson:"time_limit" json:"timeLimit"`
	Answer     string     `bson:"answer" json:"answer"`
	Score      *int       `bson:"score,omitempty" json:"score,omitempty"`
}

func (q Question) Answered() bool {
	return strings.TrimSpace(q.Answer) != ""
}

func (q Question) Scored() bool {
	return q.Score != nil
}

// swagger:model Interview
type Interview struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CandidateID    uint               `bson:"candidate_id" json:"candidateId"`
	InterviewerID  *uint              `bson:"interviewer_id,omitempty" json:"interviewerId,omitempty"`
	CandidatePhone string             `bson:"candidate_phone,omitempty" json:"candidatePhone,omitempty"`
	ResumeText     string             `bson:"resume_text,omitempty" json:"-"`
	ResumeObject   string             `bson:"resume_object,omitempty" json:"-"`
	Questions      []Question         `bson:"questions" json:"questions"`
	TotalScore     int                `bson:"total_score" json:"totalScore"`
	Summary        string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Status         InterviewStatus    `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// InterviewView 面试官查看的详情，附带候选人信息
type InterviewView struct {
	*Interview
	Candidate *UserSummary `json:"candidate,omitempty"`
}

// ScoreboardEntry 已完成面试的排行榜条目
type ScoreboardEntry struct {
	InterviewID string       `json:"interviewId"`
	Candidate   *UserSummary `json:"candidate"`
	TotalScore  int          `json:"totalScore"`
	Summary     string       `json:"summary"`
	CreatedAt   time.Time    `json:"createdAt"`
}
