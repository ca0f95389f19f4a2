package service

import (
	"ai_interview_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(scores ...int) []model.Question {
	qs := make([]model.Question, len(scores))
	for i, s := range scores {
		if s < 0 {
			continue
		}
		v := s
		qs[i] = model.Question{Answer: "a", Score: &v}
	}
	return qs
}

func TestAggregateScore(t *testing.T) {
	cases := []struct {
		name      string
		questions []model.Question
		want      int
	}{
		{"no questions", nil, 0},
		{"all perfect", scored(100, 100, 100, 100, 100, 100), 100},
		{"none answered", scored(-1, -1, -1), 0},
		{"one of five answered", scored(100, -1, -1, -1, -1), 20},
		{"rounds half up", scored(50, 51), 51},
		{"rounds down", scored(10, 10, 11), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AggregateScore(tc.questions))
		})
	}
}
