package service

import (
	"ai_interview_backend/internal/model"
	"math"
)

// AggregateScore 所有题目得分之和除以题目总数后四舍五入，未作答按 0 计
func AggregateScore(questions []model.Question) int {
	if len(questions) == 0 {
		return 0
	}
	sum := 0
	for _, q := range questions {
		if q.Score != nil {
			sum += *q.Score
		}
	}
	return int(math.Round(float64(sum) / float64(len(questions))))
}
