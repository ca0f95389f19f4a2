package service

import (
	"ai_interview_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// FailureAlert 面试无法被标记为 failed 时发出的告警
type FailureAlert struct {
	InterviewID string    `json:"interviewId"`
	CandidateID uint      `json:"candidateId"`
	Cause       string    `json:"cause"`
	MarkError   string    `json:"markError"`
	Attempts    int       `json:"attempts"`
	At          time.Time `json:"at"`
}

type FailureReporter interface {
	ReportFailedMarking(ctx context.Context, alert FailureAlert) error
}

const alertHistoryLimit = 1000

// RedisAlertReporter 发布到频道供运维订阅，同时保留最近的告警列表
type RedisAlertReporter struct {
	rdb     *redis.Client
	channel string
	list    string
}

func NewRedisAlertReporter(rdb *redis.Client, channel, list string) *RedisAlertReporter {
	return &RedisAlertReporter{rdb: rdb, channel: channel, list: list}
}

func (r *RedisAlertReporter) ReportFailedMarking(ctx context.Context, alert FailureAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, r.list, payload)
	pipe.LTrim(ctx, r.list, 0, alertHistoryLimit-1)
	pipe.Publish(ctx, r.channel, payload)
	_, err = pipe.Exec(ctx)
	return err
}

// LogAlertReporter 未启用 Redis 时只写错误日志
type LogAlertReporter struct{}

func (LogAlertReporter) ReportFailedMarking(ctx context.Context, alert FailureAlert) error {
	logger.Log.Error("Interview stuck in intermediate state",
		zap.String("interview_id", alert.InterviewID),
		zap.Uint("candidate_id", alert.CandidateID),
		zap.String("cause", alert.Cause),
		zap.String("mark_error", alert.MarkError),
		zap.Int("attempts", alert.Attempts),
	)
	return nil
}
