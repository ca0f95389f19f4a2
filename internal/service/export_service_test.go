package service

import (
	"ai_interview_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportScoreboard(t *testing.T) {
	at := time.Date(2025, 2, 3, 14, 5, 0, 0, time.UTC)
	entries := []model.ScoreboardEntry{
		{InterviewID: "a", Candidate: &model.UserSummary{Name: "Ann", Email: "ann@example.com"}, TotalScore: 60, Summary: "Potential Hire", CreatedAt: at},
		{InterviewID: "b", Candidate: &model.UserSummary{Name: "Ben", Email: "ben@example.com"}, TotalScore: 92, Summary: "Strong Hire", CreatedAt: at},
		{InterviewID: "c", TotalScore: 60, Summary: "Potential Hire", CreatedAt: at},
	}

	buf, err := ExportScoreboard(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(scoreboardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, scoreboardHeaders, rows[0])
	assert.Equal(t, []string{"1", "b", "Ben", "ben@example.com", "92", "2025-02-03 14:05", "Strong Hire"}, rows[1])
	assert.Equal(t, "a", rows[2][1])
	// 同分保持原顺序，候选人缺失时留空
	assert.Equal(t, []string{"3", "c", "", "", "60", "2025-02-03 14:05", "Potential Hire"}, rows[3])

	assert.Equal(t, "a", entries[0].InterviewID, "input order is untouched")
}

func TestExportScoreboard_Empty(t *testing.T) {
	buf, err := ExportScoreboard(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(scoreboardSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
