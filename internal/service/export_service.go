package service

import (
	"ai_interview_backend/internal/model"
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

const scoreboardSheet = "Scoreboard"

var scoreboardHeaders = []string{"Rank", "Interview ID", "Candidate", "Email", "Total Score", "Completed At", "Summary"}

// ExportScoreboard 将排行榜写成 xlsx，按总分从高到低排名
func ExportScoreboard(entries []model.ScoreboardEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scoreboardSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range scoreboardHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(scoreboardSheet, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(scoreboardHeaders), 1)
	f.SetCellStyle(scoreboardSheet, "A1", lastHeader, headerStyle)

	for i, e := range rankByScore(entries) {
		row := i + 2
		name, email := "", ""
		if e.Candidate != nil {
			name, email = e.Candidate.Name, e.Candidate.Email
		}
		values := []interface{}{i + 1, e.InterviewID, name, email, e.TotalScore, e.CreatedAt.Format("2006-01-02 15:04"), e.Summary}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(scoreboardSheet, cell, v)
		}
		f.SetCellStyle(scoreboardSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), wrapStyle)
	}

	f.SetColWidth(scoreboardSheet, "A", "A", 6)
	f.SetColWidth(scoreboardSheet, "B", "B", 26)
	f.SetColWidth(scoreboardSheet, "C", "D", 24)
	f.SetColWidth(scoreboardSheet, "E", "F", 16)
	f.SetColWidth(scoreboardSheet, "G", "G", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write scoreboard workbook: %w", err)
	}
	return buf, nil
}

// rankByScore 稳定排序，同分按原顺序（即完成时间倒序）
func rankByScore(entries []model.ScoreboardEntry) []model.ScoreboardEntry {
	out := make([]model.ScoreboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out
}
