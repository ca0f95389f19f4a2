package service

import (
	"ai_interview_backend/internal/util"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeService 从上传的简历文件中提取纯文本
type ResumeService struct {
	MaxBytes int64
}

func NewResumeService(maxBytes int64) *ResumeService {
	return &ResumeService{MaxBytes: maxBytes}
}

// Extract 按扩展名选择解析方式，结果去除首尾空白
func (s *ResumeService) Extract(path, filename string) (string, error) {
	if _, ok := util.ResumeContentType(filename); !ok {
		return "", util.ErrUnsupportedResume
	}

	if s.MaxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if info.Size() > s.MaxBytes {
			return "", fmt.Errorf("%w: file exceeds %d bytes", util.ErrUnsupportedResume, s.MaxBytes)
		}
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(path)
	default:
		text, err = extractText(path)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", util.ErrEmptyResume
	}
	return text, nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUnsupportedResume, err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes.ToValidUTF8(data, nil)), nil
}
