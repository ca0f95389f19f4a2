package service

import (
	"ai_interview_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResume(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestResumeService_PlainText(t *testing.T) {
	path := writeResume(t, "upload-1", []byte("\n  Jane Doe\nGo, Kubernetes, PostgreSQL\n\n"))

	text, err := NewResumeService(0).Extract(path, "Jane.TXT")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo, Kubernetes, PostgreSQL", text)
}

func TestResumeService_InvalidUTF8IsDropped(t *testing.T) {
	path := writeResume(t, "upload-2", []byte("Go\xff developer"))

	text, err := NewResumeService(0).Extract(path, "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Go developer", text)
}

func TestResumeService_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		data     string
		filename string
		maxBytes int64
		want     error
	}{
		{"whitespace only", " \n\t ", "cv.txt", 0, util.ErrEmptyResume},
		{"unsupported extension", "text", "cv.docx", 0, util.ErrUnsupportedResume},
		{"no extension", "text", "resume", 0, util.ErrUnsupportedResume},
		{"too large", strings.Repeat("x", 64), "cv.txt", 32, util.ErrUnsupportedResume},
		{"broken pdf", "not really a pdf", "cv.pdf", 0, util.ErrUnsupportedResume},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeResume(t, "upload", []byte(tc.data))
			_, err := NewResumeService(tc.maxBytes).Extract(path, tc.filename)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
