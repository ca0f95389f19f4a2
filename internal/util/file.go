package util

import (
	"path/filepath"
	"strings"
)

// ResumeContentType 根据扩展名判断简历类型，不支持时返回 false
func ResumeContentType(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MimePDF, true
	case ".txt":
		return MimeText, true
	}
	return "", false
}
