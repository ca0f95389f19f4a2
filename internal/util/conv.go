package util

import (
	"strconv"
)

// ParseUintID 解析路径中的数字ID
func ParseUintID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
