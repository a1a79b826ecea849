package util

import (
	"strconv"
	"strings"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	return uint(id)
}

// OptionalUint returns nil for empty input and an error for anything that is
// not an unsigned integer.
func OptionalUint(s string) (*uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, err
	}
	v := uint(id)
	return &v, nil
}

// ParseBool accepts the checkbox-style values browsers send in multipart forms.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}
