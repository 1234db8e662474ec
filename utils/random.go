package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateRandomToken Generate random token
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// GenerateSlug 生成指定字符数的 URL 安全随机 slug
//
// 用作分享链接的公开查找键，必须不可猜测。
func GenerateSlug(chars int) (string, error) {
	if chars <= 0 {
		chars = 16
	}
	// base64 每 3 字节产出 4 字符，多取一些再截断
	token, err := GenerateRandomToken((chars*3)/4 + 3)
	if err != nil {
		return "", err
	}
	return token[:chars], nil
}
