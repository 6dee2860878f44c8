package validator

import (
	"errors"
	"regexp"
	"strings"
)

// 入力が不正
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidateCredentials は登録・ログイン共通の入力検証。
func ValidateCredentials(email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidCredentials
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return ErrInvalidCredentials
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
