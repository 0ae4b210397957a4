// Package model はドメインモデルを定義する。
package model

import "time"

// User はストアフロントの登録ユーザーを表す。
// PasswordHashにはbcryptハッシュのみを保持し、平文パスワードは一切保存しない。
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
