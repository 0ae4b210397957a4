// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はお問い合わせフォーム等のユーザー入力テキストを
// サニタイズし、保存・表示時のXSSリスクからユーザーを保護する。
// bluemondayの厳格ポリシーで全HTMLタグを除去し、プレーンテキストのみを残す。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はユーザー入力テキストのサニタイズ機能のインターフェースを定義する。
// お問い合わせメッセージの保存前に使用される。
type TextSanitizerService interface {
	// Sanitize は入力テキストから全HTMLタグを除去し、前後の空白を切り詰めて返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは全てのタグと属性を除去する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize は入力テキストから全HTMLタグを除去する。
func (s *textSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(s.policy.Sanitize(raw))
}

// compile-time interface check
var _ TextSanitizerService = (*textSanitizer)(nil)
