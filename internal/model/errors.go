// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, catalog, cart, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateIdentity  = "DUPLICATE_IDENTITY"
	ErrCodeInvalidCredential  = "INVALID_CREDENTIAL"
	ErrCodeAuthFailure        = "AUTH_FAILURE"
	ErrCodeTokenMalformed     = "TOKEN_MALFORMED"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenBadSignature  = "TOKEN_BAD_SIGNATURE"
	ErrCodeAccountRemoved     = "ACCOUNT_REMOVED"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOfferNotFound      = "OFFER_NOT_FOUND"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodeCartItemNotFound   = "CART_ITEM_NOT_FOUND"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
)

// NewDuplicateIdentityError はユーザー名重複エラーを生成する。
func NewDuplicateIdentityError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateIdentity,
		Message:  fmt.Sprintf("このユーザー名は既に使用されています: %s", username),
		Category: "auth",
		Action:   "別のユーザー名で登録してください。",
	}
}

// NewInvalidCredentialError は登録時のパスワード・ユーザー名ポリシー違反エラーを生成する。
func NewInvalidCredentialError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredential,
		Message:  fmt.Sprintf("登録内容が要件を満たしていません: %s", reason),
		Category: "validation",
		Action:   "ユーザー名とパスワードの要件を確認してください。",
	}
}

// NewAuthFailureError はログイン失敗エラーを生成する。
// ユーザー不在とパスワード不一致を区別しない（情報漏洩防止）。
func NewAuthFailureError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthFailure,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewTokenMalformedError は形式不正トークンエラーを生成する。
func NewTokenMalformedError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenMalformed,
		Message:  "認証トークンの形式が不正です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewTokenExpiredError は期限切れトークンエラーを生成する。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenExpired,
		Message:  "認証トークンの有効期限が切れています。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewTokenBadSignatureError は署名不正トークンエラーを生成する。
func NewTokenBadSignatureError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenBadSignature,
		Message:  "認証トークンの署名が検証できませんでした。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewAccountRemovedError はトークンは有効だがアカウントが存在しない場合のエラーを生成する。
func NewAccountRemovedError() *APIError {
	return &APIError{
		Code:     ErrCodeAccountRemoved,
		Message:  "このアカウントは削除されています。",
		Category: "auth",
		Action:   "新規登録してください。",
	}
}

// NewProductNotFoundError は商品未検出エラーを生成する。
func NewProductNotFoundError(productID int) *APIError {
	return &APIError{
		Code:     ErrCodeProductNotFound,
		Message:  fmt.Sprintf("指定された商品が見つかりません: %d", productID),
		Category: "catalog",
		Action:   "商品IDを確認してください。",
	}
}

// NewOfferNotFoundError はオファー未検出エラーを生成する。
func NewOfferNotFoundError(offerID int) *APIError {
	return &APIError{
		Code:     ErrCodeOfferNotFound,
		Message:  fmt.Sprintf("指定されたオファーが見つかりません: %d", offerID),
		Category: "catalog",
		Action:   "オファーIDを確認してください。",
	}
}

// NewProductUnavailableError は在庫切れ商品のカート追加エラーを生成する。
func NewProductUnavailableError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeProductUnavailable,
		Message:  fmt.Sprintf("商品「%s」は現在取り扱いがありません。", name),
		Category: "cart",
		Action:   "在庫のある商品を選択してください。",
	}
}

// NewCartItemNotFoundError はカート内商品未検出エラーを生成する。
func NewCartItemNotFoundError(productID int) *APIError {
	return &APIError{
		Code:     ErrCodeCartItemNotFound,
		Message:  fmt.Sprintf("カートに該当商品がありません: %d", productID),
		Category: "cart",
		Action:   "カートの内容を確認してください。",
	}
}

// NewInvalidRequestError はリクエスト形式不正エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}
