// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/minimarket/internal/metrics"
	"github.com/hitoshi/minimarket/internal/middleware"
	"github.com/hitoshi/minimarket/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Register は新規ユーザーを登録する。
	Register(ctx context.Context, username, password string) (*model.User, error)
	// Login は資格情報を検証し、アクセストークンを発行する。
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetByID はユーザー情報を取得する。
	GetByID(ctx context.Context, userID string) (*model.User, error)
	// Withdraw はユーザーアカウントと関連データを削除する。
	Withdraw(ctx context.Context, userID string) error
}

// AuthHandler はトークン認証関連のHTTPハンドラー。
type AuthHandler struct {
	service     AuthServiceInterface
	userService UserServiceInterface
	collector   metrics.MetricsCollector
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, userService UserServiceInterface, collector metrics.MetricsCollector) *AuthHandler {
	return &AuthHandler{
		service:     service,
		userService: userService,
		collector:   collector,
	}
}

// credentialRequest は登録・ログインリクエストのボディ。
type credentialRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// tokenResponse はログイン成功時のAPIレスポンス。
type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
}

// Register は新規ユーザー登録を処理する。
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.collector.RecordRegisterFailure("invalid_body")
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeDuplicateIdentity {
			h.collector.RecordRegisterFailure("duplicate")
		} else {
			h.collector.RecordRegisterFailure("validation")
		}
		handleServiceError(w, err)
		return
	}

	h.collector.RecordRegisterSuccess()
	slog.Info("user registered", slog.String("user_id", user.ID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// Login は資格情報を検証し、Bearerトークンを発行する。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.collector.RecordLoginFailure()
		handleServiceError(w, err)
		return
	}

	h.collector.RecordLoginSuccess()
	slog.Info("user logged in", slog.String("user_id", user.ID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{
		Token:     token,
		TokenType: "bearer",
		Username:  user.Username,
	})
}

// Me は現在の認証済みユーザー情報を返す。
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorizedResponse(w)
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// --- ヘルパー関数 ---

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
// パスワードハッシュは含めない。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeUnauthorizedResponse は認証切れの401レスポンスを書き込む。
func writeUnauthorizedResponse(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
		Code:     "UNAUTHORIZED",
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeDuplicateIdentity:
		return http.StatusConflict
	case model.ErrCodeInvalidCredential, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeAuthFailure,
		model.ErrCodeTokenMalformed,
		model.ErrCodeTokenExpired,
		model.ErrCodeTokenBadSignature,
		model.ErrCodeAccountRemoved:
		return http.StatusUnauthorized
	case model.ErrCodeProductNotFound, model.ErrCodeOfferNotFound, model.ErrCodeCartItemNotFound:
		return http.StatusNotFound
	case model.ErrCodeProductUnavailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
