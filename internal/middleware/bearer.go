package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/minimarket/internal/model"
)

type contextKey string

// userIDContextKey はコンテキストにユーザーIDを格納するためのキー。
const userIDContextKey contextKey = "userID"

// ErrUserIDNotFound はコンテキストにユーザーIDが存在しない場合のエラー。
var ErrUserIDNotFound = errors.New("user id not found in context")

// Authenticator はBearerトークンを検証し、ユーザーIDを返すインターフェース。
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (string, error)
}

// ContextWithUserID はユーザーIDを格納した新しいコンテキストを返す。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext はコンテキストからユーザーIDを取得する。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", ErrUserIDNotFound
	}
	return userID, nil
}

// NewBearerAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証するミドルウェアを返す。
// 検証に成功した場合、ユーザーIDをコンテキストに格納して次のハンドラーへ渡す。
// トークンが不正な場合は401とWWW-Authenticateヘッダーを返す。
// APIエラー以外の失敗（ストレージ障害など）はトークンの問題ではないため500を返す。
func NewBearerAuthMiddleware(authenticator Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewTokenMalformedError())
				return
			}

			userID, err := authenticator.Authenticate(r.Context(), tokenString)
			if err != nil {
				var apiErr *model.APIError
				if errors.As(err, &apiErr) {
					w.Header().Set("WWW-Authenticate", "Bearer")
					WriteErrorResponse(w, http.StatusUnauthorized, apiErr)
				} else {
					slog.Error("token authentication failed",
						slog.String("error", err.Error()),
					)
					WriteInternalServerError(w)
				}
				return
			}

			ctx := ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken はAuthorizationヘッダーからBearerトークンを取り出す。
// スキーム名の大文字小文字は区別しない。
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
