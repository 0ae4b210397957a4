package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// testRateLimiterConfig はテスト用の小さなレート制限設定を返す。
func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0), // 1 req/sec
		GeneralBurst:    2,
		AuthRate:        rate.Limit(1.0),
		AuthBurst:       1,
		CleanupInterval: time.Hour,
	}
}

// TestGeneralMiddleware_AllowsWithinBurst はバースト内のリクエストが許可されることを確認する。
func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

// TestGeneralMiddleware_BlocksOverBurst はバーストを超えたリクエストが429になることを確認する。
func TestGeneralMiddleware_BlocksOverBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var lastCode int
	var lastRec *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
		lastRec = rec
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", lastCode, http.StatusTooManyRequests)
	}
	if lastRec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be set")
	}
}

// TestGeneralMiddleware_IndependentPerUser はユーザーごとにリミッターが独立していることを確認する。
func TestGeneralMiddleware_IndependentPerUser(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// user-1のバーストを使い切る
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-1"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// user-2は影響を受けない
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "user-2"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("GeneralLimiterCount() = %d, want 2", got)
	}
}

// TestGeneralMiddleware_Unauthenticated はユーザーIDなしで401になることを確認する。
func TestGeneralMiddleware_Unauthenticated(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestAuthMiddleware_KeyedByClientIP は認証エンドポイントのレート制限がIPごとであることを確認する。
func TestAuthMiddleware_KeyedByClientIP(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// 同一IPから2回目でバースト(1)超過
	req1 := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req1.RemoteAddr = "10.0.0.1:51000"
	handler.ServeHTTP(httptest.NewRecorder(), req1)

	req2 := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req2.RemoteAddr = "10.0.0.1:51001"
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("same IP second request: status = %d, want %d", rec2.Code, http.StatusTooManyRequests)
	}

	// 別IPは許可される
	req3 := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req3.RemoteAddr = "10.0.0.2:51000"
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)

	if rec3.Code != http.StatusOK {
		t.Errorf("different IP: status = %d, want %d", rec3.Code, http.StatusOK)
	}

	if got := rl.AuthLimiterCount(); got != 2 {
		t.Errorf("AuthLimiterCount() = %d, want 2", got)
	}
}

// TestRateLimiter_Cleanup は期限切れエントリがクリーンアップされることを確認する。
func TestRateLimiter_Cleanup(t *testing.T) {
	config := testRateLimiterConfig()
	config.CleanupInterval = 10 * time.Millisecond
	rl := NewRateLimiter(config)
	defer rl.Stop()

	rl.getOrCreateLimiter(&rl.generalMu, rl.generalLimiters, "user-1", config.GeneralRate, config.GeneralBurst)

	if got := rl.GeneralLimiterCount(); got != 1 {
		t.Fatalf("GeneralLimiterCount() = %d, want 1", got)
	}

	// 最終アクセス時刻を過去に設定してクリーンアップを実行
	rl.generalMu.Lock()
	rl.generalLimiters["user-1"].lastAccess = time.Now().Add(-time.Hour)
	rl.generalMu.Unlock()

	rl.cleanup()

	if got := rl.GeneralLimiterCount(); got != 0 {
		t.Errorf("GeneralLimiterCount() after cleanup = %d, want 0", got)
	}
}
