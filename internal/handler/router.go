package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/minimarket/internal/metrics"
	"github.com/hitoshi/minimarket/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Authenticator     middleware.Authenticator
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス
	Collector metrics.MetricsCollector
	Gatherer  prometheus.Gatherer

	// サービス
	AuthService    AuthServiceInterface
	UserService    UserServiceInterface
	CatalogService CatalogServiceInterface
	CartService    CartServiceInterface
	ContactService ContactServiceInterface

	// ヘルスチェック（インメモリバックエンドの場合nil）
	HealthChecker HealthChecker
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 認証エンドポイント（登録・ログイン）にはIPキーのレート制限を適用し、
// 認証が必要なルートにはBearer認証とユーザーキーのレート制限を適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Collector))

	authHandler := NewAuthHandler(deps.AuthService, deps.UserService, deps.Collector)
	productHandler := NewProductHandler(deps.CatalogService)
	offerHandler := NewOfferHandler(deps.CatalogService)
	cartHandler := NewCartHandler(deps.CartService, deps.Collector)
	contactHandler := NewContactHandler(deps.ContactService)
	userHandler := NewUserHandler(deps.UserService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	// 認証エンドポイント（IPキーのレート制限を適用）
	r.Route("/api/auth", func(r chi.Router) {
		r.With(deps.RateLimiter.AuthMiddleware()).Post("/register", authHandler.Register)
		r.With(deps.RateLimiter.AuthMiddleware()).Post("/login", authHandler.Login)
	})

	// 商品カタログ（公開）
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
	})

	// 特売情報（公開）
	r.Route("/api/offers", func(r chi.Router) {
		r.Get("/", offerHandler.ListOffers)
		r.Get("/{id}", offerHandler.GetOffer)
	})

	// お問い合わせ（公開）
	r.Post("/api/contact", contactHandler.Submit)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: BearerAuth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewBearerAuthMiddleware(deps.Authenticator))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/auth/me", authHandler.Me)

		// カート管理
		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{productID}", cartHandler.UpdateItem)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Delete("/me", userHandler.Withdraw)
		})
	})

	return r
}
