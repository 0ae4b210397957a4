// Package app はアプリケーションの初期化と起動を担う。
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/minimarket/internal/auth"
	"github.com/hitoshi/minimarket/internal/cart"
	"github.com/hitoshi/minimarket/internal/catalog"
	"github.com/hitoshi/minimarket/internal/config"
	"github.com/hitoshi/minimarket/internal/contact"
	"github.com/hitoshi/minimarket/internal/credential"
	"github.com/hitoshi/minimarket/internal/database"
	"github.com/hitoshi/minimarket/internal/handler"
	"github.com/hitoshi/minimarket/internal/logger"
	"github.com/hitoshi/minimarket/internal/metrics"
	"github.com/hitoshi/minimarket/internal/middleware"
	"github.com/hitoshi/minimarket/internal/repository"
	"github.com/hitoshi/minimarket/internal/security"
	"github.com/hitoshi/minimarket/internal/token"
	"github.com/hitoshi/minimarket/internal/user"
	"github.com/hitoshi/minimarket/internal/worker/cleanup"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("store_backend", cfg.StoreBackend),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// repositories はバックエンド選択の結果をまとめた構造体。
// dbはpostgresバックエンドの場合のみ非nil。
type repositories struct {
	users    repository.UserRepository
	products repository.ProductRepository
	offers   repository.OfferRepository
	carts    repository.CartRepository
	contacts repository.ContactRepository
	db       *sql.DB
}

// openRepositories はSTORE_BACKENDに応じてリポジトリ層を構築する。
// memoryバックエンドの場合はシードデータ入りのインメモリ実装を返す。
func openRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		slog.Info("using in-memory store backend")
		return &repositories{
			users:    repository.NewMemoryUserRepo(),
			products: repository.NewMemoryProductRepo(repository.DefaultProducts()...),
			offers:   repository.NewMemoryOfferRepo(repository.DefaultOffers()...),
			carts:    repository.NewMemoryCartRepo(),
			contacts: repository.NewMemoryContactRepo(),
		}, nil
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	return &repositories{
		users:    repository.NewPostgresUserRepo(db),
		products: repository.NewPostgresProductRepo(db),
		offers:   repository.NewPostgresOfferRepo(db),
		carts:    repository.NewPostgresCartRepo(db),
		contacts: repository.NewPostgresContactRepo(db),
		db:       db,
	}, nil
}

// Close はDB接続を保持している場合に閉じる。
func (r *repositories) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// runServe はAPIサーバーモードで起動する。
// バックエンドを開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. リポジトリ層の構築
	repos, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	// 2. 認証コアの初期化
	store, err := credential.NewStore(repos.users, credential.StoreConfig{
		PasswordMinLength: cfg.PasswordMinLength,
		BcryptCost:        cfg.BcryptCost,
	})
	if err != nil {
		return fmt.Errorf("failed to create credential store: %w", err)
	}

	issuer := token.NewIssuer([]byte(cfg.JWTSecret))
	authService := auth.NewService(store, issuer, auth.ServiceConfig{TokenTTL: cfg.TokenTTL})

	// 3. ドメインサービスの初期化
	catalogService := catalog.NewService(repos.products, repos.offers)
	cartService := cart.NewService(repos.carts, repos.products)
	contactService := contact.NewService(repos.contacts, security.NewTextSanitizer())
	userService := user.NewService(repos.users, repos.carts)

	// 4. メトリクスの初期化
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	// 5. レート制限の構築（configはreq/min単位なのでreq/secに変換）
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.RateLimitGeneral) / 60.0),
		GeneralBurst:    cfg.RateLimitGeneral,
		AuthRate:        rate.Limit(float64(cfg.RateLimitAuth) / 60.0),
		AuthBurst:       cfg.RateLimitAuth,
		CleanupInterval: 5 * time.Minute,
	})
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	var healthChecker handler.HealthChecker
	if repos.db != nil {
		healthChecker = repos.db
	}

	deps := &handler.RouterDeps{
		Authenticator:     authService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),

		Collector: collector,
		Gatherer:  reg,

		AuthService:    authService,
		UserService:    userService,
		CatalogService: catalogService,
		CartService:    cartService,
		ContactService: contactService,

		HealthChecker: healthChecker,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker はワーカーモードで起動する。
// お問い合わせメッセージのクリーンアップジョブを日次で実行する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	repos, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	cleanupJob := cleanup.NewCleanupJob(repos.contacts, slog.Default())
	cleanupJob.RetentionDays = cfg.ContactRetentionDays

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Int("retention_days", cleanupJob.RetentionDays),
	)

	// クリーンアップジョブをメインgoroutineで実行（ブロッキング）
	if err := cleanupJob.RunLoop(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("cleanup worker failed: %w", err)
	}

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
// memoryバックエンドではマイグレーション対象がないためエラーになる。
func runMigrate(cfg *config.Config) error {
	if cfg.StoreBackend != config.StoreBackendPostgres {
		return fmt.Errorf("migrate command requires STORE_BACKEND=postgres")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := database.Version(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	slog.Info("database migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
