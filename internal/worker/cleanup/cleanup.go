// Package cleanup はお問い合わせメッセージの自動削除ジョブを提供する。
// 保持期間（デフォルト180日）を超過したメッセージを日次バッチで削除する。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ContactPurger は受信日時が指定時刻より古いメッセージを削除するインターフェース。
type ContactPurger interface {
	DeleteReceivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CleanupJob は保持期間を超過したお問い合わせメッセージの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	purger        ContactPurger
	logger        *slog.Logger
	RetentionDays int // メッセージの保持日数（デフォルト: 180）
	Interval      time.Duration
}

// NewCleanupJob は新しいCleanupJobを生成する。
// デフォルトの保持日数は180日、実行間隔は24時間。
func NewCleanupJob(purger ContactPurger, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		purger:        purger,
		logger:        logger,
		RetentionDays: 180,
		Interval:      24 * time.Hour,
	}
}

// Run は保持期間を超過したメッセージを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	cutoff := start.AddDate(0, 0, -j.RetentionDays)

	deletedCount, err := j.purger.DeleteReceivedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("お問い合わせクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.RetentionDays),
		)
		return fmt.Errorf("お問い合わせクリーンアップの実行に失敗: %w", err)
	}

	duration := time.Since(start)
	j.logger.Info("お問い合わせクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Int("retention_days", j.RetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// RunLoop は起動時に1回実行した後、Intervalごとにジョブを繰り返す。
// コンテキストのキャンセルで終了する。
func (j *CleanupJob) RunLoop(ctx context.Context) error {
	if err := j.Run(ctx); err != nil {
		// 単発の失敗ではループを止めない
		j.logger.Warn("クリーンアップ実行に失敗しましたが継続します", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("クリーンアップ実行に失敗しましたが継続します", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
