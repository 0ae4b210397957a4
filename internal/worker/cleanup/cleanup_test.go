package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

// mockContactPurger はContactPurgerのモック実装。
type mockContactPurger struct {
	deleteFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockContactPurger) DeleteReceivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.deleteFn(ctx, cutoff)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestCleanupJob_Run_UsesRetentionCutoff は保持日数に基づくカットオフ時刻で削除することを確認する。
func TestCleanupJob_Run_UsesRetentionCutoff(t *testing.T) {
	var gotCutoff time.Time
	purger := &mockContactPurger{
		deleteFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 3, nil
		},
	}

	job := NewCleanupJob(purger, testLogger())
	job.RetentionDays = 30

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantCutoff := time.Now().AddDate(0, 0, -30)
	diff := gotCutoff.Sub(wantCutoff)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("cutoff = %v, want ~%v", gotCutoff, wantCutoff)
	}
}

// TestCleanupJob_Run_NoMatches は削除対象ゼロでもエラーにならないことを確認する。
func TestCleanupJob_Run_NoMatches(t *testing.T) {
	purger := &mockContactPurger{
		deleteFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, nil
		},
	}

	job := NewCleanupJob(purger, testLogger())

	if err := job.Run(context.Background()); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

// TestCleanupJob_Run_Error は削除失敗時にエラーが返ることを確認する。
func TestCleanupJob_Run_Error(t *testing.T) {
	purger := &mockContactPurger{
		deleteFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}

	job := NewCleanupJob(purger, testLogger())

	if err := job.Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

// TestCleanupJob_RunLoop_StopsOnCancel はコンテキストキャンセルでループが終了することを確認する。
func TestCleanupJob_RunLoop_StopsOnCancel(t *testing.T) {
	purger := &mockContactPurger{
		deleteFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, nil
		},
	}

	job := NewCleanupJob(purger, testLogger())
	job.Interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- job.RunLoop(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RunLoop did not stop after cancel")
	}
}
