package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/minimarket/internal/model"
)

// MemoryContactRepo はインメモリのお問い合わせリポジトリ。
type MemoryContactRepo struct {
	mu       sync.RWMutex
	messages []*model.ContactMessage
}

// NewMemoryContactRepo はMemoryContactRepoを生成する。
func NewMemoryContactRepo() *MemoryContactRepo {
	return &MemoryContactRepo{}
}

// Create はお問い合わせメッセージを保存する。
func (r *MemoryContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *msg
	r.messages = append(r.messages, &clone)
	return nil
}

// DeleteReceivedBefore は指定時刻より前に受信したメッセージを削除する。
func (r *MemoryContactRepo) DeleteReceivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*model.ContactMessage
	var deleted int64
	for _, msg := range r.messages {
		if msg.ReceivedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, msg)
	}
	r.messages = kept
	return deleted, nil
}

// Count は保存されているメッセージ数を返す。テスト用。
func (r *MemoryContactRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}

// compile-time interface check
var _ ContactRepository = (*MemoryContactRepo)(nil)
