package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hitoshi/minimarket/internal/model"
)

// MemoryUserRepo はインメモリのユーザーリポジトリ。
// プロセス再起動でデータは消える。開発・テスト用。
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User // key: ID
}

// NewMemoryUserRepo はMemoryUserRepoを生成する。
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*model.User)}
}

// Create はユーザーを作成する。
// 重複判定と挿入をロック内で行い、並行登録の競合を閉じる。
func (r *MemoryUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, user.Username) {
			return ErrDuplicateUsername
		}
	}

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

// FindByUsername はユーザー名の完全一致でユーザーを取得する。見つからない場合はnilを返す。
func (r *MemoryUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

// ExistsByID は指定IDのユーザーが存在するか判定する。
func (r *MemoryUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// DeleteByID は指定IDのユーザーを削除する。見つからない場合はエラーを返す。
func (r *MemoryUserRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	delete(r.users, id)
	return nil
}

// compile-time interface check
var _ UserRepository = (*MemoryUserRepo)(nil)
