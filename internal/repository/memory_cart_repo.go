package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/minimarket/internal/model"
)

// cartKey はカート行の複合キー。
type cartKey struct {
	userID    string
	productID int
}

// MemoryCartRepo はインメモリのカートリポジトリ。
type MemoryCartRepo struct {
	mu    sync.RWMutex
	items map[cartKey]*model.CartItem
}

// NewMemoryCartRepo はMemoryCartRepoを生成する。
func NewMemoryCartRepo() *MemoryCartRepo {
	return &MemoryCartRepo{items: make(map[cartKey]*model.CartItem)}
}

// ListByUserID はユーザーのカート内商品一覧を商品ID昇順で返す。
func (r *MemoryCartRepo) ListByUserID(ctx context.Context, userID string) ([]*model.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*model.CartItem
	for key, item := range r.items {
		if key.userID != userID {
			continue
		}
		clone := *item
		items = append(items, &clone)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

// Add はカートに商品を追加する。同一商品が既にある場合は数量を加算する。
func (r *MemoryCartRepo) Add(ctx context.Context, item *model.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{userID: item.UserID, productID: item.ProductID}
	if existing, ok := r.items[key]; ok {
		existing.Quantity += item.Quantity
		existing.UpdatedAt = item.UpdatedAt
		return nil
	}

	clone := *item
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.items[key] = &clone
	return nil
}

// SetQuantity はカート内商品の数量を上書きする。該当行が存在しない場合はfalseを返す。
func (r *MemoryCartRepo) SetQuantity(ctx context.Context, userID string, productID, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[cartKey{userID: userID, productID: productID}]
	if !ok {
		return false, nil
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return true, nil
}

// Remove はカートから商品を削除する。該当行が存在しない場合はfalseを返す。
func (r *MemoryCartRepo) Remove(ctx context.Context, userID string, productID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{userID: userID, productID: productID}
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

// DeleteByUserID はユーザーの全カート商品を削除する。
func (r *MemoryCartRepo) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.userID == userID {
			delete(r.items, key)
		}
	}
	return nil
}

// compile-time interface check
var _ CartRepository = (*MemoryCartRepo)(nil)
