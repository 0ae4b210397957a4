package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hitoshi/minimarket/internal/model"
)

// TestMemoryCartRepo_Add_Accumulates は同一商品の追加で数量が加算されることを検証する。
func TestMemoryCartRepo_Add_Accumulates(t *testing.T) {
	repo := NewMemoryCartRepo()
	ctx := context.Background()

	item := &model.CartItem{UserID: "user-1", ProductID: 1, Quantity: 2, UpdatedAt: time.Now()}
	if err := repo.Add(ctx, item); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := repo.Add(ctx, &model.CartItem{UserID: "user-1", ProductID: 1, Quantity: 3, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("second Add returned error: %v", err)
	}

	items, err := repo.ListByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUserID returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", items[0].Quantity)
	}
}

// TestMemoryCartRepo_SetQuantity_NotFound は未登録商品の数量変更がfalseを返すことを検証する。
func TestMemoryCartRepo_SetQuantity_NotFound(t *testing.T) {
	repo := NewMemoryCartRepo()

	found, err := repo.SetQuantity(context.Background(), "user-1", 99, 5)
	if err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	if found {
		t.Error("SetQuantity should return false for missing item")
	}
}

// TestMemoryCartRepo_Remove はカートからの削除と再削除の挙動を検証する。
func TestMemoryCartRepo_Remove(t *testing.T) {
	repo := NewMemoryCartRepo()
	ctx := context.Background()

	if err := repo.Add(ctx, &model.CartItem{UserID: "user-1", ProductID: 2, Quantity: 1, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	found, err := repo.Remove(ctx, "user-1", 2)
	if err != nil || !found {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", found, err)
	}

	found, err = repo.Remove(ctx, "user-1", 2)
	if err != nil {
		t.Fatalf("second Remove returned error: %v", err)
	}
	if found {
		t.Error("second Remove should return false")
	}
}

// TestMemoryCartRepo_DeleteByUserID はユーザー単位の全削除が
// 他ユーザーのカートに影響しないことを検証する。
func TestMemoryCartRepo_DeleteByUserID(t *testing.T) {
	repo := NewMemoryCartRepo()
	ctx := context.Background()

	repo.Add(ctx, &model.CartItem{UserID: "user-1", ProductID: 1, Quantity: 1, UpdatedAt: time.Now()})
	repo.Add(ctx, &model.CartItem{UserID: "user-1", ProductID: 2, Quantity: 1, UpdatedAt: time.Now()})
	repo.Add(ctx, &model.CartItem{UserID: "user-2", ProductID: 1, Quantity: 1, UpdatedAt: time.Now()})

	if err := repo.DeleteByUserID(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteByUserID returned error: %v", err)
	}

	items, _ := repo.ListByUserID(ctx, "user-1")
	if len(items) != 0 {
		t.Errorf("user-1 items = %d, want 0", len(items))
	}
	others, _ := repo.ListByUserID(ctx, "user-2")
	if len(others) != 1 {
		t.Errorf("user-2 items = %d, want 1", len(others))
	}
}
