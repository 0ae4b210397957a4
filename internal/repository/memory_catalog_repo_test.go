package repository

import (
	"context"
	"testing"

	"github.com/hitoshi/minimarket/internal/model"
)

// TestMemoryProductRepo_List_DefaultSeed はデフォルトカタログが投入されることを検証する。
func TestMemoryProductRepo_List_DefaultSeed(t *testing.T) {
	repo := NewMemoryProductRepo()

	products, err := repo.List(context.Background(), "", false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 6 {
		t.Errorf("len(products) = %d, want 6", len(products))
	}
}

// TestMemoryProductRepo_List_CategoryFilter はカテゴリ絞り込みが
// 大文字小文字を区別しないことを検証する。
func TestMemoryProductRepo_List_CategoryFilter(t *testing.T) {
	repo := NewMemoryProductRepo()

	products, err := repo.List(context.Background(), "DAIRY", false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len(products) = %d, want 2", len(products))
	}
	for _, p := range products {
		if p.Category != "dairy" {
			t.Errorf("Category = %q, want %q", p.Category, "dairy")
		}
	}
}

// TestMemoryProductRepo_List_AvailableOnly は在庫切れ商品の除外を検証する。
func TestMemoryProductRepo_List_AvailableOnly(t *testing.T) {
	repo := NewMemoryProductRepo(
		&model.Product{ID: 1, Name: "In stock", Category: "misc", IsAvailable: true},
		&model.Product{ID: 2, Name: "Out of stock", Category: "misc", IsAvailable: false},
	)

	products, err := repo.List(context.Background(), "", true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 1 {
		t.Errorf("expected only the in-stock product, got %d items", len(products))
	}
}

// TestMemoryOfferRepo_List_ActiveOnly は無効オファーの除外と
// include_inactive指定時の全件取得を検証する。
func TestMemoryOfferRepo_List_ActiveOnly(t *testing.T) {
	repo := NewMemoryOfferRepo(
		&model.Offer{ID: 1, Title: "Active", IsActive: true},
		&model.Offer{ID: 2, Title: "Inactive", IsActive: false},
	)
	ctx := context.Background()

	active, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 1 || active[0].ID != 1 {
		t.Errorf("active offers = %d, want 1", len(active))
	}

	all, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all offers = %d, want 2", len(all))
	}
}

// TestMemoryOfferRepo_FindByID_NotFound は未登録IDでnilが返ることを検証する。
func TestMemoryOfferRepo_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryOfferRepo()

	offer, err := repo.FindByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if offer != nil {
		t.Errorf("offer = %+v, want nil", offer)
	}
}
