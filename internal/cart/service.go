// Package cart はユーザーごとのカート操作のドメインロジックを提供する。
package cart

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/minimarket/internal/model"
	"github.com/hitoshi/minimarket/internal/repository"
)

// 数量の許容範囲。
const (
	quantityMin = 1
	quantityMax = 999
)

// Service はカート操作のサービス層。
type Service struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewService はServiceを生成する。
func NewService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *Service {
	return &Service{cartRepo: cartRepo, productRepo: productRepo}
}

// Summary はユーザーのカート集計を返す。
// カタログから削除済みの商品はスキップする。
func (s *Service) Summary(ctx context.Context, userID string) (*model.CartSummary, error) {
	items, err := s.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("カートの取得に失敗しました: %w", err)
	}

	summary := &model.CartSummary{
		UserID: userID,
		Lines:  []model.CartLine{},
	}

	var total float64
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("商品の取得に失敗しました: %w", err)
		}
		if product == nil {
			continue
		}

		lineTotal := roundToCents(product.Price * float64(item.Quantity))
		total += lineTotal

		summary.Lines = append(summary.Lines, model.CartLine{
			ProductID: item.ProductID,
			Name:      product.Name,
			Unit:      product.Unit,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})

		if item.UpdatedAt.After(summary.UpdatedAt) {
			summary.UpdatedAt = item.UpdatedAt
		}
	}

	summary.Total = roundToCents(total)
	if summary.UpdatedAt.IsZero() {
		summary.UpdatedAt = time.Now()
	}

	return summary, nil
}

// AddItem はカートに商品を追加し、更新後の集計を返す。
// 同一商品が既にある場合は数量を加算する。
func (s *Service) AddItem(ctx context.Context, userID string, productID, quantity int) (*model.CartSummary, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("商品の取得に失敗しました: %w", err)
	}
	if product == nil {
		return nil, model.NewProductNotFoundError(productID)
	}
	if !product.IsAvailable {
		return nil, model.NewProductUnavailableError(product.Name)
	}

	item := &model.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}
	if err := s.cartRepo.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("カートへの追加に失敗しました: %w", err)
	}

	return s.Summary(ctx, userID)
}

// UpdateItem はカート内商品の数量を上書きし、更新後の集計を返す。
func (s *Service) UpdateItem(ctx context.Context, userID string, productID, quantity int) (*model.CartSummary, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	found, err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("カートの更新に失敗しました: %w", err)
	}
	if !found {
		return nil, model.NewCartItemNotFoundError(productID)
	}

	return s.Summary(ctx, userID)
}

// RemoveItem はカートから商品を削除し、更新後の集計を返す。
func (s *Service) RemoveItem(ctx context.Context, userID string, productID int) (*model.CartSummary, error) {
	found, err := s.cartRepo.Remove(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("カートからの削除に失敗しました: %w", err)
	}
	if !found {
		return nil, model.NewCartItemNotFoundError(productID)
	}

	return s.Summary(ctx, userID)
}

// validateQuantity は数量の許容範囲を検査する。
func validateQuantity(quantity int) error {
	if quantity < quantityMin || quantity > quantityMax {
		return model.NewInvalidRequestError(
			fmt.Sprintf("数量は%d〜%dの範囲で指定してください", quantityMin, quantityMax))
	}
	return nil
}

// roundToCents は金額を小数第2位に丸める。
func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
