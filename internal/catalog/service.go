// Package catalog は商品・オファー閲覧のドメインロジックを提供する。
package catalog

import (
	"context"
	"fmt"

	"github.com/hitoshi/minimarket/internal/model"
	"github.com/hitoshi/minimarket/internal/repository"
)

// Service はカタログ閲覧のサービス層。読み取り専用。
type Service struct {
	productRepo repository.ProductRepository
	offerRepo   repository.OfferRepository
}

// NewService はServiceを生成する。
func NewService(productRepo repository.ProductRepository, offerRepo repository.OfferRepository) *Service {
	return &Service{productRepo: productRepo, offerRepo: offerRepo}
}

// ListProducts は商品一覧を返す。
// categoryが空でない場合は大文字小文字を区別せず絞り込む。
func (s *Service) ListProducts(ctx context.Context, category string, availableOnly bool) ([]*model.Product, error) {
	products, err := s.productRepo.List(ctx, category, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("商品一覧の取得に失敗しました: %w", err)
	}
	return products, nil
}

// GetProduct は指定IDの商品を返す。見つからない場合はPRODUCT_NOT_FOUNDを返す。
func (s *Service) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("商品の取得に失敗しました: %w", err)
	}
	if product == nil {
		return nil, model.NewProductNotFoundError(id)
	}
	return product, nil
}

// ListOffers はオファー一覧を返す。
func (s *Service) ListOffers(ctx context.Context, includeInactive bool) ([]*model.Offer, error) {
	offers, err := s.offerRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("オファー一覧の取得に失敗しました: %w", err)
	}
	return offers, nil
}

// GetOffer は指定IDのオファーを返す。見つからない場合はOFFER_NOT_FOUNDを返す。
func (s *Service) GetOffer(ctx context.Context, id int) (*model.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("オファーの取得に失敗しました: %w", err)
	}
	if offer == nil {
		return nil, model.NewOfferNotFoundError(id)
	}
	return offer, nil
}
