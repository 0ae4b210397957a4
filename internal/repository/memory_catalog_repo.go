package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hitoshi/minimarket/internal/model"
)

// MemoryProductRepo はインメモリの商品リポジトリ。
type MemoryProductRepo struct {
	mu       sync.RWMutex
	products map[int]*model.Product
}

// NewMemoryProductRepo は商品リポジトリを生成する。
// productsが空の場合はデフォルトカタログを投入する。
func NewMemoryProductRepo(products ...*model.Product) *MemoryProductRepo {
	if len(products) == 0 {
		products = DefaultProducts()
	}
	m := make(map[int]*model.Product, len(products))
	for _, p := range products {
		clone := *p
		m[p.ID] = &clone
	}
	return &MemoryProductRepo{products: m}
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *MemoryProductRepo) FindByID(ctx context.Context, id int) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

// List は商品一覧をID昇順で返す。
func (r *MemoryProductRepo) List(ctx context.Context, category string, availableOnly bool) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*model.Product
	for _, p := range r.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if availableOnly && !p.IsAvailable {
			continue
		}
		clone := *p
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// MemoryOfferRepo はインメモリのオファーリポジトリ。
type MemoryOfferRepo struct {
	mu     sync.RWMutex
	offers map[int]*model.Offer
}

// NewMemoryOfferRepo はオファーリポジトリを生成する。
// offersが空の場合はデフォルトオファーを投入する。
func NewMemoryOfferRepo(offers ...*model.Offer) *MemoryOfferRepo {
	if len(offers) == 0 {
		offers = DefaultOffers()
	}
	m := make(map[int]*model.Offer, len(offers))
	for _, o := range offers {
		clone := *o
		m[o.ID] = &clone
	}
	return &MemoryOfferRepo{offers: m}
}

// FindByID は指定IDのオファーを取得する。見つからない場合はnilを返す。
func (r *MemoryOfferRepo) FindByID(ctx context.Context, id int) (*model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.offers[id]
	if !ok {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

// List はオファー一覧をID昇順で返す。
func (r *MemoryOfferRepo) List(ctx context.Context, includeInactive bool) ([]*model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var offers []*model.Offer
	for _, o := range r.offers {
		if !includeInactive && !o.IsActive {
			continue
		}
		clone := *o
		offers = append(offers, &clone)
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].ID < offers[j].ID })
	return offers, nil
}

// compile-time interface checks
var (
	_ ProductRepository = (*MemoryProductRepo)(nil)
	_ OfferRepository   = (*MemoryOfferRepo)(nil)
)
