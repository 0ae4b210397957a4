package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/minimarket/internal/model"
)

// CatalogServiceInterface はカタログハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	// ListProducts は商品一覧を取得する。カテゴリと在庫有無で絞り込める。
	ListProducts(ctx context.Context, category string, availableOnly bool) ([]*model.Product, error)
	// GetProduct は商品詳細を取得する。
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	// ListOffers は特売情報一覧を取得する。
	ListOffers(ctx context.Context, includeInactive bool) ([]*model.Offer, error)
	// GetOffer は特売情報詳細を取得する。
	GetOffer(ctx context.Context, id int) (*model.Offer, error)
}

// ProductHandler は商品カタログのHTTPハンドラー。
type ProductHandler struct {
	service CatalogServiceInterface
}

// NewProductHandler はProductHandlerを生成する。
func NewProductHandler(service CatalogServiceInterface) *ProductHandler {
	return &ProductHandler{service: service}
}

// productResponse は商品情報のAPIレスポンス。
type productResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"is_available"`
}

// ListProducts は商品一覧を返す。
// GET /api/products?category=fruits&available_only=true
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	availableOnly := r.URL.Query().Get("available_only") == "true"

	products, err := h.service.ListProducts(r.Context(), category, availableOnly)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]productResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// GetProduct は商品詳細を返す。
// GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("商品IDは整数で指定してください"))
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(product))
}

// toProductResponse はmodel.ProductからAPIレスポンスに変換する。
func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Unit:        p.Unit,
		Category:    p.Category,
		IsAvailable: p.IsAvailable,
	}
}
