package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/minimarket/internal/metrics"
	"github.com/hitoshi/minimarket/internal/middleware"
	"github.com/hitoshi/minimarket/internal/model"
)

// CartServiceInterface はカートハンドラーが必要とするサービスインターフェース。
type CartServiceInterface interface {
	// Summary はカートの内容と合計金額を集計する。
	Summary(ctx context.Context, userID string) (*model.CartSummary, error)
	// AddItem は商品をカートに追加する。既存商品は数量を加算する。
	AddItem(ctx context.Context, userID string, productID, quantity int) (*model.CartSummary, error)
	// UpdateItem はカート内商品の数量を上書きする。
	UpdateItem(ctx context.Context, userID string, productID, quantity int) (*model.CartSummary, error)
	// RemoveItem はカートから商品を削除する。
	RemoveItem(ctx context.Context, userID string, productID int) (*model.CartSummary, error)
}

// CartHandler はショッピングカートのHTTPハンドラー。
type CartHandler struct {
	service   CartServiceInterface
	collector metrics.MetricsCollector
}

// NewCartHandler はCartHandlerを生成する。
func NewCartHandler(service CartServiceInterface, collector metrics.MetricsCollector) *CartHandler {
	return &CartHandler{
		service:   service,
		collector: collector,
	}
}

// addItemRequest はカート追加リクエストのボディ。
type addItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// cartLineResponse はカート内1商品のAPIレスポンス。
type cartLineResponse struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// cartResponse はカート全体のAPIレスポンス。
type cartResponse struct {
	UserID    string             `json:"user_id"`
	Items     []cartLineResponse `json:"items"`
	Total     float64            `json:"total"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// GetCart はカートの内容を返す。
// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorizedResponse(w)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCartResponse(summary))
}

// AddItem は商品をカートに追加する。
// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorizedResponse(w)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	summary, err := h.service.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordCartOperation("add")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCartResponse(summary))
}

// UpdateItem はカート内商品の数量を上書きする。
// PATCH /api/cart/items/{productID}?quantity=3
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorizedResponse(w)
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("商品IDは整数で指定してください"))
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("quantityは整数で指定してください"))
		return
	}

	summary, err := h.service.UpdateItem(r.Context(), userID, productID, quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordCartOperation("update")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCartResponse(summary))
}

// RemoveItem はカートから商品を削除する。
// DELETE /api/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorizedResponse(w)
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("商品IDは整数で指定してください"))
		return
	}

	summary, err := h.service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordCartOperation("remove")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCartResponse(summary))
}

// toCartResponse はmodel.CartSummaryからAPIレスポンスに変換する。
func toCartResponse(summary *model.CartSummary) cartResponse {
	items := make([]cartLineResponse, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		items = append(items, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Unit:      line.Unit,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}

	return cartResponse{
		UserID:    summary.UserID,
		Items:     items,
		Total:     summary.Total,
		UpdatedAt: summary.UpdatedAt,
	}
}
