package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/minimarket/internal/model"
)

// OfferHandler は特売情報のHTTPハンドラー。
type OfferHandler struct {
	service CatalogServiceInterface
}

// NewOfferHandler はOfferHandlerを生成する。
func NewOfferHandler(service CatalogServiceInterface) *OfferHandler {
	return &OfferHandler{service: service}
}

// offerResponse は特売情報のAPIレスポンス。
type offerResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	ProductID   *int    `json:"product_id"`
	IsActive    bool    `json:"is_active"`
}

// ListOffers は特売情報一覧を返す。
// GET /api/offers?include_inactive=true
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	offers, err := h.service.ListOffers(r.Context(), includeInactive)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		responses = append(responses, toOfferResponse(o))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// GetOffer は特売情報詳細を返す。
// GET /api/offers/{id}
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("特売IDは整数で指定してください"))
		return
	}

	offer, err := h.service.GetOffer(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toOfferResponse(offer))
}

// toOfferResponse はmodel.OfferからAPIレスポンスに変換する。
func toOfferResponse(o *model.Offer) offerResponse {
	return offerResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		OldPrice:    o.OldPrice,
		NewPrice:    o.NewPrice,
		ProductID:   o.ProductID,
		IsActive:    o.IsActive,
	}
}
