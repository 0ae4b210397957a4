package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/minimarket/internal/model"
)

// TestOfferHandler_ListOffers_DefaultActiveOnly はデフォルトで有効な特売のみサービスに要求することを確認する。
func TestOfferHandler_ListOffers_DefaultActiveOnly(t *testing.T) {
	service := &mockCatalogService{
		listOffersFn: func(ctx context.Context, includeInactive bool) ([]*model.Offer, error) {
			if includeInactive {
				t.Error("includeInactive = true, want false")
			}
			productID := 1
			return []*model.Offer{
				{ID: 1, Title: "りんご特売", OldPrice: 2.49, NewPrice: 1.99, ProductID: &productID, IsActive: true},
			}, nil
		},
	}
	h := NewOfferHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/offers", nil)
	rec := httptest.NewRecorder()

	h.ListOffers(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp []offerResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("len(resp) = %d, want 1", len(resp))
	}
	if resp[0].ProductID == nil || *resp[0].ProductID != 1 {
		t.Errorf("product_id = %v, want 1", resp[0].ProductID)
	}
}

// TestOfferHandler_ListOffers_IncludeInactive はinclude_inactiveパラメータが渡ることを確認する。
func TestOfferHandler_ListOffers_IncludeInactive(t *testing.T) {
	service := &mockCatalogService{
		listOffersFn: func(ctx context.Context, includeInactive bool) ([]*model.Offer, error) {
			if !includeInactive {
				t.Error("includeInactive = false, want true")
			}
			return nil, nil
		},
	}
	h := NewOfferHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/offers?include_inactive=true", nil)
	rec := httptest.NewRecorder()

	h.ListOffers(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// TestOfferHandler_GetOffer_NotFound は存在しない特売で404が返ることを確認する。
func TestOfferHandler_GetOffer_NotFound(t *testing.T) {
	service := &mockCatalogService{
		getOfferFn: func(ctx context.Context, id int) (*model.Offer, error) {
			return nil, model.NewOfferNotFoundError(id)
		},
	}
	h := NewOfferHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/offers/42", nil)
	req = withURLParam(req, "id", "42")
	rec := httptest.NewRecorder()

	h.GetOffer(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// TestOfferHandler_GetOffer_InvalidID は非整数IDで400が返ることを確認する。
func TestOfferHandler_GetOffer_InvalidID(t *testing.T) {
	h := NewOfferHandler(&mockCatalogService{})

	req := httptest.NewRequest(http.MethodGet, "/api/offers/xyz", nil)
	req = withURLParam(req, "id", "xyz")
	rec := httptest.NewRecorder()

	h.GetOffer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
