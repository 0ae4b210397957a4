package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/minimarket/internal/model"
)

// mockContactService はContactServiceInterfaceのモック実装。
type mockContactService struct {
	submitFn func(ctx context.Context, name, email, message string) (*model.ContactMessage, error)
}

func (m *mockContactService) Submit(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
	return m.submitFn(ctx, name, email, message)
}

// TestContactHandler_Submit_Success は送信成功で201と受付IDが返ることを確認する。
func TestContactHandler_Submit_Success(t *testing.T) {
	service := &mockContactService{
		submitFn: func(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
			if name != "田中" {
				t.Errorf("name = %q, want %q", name, "田中")
			}
			if email != "tanaka@example.com" {
				t.Errorf("email = %q, want %q", email, "tanaka@example.com")
			}
			return &model.ContactMessage{
				ID:         "msg-1",
				Name:       name,
				Email:      email,
				Message:    message,
				ReceivedAt: time.Now(),
			}, nil
		},
	}
	h := NewContactHandler(service)

	body, _ := json.Marshal(contactRequest{
		Name:    "田中",
		Email:   "tanaka@example.com",
		Message: "営業時間を教えてください。",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp contactResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.ReceivedAt.IsZero() {
		t.Error("received_at should be set")
	}
}

// TestContactHandler_Submit_ValidationError は不正な入力で400が返ることを確認する。
func TestContactHandler_Submit_ValidationError(t *testing.T) {
	service := &mockContactService{
		submitFn: func(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
			return nil, model.NewInvalidRequestError("メールアドレスの形式が正しくありません")
		},
	}
	h := NewContactHandler(service)

	body, _ := json.Marshal(contactRequest{Name: "田中", Email: "not-an-email", Message: "test"})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// TestContactHandler_Submit_InvalidBody は不正なJSONで400が返ることを確認する。
func TestContactHandler_Submit_InvalidBody(t *testing.T) {
	service := &mockContactService{
		submitFn: func(ctx context.Context, name, email, message string) (*model.ContactMessage, error) {
			t.Error("Submit should not be called")
			return nil, nil
		},
	}
	h := NewContactHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
