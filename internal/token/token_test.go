package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestIssuer_IssueAndVerify は発行したトークンからユーザーIDが復元できることを検証する。
func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"))

	tokenString, err := issuer.Issue("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userID, err := issuer.Verify(tokenString)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want %q", userID, "user-123")
	}
}

// TestIssuer_Verify_ZeroTTL はttl=0で発行したトークンが検証時点で
// 期限切れになることを検証する。
func TestIssuer_Verify_ZeroTTL(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"))

	tokenString, err := issuer.Issue("user-123", 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = issuer.Verify(tokenString)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("error = %v, want ErrExpired", err)
	}
}

// TestIssuer_Verify_Expired は期限切れトークンがErrExpiredになることを検証する。
func TestIssuer_Verify_Expired(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"))

	tokenString, err := issuer.Issue("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = issuer.Verify(tokenString)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("error = %v, want ErrExpired", err)
	}
}

// TestIssuer_Verify_NotYetExpired は有効期限内のトークンが検証に通ることを検証する。
func TestIssuer_Verify_NotYetExpired(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"))

	tokenString, err := issuer.Issue("user-123", time.Second)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(tokenString); err != nil {
		t.Errorf("Verify returned error: %v, want nil", err)
	}
}

// TestIssuer_Verify_TamperedSignature は署名を改ざんしたトークンが
// ErrBadSignatureになることを検証する。
func TestIssuer_Verify_TamperedSignature(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"))

	tokenString, err := issuer.Issue("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// 署名部の末尾1文字を書き換える
	last := tokenString[len(tokenString)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := tokenString[:len(tokenString)-1] + string(replacement)

	_, err = issuer.Verify(tampered)
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("error = %v, want ErrBadSignature", err)
	}
}

// TestIssuer_Verify_WrongSecret は別の鍵で署名されたトークンが拒否されることを検証する。
func TestIssuer_Verify_WrongSecret(t *testing.T) {
	other := NewIssuer([]byte("other-secret"))
	tokenString, err := other.Issue("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer := NewIssuer([]byte("test-secret"))
	_, err = issuer.Verify(tokenString)
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("error = %v, want ErrBadSignature", err)
	}
}

// TestIssuer_Verify_Malformed は構造が不正なトークンがErrMalformedになることを検証する。
func TestIssuer_Verify_Malformed(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"))

	for _, tokenString := range []string{"", "not-a-token", "a.b", strings.Repeat("x", 100)} {
		_, err := issuer.Verify(tokenString)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) error = %v, want ErrMalformed", tokenString, err)
		}
	}
}
