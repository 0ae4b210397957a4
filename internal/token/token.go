// Package token はステートレスな署名付きベアラートークンの発行と検証を提供する。
// トークンは自己完結型（HS256署名のJWT）で、サーバー側のトークン登録簿は持たない。
// そのため明示的な失効はサポートしない。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン検証の失敗種別。
var (
	// ErrMalformed はトークンの構造が不正な場合のエラー。
	ErrMalformed = errors.New("token is malformed")
	// ErrExpired はトークンの有効期限が切れている場合のエラー。
	ErrExpired = errors.New("token is expired")
	// ErrBadSignature はトークンの署名検証に失敗した場合のエラー。
	ErrBadSignature = errors.New("token signature is invalid")
)

// Issuer はユーザーIDに紐付くトークンの発行と検証を行う。
// 署名鍵はプロセス全体の設定として起動時に1回読み込み、外部に公開しない。
type Issuer struct {
	secret []byte
}

// NewIssuer はIssuerを生成する。
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Issue はユーザーIDと有効期限（now + ttl）を埋め込んだ署名付きトークンを発行する。
func (i *Issuer) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、埋め込まれたユーザーIDを返す。
// ストレージへの問い合わせは行わない（ステートレス検証）。
// アカウントが削除済みかどうかの確認は呼び出し元の責務。
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrMalformed
		}
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}

	return claims.Subject, nil
}
