// Package model はドメインモデルを定義する。
package model

import "time"

// CartItem はユーザーのカート内の1商品を表す。
// (UserID, ProductID)の組み合わせで一意。
type CartItem struct {
	ID        string
	UserID    string
	ProductID int
	Quantity  int
	UpdatedAt time.Time
}

// CartLine はカート内の1商品に商品情報と小計を結合した表示用モデル。
type CartLine struct {
	ProductID int
	Name      string
	Unit      string
	UnitPrice float64
	Quantity  int
	LineTotal float64
}

// CartSummary はカート全体の集計結果を表す。
type CartSummary struct {
	UserID    string
	Lines     []CartLine
	Total     float64
	UpdatedAt time.Time
}

// ContactMessage はお問い合わせフォームから送信されたメッセージを表す。
type ContactMessage struct {
	ID         string
	Name       string
	Email      string
	Message    string
	ReceivedAt time.Time
}
