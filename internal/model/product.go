// Package model はドメインモデルを定義する。
package model

// Product はスーパーマーケットの商品を表す。
type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Unit        string // 例: "kg", "item", "bottle"
	Category    string // 例: "fruits", "dairy", "bakery"
	IsAvailable bool
}

// Offer は値引き・特売情報を表す。
// ProductIDは特定商品に紐付かないオファーの場合nil。
type Offer struct {
	ID          int
	Title       string
	Description string
	OldPrice    float64
	NewPrice    float64
	ProductID   *int
	IsActive    bool
}
