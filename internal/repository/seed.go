package repository

import "github.com/hitoshi/minimarket/internal/model"

// DefaultProducts はストアフロントの初期商品カタログを返す。
// インメモリバックエンド用。PostgreSQLではマイグレーションが同じデータを投入する。
func DefaultProducts() []*model.Product {
	return []*model.Product{
		{ID: 1, Name: "Fresh Red Apples", Description: "Crisp and juicy red apples, perfect for snacks and desserts", Price: 2.49, Unit: "kg", Category: "fruits", IsAvailable: true},
		{ID: 2, Name: "Whole Milk 1L", Description: "Rich and creamy whole milk, ideal for coffee and cereal", Price: 1.39, Unit: "bottle", Category: "dairy", IsAvailable: true},
		{ID: 3, Name: "White Bread", Description: "Freshly baked white bread, 500g loaf", Price: 1.99, Unit: "item", Category: "bakery", IsAvailable: true},
		{ID: 4, Name: "Free Range Eggs", Description: "12 large free-range eggs", Price: 3.29, Unit: "item", Category: "dairy", IsAvailable: true},
		{ID: 5, Name: "Potato Chips", Description: "Crispy salted potato chips, 150g bag", Price: 0.99, Unit: "item", Category: "snacks", IsAvailable: true},
		{ID: 6, Name: "Orange Juice", Description: "Fresh orange juice, 1L bottle", Price: 2.99, Unit: "bottle", Category: "drinks", IsAvailable: true},
	}
}

// DefaultOffers はストアフロントの初期オファー一覧を返す。
func DefaultOffers() []*model.Offer {
	return []*model.Offer{
		{ID: 1, Title: "Organic Bananas", Description: "This week only — perfectly ripe and full of flavor.", OldPrice: 1.99, NewPrice: 1.29, IsActive: true},
		{ID: 2, Title: "Olive Oil", Description: "Premium extra virgin olive oil — limited stock.", OldPrice: 12.50, NewPrice: 9.99, IsActive: true},
		{ID: 3, Title: "Breakfast Bundle", Description: "Milk + eggs + bread combo discount.", OldPrice: 10.49, NewPrice: 7.99, IsActive: true},
	}
}
