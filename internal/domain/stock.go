package domain

import "stocker/internal/store"

// Stock Model — a tradable listing created by an admin
type Stock struct {
	Symbol       string  `json:"symbol"`        // Ticker symbol, natural identifier
	Name         string  `json:"name"`          // Company name
	CurrentPrice float64 `json:"current_price"` // Listed price used to price orders
	CreatedAt    int64   `json:"created_at"`    // Unix seconds
}

// Item encodes the stock as a listing row
func (s Stock) Item() store.Item {
	key := StockKey(s.Symbol)
	return store.Item{
		"PK":            key.PK,
		"SK":            key.SK,
		"symbol":        s.Symbol,
		"name":          s.Name,
		"current_price": s.CurrentPrice,
		"created_at":    s.CreatedAt,
	}
}

// StockFromItem decodes a listing row
func StockFromItem(item store.Item) Stock {
	return Stock{
		Symbol:       itemString(item, "symbol"),
		Name:         itemString(item, "name"),
		CurrentPrice: itemFloat(item, "current_price"),
		CreatedAt:    itemInt64(item, "created_at"),
	}
}
