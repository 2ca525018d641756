package domain

import "stocker/internal/store"

// Holding Model — a user's current quantity of one symbol, derived from
// the transaction history. Quantity is never negative; a holding that
// reaches zero is deleted rather than stored.
type Holding struct {
	Symbol    string `json:"symbol"`
	Quantity  int    `json:"quantity"`
	UpdatedAt int64  `json:"updated_at"` // Unix seconds
}

// Item encodes the holding under the owner's partition
func (h Holding) Item(email string) store.Item {
	key := HoldingKey(email, h.Symbol)
	return store.Item{
		"PK":         key.PK,
		"SK":         key.SK,
		"symbol":     h.Symbol,
		"quantity":   h.Quantity,
		"updated_at": h.UpdatedAt,
	}
}

// HoldingFromItem decodes a holding row
func HoldingFromItem(item store.Item) Holding {
	return Holding{
		Symbol:    itemString(item, "symbol"),
		Quantity:  itemInt(item, "quantity"),
		UpdatedAt: itemInt64(item, "updated_at"),
	}
}
