package domain

import "stocker/internal/store"

// Trade actions
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// Transaction Model — an immutable trade record, append-only
type Transaction struct {
	ID        string  `json:"transaction_id"` // Generated UUID
	Symbol    string  `json:"symbol"`         // Traded symbol
	Action    string  `json:"action"`         // BUY or SELL
	Quantity  int     `json:"quantity"`       // Number of shares
	Price     float64 `json:"price"`          // Per-share price at execution
	Total     float64 `json:"total"`          // Price × quantity
	Timestamp int64   `json:"timestamp"`      // Unix seconds, part of the sort key
}

// Item encodes the transaction under the owner's partition
func (t Transaction) Item(email string) store.Item {
	key := TransactionKey(email, t.Timestamp, t.ID)
	return store.Item{
		"PK":             key.PK,
		"SK":             key.SK,
		"transaction_id": t.ID,
		"symbol":         t.Symbol,
		"action":         t.Action,
		"quantity":       t.Quantity,
		"price":          t.Price,
		"total":          t.Total,
		"timestamp":      t.Timestamp,
	}
}

// TransactionFromItem decodes a transaction row
func TransactionFromItem(item store.Item) Transaction {
	return Transaction{
		ID:        itemString(item, "transaction_id"),
		Symbol:    itemString(item, "symbol"),
		Action:    itemString(item, "action"),
		Quantity:  itemInt(item, "quantity"),
		Price:     itemFloat(item, "price"),
		Total:     itemFloat(item, "total"),
		Timestamp: itemInt64(item, "timestamp"),
	}
}
