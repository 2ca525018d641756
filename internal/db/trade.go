package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stocker/internal/domain"
	"stocker/internal/store"
)

// CreateTransaction records a trade and then recomputes the holding.
// The two writes are deliberately not atomic: when the holding step
// rejects a SELL that would go negative, the transaction row already
// written stays in the history. The caller sees the rejection; the
// history and the portfolio disagree for that trade.
func (d *Database) CreateTransaction(ctx context.Context, email, symbol, action string, quantity int, price float64) (string, error) {
	if quantity <= 0 {
		return "", ErrInvalidQuantity
	}
	tx := domain.Transaction{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Action:    action,
		Quantity:  quantity,
		Price:     price,
		Total:     price * float64(quantity),
		Timestamp: time.Now().Unix(),
	}
	if err := d.table.Put(ctx, tx.Item(email), false); err != nil {
		return "", fmt.Errorf("record transaction: %w", err)
	}
	if err := d.UpdateHolding(ctx, email, symbol, action, quantity); err != nil {
		logrus.WithFields(logrus.Fields{
			"email":  email,
			"symbol": symbol,
			"action": action,
			"error":  err.Error(),
		}).Error("Holding update failed after transaction was recorded")
		return "", err
	}
	logrus.WithFields(logrus.Fields{
		"email":    email,
		"symbol":   symbol,
		"action":   action,
		"quantity": quantity,
		"price":    price,
	}).Info("Trade executed")
	return tx.ID, nil
}

// UpdateHolding applies a BUY or SELL to the derived holding row. It is a
// plain get-then-put; concurrent trades on the same holding can lose
// updates (see store.LocalTable). A SELL driving the quantity negative is
// rejected and leaves the holding unchanged; a quantity of zero deletes
// the row instead of storing it.
func (d *Database) UpdateHolding(ctx context.Context, email, symbol, action string, quantity int) error {
	key := domain.HoldingKey(email, symbol)
	current := 0
	item, err := d.table.Get(ctx, key)
	switch {
	case err == nil:
		current = domain.HoldingFromItem(item).Quantity
	case errors.Is(err, store.ErrNotFound):
		// absent holding counts as zero
	default:
		return err
	}

	next := current
	switch action {
	case domain.ActionBuy:
		next += quantity
	case domain.ActionSell:
		next -= quantity
	}
	if next < 0 {
		return ErrInsufficientHoldings
	}
	if next == 0 {
		return d.table.Delete(ctx, key)
	}
	holding := domain.Holding{Symbol: symbol, Quantity: next, UpdatedAt: time.Now().Unix()}
	return d.table.Put(ctx, holding.Item(email), false)
}

// GetPortfolio returns the user's current holdings
func (d *Database) GetPortfolio(ctx context.Context, email string) ([]domain.Holding, error) {
	items, err := d.table.QueryPrefix(ctx, domain.UserKey(email).PK, domain.HoldingPrefix)
	if err != nil {
		return nil, err
	}
	holdings := make([]domain.Holding, 0, len(items))
	for _, item := range items {
		holdings = append(holdings, domain.HoldingFromItem(item))
	}
	return holdings, nil
}

// GetTransactions returns the user's full trade history
func (d *Database) GetTransactions(ctx context.Context, email string) ([]domain.Transaction, error) {
	items, err := d.table.QueryPrefix(ctx, domain.UserKey(email).PK, domain.TxPrefix)
	if err != nil {
		return nil, err
	}
	txs := make([]domain.Transaction, 0, len(items))
	for _, item := range items {
		txs = append(txs, domain.TransactionFromItem(item))
	}
	return txs, nil
}
