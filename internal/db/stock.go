package db

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"stocker/internal/domain"
	"stocker/internal/store"
)

// CreateStock lists a new symbol for trading. Duplicate symbols fail with
// ErrStockExists.
func (d *Database) CreateStock(ctx context.Context, symbol, name string, initialPrice float64) error {
	stock := domain.Stock{
		Symbol:       symbol,
		Name:         name,
		CurrentPrice: initialPrice,
		CreatedAt:    time.Now().Unix(),
	}
	if err := d.table.Put(ctx, stock.Item(), true); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrStockExists
		}
		return err
	}
	logrus.WithFields(logrus.Fields{
		"symbol": symbol,
		"price":  initialPrice,
	}).Info("Stock listed")
	return nil
}

// GetAllStocks returns every listed stock
func (d *Database) GetAllStocks(ctx context.Context) ([]domain.Stock, error) {
	items, err := d.table.Scan(ctx, store.ScanFilter{
		PKPrefix: domain.StockPKPrefix,
		SKEquals: domain.StockMetaSK,
	})
	if err != nil {
		return nil, err
	}
	stocks := make([]domain.Stock, 0, len(items))
	for _, item := range items {
		stocks = append(stocks, domain.StockFromItem(item))
	}
	return stocks, nil
}

// DeleteStock removes a listing so the symbol can no longer be traded.
// Past transactions and holdings keep referencing it. Deleting an unknown
// symbol is a no-op.
func (d *Database) DeleteStock(ctx context.Context, symbol string) error {
	if err := d.table.Delete(ctx, domain.StockKey(symbol)); err != nil {
		return err
	}
	logrus.WithField("symbol", symbol).Info("Stock delisted")
	return nil
}

// GetStockPrice returns the listed price for symbol, or 0 when the symbol
// is not listed. Trades are priced with this value at execution time.
func (d *Database) GetStockPrice(ctx context.Context, symbol string) float64 {
	item, err := d.table.Get(ctx, domain.StockKey(symbol))
	if err != nil {
		return 0
	}
	return domain.StockFromItem(item).CurrentPrice
}
