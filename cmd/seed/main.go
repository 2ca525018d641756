package main

import (
	"context"                 // Context for store operations
	"errors"                  // Sentinel error checks
	"stocker/internal/config" // Custom import path (Config)
	"stocker/internal/db"     // Custom import path (Database)
	"stocker/internal/store"  // Custom import path (table backends)

	"github.com/sirupsen/logrus"
)

// Demo stock listings created by the seeder
var seedStocks = []struct {
	Symbol string
	Name   string
	Price  float64
}{
	{"ACME", "Acme Co", 10.0},
	{"GLOBX", "Globex Corporation", 54.25},
	{"INITECH", "Initech LLC", 23.10},
	{"UMBRL", "Umbrella Holdings", 87.60},
}

// Main entry point for seeding demo stock listings
func main() {
	cfg := config.LoadConfig() // Load configuration

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()
	table, local := store.Open(ctx, cfg)
	if local {
		logrus.Warn("Seeding the in-memory table only lasts for this process")
	}
	database := db.New(table, local, cfg.AdminEmail)

	for _, s := range seedStocks {
		err := database.CreateStock(ctx, s.Symbol, s.Name, s.Price)
		switch {
		case errors.Is(err, db.ErrStockExists):
			logrus.WithField("symbol", s.Symbol).Info("Already listed, skipping")
		case err != nil:
			logrus.WithField("symbol", s.Symbol).Fatalf("seed failed: %v", err)
		}
	}
	logrus.Info("Seeding completed.")
}
