package db

import (
	"context"
	"errors"
	"testing"

	"stocker/internal/domain"
	"stocker/internal/store"
)

const bootstrapAdmin = "admin@stocker.com"

func newTestDB() *Database {
	return New(store.NewLocalTable(), true, bootstrapAdmin)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()

	if _, err := d.CreateUser(ctx, "alice", "alice@x.com", "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if _, err := d.CreateUser(ctx, "intruder", "alice@x.com", "password2"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate CreateUser() error = %v, want ErrUserExists", err)
	}

	// the stored profile is untouched
	user, err := d.GetUser(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want alice", user.Username)
	}
}

func TestCreateUser_BootstrapAdmin(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()

	if _, err := d.CreateUser(ctx, "root", bootstrapAdmin, "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	admin, err := d.GetUser(ctx, bootstrapAdmin)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("bootstrap admin role = %q, want admin", admin.Role)
	}

	if _, err := d.CreateUser(ctx, "bob", "bob@x.com", "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	bob, _ := d.GetUser(ctx, "bob@x.com")
	if bob.Role != domain.RoleUser {
		t.Errorf("role = %q, want user", bob.Role)
	}
}

func TestCreateUser_NoAutoAdminOnRemote(t *testing.T) {
	// the bootstrap rule applies in local fallback mode only
	d := New(store.NewLocalTable(), false, bootstrapAdmin)
	ctx := context.Background()

	if _, err := d.CreateUser(ctx, "root", bootstrapAdmin, "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	user, _ := d.GetUser(ctx, bootstrapAdmin)
	if user.Role != domain.RoleUser {
		t.Errorf("role = %q, want user when not in local mode", user.Role)
	}
}

func TestVerifyPassword(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()
	if _, err := d.CreateUser(ctx, "alice", "alice@x.com", "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	user, err := d.VerifyPassword(ctx, "alice@x.com", "password1")
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if user.Email != "alice@x.com" || user.PasswordHash == "password1" {
		t.Errorf("profile = %+v, want matching email and hashed password", user)
	}

	if _, err := d.VerifyPassword(ctx, "alice@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := d.VerifyPassword(ctx, "ghost@x.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

// The end-to-end scenario: a BUY of 10, then an oversized SELL of 15. The
// SELL is rejected, the holding stays at 10, and the history contains both
// the BUY and the rejected SELL's transaction row.
func TestTrade_OversellKeepsHoldingAndRecordsTransaction(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()
	email := "alice@x.com"

	if _, err := d.CreateTransaction(ctx, email, "ACME", domain.ActionBuy, 10, 5); err != nil {
		t.Fatalf("BUY error = %v", err)
	}
	portfolio, err := d.GetPortfolio(ctx, email)
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}
	if len(portfolio) != 1 || portfolio[0].Quantity != 10 {
		t.Fatalf("portfolio = %+v, want one ACME holding of 10", portfolio)
	}

	if _, err := d.CreateTransaction(ctx, email, "ACME", domain.ActionSell, 15, 5); !errors.Is(err, ErrInsufficientHoldings) {
		t.Fatalf("oversell error = %v, want ErrInsufficientHoldings", err)
	}

	portfolio, _ = d.GetPortfolio(ctx, email)
	if len(portfolio) != 1 || portfolio[0].Quantity != 10 {
		t.Errorf("portfolio after rejected SELL = %+v, want unchanged holding of 10", portfolio)
	}

	// the transaction row written before the rejection stays
	txs, err := d.GetTransactions(ctx, email)
	if err != nil {
		t.Fatalf("GetTransactions() error = %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("transactions = %d, want 2 (BUY and rejected SELL)", len(txs))
	}
}

func TestTrade_SellAllDeletesHolding(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()
	email := "alice@x.com"

	if _, err := d.CreateTransaction(ctx, email, "ACME", domain.ActionBuy, 10, 5); err != nil {
		t.Fatalf("BUY error = %v", err)
	}
	if _, err := d.CreateTransaction(ctx, email, "ACME", domain.ActionSell, 10, 5); err != nil {
		t.Fatalf("SELL error = %v", err)
	}
	portfolio, err := d.GetPortfolio(ctx, email)
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}
	if len(portfolio) != 0 {
		t.Errorf("portfolio = %+v, want no row after selling everything", portfolio)
	}
}

func TestTrade_TotalAndQuantityValidation(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()
	email := "alice@x.com"

	for _, qty := range []int{0, -3} {
		if _, err := d.CreateTransaction(ctx, email, "ACME", domain.ActionBuy, qty, 5); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d error = %v, want ErrInvalidQuantity", qty, err)
		}
	}

	if _, err := d.CreateTransaction(ctx, email, "ACME", domain.ActionBuy, 4, 2.5); err != nil {
		t.Fatalf("BUY error = %v", err)
	}
	txs, _ := d.GetTransactions(ctx, email)
	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txs))
	}
	if txs[0].Total != 10 {
		t.Errorf("Total = %v, want 10 (price x quantity)", txs[0].Total)
	}
}

func TestStocks_CreateDuplicateAndDelete(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()

	if err := d.CreateStock(ctx, "ACME", "Acme Co", 10.0); err != nil {
		t.Fatalf("CreateStock() error = %v", err)
	}
	if err := d.CreateStock(ctx, "ACME", "Acme Clone", 99.0); !errors.Is(err, ErrStockExists) {
		t.Fatalf("duplicate CreateStock() error = %v, want ErrStockExists", err)
	}

	if price := d.GetStockPrice(ctx, "ACME"); price != 10.0 {
		t.Errorf("GetStockPrice() = %v, want 10.0", price)
	}
	if price := d.GetStockPrice(ctx, "GHOST"); price != 0 {
		t.Errorf("GetStockPrice(unlisted) = %v, want 0 sentinel", price)
	}

	if err := d.DeleteStock(ctx, "ACME"); err != nil {
		t.Fatalf("DeleteStock() error = %v", err)
	}
	stocks, err := d.GetAllStocks(ctx)
	if err != nil {
		t.Fatalf("GetAllStocks() error = %v", err)
	}
	for _, s := range stocks {
		if s.Symbol == "ACME" {
			t.Error("deleted symbol still listed")
		}
	}
	// deleting an unknown symbol is a no-op
	if err := d.DeleteStock(ctx, "GHOST"); err != nil {
		t.Errorf("DeleteStock(unknown) error = %v, want nil", err)
	}
}

func TestGetSystemStats_CountsEveryRow(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()

	if _, err := d.CreateUser(ctx, "alice", "alice@x.com", "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if _, err := d.CreateUser(ctx, "bob", "bob@x.com", "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := d.CreateStock(ctx, "ACME", "Acme Co", 10.0); err != nil {
		t.Fatalf("CreateStock() error = %v", err)
	}
	if _, err := d.CreateTransaction(ctx, "alice@x.com", "ACME", domain.ActionBuy, 3, 10); err != nil {
		t.Fatalf("BUY error = %v", err)
	}

	stats, err := d.GetSystemStats(ctx)
	if err != nil {
		t.Fatalf("GetSystemStats() error = %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
	}
	// 2 profiles + 1 stock + 1 transaction + 1 holding
	if stats.TotalItems != 5 {
		t.Errorf("TotalItems = %d, want 5", stats.TotalItems)
	}
	if stats.Status != "Healthy" {
		t.Errorf("Status = %q, want Healthy", stats.Status)
	}
}

func TestGetAllUsers_OnlyProfiles(t *testing.T) {
	d := newTestDB()
	ctx := context.Background()

	if _, err := d.CreateUser(ctx, "alice", "alice@x.com", "password1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := d.CreateStock(ctx, "ACME", "Acme Co", 10.0); err != nil {
		t.Fatalf("CreateStock() error = %v", err)
	}
	if _, err := d.CreateTransaction(ctx, "alice@x.com", "ACME", domain.ActionBuy, 3, 10); err != nil {
		t.Fatalf("BUY error = %v", err)
	}

	users, err := d.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(users) != 1 || users[0].Email != "alice@x.com" {
		t.Errorf("users = %+v, want only alice's profile", users)
	}
}
