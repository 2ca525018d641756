package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"stocker/internal/domain"
	"stocker/internal/store"
)

// Service-level errors surfaced to the web layer
var (
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrStockExists          = errors.New("stock already listed")
)

// Database implements the domain operations on top of the single-table
// store. It is constructed once at startup with whichever backend Open
// selected and never branches on the backend afterwards, except for the
// bootstrap-admin rule which applies in local mode only.
type Database struct {
	table      store.Table
	local      bool
	adminEmail string
}

// New builds a Database over the given table. local reports whether the
// in-memory fallback is in use; adminEmail is the demo bootstrap email
// auto-assigned the admin role in local mode.
func New(table store.Table, local bool, adminEmail string) *Database {
	return &Database{table: table, local: local, adminEmail: adminEmail}
}

// Local reports whether the in-memory fallback backend is in use
func (d *Database) Local() bool {
	return d.local
}

// CreateUser registers a new profile. The email is the natural identifier;
// a second registration for the same email fails with ErrUserExists and
// leaves the stored profile untouched.
func (d *Database) CreateUser(ctx context.Context, username, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	// Demo convenience: in local mode only, the bootstrap email becomes
	// admin so the admin panel is reachable without a real user store.
	role := domain.RoleUser
	if d.local && email == d.adminEmail {
		role = domain.RoleAdmin
		logrus.WithField("email", email).Info("Assigning admin role to bootstrap email")
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().Unix(),
	}
	if err := d.table.Put(ctx, user.Item(), true); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", ErrUserExists
		}
		return "", err
	}
	logrus.WithFields(logrus.Fields{
		"email": email,
		"role":  role,
	}).Info("User created")
	return user.ID, nil
}

// GetUser fetches a profile by email, or store.ErrNotFound
func (d *Database) GetUser(ctx context.Context, email string) (*domain.User, error) {
	item, err := d.table.Get(ctx, domain.UserKey(email))
	if err != nil {
		return nil, err
	}
	user := domain.UserFromItem(item)
	return &user, nil
}

// VerifyPassword authenticates a user. A missing profile and a wrong
// password both yield ErrInvalidCredentials.
func (d *Database) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := d.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetAllUsers returns every stored profile
func (d *Database) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	items, err := d.table.Scan(ctx, store.ScanFilter{SKEquals: domain.ProfileSK})
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		users = append(users, domain.UserFromItem(item))
	}
	return users, nil
}

// Stats is the admin panel's aggregate view. TotalItems counts every row
// of the table across all entity types, not just profiles.
type Stats struct {
	TotalUsers int    `json:"total_users"`
	TotalItems int    `json:"total_items"`
	Status     string `json:"status"`
}

// GetSystemStats aggregates counts for the admin panel. Status is a
// placeholder literal, not a real health check.
func (d *Database) GetSystemStats(ctx context.Context) (Stats, error) {
	users, err := d.GetAllUsers(ctx)
	if err != nil {
		return Stats{}, err
	}
	total, err := d.table.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalUsers: len(users), TotalItems: total, Status: "Healthy"}, nil
}
