package domain

import "stocker/internal/store"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User Model
type User struct {
	ID           string `json:"id"`         // Generated UUID
	Username     string `json:"username"`   // Display name
	Email        string `json:"email"`      // Natural identifier, part of the partition key
	PasswordHash string `json:"-"`          // bcrypt hash, never serialized
	Role         string `json:"role"`       // Role: user or admin
	CreatedAt    int64  `json:"created_at"` // Unix seconds
}

// Item encodes the user as a profile row
func (u User) Item() store.Item {
	key := UserKey(u.Email)
	return store.Item{
		"PK":         key.PK,
		"SK":         key.SK,
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"password":   u.PasswordHash,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

// UserFromItem decodes a profile row
func UserFromItem(item store.Item) User {
	return User{
		ID:           itemString(item, "id"),
		Username:     itemString(item, "username"),
		Email:        itemString(item, "email"),
		PasswordHash: itemString(item, "password"),
		Role:         itemString(item, "role"),
		CreatedAt:    itemInt64(item, "created_at"),
	}
}
