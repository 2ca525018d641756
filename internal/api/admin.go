package api

import (
	"errors"                 // Sentinel error checks
	"net/http"               // HTTP status codes
	"stocker/internal/db"    // Data-access service
	"stocker/internal/utils" // Utility functions
	"strings"                // String manipulation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const stocksCacheKey = "stocks:list"

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID        string `json:"id"`         // User ID
	Username  string `json:"username"`   // Username
	Email     string `json:"email"`      // Email
	Role      string `json:"role"`       // User role
	CreatedAt int64  `json:"created_at"` // Signup time, unix seconds
}

// ListUsersHandler returns all registered users
func ListUsersHandler(database *db.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := database.GetAllUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		resp := make([]UserAdminResponse, len(users))
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:        u.ID,
				Username:  u.Username,
				Email:     u.Email,
				Role:      u.Role,
				CreatedAt: u.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, gin.H{"users": resp})
	}
}

// StatsHandler returns aggregate system statistics for the admin panel
func StatsHandler(database *db.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := database.GetSystemStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}

// CreateStockRequest is the admin listing form
type CreateStockRequest struct {
	Symbol string  `json:"symbol" binding:"required"`     // Ticker symbol
	Name   string  `json:"name" binding:"required"`       // Company name
	Price  float64 `json:"price" binding:"required,gt=0"` // Initial listed price
}

// CreateStockHandler lists a new stock for trading
func CreateStockHandler(database *db.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateStockRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		symbol := strings.ToUpper(req.Symbol)
		err := database.CreateStock(c.Request.Context(), symbol, req.Name, req.Price)
		if err != nil {
			if errors.Is(err, db.ErrStockExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "Stock already listed"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"symbol": symbol,
				"error":  err.Error(),
			}).Error("Failed to list stock")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock"})
			return
		}
		// Invalidate the stock list cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, stocksCacheKey)
		c.JSON(http.StatusCreated, gin.H{"message": "Stock " + symbol + " listed successfully"})
	}
}

// DeleteStockHandler delists a stock; deleting an unknown symbol succeeds
func DeleteStockHandler(database *db.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := strings.ToUpper(c.Param("symbol"))
		if err := database.DeleteStock(c.Request.Context(), symbol); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock"})
			return
		}
		// Invalidate the stock list cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, stocksCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Stock " + symbol + " deleted successfully"})
	}
}
