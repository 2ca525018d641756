package api

import (
	"errors"                  // Sentinel error checks
	"fmt"                     // Response message formatting
	"net/http"                // HTTP status codes
	"stocker/internal/db"     // Data-access service
	"stocker/internal/domain" // Importing domain models
	"stocker/internal/utils"  // Utility functions
	"strings"                 // String manipulation
	"time"                    // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// TradeRequest is the buy/sell order form
type TradeRequest struct {
	Symbol   string `json:"symbol" binding:"required"`        // Ticker symbol
	Action   string `json:"action" binding:"required"`        // BUY or SELL
	Quantity int    `json:"quantity" binding:"required,gt=0"` // Number of shares
}

// DashboardResponse is the portfolio overview with history and valuation
type DashboardResponse struct {
	Portfolio    []domain.Holding     `json:"portfolio"`    // Current holdings
	Transactions []domain.Transaction `json:"transactions"` // Trade history
	TotalValue   float64              `json:"total_value"`  // Holdings priced at current listed prices
}

func dashboardCacheKey(email string) string {
	return "dashboard:user:" + email
}

// TradeHandler executes a buy or sell order priced at the currently
// listed price, then invalidates the user's dashboard cache
func TradeHandler(database *db.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TradeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		symbol := strings.ToUpper(req.Symbol)
		action := strings.ToUpper(req.Action)
		if action != domain.ActionBuy && action != domain.ActionSell {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be BUY or SELL"})
			return
		}
		// Orders are priced at the currently listed price; an unlisted
		// symbol is not tradable
		price := database.GetStockPrice(c.Request.Context(), symbol)
		if price == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This stock is not listed for trading"})
			return
		}
		txID, err := database.CreateTransaction(c.Request.Context(), email.(string), symbol, action, req.Quantity, price)
		if err != nil {
			if errors.Is(err, db.ErrInsufficientHoldings) || errors.Is(err, db.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Trade failed: " + err.Error()})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email":  email,
				"symbol": symbol,
				"error":  err.Error(),
			}).Error("Trade failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Trade failed"})
			return
		}
		// Invalidate the dashboard cache so the next read sees the trade
		_ = utils.DeleteCache(c.Request.Context(), rdb, dashboardCacheKey(email.(string)))
		c.JSON(http.StatusOK, gin.H{
			"message":        fmt.Sprintf("Order executed: %s %d %s at $%.2f", action, req.Quantity, symbol, price),
			"transaction_id": txID,
		})
	}
}

// DashboardHandler returns holdings, history and total portfolio value.
// Holdings are valued at the current listed price; a delisted symbol
// contributes zero.
func DashboardHandler(database *db.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := dashboardCacheKey(email.(string))
		var cached DashboardResponse
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"dashboard": cached, "cached": true})
			return
		}
		portfolio, err := database.GetPortfolio(ctx, email.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
			return
		}
		transactions, err := database.GetTransactions(ctx, email.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		totalValue := 0.0
		for _, holding := range portfolio {
			totalValue += float64(holding.Quantity) * database.GetStockPrice(ctx, holding.Symbol)
		}
		resp := DashboardResponse{
			Portfolio:    portfolio,
			Transactions: transactions,
			TotalValue:   totalValue,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"dashboard": resp, "cached": false})
	}
}

// PortfolioHandler returns the authenticated user's holdings
func PortfolioHandler(database *db.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		portfolio, err := database.GetPortfolio(c.Request.Context(), email.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
	}
}

// TransactionsHandler returns the authenticated user's trade history
func TransactionsHandler(database *db.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("email")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		transactions, err := database.GetTransactions(c.Request.Context(), email.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": transactions})
	}
}

// ListStocksHandler returns all listed stocks, cached for the trade form
func ListStocksHandler(database *db.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Stock
		found, err := utils.GetCache(ctx, rdb, stocksCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stocks": cached, "cached": true})
			return
		}
		stocks, err := database.GetAllStocks(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stocks"})
			return
		}
		_ = utils.SetCache(ctx, rdb, stocksCacheKey, stocks, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"stocks": stocks, "cached": false})
	}
}
