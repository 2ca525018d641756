package domain

import (
	"fmt"

	"stocker/internal/store"
)

// Key prefixes and fixed sort keys of the single-table layout. All key
// construction lives here so prefix conventions stay in one place.
const (
	UserPKPrefix  = "USER#"
	StockPKPrefix = "STOCK#"
	ProfileSK     = "PROFILE"
	HoldingPrefix = "HOLDING#"
	TxPrefix      = "TX#"
	StockMetaSK   = "META"
)

// UserKey addresses a user profile: USER#<email> / PROFILE
func UserKey(email string) store.Key {
	return store.Key{PK: UserPKPrefix + email, SK: ProfileSK}
}

// HoldingKey addresses one holding: USER#<email> / HOLDING#<symbol>
func HoldingKey(email, symbol string) store.Key {
	return store.Key{PK: UserPKPrefix + email, SK: HoldingPrefix + symbol}
}

// TransactionKey addresses one transaction: USER#<email> / TX#<ts>#<id>
func TransactionKey(email string, timestamp int64, id string) store.Key {
	return store.Key{PK: UserPKPrefix + email, SK: fmt.Sprintf("%s%d#%s", TxPrefix, timestamp, id)}
}

// StockKey addresses a stock listing: STOCK#<symbol> / META
func StockKey(symbol string) store.Key {
	return store.Key{PK: StockPKPrefix + symbol, SK: StockMetaSK}
}
