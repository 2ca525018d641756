package domain

import "stocker/internal/store"

// Attribute readers tolerant of the value types the two backends produce.
// The local table stores Go values as written; DynamoDB unmarshaling into
// an untyped map yields float64 for every number.

func itemString(item store.Item, name string) string {
	s, _ := item[name].(string)
	return s
}

func itemInt(item store.Item, name string) int {
	switch v := item[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func itemInt64(item store.Item, name string) int64 {
	switch v := item[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func itemFloat(item store.Item, name string) float64 {
	switch v := item[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
