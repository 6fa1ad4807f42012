package persistence

import "strings"

// transactionSortFields is the whitelist of sortable columns for the
// transactions table. Anything else falls back to the default so that
// client-supplied sort parameters can never reach the SQL string.
var transactionSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"occurred_at":  true,
	"party_name":   true,
	"item_name":    true,
	"kind":         true,
	"status":       true,
	"raw_price":    true,
	"quantity":     true,
	"base_amount":  true,
	"total_amount": true,
	"amount_paid":  true,
}

// ValidateSortField returns the field if it is a known transactions column,
// otherwise the default field
func ValidateSortField(field, defaultField string) string {
	field = strings.ToLower(strings.TrimSpace(field))
	if transactionSortFields[field] {
		return field
	}
	return defaultField
}

// ValidateSortOrder normalizes a sort direction to ASC or DESC, defaulting
// to DESC for anything unrecognized
func ValidateSortOrder(order string) string {
	switch strings.ToUpper(strings.TrimSpace(order)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	default:
		return "DESC"
	}
}
