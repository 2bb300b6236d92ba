package clientdata

import "time"

// Cache TTLs per data type. Quotes are short-lived by design (the dashboard
// refreshes often); rates and history change slowly.
const (
	TTLQuote        = 1 * time.Minute
	TTLExchangeRate = 1 * time.Hour
	TTLHistory      = 6 * time.Hour
)
