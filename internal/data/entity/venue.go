package entity

// Venue is read-only to this service; the catalog console owns it.
type Venue struct {
	Base
	Name         string  `db:"name"`
	City         string  `db:"city"`
	OpenTime     string  `db:"open_time"`  // "HH:MM", first bookable hour
	CloseTime    string  `db:"close_time"` // "HH:MM", exclusive; wraps past midnight when <= open
	PricePerHour float64 `db:"price_per_hour"`
}
