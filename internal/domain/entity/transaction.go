package entity

import (
	"time"
)

// Transaction is an immutable record of a confirmed purchase intent.
// Price is denormalized from the listing at confirmation time; it is a
// historical fact, not a live reference.
type Transaction struct {
	Username      string    `json:"username"`
	ListingID     string    `json:"listing_id"`
	PaymentMethod string    `json:"payment_method"`
	Price         string    `json:"price"`
	Timestamp     time.Time `json:"timestamp"`
}
