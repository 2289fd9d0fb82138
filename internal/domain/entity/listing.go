package entity

import (
	"strconv"
	"strings"
	"time"
)

type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity,omitempty"`
	Image       string    `json:"image,omitempty"`
	Seller      string    `json:"seller"`
	Contact     string    `json:"contact"`
	CreatedAt   time.Time `json:"created_at"`
}

// PriceValue parses the display price into a number. Prices arrive both
// as plain numbers and as grouped strings like "1.200.000" or "1,200,000";
// grouping separators are stripped before parsing.
func (l *Listing) PriceValue() (float64, bool) {
	return ParsePrice(l.Price)
}

func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	s = strings.NewReplacer(",", "", ".", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
