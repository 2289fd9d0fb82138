package usecase

import (
	"strings"

	"muaban/internal/domain/entity"
)

// Filter returns the listings whose title or description contains the
// query as a case-insensitive substring, preserving input order. An
// empty query returns the input unchanged. The result is always
// derived, never stored.
func Filter(listings []entity.Listing, query string) []entity.Listing {
	if query == "" {
		return listings
	}

	q := strings.ToLower(query)
	out := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			out = append(out, l)
		}
	}
	return out
}

// FilterPriceRange keeps listings whose parsed price falls inside the
// given bounds. A nil bound is open; unparseable prices never match a
// bounded query.
func FilterPriceRange(listings []entity.Listing, min, max *float64) []entity.Listing {
	if min == nil && max == nil {
		return listings
	}

	out := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		v, ok := l.PriceValue()
		if !ok {
			continue
		}
		if min != nil && v < *min {
			continue
		}
		if max != nil && v > *max {
			continue
		}
		out = append(out, l)
	}
	return out
}

// FilterBySeller keeps listings posted by the given seller.
func FilterBySeller(listings []entity.Listing, seller string) []entity.Listing {
	out := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Seller == seller {
			out = append(out, l)
		}
	}
	return out
}
