package backend

import (
	"time"

	"muaban/internal/domain/entity"
)

func sampleTransaction() *entity.Transaction {
	return &entity.Transaction{
		Username:      "alice",
		ListingID:     "1",
		PaymentMethod: "card",
		Price:         "120",
		Timestamp:     time.Now(),
	}
}
