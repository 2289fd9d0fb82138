package backend

import (
	"context"

	"muaban/internal/domain/entity"
)

// SubmitTransaction posts a single transaction record. The endpoint
// takes one record, not an array.
func (c *Client) SubmitTransaction(ctx context.Context, token string, txn *entity.Transaction) error {
	return c.postJSON(ctx, "/api/transactions", token, txn, nil)
}
