package usecase

import (
	"context"

	"muaban/internal/domain/entity"
)

// AuthResult is what the remote auth endpoints hand back on success.
type AuthResult struct {
	Token    string
	Username string
}

type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
}

type ListingGateway interface {
	FetchListings(ctx context.Context) ([]entity.Listing, error)
	SearchListings(ctx context.Context, query string) ([]entity.Listing, error)
	SubmitListing(ctx context.Context, token string, draft ListingDraft) (*entity.Listing, error)
}

type TransactionGateway interface {
	SubmitTransaction(ctx context.Context, token string, txn *entity.Transaction) error
}

// StateStore is the persisted client state shared across sessions.
// Missing keys read back as empty strings.
type StateStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Persisted state keys. Only the session gate writes token and
// username; the payment flow writes the selected item, which logout
// also clears when it tears the whole session down.
const (
	StateKeyToken        = "token"
	StateKeyUsername     = "username"
	StateKeySelectedItem = "selectedItem"
)
