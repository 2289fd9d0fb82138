package usecase

import (
	"context"
	"sync"

	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
)

type fakeListingGateway struct {
	mu            sync.Mutex
	listings      []entity.Listing
	fetchErr      error
	fetchFn       func(ctx context.Context) ([]entity.Listing, error)
	searchResults []entity.Listing
	searchErr     error
	submitResult  *entity.Listing
	submitErr     error
	submitCalls   int
	lastDraft     ListingDraft
}

func (f *fakeListingGateway) FetchListings(ctx context.Context) ([]entity.Listing, error) {
	if f.fetchFn != nil {
		return f.fetchFn(ctx)
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.listings, nil
}

func (f *fakeListingGateway) SearchListings(ctx context.Context, query string) ([]entity.Listing, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeListingGateway) SubmitListing(ctx context.Context, token string, draft ListingDraft) (*entity.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	f.lastDraft = draft
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitResult, nil
}

type fakeAuthGateway struct {
	result        *AuthResult
	err           error
	loginCalls    int
	registerCalls int
}

func (f *fakeAuthGateway) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAuthGateway) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	f.registerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeTransactionGateway struct {
	mu       sync.Mutex
	err      error
	calls    int
	last     *entity.Transaction
	submitFn func(ctx context.Context, token string, txn *entity.Transaction) error
}

func (f *fakeTransactionGateway) SubmitTransaction(ctx context.Context, token string, txn *entity.Transaction) error {
	f.mu.Lock()
	f.calls++
	copied := *txn
	f.last = &copied
	err := f.err
	fn := f.submitFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, txn)
	}
	return err
}

func (f *fakeTransactionGateway) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type memStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key], nil
}

func (s *memStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func networkErr() error {
	return errors.Network("backend unreachable", nil)
}
