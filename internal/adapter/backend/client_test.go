package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muaban/internal/usecase"
	"muaban/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func TestLoginSendsCredentialsAndReturnsToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))

	result, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "alice", result.Username)
}

func TestLoginRejectionMapsToAuthRequired(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "alice", "wrong")
	assert.True(t, errors.Is(err, "AUTH_REQUIRED"))
}

func TestLoginWithoutTokenIsNetworkError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))

	_, err := client.Login(context.Background(), "alice", "secret")
	assert.True(t, errors.Is(err, "NETWORK_ERROR"))
}

func TestRegisterReturnsToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/register", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-reg"})
	}))

	result, err := client.Register(context.Background(), usecase.RegisterInput{Username: "bob", Password: "x", ConfirmPassword: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tok-reg", result.Token)
}

func TestFetchListingsMapsBothWireShapes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		io.WriteString(w, `[
			{"id": 1, "product_type": "Bike", "price": 120, "quantity": 2, "contact_info": "zalo: 0900", "username": "alice"},
			{"id": "abc", "title": "Book", "price": "15", "contact": "sms", "seller": "bob", "description": "textbook"}
		]`)
	}))

	listings, err := client.FetchListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "1", listings[0].ID)
	assert.Equal(t, "Bike", listings[0].Title)
	assert.Equal(t, "120", listings[0].Price)
	assert.Equal(t, "zalo: 0900", listings[0].Contact)
	assert.Equal(t, "alice", listings[0].Seller)

	assert.Equal(t, "abc", listings[1].ID)
	assert.Equal(t, "Book", listings[1].Title)
	assert.Equal(t, "15", listings[1].Price)
	assert.Equal(t, "bob", listings[1].Seller)
}

func TestFetchListingsFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchListings(context.Background())
	assert.True(t, errors.Is(err, "NETWORK_ERROR"))
}

func TestSearchListingsPostsQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts/search", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bike", body["query"])

		io.WriteString(w, `[{"id": 1, "title": "Bike", "price": 120}]`)
	}))

	results, err := client.SearchListings(context.Background(), "bike")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bike", results[0].Title)
}

func TestSubmitListingSendsMultipartForm(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(10<<20))

		assert.Equal(t, "Bike", r.FormValue("product_type"))
		assert.Equal(t, "120", r.FormValue("price"))
		assert.Equal(t, "2", r.FormValue("quantity"))
		assert.Equal(t, "zalo: 0900", r.FormValue("contact_info"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bike.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 7, "product_type": "Bike", "price": 120}`)
	}))

	draft := usecase.ListingDraft{
		Title:    "Bike",
		Price:    "120",
		Quantity: 2,
		Contact:  "zalo: 0900",
		Image: &usecase.ImageAttachment{
			Filename:    "bike.jpg",
			ContentType: "image/jpeg",
			Data:        []byte("jpeg-bytes"),
		},
	}

	created, err := client.SubmitListing(context.Background(), "tok-123", draft)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "7", created.ID)
	assert.Equal(t, "Bike", created.Title)
}

func TestSubmitListingUnusableEchoReturnsNil(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	created, err := client.SubmitListing(context.Background(), "tok", usecase.ListingDraft{Title: "Bike", Price: "1", Quantity: 1, Contact: "x"})
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestSubmitTransactionPostsSingleRecord(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// A single record, not an array.
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &record))
		assert.Equal(t, "alice", record["username"])
		assert.Equal(t, "card", record["payment_method"])

		w.WriteHeader(http.StatusCreated)
	}))

	err := client.SubmitTransaction(context.Background(), "tok", sampleTransaction())
	assert.NoError(t, err)
}

func TestSubmitTransactionFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := client.SubmitTransaction(context.Background(), "tok", sampleTransaction())
	assert.True(t, errors.Is(err, "NETWORK_ERROR"))
}
