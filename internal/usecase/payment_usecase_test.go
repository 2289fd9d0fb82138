package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
)

var testMethods = []string{"card", "bank-transfer", "cash-on-delivery"}

type paymentFixture struct {
	payment *PaymentUseCase
	catalog *CatalogUseCase
	gateway *fakeTransactionGateway
	store   *memStore
	listing *entity.Listing
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	store := newMemStore()
	require.NoError(t, store.Set(StateKeyToken, "opaque-token"))
	require.NoError(t, store.Set(StateKeyUsername, "alice"))

	session := NewSessionUseCase(&fakeAuthGateway{}, store)
	catalog := NewCatalogUseCase(&fakeListingGateway{})
	listing, err := catalog.Create(CreateListingInput{Title: "Bike", Price: "120", Contact: "zalo: 0900"})
	require.NoError(t, err)

	gateway := &fakeTransactionGateway{}
	payment := NewPaymentUseCase(catalog, session, gateway, store, testMethods)

	return &paymentFixture{
		payment: payment,
		catalog: catalog,
		gateway: gateway,
		store:   store,
		listing: listing,
	}
}

func TestPaymentFlowHappyPath(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	assert.Equal(t, FlowIdle, f.payment.Snapshot().State)

	require.NoError(t, f.payment.SelectItem(f.listing.ID))
	assert.Equal(t, FlowItemChosen, f.payment.Snapshot().State)

	persisted, err := f.store.Get(StateKeySelectedItem)
	require.NoError(t, err)
	var stored entity.Listing
	require.NoError(t, json.Unmarshal([]byte(persisted), &stored))
	assert.Equal(t, f.listing.ID, stored.ID)

	require.NoError(t, f.payment.SelectMethod("card"))
	assert.Equal(t, FlowMethodChosen, f.payment.Snapshot().State)

	require.NoError(t, f.payment.Confirm(ctx))

	snap := f.payment.Snapshot()
	assert.Equal(t, FlowSubmitted, snap.State)
	assert.Nil(t, snap.Item)
	assert.Nil(t, snap.Record)

	assert.Equal(t, 1, f.gateway.calls)
	require.NotNil(t, f.gateway.last)
	assert.Equal(t, "alice", f.gateway.last.Username)
	assert.Equal(t, f.listing.ID, f.gateway.last.ListingID)
	assert.Equal(t, "card", f.gateway.last.PaymentMethod)
	assert.Equal(t, "120", f.gateway.last.Price, "price denormalized from the listing")
	assert.False(t, f.gateway.last.Timestamp.IsZero())

	persisted, err = f.store.Get(StateKeySelectedItem)
	require.NoError(t, err)
	assert.Empty(t, persisted, "selected item cleared on success")
}

func TestPaymentFailedSubmitRetainsDraftAndAllowsRetry(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	require.NoError(t, f.payment.SelectItem(f.listing.ID))
	require.NoError(t, f.payment.SelectMethod("card"))

	f.gateway.setErr(networkErr())
	err := f.payment.Confirm(ctx)
	require.Error(t, err)

	snap := f.payment.Snapshot()
	assert.Equal(t, FlowFailed, snap.State, "failed submit must not be marked submitted")
	require.NotNil(t, snap.Record, "draft retained for retry")
	assert.Equal(t, f.listing.ID, snap.Record.ListingID)

	persisted, _ := f.store.Get(StateKeySelectedItem)
	assert.NotEmpty(t, persisted, "selected item survives a failed submit")

	f.gateway.setErr(nil)
	require.NoError(t, f.payment.Retry(ctx))

	assert.Equal(t, FlowSubmitted, f.payment.Snapshot().State)
	assert.Equal(t, 2, f.gateway.calls)

	persisted, _ = f.store.Get(StateKeySelectedItem)
	assert.Empty(t, persisted)
}

func TestPaymentRetryOnlyFromFailed(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.payment.Retry(context.Background())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Zero(t, f.gateway.calls)
}

func TestPaymentSelectItemRequiresSession(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.store.Delete(StateKeyToken))

	err := f.payment.SelectItem(f.listing.ID)
	assert.True(t, errors.Is(err, "AUTH_REQUIRED"))
	assert.Equal(t, FlowIdle, f.payment.Snapshot().State)
}

func TestPaymentSelectItemUnknownListing(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.payment.SelectItem("999")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, FlowIdle, f.payment.Snapshot().State)
}

func TestPaymentSelectMethodRequiresChosenItem(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.payment.SelectMethod("card")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestPaymentSelectMethodRejectsUnknownMethod(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.payment.SelectItem(f.listing.ID))

	err := f.payment.SelectMethod("iou")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Equal(t, FlowItemChosen, f.payment.Snapshot().State, "flow stays in item chosen")
}

func TestPaymentConfirmRequiresMethod(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.payment.SelectItem(f.listing.ID))

	err := f.payment.Confirm(context.Background())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Zero(t, f.gateway.calls)
}

func TestPaymentConfirmRequiresSession(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.payment.SelectItem(f.listing.ID))
	require.NoError(t, f.payment.SelectMethod("card"))

	require.NoError(t, f.store.Delete(StateKeyToken))
	require.NoError(t, f.store.Delete(StateKeyUsername))

	err := f.payment.Confirm(context.Background())
	assert.True(t, errors.Is(err, "AUTH_REQUIRED"))
	assert.Zero(t, f.gateway.calls)
}

func TestPaymentCancelDiscardsDraft(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.payment.SelectItem(f.listing.ID))
	require.NoError(t, f.payment.SelectMethod("bank-transfer"))

	require.NoError(t, f.payment.Cancel())

	snap := f.payment.Snapshot()
	assert.Equal(t, FlowIdle, snap.State)
	assert.Nil(t, snap.Item)
	assert.Empty(t, snap.Method)

	persisted, _ := f.store.Get(StateKeySelectedItem)
	assert.Empty(t, persisted, "cancel clears the persisted selected item")
	assert.Zero(t, f.gateway.calls, "no partial transaction is ever persisted")
}

func TestPaymentCancelRejectedWhileSubmitInFlight(t *testing.T) {
	f := newPaymentFixture(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.gateway.submitFn = func(ctx context.Context, token string, txn *entity.Transaction) error {
		close(started)
		<-release
		return nil
	}

	require.NoError(t, f.payment.SelectItem(f.listing.ID))
	require.NoError(t, f.payment.SelectMethod("card"))

	confirmDone := make(chan error, 1)
	go func() {
		confirmDone <- f.payment.Confirm(context.Background())
	}()
	<-started

	err := f.payment.Cancel()
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "cancel must be rejected while the submission is in flight")

	close(release)
	require.NoError(t, <-confirmDone)

	snap := f.payment.Snapshot()
	assert.Equal(t, FlowSubmitted, snap.State, "the in-flight submission settles despite the cancel attempt")
	assert.Equal(t, 1, f.gateway.calls)
}

func TestPaymentCancelFromIdleIsNoOp(t *testing.T) {
	f := newPaymentFixture(t)
	assert.NoError(t, f.payment.Cancel())
}

func TestPaymentSelectItemRestartsFlow(t *testing.T) {
	f := newPaymentFixture(t)
	second, err := f.catalog.Create(CreateListingInput{Title: "Book", Price: "15", Contact: "c"})
	require.NoError(t, err)

	require.NoError(t, f.payment.SelectItem(f.listing.ID))
	require.NoError(t, f.payment.SelectMethod("card"))
	require.NoError(t, f.payment.SelectItem(second.ID))

	snap := f.payment.Snapshot()
	assert.Equal(t, FlowItemChosen, snap.State)
	assert.Equal(t, second.ID, snap.Item.ID)
	assert.Empty(t, snap.Method, "method is discarded when the item changes")
}

func TestPaymentSelectedItemRoundTrip(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.payment.SelectItem(f.listing.ID))

	restored, err := f.payment.SelectedItem()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, f.listing.ID, restored.ID)
	assert.Equal(t, f.listing.Price, restored.Price)
}
