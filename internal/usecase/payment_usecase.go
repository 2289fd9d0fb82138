package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
	"muaban/pkg/logger"
)

type FlowState string

const (
	FlowIdle         FlowState = "idle"
	FlowItemChosen   FlowState = "item_chosen"
	FlowMethodChosen FlowState = "method_chosen"
	FlowConfirmed    FlowState = "confirmed"
	FlowSubmitted    FlowState = "submitted"
	FlowFailed       FlowState = "failed"
)

// PaymentUseCase carries a chosen listing and payment method through
// to a submitted transaction. The draft is page-scoped and discarded
// on success or cancellation; no partial transaction is ever
// persisted. It is the only writer of the persisted selected item.
type PaymentUseCase struct {
	*broadcaster

	catalog *CatalogUseCase
	session *SessionUseCase
	gateway TransactionGateway
	store   StateStore
	methods []string

	mu       sync.Mutex
	state    FlowState
	item     *entity.Listing
	method   string
	record   *entity.Transaction
	inFlight bool
}

func NewPaymentUseCase(
	catalog *CatalogUseCase,
	session *SessionUseCase,
	gateway TransactionGateway,
	store StateStore,
	methods []string,
) *PaymentUseCase {
	return &PaymentUseCase{
		broadcaster: newBroadcaster(),
		catalog:     catalog,
		session:     session,
		gateway:     gateway,
		store:       store,
		methods:     methods,
		state:       FlowIdle,
	}
}

type FlowSnapshot struct {
	State  FlowState           `json:"state"`
	Item   *entity.Listing     `json:"item,omitempty"`
	Method string              `json:"method,omitempty"`
	Record *entity.Transaction `json:"record,omitempty"`
}

func (uc *PaymentUseCase) Snapshot() FlowSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotLocked()
}

func (uc *PaymentUseCase) snapshotLocked() FlowSnapshot {
	snap := FlowSnapshot{State: uc.state, Method: uc.method}
	if uc.item != nil {
		copied := *uc.item
		snap.Item = &copied
	}
	if uc.record != nil {
		copied := *uc.record
		snap.Record = &copied
	}
	return snap
}

// Methods returns the configured closed set of payment methods.
func (uc *PaymentUseCase) Methods() []string {
	out := make([]string, len(uc.methods))
	copy(out, uc.methods)
	return out
}

// SelectItem starts (or restarts) the flow with an existing listing
// and persists it as the selected item. An unknown id leaves the flow
// where it was.
func (uc *PaymentUseCase) SelectItem(id string) error {
	if !uc.session.IsAuthenticated() {
		return errors.AuthRequired("login required to start a purchase", nil)
	}

	listing, err := uc.catalog.Find(id)
	if err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.inFlight {
		return errors.BadRequest("a submission is in progress", nil)
	}

	serialized, err := json.Marshal(listing)
	if err != nil {
		return errors.Internal("failed to serialize selected item", err)
	}
	if err := uc.store.Set(StateKeySelectedItem, string(serialized)); err != nil {
		return errors.Internal("failed to persist selected item", err)
	}

	uc.item = listing
	uc.method = ""
	uc.record = nil
	uc.state = FlowItemChosen

	uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
	return nil
}

// SelectMethod requires a chosen item and a method from the closed
// set; anything else leaves the flow unchanged.
func (uc *PaymentUseCase) SelectMethod(method string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state != FlowItemChosen && uc.state != FlowMethodChosen {
		return errors.BadRequest("no item chosen for payment", nil)
	}
	if !uc.isKnownMethod(method) {
		return errors.Validation("payment_method")
	}

	uc.method = method
	uc.state = FlowMethodChosen

	uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
	return nil
}

func (uc *PaymentUseCase) isKnownMethod(method string) bool {
	for _, m := range uc.methods {
		if m == method {
			return true
		}
	}
	return false
}

// Confirm builds the immutable transaction record, denormalizing the
// price from the chosen item, and immediately attempts submission.
// Once the network call is issued it runs to completion; failure
// leaves the draft intact for a manual retry.
func (uc *PaymentUseCase) Confirm(ctx context.Context) error {
	uc.mu.Lock()

	if uc.state != FlowMethodChosen {
		uc.mu.Unlock()
		return errors.BadRequest("payment method not chosen", nil)
	}

	username := uc.session.Username()
	if username == "" || !uc.session.IsAuthenticated() {
		uc.mu.Unlock()
		return errors.AuthRequired("login required to confirm a purchase", nil)
	}

	uc.record = &entity.Transaction{
		Username:      username,
		ListingID:     uc.item.ID,
		PaymentMethod: uc.method,
		Price:         uc.item.Price,
		Timestamp:     time.Now(),
	}
	uc.state = FlowConfirmed
	uc.inFlight = true
	uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
	uc.mu.Unlock()

	return uc.submit(ctx)
}

// Retry resubmits the retained record after a failed submission. This
// is a user-facing financial action; there is no automatic retry.
func (uc *PaymentUseCase) Retry(ctx context.Context) error {
	uc.mu.Lock()

	if uc.state != FlowFailed || uc.record == nil {
		uc.mu.Unlock()
		return errors.BadRequest("no failed transaction to retry", nil)
	}

	uc.state = FlowConfirmed
	uc.inFlight = true
	uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
	uc.mu.Unlock()

	return uc.submit(ctx)
}

func (uc *PaymentUseCase) submit(ctx context.Context) error {
	uc.mu.Lock()
	record := uc.record
	uc.mu.Unlock()

	err := uc.gateway.SubmitTransaction(ctx, uc.session.Token(), record)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.inFlight = false

	if err != nil {
		uc.state = FlowFailed
		logger.LogFlowError(string(uc.state), "submit", err)
		uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
		return err
	}

	uc.state = FlowSubmitted
	uc.item = nil
	uc.method = ""
	uc.record = nil
	if err := uc.store.Delete(StateKeySelectedItem); err != nil {
		logger.Warn("failed to clear persisted selected item: %v", err)
	}

	uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
	return nil
}

// Cancel discards the in-progress draft and returns to Idle. It is
// rejected while a submission is in flight, to avoid duplicate-charge
// ambiguity, and is a no-op when there is nothing to cancel.
func (uc *PaymentUseCase) Cancel() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.inFlight {
		return errors.BadRequest("a submission is in progress and cannot be cancelled", nil)
	}

	if uc.state == FlowIdle {
		return nil
	}

	uc.item = nil
	uc.method = ""
	uc.record = nil
	uc.state = FlowIdle
	if err := uc.store.Delete(StateKeySelectedItem); err != nil {
		logger.Warn("failed to clear persisted selected item: %v", err)
	}

	uc.publish(StoreEvent{Kind: EventPaymentState, Payload: uc.snapshotLocked()})
	return nil
}

// SelectedItem restores the persisted selected listing, if any.
func (uc *PaymentUseCase) SelectedItem() (*entity.Listing, error) {
	raw, err := uc.store.Get(StateKeySelectedItem)
	if err != nil {
		return nil, errors.Internal("failed to read selected item", err)
	}
	if raw == "" {
		return nil, nil
	}

	var listing entity.Listing
	if err := json.Unmarshal([]byte(raw), &listing); err != nil {
		return nil, errors.Internal("corrupt selected item state", err)
	}
	return &listing, nil
}
