package cartstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/storefront/localstore"
)

type mockRemote struct {
	mu                sync.Mutex
	calls             []string
	AddToCartFunc     func(ctx context.Context, token, userID, productID string, quantity int) error
	AddCustomCoilFunc func(ctx context.Context, token, userID string, coil domain.CustomCoil) error
	RemoveFunc        func(ctx context.Context, token, userID, productID string) error
	GetCartFunc       func(ctx context.Context, token, userID string) (domain.CartState, error)
}

func (m *mockRemote) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockRemote) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockRemote) AddToCart(ctx context.Context, token, userID, productID string, quantity int) error {
	m.record("add:" + userID + ":" + productID)
	if m.AddToCartFunc != nil {
		return m.AddToCartFunc(ctx, token, userID, productID, quantity)
	}
	return nil
}

func (m *mockRemote) AddCustomCoil(ctx context.Context, token, userID string, coil domain.CustomCoil) error {
	m.record("coil:" + userID + ":" + coil.CoilType)
	if m.AddCustomCoilFunc != nil {
		return m.AddCustomCoilFunc(ctx, token, userID, coil)
	}
	return nil
}

func (m *mockRemote) RemoveFromCart(ctx context.Context, token, userID, productID string) error {
	m.record("remove:" + userID + ":" + productID)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, token, userID, productID)
	}
	return nil
}

func (m *mockRemote) GetCart(ctx context.Context, token, userID string) (domain.CartState, error) {
	return m.GetCartFunc(ctx, token, userID)
}

type staticIdentity struct {
	identity *domain.Identity
}

func (s *staticIdentity) Current() *domain.Identity {
	return s.identity
}

type failingStorage struct{}

func (failingStorage) Get(key string, dest interface{}) (bool, error) { return false, nil }

func (failingStorage) Put(key string, value interface{}) error { return errors.New("disk full") }

type fixture struct {
	store    *Store
	storage  *localstore.FileStore
	remote   *mockRemote
	syncer   *Syncer
	notifier *recordingNotifier
	identity *staticIdentity
}

func newFixture(t *testing.T, identity *domain.Identity) *fixture {
	t.Helper()
	storage, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		storage:  storage,
		remote:   &mockRemote{},
		notifier: &recordingNotifier{},
		identity: &staticIdentity{identity: identity},
	}
	f.syncer = NewSyncer(16, time.Second, f.notifier, zap.NewNop())
	t.Cleanup(f.syncer.Close)
	f.store = NewStore(storage, f.identity, f.remote, f.syncer, zap.NewNop())
	return f
}

func (f *fixture) flush(t *testing.T) {
	t.Helper()
	require.NoError(t, f.syncer.Flush(context.Background()))
}

func (f *fixture) persisted(t *testing.T) domain.CartState {
	t.Helper()
	var state domain.CartState
	ok, err := f.storage.Get(localstore.KeyCart, &state)
	require.NoError(t, err)
	require.True(t, ok)
	return state
}

var shopper = &domain.Identity{UserID: "u-1", Role: domain.RoleUser, AuthToken: "tok"}

func TestStore_AddOrUpdateLineItemLastWriteWins(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 2}))
	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 5}))

	state := f.store.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
	assert.Empty(t, state.CustomCoils)
	assert.Equal(t, state, f.persisted(t))
}

func TestStore_AnonymousStaysLocal(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 1}))
	require.NoError(t, f.store.RemoveLineItem("P1"))
	f.flush(t)

	assert.Empty(t, f.remote.recorded())
}

func TestStore_MirrorsForSignedInUser(t *testing.T) {
	f := newFixture(t, shopper)

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 3}))
	require.NoError(t, f.store.AddOrUpdateCustomCoil(domain.CustomCoil{CoilType: "evaporator", Quantity: 1}))
	require.NoError(t, f.store.RemoveLineItem("P1"))
	f.flush(t)

	assert.Equal(t, []string{"add:u-1:P1", "coil:u-1:evaporator", "remove:u-1:P1"}, f.remote.recorded())
}

func TestStore_RemoteFailureKeepsLocalState(t *testing.T) {
	f := newFixture(t, shopper)
	f.remote.AddToCartFunc = func(ctx context.Context, token, userID, productID string, quantity int) error {
		return apperrors.NewTransportError("cart add", 502, "bad gateway", nil)
	}

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 2}))
	f.flush(t)

	item, ok := f.store.Cart().LineItem("P1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 1, f.notifier.count())
	assert.Len(t, f.persisted(t).Items, 1)
}

func TestStore_RemoveProceedsWhenRemoteFails(t *testing.T) {
	f := newFixture(t, shopper)
	f.remote.RemoveFunc = func(ctx context.Context, token, userID, productID string) error {
		return errors.New("connection refused")
	}

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 2}))
	require.NoError(t, f.store.RemoveLineItem("P1"))
	f.flush(t)

	assert.True(t, f.store.Cart().IsEmpty())
	assert.Empty(t, f.persisted(t).Items)
	assert.Equal(t, 1, f.notifier.count())
}

func TestStore_DecrementIsLocalOnly(t *testing.T) {
	f := newFixture(t, shopper)

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 1}))
	f.flush(t)
	require.NoError(t, f.store.DecrementLineItem("P1"))
	require.NoError(t, f.store.DecrementLineItem("missing"))
	f.flush(t)

	assert.True(t, f.store.Cart().IsEmpty())
	assert.Equal(t, []string{"add:u-1:P1"}, f.remote.recorded())
}

func TestStore_CustomCoilsMergeByType(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.store.AddOrUpdateCustomCoil(domain.CustomCoil{CoilType: "condenser", Rows: "2", Quantity: 1}))
	require.NoError(t, f.store.AddOrUpdateCustomCoil(domain.CustomCoil{CoilType: "condenser", Rows: "4", Quantity: 3}))

	coils := f.store.State().CustomCoils
	require.Len(t, coils, 1)
	assert.Equal(t, "4", coils[0].Rows)

	require.NoError(t, f.store.RemoveCustomCoil("condenser"))
	assert.Empty(t, f.persisted(t).CustomCoils)
}

func TestStore_TotalQuantity(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, 0, f.store.TotalQuantity())

	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 2}))
	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P2", Quantity: 3}))
	require.NoError(t, f.store.AddOrUpdateCustomCoil(domain.CustomCoil{CoilType: "evaporator", Quantity: 1}))

	assert.Equal(t, 6, f.store.TotalQuantity())
}

func TestStore_InvalidItemLeavesCartUntouched(t *testing.T) {
	f := newFixture(t, shopper)

	err := f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 0})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	f.flush(t)

	assert.True(t, f.store.Cart().IsEmpty())
	assert.Empty(t, f.remote.recorded())
}

func TestStore_PersistFailureSkipsRemote(t *testing.T) {
	remote := &mockRemote{}
	syncer := NewSyncer(4, time.Second, &recordingNotifier{}, zap.NewNop())
	defer syncer.Close()
	store := NewStore(failingStorage{}, &staticIdentity{identity: shopper}, remote, syncer, zap.NewNop())

	err := store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 1})
	assert.Error(t, err)
	require.NoError(t, syncer.Flush(context.Background()))
	assert.Empty(t, remote.recorded())
}

func TestStore_LoadRestoresPersistedCart(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 4}))

	reloaded := NewStore(f.storage, f.identity, f.remote, f.syncer, zap.NewNop())
	require.NoError(t, reloaded.Load())

	item, ok := reloaded.Cart().LineItem("P1")
	require.True(t, ok)
	assert.Equal(t, 4, item.Quantity)
}

func TestStore_LoadDiscardsCorruptCart(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.storage.Put(localstore.KeyCart, "not a cart"))

	require.NoError(t, f.store.Load())
	assert.True(t, f.store.Cart().IsEmpty())
}

func TestStore_ReplaceCart(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "OLD", Quantity: 1}))

	require.NoError(t, f.store.ReplaceCart(domain.CartState{
		Items: []domain.CartLineItem{{ProductID: "P1", Quantity: 2}},
	}))

	_, hasOld := f.store.Cart().LineItem("OLD")
	assert.False(t, hasOld)
	assert.Equal(t, 2, f.store.TotalQuantity())
}

func TestStore_RestoreRemote(t *testing.T) {
	f := newFixture(t, shopper)
	f.remote.GetCartFunc = func(ctx context.Context, token, userID string) (domain.CartState, error) {
		assert.Equal(t, "tok", token)
		assert.Equal(t, "u-1", userID)
		return domain.CartState{Items: []domain.CartLineItem{{ProductID: "P9", Quantity: 7}}}, nil
	}

	require.NoError(t, f.store.RestoreRemote(context.Background()))
	assert.Equal(t, 7, f.store.TotalQuantity())
	assert.Len(t, f.persisted(t).Items, 1)
}

func TestStore_RestoreRemoteKeepsLocalWhenServerEmpty(t *testing.T) {
	f := newFixture(t, shopper)
	f.remote.GetCartFunc = func(ctx context.Context, token, userID string) (domain.CartState, error) {
		return domain.CartState{}, nil
	}
	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 2}))

	require.NoError(t, f.store.RestoreRemote(context.Background()))
	assert.Equal(t, 2, f.store.TotalQuantity())
}

func TestStore_RestoreRemoteAnonymous(t *testing.T) {
	f := newFixture(t, nil)
	f.remote.GetCartFunc = func(ctx context.Context, token, userID string) (domain.CartState, error) {
		t.Fatal("anonymous restore must not call the server")
		return domain.CartState{}, nil
	}

	assert.NoError(t, f.store.RestoreRemote(context.Background()))
}

func TestStore_RestoreRemoteError(t *testing.T) {
	f := newFixture(t, shopper)
	f.remote.GetCartFunc = func(ctx context.Context, token, userID string) (domain.CartState, error) {
		return domain.CartState{}, apperrors.NewTransportError("cart get", 500, "", nil)
	}
	require.NoError(t, f.store.AddOrUpdateLineItem(domain.CartLineItem{ProductID: "P1", Quantity: 2}))

	err := f.store.RestoreRemote(context.Background())
	_, ok := apperrors.IsTransportError(err)
	assert.True(t, ok)
	assert.Equal(t, 2, f.store.TotalQuantity())
}
