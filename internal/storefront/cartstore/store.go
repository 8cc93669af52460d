package cartstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"coilworks/internal/domain"
	"coilworks/internal/infrastructure/metrics"
	"coilworks/internal/storefront/localstore"
)

type Storage interface {
	Get(key string, dest interface{}) (bool, error)
	Put(key string, value interface{}) error
}

type IdentitySource interface {
	Current() *domain.Identity
}

// Remote is the server-side mirror of the cart.
type Remote interface {
	AddToCart(ctx context.Context, token, userID, productID string, quantity int) error
	AddCustomCoil(ctx context.Context, token, userID string, coil domain.CustomCoil) error
	RemoveFromCart(ctx context.Context, token, userID, productID string) error
	GetCart(ctx context.Context, token, userID string) (domain.CartState, error)
}

// Store is the authoritative cart for this device. Each mutation is applied
// in memory and written to storage before any remote mirror call is queued.
type Store struct {
	mu       sync.Mutex
	cart     *domain.Cart
	storage  Storage
	identity IdentitySource
	remote   Remote
	syncer   *Syncer
	logger   *zap.Logger
}

func NewStore(storage Storage, identity IdentitySource, remote Remote, syncer *Syncer, logger *zap.Logger) *Store {
	return &Store{
		cart:     domain.NewCart(),
		storage:  storage,
		identity: identity,
		remote:   remote,
		syncer:   syncer,
		logger:   logger,
	}
}

// Load restores the cart saved by a previous run. An unreadable cart is
// dropped and the store starts empty.
func (s *Store) Load() error {
	var state domain.CartState
	ok, err := s.storage.Get(localstore.KeyCart, &state)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("discarding unreadable cart", zap.Error(err))
		s.cart = domain.NewCart()
		return s.persistLocked()
	}
	if ok {
		s.cart = domain.CartFromState(state)
	}
	return nil
}

// AddOrUpdateLineItem sets the line item's quantity to item.Quantity,
// inserting it when absent.
func (s *Store) AddOrUpdateLineItem(item domain.CartLineItem) error {
	s.mu.Lock()
	if err := s.cart.UpsertLineItem(item); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	s.mirror("add", func(ctx context.Context, identity domain.Identity) error {
		return s.remote.AddToCart(ctx, identity.AuthToken, identity.UserID, item.ProductID, item.Quantity)
	})
	return nil
}

func (s *Store) AddOrUpdateCustomCoil(coil domain.CustomCoil) error {
	s.mu.Lock()
	if err := s.cart.UpsertCustomCoil(coil); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("add_custom_coil").Inc()
	s.mirror("add custom coil", func(ctx context.Context, identity domain.Identity) error {
		return s.remote.AddCustomCoil(ctx, identity.AuthToken, identity.UserID, coil)
	})
	return nil
}

// DecrementLineItem lowers the quantity by one, removing the item at zero.
// It stays local and is a no-op for unknown products.
func (s *Store) DecrementLineItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.DecrementLineItem(productID) {
		return nil
	}
	metrics.CartMutationsTotal.WithLabelValues("decrement").Inc()
	return s.persistLocked()
}

// RemoveLineItem deletes the item locally and asks the server to do the same.
// The local removal stands whatever the server answers.
func (s *Store) RemoveLineItem(productID string) error {
	s.mu.Lock()
	s.cart.RemoveLineItem(productID)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	s.mirror("remove", func(ctx context.Context, identity domain.Identity) error {
		return s.remote.RemoveFromCart(ctx, identity.AuthToken, identity.UserID, productID)
	})
	return nil
}

func (s *Store) RemoveCustomCoil(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.RemoveCustomCoil(key) {
		return nil
	}
	metrics.CartMutationsTotal.WithLabelValues("remove_custom_coil").Inc()
	return s.persistLocked()
}

// ReplaceCart overwrites the whole cart, as after loading a saved server cart.
func (s *Store) ReplaceCart(state domain.CartState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Replace(state)
	metrics.CartMutationsTotal.WithLabelValues("replace").Inc()
	return s.persistLocked()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return s.persistLocked()
}

// RestoreRemote pulls the signed-in user's server cart into the store. An
// empty server cart leaves a non-empty local cart alone. Anonymous sessions
// have nothing to restore.
func (s *Store) RestoreRemote(ctx context.Context) error {
	identity := s.identity.Current()
	if identity == nil {
		return nil
	}

	state, err := s.remote.GetCart(ctx, identity.AuthToken, identity.UserID)
	if err != nil {
		return fmt.Errorf("loading saved cart: %w", err)
	}

	remote := domain.CartFromState(state)
	if remote.IsEmpty() && !s.Cart().IsEmpty() {
		s.logger.Debug("server cart empty, keeping local cart", zap.String("userId", identity.UserID))
		return nil
	}
	return s.ReplaceCart(remote.State())
}

// Cart returns a copy of the current cart.
func (s *Store) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.State()
}

func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalQuantity()
}

func (s *Store) persistLocked() error {
	if err := s.storage.Put(localstore.KeyCart, s.cart.State()); err != nil {
		return fmt.Errorf("persisting cart: %w", err)
	}
	return nil
}

// mirror queues a remote call scoped to the identity active right now.
// Anonymous carts stay local.
func (s *Store) mirror(op string, call func(ctx context.Context, identity domain.Identity) error) {
	identity := s.identity.Current()
	if identity == nil || s.syncer == nil {
		return
	}
	scoped := *identity
	s.syncer.Enqueue(op, func(ctx context.Context) error {
		return call(ctx, scoped)
	})
}
