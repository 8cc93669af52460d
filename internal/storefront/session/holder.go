package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/storefront/localstore"
)

type Storage interface {
	Get(key string, dest interface{}) (bool, error)
	Put(key string, value interface{}) error
	Delete(keys ...string) error
}

type CartSaver interface {
	SaveCart(ctx context.Context, token, userID string, state domain.CartState) error
}

// LocalCart is the in-memory cart that must be emptied together with the
// stored one on sign-out.
type LocalCart interface {
	State() domain.CartState
	Clear() error
}

// Holder owns the signed-in identity and its persisted copy. A nil identity
// means anonymous.
type Holder struct {
	mu       sync.RWMutex
	identity *domain.Identity
	store    Storage
	saver    CartSaver
	logger   *zap.Logger
}

func NewHolder(store Storage, saver CartSaver, logger *zap.Logger) *Holder {
	return &Holder{store: store, saver: saver, logger: logger}
}

// Load restores the identity saved by a previous run. A stored identity that
// cannot be decoded or carries an unknown role is discarded.
func (h *Holder) Load() error {
	var identity domain.Identity
	ok, err := h.store.Get(localstore.KeyIdentity, &identity)
	if err != nil {
		h.logger.Warn("discarding unreadable identity", zap.Error(err))
		return h.store.Delete(localstore.KeyIdentity)
	}
	if !ok {
		return nil
	}
	if !identity.Role.IsValid() || identity.UserID == "" {
		h.logger.Warn("discarding stored identity", zap.String("role", string(identity.Role)))
		return h.store.Delete(localstore.KeyIdentity)
	}

	h.mu.Lock()
	h.identity = &identity
	h.mu.Unlock()
	return nil
}

func (h *Holder) SignIn(identity domain.Identity) error {
	if identity.UserID == "" {
		return apperrors.NewValidationError("userId is required", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "is required",
		})
	}
	if !identity.Role.IsValid() {
		return apperrors.NewValidationError("invalid role", apperrors.ValidationDetail{
			Field:   "role",
			Message: fmt.Sprintf("%q is not a known role", identity.Role),
		})
	}

	if err := h.store.Put(localstore.KeyIdentity, identity); err != nil {
		return fmt.Errorf("persisting identity: %w", err)
	}

	h.mu.Lock()
	h.identity = &identity
	h.mu.Unlock()

	h.logger.Info("signed in", zap.String("userId", identity.UserID), zap.String("role", string(identity.Role)))
	return nil
}

// Current returns a copy of the active identity, or nil when anonymous.
func (h *Holder) Current() *domain.Identity {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.identity == nil {
		return nil
	}
	identity := *h.identity
	return &identity
}

// SignOut saves the local cart to the server when possible, then forgets the
// identity and the cart. A failed save is logged and does not stop the
// sign-out.
func (h *Holder) SignOut(ctx context.Context, cart LocalCart) error {
	identity := h.Current()
	if identity != nil && cart != nil {
		if err := h.saver.SaveCart(ctx, identity.AuthToken, identity.UserID, cart.State()); err != nil {
			h.logger.Warn("saving cart on sign-out failed",
				zap.String("userId", identity.UserID),
				zap.Error(err),
			)
		}
	}

	h.mu.Lock()
	h.identity = nil
	h.mu.Unlock()

	var errs []error
	if cart != nil {
		if err := cart.Clear(); err != nil {
			errs = append(errs, fmt.Errorf("clearing cart: %w", err))
		}
	}
	if err := h.store.Delete(localstore.KeyIdentity, localstore.KeyCart); err != nil {
		errs = append(errs, fmt.Errorf("clearing stored session: %w", err))
	}
	return multierr.Combine(errs...)
}
