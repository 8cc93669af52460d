package views

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

type CartSource interface {
	State() domain.CartState
	Clear() error
}

type Submitter interface {
	Kind() domain.RecordKind
	Submit(ctx context.Context, token string, state domain.CartState) (*domain.Record, error)
}

type Notifier interface {
	Notify(message string)
}

// Checkout turns the cart into an enquiry or an order.
type Checkout struct {
	cart      CartSource
	identity  IdentitySource
	submitter Submitter
	notifier  Notifier
	logger    *zap.Logger
}

func NewCheckout(cart CartSource, identity IdentitySource, submitter Submitter, notifier Notifier, logger *zap.Logger) *Checkout {
	return &Checkout{
		cart:      cart,
		identity:  identity,
		submitter: submitter,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit sends the cart and clears it once the server has stored the record.
// An empty cart is rejected before any call is made; a failed call leaves the
// cart as it was.
func (c *Checkout) Submit(ctx context.Context) (*domain.Record, error) {
	identity := c.identity.Current()
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("sign in to continue")
	}
	if identity.Role.IsStaff() {
		return nil, apperrors.NewForbiddenError("staff accounts cannot submit from a cart")
	}

	state := c.cart.State()
	if len(state.Items) == 0 && len(state.CustomCoils) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", apperrors.ValidationDetail{
			Field:   "cartItems",
			Message: "add at least one product or custom coil",
		})
	}

	kind := c.submitter.Kind()
	record, err := c.submitter.Submit(ctx, identity.AuthToken, state)
	if err != nil {
		c.logger.Warn("submission failed", zap.String("kind", string(kind)), zap.Error(err))
		c.notifier.Notify(fmt.Sprintf("Could not submit your %s. Your cart has been kept.", kind))
		return nil, err
	}

	if err := c.cart.Clear(); err != nil {
		c.logger.Warn("clearing cart after submission failed",
			zap.String("humanId", record.HumanID),
			zap.Error(err),
		)
	}
	c.logger.Info("submitted", zap.String("kind", string(kind)), zap.String("humanId", record.HumanID))
	return record, nil
}
