package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

func TestEnquiryLifecycle_AnyKnownTransitionAllowed(t *testing.T) {
	for _, from := range EnquiryLifecycle.States {
		for _, to := range EnquiryLifecycle.States {
			assert.NoError(t, EnquiryLifecycle.Transition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestEnquiryLifecycle_CancelledToCompleted(t *testing.T) {
	// unusual, but nothing forbids leaving a terminal status
	assert.True(t, EnquiryLifecycle.IsTerminal(domain.EnquiryCancelled))
	assert.NoError(t, EnquiryLifecycle.Transition(domain.EnquiryCancelled, domain.EnquiryCompleted))
}

func TestLifecycle_RejectsUnknownStatus(t *testing.T) {
	err := EnquiryLifecycle.Transition(domain.EnquiryRequested, domain.OrderShipped)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)

	err = OrderLifecycle.Transition(domain.OrderPending, "Completed")
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestLifecycle_CorruptStoredStatus(t *testing.T) {
	err := OrderLifecycle.Transition("archived", domain.OrderShipped)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestLifecycle_InitialStates(t *testing.T) {
	assert.Equal(t, domain.EnquiryRequested, EnquiryLifecycle.Initial)
	assert.Equal(t, domain.OrderPending, OrderLifecycle.Initial)
	assert.Equal(t, domain.KindOrder, OrderLifecycle.Kind)
	assert.True(t, OrderLifecycle.IsTerminal(domain.OrderDelivered))
	assert.False(t, OrderLifecycle.IsTerminal(domain.OrderShipped))
}
