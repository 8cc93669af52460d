package workflow

import (
	"fmt"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

// Lifecycle describes the statuses a record kind can hold. Transitions are
// unrestricted: any known status may follow any other, including moving out
// of a terminal status.
type Lifecycle struct {
	Kind     domain.RecordKind
	Prefix   string
	Initial  domain.Status
	States   []domain.Status
	Terminal []domain.Status
}

var EnquiryLifecycle = Lifecycle{
	Kind:    domain.KindEnquiry,
	Prefix:  "ENQ",
	Initial: domain.EnquiryRequested,
	States: []domain.Status{
		domain.EnquiryRequested,
		domain.EnquiryProcessing,
		domain.EnquiryCompleted,
		domain.EnquiryCancelled,
	},
	Terminal: []domain.Status{domain.EnquiryCompleted, domain.EnquiryCancelled},
}

var OrderLifecycle = Lifecycle{
	Kind:    domain.KindOrder,
	Prefix:  "ORD",
	Initial: domain.OrderPending,
	States: []domain.Status{
		domain.OrderPending,
		domain.OrderProcessing,
		domain.OrderShipped,
		domain.OrderDelivered,
		domain.OrderCancelled,
	},
	Terminal: []domain.Status{domain.OrderDelivered, domain.OrderCancelled},
}

func (l Lifecycle) Has(status domain.Status) bool {
	for _, s := range l.States {
		if s == status {
			return true
		}
	}
	return false
}

func (l Lifecycle) IsTerminal(status domain.Status) bool {
	for _, s := range l.Terminal {
		if s == status {
			return true
		}
	}
	return false
}

// Transition checks that both ends are statuses of this lifecycle. It never
// rejects a move between two known statuses.
func (l Lifecycle) Transition(from, to domain.Status) error {
	if !l.Has(to) {
		return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a valid %s status", to, l.Kind),
		})
	}
	if from != "" && !l.Has(from) {
		return apperrors.NewConflictError(fmt.Sprintf("%s holds unknown status %q", l.Kind, from))
	}
	return nil
}
