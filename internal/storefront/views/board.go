package views

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"coilworks/internal/access"
	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/workflow"
)

type RecordSource interface {
	List(ctx context.Context, token string) ([]domain.Record, error)
	SetStatus(ctx context.Context, token, id string, status domain.Status) (*domain.Record, error)
}

// Board is the staff listing of enquiries or orders. It holds the last
// fetched records; filtering and paging run over that copy.
type Board struct {
	view      View
	lifecycle workflow.Lifecycle
	records   RecordSource
	router    *Router
	identity  IdentitySource
	notifier  Notifier
	logger    *zap.Logger

	mu     sync.RWMutex
	loaded []domain.Record
}

func NewBoard(
	view View,
	lifecycle workflow.Lifecycle,
	records RecordSource,
	router *Router,
	identity IdentitySource,
	notifier Notifier,
	logger *zap.Logger,
) *Board {
	return &Board{
		view:      view,
		lifecycle: lifecycle,
		records:   records,
		router:    router,
		identity:  identity,
		notifier:  notifier,
		logger:    logger,
	}
}

// Load authorizes the view and only then fetches, with the same identity it
// authorized. A redirect decision is returned without touching the server.
func (b *Board) Load(ctx context.Context) (access.Decision, error) {
	identity := b.identity.Current()
	decision := b.router.ResolveFor(b.view, identity)
	if !decision.Allowed {
		return decision, nil
	}

	records, err := b.records.List(ctx, identity.AuthToken)
	if err != nil {
		b.logger.Warn("loading board failed", zap.String("view", string(b.view)), zap.Error(err))
		b.notifier.Notify(fmt.Sprintf("Could not load %s.", b.lifecycle.Kind))
		return decision, err
	}

	b.mu.Lock()
	b.loaded = records
	b.mu.Unlock()
	return decision, nil
}

func (b *Board) Records() []domain.Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Record(nil), b.loaded...)
}

func (b *Board) Filter(query string) []domain.Record {
	return workflow.Filter(b.Records(), query)
}

// Page filters by query and returns the requested 1-based page.
func (b *Board) Page(query string, page int) workflow.Page {
	return workflow.Paginate(b.Filter(query), page)
}

// SetStatus changes a record's status on the server and, once the server has
// confirmed, in the loaded copy. Any known status may follow any other.
func (b *Board) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Record, error) {
	identity := b.identity.Current()
	if decision := b.router.ResolveFor(b.view, identity); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("%s board is not available, redirect to %s", b.lifecycle.Kind, decision.RedirectTo))
	}
	if err := b.lifecycle.Transition("", status); err != nil {
		return nil, err
	}

	updated, err := b.records.SetStatus(ctx, identity.AuthToken, id, status)
	if err != nil {
		b.logger.Warn("status update failed",
			zap.String("id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		b.notifier.Notify(fmt.Sprintf("Could not update %s %s.", b.lifecycle.Kind, id))
		return nil, err
	}

	b.mu.Lock()
	for i := range b.loaded {
		if b.loaded[i].ID == updated.ID || b.loaded[i].HumanID == id {
			b.loaded[i] = *updated
			break
		}
	}
	b.mu.Unlock()
	return updated, nil
}
