package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

func coilCart() domain.CartState {
	return domain.CartState{CustomCoils: []domain.CustomCoil{{CoilType: "evaporator", Quantity: 1}}}
}

func noBackoff(int) time.Duration { return 0 }

func TestSubmit_RetriesHumanIDCollision(t *testing.T) {
	var humanIDs []string
	records := &mockRecordRepository{
		InsertFunc: func(ctx context.Context, record *domain.Record) error {
			humanIDs = append(humanIDs, record.HumanID)
			if len(humanIDs) == 1 {
				return &mysql.MySQLError{Number: 1062}
			}
			return nil
		},
	}
	svc := NewService(EnquiryLifecycle, records, catalogWith(), customersWith(activeCustomer("u-1")), zap.NewNop())
	svc.backoff = noBackoff

	record, err := svc.Submit(context.Background(), "u-1", coilCart())
	require.NoError(t, err)

	require.Len(t, humanIDs, 2)
	assert.NotEqual(t, humanIDs[0], humanIDs[1])
	assert.Equal(t, humanIDs[1], record.HumanID)
}

func TestSubmit_DeadlockExhaustsAttempts(t *testing.T) {
	attempts := 0
	records := &mockRecordRepository{
		InsertFunc: func(ctx context.Context, record *domain.Record) error {
			attempts++
			return &mysql.MySQLError{Number: 1213}
		},
	}
	svc := NewService(OrderLifecycle, records, catalogWith(), customersWith(activeCustomer("u-1")), zap.NewNop(), WithMaxAttempts(4))
	svc.backoff = noBackoff

	_, err := svc.Submit(context.Background(), "u-1", coilCart())

	assert.Equal(t, 4, attempts)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestSubmit_LockWaitThenSuccess(t *testing.T) {
	attempts := 0
	records := &mockRecordRepository{
		InsertFunc: func(ctx context.Context, record *domain.Record) error {
			attempts++
			if attempts < 3 {
				return &mysql.MySQLError{Number: 1205}
			}
			return nil
		},
	}
	svc := NewService(OrderLifecycle, records, catalogWith(), customersWith(activeCustomer("u-1")), zap.NewNop())
	svc.backoff = noBackoff

	_, err := svc.Submit(context.Background(), "u-1", coilCart())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestSubmit_OtherErrorsNotRetried(t *testing.T) {
	attempts := 0
	records := &mockRecordRepository{
		InsertFunc: func(ctx context.Context, record *domain.Record) error {
			attempts++
			return errors.New("disk full")
		},
	}
	svc := NewService(OrderLifecycle, records, catalogWith(), customersWith(activeCustomer("u-1")), zap.NewNop())

	_, err := svc.Submit(context.Background(), "u-1", coilCart())
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, attempts)
}

func TestSleep_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}

func TestJitteredBackoff_Bounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := jitteredBackoff(2)
		assert.GreaterOrEqual(t, d, 160*time.Millisecond)
		assert.LessOrEqual(t, d, 240*time.Millisecond)
	}
}
