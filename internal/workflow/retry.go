package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

const (
	errDuplicateEntry   = 1062
	errLockWaitTimeout  = 1205
	errDeadlockDetected = 1213
)

type Option func(*Service)

// WithMaxAttempts bounds how many times Submit tries to store a record.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// insertWithRetry stores record, retrying lock contention with jittered
// backoff. A human id collision is resolved by drawing a new id.
func (s *Service) insertWithRetry(ctx context.Context, record *domain.Record) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := s.records.Insert(ctx, record)
		if err == nil {
			return nil
		}

		switch {
		case isDuplicateEntry(err):
			s.logger.Warn("human id collision, drawing a new one",
				zap.String("humanId", record.HumanID),
				zap.Int("attempt", attempt),
			)
			id := uuid.New()
			record.ID = id.String()
			record.HumanID = HumanID(s.lifecycle.Prefix, id)
		case isLockContention(err):
			s.logger.Warn("lock contention storing record, retrying",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", s.maxAttempts),
				zap.Error(err),
			)
			if attempt < s.maxAttempts {
				if err := sleep(ctx, s.backoff(attempt)); err != nil {
					return err
				}
			}
		default:
			return err
		}
	}

	return apperrors.NewConflictError(fmt.Sprintf("could not store %s after %d attempts", s.lifecycle.Kind, s.maxAttempts))
}

// jitteredBackoff waits 100ms per attempt, give or take 20%.
func jitteredBackoff(attempt int) time.Duration {
	base := time.Duration(attempt) * 100 * time.Millisecond
	return time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry
}

func isLockContention(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDeadlockDetected || mysqlErr.Number == errLockWaitTimeout
	}
	return false
}
