package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrAlreadyRunning means another bot instance holds the lock. Two
// long-polling instances on one token would steal each other's updates.
var ErrAlreadyRunning = errors.New("another instance is already running")

// instanceLockKey identifies this application's advisory lock.
const instanceLockKey int64 = 0x52454749535452 // "REGISTR"

// InstanceLock is a Postgres advisory lock pinned to one pool connection.
// The lock lives as long as the connection does, so a crashed instance
// frees it automatically.
type InstanceLock struct {
	conn   *pgxpool.Conn
	logger *zap.Logger
}

// AcquireInstanceLock takes the advisory lock or fails with
// ErrAlreadyRunning when another instance holds it.
func AcquireInstanceLock(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*InstanceLock, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection for instance lock: %w", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", instanceLockKey).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("take instance lock: %w", err)
	}

	if !locked {
		conn.Release()
		return nil, ErrAlreadyRunning
	}

	logger.Info("Instance lock acquired")
	return &InstanceLock{conn: conn, logger: logger}, nil
}

// Release frees the lock and returns the connection to the pool.
func (l *InstanceLock) Release(ctx context.Context) {
	if l.conn == nil {
		return
	}

	if _, err := l.conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", instanceLockKey); err != nil {
		l.logger.Warn("Failed to release instance lock", zap.Error(err))
	}
	l.conn.Release()
	l.conn = nil

	l.logger.Info("Instance lock released")
}
