package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "pomodoros/internal/errors"
	"pomodoros/internal/metrics"
)

// Opener creates a fresh connection. The gateway calls it once at start and
// again for every reconnect.
type Opener func() (*gorm.DB, error)

// Result reports the effect of a mutating statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Executor runs parameterized SQL text. Repositories depend on this interface.
type Executor interface {
	Exec(ctx context.Context, stmt string, args ...any) (Result, error)
	Query(ctx context.Context, dest any, stmt string, args ...any) error
}

// Gateway owns the store connection. Each Exec commits on its own; a
// transient connection failure is retried exactly once on a fresh connection.
type Gateway struct {
	mu   sync.RWMutex
	conn *gorm.DB
	open Opener
	log  *zap.Logger
}

var _ Executor = (*Gateway)(nil)

// NewGateway opens the initial connection.
func NewGateway(open Opener, log *zap.Logger) (*Gateway, error) {
	conn, err := open()
	if err != nil {
		return nil, err
	}
	return &Gateway{conn: conn, open: open, log: log.Named("gateway")}, nil
}

// DB returns the current GORM handle, for migrations.
func (g *Gateway) DB() *gorm.DB {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.conn
}

// Exec runs a mutating statement and reports affected rows. Zero affected rows
// is not an error.
func (g *Gateway) Exec(ctx context.Context, stmt string, args ...any) (Result, error) {
	var res Result
	err := g.withRetry(ctx, "exec", func(conn *gorm.DB) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		begin := time.Now()
		r, err := sqlDB.ExecContext(ctx, stmt, args...)
		rows := int64(-1)
		if err == nil {
			res.RowsAffected, _ = r.RowsAffected()
			res.LastInsertID, _ = r.LastInsertId()
			rows = res.RowsAffected
		}
		// gorm's Exec drops LastInsertId, so the statement is traced by hand
		conn.Logger.Trace(ctx, begin, func() (string, int64) {
			return conn.Dialector.Explain(stmt, args...), rows
		}, err)
		return err
	})
	return res, err
}

// Query runs a read statement and scans every row into dest, a pointer to a
// slice of result structs.
func (g *Gateway) Query(ctx context.Context, dest any, stmt string, args ...any) error {
	return g.withRetry(ctx, "query", func(conn *gorm.DB) error {
		return conn.WithContext(ctx).Raw(stmt, args...).Scan(dest).Error
	})
}

// Ping checks the current connection without reconnecting.
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the current connection.
func (g *Gateway) Close() error {
	sqlDB, err := g.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *Gateway) withRetry(ctx context.Context, op string, fn func(conn *gorm.DB) error) error {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration(op, time.Since(start)) }()

	conn := g.DB()
	err := fn(conn)
	if err == nil {
		return nil
	}
	if !isTransient(err) || ctx.Err() != nil {
		return translate(conn, err)
	}

	g.log.Warn("transient store failure, reconnecting", zap.String("operation", op), zap.Error(err))
	conn, rerr := g.reconnect(conn)
	if rerr != nil {
		return fmt.Errorf("%w: reconnect: %v", apperrors.ErrStoreUnavailable, rerr)
	}

	if err = fn(conn); err != nil {
		if isTransient(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
		return translate(conn, err)
	}
	return nil
}

// reconnect swaps stale for a new connection. Concurrent callers holding the
// same stale handle share a single reconnect.
func (g *Gateway) reconnect(stale *gorm.DB) (*gorm.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.conn != stale {
		return g.conn, nil
	}

	fresh, err := g.open()
	if err != nil {
		return nil, err
	}
	if sqlDB, err := stale.DB(); err == nil {
		_ = sqlDB.Close()
	}
	g.conn = fresh
	metrics.IncrementReconnects()
	return fresh, nil
}

// translate maps driver errors onto the application taxonomy.
func translate(conn *gorm.DB, err error) error {
	if t, ok := conn.Dialector.(gorm.ErrorTranslator); ok {
		if errors.Is(t.Translate(err), gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry") {
		return apperrors.ErrConflict
	}
	return err
}
