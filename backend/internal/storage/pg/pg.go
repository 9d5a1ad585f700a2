package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/aicom-dev/aicom/shared/config"
	"github.com/aicom-dev/aicom/shared/logger"
)

type Storage struct {
	db      *sql.DB
	timeout time.Duration
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "component", "pg", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db", "component", "pg")
	return NewWithDB(db, cfg.Public.RequestTimeout), nil
}

// NewWithDB wraps an open pool. timeout bounds every call, zero disables it.
func NewWithDB(db *sql.DB, timeout time.Duration) *Storage {
	return &Storage{db: db, timeout: timeout}
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	pg := cfg.Private.Pg
	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Dbname, sslMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Ping backs the readiness probe.
func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// readOnly runs fn in a read-only REPEATABLE READ transaction so that several
// statements see one snapshot.
func (s *Storage) readOnly(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// exactlyOne turns "no row touched" into sql.ErrNoRows.
func exactlyOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
