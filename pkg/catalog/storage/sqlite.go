package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"safetube/cleanup/pkg/catalog"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite catalog store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is the database/sql driver name ("sqlite" or "sqlite3").
	// Default: "sqlite"
	Driver string

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "/app/data/safetube.db",
		Driver:      DriverModernc,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteOpener opens SQLite catalog stores. It implements catalog.Opener.
type SQLiteOpener struct {
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteOpener creates an opener for the configured database file.
func NewSQLiteOpener(config *SQLiteConfig) *SQLiteOpener {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverModernc
	}

	return &SQLiteOpener{
		config: config,
		logger: slog.Default().With("component", "catalog.storage.sqlite"),
	}
}

// Open connects to the database and applies connection pragmas.
func (o *SQLiteOpener) Open(ctx context.Context) (catalog.Store, error) {
	return OpenSQLite(ctx, o.config)
}

// SQLiteStore implements catalog.Store on a SQLite database file.
type SQLiteStore struct {
	db     *sqlx.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// OpenSQLite opens the database at config.Path. The file must already exist.
func OpenSQLite(ctx context.Context, config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	driver := config.Driver
	if driver == "" {
		driver = DriverModernc
	}
	if driver != DriverModernc && driver != DriverMattn {
		return nil, catalog.NewStorageError(driver, "open", fmt.Errorf("unsupported driver %q", driver))
	}

	if _, err := os.Stat(config.Path); err != nil {
		return nil, catalog.NewStorageError(driver, "open", err)
	}

	db, err := sqlx.Open(driver, config.Path)
	if err != nil {
		return nil, catalog.NewStorageError(driver, "open", err)
	}

	// Pragmas are per connection, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "catalog.storage.sqlite"),
	}

	if err := s.initialize(ctx, driver); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("catalog opened",
		"path", config.Path,
		"driver", driver,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize verifies the connection and applies pragmas.
func (s *SQLiteStore) initialize(ctx context.Context, driver string) error {
	if err := s.db.PingContext(ctx); err != nil {
		return catalog.NewStorageError(driver, "ping", err)
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return catalog.NewStorageError(driver, "set_busy_timeout", err)
	}

	if s.config.WALMode {
		if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
			return catalog.NewStorageError(driver, "enable_wal", err)
		}
	}

	return nil
}

func (s *SQLiteStore) backend() string {
	if s.config.Driver == "" {
		return DriverModernc
	}
	return s.config.Driver
}

// Setting returns the value stored under key.
func (s *SQLiteStore) Setting(ctx context.Context, key string) (string, bool, error) {
	var setting catalog.Setting
	err := s.db.GetContext(ctx, &setting, selectSetting, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, catalog.NewStorageError(s.backend(), "setting", err)
	}
	return setting.Value, true, nil
}

// ExpiredVideos returns the videos created before query.Cutoff, ordered by id.
func (s *SQLiteStore) ExpiredVideos(ctx context.Context, query catalog.ExpiredQuery) ([]*catalog.Video, error) {
	stmt := selectExpiredVideos
	if query.IncludeSubtitles {
		stmt = selectExpiredVideosWithSubtitles
	}

	videos := []*catalog.Video{}
	if err := s.db.SelectContext(ctx, &videos, stmt, query.Cutoff); err != nil {
		return nil, catalog.NewStorageError(s.backend(), "expired", err)
	}

	return videos, nil
}

// Begin starts a write transaction.
func (s *SQLiteStore) Begin(ctx context.Context) (catalog.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, catalog.NewStorageError(s.backend(), "begin", err)
	}
	return &sqliteTx{tx: tx, backend: s.backend()}, nil
}

// Close releases the connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return catalog.NewStorageError(s.backend(), "close", err)
	}
	return nil
}

type sqliteTx struct {
	tx      *sqlx.Tx
	backend string
}

func (t *sqliteTx) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	result, err := t.tx.ExecContext(ctx, deleteVideo, id)
	if err != nil {
		return false, catalog.NewStorageError(t.backend, "delete", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, catalog.NewStorageError(t.backend, "delete", err)
	}

	return n > 0, nil
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return catalog.NewStorageError(t.backend, "commit", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	err := t.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return catalog.NewStorageError(t.backend, "rollback", err)
	}
	return nil
}
