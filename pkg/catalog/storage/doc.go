// Package storage provides the SQLite implementation of the catalog store.
//
// # Drivers
//
// Two database/sql drivers are linked in and selected by SQLiteConfig.Driver:
//
//   - "sqlite"  - modernc.org/sqlite, pure Go (default, no cgo required)
//   - "sqlite3" - github.com/mattn/go-sqlite3, cgo
//
// Both open the same file format, so the choice only affects how the binary is built
// and deployed.
//
// # Basic Usage
//
//	opener := storage.NewSQLiteOpener(&storage.SQLiteConfig{
//	    Path:        "/app/data/safetube.db",
//	    Driver:      "sqlite",
//	    WALMode:     true,
//	    BusyTimeout: 5 * time.Second,
//	})
//
//	store, err := opener.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// # Connections
//
// Every Open returns a store with its own single-connection pool. SQLite allows one
// writer at a time and the SafeTube web application shares the file, so the busy
// timeout matters more than pool size.
//
// The store never creates tables. Opening a path that does not exist fails instead
// of creating an empty database.
package storage
