// Package store provides the durable key-value slots ResearchHub persists to.
//
// A slot is one named value. The tracker keeps the whole document under a
// single key; preferences and the remembered session use their own keys.
//
// # Backends
//
//   - SQLite: a kv table in a local database file, opened with either the
//     cgo driver (github.com/mattn/go-sqlite3, driver name "sqlite3") or the
//     pure Go driver (modernc.org/sqlite, driver name "sqlite").
//   - Memory: a process-local map with the same contract, used for the
//     non-remembered session and in tests.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Every Put runs in its own transaction, so a slot is either fully replaced
// or untouched.
package store
