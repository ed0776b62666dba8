// Package sqlite provides the SQLite-backed session store.
package sqlite
