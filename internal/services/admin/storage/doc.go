// Package storage defines persistence contracts for admin console state.
//
// The console keeps no content of its own; only operator sessions are
// persisted, behind the session.Store contract.
package storage
