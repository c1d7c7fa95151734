// Package store provides durable storage for network provenance
// traces.
//
// The store is an append-only event log in SQLite: every assert,
// retract, derive, firing, and active-value flip a traced network
// performs is written as one row keyed by the network's logical clock.
// WAL mode allows concurrent readers (the CLI trace command) while the
// network's serialized owner is the single writer.
//
// The log persists events, not belief state: a network is rebuilt by
// replaying the external events (asserts and retracts) against a
// freshly constructed model, and everything derived re-derives.
package store
