// Package store implements an in-memory key-value store with optional
// per-key time-to-live.
//
// Values and expiry instants live in two tables that are always updated
// together under one lock, so a reader never observes a value paired
// with a stale expiry. Expiration is lazy: a read that finds a lapsed
// key removes it from both tables. RemoveExpired runs the same removal
// for every lapsed key and backs the background sweeper in package ttl.
package store
