// Package cache provides query-result storage and cache key derivation for
// the Snowflake proxy.
//
// # Overview
//
// The package exports three things:
//
//   - Store: a minimal TTL'd key-value contract over query results
//   - Result: one completed execution (tabular data + execution time)
//   - ComputeKey: deterministic key derivation from query text and parameters
//
// Two Store constructors are provided. NewMemoryStore builds the default
// in-process store with exact per-entry TTLs; NewSturdycStore builds a
// sturdyc-backed alternative with sharded storage and a client-wide TTL.
//
// # Key Derivation
//
// ComputeKey hashes a canonical JSON serialization of the query and its
// parameter map with sha256 and prefixes the hex digest with "query:".
// Parameter order never affects the key, so two logically identical requests
// always share an entry:
//
//	k1 := cache.ComputeKey("SELECT * FROM t WHERE a = :a AND b = :b",
//		map[string]any{"a": 1, "b": 2})
//	k2 := cache.ComputeKey("SELECT * FROM t WHERE a = :a AND b = :b",
//		map[string]any{"b": 2, "a": 1})
//	// k1 == k2
//
// Values keep their JSON types in the canonical form: integer 2024 and
// string "2024" hash to different keys. The key format itself is an
// implementation detail and not guaranteed stable across versions.
//
// # Failure Semantics
//
// Store operations do not return errors. A backend failure or a value of an
// unexpected type degrades to a cache miss; the proxy then re-executes the
// query, so a broken cache costs latency, never correctness.
package cache
