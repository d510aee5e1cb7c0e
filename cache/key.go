package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// KeyPrefix namespaces query-result keys so they cannot collide with
// unrelated entries when the backing store is shared.
const KeyPrefix = "query:"

// canonicalRequest is the serialization shape hashed by ComputeKey. JSON
// object keys and Go map keys are emitted in sorted order by encoding/json,
// which makes the byte form independent of parameter insertion order.
type canonicalRequest struct {
	Query      string         `json:"query"`
	Parameters map[string]any `json:"parameters"`
}

// ComputeKey derives the cache key for a query and its parameters.
//
// The key is a hex-encoded sha256 of a canonical JSON serialization of the
// pair, prefixed with KeyPrefix. It is a pure function: identical inputs
// produce identical keys within and across process restarts, and parameter
// map iteration order never changes the output.
//
// Parameter values are hashed with their JSON types intact, so integer 2024
// and string "2024" produce different keys. That is deliberate; the key
// layer does not normalize value types.
func ComputeKey(query string, parameters map[string]any) string {
	if parameters == nil {
		parameters = map[string]any{}
	}

	payload, err := json.Marshal(canonicalRequest{
		Query:      query,
		Parameters: parameters,
	})
	if err != nil {
		// Marshaling only fails for non-scalar parameter values (channels,
		// functions, cycles). Fall back to a fingerprint that still keeps
		// distinct queries distinct rather than failing the request.
		payload = []byte(fmt.Sprintf("unencodable|%s|%v", query, parameters))
	}

	sum := sha256.Sum256(payload)
	return KeyPrefix + hex.EncodeToString(sum[:])
}
