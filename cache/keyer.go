package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key generates a deterministic cache key for an operation and its input.
// Format: cache:<operation>:<hash>, where hash is the first 16 hex
// characters of SHA-256 over the canonical JSON of the input.
func Key(operation string, input any) (string, error) {
	canonical, err := canonicalize(input)
	if err != nil {
		return "", fmt.Errorf("cache: canonicalize input: %w", err)
	}

	hash := sha256.Sum256(canonical)
	return fmt.Sprintf("cache:%s:%s", operation, hex.EncodeToString(hash[:8])), nil
}

// Prefix returns the key prefix covering every input for an operation.
func Prefix(operation string) string {
	return "cache:" + operation + ":"
}

// canonicalize produces a deterministic JSON representation of the input.
// The value is round-tripped through generic JSON so map keys are emitted
// in sorted order regardless of the caller's concrete type.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
