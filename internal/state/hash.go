package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// hashLen is the number of hex characters kept from the digest. The
// fingerprint guards a local audit trail against accidental drift, not
// an adversary, so the truncated prefix is enough.
const hashLen = 16

// Hash returns the integrity fingerprint of a state document. The
// document is reduced to canonical JSON (map keys sorted, so the
// result is independent of the field order of whatever serialization
// the document came from) and digested with SHA-256.
func Hash(doc *types.StateDocument) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	// Round-trip through a generic value so keys serialize sorted.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("canonicalize document: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("canonicalize document: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:hashLen], nil
}
