package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Of returns the hex SHA-256 of a canonical state serialization. Clients
// exchange these digests to verify both ends resolved to the same state;
// the input must already be deterministic bytes (see engine.Snapshot).
func Of(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
