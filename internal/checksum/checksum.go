// Package checksum implements the SHA-256 zero-then-hash discipline used
// throughout the codec for self-referential checksums (§4.3 / §9 of the
// specification this module implements). The approach mirrors the
// teacher's object checksum inspector
// (internal/parsers/objects/object_checksum_verifier.go in
// deploymenttheory/go-apfs), which also zeroes the checksum window of a
// copy of the payload before hashing it — the same shape, a different
// digest (SHA-256 here, since that is what the format mandates, vs.
// Fletcher-64 for APFS objects).
package checksum

import "crypto/sha256"

// Sum256 returns the SHA-256 digest of span.
func Sum256(span []byte) [32]byte {
	return sha256.Sum256(span)
}

// ZeroThenHash clones buf, zeroes the half-open byte window [start, end)
// within the clone, hashes the clone, and returns the digest. buf itself is
// never mutated.
func ZeroThenHash(buf []byte, start, end int) [32]byte {
	clone := make([]byte, len(buf))
	copy(clone, buf)
	for i := start; i < end && i < len(clone); i++ {
		clone[i] = 0
	}
	return sha256.Sum256(clone)
}

// Verify reports whether zeroing buf's [start, end) window and hashing it
// reproduces want.
func Verify(buf []byte, start, end int, want [32]byte) bool {
	return ZeroThenHash(buf, start, end) == want
}
