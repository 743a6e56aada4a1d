// Package types holds the fixed-layout on-disk structures for Android
// Logical Partition (LP) metadata: geometry, header, table descriptors and
// the four entity records. Every struct here packs to an exact byte size
// with no Go padding, decoded with github.com/go-restruct/restruct the way
// github.com/dsoprea/go-exfat decodes its boot sector and directory
// entries.
package types

import (
	"bytes"
	"encoding/json"
)

// ChecksumSize is the width of every SHA-256 digest stored inline in
// geometry and header records.
const ChecksumSize = 32

// NameSize is the width of a partition, group, or block-device name field:
// up to 35 bytes of UTF-8 payload plus a guaranteed NUL terminator.
const NameSize = 36

// MaxNameBytes is the largest name payload set_name will keep; anything
// past this is silently truncated, matching the source layout's budget of
// NameSize-1 usable bytes.
const MaxNameBytes = NameSize - 1

// HeaderReservedSize is the width of the header's trailing zero padding.
const HeaderReservedSize = 124

// Checksum32 is an opaque 32-byte buffer holding a SHA-256 digest.
type Checksum32 [ChecksumSize]byte

// AsSpan returns the buffer as a byte slice view.
func (c *Checksum32) AsSpan() []byte { return c[:] }

// NameBuffer36 is a fixed 36-byte UTF-8 name field: up to 35 bytes of name
// payload, NUL-terminated, zero-padded to the end.
type NameBuffer36 [NameSize]byte

// AsSpan returns the buffer as a byte slice view.
func (n *NameBuffer36) AsSpan() []byte { return n[:] }

// SetName encodes name into the buffer, truncating silently at
// MaxNameBytes. Callers are expected to validate names (e.g. uniqueness)
// upstream; this call never fails.
func (n *NameBuffer36) SetName(name string) {
	for i := range n {
		n[i] = 0
	}
	b := []byte(name)
	if len(b) > MaxNameBytes {
		b = b[:MaxNameBytes]
	}
	copy(n[:], b)
}

// GetName scans for the first NUL byte and decodes the bytes before it as
// UTF-8.
func (n *NameBuffer36) GetName() string {
	end := bytes.IndexByte(n[:], 0)
	if end < 0 {
		end = len(n)
	}
	return string(n[:end])
}

// MarshalJSON renders the decoded name rather than the raw byte array, for
// human-readable --output json dumps.
func (n NameBuffer36) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.GetName())
}

// Reserved124 is a fixed zero-filled reserved region in the header.
type Reserved124 [HeaderReservedSize]byte

