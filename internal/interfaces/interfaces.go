// Package interfaces defines the collaborator contracts the codec and
// editor depend on but do not implement: logging and filesystem-content
// sniffing (§6 of the specification this module implements). Modeling
// collaborators as small interfaces rather than concrete types follows the
// teacher's internal/interfaces package (deploymenttheory/go-apfs), which
// keeps every cross-cutting concern (block devices, caches, validators)
// behind an interface the parsers accept rather than construct.
package interfaces

import "io"

// Logger accepts three severity channels of pre-formatted strings. The
// core only emits; it never consumes or parses what it logs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// FilesystemType is a coarse content-type tag a FilesystemDetector can
// report for a partition's payload.
type FilesystemType int

const (
	FilesystemUnknown FilesystemType = iota
	FilesystemEXT4
	FilesystemEROFS
	FilesystemF2FS
	FilesystemSquashFS
	FilesystemFAT
)

func (t FilesystemType) String() string {
	switch t {
	case FilesystemEXT4:
		return "ext4"
	case FilesystemEROFS:
		return "erofs"
	case FilesystemF2FS:
		return "f2fs"
	case FilesystemSquashFS:
		return "squashfs"
	case FilesystemFAT:
		return "fat"
	default:
		return "unknown"
	}
}

// FilesystemDetector sniffs the superblock magic of a partition's payload
// at a given absolute stream offset and reports its type and, when the
// on-disk format records it, its declared size in bytes. It never
// interprets file contents: detection is opaque beyond the type tag and
// size.
type FilesystemDetector interface {
	Detect(r io.ReaderAt, absoluteOffset int64) (FilesystemType, uint64, error)
}
