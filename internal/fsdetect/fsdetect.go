// Package fsdetect supplies a default implementation of
// interfaces.FilesystemDetector: given a stream and an absolute offset, it
// sniffs the superblock magic of a handful of filesystem formats and
// reports a type tag plus, where the format records it, a declared size.
//
// This is read-only superblock inspection, grounded on the same
// magic-at-a-fixed-offset shape used throughout the pack's filesystem
// readers (e.g. other_examples' ext4 and squashfs superblock structs) —
// it never interprets file contents, only the fixed header every one of
// these formats starts with.
package fsdetect

import (
	"encoding/binary"
	"io"

	"github.com/deploymenttheory/go-lpmetadata/internal/interfaces"
)

const (
	squashfsMagic = 0x73717368
	erofsMagic    = 0xE0F5E1E2
	ext4Magic     = 0xEF53
	f2fsMagic     = 0xF2F52010
)

// Detector is the default interfaces.FilesystemDetector.
type Detector struct{}

// New returns a Detector.
func New() *Detector { return &Detector{} }

var _ interfaces.FilesystemDetector = (*Detector)(nil)

// Detect reads the fixed-offset superblocks of SquashFS, F2FS, EROFS,
// EXT2/3/4 and VFAT/MBR in turn at absoluteOffset and returns the first match.
func (Detector) Detect(r io.ReaderAt, absoluteOffset int64) (interfaces.FilesystemType, uint64, error) {
	// SquashFS: magic at offset 0, declared size as u64 at offset 40.
	head := make([]byte, 48)
	if n, err := r.ReadAt(head, absoluteOffset); err != nil && n < len(head) {
		if err != io.EOF {
			return interfaces.FilesystemUnknown, 0, err
		}
	}
	if binary.LittleEndian.Uint32(head[0:4]) == squashfsMagic {
		return interfaces.FilesystemSquashFS, binary.LittleEndian.Uint64(head[40:48]), nil
	}

	// F2FS: magic at offset 0, block count as u32 at 0x48, unit 4096 bytes.
	f2fsHead := make([]byte, 0x4C)
	if n, err := r.ReadAt(f2fsHead, absoluteOffset); err != nil && n < len(f2fsHead) {
		if err != io.EOF {
			return interfaces.FilesystemUnknown, 0, err
		}
	}
	if binary.LittleEndian.Uint32(f2fsHead[0:4]) == f2fsMagic {
		blocks := binary.LittleEndian.Uint32(f2fsHead[0x48:0x4C])
		return interfaces.FilesystemF2FS, uint64(blocks) * 4096, nil
	}

	// Superblock-at-1024 formats: EROFS and EXT2/3/4.
	sb := make([]byte, 1024+0x40)
	n, err := r.ReadAt(sb, absoluteOffset)
	if err != nil && n < len(sb) {
		if err != io.EOF {
			return interfaces.FilesystemUnknown, 0, err
		}
	}
	sbBody := sb[1024:]

	if binary.LittleEndian.Uint32(sbBody[0:4]) == erofsMagic {
		logBlksz := sbBody[12]
		blocks := binary.LittleEndian.Uint32(sbBody[44:48])
		shift := uint(12)
		if logBlksz != 0 {
			shift = uint(logBlksz)
		}
		return interfaces.FilesystemEROFS, uint64(blocks) << shift, nil
	}

	if binary.LittleEndian.Uint16(sbBody[0x38:0x3A]) == ext4Magic {
		blocksLo := binary.LittleEndian.Uint32(sbBody[4:8])
		logBlockSize := binary.LittleEndian.Uint32(sbBody[0x18:0x1C])
		return interfaces.FilesystemEXT4, uint64(blocksLo) * (1024 << logBlockSize), nil
	}

	// VFAT/MBR: signature bytes 0x55 0xAA at the end of a 512-byte sector.
	mbr := make([]byte, 512)
	if n, err := r.ReadAt(mbr, absoluteOffset); err != nil && n < len(mbr) {
		if err != io.EOF {
			return interfaces.FilesystemUnknown, 0, err
		}
	}
	if mbr[510] == 0x55 && mbr[511] == 0xAA {
		return interfaces.FilesystemFAT, 0, nil
	}

	return interfaces.FilesystemUnknown, 0, nil
}
