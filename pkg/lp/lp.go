// Package lp is the public facade over the LP metadata codec and layout
// editor: Open an existing super image, New one from scratch, mutate it
// through *Editor, and Write it back out. This mirrors the shape of the
// teacher's pkg/services facade (deploymenttheory/go-apfs), which wraps its
// parser internals behind a small constructor-based API for callers (and
// the cmd/ CLI) that shouldn't need to know about internal/ package
// boundaries.
package lp

import (
	"io"

	"github.com/deploymenttheory/go-lpmetadata/internal/codec"
	"github.com/deploymenttheory/go-lpmetadata/internal/editor"
	"github.com/deploymenttheory/go-lpmetadata/internal/interfaces"
	"github.com/deploymenttheory/go-lpmetadata/internal/loggers"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// Logger re-exports the collaborator interface callers may supply.
type Logger = interfaces.Logger

// FilesystemDetector re-exports the collaborator interface callers may
// supply to annotate partitions with their guessed content type.
type FilesystemDetector = interfaces.FilesystemDetector

// Metadata is the parsed logical model: geometry, header, and the four
// entity tables.
type Metadata = types.LpMetadata

// Editor is the in-memory layout builder.
type Editor = editor.Editor

// Open reads geometry (trying the primary, backup, and legacy offsets in
// turn) and parses primary metadata slot 0 from r. logger may be nil, in
// which case nothing is logged.
func Open(r io.ReaderAt, logger Logger) (*Metadata, error) {
	return codec.ReadImage(r, logger)
}

// OpenSlot reads and parses a specific metadata slot, given geometry
// already located via Open or LocateGeometry.
func OpenSlot(r io.ReaderAt, g types.Geometry, slotIndex uint32) (*Metadata, error) {
	m, err := codec.ReadMetadataSlot(r, codec.SlotOffset(4096, g.MetadataMaxSize, slotIndex), g.MetadataMaxSize)
	if err != nil {
		return nil, err
	}
	m.Geometry = g
	return m, nil
}

// NewEditor constructs a fresh editor over a device of the given size,
// metadata slot capacity, and slot count.
func NewEditor(deviceSize uint64, metadataMaxSize uint32, slotCount uint32) *Editor {
	return editor.New(deviceSize, metadataMaxSize, slotCount)
}

// EditExisting rebuilds an editor from an already-parsed image.
func EditExisting(m *Metadata) (*Editor, error) {
	return editor.FromMetadata(m)
}

// Write serializes the editor's current state and writes geometry,
// primary, and (when a block device is present) backup metadata slots to
// w.
func Write(w io.WriterAt, e *Editor, logger Logger) error {
	return codec.WriteImage(w, *e.Build(), logger)
}

// WriteMetadata serializes an already-built Metadata directly, for callers
// that parsed an image, mutated nothing structurally, and just want to
// rewrite it (e.g. after an external consumer patched fields directly).
func WriteMetadata(w io.WriterAt, m Metadata, logger Logger) error {
	return codec.WriteImage(w, m, logger)
}

// DefaultLogger returns the logrus-backed default Logger adapter.
func DefaultLogger() Logger {
	return loggers.NewLogrusLogger()
}
