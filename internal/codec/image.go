// Package codec implements the full-image read and write path: geometry
// location with multi-offset recovery, header/tables parsing and
// serialization, and primary/backup slot layout on a block device — C4 of
// the design this module implements.
package codec

import (
	"io"

	"github.com/deploymenttheory/go-lpmetadata/internal/interfaces"
	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// geometryCandidates are the absolute byte offsets tried in order:
// spec-primary, backup, and a legacy/raw fallback.
var geometryCandidates = [3]int64{4096, 8192, 0}

// LocateGeometry tries each candidate offset in turn, logging and
// continuing past any single-offset failure, and returns the first
// geometry that parses and checksum-verifies along with the metadata base
// offset (always 4096: the primary metadata area immediately follows the
// geometry pair, regardless of which single copy was used to recover it).
func LocateGeometry(r io.ReaderAt, logger interfaces.Logger) (*types.Geometry, int64, error) {
	if logger == nil {
		logger = noopLogger{}
	}

	buf := make([]byte, types.GeometrySize)
	for _, off := range geometryCandidates {
		n, err := r.ReadAt(buf, off)
		if err != nil && n < len(buf) {
			logger.Warn("geometry read at offset %d failed: %v", off, err)
			continue
		}
		g, perr := ParseGeometry(buf)
		if perr != nil {
			logger.Warn("geometry candidate at offset %d rejected: %v", off, perr)
			continue
		}
		if off == 0 {
			logger.Warn("recovered geometry via legacy offset-0 fallback")
		}
		return g, 4096, nil
	}
	return nil, 0, lperr.New(lperr.InvalidData, "no valid geometry at offsets 4096, 8192, or 0")
}

// SlotOffset computes the primary metadata slot offset for slotIndex given
// the metadata base offset returned by LocateGeometry.
func SlotOffset(base int64, metadataMaxSize uint32, slotIndex uint32) int64 {
	return base + 2*types.GeometrySize + int64(slotIndex)*int64(metadataMaxSize)
}

// BackupSlotOffset computes the backup metadata slot offset at the device
// tail.
func BackupSlotOffset(deviceSize int64, metadataMaxSize uint32, slotCount uint32, slotIndex uint32) int64 {
	return deviceSize - int64(metadataMaxSize)*int64(slotCount) + int64(slotIndex)*int64(metadataMaxSize)
}

// ReadMetadataSlot reads and parses the metadata at the given absolute
// offset, reading up to metadataMaxSize bytes (the decoder only consumes
// header_size+tables_size of them).
func ReadMetadataSlot(r io.ReaderAt, offset int64, metadataMaxSize uint32) (*types.LpMetadata, error) {
	buf := make([]byte, metadataMaxSize)
	n, err := r.ReadAt(buf, offset)
	if err != nil && n < types.EncodedHeaderSize {
		return nil, lperr.Wrap(lperr.InvalidData, err, "reading metadata slot at offset %d", offset)
	}
	if n < len(buf) {
		buf = buf[:n]
	}
	return ParseHeaderAndTables(buf)
}

// ReadImage performs geometry location followed by a parse of primary
// metadata slot 0, the default full-image read operation.
func ReadImage(r io.ReaderAt, logger interfaces.Logger) (*types.LpMetadata, error) {
	g, base, err := LocateGeometry(r, logger)
	if err != nil {
		return nil, err
	}
	m, err := ReadMetadataSlot(r, SlotOffset(base, g.MetadataMaxSize, 0), g.MetadataMaxSize)
	if err != nil {
		return nil, err
	}
	m.Geometry = *g
	return m, nil
}

// truncater is satisfied by streams (e.g. *os.File) that can be resized
// before a fresh image write.
type truncater interface {
	Truncate(size int64) error
}

// WriteImage serializes m and writes both geometry copies, then every
// primary metadata slot and, when m has at least one block device, every
// backup slot at the device tail. Ordering within the call matches §5:
// both geometry blocks are written before any metadata slot, and within
// the slot loop every primary slot i is written before backup slot i.
func WriteImage(w io.WriterAt, m types.LpMetadata, logger interfaces.Logger) error {
	if logger == nil {
		logger = noopLogger{}
	}

	if len(m.BlockDevices) > 0 {
		if t, ok := w.(truncater); ok {
			if err := t.Truncate(int64(m.BlockDevices[0].Size)); err != nil {
				return lperr.Wrap(lperr.InvalidData, err, "sizing stream to block device size")
			}
		}
	}

	geomBytes, err := SerializeGeometry(m.Geometry)
	if err != nil {
		return err
	}
	if _, err := w.WriteAt(geomBytes, 4096); err != nil {
		return lperr.Wrap(lperr.InvalidData, err, "writing primary geometry")
	}
	if _, err := w.WriteAt(geomBytes, 8192); err != nil {
		return lperr.Wrap(lperr.InvalidData, err, "writing backup geometry")
	}

	blob, err := SerializeMetadata(m)
	if err != nil {
		return err
	}
	if uint32(len(blob)) > m.Geometry.MetadataMaxSize {
		return lperr.New(lperr.Capacity, "serialized metadata %d bytes exceeds metadata_max_size %d", len(blob), m.Geometry.MetadataMaxSize)
	}

	deviceSize := int64(0)
	if len(m.BlockDevices) > 0 {
		deviceSize = int64(m.BlockDevices[0].Size)
	}

	for i := uint32(0); i < m.Geometry.MetadataSlotCount; i++ {
		primaryOff := SlotOffset(4096, m.Geometry.MetadataMaxSize, i)
		if _, err := w.WriteAt(blob, primaryOff); err != nil {
			return lperr.Wrap(lperr.InvalidData, err, "writing primary metadata slot %d", i)
		}

		if len(m.BlockDevices) == 0 {
			continue
		}
		backupOff := BackupSlotOffset(deviceSize, m.Geometry.MetadataMaxSize, m.Geometry.MetadataSlotCount, i)
		if _, err := w.WriteAt(blob, backupOff); err != nil {
			return lperr.Wrap(lperr.InvalidData, err, "writing backup metadata slot %d", i)
		}
	}

	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
