package codec

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"

	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// decodeTable and encodeTable are the one generic table codec spec.md §9
// calls for: "a record type provides encode_into/decode_from and has a
// fixed compile-time byte size". In Go that capability is expressed as a
// type parameter plus the record's own encoded size, rather than as a
// trait object; the four concrete table types below are thin wrappers
// around it.
//
// entrySize, taken from the table descriptor, may exceed or undershoot the
// record's own encodedSize: this provides forward/backward compatibility.
// Each record is read as exactly entrySize raw bytes, then that window is
// copied into an encodedSize-sized scratch buffer (zero-padded if entrySize
// is smaller, truncated if larger) before decoding the known prefix.
func decodeTable[T any](buf []byte, desc types.TableDescriptor, encodedSize int) ([]T, error) {
	entries := make([]T, desc.NumEntries)
	for i := 0; i < int(desc.NumEntries); i++ {
		start := int(desc.Offset) + i*int(desc.EntrySize)
		end := start + int(desc.EntrySize)
		if start < 0 || end > len(buf) {
			return nil, lperr.New(lperr.InvalidData, "table entry %d out of bounds [%d,%d) in %d-byte tables buffer", i, start, end, len(buf))
		}

		scratch := make([]byte, encodedSize)
		copy(scratch, buf[start:end])

		if err := restruct.Unpack(scratch, binary.LittleEndian, &entries[i]); err != nil {
			return nil, lperr.Wrap(lperr.InvalidData, err, "decoding table entry %d", i)
		}
	}
	return entries, nil
}

// encodeTable packs entries back-to-back, each padded/truncated to exactly
// entrySize bytes (entrySize is always encodedSize for tables this codec
// writes itself).
func encodeTable[T any](entries []T, entrySize int) ([]byte, error) {
	out := make([]byte, 0, len(entries)*entrySize)
	for i := range entries {
		raw, err := restruct.Pack(binary.LittleEndian, &entries[i])
		if err != nil {
			return nil, lperr.Wrap(lperr.InvalidData, err, "encoding table entry %d", i)
		}
		chunk := make([]byte, entrySize)
		copy(chunk, raw)
		out = append(out, chunk...)
	}
	return out, nil
}

func decodePartitions(buf []byte, desc types.TableDescriptor) ([]types.Partition, error) {
	return decodeTable[types.Partition](buf, desc, types.EncodedPartitionSize)
}

func decodeExtents(buf []byte, desc types.TableDescriptor) ([]types.Extent, error) {
	return decodeTable[types.Extent](buf, desc, types.EncodedExtentSize)
}

func decodeGroups(buf []byte, desc types.TableDescriptor) ([]types.Group, error) {
	return decodeTable[types.Group](buf, desc, types.EncodedGroupSize)
}

func decodeBlockDevices(buf []byte, desc types.TableDescriptor) ([]types.BlockDevice, error) {
	return decodeTable[types.BlockDevice](buf, desc, types.EncodedBlockDeviceSize)
}

func encodePartitions(p []types.Partition) ([]byte, error) {
	return encodeTable(p, types.EncodedPartitionSize)
}

func encodeExtents(e []types.Extent) ([]byte, error) {
	return encodeTable(e, types.EncodedExtentSize)
}

func encodeGroups(g []types.Group) ([]byte, error) {
	return encodeTable(g, types.EncodedGroupSize)
}

func encodeBlockDevices(b []types.BlockDevice) ([]byte, error) {
	return encodeTable(b, types.EncodedBlockDeviceSize)
}
