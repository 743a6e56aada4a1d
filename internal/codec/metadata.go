package codec

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"

	"github.com/deploymenttheory/go-lpmetadata/internal/checksum"
	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// ParseHeaderAndTables decodes a header followed immediately by its tables
// buffer from slot, verifying both self-referential checksums.
func ParseHeaderAndTables(slot []byte) (*types.LpMetadata, error) {
	if len(slot) < types.EncodedHeaderSize {
		return nil, lperr.New(lperr.InvalidData, "metadata slot too short for header: %d bytes", len(slot))
	}

	var h types.Header
	if err := restruct.Unpack(slot[:types.EncodedHeaderSize], binary.LittleEndian, &h); err != nil {
		return nil, lperr.Wrap(lperr.InvalidData, err, "decoding header")
	}

	if h.Magic != types.HeaderMagic {
		return nil, lperr.New(lperr.InvalidData, "bad header magic 0x%08x", h.Magic)
	}
	if h.HeaderSize > uint32(len(slot)) || h.HeaderSize < types.EncodedHeaderSize {
		return nil, lperr.New(lperr.InvalidData, "header_size %d out of range", h.HeaderSize)
	}

	gotHeaderSum := checksum.ZeroThenHash(slot[:h.HeaderSize], types.HeaderChecksumOffset, types.HeaderChecksumEnd)
	if gotHeaderSum != [32]byte(h.HeaderChecksum) {
		return nil, lperr.New(lperr.Checksum, "header checksum mismatch")
	}

	tablesStart := int(h.HeaderSize)
	tablesEnd := tablesStart + int(h.TablesSize)
	if tablesEnd > len(slot) {
		return nil, lperr.New(lperr.InvalidData, "tables_size %d exceeds slot", h.TablesSize)
	}
	tables := slot[tablesStart:tablesEnd]

	gotTablesSum := checksum.Sum256(tables)
	if gotTablesSum != [32]byte(h.TablesChecksum) {
		return nil, lperr.New(lperr.Checksum, "tables checksum mismatch")
	}

	if err := validateTableDescriptors(h); err != nil {
		return nil, err
	}

	partitions, err := decodePartitions(tables, h.Partitions)
	if err != nil {
		return nil, err
	}
	extents, err := decodeExtents(tables, h.Extents)
	if err != nil {
		return nil, err
	}
	groups, err := decodeGroups(tables, h.Groups)
	if err != nil {
		return nil, err
	}
	blockDevices, err := decodeBlockDevices(tables, h.BlockDevices)
	if err != nil {
		return nil, err
	}

	return &types.LpMetadata{
		Header:       h,
		Partitions:   partitions,
		Extents:      extents,
		Groups:       groups,
		BlockDevices: blockDevices,
	}, nil
}

// validateTableDescriptors enforces increasing, non-overlapping table
// offsets within TablesSize and partition.offset == 0.
func validateTableDescriptors(h types.Header) error {
	if h.Partitions.Offset != 0 {
		return lperr.New(lperr.InvalidData, "partition table offset %d must be 0", h.Partitions.Offset)
	}
	descs := []types.TableDescriptor{h.Partitions, h.Extents, h.Groups, h.BlockDevices}
	var prevEnd uint64
	for i, d := range descs {
		start := uint64(d.Offset)
		if start < prevEnd {
			return lperr.New(lperr.InvalidData, "table %d overlaps previous table", i)
		}
		end := start + uint64(d.NumEntries)*uint64(d.EntrySize)
		if end > uint64(h.TablesSize) {
			return lperr.New(lperr.InvalidData, "table %d extends past tables_size", i)
		}
		prevEnd = end
	}
	return nil
}

// SerializeMetadata lays out partitions, extents, groups and block_devices
// contiguously in that order, computes the tables checksum, stamps the
// header fields and its own checksum, and returns header||tables.
func SerializeMetadata(m types.LpMetadata) ([]byte, error) {
	partBytes, err := encodePartitions(m.Partitions)
	if err != nil {
		return nil, err
	}
	extBytes, err := encodeExtents(m.Extents)
	if err != nil {
		return nil, err
	}
	grpBytes, err := encodeGroups(m.Groups)
	if err != nil {
		return nil, err
	}
	bdevBytes, err := encodeBlockDevices(m.BlockDevices)
	if err != nil {
		return nil, err
	}

	tables := make([]byte, 0, len(partBytes)+len(extBytes)+len(grpBytes)+len(bdevBytes))
	var offset uint32

	partDesc := types.TableDescriptor{Offset: offset, NumEntries: uint32(len(m.Partitions)), EntrySize: types.EncodedPartitionSize}
	tables = append(tables, partBytes...)
	offset += uint32(len(partBytes))

	extDesc := types.TableDescriptor{Offset: offset, NumEntries: uint32(len(m.Extents)), EntrySize: types.EncodedExtentSize}
	tables = append(tables, extBytes...)
	offset += uint32(len(extBytes))

	grpDesc := types.TableDescriptor{Offset: offset, NumEntries: uint32(len(m.Groups)), EntrySize: types.EncodedGroupSize}
	tables = append(tables, grpBytes...)
	offset += uint32(len(grpBytes))

	bdevDesc := types.TableDescriptor{Offset: offset, NumEntries: uint32(len(m.BlockDevices)), EntrySize: types.EncodedBlockDeviceSize}
	tables = append(tables, bdevBytes...)
	offset += uint32(len(bdevBytes))

	h := m.Header
	h.Magic = types.HeaderMagic
	h.MajorVersion = types.HeaderMajorVersion
	h.HeaderSize = types.EncodedHeaderSize
	h.TablesSize = offset
	h.TablesChecksum = checksum.Sum256(tables)
	h.Partitions = partDesc
	h.Extents = extDesc
	h.Groups = grpDesc
	h.BlockDevices = bdevDesc
	h.HeaderChecksum = types.Checksum32{}

	raw, err := restruct.Pack(binary.LittleEndian, &h)
	if err != nil {
		return nil, lperr.Wrap(lperr.InvalidData, err, "encoding header")
	}
	h.HeaderChecksum = checksum.ZeroThenHash(raw, types.HeaderChecksumOffset, types.HeaderChecksumEnd)
	raw, err = restruct.Pack(binary.LittleEndian, &h)
	if err != nil {
		return nil, lperr.Wrap(lperr.InvalidData, err, "encoding header")
	}

	return append(raw, tables...), nil
}
