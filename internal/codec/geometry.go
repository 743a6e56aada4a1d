package codec

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"

	"github.com/deploymenttheory/go-lpmetadata/internal/checksum"
	"github.com/deploymenttheory/go-lpmetadata/internal/lperr"
	"github.com/deploymenttheory/go-lpmetadata/internal/types"
)

// ParseGeometry decodes and checksum-verifies a GeometrySize-byte block.
// buf must be at least types.GeometrySize bytes; only the first
// StructSize bytes (as recorded in the decoded struct) participate in the
// checksum.
func ParseGeometry(buf []byte) (*types.Geometry, error) {
	if len(buf) < types.GeometrySize {
		return nil, lperr.New(lperr.InvalidData, "geometry block too short: %d bytes", len(buf))
	}

	var g types.Geometry
	if err := restruct.Unpack(buf[:types.EncodedGeometrySize], binary.LittleEndian, &g); err != nil {
		return nil, lperr.Wrap(lperr.InvalidData, err, "decoding geometry")
	}

	if g.Magic != types.GeometryMagic {
		return nil, lperr.New(lperr.InvalidData, "bad geometry magic 0x%08x", g.Magic)
	}
	if g.StructSize > uint32(len(buf)) || g.StructSize < types.EncodedGeometrySize {
		return nil, lperr.New(lperr.InvalidData, "geometry struct_size %d out of range", g.StructSize)
	}

	got := checksum.ZeroThenHash(buf[:g.StructSize], types.GeometryChecksumOffset, types.GeometryChecksumEnd)
	if got != [32]byte(g.Checksum) {
		return nil, lperr.New(lperr.Checksum, "geometry checksum mismatch")
	}

	return &g, nil
}

// SerializeGeometry packs g, stamps its checksum over the zeroed-checksum
// encoding, and pads the result out to types.GeometrySize bytes.
func SerializeGeometry(g types.Geometry) ([]byte, error) {
	g.StructSize = types.EncodedGeometrySize
	g.Checksum = types.Checksum32{}

	raw, err := restruct.Pack(binary.LittleEndian, &g)
	if err != nil {
		return nil, lperr.Wrap(lperr.InvalidData, err, "encoding geometry")
	}

	g.Checksum = checksum.ZeroThenHash(raw, types.GeometryChecksumOffset, types.GeometryChecksumEnd)
	raw, err = restruct.Pack(binary.LittleEndian, &g)
	if err != nil {
		return nil, lperr.Wrap(lperr.InvalidData, err, "encoding geometry")
	}

	padded := make([]byte, types.GeometrySize)
	copy(padded, raw)
	return padded, nil
}
