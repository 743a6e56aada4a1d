package fsdetect_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-lpmetadata/internal/fsdetect"
	"github.com/deploymenttheory/go-lpmetadata/internal/interfaces"
	"github.com/deploymenttheory/go-lpmetadata/internal/memstream"
)

func TestDetectSquashFS(t *testing.T) {
	dev := memstream.NewDevice(64)
	raw := dev.Bytes()
	binary.LittleEndian.PutUint32(raw[0:4], 0x73717368)
	binary.LittleEndian.PutUint64(raw[40:48], 123456)

	d := fsdetect.New()
	kind, size, err := d.Detect(dev, 0)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemSquashFS, kind)
	require.Equal(t, uint64(123456), size)
}

func TestDetectF2FS(t *testing.T) {
	dev := memstream.NewDevice(0x100)
	raw := dev.Bytes()
	binary.LittleEndian.PutUint32(raw[0:4], 0xF2F52010)
	binary.LittleEndian.PutUint32(raw[0x48:0x4C], 10)

	d := fsdetect.New()
	kind, size, err := d.Detect(dev, 0)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemF2FS, kind)
	require.Equal(t, uint64(10*4096), size)
}

func TestDetectEROFS(t *testing.T) {
	dev := memstream.NewDevice(2048)
	raw := dev.Bytes()
	binary.LittleEndian.PutUint32(raw[1024:1028], 0xE0F5E1E2)
	raw[1024+12] = 0 // log_blksz == 0 means the 4096-byte default
	binary.LittleEndian.PutUint32(raw[1024+44:1024+48], 5)

	d := fsdetect.New()
	kind, size, err := d.Detect(dev, 0)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemEROFS, kind)
	require.Equal(t, uint64(5<<12), size)
}

func TestDetectEXT4(t *testing.T) {
	dev := memstream.NewDevice(2048)
	raw := dev.Bytes()
	binary.LittleEndian.PutUint16(raw[1024+0x38:1024+0x3A], 0xEF53)
	binary.LittleEndian.PutUint32(raw[1024+4:1024+8], 100)
	binary.LittleEndian.PutUint32(raw[1024+0x18:1024+0x1C], 2) // log_block_size

	d := fsdetect.New()
	kind, size, err := d.Detect(dev, 0)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemEXT4, kind)
	require.Equal(t, uint64(100)*(1024<<2), size)
}

func TestDetectFAT(t *testing.T) {
	dev := memstream.NewDevice(512)
	raw := dev.Bytes()
	raw[510] = 0x55
	raw[511] = 0xAA

	d := fsdetect.New()
	kind, size, err := d.Detect(dev, 0)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemFAT, kind)
	require.Equal(t, uint64(0), size)
}

func TestDetectUnknown(t *testing.T) {
	dev := memstream.NewDevice(2048)

	d := fsdetect.New()
	kind, _, err := d.Detect(dev, 0)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemUnknown, kind)
}

func TestDetectAtNonZeroOffset(t *testing.T) {
	dev := memstream.NewDevice(4096)
	raw := dev.Bytes()
	binary.LittleEndian.PutUint32(raw[2048:2052], 0x73717368)
	binary.LittleEndian.PutUint64(raw[2088:2096], 777)

	d := fsdetect.New()
	kind, size, err := d.Detect(dev, 2048)
	require.NoError(t, err)
	require.Equal(t, interfaces.FilesystemSquashFS, kind)
	require.Equal(t, uint64(777), size)
}
