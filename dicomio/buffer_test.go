package dicomio_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kowalski/dcmkit/dicomio"
)

func TestDecoderBasic(t *testing.T) {
	data := []byte{0x01, 0x02, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12, 'a', 'b', 'c'}
	d := dicomio.NewDecoder(data, binary.LittleEndian, dicomio.ExplicitVR)

	require.Equal(t, byte(0x01), d.ReadByte())
	require.Equal(t, byte(0x02), d.ReadByte())
	require.Equal(t, uint16(0x1234), d.ReadUInt16())
	require.Equal(t, uint32(0x12345678), d.ReadUInt32())
	require.Equal(t, "abc", d.ReadString(3))
	require.NoError(t, d.Error())
	require.True(t, d.EOF())
}

func TestDecoderBigEndian(t *testing.T) {
	data := []byte{0x12, 0x34}
	d := dicomio.NewDecoder(data, binary.BigEndian, dicomio.ExplicitVR)
	require.Equal(t, uint16(0x1234), d.ReadUInt16())
}

func TestDecoderReadPastEndSetsError(t *testing.T) {
	d := dicomio.NewDecoder([]byte{0x01}, binary.LittleEndian, dicomio.ImplicitVR)
	v := d.ReadUInt32()
	require.Equal(t, uint32(0), v)
	require.Error(t, d.Error())
}

func TestDecoderPushPopLimit(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	d := dicomio.NewDecoder(data, binary.LittleEndian, dicomio.ExplicitVR)

	d.PushLimit(2)
	require.Equal(t, byte(1), d.ReadByte())
	require.True(t, d.EOF()) // limit reached, even though more data exists
	d.PopLimit()

	require.False(t, d.EOF())
	require.Equal(t, byte(3), d.ReadByte())
}

func TestDecoderSkip(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	d := dicomio.NewDecoder(data, binary.LittleEndian, dicomio.ExplicitVR)
	d.Skip(3)
	require.Equal(t, byte(4), d.ReadByte())
}

func TestDecoderFloat(t *testing.T) {
	// 1.5 as float32 little-endian: 0x3FC00000
	data := []byte{0x00, 0x00, 0xC0, 0x3F}
	d := dicomio.NewDecoder(data, binary.LittleEndian, dicomio.ExplicitVR)
	require.InDelta(t, 1.5, float64(d.ReadFloat32()), 0.0001)
}

func TestDecoderBytesRead(t *testing.T) {
	d := dicomio.NewDecoder([]byte{1, 2, 3, 4}, binary.LittleEndian, dicomio.ExplicitVR)
	d.ReadUInt16()
	require.EqualValues(t, 2, d.BytesRead())
}
