package dcmkit_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kowalski/dcmkit"
	"github.com/kowalski/dcmkit/vr"
)

const (
	uidImplicitLE = "1.2.840.10008.1.2"
	uidExplicitLE = "1.2.840.10008.1.2.1"
	uidExplicitBE = "1.2.840.10008.1.2.2"
)

func evenPad(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0x00)
	}
	return b
}

func preambleAndMagic() []byte {
	buf := make([]byte, 132)
	copy(buf[128:132], "DICM")
	return buf
}

// writeExplicit writes one Explicit-VR element in the given byte order:
// group, element, 2-byte VR, then a short-form or long-form length
// depending on vr.IsLongForm.
func writeExplicitOrder(buf *bytes.Buffer, order binary.ByteOrder, group, element uint16, code vr.Code, value []byte) {
	binary.Write(buf, order, group)
	binary.Write(buf, order, element)
	buf.WriteString(string(code))
	if vr.IsLongForm(code) {
		buf.Write([]byte{0, 0})
		binary.Write(buf, order, uint32(len(value)))
	} else {
		binary.Write(buf, order, uint16(len(value)))
	}
	buf.Write(value)
}

// writeExplicit is writeExplicitOrder fixed to Little Endian, for the
// common case (File Meta is always Explicit-LE; most dataset fixtures
// below use Explicit-LE too).
func writeExplicit(buf *bytes.Buffer, group, element uint16, code vr.Code, value []byte) {
	writeExplicitOrder(buf, binary.LittleEndian, group, element, code, value)
}

// writeImplicit writes one Implicit-VR element in the given byte order:
// group, element, 4-byte length, value. VR is resolved by the reader from
// the dictionary.
func writeImplicit(buf *bytes.Buffer, order binary.ByteOrder, group, element uint16, value []byte) {
	binary.Write(buf, order, group)
	binary.Write(buf, order, element)
	binary.Write(buf, order, uint32(len(value)))
	buf.Write(value)
}

func fileMetaWithTransferSyntax(uid string) []byte {
	var buf bytes.Buffer
	writeExplicit(&buf, 0x0002, 0x0010, vr.UI, evenPad(uid))
	return buf.Bytes()
}

func buildFile(metaUID string, dataset []byte) []byte {
	var buf bytes.Buffer
	buf.Write(preambleAndMagic())
	buf.Write(fileMetaWithTransferSyntax(metaUID))
	buf.Write(dataset)
	return buf.Bytes()
}

func TestReadMinimalImplicitVR(t *testing.T) {
	var ds bytes.Buffer
	writeImplicit(&ds, binary.LittleEndian, 0x0008, 0x0060, []byte("CT"))

	dataset := dcmkit.Read(buildFile(uidImplicitLE, ds.Bytes()))

	e, ok := dataset.Get("Modality")
	require.True(t, ok)
	require.Equal(t, vr.String, e.Value.Kind)
	require.Equal(t, "CT", e.Value.Str)
}

func TestReadExplicitLEPatientNameTrimmed(t *testing.T) {
	var ds bytes.Buffer
	writeExplicit(&ds, 0x0010, 0x0010, vr.PN, evenPad("Doe^Jane \x00"))

	dataset := dcmkit.Read(buildFile(uidExplicitLE, ds.Bytes()))

	e, ok := dataset.Get("(0010,0010)")
	require.True(t, ok)
	require.Equal(t, "Doe^Jane", e.Value.Str)

	// tag lookup and keyword lookup must agree
	e2, ok := dataset.Get("PatientName")
	require.True(t, ok)
	require.Same(t, e.Attribute, e2.Attribute)
}

func TestReadPixelDataRouting(t *testing.T) {
	pixels := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	var ds bytes.Buffer
	writeExplicit(&ds, 0x7FE0, 0x0010, vr.OW, pixels)

	dataset := dcmkit.Read(buildFile(uidExplicitLE, ds.Bytes()))

	require.Equal(t, pixels, dataset.PixelData())

	e, ok := dataset.Get("PixelData")
	require.True(t, ok)
	require.Nil(t, e.Value, "pixel data element itself carries no inline value")
}

func TestReadBadMagicReturnsEmptyDataset(t *testing.T) {
	b := make([]byte, 200) // no "DICM" at offset 128
	dataset := dcmkit.Read(b)

	require.Empty(t, dataset.FileMeta())
	require.Empty(t, dataset.Elements())
	require.Nil(t, dataset.PixelData())
}

func TestReadTruncatedFileMetaReturnsEmptyDataset(t *testing.T) {
	full := buildFile(uidExplicitLE, nil)
	truncated := full[:len(full)-3] // cut into the middle of the UID value

	dataset := dcmkit.Read(truncated)

	require.Empty(t, dataset.FileMeta())
	require.Empty(t, dataset.Elements())
}

func TestReadUndefinedLengthHaltsCleanly(t *testing.T) {
	var ds bytes.Buffer
	writeExplicit(&ds, 0x0010, 0x0010, vr.PN, evenPad("Before"))
	// Hand-construct an OB element with undefined length (0xFFFFFFFF), which
	// this release refuses to recurse into.
	binary.Write(&ds, binary.LittleEndian, uint16(0x0009))
	binary.Write(&ds, binary.LittleEndian, uint16(0x0001))
	ds.WriteString(string(vr.OB))
	ds.Write([]byte{0, 0})
	binary.Write(&ds, binary.LittleEndian, uint32(0xFFFFFFFF))

	dataset := dcmkit.Read(buildFile(uidExplicitLE, ds.Bytes()))

	// the element before the undefined-length one survives
	e, ok := dataset.Get("PatientName")
	require.True(t, ok)
	require.Equal(t, "Before", e.Value.Str)
}

func TestReadTruncatedMainDatasetValueReturnsPartialDataset(t *testing.T) {
	full := buildFile(uidExplicitLE, nil)
	var ds bytes.Buffer
	writeExplicit(&ds, 0x0010, 0x0020, vr.LO, evenPad("12345678"))
	allBytes := append(full, ds.Bytes()...)
	truncated := allBytes[:len(allBytes)-3]

	dataset := dcmkit.Read(truncated)

	// truncated element is dropped, but the reader did not panic or error out
	_, ok := dataset.Get("PatientID")
	require.False(t, ok)
}

func TestReadExplicitBigEndian(t *testing.T) {
	var ds bytes.Buffer
	writeExplicitOrder(&ds, binary.BigEndian, 0x0028, 0x0010, vr.US, []byte{0x02, 0x00}) // Rows=512 big-endian

	dataset := dcmkit.Read(buildFile(uidExplicitBE, ds.Bytes()))

	e, ok := dataset.Get("Rows")
	require.True(t, ok)
	require.Equal(t, vr.UInt16, e.Value.Kind)
	require.EqualValues(t, 512, e.Value.UInt16)
}

func TestReadZeroLengthValue(t *testing.T) {
	var ds bytes.Buffer
	writeExplicit(&ds, 0x0010, 0x0040, vr.CS, []byte{})

	dataset := dcmkit.Read(buildFile(uidExplicitLE, ds.Bytes()))

	e, ok := dataset.Get("PatientSex")
	require.True(t, ok)
	require.Equal(t, "", e.Value.Str)
}

func TestReadNoTransferSyntaxDefaultsToImplicitLE(t *testing.T) {
	var ds bytes.Buffer
	writeImplicit(&ds, binary.LittleEndian, 0x0008, 0x0060, []byte("MR"))

	var buf bytes.Buffer
	buf.Write(preambleAndMagic())
	// no file-meta elements at all: first element already belongs to the
	// main dataset, so parseFileMeta's loop terminates immediately.
	buf.Write(ds.Bytes())

	dataset := dcmkit.Read(buf.Bytes())

	e, ok := dataset.Get("Modality")
	require.True(t, ok)
	require.Equal(t, "MR", e.Value.Str)
}

func TestReadUnknownTagSkippedSilently(t *testing.T) {
	var ds bytes.Buffer
	writeExplicit(&ds, 0x0009, 0x0010, vr.LO, evenPad("PrivateCreator"))
	writeExplicit(&ds, 0x0008, 0x0060, vr.CS, []byte("CT"))

	dataset := dcmkit.Read(buildFile(uidExplicitLE, ds.Bytes()))

	require.Len(t, dataset.Elements(), 1)
	e, ok := dataset.Get("Modality")
	require.True(t, ok)
	require.Equal(t, "CT", e.Value.Str)
}
