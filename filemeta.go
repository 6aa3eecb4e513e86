package dcmkit

import (
	"encoding/binary"
	"strings"

	"github.com/kowalski/dcmkit/dicomio"
	"github.com/kowalski/dcmkit/dictionary"
)

// fileMetaTransferSyntax is the fixed encoding of File Meta Information
// (group 0x0002), independent of whatever transfer syntax it announces for
// the main dataset.
var fileMetaTransferSyntax = TransferSyntax{ByteOrder: binary.LittleEndian, VRMode: dicomio.ExplicitVR}

// parseFileMeta reads the File Meta Information group: a loop that saves
// the cursor, reads a header, and restores the cursor the moment a
// non-0x0002 group appears — that element belongs to the main dataset, not
// file-meta. When a leading (0002,0000) FileMetaInformationGroupLength
// element is present, its declared length additionally narrows the loop's
// read window via PushLimit, for the extra bounds-checking that buys; it
// isn't required, so files omitting it still self-terminate correctly.
func parseFileMeta(dec *dicomio.Decoder) (elements []DataElement, transferSyntaxUID string) {
	if groupLength, ok := peekGroupLength(dec); ok {
		dec.PushLimit(int64(groupLength))
		defer dec.PopLimit()
	}

	for {
		if dec.Len() == 0 {
			break // end of the group-length window, or of the buffer
		}
		mark := dec.BytesRead()
		hdr, ok := readHeader(dec, fileMetaTransferSyntax)
		if !ok || dec.Error() != nil {
			break
		}
		if hdr.Group != 0x0002 {
			dec.Rewind(mark)
			break
		}
		if hdr.Length == undefinedLength {
			dec.SetErrorf("undefined length in File Meta Information for tag %s", canonicalTag(hdr.Group, hdr.Element))
			break
		}

		value := dec.ReadBytes(int(hdr.Length))
		if dec.Error() != nil {
			break
		}

		tag := canonicalTag(hdr.Group, hdr.Element)
		attr, known := dictionary.AttributeByTag(tag)

		if hdr.Group == 0x0002 && hdr.Element == 0x0010 {
			transferSyntaxUID = trimASCII(value)
		}

		if known {
			elements = append(elements, DataElement{
				Attribute: attr,
				Value:     decodeTextual(value),
			})
		}
	}

	return elements, transferSyntaxUID
}

// peekGroupLength reads (0002,0000) if it's the very first element, without
// disturbing the cursor for callers that don't find it there.
func peekGroupLength(dec *dicomio.Decoder) (uint32, bool) {
	mark := dec.BytesRead()
	hdr, ok := readHeader(dec, fileMetaTransferSyntax)
	if !ok || dec.Error() != nil || hdr.Group != 0x0002 || hdr.Element != 0x0000 {
		dec.Rewind(mark)
		return 0, false
	}
	length := dec.ReadUInt32()
	if dec.Error() != nil {
		dec.Rewind(mark)
		return 0, false
	}
	return length, true
}

func trimASCII(b []byte) string {
	return strings.Trim(string(b), "\x00 ")
}
