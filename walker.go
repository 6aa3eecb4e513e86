package dcmkit

import (
	"fmt"
	"strings"

	"github.com/kowalski/dcmkit/dicomio"
	"github.com/kowalski/dcmkit/dictionary"
	"github.com/kowalski/dcmkit/vr"
)

// canonicalTag formats group/element as the "(GGGG,EEEE)" string the
// dictionary and Dataset.Get key on.
func canonicalTag(group, element uint16) string {
	return fmt.Sprintf("(%04X,%04X)", group, element)
}

var (
	itemDelimitationTag     = Tag{Group: 0xFFFE, Element: 0xE00D}
	sequenceDelimitationTag = Tag{Group: 0xFFFE, Element: 0xE0DD}
	pixelDataGroup          = Tag{Group: 0x7FE0, Element: 0x0010}
)

// walkResult carries back what walkElements accumulated plus a short
// diagnostic string describing why it stopped, if it stopped early for a
// non-fatal reason (undefined length, truncation). An empty diagnostic
// means it ran to a clean end-of-stream.
type walkResult struct {
	elements   []DataElement
	pixelData []byte
	diagnostic string
}

// walkDataset runs the main loop over the main dataset: read a header,
// read its value, classify it, repeat, with sequence/item recursion left
// out (full SQ undefined-length recursion is out of scope for this
// release).
//
// Factored out as walkElements so that wiring SQ-item recursion in later
// would mean calling walkElements again against a PushLimit-bounded
// sub-window, not a rewrite — SQ values are still routed to raw Data in
// this release.
func walkDataset(dec *dicomio.Decoder, ts TransferSyntax) walkResult {
	return walkElements(dec, ts)
}

func walkElements(dec *dicomio.Decoder, ts TransferSyntax) walkResult {
	var result walkResult

	for {
		if dec.Len() < 8 {
			break
		}

		hdr, ok := readHeader(dec, ts)
		if !ok || dec.Error() != nil {
			break
		}

		if hdr.Length == undefinedLength {
			result.diagnostic = fmt.Sprintf("undefined length at tag %s, halting before SQ/encapsulated recursion",
				delimiterAwareTag(hdr.Group, hdr.Element))
			break
		}

		if dec.Len() < int64(hdr.Length) {
			result.diagnostic = fmt.Sprintf("truncated value at tag %s: declared %d bytes, %d remain",
				canonicalTag(hdr.Group, hdr.Element), hdr.Length, dec.Len())
			break
		}

		value := dec.ReadBytes(int(hdr.Length))
		if dec.Error() != nil {
			result.diagnostic = fmt.Sprintf("failed reading value for tag %s: %v", canonicalTag(hdr.Group, hdr.Element), dec.Error())
			break
		}

		tag := canonicalTag(hdr.Group, hdr.Element)

		if hdr.Group == pixelDataGroup.Group && hdr.Element == pixelDataGroup.Element {
			result.pixelData = value
			if attr, ok := dictionary.AttributeByTag(tag); ok {
				result.elements = append(result.elements, DataElement{Attribute: attr, Value: nil})
			}
			continue
		}

		attr, ok := dictionary.AttributeByTag(tag)
		if !ok {
			continue // unknown/private tag: silently skip, per spec.md §4.6 step 7
		}

		val := decodeValue(attr, hdr, value, ts)
		result.elements = append(result.elements, DataElement{Attribute: attr, Value: val})
	}

	return result
}

// delimiterAwareTag names (FFFE,E00D)/(FFFE,E0DD) explicitly in diagnostics
// (resolving spec.md §9's Open Question partially: recognized by value, but
// encapsulated-fragment parsing remains out of scope).
func delimiterAwareTag(group, element uint16) string {
	t := Tag{Group: group, Element: element}
	switch t {
	case itemDelimitationTag:
		return canonicalTag(group, element) + " (Item Delimitation Item)"
	case sequenceDelimitationTag:
		return canonicalTag(group, element) + " (Sequence Delimitation Item)"
	default:
		return canonicalTag(group, element)
	}
}

// decodeValue implements the per-VR decode table in spec.md §4.6. Where
// declared length doesn't match the VR's scalar width, it falls back to
// raw Data, never erroring the whole parse over one malformed element.
func decodeValue(attr *dictionary.Attribute, hdr elementHeader, value []byte, ts TransferSyntax) *DataElementValue {
	code := resolveVR(attr, hdr)
	kind, _ := vr.SuggestedKind(code)

	switch kind {
	case vr.String:
		return decodeTextual(value)
	case vr.UInt16:
		if len(value) == 2 {
			return &DataElementValue{Kind: vr.UInt16, UInt16: ts.ByteOrder.Uint16(value)}
		}
	case vr.Int16:
		if len(value) == 2 {
			return &DataElementValue{Kind: vr.Int16, Int16: int16(ts.ByteOrder.Uint16(value))}
		}
	case vr.UInt32:
		if len(value) == 4 {
			return &DataElementValue{Kind: vr.UInt32, UInt32: ts.ByteOrder.Uint32(value)}
		}
	case vr.Int32:
		if len(value) == 4 {
			return &DataElementValue{Kind: vr.Int32, Int32: int32(ts.ByteOrder.Uint32(value))}
		}
	case vr.UInt64:
		if len(value) == 8 {
			return &DataElementValue{Kind: vr.UInt64, UInt64: ts.ByteOrder.Uint64(value)}
		}
	case vr.Int64:
		if len(value) == 8 {
			return &DataElementValue{Kind: vr.Int64, Int64: int64(ts.ByteOrder.Uint64(value))}
		}
	case vr.Float:
		if len(value) == 4 {
			return &DataElementValue{Kind: vr.Float, Float: decodeFloat32(value, ts)}
		}
	case vr.Double:
		if len(value) == 8 {
			return &DataElementValue{Kind: vr.Double, Double: decodeFloat64(value, ts)}
		}
	case vr.Tag:
		if len(value) == 4 {
			return &DataElementValue{Kind: vr.Tag, Tag: Tag{
				Group:   ts.ByteOrder.Uint16(value[0:2]),
				Element: ts.ByteOrder.Uint16(value[2:4]),
			}}
		}
	case vr.Sequence, vr.Data:
		// fall through to raw Data below
	}

	return &DataElementValue{Kind: vr.Data, Bytes: value}
}

// resolveVR prefers the explicit VR on the wire, if present, over the
// dictionary's suggested VR — an Explicit-VR stream is authoritative about
// its own encoding; Implicit-VR elements have no wire VR, so the
// dictionary's is used (and readHeader already resolved it for the header
// decode path).
func resolveVR(attr *dictionary.Attribute, hdr elementHeader) vr.Code {
	if hdr.HasVR {
		return hdr.VR
	}
	if attr.VR != nil {
		return *attr.VR
	}
	return vr.UN
}

func decodeFloat32(b []byte, ts TransferSyntax) float32 {
	d := dicomio.NewDecoder(b, ts.ByteOrder, dicomio.ExplicitVR)
	return d.ReadFloat32()
}

func decodeFloat64(b []byte, ts TransferSyntax) float64 {
	d := dicomio.NewDecoder(b, ts.ByteOrder, dicomio.ExplicitVR)
	return d.ReadFloat64()
}

// decodeTextual interprets value as ASCII, trimming trailing NUL and space
// (spec.md §4.6's textual-VR rule). Text holding any byte above 0x7F
// (non-ASCII, which covers all invalid UTF-8) decodes to an empty string
// rather than a replacement-character mess.
func decodeTextual(value []byte) *DataElementValue {
	s := strings.TrimRight(string(value), "\x00 ")
	if !isASCII(s) {
		return &DataElementValue{Kind: vr.String, Str: ""}
	}
	return &DataElementValue{Kind: vr.String, Str: s}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}
