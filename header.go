package dcmkit

import (
	"github.com/kowalski/dcmkit/dicomio"
	"github.com/kowalski/dcmkit/dictionary"
	"github.com/kowalski/dcmkit/vr"
)

// undefinedLength is the 0xFFFFFFFF sentinel value PS3.5 7.1.1 reserves to
// mean "length determined by a delimitation item" (sequences, encapsulated
// pixel data). This release halts cleanly on encountering it rather than
// recursing into item parsing.
const undefinedLength = 0xFFFFFFFF

// elementHeader is the decoded form of one element's group, element, VR,
// and value length.
type elementHeader struct {
	Group, Element uint16
	VR             vr.Code
	HasVR          bool
	Length         uint32
}

// readHeader decodes one element header from dec, in the mode ts.VRMode
// selects. ok is false on truncation (fewer than 8/12 bytes remain), and the
// decoder's sticky error is then set. The dataset walker treats that as a
// clean end-of-stream; in File Meta, Read treats it as a failure and
// returns an empty Dataset.
func readHeader(dec *dicomio.Decoder, ts TransferSyntax) (hdr elementHeader, ok bool) {
	group := dec.ReadUInt16()
	element := dec.ReadUInt16()
	if dec.Error() != nil {
		return elementHeader{}, false
	}

	if ts.VRMode == dicomio.ImplicitVR {
		code, _ := implicitVRFor(group, element)
		length := dec.ReadUInt32()
		if dec.Error() != nil {
			return elementHeader{}, false
		}
		return elementHeader{Group: group, Element: element, VR: code, HasVR: false, Length: length}, true
	}

	code := vr.Code(dec.ReadString(2))
	var length uint32
	if vr.IsLongForm(code) {
		dec.Skip(2) // reserved, always 0000H
		length = dec.ReadUInt32()
	} else {
		// Zero-extend, per spec.md §4.4: short-form VRs have no
		// undefined-length sentinel of their own. 0xFFFF is a legal 16-bit
		// length (65535 bytes), not a rewrite to the 32-bit 0xFFFFFFFF
		// sentinel — see DESIGN.md for why this module departs from the
		// teacher's own readExplicit here.
		length = uint32(dec.ReadUInt16())
	}
	if dec.Error() != nil {
		return elementHeader{}, false
	}
	return elementHeader{Group: group, Element: element, VR: code, HasVR: true, Length: length}, true
}

// implicitVRFor resolves the VR an Implicit-VR element must have by
// consulting the dictionary, falling back to vr.UN for an unrecognized tag.
// This decision only selects the decode path; whether the element ends up
// in the dataset at all is decided independently by the walker's own
// dictionary lookup.
func implicitVRFor(group, element uint16) (vr.Code, bool) {
	tag := canonicalTag(group, element)
	attr, ok := dictionary.AttributeByTag(tag)
	if !ok || attr.VR == nil {
		return vr.UN, false
	}
	return *attr.VR, true
}
