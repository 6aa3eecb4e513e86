package dcmkit

import (
	"encoding/binary"

	"github.com/kowalski/dcmkit/dicomio"
)

// TransferSyntax pins the byte order and VR mode that governs decoding of
// the main dataset (and, for the three well-known UIDs, the wire format
// tag parsing continues to use even for compressed pixel streams this
// reader treats as opaque).
type TransferSyntax struct {
	ByteOrder binary.ByteOrder
	VRMode    dicomio.IsImplicitVR
}

// The three well-known transfer syntax UIDs this reader resolves directly.
// Anything else, including every encapsulated/compressed transfer syntax,
// falls back to Explicit VR Little Endian for tag parsing below.
const (
	uidImplicitVRLittleEndian = "1.2.840.10008.1.2"
	uidExplicitVRLittleEndian = "1.2.840.10008.1.2.1"
	uidExplicitVRBigEndian    = "1.2.840.10008.1.2.2"
)

// resolveTransferSyntax maps a Transfer Syntax UID to the byte order and VR
// mode it selects. An empty uid (no Transfer Syntax UID element found in
// file-meta) resolves to Implicit VR Little Endian, the DICOM default.
func resolveTransferSyntax(uid string) TransferSyntax {
	switch uid {
	case uidImplicitVRLittleEndian, "":
		return TransferSyntax{ByteOrder: binary.LittleEndian, VRMode: dicomio.ImplicitVR}
	case uidExplicitVRLittleEndian:
		return TransferSyntax{ByteOrder: binary.LittleEndian, VRMode: dicomio.ExplicitVR}
	case uidExplicitVRBigEndian:
		return TransferSyntax{ByteOrder: binary.BigEndian, VRMode: dicomio.ExplicitVR}
	default:
		// Unrecognized UID, including every encapsulated/compressed syntax
		// (JPEG, RLE, etc.): fall back to Explicit VR Little Endian for tag
		// parsing. The pixel data bytes themselves are opaque to this
		// reader regardless.
		return TransferSyntax{ByteOrder: binary.LittleEndian, VRMode: dicomio.ExplicitVR}
	}
}
