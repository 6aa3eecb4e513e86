// Package dcmkit reads DICOM Part 10 files into an in-memory Dataset of
// typed attribute/value pairs, queryable by tag or keyword.
//
// Read is a total function: it never panics on malformed input and has no
// error return. Bad input — a missing "DICM" magic, truncation, an
// undefined-length sentinel this release doesn't recurse into — yields a
// partially (or, for File-Meta failures, fully) empty Dataset plus a
// diagnostic routed through package dicomlog, never an exception escaping
// to the caller.
package dcmkit

import (
	"encoding/binary"

	"github.com/kowalski/dcmkit/dicomio"
	"github.com/kowalski/dcmkit/dicomlog"
)

const (
	preambleLength = 128
	magicOffset    = 128
	magicLength    = 4
	magic          = "DICM"
	minimumLength  = magicOffset + magicLength
)

// Read parses b as a DICOM Part 10 file, per spec.md §6's external
// interface: 128-byte preamble, "DICM" magic, File Meta Information
// (always Explicit VR Little Endian), then the main dataset encoded per
// the negotiated Transfer Syntax.
//
// Grounded on the teacher's ReadDataSetFromFile/ReadDataSetInBytes plus
// original_source's read_dicom preamble check.
func Read(b []byte) (ds *Dataset) {
	ds = &Dataset{}

	defer func() {
		if r := recover(); r != nil {
			dicomlog.Vprintf(0, "dcmkit: internal invariant violated, returning dataset accumulated so far: %v", r)
		}
	}()

	if len(b) < minimumLength || string(b[magicOffset:magicOffset+magicLength]) != magic {
		dicomlog.Vprintf(1, "dcmkit: not a Part 10 file (missing DICM magic at offset %d)", magicOffset)
		return ds
	}

	dec := dicomio.NewDecoder(b[preambleLength:], binary.LittleEndian, dicomio.ExplicitVR)
	dec.Skip(magicLength) // consume "DICM"

	fileMeta, tsUID := parseFileMeta(dec)
	if dec.Error() != nil {
		dicomlog.Vprintf(0, "dcmkit: truncated or malformed File Meta Information: %v", dec.Error())
		return &Dataset{}
	}
	for _, e := range fileMeta {
		ds.appendFileMeta(e)
	}

	ts := resolveTransferSyntax(tsUID)
	switch tsUID {
	case "":
		dicomlog.Vprintf(2, "dcmkit: no Transfer Syntax UID found in File Meta; defaulting to Implicit VR Little Endian")
	case uidImplicitVRLittleEndian, uidExplicitVRLittleEndian, uidExplicitVRBigEndian:
	default:
		dicomlog.Vprintf(1, "dcmkit: unrecognized Transfer Syntax UID %q; parsing tags as Explicit VR Little Endian", tsUID)
	}

	dec.SetTransferSyntax(ts.ByteOrder, ts.VRMode)

	result := walkDataset(dec, ts)
	for _, e := range result.elements {
		ds.appendElement(e)
	}
	if result.pixelData != nil {
		ds.setPixelData(result.pixelData)
	}
	if result.diagnostic != "" {
		dicomlog.Vprintf(0, "dcmkit: %s", result.diagnostic)
	}

	return ds
}
