// Package vr models DICOM Value Representations and the fixed mapping from
// each VR to the Go-level kind of value it decodes to.
package vr

// Code is one of the 37 VR codes this package defines: 34 standard
// two-letter DICOM Value Representation codes, plus the three ambiguous
// codes the standard defines as a choice between two VRs depending on
// context (OB-or-OW, US-or-OW, US-or-SS); this
// reader treats all three as their string-decoded fallback (see
// SuggestedKind), matching spec.md's textual-VR bucket.
type Code string

// The 34 standard two-letter VR codes (PS3.5 6.2), plus the 3 ambiguous
// forms a dictionary entry may carry: 37 codes in all.
const (
	AE Code = "AE"
	AS Code = "AS"
	AT Code = "AT"
	CS Code = "CS"
	DA Code = "DA"
	DS Code = "DS"
	DT Code = "DT"
	FD Code = "FD"
	FL Code = "FL"
	IS Code = "IS"
	LO Code = "LO"
	LT Code = "LT"
	OB Code = "OB"
	OD Code = "OD"
	OF Code = "OF"
	OL Code = "OL"
	OV Code = "OV"
	OW Code = "OW"
	PN Code = "PN"
	SH Code = "SH"
	SL Code = "SL"
	SQ Code = "SQ"
	SS Code = "SS"
	ST Code = "ST"
	SV Code = "SV"
	TM Code = "TM"
	UC Code = "UC"
	UI Code = "UI"
	UL Code = "UL"
	UN Code = "UN"
	UR Code = "UR"
	US Code = "US"
	UT Code = "UT"
	UV Code = "UV"

	// Ambiguous VRs: the dictionary names a choice of two concrete VRs: the
	// actual one in force depends on another element's value (e.g.
	// PixelRepresentation). This reader resolves all three to String, per
	// spec.md §4.2.
	OBOrOW Code = "OB or OW"
	USOrOW Code = "US or OW"
	USOrSS Code = "US or SS"
)

// ValueKind is the Go-level shape a decoded element value takes.
type ValueKind int

const (
	Sequence ValueKind = iota
	String
	Data
	Int16
	Int32
	Int64
	UInt16
	UInt32
	UInt64
	Float
	Double
	Tag
)

func (k ValueKind) String() string {
	switch k {
	case Sequence:
		return "Sequence"
	case String:
		return "String"
	case Data:
		return "Data"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case UInt16:
		return "UInt16"
	case UInt32:
		return "UInt32"
	case UInt64:
		return "UInt64"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Tag:
		return "Tag"
	default:
		return "Unknown"
	}
}

// suggestedKind is the fixed VR → ValueKind table from spec.md §4.2. It is
// total over all 37 codes: the 34 two-letter VRs plus the 3 ambiguous forms.
var suggestedKind = map[Code]ValueKind{
	AE: String, AS: String, CS: String, DA: String, DS: String, DT: String,
	IS: String, LO: String, LT: String, PN: String, SH: String, ST: String,
	TM: String, UC: String, UI: String, UR: String, UT: String,
	OBOrOW: String, USOrOW: String, USOrSS: String,

	AT: Tag,
	FD: Double,
	FL: Float,

	OB: Data, OD: Data, OF: Data, OL: Data, OV: Data, OW: Data, UN: Data,

	SL: Int32,
	SQ: Sequence,
	SS: Int16,
	SV: Int64,
	UL: UInt32,
	US: UInt16,
	UV: UInt64,
}

// SuggestedKind returns the ValueKind the decoder should attempt for code.
// The decoder falls back to Data whenever the declared value length doesn't
// match the suggested scalar width (spec.md §4.2, §4.6).
func SuggestedKind(code Code) (ValueKind, bool) {
	k, ok := suggestedKind[code]
	return k, ok
}

// longForm is the set of VRs whose explicit-VR header reserves 2 bytes and
// carries a 32-bit length, rather than a 16-bit length (PS3.5 7.1.2).
//
// spec.md §4.4 lists only {OB, OW, OF, SQ, UT, UN}. The teacher's actual
// readExplicit switch is wider — it also treats NA, OD, OL, UC, and UR as
// long-form — which matches PS3.5 Table 7.1-1 more closely than spec.md's
// own list does (original_source's read_elem_header uses the same narrow
// set as spec.md, so it isn't grounding for the widening). This module
// follows the teacher's wider set except NA, which is not a VR code this
// package defines, and additionally includes OV: PS3.5
// added OV as a long-form VR after the teacher was written, and it is
// otherwise indistinguishable from OD/OL here. See DESIGN.md.
var longForm = map[Code]bool{
	OB: true, OD: true, OW: true, OF: true, OL: true, OV: true,
	SQ: true, UC: true, UN: true, UR: true, UT: true,
}

// IsLongForm reports whether code uses the 4-byte explicit length form.
func IsLongForm(code Code) bool {
	return longForm[code]
}
