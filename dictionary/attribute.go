// Package dictionary is the static, process-lifetime catalog of standard
// DICOM attributes, and the two binary-searchable indices (by canonical tag
// string, by keyword) that the reader consults while walking a dataset.
//
// The full standard dictionary holds on the order of 4000 entries (PS3.6).
// This package treats that catalog as a fixed external data source whose
// schema it models but whose contents it does not fully enumerate: the
// table below carries a representative subset — the group-0002 file-meta
// attributes, the attributes this module's tests exercise, and entries for
// most VRs — rather than a full transcription of part06.xml. No entry
// carries the VR DT, FL, OL, OV, OW, ST, SV, UC, UN, UR, UT, UV or
// US-or-OW. A production
// build would instead generate attributes.go from that XML file; see
// DESIGN.md.
package dictionary

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kowalski/dcmkit/vr"
)

// Attribute is an immutable, process-lifetime dictionary entry.
type Attribute struct {
	// Tag is the canonical "(GGGG,EEEE)" form: uppercase hex, zero-padded,
	// exactly 11 characters.
	Tag string
	// Name is the human-readable label, e.g. "Patient's Name".
	Name string
	// Keyword is the unique, space-free identifier, e.g. "PatientName".
	Keyword string
	// VR is the attribute's Value Representation. Absent (nil) for the
	// handful of legacy attributes the standard never assigned one.
	VR *vr.Code
	// VM is the value-multiplicity expression, e.g. "1", "1-n", "3".
	VM string
	// AttrType is the category string, e.g. "1", "3", "retired".
	AttrType string
}

func vrp(code vr.Code) *vr.Code { return &code }

// attributes is sorted by Tag; entry order also defines the stable indices
// tagIndex and keywordIndex key into.
var attributes = []Attribute{
	{Tag: "(0002,0000)", Name: "File Meta Information Group Length", Keyword: "FileMetaInformationGroupLength", VR: vrp(vr.UL), VM: "1", AttrType: "GENERIC"},
	{Tag: "(0002,0001)", Name: "File Meta Information Version", Keyword: "FileMetaInformationVersion", VR: vrp(vr.OB), VM: "1", AttrType: "3"},
	{Tag: "(0002,0002)", Name: "Media Storage SOP Class UID", Keyword: "MediaStorageSOPClassUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0002,0003)", Name: "Media Storage SOP Instance UID", Keyword: "MediaStorageSOPInstanceUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0002,0010)", Name: "Transfer Syntax UID", Keyword: "TransferSyntaxUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0002,0012)", Name: "Implementation Class UID", Keyword: "ImplementationClassUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0002,0013)", Name: "Implementation Version Name", Keyword: "ImplementationVersionName", VR: vrp(vr.SH), VM: "1", AttrType: "3"},
	{Tag: "(0002,0016)", Name: "Source Application Entity Title", Keyword: "SourceApplicationEntityTitle", VR: vrp(vr.AE), VM: "1", AttrType: "3"},

	{Tag: "(0008,0005)", Name: "Specific Character Set", Keyword: "SpecificCharacterSet", VR: vrp(vr.CS), VM: "1-n", AttrType: "1C"},
	{Tag: "(0008,0016)", Name: "SOP Class UID", Keyword: "SOPClassUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0008,0018)", Name: "SOP Instance UID", Keyword: "SOPInstanceUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0008,0020)", Name: "Study Date", Keyword: "StudyDate", VR: vrp(vr.DA), VM: "1", AttrType: "3"},
	{Tag: "(0008,0030)", Name: "Study Time", Keyword: "StudyTime", VR: vrp(vr.TM), VM: "1", AttrType: "3"},
	{Tag: "(0008,0050)", Name: "Accession Number", Keyword: "AccessionNumber", VR: vrp(vr.SH), VM: "1", AttrType: "2"},
	{Tag: "(0008,0060)", Name: "Modality", Keyword: "Modality", VR: vrp(vr.CS), VM: "1", AttrType: "1"},
	{Tag: "(0008,0070)", Name: "Manufacturer", Keyword: "Manufacturer", VR: vrp(vr.LO), VM: "1", AttrType: "3"},
	{Tag: "(0008,0080)", Name: "Institution Name", Keyword: "InstitutionName", VR: vrp(vr.LO), VM: "1", AttrType: "3"},
	{Tag: "(0008,0090)", Name: "Referring Physician's Name", Keyword: "ReferringPhysicianName", VR: vrp(vr.PN), VM: "1", AttrType: "2"},
	{Tag: "(0008,103E)", Name: "Series Description", Keyword: "SeriesDescription", VR: vrp(vr.LO), VM: "1", AttrType: "3"},

	{Tag: "(0010,0010)", Name: "Patient's Name", Keyword: "PatientName", VR: vrp(vr.PN), VM: "1", AttrType: "2"},
	{Tag: "(0010,0020)", Name: "Patient ID", Keyword: "PatientID", VR: vrp(vr.LO), VM: "1", AttrType: "2"},
	{Tag: "(0010,0030)", Name: "Patient's Birth Date", Keyword: "PatientBirthDate", VR: vrp(vr.DA), VM: "1", AttrType: "2"},
	{Tag: "(0010,0040)", Name: "Patient's Sex", Keyword: "PatientSex", VR: vrp(vr.CS), VM: "1", AttrType: "2"},
	{Tag: "(0010,1010)", Name: "Patient's Age", Keyword: "PatientAge", VR: vrp(vr.AS), VM: "1", AttrType: "3"},
	{Tag: "(0010,1030)", Name: "Patient's Weight", Keyword: "PatientWeight", VR: vrp(vr.DS), VM: "1", AttrType: "3"},
	{Tag: "(0010,2160)", Name: "Ethnic Group", Keyword: "EthnicGroup", VR: vrp(vr.SH), VM: "1", AttrType: "3"},
	{Tag: "(0010,4000)", Name: "Patient Comments", Keyword: "PatientComments", VR: vrp(vr.LT), VM: "1", AttrType: "3"},

	{Tag: "(0018,0050)", Name: "Slice Thickness", Keyword: "SliceThickness", VR: vrp(vr.DS), VM: "1", AttrType: "3"},
	{Tag: "(0018,0060)", Name: "KVP", Keyword: "KVP", VR: vrp(vr.DS), VM: "1", AttrType: "3"},
	{Tag: "(0018,1020)", Name: "Software Versions", Keyword: "SoftwareVersions", VR: vrp(vr.LO), VM: "1-n", AttrType: "3"},
	{Tag: "(0018,1151)", Name: "X-Ray Tube Current", Keyword: "XRayTubeCurrent", VR: vrp(vr.IS), VM: "1", AttrType: "3"},
	{Tag: "(0018,5100)", Name: "Patient Position", Keyword: "PatientPosition", VR: vrp(vr.CS), VM: "1", AttrType: "2C"},

	{Tag: "(0020,000D)", Name: "Study Instance UID", Keyword: "StudyInstanceUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0020,000E)", Name: "Series Instance UID", Keyword: "SeriesInstanceUID", VR: vrp(vr.UI), VM: "1", AttrType: "1"},
	{Tag: "(0020,0011)", Name: "Series Number", Keyword: "SeriesNumber", VR: vrp(vr.IS), VM: "1", AttrType: "2"},
	{Tag: "(0020,0013)", Name: "Instance Number", Keyword: "InstanceNumber", VR: vrp(vr.IS), VM: "1", AttrType: "2"},
	{Tag: "(0020,0032)", Name: "Image Position (Patient)", Keyword: "ImagePositionPatient", VR: vrp(vr.DS), VM: "3", AttrType: "2C"},
	{Tag: "(0020,0037)", Name: "Image Orientation (Patient)", Keyword: "ImageOrientationPatient", VR: vrp(vr.DS), VM: "6", AttrType: "2C"},
	{Tag: "(0020,1041)", Name: "Slice Location", Keyword: "SliceLocation", VR: vrp(vr.DS), VM: "1", AttrType: "3"},

	{Tag: "(0028,0002)", Name: "Samples per Pixel", Keyword: "SamplesPerPixel", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0004)", Name: "Photometric Interpretation", Keyword: "PhotometricInterpretation", VR: vrp(vr.CS), VM: "1", AttrType: "1"},
	{Tag: "(0028,0010)", Name: "Rows", Keyword: "Rows", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0011)", Name: "Columns", Keyword: "Columns", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0030)", Name: "Pixel Spacing", Keyword: "PixelSpacing", VR: vrp(vr.DS), VM: "2", AttrType: "1C"},
	{Tag: "(0028,0100)", Name: "Bits Allocated", Keyword: "BitsAllocated", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0101)", Name: "Bits Stored", Keyword: "BitsStored", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0102)", Name: "High Bit", Keyword: "HighBit", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0103)", Name: "Pixel Representation", Keyword: "PixelRepresentation", VR: vrp(vr.US), VM: "1", AttrType: "1"},
	{Tag: "(0028,0106)", Name: "Smallest Image Pixel Value", Keyword: "SmallestImagePixelValue", VR: vrp(vr.USOrSS), VM: "1", AttrType: "3"},
	{Tag: "(0028,0107)", Name: "Largest Image Pixel Value", Keyword: "LargestImagePixelValue", VR: vrp(vr.USOrSS), VM: "1", AttrType: "3"},
	{Tag: "(0028,1050)", Name: "Window Center", Keyword: "WindowCenter", VR: vrp(vr.DS), VM: "1-n", AttrType: "3"},
	{Tag: "(0028,1051)", Name: "Window Width", Keyword: "WindowWidth", VR: vrp(vr.DS), VM: "1-n", AttrType: "3"},
	{Tag: "(0028,1052)", Name: "Rescale Intercept", Keyword: "RescaleIntercept", VR: vrp(vr.DS), VM: "1", AttrType: "1C"},
	{Tag: "(0028,1053)", Name: "Rescale Slope", Keyword: "RescaleSlope", VR: vrp(vr.DS), VM: "1", AttrType: "1C"},

	{Tag: "(0040,A040)", Name: "Value Type", Keyword: "ValueType", VR: vrp(vr.CS), VM: "1", AttrType: "1C"},
	{Tag: "(0040,A121)", Name: "Date", Keyword: "Date", VR: vrp(vr.DA), VM: "1", AttrType: "1C"},
	{Tag: "(0040,A122)", Name: "Time", Keyword: "Time", VR: vrp(vr.TM), VM: "1", AttrType: "1C"},
	{Tag: "(0040,A130)", Name: "Temporal Range Type", Keyword: "TemporalRangeType", VR: vrp(vr.CS), VM: "1", AttrType: "1C"},
	{Tag: "(0040,A138)", Name: "Referenced Time Offsets", Keyword: "ReferencedTimeOffsets", VR: vrp(vr.FD), VM: "1-n", AttrType: "1C"},
	{Tag: "(0040,A168)", Name: "Concept Code Sequence", Keyword: "ConceptCodeSequence", VR: vrp(vr.SQ), VM: "1", AttrType: "1C"},
	{Tag: "(0040,A300)", Name: "Measured Value Sequence", Keyword: "MeasuredValueSequence", VR: vrp(vr.SQ), VM: "1", AttrType: "1C"},

	{Tag: "(0054,0400)", Name: "Image ID", Keyword: "ImageID", VR: vrp(vr.SH), VM: "1", AttrType: "3"},

	{Tag: "(0062,000F)", Name: "Referenced Segment Number", Keyword: "ReferencedSegmentNumber", VR: vrp(vr.US), VM: "1-n", AttrType: "1C"},

	{Tag: "(0064,0011)", Name: "Source Coordinate System", Keyword: "SourceCoordinateSystem", VR: vrp(vr.CS), VM: "1", AttrType: "1"},
	{Tag: "(0064,0012)", Name: "Deformable Registration Grid Sequence", Keyword: "DeformableRegistrationGridSequence", VR: vrp(vr.SQ), VM: "1", AttrType: "1C"},

	{Tag: "(0066,0016)", Name: "Number Of Vectors", Keyword: "NumberOfVectors", VR: vrp(vr.UL), VM: "1", AttrType: "1C"},
	{Tag: "(0066,0017)", Name: "Vector Dimensionality", Keyword: "VectorDimensionality", VR: vrp(vr.UL), VM: "1", AttrType: "1C"},
	{Tag: "(0066,0018)", Name: "Vector Coordinate Data", Keyword: "VectorCoordinateData", VR: vrp(vr.OF), VM: "1", AttrType: "1C"},
	{Tag: "(0066,0023)", Name: "Surface Count", Keyword: "SurfaceCount", VR: vrp(vr.UL), VM: "1", AttrType: "1C"},

	{Tag: "(0072,005E)", Name: "Selector AT Value", Keyword: "SelectorATValue", VR: vrp(vr.AT), VM: "1-n", AttrType: "1C"},
	{Tag: "(0072,0064)", Name: "Selector SL Value", Keyword: "SelectorSLValue", VR: vrp(vr.SL), VM: "1-n", AttrType: "1C"},
	{Tag: "(0072,0065)", Name: "Selector SS Value", Keyword: "SelectorSSValue", VR: vrp(vr.SS), VM: "1-n", AttrType: "1C"},
	{Tag: "(0072,0066)", Name: "Selector UL Value", Keyword: "SelectorULValue", VR: vrp(vr.UL), VM: "1-n", AttrType: "1C"},
	{Tag: "(0072,0067)", Name: "Selector US Value", Keyword: "SelectorUSValue", VR: vrp(vr.US), VM: "1-n", AttrType: "1C"},

	{Tag: "(3002,000D)", Name: "Beam Limiting Device Position", Keyword: "BeamLimitingDevicePosition", VR: vrp(vr.DS), VM: "2-2n", AttrType: "1C"},

	{Tag: "(7FE0,0008)", Name: "Float Pixel Data", Keyword: "FloatPixelData", VR: vrp(vr.OF), VM: "1", AttrType: "1C"},
	{Tag: "(7FE0,0009)", Name: "Double Float Pixel Data", Keyword: "DoubleFloatPixelData", VR: vrp(vr.OD), VM: "1", AttrType: "1C"},
	{Tag: "(7FE0,0010)", Name: "Pixel Data", Keyword: "PixelData", VR: vrp(vr.OBOrOW), VM: "1", AttrType: "1C"},

	{Tag: "(FFFC,FFFC)", Name: "Data Set Trailing Padding", Keyword: "DataSetTrailingPadding", VR: vrp(vr.OB), VM: "1", AttrType: "3"},
	{Tag: "(FFFE,E000)", Name: "Item", Keyword: "Item", VR: nil, VM: "1", AttrType: "GENERIC"},
	{Tag: "(FFFE,E00D)", Name: "Item Delimitation Item", Keyword: "ItemDelimitationItem", VR: nil, VM: "1", AttrType: "GENERIC"},
	{Tag: "(FFFE,E0DD)", Name: "Sequence Delimitation Item", Keyword: "SequenceDelimitationItem", VR: nil, VM: "1", AttrType: "GENERIC"},
}

type tagIndexEntry struct {
	tag string
	idx int
}

type keywordIndexEntry struct {
	keyword string
	idx     int
}

var (
	tagIndex     []tagIndexEntry
	keywordIndex []keywordIndexEntry
)

func init() {
	sort.Slice(attributes, func(i, j int) bool { return attributes[i].Tag < attributes[j].Tag })

	tagIndex = make([]tagIndexEntry, len(attributes))
	keywordIndex = make([]keywordIndexEntry, len(attributes))
	for i, a := range attributes {
		tagIndex[i] = tagIndexEntry{tag: a.Tag, idx: i}
		keywordIndex[i] = keywordIndexEntry{keyword: a.Keyword, idx: i}
	}
	sort.Slice(tagIndex, func(i, j int) bool { return tagIndex[i].tag < tagIndex[j].tag })
	sort.Slice(keywordIndex, func(i, j int) bool { return keywordIndex[i].keyword < keywordIndex[j].keyword })
}

// NormalizeTag reformats input into the canonical "(GGGG,EEEE)" shape. If
// input already has that shape it is returned unchanged (parens, comma).
// Otherwise, non-hex characters are stripped and the remainder uppercased;
// if exactly 8 hex digits result, they're split into group/element and
// reformatted. Anything else is returned trimmed, as-is.
func NormalizeTag(input string) string {
	s := strings.TrimSpace(input)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && strings.Contains(s, ",") {
		return s
	}

	var hex strings.Builder
	for _, r := range s {
		if isHexDigit(r) {
			hex.WriteRune(toUpperHex(r))
		}
	}
	h := hex.String()
	if len(h) == 8 {
		return "(" + h[:4] + "," + h[4:] + ")"
	}
	return s
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func toUpperHex(r rune) rune {
	if r >= 'a' && r <= 'f' {
		return r - ('a' - 'A')
	}
	return r
}

// AttributeByTag resolves input (either canonical "(GGGG,EEEE)" form or a
// loose form accepted by NormalizeTag) to its dictionary entry via binary
// search over tagIndex, falling back to a linear scan of the catalog
// whenever the binary search misses (defense against an out-of-order,
// corrupted index).
func AttributeByTag(input string) (*Attribute, bool) {
	normalized := NormalizeTag(input)

	i := sort.Search(len(tagIndex), func(i int) bool { return tagIndex[i].tag >= normalized })
	if i < len(tagIndex) && tagIndex[i].tag == normalized {
		return &attributes[tagIndex[i].idx], true
	}

	for j := range attributes {
		if attributes[j].Tag == normalized {
			return &attributes[j], true
		}
	}
	return nil, false
}

// AttributeByKeyword resolves an exact keyword match via binary search over
// keywordIndex, with the same linear-scan fallback as AttributeByTag.
func AttributeByKeyword(input string) (*Attribute, bool) {
	i := sort.Search(len(keywordIndex), func(i int) bool { return keywordIndex[i].keyword >= input })
	if i < len(keywordIndex) && keywordIndex[i].keyword == input {
		return &attributes[keywordIndex[i].idx], true
	}

	for j := range attributes {
		if attributes[j].Keyword == input {
			return &attributes[j], true
		}
	}
	return nil, false
}

// Search glob-matches pattern against every attribute's Keyword and Name,
// returning hits in catalog (tag-sorted) order. Intended for dictionary and
// CLI lookup, distinct from DIMSE C-FIND query-filter matching, which this
// module does not implement.
func Search(pattern string) ([]*Attribute, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var hits []*Attribute
	for i := range attributes {
		if g.Match(attributes[i].Keyword) || g.Match(attributes[i].Name) {
			hits = append(hits, &attributes[i])
		}
	}
	return hits, nil
}

// All returns every attribute in the catalog, in tag order. Exposed mainly
// for tests and for CLI tooling that wants to enumerate the dictionary.
func All() []Attribute {
	out := make([]Attribute, len(attributes))
	copy(out, attributes)
	return out
}
