package dcmkit

import (
	"github.com/kowalski/dcmkit/dictionary"
	"github.com/kowalski/dcmkit/vr"
)

// Tag is a decoded (group, element) reference, used for the AT ValueKind
// and for item/sequence delimiter recognition.
type Tag struct {
	Group, Element uint16
}

// DataElementValue is a decoded element value. Kind discriminates which of
// the fields below is populated; Go has no tagged-union type, so this is
// the idiomatic substitute (one exported field per ValueKind, all but one
// left zero).
type DataElementValue struct {
	Kind vr.ValueKind

	Str    string
	Bytes  []byte
	Int16  int16
	Int32  int32
	Int64  int64
	UInt16 uint16
	UInt32 uint32
	UInt64 uint64
	Float  float32
	Double float64
	Tag    Tag
}

// DataElement pairs a dictionary attribute with its decoded value. Value is
// nil for the valueless pixel-data placeholder the walker appends when
// routing (7FE0,0010) to the dataset's dedicated pixel-data slot.
type DataElement struct {
	Attribute *dictionary.Attribute
	Value     *DataElementValue
}
