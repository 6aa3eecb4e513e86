package dcmkit

import "github.com/kowalski/dcmkit/dictionary"

// Dataset is the parsed form of a DICOM Part 10 file: the file-meta group,
// the main dataset's elements in stream order, and the raw pixel-data
// bytes, if present.
//
// It is built append-only by Read and its helpers; once returned, a
// Dataset has no mutation API (spec.md Non-goal: "dataset mutation after
// parse").
type Dataset struct {
	fileMeta  []DataElement
	elements  []DataElement
	pixelData []byte
}

// FileMeta returns the group-0002 elements collected while parsing the
// File Meta Information, in stream order.
func (d *Dataset) FileMeta() []DataElement { return d.fileMeta }

// Elements returns the main dataset's elements, in stream order.
func (d *Dataset) Elements() []DataElement { return d.elements }

// PixelData returns the raw bytes of (7FE0,0010), or nil if the element was
// absent or the undefined-length sentinel halted parsing before it was
// reached.
func (d *Dataset) PixelData() []byte { return d.pixelData }

// Get resolves tagOrKeyword per spec.md §4.7: first as a tag (normalized
// and looked up in the dictionary), then — only if that lookup misses — as
// a keyword. Within whichever interpretation hits, file-meta elements are
// searched before main-dataset elements. This order is load-bearing: a
// numeric-looking keyword must never collide with a tag lookup.
func (d *Dataset) Get(tagOrKeyword string) (*DataElement, bool) {
	if attr, ok := dictionary.AttributeByTag(tagOrKeyword); ok {
		return d.findByTag(attr.Tag)
	}
	if attr, ok := dictionary.AttributeByKeyword(tagOrKeyword); ok {
		return d.findByTag(attr.Tag)
	}
	return nil, false
}

func (d *Dataset) findByTag(canonicalTag string) (*DataElement, bool) {
	for i := range d.fileMeta {
		if d.fileMeta[i].Attribute != nil && d.fileMeta[i].Attribute.Tag == canonicalTag {
			return &d.fileMeta[i], true
		}
	}
	for i := range d.elements {
		if d.elements[i].Attribute != nil && d.elements[i].Attribute.Tag == canonicalTag {
			return &d.elements[i], true
		}
	}
	return nil, false
}

func (d *Dataset) appendFileMeta(e DataElement) { d.fileMeta = append(d.fileMeta, e) }
func (d *Dataset) appendElement(e DataElement)  { d.elements = append(d.elements, e) }
func (d *Dataset) setPixelData(b []byte)        { d.pixelData = b }
