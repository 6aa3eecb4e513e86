// Command dcmdump reads a single DICOM Part 10 file and prints its
// elements. It is the external collaborator spec.md §1 names: a filesystem
// open-and-read-to-buffer helper plus pretty-printing, with no parsing
// logic of its own — everything it calls lives in package dcmkit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kowalski/dcmkit"
	"github.com/kowalski/dcmkit/dicomlog"
	"github.com/kowalski/dcmkit/dictionary"
	"github.com/kowalski/dcmkit/vr"
)

func main() {
	tag := flag.String("tag", "", "print only the element matching this tag, e.g. (0010,0010)")
	keyword := flag.String("keyword", "", "print only the element matching this keyword, e.g. PatientName")
	find := flag.String("find", "", "print every element whose attribute keyword or name matches this glob pattern")
	logLevel := flag.Int("loglevel", 0, "diagnostic verbosity (0=warnings only, higher is more verbose)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dcmdump [-tag TAG] [-keyword KEYWORD] [-find PATTERN] [-loglevel N] <file>")
		os.Exit(2)
	}

	dicomlog.SetLevel(*logLevel)

	b, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "dcmdump:", err)
		os.Exit(1)
	}

	ds := dcmkit.Read(b)

	switch {
	case *tag != "":
		printOne(ds, *tag)
	case *keyword != "":
		printOne(ds, *keyword)
	case *find != "":
		printFind(ds, *find)
	default:
		printAll(ds)
	}
}

func printOne(ds *dcmkit.Dataset, tagOrKeyword string) {
	e, ok := ds.Get(tagOrKeyword)
	if !ok {
		fmt.Fprintf(os.Stderr, "dcmdump: %s not found\n", tagOrKeyword)
		os.Exit(1)
	}
	fmt.Println(formatElement(*e))
}

func printFind(ds *dcmkit.Dataset, pattern string) {
	hits, err := dictionary.Search(pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dcmdump: bad pattern:", err)
		os.Exit(2)
	}
	for _, attr := range hits {
		if e, ok := ds.Get(attr.Tag); ok {
			fmt.Println(formatElement(*e))
		}
	}
}

func printAll(ds *dcmkit.Dataset) {
	fmt.Println("# File Meta Information")
	for _, e := range ds.FileMeta() {
		fmt.Println(formatElement(e))
	}
	fmt.Println("# Dataset")
	for _, e := range ds.Elements() {
		fmt.Println(formatElement(e))
	}
}

// formatElement renders one line per element: tag, VR, keyword, value —
// adapted from the teacher's Element.String() one-line format.
func formatElement(e dcmkit.DataElement) string {
	if e.Attribute == nil {
		return "<unknown attribute>"
	}
	vrStr := "--"
	if e.Attribute.VR != nil {
		vrStr = string(*e.Attribute.VR)
	}
	if e.Value == nil {
		return fmt.Sprintf("%s %s %-28s (binary, see PixelData())", e.Attribute.Tag, vrStr, e.Attribute.Keyword)
	}
	return fmt.Sprintf("%s %s %-28s %s", e.Attribute.Tag, vrStr, e.Attribute.Keyword, formatValue(*e.Value))
}

func formatValue(v dcmkit.DataElementValue) string {
	switch v.Kind {
	case vr.String:
		return v.Str
	case vr.Int16:
		return fmt.Sprintf("%d", v.Int16)
	case vr.Int32:
		return fmt.Sprintf("%d", v.Int32)
	case vr.Int64:
		return fmt.Sprintf("%d", v.Int64)
	case vr.UInt16:
		return fmt.Sprintf("%d", v.UInt16)
	case vr.UInt32:
		return fmt.Sprintf("%d", v.UInt32)
	case vr.UInt64:
		return fmt.Sprintf("%d", v.UInt64)
	case vr.Float:
		return fmt.Sprintf("%g", v.Float)
	case vr.Double:
		return fmt.Sprintf("%g", v.Double)
	case vr.Tag:
		return fmt.Sprintf("(%04X,%04X)", v.Tag.Group, v.Tag.Element)
	default:
		return fmt.Sprintf("<%d bytes>", len(v.Bytes))
	}
}
