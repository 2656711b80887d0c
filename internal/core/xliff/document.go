// Package xliff reads XLIFF 1.2 documents into segment records and rewrites
// their targets in place, leaving every other node as it was read
package xliff

import (
	"os"
	"path/filepath"
	"strings"

	perr "locbridge/internal/platform/errors"

	"github.com/beevik/etree"
)

// Namespace is the XLIFF 1.2 namespace URI
const Namespace = "urn:oasis:names:tc:xliff:document:1.2"

// UnknownLanguage stands in for a missing or unreadable target-language
const UnknownLanguage = "unknown"

// StateTranslated is written on every target set by reconstruction or the editor
const StateTranslated = "translated"

// Document is a parsed XLIFF file
type Document struct {
	doc  *etree.Document
	Path string
}

// Open parses the file at path
func Open(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read %s", filepath.Base(path))
	}
	d, err := Parse(b)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeParse, "parse %s", filepath.Base(path))
	}
	d.Path = path
	return d, nil
}

// Parse parses an in-memory document
func Parse(b []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeParse, "malformed XML")
	}
	if doc.Root() == nil {
		return nil, perr.New(perr.ErrorCodeParse, "document has no root element")
	}
	return &Document{doc: doc}, nil
}

// LookupLanguage returns the target language of the file at path.
// When the file cannot be read or parsed it returns UnknownLanguage together with the error
func LookupLanguage(path string) (string, error) {
	d, err := Open(path)
	if err != nil {
		return UnknownLanguage, err
	}
	return d.TargetLanguage(), nil
}

// isXLIFF reports whether el is tag in the XLIFF 1.2 namespace
func isXLIFF(el *etree.Element, tag string) bool {
	return el.Tag == tag && el.NamespaceURI() == Namespace
}

// walk visits el and its descendants in document order
func walk(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, c := range el.ChildElements() {
		walk(c, visit)
	}
}

func (d *Document) find(tag string) []*etree.Element {
	var out []*etree.Element
	walk(d.doc.Root(), func(el *etree.Element) {
		if isXLIFF(el, tag) {
			out = append(out, el)
		}
	})
	return out
}

func (d *Document) file() *etree.Element {
	if files := d.find("file"); len(files) > 0 {
		return files[0]
	}
	return nil
}

// TargetLanguage returns the first <file> element's target-language, or UnknownLanguage
func (d *Document) TargetLanguage() string {
	f := d.file()
	if f == nil {
		return UnknownLanguage
	}
	if lang := strings.TrimSpace(f.SelectAttrValue("target-language", "")); lang != "" {
		return lang
	}
	return UnknownLanguage
}

// FileID returns the first <file> element's id attribute
func (d *Document) FileID() string {
	if f := d.file(); f != nil {
		return f.SelectAttrValue("id", "")
	}
	return ""
}

// SetFileID stamps id on the first <file> element; false when there is none
func (d *Document) SetFileID(id string) bool {
	f := d.file()
	if f == nil {
		return false
	}
	f.CreateAttr("id", id)
	return true
}

// Units returns every trans-unit at any depth, in document order
func (d *Document) Units() []*Unit {
	els := d.find("trans-unit")
	out := make([]*Unit, len(els))
	for i, el := range els {
		out[i] = &Unit{el: el}
	}
	return out
}

// Unit returns the first trans-unit with the given id, or nil
func (d *Document) Unit(id string) *Unit {
	for _, u := range d.Units() {
		if u.ID() == id {
			return u
		}
	}
	return nil
}

// Bytes serializes the document, adding an XML declaration when the input had none
func (d *Document) Bytes() ([]byte, error) {
	if !hasDeclaration(d.doc) {
		d.doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
	}
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "serialize xliff")
	}
	return b, nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}

// WriteBytes writes b to path, creating parent directories
func WriteBytes(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", path)
	}
	return nil
}

// WriteFile serializes the document to path
func (d *Document) WriteFile(path string) error {
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	return WriteBytes(path, b)
}
