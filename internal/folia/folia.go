// Package folia annotates FoLiA XML documents with language labels.
package folia

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/langid"
	errorutil "github.com/projectdiscovery/utils/errors"
)

const (
	// ISOSet is the set definition of ISO 639-3 language codes
	ISOSet = "http://raw.github.com/proycon/folia/master/setdefinitions/iso639_3.foliaset"
	// DefaultClass is the text class read when none is given
	DefaultClass = "current"
)

// StructureTags are the structural FoLiA elements that may carry text
var StructureTags = []string{
	"text", "speech", "div", "p", "s", "w", "head", "list", "item", "table",
	"tablehead", "row", "cell", "figure", "caption", "quote", "note", "event",
	"utt", "part", "entry", "term", "def", "ex", "label", "br", "whitespace",
	"gap", "hiddenw",
}

var structureSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(StructureTags))
	for _, tag := range StructureTags {
		m[tag] = struct{}{}
	}
	return m
}()

// ValidateTags returns an error for the first tag that is not a known FoLiA element
func ValidateTags(tags []string) error {
	for _, tag := range tags {
		if _, ok := structureSet[tag]; !ok {
			return errorutil.NewWithTag("folia", "the string '%v' doesn't represent a known FoLiA tag", tag)
		}
	}
	return nil
}

// Options of document unit selection
type Options struct {
	// Tags selects all elements with these names, when empty every
	// structural element with a text child is selected
	Tags []string
	// Class of the text content to read (DefaultClass if empty)
	Class string
}

// Document is a parsed FoLiA document
type Document struct {
	Name      string
	doc       *etree.Document
	options   *Options
	processor string
}

// Open parses the FoLiA document at path
func Open(path string, opts *Options) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errorutil.NewWithTag("folia", "no document: %v", err)
	}
	return newDocument(path, doc, opts)
}

// Parse reads a FoLiA document from r
func Parse(r io.Reader, name string, opts *Options) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errorutil.NewWithTag("folia", "no document: %v", err)
	}
	return newDocument(name, doc, opts)
}

func newDocument(name string, doc *etree.Document, opts *Options) (*Document, error) {
	root := doc.Root()
	if root == nil || root.Tag != "FoLiA" {
		return nil, errorutil.NewWithTag("folia", "no document: %v is not a FoLiA document", name)
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.Class == "" {
		opts.Class = DefaultClass
	}
	return &Document{Name: name, doc: doc, options: opts}, nil
}

// Units returns the text units of the document in document order
func (d *Document) Units() []langid.Unit {
	var units []langid.Unit
	if len(d.options.Tags) == 0 {
		seen := map[*etree.Element]struct{}{}
		walk(d.doc.Root(), func(el *etree.Element) {
			if el.Tag != "t" {
				return
			}
			parent := el.Parent()
			if parent == nil {
				return
			}
			if _, ok := structureSet[parent.Tag]; !ok {
				return
			}
			if _, ok := seen[parent]; ok {
				return
			}
			seen[parent] = struct{}{}
			units = append(units, &unit{el: parent, doc: d})
		})
		return units
	}
	for _, tag := range d.options.Tags {
		count := 0
		walk(d.doc.Root(), func(el *etree.Element) {
			if el.Tag == tag {
				units = append(units, &unit{el: el, doc: d})
				count++
			}
		})
		gologger.Info().Msgf("document '%v' has %v %v nodes", d.Name, count, tag)
	}
	return units
}

// SetLanguage records code as the language of the document metadata
func (d *Document) SetLanguage(code string) {
	metadata := d.metadata()
	for _, meta := range metadata.SelectElements("meta") {
		if meta.SelectAttrValue("id", "") == "language" {
			meta.SetText(code)
			return
		}
	}
	meta := metadata.CreateElement("meta")
	meta.CreateAttr("id", "language")
	meta.SetText(code)
}

// Language returns the document language from the metadata
func (d *Document) Language() string {
	metadata := d.doc.Root().SelectElement("metadata")
	if metadata == nil {
		return ""
	}
	for _, meta := range metadata.SelectElements("meta") {
		if meta.SelectAttrValue("id", "") == "language" {
			return meta.Text()
		}
	}
	return ""
}

// WriteTo serializes the document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// String returns the serialized document
func (d *Document) String() string {
	s, err := d.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func (d *Document) metadata() *etree.Element {
	root := d.doc.Root()
	if metadata := root.SelectElement("metadata"); metadata != nil {
		return metadata
	}
	metadata := etree.NewElement("metadata")
	metadata.CreateAttr("type", "native")
	root.InsertChildAt(0, metadata)
	return metadata
}

// unit is a structural element whose text is scored
type unit struct {
	el  *etree.Element
	doc *Document
}

func (u *unit) ID() string {
	return u.el.SelectAttrValue("xml:id", "NO ID")
}

func (u *unit) Text() (string, bool) {
	for _, t := range u.el.SelectElements("t") {
		if t.SelectAttrValue("class", DefaultClass) == u.doc.options.Class {
			return innerText(t), true
		}
	}
	return "", false
}

// Annotate replaces the language of the unit with d when primary,
// otherwise d is added wrapped in an alternative
func (u *unit) Annotate(d langid.Decision) error {
	if d.Code == "" {
		return fmt.Errorf("empty language code")
	}
	lang := etree.NewElement("lang")
	lang.CreateAttr("class", d.Code)
	lang.CreateAttr("set", ISOSet)
	lang.CreateAttr("confidence", fmt.Sprintf("%f", d.Confidence))
	if u.doc.processor != "" {
		lang.CreateAttr("processor", u.doc.processor)
	}
	if d.Variant != "" {
		feat := lang.CreateElement("feat")
		feat.CreateAttr("subset", "variant")
		feat.CreateAttr("class", d.Variant)
	}
	if !d.Primary {
		alt := u.el.CreateElement("alt")
		alt.AddChild(lang)
		return nil
	}
	for _, old := range u.el.SelectElements("lang") {
		u.el.RemoveChild(old)
	}
	u.el.AddChild(lang)
	return nil
}

// walk visits el and all its descendants in document order
func walk(el *etree.Element, fn func(*etree.Element)) {
	if el == nil {
		return
	}
	fn(el)
	for _, child := range el.ChildElements() {
		walk(child, fn)
	}
}

func innerText(el *etree.Element) string {
	var sb strings.Builder
	var collect func(*etree.Element)
	collect = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch v := tok.(type) {
			case *etree.CharData:
				sb.WriteString(v.Data)
			case *etree.Element:
				collect(v)
			}
		}
	}
	collect(el)
	return sb.String()
}
