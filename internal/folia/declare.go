package folia

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Processor describes the tool that adds annotations to a document
type Processor struct {
	Name    string
	Version string
	Command string
}

// Declare registers p in the document provenance and declares the
// ISO language annotation set with p as annotator.
// It fails when a processor with the same name is already present.
func (d *Document) Declare(p Processor) error {
	metadata := d.metadata()
	provenance := metadata.SelectElement("provenance")
	if provenance == nil {
		provenance = etree.NewElement("provenance")
		metadata.InsertChildAt(d.provenanceIndex(metadata), provenance)
	}
	ids := map[string]struct{}{}
	var exists bool
	walk(provenance, func(el *etree.Element) {
		if el.Tag != "processor" {
			return
		}
		ids[el.SelectAttrValue("xml:id", "")] = struct{}{}
		if el.SelectAttrValue("name", "") == p.Name {
			exists = true
		}
	})
	if exists {
		return errorutil.NewWithTag("folia", "add provenance failed, label: '%v' already exists", p.Name)
	}
	id := p.Name
	for i := 1; ; i++ {
		id = fmt.Sprintf("%v.%d", p.Name, i)
		if _, ok := ids[id]; !ok {
			break
		}
	}
	proc := provenance.CreateElement("processor")
	proc.CreateAttr("xml:id", id)
	proc.CreateAttr("name", p.Name)
	proc.CreateAttr("version", p.Version)
	proc.CreateAttr("command", p.Command)
	proc.CreateAttr("begindatetime", time.Now().Format("2006-01-02T15:04:05"))
	d.processor = id

	annotations := metadata.SelectElement("annotations")
	if annotations == nil {
		annotations = etree.NewElement("annotations")
		metadata.InsertChildAt(0, annotations)
	}
	for _, decl := range annotations.SelectElements("lang-annotation") {
		if decl.SelectAttrValue("set", "") == ISOSet {
			return nil
		}
	}
	decl := annotations.CreateElement("lang-annotation")
	decl.CreateAttr("set", ISOSet)
	annotator := decl.CreateElement("annotator")
	annotator.CreateAttr("processor", id)
	return nil
}

// provenanceIndex keeps provenance right after the annotation declarations
func (d *Document) provenanceIndex(metadata *etree.Element) int {
	if annotations := metadata.SelectElement("annotations"); annotations != nil {
		return annotations.Index() + 1
	}
	return 0
}
