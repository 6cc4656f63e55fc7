package folia

import (
	"path/filepath"
	"strings"
)

// OutputPath returns the path the annotated copy of input is written to:
// the input file name with `.lang` inserted before `.folia.xml` (or `.xml`),
// inside outDir when set or the working directory otherwise
func OutputPath(outDir, input string) string {
	name := filepath.Base(input)
	pos := strings.Index(name, ".folia.xml")
	if pos < 0 {
		pos = strings.LastIndex(name, ".xml")
	}
	if pos < 0 {
		name += ".lang"
	} else {
		name = name[:pos] + ".lang" + name[pos:]
	}
	if outDir == "" {
		return name
	}
	return filepath.Join(outDir, name)
}
