package formatter

import (
	"bytes"

	"github.com/siyuan-infoblox/rs-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/usetree"
)

// Result is the outcome of processing a single file
type Result struct {
	Path      string
	Original  []byte
	Formatted []byte
	Changed   bool  // Formatted differs from Original
	Err       error // set when the file could not be processed
}

// replaceImports splices the merged groups of every run over the run's span, leaving all other text untouched
func replaceImports(src []byte, runs []parser.Run, classifier *usetree.Classifier) ([]byte, []usetree.Collision) {
	var out bytes.Buffer
	out.Grow(len(src))

	var collisions []usetree.Collision
	var last uint32
	for _, run := range runs {
		groups := usetree.Build(run.Declarations, classifier)
		collisions = append(collisions, usetree.Collisions(groups)...)

		out.Write(src[last:run.Start])
		out.WriteString(usetree.Render(groups))
		last = run.End
	}
	out.Write(src[last:])

	return out.Bytes(), collisions
}
