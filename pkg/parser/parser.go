package parser

import (
	"context"
	"errors"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/siyuan-infoblox/rs-imports-group/pkg/usetree"
)

// ErrSyntax is returned for source files that tree-sitter cannot parse without errors
var ErrSyntax = errors.New("source contains syntax errors")

var errUnsupported = errors.New("unsupported use declaration")

// Run is a contiguous sequence of top-level use declarations
type Run struct {
	Start        uint32 // byte offset of the first use item
	End          uint32 // byte offset just past the last use item
	Items        int    // number of use items in the run
	Declarations []usetree.Declaration
}

// Parser extracts runs of use declarations from Rust source files.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// New creates a Parser for the Rust grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return &Parser{parser: parser}
}

// Close releases the underlying tree-sitter parser
func (p *Parser) Close() {
	p.parser.Close()
}

// Parse returns the runs of top-level use declarations in src, in source order.
// Use items with attributes, doc comments, inner comments or forms that cannot be merged end the current run and are left out.
func (p *Parser) Parse(ctx context.Context, src []byte) ([]Run, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrSyntax
	}

	var runs []Run
	var current *Run
	flush := func() {
		if current != nil {
			runs = append(runs, *current)
			current = nil
		}
	}

	var prev *sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		item := root.NamedChild(i)
		decls, ok := p.useItem(item, prev, src)
		prev = item
		if !ok {
			flush()
			continue
		}
		if current == nil {
			current = &Run{Start: item.StartByte()}
		}
		current.End = item.EndByte()
		current.Items++
		current.Declarations = append(current.Declarations, decls...)
	}
	flush()

	return runs, nil
}

// useItem flattens a top-level item into declarations, reporting false for items that must be left untouched
func (p *Parser) useItem(item, prev *sitter.Node, src []byte) ([]usetree.Declaration, bool) {
	if item.Type() != "use_declaration" {
		return nil, false
	}
	if prev != nil && attachesToNext(prev, src) {
		return nil, false
	}
	if containsComment(item) {
		return nil, false
	}
	decls, err := flatten(item, src)
	if err != nil {
		return nil, false
	}
	return decls, true
}

// attachesToNext reports whether a node is an outer attribute or outer doc comment of the following item
func attachesToNext(n *sitter.Node, src []byte) bool {
	switch n.Type() {
	case "attribute_item":
		return true
	case "line_comment":
		text := n.Content(src)
		return strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")
	case "block_comment":
		text := n.Content(src)
		return strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/"
	default:
		return false
	}
}

func containsComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment":
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if containsComment(n.Child(i)) {
			return true
		}
	}
	return false
}

// flatten expands one use item into one declaration per imported leaf
func flatten(item *sitter.Node, src []byte) ([]usetree.Declaration, error) {
	argument := item.ChildByFieldName("argument")
	if argument == nil {
		return nil, errUnsupported
	}

	w := &walker{
		src:          src,
		leadingColon: strings.HasPrefix(strings.TrimSpace(argument.Content(src)), "::"),
	}
	visibility, err := w.parseVisibility(item)
	if err != nil {
		return nil, err
	}
	w.visibility = visibility

	if err := w.clause(argument, nil); err != nil {
		return nil, err
	}
	return w.decls, nil
}

type walker struct {
	src          []byte
	visibility   usetree.Visibility
	leadingColon bool
	depth        int // nesting level of use lists
	decls        []usetree.Declaration
}

func (w *walker) text(n *sitter.Node) string {
	return n.Content(w.src)
}

func (w *walker) add(prefix []string, leaf usetree.Leaf) {
	w.decls = append(w.decls, usetree.Declaration{
		Visibility:   w.visibility,
		LeadingColon: w.leadingColon,
		Path:         append([]string(nil), prefix...),
		Leaf:         leaf,
	})
}

// parseVisibility reads the visibility modifier of a use item
func (w *walker) parseVisibility(item *sitter.Node) (usetree.Visibility, error) {
	for i := 0; i < int(item.NamedChildCount()); i++ {
		modifier := item.NamedChild(i)
		if modifier.Type() != "visibility_modifier" {
			continue
		}
		// legacy `crate use` is pub(crate)
		if !strings.HasPrefix(w.text(modifier), "pub") {
			return usetree.Visibility{Kind: usetree.Restricted, Scope: "crate"}, nil
		}
		if modifier.NamedChildCount() == 0 {
			return usetree.Visibility{Kind: usetree.Public}, nil
		}
		scope := modifier.NamedChild(0)
		switch scope.Type() {
		case "self", "super", "crate":
			return usetree.Visibility{Kind: usetree.Restricted, Scope: w.text(scope)}, nil
		default:
			path := strings.Join(strings.Fields(w.text(scope)), "")
			return usetree.Visibility{Kind: usetree.Restricted, Scope: "in " + path}, nil
		}
	}
	return usetree.Visibility{}, nil
}

func (w *walker) clause(n *sitter.Node, prefix []string) error {
	switch n.Type() {
	case "identifier", "self", "super", "crate":
		name := w.text(n)
		if name == "self" && len(prefix) > 0 {
			w.add(prefix, usetree.Leaf{Kind: usetree.Self})
			return nil
		}
		w.add(prefix, usetree.Leaf{Kind: usetree.Name, Name: name})
		return nil

	case "scoped_identifier":
		segments, err := w.path(n, prefix)
		if err != nil {
			return err
		}
		last := len(segments) - 1
		w.add(join(prefix, segments[:last]), usetree.Leaf{Kind: usetree.Name, Name: segments[last]})
		return nil

	case "use_as_clause":
		pathNode := n.ChildByFieldName("path")
		alias := n.ChildByFieldName("alias")
		if pathNode == nil || alias == nil {
			return errUnsupported
		}
		segments, err := w.path(pathNode, prefix)
		if err != nil {
			return err
		}
		last := len(segments) - 1
		w.add(join(prefix, segments[:last]), usetree.Leaf{
			Kind:  usetree.Rename,
			Name:  segments[last],
			Alias: w.text(alias),
		})
		return nil

	case "use_list":
		w.depth++
		defer func() { w.depth-- }()
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if err := w.clause(n.NamedChild(i), prefix); err != nil {
				return err
			}
		}
		return nil

	case "scoped_use_list":
		list := n.ChildByFieldName("list")
		if list == nil {
			return errUnsupported
		}
		next := prefix
		if pathNode := n.ChildByFieldName("path"); pathNode != nil {
			segments, err := w.path(pathNode, prefix)
			if err != nil {
				return err
			}
			next = join(prefix, segments)
		} else if !w.atStatementRoot(prefix) {
			return errUnsupported
		}
		return w.clause(list, next)

	case "use_wildcard":
		next := prefix
		if n.NamedChildCount() > 0 {
			segments, err := w.path(n.NamedChild(0), prefix)
			if err != nil {
				return err
			}
			next = join(prefix, segments)
		}
		if len(next) == 0 {
			return errUnsupported
		}
		w.add(next, usetree.Leaf{Kind: usetree.Glob})
		return nil

	default:
		return errUnsupported
	}
}

// path returns the segments of a simple path node
func (w *walker) path(n *sitter.Node, prefix []string) ([]string, error) {
	switch n.Type() {
	case "identifier", "self", "super", "crate":
		return []string{w.text(n)}, nil

	case "scoped_identifier":
		name := n.ChildByFieldName("name")
		if name == nil {
			return nil, errUnsupported
		}
		var segments []string
		if parent := n.ChildByFieldName("path"); parent != nil {
			var err error
			if segments, err = w.path(parent, prefix); err != nil {
				return nil, err
			}
		} else if !w.atStatementRoot(prefix) {
			return nil, errUnsupported
		}
		return append(segments, w.text(name)), nil

	default:
		return nil, errUnsupported
	}
}

// atStatementRoot reports whether a leading :: is allowed at this point of the statement
func (w *walker) atStatementRoot(prefix []string) bool {
	return w.leadingColon && w.depth == 0 && len(prefix) == 0
}

func join(prefix, segments []string) []string {
	path := make([]string, 0, len(prefix)+len(segments))
	path = append(path, prefix...)
	return append(path, segments...)
}
