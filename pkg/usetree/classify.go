package usetree

import (
	"github.com/siyuan-infoblox/rs-imports-group/pkg/std"
)

// CategoryKind represents the origin of an imported path
type CategoryKind int

const (
	StdCategory      CategoryKind = iota // std, core, alloc and configured extras
	ExternalCategory                     // any other crate, one category per crate name
	CrateCategory                        // self, super and crate relative paths
)

func (k CategoryKind) String() string {
	switch k {
	case StdCategory:
		return "std"
	case ExternalCategory:
		return "external"
	case CrateCategory:
		return "crate"
	default:
		return "unknown"
	}
}

// Category is the grouping bucket of a declaration
type Category struct {
	Kind  CategoryKind
	Crate string // root crate name, only set for ExternalCategory
}

func (c Category) String() string {
	if c.Kind == ExternalCategory {
		return c.Kind.String() + ":" + c.Crate
	}
	return c.Kind.String()
}

var intraCrateRoots = map[string]bool{
	"self":  true,
	"super": true,
	"crate": true,
}

// Classifier maps the root segment of a declaration to its category
type Classifier struct {
	extraStd map[string]bool
}

// NewClassifier creates a Classifier that treats extraStd crates as members of the standard library family
func NewClassifier(extraStd ...string) *Classifier {
	c := &Classifier{extraStd: make(map[string]bool, len(extraStd))}
	for _, name := range extraStd {
		if name != "" {
			c.extraStd[name] = true
		}
	}
	return c
}

// Classify determines the category of a declaration from its root segment
func (c *Classifier) Classify(d Declaration) Category {
	return c.ClassifyRoot(d.Root())
}

// ClassifyRoot determines the category of a root path segment
func (c *Classifier) ClassifyRoot(root string) Category {
	if std.IsStandardCrate(root) || (c != nil && c.extraStd[root]) {
		return Category{Kind: StdCategory}
	}
	if intraCrateRoots[root] {
		return Category{Kind: CrateCategory}
	}
	return Category{Kind: ExternalCategory, Crate: root}
}
