package usetree

import (
	"strings"
)

// VisibilityKind is the visibility class of a use declaration
type VisibilityKind int

const (
	Private VisibilityKind = iota
	Public
	Restricted // pub(crate), pub(super), pub(self), pub(in path)
)

// Visibility represents the visibility modifier of a use declaration
type Visibility struct {
	Kind  VisibilityKind
	Scope string // restriction scope: "crate", "super", "self" or "in a::b"
}

// Prefix returns the visibility as it is written in front of the use keyword, including the trailing space
func (v Visibility) Prefix() string {
	switch v.Kind {
	case Public:
		return "pub "
	case Restricted:
		return "pub(" + v.Scope + ") "
	default:
		return ""
	}
}

// LeafKind represents the different terminal forms of a use path
type LeafKind int

const (
	Name   LeafKind = iota // use a::b;
	Rename                 // use a::b as c;
	Glob                   // use a::*;
	Self                   // use a::b::{self};
)

// Leaf is the terminal item of a use path
type Leaf struct {
	Kind  LeafKind
	Name  string // imported name for Name and Rename, "self" for a renamed self import
	Alias string // local name for Rename
}

func (l Leaf) String() string {
	switch l.Kind {
	case Rename:
		return l.Name + " as " + l.Alias
	case Glob:
		return "*"
	case Self:
		return "self"
	default:
		return l.Name
	}
}

// Declaration represents a single flattened use declaration
type Declaration struct {
	Visibility   Visibility
	LeadingColon bool     // path starts with ::
	Path         []string // segments leading to the leaf
	Leaf         Leaf
}

// Root returns the first segment of the declaration, which decides its category
func (d Declaration) Root() string {
	if len(d.Path) > 0 {
		return d.Path[0]
	}
	return d.Leaf.Name
}

// Canonical returns the declaration with a plain name leaf rewritten as a self import of the full path.
// Both forms import the same item and share one node in a merge tree.
func (d Declaration) Canonical() Declaration {
	if d.Leaf.Kind != Name {
		return d
	}
	path := make([]string, 0, len(d.Path)+1)
	path = append(path, d.Path...)
	path = append(path, d.Leaf.Name)
	d.Path = path
	d.Leaf = Leaf{Kind: Self}
	return d
}

// LocalName returns the name the declaration binds in the importing scope, empty for globs
func (d Declaration) LocalName() string {
	switch d.Leaf.Kind {
	case Name:
		return d.Leaf.Name
	case Rename:
		if d.Leaf.Alias != "" {
			return d.Leaf.Alias
		}
		return d.Leaf.Name
	case Self:
		if len(d.Path) == 0 {
			return ""
		}
		return d.Path[len(d.Path)-1]
	default:
		return ""
	}
}

func (d Declaration) String() string {
	var b strings.Builder
	b.WriteString(d.Visibility.Prefix())
	b.WriteString("use ")
	if d.LeadingColon {
		b.WriteString("::")
	}
	for _, segment := range d.Path {
		b.WriteString(segment)
		b.WriteString("::")
	}
	if d.Leaf.Kind == Self {
		b.WriteString("{self}")
	} else {
		b.WriteString(d.Leaf.String())
	}
	b.WriteString(";")
	return b.String()
}
