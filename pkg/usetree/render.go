package usetree

import (
	"strings"
)

// Render serializes the groups into use statements, one group after another
func Render(groups []*Group) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
			if NeedsBlankLine(groups[i-1].Key, g.Key) {
				b.WriteString("\n")
			}
		}
		b.WriteString(strings.Join(g.Statements(), "\n"))
	}
	return b.String()
}

// Statements renders one statement per top-level branch of the group
func (g *Group) Statements() []string {
	prefix := g.Key.Visibility.Prefix() + "use "
	if g.Key.LeadingColon {
		prefix += "::"
	}

	statements := make([]string, 0, len(g.Root.entries))
	for _, e := range g.Root.entries {
		var b strings.Builder
		b.WriteString(prefix)
		renderEntry(&b, e)
		b.WriteString(";")
		statements = append(statements, b.String())
	}
	return statements
}

func renderEntry(b *strings.Builder, e Entry) {
	if e.Child != nil {
		renderNode(b, e.Child)
		return
	}
	b.WriteString(e.Leaf.String())
}

func renderNode(b *strings.Builder, n *Node) {
	b.WriteString(n.Segment)

	if len(n.entries) == 1 {
		e := n.entries[0]
		switch {
		case e.Child != nil:
			b.WriteString("::")
			renderNode(b, e.Child)
			return
		case e.Leaf.Kind == Self:
			return
		case e.Leaf.Kind == Rename && e.Leaf.Name == "self":
			// a::self as b is not valid syntax, keep the braces
		default:
			b.WriteString("::")
			b.WriteString(e.Leaf.String())
			return
		}
	}

	b.WriteString("::{")
	for i, e := range n.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		renderEntry(b, e)
	}
	b.WriteString("}")
}
