package usetree

// GroupKey identifies the set of declarations that are merged into one statement cluster
type GroupKey struct {
	Category     Category
	Visibility   Visibility
	LeadingColon bool
}

// Entry is one item of a node: either a leaf attached to the node or a child node
type Entry struct {
	Leaf  Leaf
	Child *Node // nil for leaf entries
}

// Node is a point in a group's prefix tree
type Node struct {
	Segment  string // empty for the synthetic root
	entries  []Entry
	children map[string]*Node
	leaves   map[Leaf]bool
}

func newNode(segment string) *Node {
	return &Node{
		Segment:  segment,
		children: make(map[string]*Node),
		leaves:   make(map[Leaf]bool),
	}
}

// Entries returns leaves and children of the node in order of first appearance
func (n *Node) Entries() []Entry {
	return n.entries
}

// Child returns the child node for segment, or nil
func (n *Node) Child(segment string) *Node {
	return n.children[segment]
}

// Children returns the child nodes in order of first appearance
func (n *Node) Children() []*Node {
	var children []*Node
	for _, e := range n.entries {
		if e.Child != nil {
			children = append(children, e.Child)
		}
	}
	return children
}

// Leaves returns the leaves attached to the node in order of first appearance
func (n *Node) Leaves() []Leaf {
	var leaves []Leaf
	for _, e := range n.entries {
		if e.Child == nil {
			leaves = append(leaves, e.Leaf)
		}
	}
	return leaves
}

// descend returns the child for segment, appending a new one after the existing entries if needed
func (n *Node) descend(segment string) *Node {
	if child, ok := n.children[segment]; ok {
		return child
	}
	child := newNode(segment)
	n.children[segment] = child
	n.entries = append(n.entries, Entry{Child: child})
	return child
}

// attach adds a leaf unless an identical one is already present
func (n *Node) attach(leaf Leaf) {
	if n.leaves[leaf] {
		return
	}
	n.leaves[leaf] = true
	n.entries = append(n.entries, Entry{Leaf: leaf})
}

func (n *Node) insert(path []string, leaf Leaf) {
	node := n
	for _, segment := range path {
		node = node.descend(segment)
	}
	// a plain name lives on its own node so that it meets imports of its members
	if leaf.Kind == Name {
		node = node.descend(leaf.Name)
		leaf = Leaf{Kind: Self}
	}
	node.attach(leaf)
}

// Group is the merge tree of all declarations sharing a GroupKey
type Group struct {
	Key  GroupKey
	Root *Node
}

func newGroup(key GroupKey) *Group {
	return &Group{Key: key, Root: newNode("")}
}

// Add merges a declaration into the group's tree
func (g *Group) Add(d Declaration) {
	g.Root.insert(d.Path, d.Leaf)
}

// Declarations flattens the tree back into canonical declarations, in tree order
func (g *Group) Declarations() []Declaration {
	var decls []Declaration
	var walk func(n *Node, path []string)
	walk = func(n *Node, path []string) {
		for _, e := range n.entries {
			if e.Child != nil {
				walk(e.Child, append(path[:len(path):len(path)], e.Child.Segment))
				continue
			}
			decls = append(decls, Declaration{
				Visibility:   g.Key.Visibility,
				LeadingColon: g.Key.LeadingColon,
				Path:         append([]string(nil), path...),
				Leaf:         e.Leaf,
			})
		}
	}
	walk(g.Root, nil)
	return decls
}

// Builder accumulates declarations into per-group merge trees
type Builder struct {
	classifier *Classifier
	groups     []*Group
	index      map[GroupKey]*Group
}

// NewBuilder creates a Builder using the given classifier
func NewBuilder(classifier *Classifier) *Builder {
	return &Builder{
		classifier: classifier,
		index:      make(map[GroupKey]*Group),
	}
}

// Add classifies a declaration and merges it into the tree of its group
func (b *Builder) Add(d Declaration) {
	key := GroupKey{
		Category:     b.classifier.Classify(d),
		Visibility:   d.Visibility,
		LeadingColon: d.LeadingColon,
	}
	group, ok := b.index[key]
	if !ok {
		group = newGroup(key)
		b.index[key] = group
		b.groups = append(b.groups, group)
	}
	group.Add(d)
}

// Groups returns the groups in order of first appearance of their keys
func (b *Builder) Groups() []*Group {
	return b.groups
}

// Build merges declarations, given in source order, into per-group trees
func Build(decls []Declaration, classifier *Classifier) []*Group {
	b := NewBuilder(classifier)
	for _, d := range decls {
		b.Add(d)
	}
	return b.Groups()
}
