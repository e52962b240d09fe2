package usetree

// Collision is a local name bound by more than one distinct declaration
type Collision struct {
	Name         string
	Declarations []Declaration
}

// Collisions reports local names that several declarations of the groups bind.
// The compiler remains the authority: a reported collision may be legal when the items live in different namespaces.
func Collisions(groups []*Group) []Collision {
	var order []string
	byName := make(map[string][]Declaration)

	for _, g := range groups {
		for _, d := range g.Declarations() {
			name := d.LocalName()
			if name == "" || name == "_" || name == "self" {
				continue
			}
			if _, seen := byName[name]; !seen {
				order = append(order, name)
			}
			byName[name] = append(byName[name], d)
		}
	}

	var collisions []Collision
	for _, name := range order {
		if decls := byName[name]; len(decls) > 1 {
			collisions = append(collisions, Collision{Name: name, Declarations: decls})
		}
	}
	return collisions
}
