package std

// StandardCrates contains the crates shipped with the Rust toolchain that are grouped together
var StandardCrates = map[string]bool{
	"std":   true,
	"core":  true,
	"alloc": true,
}

// IsStandardCrate checks if a crate name belongs to the standard library family
func IsStandardCrate(name string) bool {
	return StandardCrates[name]
}
