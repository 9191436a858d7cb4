package wireschema

// Strictness selects how many wire shapes an adapter accepts on input.
type Strictness int

const (
	Strict   Strictness = iota // Accept exactly one wire shape.
	Flexible                   // Accept a numeric or textual encoding of the same value.
)

// String returns the name used inside schema names and ids.
func (s Strictness) String() string {
	switch s {
	case Strict:
		return "Strict"
	case Flexible:
		return "Flexible"
	default:
		return "Strictness(?)"
	}
}

// ParseStrictness maps "Strict"/"Flexible" back to a Strictness.
func ParseStrictness(name string) (Strictness, bool) {
	switch name {
	case "Strict":
		return Strict, true
	case "Flexible":
		return Flexible, true
	}
	return 0, false
}
