// internal/types/position.go
package types

import "fmt"

// Range is a half-open interval [Start, End) of character indexes.
// Indexes count runes; an attachment occupies a single slot.
type Range struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether index i falls inside [Start, End).
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Overlaps reports whether two ranges share at least one character.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Intersect returns the overlap of r and o (possibly empty).
func (r Range) Intersect(o Range) Range {
	out := Range{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

// Within reports whether 0 <= Start < End <= length.
func (r Range) Within(length int) bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= length
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Point is a position in container coordinates. For the terminal host one
// unit is one cell; fractional values address positions inside a cell.
type Point struct {
	X float64
	Y float64
}

// Size is the extent of a container or of laid-out text.
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether either dimension is non-positive.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}
