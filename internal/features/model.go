// Package features loads the Great Barrier Reef features dataset and
// subsets it by site name and site identifier.
package features

import (
	"strconv"

	"github.com/twpayne/go-geom"
)

// IDLength is the fixed length of a feature identifier.
const IDLength = 11

// Record is one row of the features dataset.
type Record struct {
	FID          int64
	ID           string
	Name         string
	LocationName string
	// Geometry is owned by go-geom and never modified here. Nil when the
	// source cell is null.
	Geometry geom.T
}

// Table is an ordered collection of records sharing one schema.
type Table []Record

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// Clone returns a shallow copy. Geometries are shared.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// termKind tags the variant held by a Term.
type termKind int

const (
	termInvalid termKind = iota
	termText
	termInt
)

// Term is one caller-supplied filter value. It is either text or an
// integer; the zero Term holds neither and is rejected by both filters.
type Term struct {
	kind termKind
	text string
	num  int64
}

// Text returns a text term.
func Text(s string) Term { return Term{kind: termText, text: s} }

// Int returns an integer term.
func Int(n int64) Term { return Term{kind: termInt, num: n} }

// Texts wraps each string as a text term.
func Texts(ss ...string) []Term {
	out := make([]Term, 0, len(ss))
	for _, s := range ss {
		out = append(out, Text(s))
	}
	return out
}

// Ints wraps each integer as an integer term.
func Ints(ns ...int64) []Term {
	out := make([]Term, 0, len(ns))
	for _, n := range ns {
		out = append(out, Int(n))
	}
	return out
}

// IsText reports whether the term holds text.
func (t Term) IsText() bool { return t.kind == termText }

// IsInt reports whether the term holds an integer.
func (t Term) IsInt() bool { return t.kind == termInt }

// String renders the term for diagnostics and identifier comparison.
func (t Term) String() string {
	switch t.kind {
	case termText:
		return t.text
	case termInt:
		return strconv.FormatInt(t.num, 10)
	default:
		return "<invalid>"
	}
}
