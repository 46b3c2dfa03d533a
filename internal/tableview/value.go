package tableview

import (
	"cmp"
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindString
)

// Value is a single field read from a record by a column accessor.
// The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric Value.
func Num(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric Value from an integer.
func Int(i int64) Value { return Value{kind: KindNumber, num: float64(i)} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Missing returns a Value with no content.
func Missing() Value { return Value{} }

// Kind reports what v holds.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v holds nothing.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content of v and whether v is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Text returns the string content of v and whether v is a string.
func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

// String formats v for display. Whole numbers print without a fraction.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// compareValues orders a before b under dir.
//
// Missing values sort after everything else in both directions. Present
// values of different kinds order by kind, numbers before strings, and
// that order flips with dir like any other.
func compareValues(a, b Value, dir Direction) int {
	switch {
	case a.kind == KindMissing && b.kind == KindMissing:
		return 0
	case a.kind == KindMissing:
		return 1
	case b.kind == KindMissing:
		return -1
	}

	var c int
	switch {
	case a.kind != b.kind:
		c = cmp.Compare(a.kind, b.kind)
	case a.kind == KindNumber:
		c = cmp.Compare(a.num, b.num)
	default:
		c = strings.Compare(a.str, b.str)
	}
	if dir == Descending {
		c = -c
	}
	return c
}
