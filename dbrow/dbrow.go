// Package dbrow defines the typed cell Value and the Row/Cursor/Conn
// contract that the rest of this module uses to read relational data,
// independent of any particular SQL driver.
//
// Column names are folded to upper-case ASCII at the boundary of this
// package (see Row.Get), matching R2RML's convention of upper-casing both
// the row source and the rr:column/rr:child/rr:parent references that name
// its cells.
package dbrow

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

// Value variants.
const (
	KindNull Kind = iota
	KindInteger
	KindDouble
	KindString
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("dbrow.Kind(%d)", int(k))
	}
}

// Value is a typed relational cell value. The zero Value is Null.
//
// Integer and Double are bounded by Go's native int64/float64 range. A
// driver adapter that encounters a value outside that range must fall back
// to the String variant so the lexical form survives losslessly; String()
// is always defined and is what term-map evaluation and join comparisons
// use.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Null is the absent-value sentinel.
var Null = Value{kind: KindNull}

// NewInteger returns an Integer value.
func NewInteger(v int64) Value { return Value{kind: KindInteger, i: v} }

// NewDouble returns a Double value.
func NewDouble(v float64) Value { return Value{kind: KindDouble, f: v} }

// NewString returns a String value.
func NewString(v string) Value { return Value{kind: KindString, s: v} }

// NewBoolean returns a Boolean value.
func NewBoolean(v bool) Value { return Value{kind: KindBoolean, b: v} }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Kind returns v's variant tag.
func (v Value) Kind() Kind { return v.kind }

// Int returns the Integer payload; only meaningful when Kind() == KindInteger.
func (v Value) Int() int64 { return v.i }

// Float returns the Double payload; only meaningful when Kind() == KindDouble.
func (v Value) Float() float64 { return v.f }

// Bool returns the Boolean payload; only meaningful when Kind() == KindBoolean.
func (v Value) Bool() bool { return v.b }

// String returns the canonical string form used for equality in joins and
// as a literal's lexical form. Null's string form is the empty string; its
// IsNull flag, not its string form, is what callers must check first.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Equal reports whether two values have byte-for-byte equal string forms
// and are both non-null. This is the join-condition equality rule of
// spec.md §4.4: type coercion never enters into it.
func Equal(a, b Value) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}
	return a.String() == b.String()
}

// Row is an immutable, ordered mapping from upper-cased ASCII column name to
// Value. The zero Row (ColumnNames == nil) behaves like an all-Null row of
// width zero.
type Row struct {
	names  []string
	lookup map[string]int
	values []Value
}

// NewRow builds a Row from parallel column-name/value slices. Column names
// are folded to upper-case ASCII; duplicate names after folding keep the
// last value supplied, matching a plain Go map's overwrite semantics.
func NewRow(names []string, values []Value) *Row {
	r := &Row{
		names:  make([]string, len(names)),
		lookup: make(map[string]int, len(names)),
		values: append([]Value(nil), values...),
	}
	for i, n := range names {
		up := UpperFold(n)
		r.names[i] = up
		r.lookup[up] = i
	}
	return r
}

// UpperFold folds a column name to upper-case ASCII, the matching
// convention required by spec.md §6: rr:column/rr:child/rr:parent and
// template placeholders are always compared against upper-cased names.
// Bytes outside a-z, including non-ASCII letters, are left unchanged.
func UpperFold(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// Get returns the value of the named column, or Null if the column is
// absent. The name is folded to upper-case ASCII before lookup, so callers
// may pass a column name in any case.
func (r *Row) Get(column string) Value {
	if r == nil {
		return Null
	}
	idx, ok := r.lookup[UpperFold(column)]
	if !ok {
		return Null
	}
	return r.values[idx]
}

// ColumnNames returns the row's column names, already upper-folded, in
// their original order.
func (r *Row) ColumnNames() []string {
	if r == nil {
		return nil
	}
	return r.names
}

// Cursor is a forward-only, single-use row iterator with the two-phase
// Advance/Current contract of spec.md §3: Advance must be called before the
// first Current, and Current is valid only immediately after an Advance
// that returned true.
type Cursor interface {
	// Advance moves to the next row, returning false (and propagating any
	// driver error via Err) once rows are exhausted.
	Advance() bool
	// Current returns the row most recently made current by Advance.
	Current() *Row
	// Err returns the first error encountered by Advance, if any.
	Err() error
	// Close releases any resources held by the cursor. Safe to call more
	// than once.
	Close() error
}

// Conn executes a SQL statement and returns a cursor over its result set.
// Concrete adapters (package sqlconn) back this with database/sql; tests
// back it with an in-memory fake.
type Conn interface {
	Execute(sql string) (Cursor, error)
}

// EmptyCursor is a Cursor over zero rows, returned by components that must
// signal "no rows" without touching a real connection (e.g. a referencing
// object map whose parent triples map never resolved).
type EmptyCursor struct{}

// Advance always reports false.
func (EmptyCursor) Advance() bool { return false }

// Current always returns nil; callers must not call it without a
// preceding Advance() == true.
func (EmptyCursor) Current() *Row { return nil }

// Err always returns nil.
func (EmptyCursor) Err() error { return nil }

// Close is a no-op.
func (EmptyCursor) Close() error { return nil }

// SliceCursor is an in-memory Cursor over a pre-collected slice of rows,
// used by ReferencingObjectMap.GetJoinedRows (package r2rml) to return the
// set of parent rows matching a child row's join conditions.
type SliceCursor struct {
	rows []*Row
	pos  int
}

// NewSliceCursor returns a Cursor over rows, in order.
func NewSliceCursor(rows []*Row) *SliceCursor {
	return &SliceCursor{rows: rows, pos: -1}
}

// Advance moves to the next row in the slice.
func (c *SliceCursor) Advance() bool {
	c.pos++
	return c.pos < len(c.rows)
}

// Current returns the row at the cursor's current position.
func (c *SliceCursor) Current() *Row {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil
	}
	return c.rows[c.pos]
}

// Err always returns nil; collection happens eagerly before NewSliceCursor
// is called.
func (c *SliceCursor) Err() error { return nil }

// Close is a no-op.
func (c *SliceCursor) Close() error { return nil }
