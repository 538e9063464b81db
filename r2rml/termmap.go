// Package r2rml implements the R2RML object model: term maps, logical
// tables, subject/predicate-object maps, referencing object maps, triples
// maps, and the mapping document that owns them all.
//
// It is grounded on the recovered C++ original's class hierarchy
// (_examples/original_source/include/r2rml/*.h,
// _examples/original_source/src/r2rml/*.cpp): one TermMap capability
// (evaluate a row into an RDF node) modeled here as an interface instead of
// a virtual base class, per spec.md §9's "tagged variants over deep class
// hierarchies" design note.
package r2rml

import (
	"strings"

	"github.com/r2rml-go/r2rml/dbrow"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// TermType selects the RDF node kind a term map produces, per spec.md §3.
type TermType int

// TermType values.
const (
	TermTypeIRI TermType = iota
	TermTypeBlankNode
	TermTypeLiteral
)

// TermMap is the capability shared by all term-map variants: evaluate a row
// (plus the document's namespace environment) into an RDF node. This is the
// "capability set... {isValid, evaluate(row, env) -> Node}" of spec.md §9.
type TermMap interface {
	// Evaluate produces the RDF node for row, or rdfterm.Null if the
	// map's required input is absent (spec.md §4.3).
	Evaluate(row *dbrow.Row, env *rdfterm.NamespaceEnv) rdfterm.Node
	// IsValid reports whether the map's required fields are populated,
	// per the contracts in spec.md §3.
	IsValid() bool
}

// ConstantTermMap always emits the same IRI node, per spec.md §4.3.
type ConstantTermMap struct {
	IRI string
}

// Evaluate returns the constant IRI node unchanged.
func (m *ConstantTermMap) Evaluate(*dbrow.Row, *rdfterm.NamespaceEnv) rdfterm.Node {
	return rdfterm.NewIRI(m.IRI)
}

// IsValid requires a non-empty IRI (spec.md §3 invariant 3).
func (m *ConstantTermMap) IsValid() bool { return m.IRI != "" }

// ColumnTermMap emits the row's value for a named column, per spec.md §4.3.
type ColumnTermMap struct {
	ColumnName string
	TermType   TermType
	Datatype   string
	Lang       string
}

// Evaluate reads ColumnName from row: Null cell yields rdfterm.Null;
// otherwise the node kind follows TermType and, for literals, Datatype/Lang
// are attached per spec.md §4.3.
func (m *ColumnTermMap) Evaluate(row *dbrow.Row, _ *rdfterm.NamespaceEnv) rdfterm.Node {
	v := row.Get(m.ColumnName)
	if v.IsNull() {
		return rdfterm.Null
	}
	return literalOrIRINode(v.String(), m.TermType, m.Datatype, m.Lang)
}

// IsValid requires a non-empty column name (spec.md §3 invariant 3).
func (m *ColumnTermMap) IsValid() bool { return m.ColumnName != "" }

// TemplateTermMap expands a {COLUMN}-placeholder template into an IRI (or
// literal) lexical form, percent-encoding each substituted value, per
// spec.md §4.3. It is grounded directly on
// _examples/original_source/src/r2rml/TemplateTermMap.cpp.
type TemplateTermMap struct {
	Template string
	TermType TermType
	Datatype string
	Lang     string
}

// IsValid requires a non-empty template string (spec.md §3 invariant 3).
func (m *TemplateTermMap) IsValid() bool { return m.Template != "" }

// Evaluate scans Template left-to-right, substituting {COLUMN} placeholders
// with the percent-encoded string form of the row's value for that column.
// A Null substitution short-circuits to rdfterm.Null for the whole template
// (spec.md §4.3); an unterminated '{' ends expansion and the remainder is
// copied literally (spec.md §8 boundary behavior).
func (m *TemplateTermMap) Evaluate(row *dbrow.Row, _ *rdfterm.NamespaceEnv) rdfterm.Node {
	var out strings.Builder
	tmpl := m.Template
	i := 0
	for i < len(tmpl) {
		if tmpl[i] == '{' {
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				out.WriteString(tmpl[i:])
				break
			}
			end += i + 1
			col := tmpl[i+1 : end]
			v := row.Get(col)
			if v.IsNull() {
				return rdfterm.Null
			}
			out.WriteString(PercentEncode(v.String()))
			i = end + 1
			continue
		}
		out.WriteByte(tmpl[i])
		i++
	}
	return literalOrIRINode(out.String(), m.TermType, m.Datatype, m.Lang)
}

const hexDigits = "0123456789ABCDEF"

// PercentEncode encodes s per spec.md §4.3/§6: bytes in the unreserved set
// `A-Z a-z 0-9 - _ . ~` pass through unchanged; every other byte (including
// each byte of a multi-byte UTF-8 rune) is encoded as %HH in upper-case hex.
func PercentEncode(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			out.WriteByte(c)
			continue
		}
		out.WriteByte('%')
		out.WriteByte(hexDigits[c>>4])
		out.WriteByte(hexDigits[c&0x0f])
	}
	return out.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	default:
		return false
	}
}

func literalOrIRINode(value string, t TermType, datatype, lang string) rdfterm.Node {
	switch t {
	case TermTypeLiteral:
		switch {
		case lang != "":
			return rdfterm.NewLangLiteral(value, lang)
		case datatype != "":
			return rdfterm.NewTypedLiteral(value, datatype)
		default:
			return rdfterm.NewLiteral(value)
		}
	case TermTypeBlankNode:
		return rdfterm.NewBlank(value)
	default: // TermTypeIRI
		return rdfterm.NewIRI(value)
	}
}
