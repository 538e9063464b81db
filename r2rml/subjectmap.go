package r2rml

import (
	"github.com/r2rml-go/r2rml/dbrow"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// SubjectMap extends a TermMap with class-IRI assertions and (parsed-only)
// graph maps, per spec.md §3. Grounded on
// _examples/original_source/include/r2rml/SubjectMap.h, where the original
// models this via a private ConcreteSubjectMap wrapping an inner value-map
// strategy (_examples/original_source/src/r2rml/R2RMLParser.cpp); this
// repository instead embeds the TermMap interface directly, since Go has
// no need for the C++ abstract-base workaround.
type SubjectMap struct {
	Value     TermMap // nil if no value-producing component was recognised
	ClassIRIs []string
	// GraphMaps holds parsed rr:graphMap references; spec.md §3 and §4.5
	// require them to be parsed but the core generator does not evaluate
	// them (named-graph output is a spec.md Non-goal).
	GraphMaps []string
}

// Evaluate delegates to the inner value map, or returns rdfterm.Null if
// none was recognised.
func (m *SubjectMap) Evaluate(row *dbrow.Row, env *rdfterm.NamespaceEnv) rdfterm.Node {
	if m.Value == nil {
		return rdfterm.Null
	}
	return m.Value.Evaluate(row, env)
}

// IsValid requires a valid value-producing component, per spec.md §3
// invariant 1.
func (m *SubjectMap) IsValid() bool {
	return m.Value != nil && m.Value.IsValid()
}
