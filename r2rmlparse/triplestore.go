package r2rmlparse

import "github.com/r2rml-go/r2rml/rdfterm"

// tripleStore indexes a flat triple stream by subject, then by predicate,
// preserving the document order triples arrived in. It is the Phase 1
// "collect" structure of spec.md §4.1, replacing the original's incremental
// Serd sink (_examples/original_source/src/r2rml/R2RMLParser.cpp) with a
// pre-built index, since the reader collaborator hands back a complete
// slice rather than calling back per statement.
type tripleStore struct {
	// order preserves the sequence subjects were first seen in, so
	// TriplesMap promotion (Phase 2) walks the mapping document in the
	// order its subjects appear in the source file, per spec.md §4.5's
	// "document order" ordering guarantee.
	order   []string
	bySubj  map[string]rdfterm.Node            // subject key -> subject node
	triples map[string]map[string][]rdfterm.Node // subject key -> predicate IRI -> objects
}

func newTripleStore(raw []RawTriple) *tripleStore {
	ts := &tripleStore{
		bySubj:  make(map[string]rdfterm.Node),
		triples: make(map[string]map[string][]rdfterm.Node),
	}
	for _, t := range raw {
		key := t.Subject.String()
		if _, seen := ts.triples[key]; !seen {
			ts.order = append(ts.order, key)
			ts.bySubj[key] = t.Subject
			ts.triples[key] = make(map[string][]rdfterm.Node)
		}
		ts.triples[key][t.Predicate] = append(ts.triples[key][t.Predicate], t.Object)
	}
	return ts
}

// subjects returns every distinct subject key in first-seen order.
func (ts *tripleStore) subjects() []string { return ts.order }

// node returns the subject Node for key.
func (ts *tripleStore) node(key string) rdfterm.Node { return ts.bySubj[key] }

// objects returns every object recorded for (subjectKey, predicate), in the
// order the triples arrived.
func (ts *tripleStore) objects(subjectKey, predicate string) []rdfterm.Node {
	return ts.triples[subjectKey][predicate]
}

// object returns the first object recorded for (subjectKey, predicate), or
// rdfterm.Null plus false if none exists. R2RML properties that are
// functional (spec.md §3) only ever need the first.
func (ts *tripleStore) object(subjectKey, predicate string) (rdfterm.Node, bool) {
	objs := ts.triples[subjectKey][predicate]
	if len(objs) == 0 {
		return rdfterm.Null, false
	}
	return objs[0], true
}

// hasAny reports whether subjectKey has at least one triple under any of
// predicates, used by the isTriplesMap promotion test.
func (ts *tripleStore) hasAny(subjectKey string, predicates ...string) bool {
	for _, p := range predicates {
		if len(ts.triples[subjectKey][p]) > 0 {
			return true
		}
	}
	return false
}
