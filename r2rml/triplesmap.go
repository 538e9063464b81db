package r2rml

// TriplesMap describes how each row of a logical table becomes a set of
// RDF triples sharing a common subject, per spec.md §3. Grounded on
// _examples/original_source/include/r2rml/TriplesMap.h.
//
// A Mapping document exclusively owns all TriplesMaps; a TriplesMap
// exclusively owns its LogicalTable, SubjectMap, and PredicateObjectMaps
// (spec.md §3 invariant 5). ReferencingObjectMap holds only a non-owning
// index back into the owning Document's slice (see referencingobjectmap.go),
// which is the "arena + stable index, no cycle" approach spec.md §9
// recommends over a raw pointer.
type TriplesMap struct {
	// ID is the IRI (or, per spec.md §4.1, never a blank-node key --
	// blank-node subjects are never promoted to TriplesMaps) identifying
	// this triples map in the mapping document.
	ID                string
	LogicalTable      LogicalTable
	SubjectMap        *SubjectMap
	PredicateObjectMaps []*PredicateObjectMap
}

// IsValid reports whether this triples map satisfies spec.md §3 invariant
// 1: a valid logical table, a valid subject map, and every predicate-object
// map individually valid.
func (tm *TriplesMap) IsValid() bool {
	if tm.LogicalTable == nil || !tm.LogicalTable.IsValid() {
		return false
	}
	if tm.SubjectMap == nil || !tm.SubjectMap.IsValid() {
		return false
	}
	for _, pom := range tm.PredicateObjectMaps {
		if pom == nil || !pom.IsValid() {
			return false
		}
	}
	return true
}

// IsValidInsideOut reports whether this triples map satisfies the
// alternate inside-out execution mode of spec.md §4.6: no logical table,
// and no predicate-object map uses a referencing object map.
func (tm *TriplesMap) IsValidInsideOut() bool {
	if tm.LogicalTable != nil {
		return false
	}
	if tm.SubjectMap == nil || !tm.SubjectMap.IsValid() {
		return false
	}
	for _, pom := range tm.PredicateObjectMaps {
		if pom == nil || !pom.IsValidInsideOut() {
			return false
		}
	}
	return true
}
