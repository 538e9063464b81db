package r2rml

// PredicateObjectMap bundles one or more predicate term maps with one or
// more object term maps (each possibly a *ReferencingObjectMap), expanded
// combinatorially per row, per spec.md §3. Grounded on
// _examples/original_source/include/r2rml/PredicateObjectMap.h; the actual
// per-row emission (processRow in the original) lives in package gen, which
// is where spec.md §2 places the triple-generation pipeline's 18% share.
type PredicateObjectMap struct {
	PredicateMaps []TermMap
	ObjectMaps    []TermMap
	// GraphMaps holds parsed rr:graphMap references; parsed only, per
	// spec.md §3 (named-graph evaluation is a Non-goal).
	GraphMaps []string
}

// IsValid requires at least one predicate map and one object map, each
// individually valid, per spec.md §3 invariant 2.
func (p *PredicateObjectMap) IsValid() bool {
	if len(p.PredicateMaps) == 0 || len(p.ObjectMaps) == 0 {
		return false
	}
	for _, pm := range p.PredicateMaps {
		if pm == nil || !pm.IsValid() {
			return false
		}
	}
	for _, om := range p.ObjectMaps {
		if om == nil || !om.IsValid() {
			return false
		}
	}
	return true
}

// IsValidInsideOut requires IsValid plus that no object map is a
// ReferencingObjectMap, per spec.md §4.6.
func (p *PredicateObjectMap) IsValidInsideOut() bool {
	if !p.IsValid() {
		return false
	}
	for _, om := range p.ObjectMaps {
		if _, isROM := om.(*ReferencingObjectMap); isROM {
			return false
		}
	}
	return true
}
