package r2rml

// JoinCondition is a single child/parent column-equality pair used by a
// ReferencingObjectMap, per spec.md §3. Grounded on
// _examples/original_source/include/r2rml/JoinCondition.h.
type JoinCondition struct {
	ChildColumn  string
	ParentColumn string
}

// IsValid requires both column names to be non-empty, per spec.md §3
// invariant 4.
func (jc JoinCondition) IsValid() bool {
	return jc.ChildColumn != "" && jc.ParentColumn != ""
}
