package r2rml

import (
	"github.com/r2rml-go/r2rml/dbrow"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// ReferencingObjectMap produces, as its object term, the subject generated
// by a parent TriplesMap, joined by column equalities, per spec.md §3/§4.4.
// Grounded on
// _examples/original_source/{include,src}/r2rml/ReferencingObjectMap.{h,cpp}.
//
// The parent back-reference is non-owning: rather than the original's raw
// C++ pointer (installed during Phase 3 of the parser and requiring the
// parent's lifetime to outlive the mapping), this holds the parent's
// identifier plus a resolved, stable index into the owning Document's
// TriplesMaps slice (spec.md §9's "arena + index, no cycle" alternative).
type ReferencingObjectMap struct {
	JoinConditions []JoinCondition

	parentID    string // as written in rr:parentTriplesMap, for diagnostics
	parentIndex int    // -1 until resolved by Phase 3; index into Document.TriplesMaps
	doc         *Document
}

// NewReferencingObjectMap returns a ReferencingObjectMap with an unresolved
// parent reference naming parentID.
func NewReferencingObjectMap(parentID string) *ReferencingObjectMap {
	return &ReferencingObjectMap{parentID: parentID, parentIndex: -1}
}

// ParentID returns the raw rr:parentTriplesMap IRI this map was built from,
// whether or not it has since resolved.
func (m *ReferencingObjectMap) ParentID() string { return m.parentID }

// ResolveParent installs the resolved back-reference: doc is the owning
// mapping document and index is the position of the parent triples map
// within doc.TriplesMaps. Called by the parser's Phase 3 resolution pass
// (spec.md §4.1); leaving it uncalled models an unresolved reference
// (spec.md §8's invariant: "the parent back-reference is cleared").
func (m *ReferencingObjectMap) ResolveParent(doc *Document, index int) {
	m.doc = doc
	m.parentIndex = index
}

// Parent returns the resolved parent TriplesMap, or nil if unresolved.
func (m *ReferencingObjectMap) Parent() *TriplesMap {
	if m.doc == nil || m.parentIndex < 0 || m.parentIndex >= len(m.doc.TriplesMaps) {
		return nil
	}
	return m.doc.TriplesMaps[m.parentIndex]
}

// IsValid requires a resolved parent and every join condition valid, per
// spec.md §3 invariant 4.
func (m *ReferencingObjectMap) IsValid() bool {
	if m.Parent() == nil {
		return false
	}
	for _, jc := range m.JoinConditions {
		if !jc.IsValid() {
			return false
		}
	}
	return true
}

// Evaluate is never meaningfully called with a single row: referencing
// object maps need both the child row and a joined parent row (see
// EvaluateJoined). It always returns rdfterm.Null, mirroring the original's
// ConcreteReferencingObjectMap::generateRDFTerm single-row override
// (_examples/original_source/src/r2rml/R2RMLParser.cpp).
func (m *ReferencingObjectMap) Evaluate(*dbrow.Row, *rdfterm.NamespaceEnv) rdfterm.Node {
	return rdfterm.Null
}

// GetJoinedRows executes the parent's logical table against conn and
// returns a cursor over every parent row for which every join condition
// holds, per spec.md §4.4. A condition (c, p) holds iff neither
// childRow[c] nor parentRow[p] is Null and their string forms are equal
// byte-for-byte (dbrow.Equal) -- string-form equality sidesteps
// child/parent type-coercion hazards (spec.md §4.4's rationale).
//
// Zero join conditions yield the Cartesian product of child and parent
// rows (spec.md §8 boundary behavior): every parent row is "matched"
// vacuously.
func (m *ReferencingObjectMap) GetJoinedRows(conn dbrow.Conn, childRow *dbrow.Row) (dbrow.Cursor, error) {
	parent := m.Parent()
	if parent == nil || parent.LogicalTable == nil {
		return dbrow.EmptyCursor{}, nil
	}
	parentCursor, err := parent.LogicalTable.GetRows(conn)
	if err != nil {
		return nil, err
	}
	defer parentCursor.Close()

	var matched []*dbrow.Row
	for parentCursor.Advance() {
		parentRow := parentCursor.Current()
		if m.joinHolds(childRow, parentRow) {
			matched = append(matched, parentRow)
		}
	}
	if err := parentCursor.Err(); err != nil {
		return nil, err
	}
	return dbrow.NewSliceCursor(matched), nil
}

func (m *ReferencingObjectMap) joinHolds(childRow, parentRow *dbrow.Row) bool {
	for _, jc := range m.JoinConditions {
		if !dbrow.Equal(childRow.Get(jc.ChildColumn), parentRow.Get(jc.ParentColumn)) {
			return false
		}
	}
	return true
}

// EvaluateJoined produces the object term for a (childRow, parentRow)
// pair: the resolved parent triples map's subject map, evaluated against
// parentRow, per spec.md §4.4's "two-row term generation".
func (m *ReferencingObjectMap) EvaluateJoined(parentRow *dbrow.Row, env *rdfterm.NamespaceEnv) rdfterm.Node {
	parent := m.Parent()
	if parent == nil || parent.SubjectMap == nil {
		return rdfterm.Null
	}
	return parent.SubjectMap.Evaluate(parentRow, env)
}
