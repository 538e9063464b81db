package r2rmlparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/r2rml-go/r2rml/diagnostics"
	"github.com/r2rml-go/r2rml/r2rml"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// fakeReader hands back a fixed triple stream, standing in for a real
// Turtle/N-Triples decode (package rdfio) so these tests exercise only the
// Phase 2/3 build logic.
type fakeReader struct {
	base    string
	triples []RawTriple
}

func (r fakeReader) ReadMapping(string) (string, []RawTriple, error) {
	return r.base, r.triples, nil
}

func iri(s string) rdfterm.Node   { return rdfterm.NewIRI(s) }
func blank(s string) rdfterm.Node { return rdfterm.NewBlank(s) }
func lit(s string) rdfterm.Node   { return rdfterm.NewLiteral(s) }

func trip(s rdfterm.Node, p string, o rdfterm.Node) RawTriple {
	return RawTriple{Subject: s, Predicate: p, Object: o}
}

func TestParseBasicTriplesMap(t *testing.T) {
	tm := iri("http://ex/TriplesMap1")
	lt := blank("lt1")
	sm := blank("sm1")
	pom := blank("pom1")
	om := blank("om1")

	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(tm, rrLogicalTable, lt),
			trip(lt, rrTableName, lit("people")),
			trip(tm, rrSubjectMap, sm),
			trip(sm, rrTemplate, lit("http://ex/person/{id}")),
			trip(sm, rrClass, iri("http://xmlns.com/foaf/0.1/Person")),
			trip(tm, rrPredicateObjectMap, pom),
			trip(pom, rrPredicate, iri("http://xmlns.com/foaf/0.1/name")),
			trip(pom, rrObjectMap, om),
			trip(om, rrColumn, lit("name")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 1 {
		t.Fatalf("got %d triples maps, want 1", len(doc.TriplesMaps))
	}

	got := doc.TriplesMaps[0]
	if got.ID != "http://ex/TriplesMap1" {
		t.Errorf("ID = %q", got.ID)
	}
	if !got.IsValid() {
		t.Errorf("TriplesMap not valid: %+v", got)
	}

	lTable, ok := got.LogicalTable.(*r2rml.BaseTableOrView)
	if !ok {
		t.Fatalf("LogicalTable type = %T, want *r2rml.BaseTableOrView", got.LogicalTable)
	}
	if lTable.TableName != "people" {
		t.Errorf("TableName = %q", lTable.TableName)
	}

	subjTemplate, ok := got.SubjectMap.Value.(*r2rml.TemplateTermMap)
	if !ok {
		t.Fatalf("SubjectMap.Value type = %T, want *r2rml.TemplateTermMap", got.SubjectMap.Value)
	}
	if diff := cmp.Diff("http://ex/person/{id}", subjTemplate.Template); diff != "" {
		t.Errorf("Template mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"http://xmlns.com/foaf/0.1/Person"}, got.SubjectMap.ClassIRIs); diff != "" {
		t.Errorf("ClassIRIs mismatch (-want +got):\n%s", diff)
	}

	if len(got.PredicateObjectMaps) != 1 {
		t.Fatalf("got %d predicate-object maps, want 1", len(got.PredicateObjectMaps))
	}
	gotPOM := got.PredicateObjectMaps[0]
	if len(gotPOM.PredicateMaps) != 1 || len(gotPOM.ObjectMaps) != 1 {
		t.Fatalf("POM shape = %d predicates, %d objects", len(gotPOM.PredicateMaps), len(gotPOM.ObjectMaps))
	}
	predConst, ok := gotPOM.PredicateMaps[0].(*r2rml.ConstantTermMap)
	if !ok || predConst.IRI != "http://xmlns.com/foaf/0.1/name" {
		t.Errorf("predicate map = %#v", gotPOM.PredicateMaps[0])
	}
	objCol, ok := gotPOM.ObjectMaps[0].(*r2rml.ColumnTermMap)
	if !ok || objCol.ColumnName != "name" {
		t.Errorf("object map = %#v", gotPOM.ObjectMaps[0])
	}
}

func TestParsePredicateObjectMapAlonePromotesSubject(t *testing.T) {
	// A subject carrying only rr:predicateObjectMap triples (no
	// rr:logicalTable, rr:subjectMap, or rr:subject) must still be promoted
	// to a TriplesMap, per spec.md §4.1's predicate set
	// {rr:logicalTable, rr:subjectMap, rr:predicateObjectMap, rr:subject}.
	tm := iri("http://ex/TriplesMap1")
	pom := blank("pom1")

	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(tm, rrPredicateObjectMap, pom),
			trip(pom, rrPredicate, iri("http://ex/name")),
			trip(pom, rrObject, lit("constant value")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 1 {
		t.Fatalf("got %d triples maps, want 1 (rr:predicateObjectMap alone must promote its subject)", len(doc.TriplesMaps))
	}
	if doc.TriplesMaps[0].ID != "http://ex/TriplesMap1" {
		t.Errorf("ID = %q", doc.TriplesMaps[0].ID)
	}
}

func TestParseNonIRIClassSilentlyDropped(t *testing.T) {
	tm := iri("http://ex/TriplesMap1")
	sm := blank("sm1")

	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(tm, rrSubjectMap, sm),
			trip(sm, rrTemplate, lit("http://ex/person/{id}")),
			trip(sm, rrClass, lit("not an iri")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 1 {
		t.Fatalf("got %d triples maps, want 1", len(doc.TriplesMaps))
	}
	if got := doc.TriplesMaps[0].SubjectMap.ClassIRIs; len(got) != 0 {
		t.Errorf("ClassIRIs = %v, want empty (literal rr:class value must be silently dropped)", got)
	}
}

func TestParseNonIRIPredicateSilentlyDropped(t *testing.T) {
	tm := iri("http://ex/TriplesMap1")
	sm := blank("sm1")
	pom := blank("pom1")
	om := blank("om1")

	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(tm, rrSubjectMap, sm),
			trip(sm, rrTemplate, lit("http://ex/person/{id}")),
			trip(tm, rrPredicateObjectMap, pom),
			trip(pom, rrPredicate, lit("not an iri")),
			trip(pom, rrObjectMap, om),
			trip(om, rrColumn, lit("name")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 1 {
		t.Fatalf("got %d triples maps, want 1", len(doc.TriplesMaps))
	}
	// the predicate-object map's only predicate was a literal and must be
	// dropped, leaving it with no predicate maps, so it is skipped entirely.
	if got := doc.TriplesMaps[0].PredicateObjectMaps; len(got) != 0 {
		t.Errorf("PredicateObjectMaps = %v, want empty (literal rr:predicate value must be silently dropped)", got)
	}
}

func TestParseNonIRIObjectShortcutSilentlyDropped(t *testing.T) {
	tm := iri("http://ex/TriplesMap1")
	sm := blank("sm1")
	pom := blank("pom1")

	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(tm, rrSubjectMap, sm),
			trip(sm, rrTemplate, lit("http://ex/person/{id}")),
			trip(tm, rrPredicateObjectMap, pom),
			trip(pom, rrPredicate, iri("http://ex/name")),
			trip(pom, rrObject, lit("a literal object shortcut value")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 1 {
		t.Fatalf("got %d triples maps, want 1", len(doc.TriplesMaps))
	}
	// rr:object only accepts URI-typed values; the literal shortcut value
	// must be dropped, leaving this predicate-object map with no object
	// maps, so it is skipped entirely.
	if got := doc.TriplesMaps[0].PredicateObjectMaps; len(got) != 0 {
		t.Errorf("PredicateObjectMaps = %v, want empty (literal rr:object shortcut value must be silently dropped)", got)
	}
}

func TestParseBlankNodeSubjectNeverPromoted(t *testing.T) {
	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(blank("b1"), rrTableName, lit("people")),
		},
	}
	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 0 {
		t.Errorf("got %d triples maps, want 0 (blank subject must never be promoted)", len(doc.TriplesMaps))
	}
}

func TestParseReferencingObjectMapResolvesAcrossForwardReference(t *testing.T) {
	// Child declared before its parent in the source, per spec.md §4.1
	// boundary behavior: a parent may be declared after its child.
	child := iri("http://ex/ChildMap")
	childLT := blank("clt")
	childSM := blank("csm")
	pom := blank("pom")
	om := blank("om")
	jc := blank("jc")

	parent := iri("http://ex/ParentMap")
	parentLT := blank("plt")
	parentSM := blank("psm")

	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(child, rrLogicalTable, childLT),
			trip(childLT, rrTableName, lit("orders")),
			trip(child, rrSubjectMap, childSM),
			trip(childSM, rrTemplate, lit("http://ex/order/{id}")),
			trip(child, rrPredicateObjectMap, pom),
			trip(pom, rrPredicate, iri("http://ex/customer")),
			trip(pom, rrObjectMap, om),
			trip(om, rrParentTriplesMap, parent),
			trip(om, rrJoinCondition, jc),
			trip(jc, rrChild, lit("customer_id")),
			trip(jc, rrParent, lit("id")),

			trip(parent, rrLogicalTable, parentLT),
			trip(parentLT, rrTableName, lit("customers")),
			trip(parent, rrSubjectMap, parentSM),
			trip(parentSM, rrTemplate, lit("http://ex/customer/{id}")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, diagnostics.Discard{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.TriplesMaps) != 2 {
		t.Fatalf("got %d triples maps, want 2", len(doc.TriplesMaps))
	}

	childTM, _ := doc.TriplesMapByID("http://ex/ChildMap")
	if childTM == nil {
		t.Fatalf("child triples map not found")
	}
	rom, ok := childTM.PredicateObjectMaps[0].ObjectMaps[0].(*r2rml.ReferencingObjectMap)
	if !ok {
		t.Fatalf("object map type = %T, want *r2rml.ReferencingObjectMap", childTM.PredicateObjectMaps[0].ObjectMaps[0])
	}
	if rom.Parent() == nil {
		t.Fatalf("parent reference did not resolve")
	}
	if rom.Parent().ID != "http://ex/ParentMap" {
		t.Errorf("resolved parent ID = %q", rom.Parent().ID)
	}
	if diff := cmp.Diff([]r2rml.JoinCondition{{ChildColumn: "customer_id", ParentColumn: "id"}}, rom.JoinConditions); diff != "" {
		t.Errorf("JoinConditions mismatch (-want +got):\n%s", diff)
	}
	if !rom.IsValid() {
		t.Errorf("resolved ReferencingObjectMap should be valid")
	}
}

func TestParseUnresolvedParentReferenceStaysInvalid(t *testing.T) {
	child := iri("http://ex/ChildMap")
	childLT := blank("clt")
	childSM := blank("csm")
	pom := blank("pom")
	om := blank("om")

	sink := &diagnostics.MemorySink{}
	reader := fakeReader{
		base: "http://ex/",
		triples: []RawTriple{
			trip(child, rrLogicalTable, childLT),
			trip(childLT, rrTableName, lit("orders")),
			trip(child, rrSubjectMap, childSM),
			trip(childSM, rrTemplate, lit("http://ex/order/{id}")),
			trip(child, rrPredicateObjectMap, pom),
			trip(pom, rrPredicate, iri("http://ex/customer")),
			trip(pom, rrObjectMap, om),
			trip(om, rrParentTriplesMap, iri("http://ex/MissingParent")),
		},
	}

	doc, err := Parse("mapping.ttl", reader, sink)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	childTM, _ := doc.TriplesMapByID("http://ex/ChildMap")
	rom := childTM.PredicateObjectMaps[0].ObjectMaps[0].(*r2rml.ReferencingObjectMap)
	if rom.Parent() != nil {
		t.Errorf("expected unresolved parent, got %v", rom.Parent())
	}
	if rom.IsValid() {
		t.Errorf("unresolved ReferencingObjectMap must not be valid")
	}
	if len(sink.Lines) == 0 {
		t.Errorf("expected a diagnostic for the unresolved parent reference")
	}
}
