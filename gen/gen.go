// Package gen implements the triple generation pipeline of spec.md §4.5:
// the driver that iterates a mapping document's triples maps in document
// order, opens each one's row cursor, computes subject terms, emits class
// assertions, and walks each predicate-object map emitting direct or
// joined (referencing object map) triples.
//
// Grounded on
// _examples/original_source/src/r2rml/{TriplesMap,PredicateObjectMap}.cpp:
// TriplesMap::generateTriples and PredicateObjectMap::processRow are
// merged here into a single Generate driver, since Go has no natural
// equivalent of the original's per-class double-dispatch split across two
// translation units.
package gen

import (
	"fmt"

	"github.com/r2rml-go/r2rml/dbrow"
	"github.com/r2rml-go/r2rml/diagnostics"
	"github.com/r2rml-go/r2rml/r2rml"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// rdfType is the predicate used for class-assertion triples, per spec.md
// §4.5.
const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// Writer is the RDF writer collaborator of spec.md §6: it receives one
// already-computed statement at a time and owns its output sink. Finish
// flushes any buffered state (e.g. closing N-Triples output or writing a
// Turtle document's trailing newline). Generate calls it once, after the
// last WriteStatement call, when generation succeeds; when Generate returns
// an error, Finish is not called.
type Writer interface {
	WriteStatement(subject, predicate, object rdfterm.Node) error
	Finish() error
}

// Generate runs the pipeline described in spec.md §4.5 against doc,
// reading rows through conn and writing statements to w. Triples maps
// that fail IsValid are skipped, per spec.md §4.5 step 1. sink receives one
// line for each skipped triples map and one line per generated triples map
// naming the SQL its logical table executed (SPEC_FULL.md §4.9's recovered
// effectiveSqlQuery diagnostic). Null-term suppressions are not reported,
// and driver errors are returned directly.
func Generate(doc *r2rml.Document, conn dbrow.Conn, w Writer, sink diagnostics.Sink) error {
	if sink == nil {
		sink = diagnostics.Discard{}
	}
	for _, tm := range doc.TriplesMaps {
		if !tm.IsValid() {
			sink.Printf("skipping invalid triples map <%s>", tm.ID)
			continue
		}
		if err := generateTriplesMap(tm, conn, w, doc.Env, sink); err != nil {
			return fmt.Errorf("gen: triples map <%s>: %w", tm.ID, err)
		}
	}
	return w.Finish()
}

func generateTriplesMap(tm *r2rml.TriplesMap, conn dbrow.Conn, w Writer, env *rdfterm.NamespaceEnv, sink diagnostics.Sink) error {
	cursor, err := tm.LogicalTable.GetRows(conn)
	if err != nil {
		return fmt.Errorf("opening row cursor: %w", err)
	}
	defer cursor.Close()

	sink.Printf("triples map <%s>: executing %q", tm.ID, tm.LogicalTable.EffectiveSQLQuery())

	for cursor.Advance() {
		row := cursor.Current()
		if err := generateRow(tm, row, conn, w, env); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func generateRow(tm *r2rml.TriplesMap, row *dbrow.Row, conn dbrow.Conn, w Writer, env *rdfterm.NamespaceEnv) error {
	subject := tm.SubjectMap.Evaluate(row, env)
	if subject.IsNull() {
		return nil // null subject skips the whole row, per spec.md §4.5 step 3a.
	}

	for _, classIRI := range tm.SubjectMap.ClassIRIs {
		if err := w.WriteStatement(subject, rdfterm.NewIRI(rdfType), rdfterm.NewIRI(classIRI)); err != nil {
			return fmt.Errorf("writing class assertion: %w", err)
		}
	}

	for _, pom := range tm.PredicateObjectMaps {
		if err := generatePOM(pom, subject, row, conn, w, env); err != nil {
			return err
		}
	}
	return nil
}

func generatePOM(pom *r2rml.PredicateObjectMap, subject rdfterm.Node, row *dbrow.Row, conn dbrow.Conn, w Writer, env *rdfterm.NamespaceEnv) error {
	for _, predMap := range pom.PredicateMaps {
		predicate := predMap.Evaluate(row, env)
		if predicate.IsNull() {
			continue
		}
		for _, objMap := range pom.ObjectMaps {
			if rom, isROM := objMap.(*r2rml.ReferencingObjectMap); isROM {
				if err := generateJoined(rom, subject, predicate, row, conn, w, env); err != nil {
					return err
				}
				continue
			}
			object := objMap.Evaluate(row, env)
			if object.IsNull() {
				continue
			}
			if err := w.WriteStatement(subject, predicate, object); err != nil {
				return fmt.Errorf("writing statement: %w", err)
			}
		}
	}
	return nil
}

func generateJoined(rom *r2rml.ReferencingObjectMap, subject, predicate rdfterm.Node, childRow *dbrow.Row, conn dbrow.Conn, w Writer, env *rdfterm.NamespaceEnv) error {
	parentCursor, err := rom.GetJoinedRows(conn, childRow)
	if err != nil {
		return fmt.Errorf("opening joined-rows cursor: %w", err)
	}
	defer parentCursor.Close()

	for parentCursor.Advance() {
		parentRow := parentCursor.Current()
		object := rom.EvaluateJoined(parentRow, env)
		if object.IsNull() {
			continue
		}
		if err := w.WriteStatement(subject, predicate, object); err != nil {
			return fmt.Errorf("writing joined statement: %w", err)
		}
	}
	return parentCursor.Err()
}
