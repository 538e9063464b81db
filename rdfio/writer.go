package rdfio

import (
	"io"

	"github.com/knakk/rdf"

	"github.com/r2rml-go/r2rml/rdfterm"
)

// Format selects the RDF writer collaborator's output serialization, per
// spec.md §6's `--format={ntriples, turtle}` CLI option.
type Format int

// Format values.
const (
	NTriples Format = iota
	Turtle
)

// Writer serializes generated triples via a github.com/knakk/rdf
// TripleEncoder, implementing the gen.Writer collaborator contract of
// spec.md §6 (a writeStatement operation plus a finish hook).
type Writer struct {
	enc *rdf.TripleEncoder
}

// NewWriter returns a Writer serializing to w in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	f := rdf.FormatTTL
	if format == NTriples {
		f = rdf.FormatNT
	}
	return &Writer{enc: rdf.NewTripleEncoder(w, f)}
}

// WriteStatement implements gen.Writer.
func (w *Writer) WriteStatement(subject, predicate, object rdfterm.Node) error {
	subj, err := nodeToTerm(subject)
	if err != nil {
		return err
	}
	pred, err := nodeToTerm(predicate)
	if err != nil {
		return err
	}
	obj, err := nodeToTerm(object)
	if err != nil {
		return err
	}
	return w.enc.Encode(rdf.Triple{Subj: subj, Pred: pred, Obj: obj})
}

// Finish implements gen.Writer.
func (w *Writer) Finish() error {
	return w.enc.Close()
}

// nodeToTerm converts our rdfterm.Node into the library's Term interface.
// IRIs become *rdf.URI and blank nodes (produced by term maps with
// rr:termType rr:BlankNode) become *rdf.Blank carrying the node's local id.
// A Null node converts to a nil Term.
func nodeToTerm(n rdfterm.Node) (rdf.Term, error) {
	switch n.Kind() {
	case rdfterm.KindIRI:
		return rdf.NewURIUnsafe(n.Value()), nil
	case rdfterm.KindBlank:
		return rdf.NewBlankUnsafe(n.Value()), nil
	case rdfterm.KindLiteral:
		lit := &rdf.Literal{Value: n.Value(), DataType: rdf.XSDString}
		if n.Lang() != "" {
			lit.Lang = n.Lang()
		} else if n.Datatype() != "" {
			lit.DataType = rdf.NewURIUnsafe(n.Datatype())
		}
		return lit, nil
	default:
		return nil, nil
	}
}
