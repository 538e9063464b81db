// Package rdfio adapts github.com/knakk/rdf's Turtle/N-Triples codec to
// the two collaborator interfaces the core defines: r2rmlparse.Reader
// (input side) and gen.Writer (output side). Grounded on the teacher
// pack's own rdf/ntriples decode/encode pairing
// (_examples/google-xtoproto/rdf/ntriples), generalized here to wrap a
// real third-party parser instead of the teacher's hand-rolled one, per
// spec.md §6's RDF reader/writer collaborator contracts.
package rdfio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"

	"github.com/r2rml-go/r2rml/r2rmlparse"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// Reader decodes a mapping document file into the base IRI plus flat
// triple stream r2rmlparse.Parse consumes. The serialization format is
// chosen from the file extension: ".nt" selects N-Triples, anything else
// (".ttl", no extension) selects Turtle.
type Reader struct{}

// ReadMapping implements r2rmlparse.Reader.
func (Reader) ReadMapping(path string) (string, []r2rmlparse.RawTriple, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("rdfio: opening %s: %w", path, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	baseIRI := rdfterm.FileURIFromPath(abs)

	format := rdf.FormatTTL
	if strings.EqualFold(filepath.Ext(path), ".nt") {
		format = rdf.FormatNT
	}

	dec := rdf.NewTripleDecoder(f, format)
	triples, err := dec.DecodeAll()
	if err != nil && err != io.EOF {
		return baseIRI, toRawTriples(triples), fmt.Errorf("rdfio: decoding %s: %w", path, err)
	}
	return baseIRI, toRawTriples(triples), nil
}

func toRawTriples(triples []rdf.Triple) []r2rmlparse.RawTriple {
	out := make([]r2rmlparse.RawTriple, 0, len(triples))
	for _, t := range triples {
		subj := termToNode(t.Subj)
		obj := termToNode(t.Obj)
		if subj.Kind() != rdfterm.KindIRI && subj.Kind() != rdfterm.KindBlank {
			continue // type-shape mismatch: silently dropped, per spec.md §7.
		}
		predURI, ok := t.Pred.(*rdf.URI)
		if !ok {
			continue // rr: predicates must be absolute IRIs, per spec.md §6.
		}
		out = append(out, r2rmlparse.RawTriple{Subject: subj, Predicate: predURI.URI, Object: obj})
	}
	return out
}

// termToNode converts a decoded rdf.Term (one of *rdf.URI, *rdf.Blank,
// *rdf.Literal) into our own rdfterm.Node, collapsing the library's
// interface{}-typed Literal.Value into the single lexical-string
// representation term-map evaluation and join comparisons use.
func termToNode(t rdf.Term) rdfterm.Node {
	switch v := t.(type) {
	case *rdf.URI:
		return rdfterm.NewIRI(v.URI)
	case *rdf.Blank:
		return rdfterm.NewBlank(v.ID)
	case *rdf.Literal:
		lex := fmt.Sprintf("%v", v.Value)
		switch {
		case v.Lang != "":
			return rdfterm.NewLangLiteral(lex, v.Lang)
		case v.DataType != nil && v.DataType.URI != rdf.XSDString.URI:
			return rdfterm.NewTypedLiteral(lex, v.DataType.URI)
		default:
			return rdfterm.NewLiteral(lex)
		}
	default:
		return rdfterm.Null
	}
}
