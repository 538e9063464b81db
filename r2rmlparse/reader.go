// Package r2rmlparse implements the two-phase R2RML mapping parser of
// spec.md §4.1: a triple-store collect phase, an object-model build phase,
// and a late parent-triples-map resolution phase. Grounded directly on
// _examples/original_source/src/r2rml/R2RMLParser.cpp, adapted from the
// original's Serd-callback style to a slice of pre-decoded triples, since
// the RDF reader collaborator (package rdfio) decodes a whole document in
// one pass rather than emitting incremental callbacks.
package r2rmlparse

import "github.com/r2rml-go/r2rml/rdfterm"

// RawTriple is the reader collaborator's output unit: a statement with an
// IRI-or-blank subject, an IRI predicate, and an IRI/blank/literal object.
// This is the generic triple stream spec.md §4.1 says the parser consumes.
type RawTriple struct {
	Subject   rdfterm.Node // Kind is KindIRI or KindBlank
	Predicate string       // always an absolute IRI
	Object    rdfterm.Node // Kind is KindIRI, KindBlank, or KindLiteral
}

// Reader is the RDF syntax reader collaborator of spec.md §1/§4.1: it
// converts a mapping document at path into a base IRI plus a flat stream of
// already-CURIE-expanded triples. Concrete implementations (package rdfio)
// wrap a real Turtle/N-Triples decoder.
type Reader interface {
	ReadMapping(path string) (baseIRI string, triples []RawTriple, err error)
}
