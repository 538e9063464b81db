// Package service wires together the mapping parser, the triple
// generation pipeline, and the RDF/database collaborators into the single
// top-level Convert operation the CLI (and any embedder) drives. Grounded
// on the teacher pack's service package
// (_examples/google-xtoproto/service/service_generate_code.go), which
// plays the same orchestration role for its own pipeline (parse request →
// generate code → write files); this package keeps that shape but drops
// the grpc/protobuf request-response plumbing the teacher's gRPC front end
// required, since SPEC_FULL.md's front end is a CLI, not a service.
package service

import (
	"fmt"

	"github.com/r2rml-go/r2rml/dbrow"
	"github.com/r2rml-go/r2rml/diagnostics"
	"github.com/r2rml-go/r2rml/gen"
	"github.com/r2rml-go/r2rml/r2rml"
	"github.com/r2rml-go/r2rml/r2rmlparse"
)

// ConvertRequest bundles the inputs a single end-to-end run needs: where
// to read the mapping from, how to reach the database, and where to write
// the generated triples.
type ConvertRequest struct {
	// MappingPaths lists every mapping document to parse and merge into
	// one Document (SPEC_FULL.md §5/§4.8: the CLI expands a --mapping
	// glob into this slice before calling Convert).
	MappingPaths []string
	Reader       r2rmlparse.Reader
	Conn         dbrow.Conn
	Writer       gen.Writer
	Sink         diagnostics.Sink

	// InsideOut validates with Document.IsValidInsideOut (spec.md §4.6)
	// instead of IsValid. Only validation changes: generation still skips
	// every triples map that fails IsValid, and a triples map valid
	// inside-out has no logical table, so such a document generates no
	// triples.
	InsideOut bool
}

// Convert runs the full pipeline: parse and merge the mappings at
// req.MappingPaths,
// validate the resulting Document, then generate triples against
// req.Conn, writing them through req.Writer. It returns the parsed
// Document so callers (the CLI's --dump-mapping flag) can inspect it
// regardless of whether generation ran.
func Convert(req ConvertRequest) (*r2rml.Document, error) {
	sink := req.Sink
	if sink == nil {
		sink = diagnostics.Discard{}
	}

	doc, err := r2rmlparse.ParseAll(req.MappingPaths, req.Reader, sink)
	if err != nil {
		return nil, fmt.Errorf("service: parsing mapping: %w", err)
	}

	valid := doc.IsValid()
	if req.InsideOut {
		valid = doc.IsValidInsideOut()
	}
	if !valid {
		return doc, fmt.Errorf("service: mapping document is not valid")
	}

	if req.Writer == nil {
		return doc, nil // --dump-mapping only run: no generation requested.
	}
	if err := gen.Generate(doc, req.Conn, req.Writer, sink); err != nil {
		return doc, fmt.Errorf("service: generating triples: %w", err)
	}
	return doc, nil
}
