package rdfterm

import "net/url"

// NamespaceEnv carries a document's base IRI and prefix-to-namespace
// mapping, owned by the r2rml.Document for its lifetime.
//
// The parser creates it with the base IRI the reader collaborator returns
// for the first mapping document. The reader does not pass on prefix
// declarations, so the parser never records any prefixes; expansion of
// compact IRIs (prefix:local) is handled upstream by the reader (package
// rdfio). The mapping dump prints the base; the writer collaborator does
// not receive the environment and emits no prefix declarations. The
// environment is threaded explicitly rather than held in a package-level
// global — see spec.md §9's "fallback namespace environment" design note.
type NamespaceEnv struct {
	Base     string
	Prefixes map[string]string // prefix -> namespace IRI
}

// NewNamespaceEnv returns an empty environment with the given base IRI.
func NewNamespaceEnv(base string) *NamespaceEnv {
	return &NamespaceEnv{Base: base, Prefixes: make(map[string]string)}
}

// SetPrefix records a prefix declaration.
func (e *NamespaceEnv) SetPrefix(prefix, namespace string) {
	if e.Prefixes == nil {
		e.Prefixes = make(map[string]string)
	}
	e.Prefixes[prefix] = namespace
}

// SetBase updates the base IRI, as driven by an @base / BASE declaration.
func (e *NamespaceEnv) SetBase(base string) {
	e.Base = base
}

// ResolveAgainstBase resolves a possibly-relative IRI reference against the
// environment's base IRI, using the same net/url machinery the teacher
// pack's rdf/iri.IRI.Check wraps. Absolute IRIs are returned unchanged.
func (e *NamespaceEnv) ResolveAgainstBase(ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if refURL.IsAbs() {
		return ref, nil
	}
	baseURL, err := url.Parse(e.Base)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// FileURIFromPath converts a filesystem path to a "file://" base IRI, the
// conversion the Parser performs on its input path before invoking the RDF
// reader (spec.md §4.1).
func FileURIFromPath(absPath string) string {
	u := url.URL{Scheme: "file", Path: absPath}
	return u.String()
}
