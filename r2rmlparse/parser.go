package r2rmlparse

import (
	"fmt"

	"github.com/r2rml-go/r2rml/dbrow"
	"github.com/r2rml-go/r2rml/diagnostics"
	"github.com/r2rml-go/r2rml/r2rml"
	"github.com/r2rml-go/r2rml/rdfterm"
)

// Parse runs all three phases of spec.md §4.1 against the mapping document
// at path: Phase 1 reads it into a flat triple stream and indexes it by
// subject; Phase 2 promotes every IRI subject carrying rr:logicalTable,
// rr:subjectMap, rr:predicateObjectMap, or rr:subject into a
// *r2rml.TriplesMap, building its logical table, subject
// map, and predicate-object maps; Phase 3 resolves every
// rr:parentTriplesMap reference collected along the way into a stable
// index back into the finished Document, per spec.md §9's "arena + index"
// design.
//
// sink receives one diagnostic line per recognised-but-unusable construct
// (a predicate-object map with no usable object map, an unresolved parent
// reference); Parse never aborts because of these, only because the reader
// collaborator itself failed. A nil sink is replaced with
// diagnostics.Discard.
func Parse(path string, reader Reader, sink diagnostics.Sink) (*r2rml.Document, error) {
	return ParseAll([]string{path}, reader, sink)
}

// ParseAll runs the same three phases as Parse, but over several mapping
// documents merged into a single Document: every document's Phase 1/2 runs
// independently (§5's per-file collection), and Phase 3 resolves every
// rr:parentTriplesMap reference from every file in one pass over the
// merged Document.TriplesMaps, so a referencing object map in one file may
// resolve against a triples map declared in another (SPEC_FULL.md §5's
// multi-mapping allowance). The merged Document's namespace environment is
// the base IRI of the first path in paths.
func ParseAll(paths []string, reader Reader, sink diagnostics.Sink) (*r2rml.Document, error) {
	if sink == nil {
		sink = diagnostics.Discard{}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("r2rmlparse: no mapping documents given")
	}

	var doc *r2rml.Document
	var pending []*r2rml.ReferencingObjectMap
	for _, path := range paths {
		baseIRI, raw, err := reader.ReadMapping(path)
		if err != nil {
			return nil, fmt.Errorf("r2rmlparse: reading %s: %w", path, err)
		}
		if doc == nil {
			doc = r2rml.NewDocument(rdfterm.NewNamespaceEnv(baseIRI))
		}
		p := &parser{store: newTripleStore(raw), doc: doc, sink: sink}
		p.collectTriplesMaps()
		pending = append(pending, p.pending...)
	}

	resolver := &parser{doc: doc, sink: sink, pending: pending}
	resolver.resolveParentReferences()
	return doc, nil
}

// parser holds the mutable state threaded through Phase 2/3. It is not
// exported: callers only ever see the finished Document via Parse.
type parser struct {
	store *tripleStore
	doc   *r2rml.Document
	sink  diagnostics.Sink

	// pending collects every ReferencingObjectMap built during Phase 2,
	// so Phase 3 can resolve their parent back-references once every
	// TriplesMap has been promoted (a parent may be declared after its
	// child in the source file, per spec.md §4.1 boundary behavior).
	pending []*r2rml.ReferencingObjectMap
}

// collectTriplesMaps runs Phase 2: it walks every subject in document
// order and promotes each one whose triples include rr:logicalTable,
// rr:subjectMap, rr:predicateObjectMap, or the shortcut rr:subject
// predicate, mirroring the
// original's isTriplesMap test (R2RMLParser.cpp). Blank-node subjects are
// never promoted -- a triples map's identifier is always an IRI, per
// spec.md §4.1.
func (p *parser) collectTriplesMaps() {
	for _, key := range p.store.subjects() {
		subj := p.store.node(key)
		if subj.Kind() != rdfterm.KindIRI {
			continue
		}
		if !p.store.hasAny(key, predicatesIdentifyingTriplesMap...) {
			continue
		}
		tm := &r2rml.TriplesMap{ID: subj.Value()}
		tm.LogicalTable = p.buildLogicalTable(key)
		tm.SubjectMap = p.buildSubjectMap(key)
		tm.PredicateObjectMaps = p.buildPredicateObjectMaps(key)
		p.doc.TriplesMaps = append(p.doc.TriplesMaps, tm)
	}
}

// buildLogicalTable builds the rr:logicalTable object of subjectKey, if
// any, choosing between BaseTableOrView and R2RMLView on the presence of
// rr:tableName vs rr:sqlQuery, per spec.md §4.2.
func (p *parser) buildLogicalTable(subjectKey string) r2rml.LogicalTable {
	ltObj, ok := p.store.object(subjectKey, rrLogicalTable)
	if !ok {
		return nil
	}
	ltKey := ltObj.String()
	if table, ok := p.store.object(ltKey, rrTableName); ok {
		return &r2rml.BaseTableOrView{TableName: table.Value()}
	}
	if query, ok := p.store.object(ltKey, rrSQLQuery); ok {
		view := &r2rml.R2RMLView{SQLQuery: query.Value()}
		if version, ok := p.store.object(ltKey, rrSQLVersion); ok {
			view.SQLVersion = version.Value()
		}
		return view
	}
	p.sink.Printf("logical table %s has neither rr:tableName nor rr:sqlQuery", ltKey)
	return nil
}

// buildSubjectMap builds the rr:subjectMap object of subjectKey (or
// synthesizes a single-field one from the rr:subject shortcut), reading
// rr:class assertions and rr:graphMap references alongside the inner value
// map, per spec.md §3/§4.3.
func (p *parser) buildSubjectMap(subjectKey string) *r2rml.SubjectMap {
	if subj, ok := p.store.object(subjectKey, rrSubject); ok {
		// rr:subject is the shorthand for a subjectMap with only a
		// constant-valued rr:template-free IRI, per spec.md §4.3.
		return &r2rml.SubjectMap{Value: &r2rml.ConstantTermMap{IRI: subj.Value()}}
	}
	smObj, ok := p.store.object(subjectKey, rrSubjectMap)
	if !ok {
		return nil
	}
	smKey := smObj.String()
	sm := &r2rml.SubjectMap{Value: p.buildTermMap(smKey, r2rml.TermTypeIRI)}
	for _, c := range p.store.objects(smKey, rrClass) {
		if c.Kind() != rdfterm.KindIRI {
			continue
		}
		sm.ClassIRIs = append(sm.ClassIRIs, c.Value())
	}
	for _, g := range p.store.objects(smKey, rrGraphMap) {
		sm.GraphMaps = append(sm.GraphMaps, g.String())
	}
	return sm
}

// buildPredicateObjectMaps builds every rr:predicateObjectMap object of
// subjectKey, each expanding into one PredicateObjectMap per spec.md §3.
func (p *parser) buildPredicateObjectMaps(subjectKey string) []*r2rml.PredicateObjectMap {
	var poms []*r2rml.PredicateObjectMap
	for _, pomObj := range p.store.objects(subjectKey, rrPredicateObjectMap) {
		pomKey := pomObj.String()
		pom := &r2rml.PredicateObjectMap{}

		for _, p0 := range p.store.objects(pomKey, rrPredicate) {
			if p0.Kind() != rdfterm.KindIRI {
				continue
			}
			pom.PredicateMaps = append(pom.PredicateMaps, &r2rml.ConstantTermMap{IRI: p0.Value()})
		}
		for _, pmObj := range p.store.objects(pomKey, rrPredicateMap) {
			pom.PredicateMaps = append(pom.PredicateMaps, p.buildTermMap(pmObj.String(), r2rml.TermTypeIRI))
		}

		for _, o := range p.store.objects(pomKey, rrObject) {
			if tm := p.constantObjectTermMap(o); tm != nil {
				pom.ObjectMaps = append(pom.ObjectMaps, tm)
			}
		}
		for _, omObj := range p.store.objects(pomKey, rrObjectMap) {
			omKey := omObj.String()
			if parentObj, ok := p.store.object(omKey, rrParentTriplesMap); ok {
				pom.ObjectMaps = append(pom.ObjectMaps, p.buildReferencingObjectMap(omKey, parentObj.Value()))
				continue
			}
			pom.ObjectMaps = append(pom.ObjectMaps, p.buildTermMap(omKey, r2rml.TermTypeLiteral))
		}

		for _, g := range p.store.objects(pomKey, rrGraphMap) {
			pom.GraphMaps = append(pom.GraphMaps, g.String())
		}

		if len(pom.PredicateMaps) == 0 || len(pom.ObjectMaps) == 0 {
			p.sink.Printf("predicate-object map %s missing a predicate or object map", pomKey)
			continue
		}
		poms = append(poms, pom)
	}
	return poms
}

// constantObjectTermMap wraps the rr:object shortcut value. spec.md §4.1/§6
// restrict this shortcut to URI-typed objects only; a literal value is
// silently dropped (nil), per §7's type-shape-mismatch contract.
func (p *parser) constantObjectTermMap(node rdfterm.Node) r2rml.TermMap {
	if node.Kind() != rdfterm.KindIRI {
		return nil
	}
	return &r2rml.ConstantTermMap{IRI: node.Value()}
}

// buildTermMap builds the generic value-producing component shared by
// subject maps, predicate maps, and (non-referencing) object maps:
// rr:template, rr:column, and rr:constant are tried in that priority
// order, matching the original's dispatch in
// R2RMLParser.cpp::buildTermMap. defaultTermType is used when no explicit
// rr:termType triple is present, per spec.md §4.3's per-position defaults.
func (p *parser) buildTermMap(subjectKey string, defaultTermType r2rml.TermType) r2rml.TermMap {
	termType := defaultTermType
	if tt, ok := p.store.object(subjectKey, rrTermType); ok {
		switch tt.Value() {
		case rrIRI:
			termType = r2rml.TermTypeIRI
		case rrBlankNode:
			termType = r2rml.TermTypeBlankNode
		case rrLiteral:
			termType = r2rml.TermTypeLiteral
		}
	}
	datatype := ""
	if dt, ok := p.store.object(subjectKey, rrDatatype); ok {
		datatype = dt.Value()
	}
	lang := ""
	if l, ok := p.store.object(subjectKey, rrLanguage); ok {
		lang = l.Value()
	}

	if tmpl, ok := p.store.object(subjectKey, rrTemplate); ok {
		return &r2rml.TemplateTermMap{Template: tmpl.Value(), TermType: termType, Datatype: datatype, Lang: lang}
	}
	if col, ok := p.store.object(subjectKey, rrColumn); ok {
		return &r2rml.ColumnTermMap{ColumnName: col.Value(), TermType: termType, Datatype: datatype, Lang: lang}
	}
	if c, ok := p.store.object(subjectKey, rrConstant); ok {
		if c.Kind() == rdfterm.KindLiteral {
			return &constantLiteralTermMap{node: c}
		}
		return &r2rml.ConstantTermMap{IRI: c.Value()}
	}

	p.sink.Printf("term map %s has no rr:template, rr:column, or rr:constant", subjectKey)
	return nil
}

// buildReferencingObjectMap builds a ReferencingObjectMap from an object
// map subject known to carry rr:parentTriplesMap, per spec.md §3/§4.4. The
// parent back-reference stays unresolved (parentID only) until Phase 3.
func (p *parser) buildReferencingObjectMap(objectMapKey, parentID string) *r2rml.ReferencingObjectMap {
	rom := r2rml.NewReferencingObjectMap(parentID)
	for _, jcObj := range p.store.objects(objectMapKey, rrJoinCondition) {
		jcKey := jcObj.String()
		jc := r2rml.JoinCondition{}
		if child, ok := p.store.object(jcKey, rrChild); ok {
			jc.ChildColumn = child.Value()
		}
		if parent, ok := p.store.object(jcKey, rrParent); ok {
			jc.ParentColumn = parent.Value()
		}
		rom.JoinConditions = append(rom.JoinConditions, jc)
	}
	p.pending = append(p.pending, rom)
	return rom
}

// resolveParentReferences runs Phase 3: every ReferencingObjectMap
// collected during Phase 2 looks up its declared parent by IRI among the
// now-complete Document.TriplesMaps and installs the resolved index, per
// spec.md §4.1/§9. A parent that cannot be found is left unresolved
// (ReferencingObjectMap.IsValid then reports false, per spec.md §8) and
// reported to the diagnostic sink.
func (p *parser) resolveParentReferences() {
	for _, rom := range p.pending {
		parent, index := p.doc.TriplesMapByID(rom.ParentID())
		if parent == nil {
			p.sink.Printf("referencing object map: parent triples map <%s> not found", rom.ParentID())
			continue
		}
		rom.ResolveParent(p.doc, index)
	}
}

// constantLiteralTermMap is a TermMap that always emits the same literal
// node, used for a literal rr:constant value (a literal rr:object value is
// dropped instead, see constantObjectTermMap), whose
// datatype/language were already decoded by the reader collaborator
// (package rdfio) rather than by separate rr:datatype/rr:language
// triples. Grounded on the same rr:constant shortcut handling as
// R2RMLParser.cpp, generalized to literals since the teacher's term-map
// variants (ConstantTermMap) only ever hold an IRI.
type constantLiteralTermMap struct {
	node rdfterm.Node
}

func (m *constantLiteralTermMap) Evaluate(*dbrow.Row, *rdfterm.NamespaceEnv) rdfterm.Node {
	return m.node
}

func (m *constantLiteralTermMap) IsValid() bool { return !m.node.IsNull() }
