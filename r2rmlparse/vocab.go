package r2rmlparse

// R2RML vocabulary IRIs, per spec.md §3/§4.1. Grounded on
// _examples/original_source/include/r2rml/Vocabulary.h, which holds the
// same constant strings the original parser compares predicate IRIs
// against.
const (
	rrNamespace = "http://www.w3.org/ns/r2rml#"

	rrSubjectMap         = rrNamespace + "subjectMap"
	rrSubject            = rrNamespace + "subject"
	rrPredicateObjectMap = rrNamespace + "predicateObjectMap"
	rrPredicate          = rrNamespace + "predicate"
	rrPredicateMap       = rrNamespace + "predicateMap"
	rrObject             = rrNamespace + "object"
	rrObjectMap          = rrNamespace + "objectMap"
	rrGraph              = rrNamespace + "graph"
	rrGraphMap           = rrNamespace + "graphMap"
	rrClass              = rrNamespace + "class"
	rrTermType           = rrNamespace + "termType"
	rrColumn             = rrNamespace + "column"
	rrTemplate           = rrNamespace + "template"
	rrConstant           = rrNamespace + "constant"
	rrDatatype           = rrNamespace + "datatype"
	rrLanguage           = rrNamespace + "language"
	rrLogicalTable       = rrNamespace + "logicalTable"
	rrTableName          = rrNamespace + "tableName"
	rrSQLQuery           = rrNamespace + "sqlQuery"
	rrSQLVersion         = rrNamespace + "sqlVersion"
	rrParentTriplesMap   = rrNamespace + "parentTriplesMap"
	rrJoinCondition      = rrNamespace + "joinCondition"
	rrChild              = rrNamespace + "child"
	rrParent             = rrNamespace + "parent"

	rrIRI       = rrNamespace + "IRI"
	rrBlankNode = rrNamespace + "BlankNode"
	rrLiteral   = rrNamespace + "Literal"

	rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// predicatesIdentifyingTriplesMap lists the predicates whose presence on a
// subject is sufficient to promote it to a candidate TriplesMap during
// Phase 2, per spec.md §4.1's "isTriplesMap" test (mirroring
// R2RMLParser.cpp's own subject-classification pass: a subject with a
// logical table, a subject map, a predicate-object map, or the rr:subject
// shortcut is a triples map, everything else is an auxiliary blank node
// consumed while building one).
var predicatesIdentifyingTriplesMap = []string{rrLogicalTable, rrSubjectMap, rrPredicateObjectMap, rrSubject}
