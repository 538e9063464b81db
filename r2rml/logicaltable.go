package r2rml

import (
	"fmt"

	"github.com/r2rml-go/r2rml/dbrow"
)

// LogicalTable produces the row cursor a triples map iterates, per
// spec.md §4.2. Grounded on
// _examples/original_source/include/r2rml/LogicalTable.h and its two
// concrete subclasses.
type LogicalTable interface {
	// GetRows executes the table's query against conn and returns a
	// cursor over the result.
	GetRows(conn dbrow.Conn) (dbrow.Cursor, error)
	// IsValid reports whether the table's required attributes are set.
	IsValid() bool
	// EffectiveSQLQuery returns the SQL last executed by GetRows, or ""
	// if GetRows has not yet been called. Recovered diagnostic field,
	// see SPEC_FULL.md §4.9.
	EffectiveSQLQuery() string
}

// BaseTableOrView is a logical table backed by a named SQL table or view
// (rr:tableName), per spec.md §4.2.
type BaseTableOrView struct {
	TableName string

	effectiveSQL string
}

// IsValid requires a non-empty table name.
func (t *BaseTableOrView) IsValid() bool { return t.TableName != "" }

// EffectiveSQLQuery returns the SQL last executed by GetRows.
func (t *BaseTableOrView) EffectiveSQLQuery() string { return t.effectiveSQL }

// GetRows executes `SELECT * FROM "<name>"`, quoting the table name with
// ASCII double-quotes, per spec.md §4.2.
func (t *BaseTableOrView) GetRows(conn dbrow.Conn) (dbrow.Cursor, error) {
	t.effectiveSQL = fmt.Sprintf(`SELECT * FROM "%s"`, t.TableName)
	return conn.Execute(t.effectiveSQL)
}

// R2RMLView is a logical table backed by an arbitrary SQL query
// (rr:sqlQuery), per spec.md §4.2.
type R2RMLView struct {
	SQLQuery string
	// SQLVersion records an optional rr:sqlVersion annotation; recorded
	// but not interpreted, per spec.md §4.2.
	SQLVersion string

	effectiveSQL string
}

// IsValid requires a non-empty SQL query.
func (v *R2RMLView) IsValid() bool { return v.SQLQuery != "" }

// EffectiveSQLQuery returns the SQL last executed by GetRows.
func (v *R2RMLView) EffectiveSQLQuery() string { return v.effectiveSQL }

// GetRows executes the stored SQL verbatim.
func (v *R2RMLView) GetRows(conn dbrow.Conn) (dbrow.Cursor, error) {
	v.effectiveSQL = v.SQLQuery
	return conn.Execute(v.effectiveSQL)
}
