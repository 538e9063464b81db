package r2rml

import (
	"testing"

	"github.com/r2rml-go/r2rml/dbrow"
)

type fakeConn struct {
	lastQuery string
	rows      []*dbrow.Row
	err       error
}

func (c *fakeConn) Execute(sql string) (dbrow.Cursor, error) {
	c.lastQuery = sql
	if c.err != nil {
		return nil, c.err
	}
	return dbrow.NewSliceCursor(c.rows), nil
}

func TestBaseTableOrView(t *testing.T) {
	table := &BaseTableOrView{TableName: "people"}
	if !table.IsValid() {
		t.Errorf("BaseTableOrView with a non-empty table name must be valid")
	}
	if (&BaseTableOrView{}).IsValid() {
		t.Errorf("BaseTableOrView with an empty table name must be invalid")
	}

	conn := &fakeConn{}
	if _, err := table.GetRows(conn); err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if want := `SELECT * FROM "people"`; conn.lastQuery != want {
		t.Errorf("GetRows executed %q, want %q", conn.lastQuery, want)
	}
	if table.EffectiveSQLQuery() != conn.lastQuery {
		t.Errorf("EffectiveSQLQuery() = %q, want the query last executed", table.EffectiveSQLQuery())
	}
}

func TestR2RMLView(t *testing.T) {
	view := &R2RMLView{SQLQuery: "SELECT id, name FROM people"}
	if !view.IsValid() {
		t.Errorf("R2RMLView with a non-empty query must be valid")
	}
	if (&R2RMLView{}).IsValid() {
		t.Errorf("R2RMLView with an empty query must be invalid")
	}

	conn := &fakeConn{}
	if _, err := view.GetRows(conn); err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if conn.lastQuery != view.SQLQuery {
		t.Errorf("GetRows executed %q, want the stored query %q", conn.lastQuery, view.SQLQuery)
	}
}
