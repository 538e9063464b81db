// Package sqlconn adapts database/sql to the dbrow.Conn/dbrow.Cursor
// contract package r2rml and package gen depend on, so the core never
// imports database/sql or any driver directly. Grounded on the teacher
// pack's csvcoder row-reading style
// (_examples/google-xtoproto/csvcoder/csvcoder.go), generalized from CSV
// rows to a live database/sql.Rows cursor.
package sqlconn

import (
	"database/sql"
	"fmt"

	"github.com/r2rml-go/r2rml/dbrow"
)

// Conn wraps a *sql.DB as a dbrow.Conn. The zero value is not usable; use
// Open or New.
type Conn struct {
	db *sql.DB
}

// Open opens a database/sql connection with the given driver name and data
// source name (SPEC_FULL.md §6's --db-driver/--db-dsn flags) and pings it
// to surface connection failures immediately rather than on first query.
func Open(driverName, dsn string) (*Conn, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlconn: opening %s: %w", driverName, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlconn: connecting to %s: %w", driverName, err)
	}
	return &Conn{db: db}, nil
}

// New wraps an already-open *sql.DB, e.g. one configured with custom pool
// settings by the embedder.
func New(db *sql.DB) *Conn {
	return &Conn{db: db}
}

// Close closes the underlying *sql.DB.
func (c *Conn) Close() error { return c.db.Close() }

// Execute implements dbrow.Conn: it runs query and wraps the resulting
// *sql.Rows as a dbrow.Cursor, reading column names once up front so every
// row can be folded to upper-case ASCII per spec.md §6.
func (c *Conn) Execute(query string) (dbrow.Cursor, error) {
	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("sqlconn: executing %q: %w", query, err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("sqlconn: reading columns for %q: %w", query, err)
	}
	return &cursor{rows: rows, columns: cols}, nil
}

// cursor adapts *sql.Rows to dbrow.Cursor's two-phase Advance/Current
// contract, scanning each row into a generic []interface{} buffer and
// converting driver values into dbrow.Value via sqlValueToDBRowValue.
type cursor struct {
	rows    *sql.Rows
	columns []string
	current *dbrow.Row
	err     error
}

// Advance implements dbrow.Cursor.
func (c *cursor) Advance() bool {
	if c.err != nil || !c.rows.Next() {
		c.current = nil
		if err := c.rows.Err(); err != nil {
			c.err = err
		}
		return false
	}
	raw := make([]interface{}, len(c.columns))
	ptrs := make([]interface{}, len(c.columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		c.err = fmt.Errorf("sqlconn: scanning row: %w", err)
		c.current = nil
		return false
	}
	values := make([]dbrow.Value, len(raw))
	for i, v := range raw {
		values[i] = sqlValueToDBRowValue(v)
	}
	c.current = dbrow.NewRow(c.columns, values)
	return true
}

// Current implements dbrow.Cursor.
func (c *cursor) Current() *dbrow.Row { return c.current }

// Err implements dbrow.Cursor.
func (c *cursor) Err() error { return c.err }

// Close implements dbrow.Cursor.
func (c *cursor) Close() error { return c.rows.Close() }

// sqlValueToDBRowValue converts a database/sql driver value (int64,
// float64, bool, string, []byte, nil, or a more exotic driver-specific
// type) into the smallest dbrow.Value variant that represents it
// losslessly; anything unrecognised falls back to its fmt string form,
// per dbrow.Value's documented String()-always-defined contract.
func sqlValueToDBRowValue(v interface{}) dbrow.Value {
	switch t := v.(type) {
	case nil:
		return dbrow.Null
	case int64:
		return dbrow.NewInteger(t)
	case float64:
		return dbrow.NewDouble(t)
	case bool:
		return dbrow.NewBoolean(t)
	case []byte:
		return dbrow.NewString(string(t))
	case string:
		return dbrow.NewString(t)
	default:
		return dbrow.NewString(fmt.Sprintf("%v", t))
	}
}
