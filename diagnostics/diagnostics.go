// Package diagnostics implements the write-only diagnostic sink of
// spec.md §6/§7: a stream of human-readable lines reporting parse
// anomalies (unrecognised logical table node, unresolved parent triples
// map, unknown object-map shape) without aborting the parse.
//
// The glog-backed Sink follows the teacher pack's own use of
// github.com/golang/glog (_examples/google-xtoproto/csvcoder/csvcoder_cell.go
// imports it for exactly this kind of non-fatal, leveled reporting).
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/mitchellh/go-wordwrap"
)

// Sink receives one human-readable line per parse anomaly or per-row
// tracing message. Implementations must not block the caller indefinitely;
// the parser and generator are single-threaded (spec.md §5) and treat the
// sink as a synchronous write.
type Sink interface {
	Printf(format string, args ...interface{})
}

// GlogSink routes every diagnostic through glog.Warning. It has no
// verbosity levels: parse anomalies and the generator's per-query trace
// (SPEC_FULL.md §4.9's recovered effectiveSqlQuery diagnostic) are logged
// at the same warning level.
type GlogSink struct {
	// WrapWidth wraps long lines (e.g. an embedded IRI) to this column
	// width using the teacher's github.com/mitchellh/go-wordwrap. Zero
	// disables wrapping; the CLI uses the zero value.
	WrapWidth uint
}

// Printf formats and logs a diagnostic line.
func (g GlogSink) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if g.WrapWidth > 0 {
		msg = wordwrap.WrapString(msg, g.WrapWidth)
	}
	glog.Warning(msg)
}

// MemorySink accumulates diagnostic lines in memory, for tests that assert
// on the reported anomalies.
type MemorySink struct {
	Lines []string
}

// Printf records a formatted diagnostic line.
func (m *MemorySink) Printf(format string, args ...interface{}) {
	m.Lines = append(m.Lines, fmt.Sprintf(format, args...))
}

// String joins the recorded lines with newlines.
func (m *MemorySink) String() string {
	return strings.Join(m.Lines, "\n")
}

// Discard silently drops every diagnostic. Useful as a default when the
// caller does not care about anomalies (e.g. unit tests asserting only on
// the resulting object model).
type Discard struct{}

// Printf discards its arguments.
func (Discard) Printf(string, ...interface{}) {}
