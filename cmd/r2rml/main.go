// Program r2rml converts relational database rows into RDF triples
// according to a W3C R2RML mapping document. Grounded on the CLI shape of
// _examples/MacroPower-x/cmd/magicschema/main.go: a single cobra.Command
// with RunE delegating to a plain run function, SilenceUsage/SilenceErrors
// set so cobra does not double-print errors the CLI already reports.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	// Registers the modernc.org/sqlite driver under the "sqlite" name, the
	// default --db-driver value.
	_ "modernc.org/sqlite"

	"github.com/r2rml-go/r2rml/diagnostics"
	"github.com/r2rml-go/r2rml/rdfio"
	"github.com/r2rml-go/r2rml/service"
	"github.com/r2rml-go/r2rml/sqlconn"
)

// exit codes, per spec.md §6's "CLI (exit codes)" contract.
const (
	exitSuccess = 0
	exitFailure = 1
)

type config struct {
	mappingPaths []string
	dbDriver     string
	dbDSN        string
	outPath      string
	format       string
	dumpMapping  bool
	insideOut    bool
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "r2rml --mapping FILE --db-dsn DSN [flags]",
		Short:         "Generate RDF triples from a database via an R2RML mapping",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, cmd)
		},
	}
	registerFlags(rootCmd.Flags(), cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "r2rml: %v\n", err)
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}

func registerFlags(fs *pflag.FlagSet, cfg *config) {
	fs.StringSliceVar(&cfg.mappingPaths, "mapping", nil,
		"path to an R2RML mapping document, or a doublestar glob (e.g. mappings/**/*.ttl); repeatable (required)")
	fs.StringVar(&cfg.dbDriver, "db-driver", "sqlite", "database/sql driver name")
	fs.StringVar(&cfg.dbDSN, "db-dsn", "", "database/sql data source name (required unless --dump-mapping)")
	fs.StringVar(&cfg.outPath, "out", "-", "output path for generated triples, or - for stdout")
	fs.StringVar(&cfg.format, "format", "ntriples", "output format: ntriples or turtle")
	fs.BoolVar(&cfg.dumpMapping, "dump-mapping", false, "print the parsed mapping document to stderr and exit")
	fs.BoolVar(&cfg.insideOut, "inside-out", false, "validate with the inside-out rules (no logical tables, no referencing object maps) instead of the default rules")
}

func run(cfg *config, cmd *cobra.Command) error {
	if len(cfg.mappingPaths) == 0 {
		return fmt.Errorf("invalid arguments: --mapping is required")
	}
	mappingPaths, err := expandMappingGlobs(cfg.mappingPaths)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	sink := diagnostics.GlogSink{}

	if cfg.dumpMapping {
		doc, err := service.Convert(service.ConvertRequest{
			MappingPaths: mappingPaths,
			Reader:       rdfio.Reader{},
			Sink:         sink,
			InsideOut:    cfg.insideOut,
		})
		if doc != nil {
			doc.Dump(cmd.ErrOrStderr())
		}
		return err
	}

	if cfg.dbDSN == "" {
		return fmt.Errorf("invalid arguments: --db-dsn is required unless --dump-mapping is set")
	}

	format, err := parseFormat(cfg.format)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	conn, err := sqlconn.Open(cfg.dbDriver, cfg.dbDSN)
	if err != nil {
		return err // database open failure
	}
	defer conn.Close()

	out, closeOut, err := openOutput(cfg.outPath)
	if err != nil {
		return err // output open failure
	}
	defer closeOut()

	writer := rdfio.NewWriter(out, format)

	_, err = service.Convert(service.ConvertRequest{
		MappingPaths: mappingPaths,
		Reader:       rdfio.Reader{},
		Conn:         conn,
		Writer:       writer,
		Sink:         sink,
		InsideOut:    cfg.insideOut,
	})
	return err
}

// expandMappingGlobs resolves each --mapping argument: a literal path
// passes through unchanged, and anything containing a glob metacharacter
// is expanded via doublestar.Glob (supporting recursive "**" patterns),
// per SPEC_FULL.md §4.8's multi-mapping allowance. Results are returned in
// flag order, each glob's matches sorted, duplicates removed.
func expandMappingGlobs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range args {
		matches := []string{arg}
		if strings.ContainsAny(arg, "*?[") {
			var err error
			matches, err = doublestar.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("expanding --mapping glob %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("--mapping glob %q matched no files", arg)
			}
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func parseFormat(name string) (rdfio.Format, error) {
	switch strings.ToLower(name) {
	case "ntriples":
		return rdfio.NTriples, nil
	case "turtle":
		return rdfio.Turtle, nil
	default:
		return 0, fmt.Errorf("unsupported --format %q: want ntriples or turtle", name)
	}
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
