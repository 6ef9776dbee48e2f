// Package reportdoc assembles multi-page DOCX reports from a single-page
// template. The template's first body block is the page pattern: it is
// cloned once per report entry, its {{HEADER}} and {{DESCRIPTION}} tokens
// are substituted, and its image placeholder is rewired to a freshly
// embedded copy of the entry's image.
//
// Basic Usage:
//
//	entries := []reportdoc.Entry{
//	    {Header: "Site A", Description: "North gate", ImagePath: "a.png"},
//	    {Header: "Site B", Description: "South gate", ImagePath: "b.png"},
//	}
//
//	gen := reportdoc.NewGenerator()
//	if err := gen.Generate("template.docx", "report.docx", entries); err != nil {
//	    if idx := reportdoc.EntryIndex(err); idx >= 0 {
//	        log.Fatalf("entry %d failed: %v", idx, err)
//	    }
//	    log.Fatal(err)
//	}
//
// Template requirements: the document body's first block must contain text
// nodes whose entire content is {{HEADER}} and {{DESCRIPTION}} (exact,
// case-sensitive match) and exactly one embedded image.
package reportdoc

import "go.uber.org/zap"

// Entry is one report page: a header, a description, and the path of an
// already-rendered image to embed. Entries are read-only to the engine.
type Entry struct {
	Header      string
	Description string
	ImagePath   string
}

// Generator drives document assembly. The zero value is usable; use the
// options to direct scratch space and logging.
type Generator struct {
	workDir string
	logger  *zap.Logger
}

// Option represents a configuration option for the generator.
type Option func(*Generator)

// WithWorkDir returns an option that sets the parent directory for the
// per-call working trees. Callers running generations concurrently should
// give each generator its own directory. Defaults to the system temp
// directory.
func WithWorkDir(dir string) Option {
	return func(g *Generator) {
		g.workDir = dir
	}
}

// WithLogger returns an option that sets the logger. Defaults to a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator with the specified options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate assembles a report using the default generator configuration.
func Generate(templatePath, outputPath string, entries []Entry) error {
	return NewGenerator().Generate(templatePath, outputPath, entries)
}
