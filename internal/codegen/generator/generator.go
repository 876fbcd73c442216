package generator

import (
	"fmt"
	"io"
	"log/slog"

	"evgen/internal/codegen/generator/gosrc"
	"evgen/internal/codegen/generator/rust"
	"evgen/internal/codegen/meta"
	"evgen/internal/codegen/scanner"
)

// Backend serializes the metadata for one target language.
type Backend func(logger *slog.Logger, w io.Writer, md *meta.Metadata) error

var backends = map[string]Backend{
	"rust": rust.Generate,
	"go":   gosrc.Generate,
}

// Generator orchestrates binding generation for one target language.
type Generator struct {
	lang   string
	logger *slog.Logger
}

func New(lang string, logger *slog.Logger) *Generator {
	return &Generator{
		lang:   lang,
		logger: logger,
	}
}

// Run builds the declaration metadata from the scanned tables once and hands
// it to the language-specific backend.
func (g *Generator) Run(w io.Writer, t *scanner.Tables) error {
	backend, ok := backends[g.lang]
	if !ok {
		var supported []string
		for k := range backends {
			supported = append(supported, k)
		}
		return fmt.Errorf("unsupported language '%s' (supported: %v)", g.lang, supported)
	}

	metadata := meta.Build(t)
	g.logger.Info("Generating bindings", "language", g.lang, "enums", len(metadata.Enums))

	if err := backend(g.logger, w, metadata); err != nil {
		return fmt.Errorf("generate %s bindings: %w", g.lang, err)
	}
	return nil
}
