package extraction

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Factory creates an Extractor for one file extension.
type Factory func() (Extractor, error)

// Registry picks an extractor by file extension.
type Registry interface {
	// Register adds a factory for an extension such as ".csv"
	Register(ext string, factory Factory) error
	// For returns the extractor registered for the document's extension
	For(name string) (Extractor, error)
	// Extract runs the matching extractor over doc
	Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error)
	// ListExtensions returns the registered extensions in sorted order
	ListExtensions() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

// NewDefaultRegistry registers the built-in text, CSV, Excel and PDF extractors.
func NewDefaultRegistry(now Clock) Registry {
	if now == nil {
		now = time.Now
	}
	r := NewRegistry()
	builtins := map[string]func(Clock) Extractor{
		".txt":  NewTextExtractor,
		".csv":  NewCSVExtractor,
		".xlsx": NewExcelExtractor,
		".xlsm": NewExcelExtractor,
		".pdf":  NewPDFExtractor,
	}
	for ext, ctor := range builtins {
		_ = r.Register(ext, func() (Extractor, error) { return ctor(now), nil })
	}
	return r
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (r *registry) Register(ext string, factory Factory) error {
	ext = normalizeExt(ext)
	if ext == "" {
		return fmt.Errorf("extension cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[ext]; exists {
		return fmt.Errorf("extension %q is already registered", ext)
	}

	r.factories[ext] = factory
	return nil
}

func (r *registry) For(name string) (Extractor, error) {
	ext := normalizeExt(filepath.Ext(name))

	r.mu.RLock()
	factory, exists := r.factories[ext]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDocument, name)
	}

	return factory()
}

func (r *registry) Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error) {
	ex, err := r.For(doc.Name)
	if err != nil {
		return domain.RawFinancialExtract{}, err
	}
	out, err := ex.Extract(ctx, doc)
	if err != nil {
		return domain.RawFinancialExtract{}, err
	}
	zerolog.Ctx(ctx).Info().
		Str("file", doc.Name).
		Str("company_id", doc.CompanyID).
		Str("period", doc.Period).
		Str("source", string(out.Source)).
		Int("fields", len(out.Values)).
		Msg("document extracted")
	return out, nil
}

func (r *registry) ListExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.factories))
	for ext := range r.factories {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
