package extraction

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

var ErrUnsupportedDocument = errors.New("unsupported document")

// Document is one uploaded file awaiting extraction.
type Document struct {
	Name      string
	Type      domain.DocumentType
	Content   []byte
	CompanyID string
	Period    string
}

// Extractor turns a document into a raw extract for the normalizer.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error)
}

const (
	textConfidence  = 0.7
	sheetConfidence = 0.9
)

// Clock returns the extraction timestamp.
type Clock func() time.Time

func newExtract(doc Document, source domain.SourceKind, confidence float64, now Clock, values map[string]any) domain.RawFinancialExtract {
	docType := doc.Type
	if docType == "" {
		docType = domain.DocumentOther
	}
	return domain.RawFinancialExtract{
		ID:           uuid.NewString(),
		CompanyID:    doc.CompanyID,
		Period:       doc.Period,
		Source:       source,
		Confidence:   confidence,
		ExtractedAt:  now().UTC(),
		DocumentType: docType,
		FileName:     doc.Name,
		Values:       values,
	}
}

type staticExtractor struct {
	extract domain.RawFinancialExtract
}

// NewStatic always returns a copy of the given extract, stamped with the document's
// company, period and name. It backs fixtures and manual entry.
func NewStatic(extract domain.RawFinancialExtract) Extractor {
	return &staticExtractor{extract: extract}
}

func (s *staticExtractor) Extract(_ context.Context, doc Document) (domain.RawFinancialExtract, error) {
	out := s.extract
	out.Values = make(map[string]any, len(s.extract.Values))
	for k, v := range s.extract.Values {
		out.Values[k] = v
	}
	if doc.CompanyID != "" {
		out.CompanyID = doc.CompanyID
	}
	if doc.Period != "" {
		out.Period = doc.Period
	}
	if doc.Name != "" {
		out.FileName = doc.Name
	}
	return out, nil
}
