package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

type pdfExtractor struct {
	now Clock
}

// NewPDFExtractor reads the text layer of a PDF and feeds it to the keyword parser.
// Scanned PDFs without a text layer yield an empty extract.
func NewPDFExtractor(now Clock) Extractor {
	return &pdfExtractor{now: now}
}

func (e *pdfExtractor) Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error) {
	text, err := pdfText(doc.Content)
	if err != nil {
		return domain.RawFinancialExtract{}, fmt.Errorf("read pdf %s: %w", doc.Name, err)
	}
	values := ParseText(doc.Type, text)

	zerolog.Ctx(ctx).Debug().
		Str("file", doc.Name).
		Int("chars", len(text)).
		Int("fields", len(values)).
		Msg("parsed pdf document")
	return newExtract(doc, domain.SourceOCR, textConfidence, e.now, values), nil
}

// pdfText recovers from panics raised by the parser on corrupt input.
func pdfText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("panic during pdf extraction: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
