package extraction

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// linePattern splits "<label> <amount>" lines. The label must be the whole
// leading token, so 資産合計 does not match inside 流動資産合計.
var linePattern = regexp.MustCompile(`^[\s\x{3000}]*([^\s\x{3000}\d:：△▲\-,]+)[\s\x{3000}:：]*([△▲\-]?[\d,]+(?:\.\d+)?)`)

// ParseText reads keyword-labeled amounts from plain text, one item per line.
func ParseText(t domain.DocumentType, text string) map[string]any {
	labeled := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		m := linePattern.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if _, seen := labeled[m[1]]; !seen {
			labeled[m[1]] = m[2]
		}
	}
	return resolve(t, labeled)
}

type textExtractor struct {
	now Clock
}

// NewTextExtractor handles OCR output and other plain-text statements.
func NewTextExtractor(now Clock) Extractor {
	return &textExtractor{now: now}
}

func (e *textExtractor) Extract(ctx context.Context, doc Document) (domain.RawFinancialExtract, error) {
	values := ParseText(doc.Type, string(doc.Content))
	zerolog.Ctx(ctx).Debug().
		Str("file", doc.Name).
		Int("fields", len(values)).
		Msg("parsed text document")
	return newExtract(doc, domain.SourceOCR, textConfidence, e.now, values), nil
}
