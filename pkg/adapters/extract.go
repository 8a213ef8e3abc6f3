package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/models/store"
)

func MapExtractDomainToStore(ex domain.RawFinancialExtract) (store.ExtractRecord, error) {
	values, err := json.Marshal(ex.Values)
	if err != nil {
		return store.ExtractRecord{}, fmt.Errorf("marshal values of extract %s: %w", ex.ID, err)
	}
	return store.ExtractRecord{
		ID:           ex.ID,
		CompanyID:    ex.CompanyID,
		Period:       ex.Period,
		Source:       string(ex.Source),
		Confidence:   ex.Confidence,
		DocumentType: string(ex.DocumentType),
		FileName:     ex.FileName,
		Values:       values,
		ExtractedAt:  ex.ExtractedAt,
	}, nil
}

// MapExtractStoreToDomain keeps numbers as json.Number so no precision is lost
// before the normalizer coerces them.
func MapExtractStoreToDomain(r store.ExtractRecord) (domain.RawFinancialExtract, error) {
	source := domain.SourceKind(r.Source)
	if !source.Valid() {
		return domain.RawFinancialExtract{}, fmt.Errorf("extract %s: invalid source %q", r.ID, r.Source)
	}

	values := map[string]any{}
	if len(r.Values) > 0 {
		dec := json.NewDecoder(bytes.NewReader(r.Values))
		dec.UseNumber()
		if err := dec.Decode(&values); err != nil {
			return domain.RawFinancialExtract{}, fmt.Errorf("unmarshal values of extract %s: %w", r.ID, err)
		}
	}

	return domain.RawFinancialExtract{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		Period:       r.Period,
		Source:       source,
		Confidence:   r.Confidence,
		ExtractedAt:  r.ExtractedAt,
		DocumentType: domain.DocumentType(r.DocumentType),
		FileName:     r.FileName,
		Values:       values,
	}, nil
}
