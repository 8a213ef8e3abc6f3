package adapters

import (
	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityLow:
		return api.SeverityLow
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityHigh:
		return api.SeverityHigh
	default:
		return api.SeverityLow
	}
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		Id:             f.ID,
		Title:          f.Title,
		Metric:         string(f.Metric),
		Ranking:        string(f.Ranking),
		Issue:          f.Issue,
		Recommendation: f.Recommendation,
		Severity:       MapSeverityDomainToApi(f.Severity),
	}
}
