package api

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Finding struct {
	Id             string   `json:"id"`
	Title          string   `json:"title"`
	Metric         string   `json:"metric"`
	Ranking        string   `json:"ranking"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
	Severity       Severity `json:"severity"`
}
