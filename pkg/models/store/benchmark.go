package store

import "time"

// BenchmarkDataset is the on-disk shape of benchmark reference data (YAML or JSON).
type BenchmarkDataset struct {
	DefaultCode string            `yaml:"default_code" json:"default_code"`
	Categories  []CategoryRecord  `yaml:"categories" json:"categories"`
	Benchmarks  []BenchmarkRecord `yaml:"benchmarks" json:"benchmarks"`
}

type CategoryRecord struct {
	ID       int    `yaml:"id" json:"id"`
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Level    string `yaml:"level" json:"level"`
	ParentID *int   `yaml:"parent_id,omitempty" json:"parent_id,omitempty"`
}

type BenchmarkRecord struct {
	CategoryID  int                `yaml:"category_id" json:"category_id"`
	SampleSize  int                `yaml:"sample_size" json:"sample_size"`
	DataYear    int                `yaml:"data_year" json:"data_year"`
	LastUpdated string             `yaml:"last_updated" json:"last_updated"` // YYYY-MM-DD
	Values      map[string]float64 `yaml:"values" json:"values"`
}

// BenchmarkRow is one row of the industry_benchmarks table.
type BenchmarkRow struct {
	CategoryID  int
	Metric      string
	Value       float64
	SampleSize  int
	DataYear    int
	LastUpdated time.Time
}
