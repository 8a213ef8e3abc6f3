package api

type Category struct {
	Id       int    `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Level    string `json:"level"`
	ParentId *int   `json:"parentId,omitempty"`
}

type Benchmark struct {
	Category    Category           `json:"category"`
	Values      map[string]float64 `json:"values"`
	SampleSize  int                `json:"sampleSize"`
	DataYear    int                `json:"dataYear"`
	LastUpdated string             `json:"lastUpdated,omitempty"`
}

// BenchmarkInfo tells the caller which benchmark row a comparison actually used.
type BenchmarkInfo struct {
	RequestedCategoryId int      `json:"requestedCategoryId"`
	Category            Category `json:"category"`
	Fallback            bool     `json:"fallback"`
	SampleSize          int      `json:"sampleSize"`
	DataYear            int      `json:"dataYear"`
	LastUpdated         string   `json:"lastUpdated,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
