package domain

// Scope limits what a load replaces; the zero Scope only appends
type Scope struct {
	Year *int
}

// YearScope replaces the cohort of year
func YearScope(year int) Scope { return Scope{Year: &year} }

// Summary reports the outcome of one load
type Summary struct {
	SuccessCount int    `json:"successCount" example:"3"`
	ErrorCount   int    `json:"errorCount" example:"1"`
	TotalCount   int    `json:"totalCount" example:"4"`
	BatchID      string `json:"batchId" example:"6f1c7c1e-2d7b-4a55-9a55-0f1f4bb8d3c2"`
	Deleted      int64  `json:"deleted,omitempty" example:"498"`
}
