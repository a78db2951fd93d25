// Package ranking holds the canonical university record and the read path over it:
// filter, sort and paginate over any record Source, optionally behind a TTL cache
package ranking

import "unirank/internal/core/normalize"

// Record is one ranked institution in one ranking year
type Record struct {
	ID            int64   `json:"id"`
	Rank          *int    `json:"rank"`
	University    string  `json:"university"`
	Country       string  `json:"country"`
	Research      float64 `json:"research"`
	Reputation    float64 `json:"reputation"`
	Employment    float64 `json:"employment"`
	International float64 `json:"international"`
	TotalScore    float64 `json:"total_score"`
	StarRating    string  `json:"star_rating"`
	Year          int     `json:"year"`
}

// FromDraft builds the record a draft becomes once the store assigns id
func FromDraft(id int64, d normalize.Draft) Record {
	rank := d.Rank
	return Record{
		ID:            id,
		Rank:          &rank,
		University:    d.University,
		Country:       d.Country,
		Research:      d.Research,
		Reputation:    d.Reputation,
		Employment:    d.Employment,
		International: d.International,
		TotalScore:    d.TotalScore,
		StarRating:    d.StarRating,
		Year:          d.Year,
	}
}

// Pagination describes the slice a PageResult carries
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PageResult is one page of the filtered, sorted listing
type PageResult struct {
	Universities []Record   `json:"universities"`
	Pagination   Pagination `json:"pagination"`
}
