package normalize

import "time"

// Row is one decoded spreadsheet row keyed by its header cells
type Row = map[string]any

// Draft is a canonical record that has not been stored yet
type Draft struct {
	Rank          int     `json:"rank"`
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

// Normalizer turns rows into drafts; it is immutable and safe for concurrent use
type Normalizer struct {
	now  func() time.Time
	year int // forced year when > 0
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithClock sets the clock used for the default year
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// New constructs a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, o := range opts {
		o(n)
	}
	return n
}

// WithYear returns a copy that stamps every draft with year y
func (n *Normalizer) WithYear(y int) *Normalizer {
	cp := *n
	cp.year = y
	return &cp
}

// Draft normalizes row; position is its 1-based place in the batch and backs a missing rank.
// It never fails: unusable values fall back to defaults
func (n *Normalizer) Draft(row Row, position int) Draft {
	d := Draft{
		University:    n.text(row, FieldUniversity),
		Country:       n.text(row, FieldCountry),
		Research:      n.score(row, FieldResearch),
		Reputation:    n.score(row, FieldReputation),
		Employment:    n.score(row, FieldEmployment),
		International: n.score(row, FieldInternational),
		TotalScore:    n.score(row, FieldTotalScore),
		StarRating:    n.text(row, FieldStarRating),
	}

	d.Rank = position
	if v, ok := Lookup(row, FieldRank); ok {
		if r, ok := LeadingInt(v); ok && r != 0 {
			d.Rank = r
		}
	}

	d.Year = n.now().Year()
	if v, ok := Lookup(row, FieldYear); ok {
		if y, ok := LeadingInt(v); ok && y != 0 {
			d.Year = y
		}
	}
	if n.year > 0 {
		d.Year = n.year
	}
	return d
}

// Batch normalizes rows in order with 1-based positions
func (n *Normalizer) Batch(rows []Row) []Draft {
	out := make([]Draft, len(rows))
	for i, r := range rows {
		out[i] = n.Draft(r, i+1)
	}
	return out
}

// Missing reports which of fields row cannot resolve
func (n *Normalizer) Missing(row Row, fields ...Field) []Field {
	var out []Field
	for _, f := range fields {
		if _, ok := Lookup(row, f); !ok {
			out = append(out, f)
		}
	}
	return out
}

func (n *Normalizer) text(row Row, f Field) string {
	v, ok := Lookup(row, f)
	if !ok {
		return ""
	}
	return Text(v)
}

func (n *Normalizer) score(row Row, f Field) float64 {
	v, ok := Lookup(row, f)
	if !ok {
		return 0
	}
	x, ok := LeadingFloat(v)
	if !ok {
		return 0
	}
	return x
}
