package normalize

import "sort"

// Field is a canonical record column name
type Field string

const (
	FieldRank          Field = "rank"
	FieldUniversity    Field = "university"
	FieldCountry       Field = "country"
	FieldResearch      Field = "research"
	FieldReputation    Field = "reputation"
	FieldEmployment    Field = "employment"
	FieldInternational Field = "international"
	FieldTotalScore    Field = "total_score"
	FieldStarRating    Field = "star_rating"
	FieldYear          Field = "year"
)

// Fields lists every canonical field in template column order
var Fields = []Field{
	FieldRank, FieldUniversity, FieldCountry, FieldResearch, FieldReputation,
	FieldEmployment, FieldInternational, FieldTotalScore, FieldStarRating, FieldYear,
}

// Required are the columns an uploaded sheet header must carry
var Required = []Field{FieldUniversity, FieldCountry, FieldTotalScore}

// aliases are tried in order after the canonical key
var aliases = map[Field][]string{
	FieldRank:          {"Rank"},
	FieldUniversity:    {"University", "Institution", "Name"},
	FieldCountry:       {"Country", "Country&Regions", "Country/Region", "Region"},
	FieldResearch:      {"Research"},
	FieldReputation:    {"Reputation"},
	FieldEmployment:    {"Employment"},
	FieldInternational: {"International"},
	FieldTotalScore:    {"Total_Score", "Total Score", "Overall", "Score"},
	FieldStarRating:    {"Star_Rating", "Star Rating", "Stars"},
	FieldYear:          {"Year"},
}

// folded holds the folded canonical key and aliases per field
var folded = func() map[Field]map[string]struct{} {
	out := make(map[Field]map[string]struct{}, len(aliases))
	for f, as := range aliases {
		set := map[string]struct{}{Key(string(f)): {}}
		for _, a := range as {
			set[Key(a)] = struct{}{}
		}
		out[f] = set
	}
	return out
}()

// Aliases returns the header spellings recognised for f, canonical key first
func Aliases(f Field) []string {
	return append([]string{string(f)}, aliases[f]...)
}

// Lookup resolves f in row: the canonical key, then the aliases in order, then any key
// whose folded form matches. Only present (non-empty, non-zero) values resolve
func Lookup(row Row, f Field) (any, bool) {
	if v, ok := row[string(f)]; ok && present(v) {
		return v, true
	}
	for _, a := range aliases[f] {
		if v, ok := row[a]; ok && present(v) {
			return v, true
		}
	}
	set := folded[f]
	if len(set) == 0 {
		return nil, false
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := set[Key(k)]; !ok {
			continue
		}
		if v := row[k]; present(v) {
			return v, true
		}
	}
	return nil, false
}

// MissingColumns reports which of fields no header name resolves to, whatever the row values
func MissingColumns(header []string, fields ...Field) []Field {
	var out []Field
	for _, f := range fields {
		found := false
		for _, h := range header {
			if _, ok := folded[f][Key(h)]; ok {
				found = true
				break
			}
		}
		if !found {
			out = append(out, f)
		}
	}
	return out
}
