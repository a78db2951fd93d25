package ranking

// Seed returns the default record set served before anything has been imported
func Seed() []Record {
	return []Record{
		seed(1, "Massachusetts Institute of Technology", "United States", 100, 99.73, 100, 96.675, 99.6),
		seed(2, "Harvard University", "United States", 100, 97.88, 100, 99.9, 99.46),
		seed(3, "University of Oxford", "United Kingdom", 100, 98.16, 100, 97.7, 99.31),
		seed(4, "Stanford University", "United States", 100, 97.5, 100, 95.8, 99.2),
		seed(5, "University of Cambridge", "United Kingdom", 100, 97.2, 100, 96.5, 99.1),
	}
}

func seed(id int, name, country string, research, reputation, employment, international, total float64) Record {
	rank := id
	return Record{
		ID:            int64(id),
		Rank:          &rank,
		University:    name,
		Country:       country,
		Research:      research,
		Reputation:    reputation,
		Employment:    employment,
		International: international,
		TotalScore:    total,
		StarRating:    "★★★★★",
		Year:          2025,
	}
}
