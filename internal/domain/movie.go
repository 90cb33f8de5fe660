package domain

import "time"

// Movie is a catalog entry scraped from the library's film collection.
type Movie struct {
	ID         int
	Title      string
	Director   string
	Runtime    int
	PlotShort  string
	Rating     *int
	CallNumber string
	Genres     []string

	// Available and LastCheck are nil until availability has been resolved
	// at least once. Available is only meaningful while LastCheck is inside
	// the freshness window; callers must mask it otherwise.
	Available *bool
	LastCheck *time.Time
}
