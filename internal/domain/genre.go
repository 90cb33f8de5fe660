package domain

// Genre is a film genre as stored in the catalog.
type Genre struct {
	ID    int
	Title string
}
