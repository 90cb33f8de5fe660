package domain

// AvailabilityRow is one cached availability record as read from the store.
// AgeSeconds is measured relative to the read, so freshness checks need no
// clock of their own.
type AvailabilityRow struct {
	CallNumber string
	Available  bool
	AgeSeconds float64
}
