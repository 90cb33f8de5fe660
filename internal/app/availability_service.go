package app

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cowguru2000/scili-dvds/internal/clock"
	"github.com/cowguru2000/scili-dvds/internal/domain"
)

// AvailabilityRepository is the store-side view of the availability cache.
type AvailabilityRepository interface {
	// ReadAvailability returns one row per call number that already has a
	// cached record, with the record's age in seconds relative to the read.
	// Call numbers without a record are simply absent from the result.
	ReadAvailability(ctx context.Context, callNumbers []string) ([]domain.AvailabilityRow, error)
	// WriteAvailability stamps every given call number with the same
	// availability value and check time in a single batched statement.
	WriteAvailability(ctx context.Context, callNumbers []string, available bool, checkedAt time.Time) error
}

// UpstreamCatalog fetches the upstream record page for one call number.
// The returned text is opaque; availability is decided by marker matching.
type UpstreamCatalog interface {
	FetchRecordPage(ctx context.Context, callNumber string) (string, error)
}

const freshnessWindow = 30 * time.Minute

// Markers whose presence in a record page means the item can be borrowed.
const (
	markerAvailable        = "AVAILABLE"
	markerRecentlyReturned = "RECENTLY RETURNED"
)

// AvailabilityService resolves item availability through a time-bounded
// cache in the store, falling back to sequential upstream lookups, and
// refreshes the cache asynchronously after the caller has its answer.
type AvailabilityService struct {
	repo     AvailabilityRepository
	upstream UpstreamCatalog
	clock    clock.Clock
	logger   *log.Logger

	pending sync.WaitGroup
}

func NewAvailabilityService(repo AvailabilityRepository, upstream UpstreamCatalog, clk clock.Clock, logger *log.Logger) *AvailabilityService {
	if logger == nil {
		logger = log.Default()
	}
	return &AvailabilityService{
		repo:     repo,
		upstream: upstream,
		clock:    clk,
		logger:   logger,
	}
}

// CheckResult is the outcome of one resolution batch. Availability holds
// every resolved call number; NewlyResolved lists the subset answered by
// the upstream rather than the cache, which is exactly the set the cache
// write must cover.
type CheckResult struct {
	Availability  map[string]bool
	NewlyResolved []string
}

// Check resolves availability for the given raw call numbers. Input is
// sanitized first; an empty sanitized set short-circuits to an empty map
// with no store or upstream traffic.
//
// Cached values younger than the freshness window are used as-is. Every
// remaining call number is looked up against the upstream one at a time,
// in order; a lookup failure resolves that item to unavailable rather
// than aborting the batch. The only error Check returns is context
// cancellation, since every other failure degrades to "unavailable".
func (s *AvailabilityService) Check(ctx context.Context, raw []string) (CheckResult, error) {
	callNumbers := SanitizeCallNumbers(raw)
	result := CheckResult{Availability: make(map[string]bool, len(callNumbers))}
	if len(callNumbers) == 0 {
		return result, nil
	}

	rows, err := s.repo.ReadAvailability(ctx, callNumbers)
	if err != nil {
		// Treat a failed cache read as a full cache miss: availability data
		// is best-effort and the upstream can still answer everything.
		s.logger.Printf("availability cache read failed, resolving all upstream: %v", err)
		rows = nil
	}
	for _, row := range rows {
		if row.AgeSeconds < freshnessWindow.Seconds() {
			result.Availability[row.CallNumber] = row.Available
		}
	}

	// Sequential by design: each lookup completes and records its result
	// before the next is issued, so batch completion implies every call
	// number has an entry.
	for _, cn := range callNumbers {
		if _, ok := result.Availability[cn]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return CheckResult{}, err
		}
		result.Availability[cn] = s.resolveUpstream(ctx, cn)
		result.NewlyResolved = append(result.NewlyResolved, cn)
	}

	return result, nil
}

func (s *AvailabilityService) resolveUpstream(ctx context.Context, callNumber string) bool {
	body, err := s.upstream.FetchRecordPage(ctx, callNumber)
	if err != nil {
		s.logger.Printf("upstream lookup failed call_number=%s: %v", callNumber, err)
		return false
	}
	return strings.Contains(body, markerAvailable) || strings.Contains(body, markerRecentlyReturned)
}

// SaveResolved persists the upstream-resolved portion of a batch back into
// the cache, fire-and-forget. Call numbers satisfied from fresh cache are
// never rewritten. It returns immediately; callers emit their response
// first and then invoke this. Write failures are logged only.
func (s *AvailabilityService) SaveResolved(res CheckResult) {
	if len(res.NewlyResolved) == 0 {
		return
	}

	var available, unavailable []string
	for _, cn := range res.NewlyResolved {
		if res.Availability[cn] {
			available = append(available, cn)
		} else {
			unavailable = append(unavailable, cn)
		}
	}

	checkedAt := s.clock.Now()
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		// The request is already answered; use a fresh context so an early
		// client disconnect cannot cancel the cache refresh.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if len(available) > 0 {
			if err := s.repo.WriteAvailability(ctx, available, true, checkedAt); err != nil {
				s.logger.Printf("cache available write failed: %v", err)
			}
		}
		if len(unavailable) > 0 {
			if err := s.repo.WriteAvailability(ctx, unavailable, false, checkedAt); err != nil {
				s.logger.Printf("cache unavailable write failed: %v", err)
			}
		}
	}()
}

// Drain blocks until all pending cache writes have finished or the context
// expires. Used at shutdown.
func (s *AvailabilityService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
