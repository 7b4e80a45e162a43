// Package events orchestrates the ingestion pipeline: paged fetches
// from the catalogue, record normalization, the branch location index,
// and the calendar/recency projections served to handlers.
package events

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/openshelf/branch-events/internal/cache"
	"github.com/openshelf/branch-events/internal/calendar"
	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/geo"
	"github.com/openshelf/branch-events/internal/metrics"
	"github.com/openshelf/branch-events/internal/normalize"
	"github.com/openshelf/branch-events/internal/opendata"
	"github.com/openshelf/branch-events/internal/recency"
)

type Options struct {
	EventsResource   string
	BranchesResource string

	PageSize   int
	MaxRecords int

	ResultCacheSize   int
	DistanceCacheSize int

	TTLCalendar time.Duration
	TTLRecent   time.Duration
}

func (o *Options) withDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = 100
	}
	if o.MaxRecords <= 0 {
		o.MaxRecords = 10000
	}
	if o.ResultCacheSize <= 0 {
		o.ResultCacheSize = 32
	}
	if o.DistanceCacheSize <= 0 {
		o.DistanceCacheSize = 512
	}
	if o.TTLCalendar == 0 {
		o.TTLCalendar = 5 * time.Minute
	}
	if o.TTLRecent == 0 {
		o.TTLRecent = time.Minute
	}
}

// snapshot is one consistent view of both datasets. Refresh builds a
// fresh one and swaps it in wholesale; there is no partial mutation.
type snapshot struct {
	events    []domain.Event
	index     *geo.Index
	truncated bool
	builtAt   time.Time
}

type Service struct {
	source PageSource
	clock  Clock
	rcache Cache // optional response cache
	opts   Options

	results   *cache.FIFO
	distances *geo.DistanceCalculator

	gen atomic.Uint64 // snapshot generation, part of every cache key

	mu   sync.RWMutex
	snap *snapshot
}

func New(source PageSource, clock Clock, rcache Cache, opts Options) *Service {
	opts.withDefaults()
	return &Service{
		source:    source,
		clock:     clock,
		rcache:    rcache,
		opts:      opts,
		results:   cache.NewFIFO(opts.ResultCacheSize),
		distances: geo.NewDistanceCalculator(cache.NewFIFO(opts.DistanceCacheSize)),
		snap:      &snapshot{index: geo.NewIndex()},
	}
}

// Refresh fetches both datasets and swaps in a new snapshot. An
// unreachable events dataset is fatal to the refresh; an unreachable
// branch dataset degrades to the static coordinate table so the map
// keeps working.
func (s *Service) Refresh(ctx context.Context) error {
	started := s.clock.Now()

	evResult, err := opendata.FetchAll(ctx, s.fetcherFor(s.opts.EventsResource), s.opts.PageSize, s.opts.MaxRecords)
	if err != nil {
		metrics.IngestFailuresTotal.WithLabelValues("events").Inc()
		return err
	}
	metrics.IngestRecordsTotal.WithLabelValues("events").Add(float64(len(evResult.Records)))

	evs := make([]domain.Event, 0, len(evResult.Records))
	for _, raw := range evResult.Records {
		evs = append(evs, normalize.Normalize(raw))
	}

	var index *geo.Index
	brResult, err := opendata.FetchAll(ctx, s.fetcherFor(s.opts.BranchesResource), s.opts.PageSize, s.opts.MaxRecords)
	if err != nil {
		metrics.IngestFailuresTotal.WithLabelValues("branches").Inc()
		zlog.Warn().Err(err).Msg("branch dataset unavailable, using static coordinate table")
		index = fallbackIndex()
	} else {
		metrics.IngestRecordsTotal.WithLabelValues("branches").Add(float64(len(brResult.Records)))
		index = geo.BuildIndex(brResult.Records)
	}

	next := &snapshot{
		events:    evs,
		index:     index,
		truncated: evResult.Truncated,
		builtAt:   s.clock.Now(),
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
	s.gen.Add(1)
	s.results.Clear()

	metrics.RefreshDuration.Observe(s.clock.Now().Sub(started).Seconds())
	zlog.Info().
		Int("events", len(next.events)).
		Int("branches", index.Len()).
		Bool("truncated", next.truncated).
		Msg("snapshot refreshed")
	return nil
}

func (s *Service) fetcherFor(resourceID string) opendata.PageFetcher {
	return func(ctx context.Context, offset, limit int) (opendata.Page, error) {
		return s.source.FetchPage(ctx, resourceID, offset, limit)
	}
}

func (s *Service) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Calendar builds the month grid for the target month. displayCap is a
// presentation parameter (3 wide, 2 narrow); the grid itself never
// truncates event lists. Results are memoized in the bounded FIFO
// result cache until the next refresh.
func (s *Service) Calendar(ctx context.Context, year int, month time.Month, displayCap int) (calendar.Grid, error) {
	if year < 1900 || year > 2200 {
		return calendar.Grid{}, domain.ErrValidationMeta("invalid calendar target", map[string]string{
			"year": "out of range",
		})
	}
	if month < time.January || month > time.December {
		return calendar.Grid{}, domain.ErrValidationMeta("invalid calendar target", map[string]string{
			"month": "must be 1-12",
		})
	}
	if displayCap <= 0 {
		displayCap = calendar.DisplayCapWide
	}

	today := normalize.CivilDateFromTime(s.clock.Now())

	key := calendarKey(s.gen.Load(), year, month, displayCap, today)
	if cached, ok := s.results.Get(key); ok {
		metrics.ResultCacheHitsTotal.Inc()
		return cached.(calendar.Grid), nil
	}
	metrics.ResultCacheMissesTotal.Inc()

	grid := calendar.BuildGrid(s.current().events, year, month, today, displayCap)
	s.results.Set(key, grid)
	return grid, nil
}

// Recent selects new-or-updated events over the given day window. The
// serialized result is cached in the response cache when one is wired.
func (s *Service) Recent(ctx context.Context, days int) ([]domain.Event, error) {
	key := recentKey(s.gen.Load(), days)
	if s.rcache != nil {
		var cached []domain.Event
		found, err := s.rcache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("response cache get failed")
		} else if found {
			return cached, nil
		}
	}

	selected, err := recency.SelectRecent(s.current().events, days, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if s.rcache != nil && len(selected) > 0 {
		if err := s.rcache.Set(ctx, key, selected, s.opts.TTLRecent); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("response cache set failed")
		}
	}
	return selected, nil
}

// Branches lists indexed branches sorted by name.
func (s *Service) Branches() []*geo.Entry {
	return s.current().index.Branches()
}

// ResolveBranch binds a free-text branch name to coordinates. The false
// return means "coordinates unknown", not an error.
func (s *Service) ResolveBranch(name string) (domain.Coordinates, bool) {
	return s.current().index.Resolve(name)
}

// LookupBranch is ResolveBranch but with the full matched entry, for
// callers that need the canonical name as well.
func (s *Service) LookupBranch(name string) (*geo.Entry, bool) {
	return s.current().index.Lookup(name)
}

// BranchDistance pairs a branch with its distance from a query origin.
type BranchDistance struct {
	Branch     *geo.Entry
	DistanceKm float64
}

// Nearby returns up to limit branches sorted by distance from the
// origin. Distances go through the bounded distance cache since the map
// UI re-asks with the same origin repeatedly.
func (s *Service) Nearby(origin domain.Coordinates, limit int) []BranchDistance {
	if limit <= 0 {
		limit = 5
	}
	branches := s.current().index.Branches()
	out := make([]BranchDistance, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchDistance{
			Branch:     b,
			DistanceKm: s.distances.Distance(origin, b.Coords),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Stats describes the current snapshot for health reporting.
type Stats struct {
	Events      int
	Branches    int
	Truncated   bool
	RefreshedAt time.Time
}

func (s *Service) Stats() Stats {
	snap := s.current()
	return Stats{
		Events:      len(snap.events),
		Branches:    snap.index.Len(),
		Truncated:   snap.truncated,
		RefreshedAt: snap.builtAt,
	}
}

// fallbackIndex is the small static coordinate table substituted when
// the branch dataset is unreachable.
func fallbackIndex() *geo.Index {
	ix := geo.NewIndex()
	for _, e := range []geo.Entry{
		{Name: "North York Central Library", Coords: domain.Coordinates{Lat: 43.7687, Lng: -79.4135}},
		{Name: "Toronto Reference Library", Coords: domain.Coordinates{Lat: 43.6717, Lng: -79.3865}},
		{Name: "Fort York", Coords: domain.Coordinates{Lat: 43.6392, Lng: -79.4043}},
		{Name: "Agincourt", Coords: domain.Coordinates{Lat: 43.7853, Lng: -79.2785}},
		{Name: "Cedarbrae", Coords: domain.Coordinates{Lat: 43.7577, Lng: -79.2254}},
	} {
		ix.AddEntry(e)
	}
	return ix
}
