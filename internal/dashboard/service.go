package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/lru"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

// SnapshotPublisher sends the summary of a freshly loaded snapshot downstream.
type SnapshotPublisher interface {
	Publish(ctx context.Context, summary domain.SnapshotSummary) error
}

// Options configure a Service.
type Options struct {
	Mode            Mode
	Fetch           FetchOptions
	RefreshInterval time.Duration
	ViewCacheSize   int
	// Publisher is optional.
	Publisher SnapshotPublisher
	// Clock drives the refresh ticker. Defaults to the real clock.
	Clock clockwork.Clock
}

// View is the derived presentation state for one query.
type View struct {
	Loading           bool                `json:"loading"`
	Error             string              `json:"error,omitempty"`
	Digest            string              `json:"digest"`
	FetchedAt         time.Time           `json:"fetched_at"`
	Truncated         bool                `json:"truncated"`
	Query             domain.Query        `json:"query"`
	Stats             domain.Stats        `json:"stats"`
	TypeDistribution  domain.Distribution `json:"type_distribution"`
	StateDistribution domain.Distribution `json:"state_distribution"`
	Records           []domain.Brewery    `json:"records"`
	TotalVisible      int                 `json:"total_visible"`
}

// State is the raw {records, loading, error} triple.
type State struct {
	Snapshot *domain.Snapshot
	Loading  bool
	Err      error
}

// Service owns the current snapshot and serves derived views of it. Loads
// are the only writers; views read an immutable snapshot pointer.
type Service struct {
	source    domain.RecordSource
	fetcher   *Fetcher
	mode      Mode
	refresh   time.Duration
	publisher SnapshotPublisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	loadMu sync.Mutex

	mu       sync.RWMutex
	snapshot *domain.Snapshot
	loading  bool
	err      error

	attempted atomic.Bool
	views     *lru.Cache[View]
}

// New creates a Service. The initial state is loading with no records,
// matching a view that has mounted but not yet received data.
func New(source domain.RecordSource, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	if opts.ViewCacheSize < 1 {
		opts.ViewCacheSize = 256
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Service{
		source:    source,
		fetcher:   NewFetcher(source, opts.Fetch, logger, metrics),
		mode:      opts.Mode,
		refresh:   opts.RefreshInterval,
		publisher: opts.Publisher,
		clock:     opts.Clock,
		logger:    logger,
		metrics:   metrics,
		snapshot:  domain.NewSnapshot(nil, 0, false),
		loading:   true,
		views:     lru.New[View](opts.ViewCacheSize),
	}
}

// Load fetches a fresh snapshot. A failed load leaves an empty snapshot and
// records the error so it stays distinguishable from an empty source.
// Concurrent calls are serialized.
func (s *Service) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.metrics.Loading.Set(1)
	defer s.metrics.Loading.Set(0)

	start := time.Now()
	res, err := s.fetcher.Fetch(ctx, s.mode)
	s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	s.attempted.Store(true)

	if err != nil {
		s.metrics.LoadErrors.Inc()
		s.metrics.RecordsLoaded.Set(0)
		s.logger.Error("load failed", "error", err, "mode", s.mode)
		s.setState(domain.NewSnapshot(nil, 0, false), err)
		return err
	}

	snap := domain.NewSnapshot(res.Records, res.Pages, res.Truncated)
	s.setState(snap, nil)
	s.metrics.RecordsLoaded.Set(float64(len(snap.Records)))
	s.logger.Info("snapshot loaded",
		"records", len(snap.Records),
		"pages", snap.Pages,
		"truncated", snap.Truncated,
		"digest", snap.Digest,
		"duration", time.Since(start),
	)

	s.publish(ctx, snap)
	return nil
}

func (s *Service) setState(snap *domain.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
	s.loading = false
	s.err = err
}

func (s *Service) publish(ctx context.Context, snap *domain.Snapshot) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, snap.Summarize()); err != nil {
		s.logger.Warn("snapshot publish failed", "error", err, "digest", snap.Digest)
		return
	}
	s.metrics.SnapshotsPublished.Inc()
}

// Run loads once, then reloads every RefreshInterval (if positive) until
// the context is cancelled. Load failures are kept in state, not returned.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("dashboard service started", "mode", s.mode, "refresh_interval", s.refresh)
	_ = s.Load(ctx)

	if s.refresh <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := s.clock.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("dashboard service stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			_ = s.Load(ctx)
		}
	}
}

// State returns the current {snapshot, loading, error} triple.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Snapshot: s.snapshot, Loading: s.loading, Err: s.err}
}

// View derives stats, distributions and visible records for q. Derived data
// is memoized per snapshot digest and query.
func (s *Service) View(q domain.Query) View {
	st := s.State()
	key := st.Snapshot.Digest + "|" + q.Type + "|" + q.Search

	v, ok := s.views.Get(key)
	if ok {
		s.metrics.ViewCache.WithLabelValues("hit").Inc()
	} else {
		s.metrics.ViewCache.WithLabelValues("miss").Inc()
		v = buildView(st.Snapshot, q)
		s.views.Put(key, v)
	}

	v.Loading = st.Loading
	if st.Err != nil {
		v.Error = st.Err.Error()
	}
	return v
}

func buildView(snap *domain.Snapshot, q domain.Query) View {
	agg := domain.Aggregate(snap.Records)
	visible := domain.Filter(snap.Records, q)
	return View{
		Digest:            snap.Digest,
		FetchedAt:         snap.FetchedAt,
		Truncated:         snap.Truncated,
		Query:             q,
		Stats:             agg.Stats,
		TypeDistribution:  agg.TypeDistribution,
		StateDistribution: agg.StateDistribution,
		Records:           visible,
		TotalVisible:      len(visible),
	}
}

// Charts returns the chart datasets for the current snapshot.
func (s *Service) Charts() domain.ChartSet {
	v := s.View(domain.Query{})
	return domain.BuildCharts(domain.Aggregation{
		Stats:             v.Stats,
		TypeDistribution:  v.TypeDistribution,
		StateDistribution: v.StateDistribution,
	})
}

// Detail looks up a single brewery through the source.
func (s *Service) Detail(ctx context.Context, id string) (domain.Brewery, error) {
	return s.source.FetchByID(ctx, id)
}

// FilterOptions returns the type selector enumeration.
func (s *Service) FilterOptions() []domain.FilterOption {
	return domain.FilterOptions()
}

// CheckReadiness returns nil once a load attempt has completed.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.attempted.Load() {
		return errors.New("no snapshot load has completed yet")
	}
	return nil
}
