package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/metrics"
	"github.com/Domenick1991/airquery/internal/query"
	"github.com/Domenick1991/airquery/internal/repository"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const view = "flights"

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Search(ctx context.Context, params SearchParams) ([]domain.Flight, error)
	Airlines(ctx context.Context) ([]string, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo    repository.FlightRepository
	cache   FlightCache
	engine  *query.Engine
	log     logger.Logger
	metrics *metrics.Metrics
}

type FlightServiceOption func(*FlightService)

func WithLogger(log logger.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = log
	}
}

func WithMetrics(m *metrics.Metrics) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = m
	}
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		repo:   repo,
		cache:  cache,
		engine: query.NewEngine(domain.FlightSchema()),
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.log.Warn("flights cache read failed", "error", err)
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("flights cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Search(ctx context.Context, params SearchParams) (result []domain.Flight, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveQuery(view, started, len(result), err) }()

	q, err := params.Query()
	if err != nil {
		return nil, err
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	result, err = query.Project(s.engine, all, domain.Flight.Record, q)
	if err != nil {
		return nil, err
	}
	s.log.Debug("flight search", "text", params.Text, "sort", params.Sort, "total", len(all), "matched", len(result))
	return result, nil
}

// Airlines lists the distinct airlines of all flights in collation order.
func (s *FlightService) Airlines(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(all))
	airlines := make([]string, 0)
	for _, f := range all {
		if f.Airline == "" {
			continue
		}
		if _, ok := seen[f.Airline]; ok {
			continue
		}
		seen[f.Airline] = struct{}{}
		airlines = append(airlines, f.Airline)
	}
	collate.New(language.English, collate.IgnoreCase).SortStrings(airlines)
	return airlines, nil
}

var _ FlightUseCase = (*FlightService)(nil)
