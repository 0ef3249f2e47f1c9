package booking

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/metrics"
	"github.com/Domenick1991/airquery/internal/query"
	"github.com/Domenick1991/airquery/internal/repository"
)

const (
	viewTable  = "bookings"
	viewManage = "bookings_manage"

	StatusAll = "all"

	// SortPassengerName is the table column alias for the nested passenger name.
	SortPassengerName = "passenger_name"
)

var ErrBookingNotFound = domain.ErrBookingNotFound

type BookingUseCase interface {
	List(ctx context.Context, params ListParams) ([]domain.Booking, error)
	Manage(ctx context.Context, now time.Time) (*ManageView, error)
	Find(ctx context.Context, reference string) (*ManagedBooking, error)
}

type Cache interface {
	GetBookings(ctx context.Context) ([]domain.Booking, error)
	SetBookings(ctx context.Context, bookings []domain.Booking) error
}

type BookingService struct {
	bookings repository.BookingRepository
	cache    Cache
	engine   *query.Engine
	now      func() time.Time
	log      logger.Logger
	metrics  *metrics.Metrics
}

type BookingServiceOption func(*BookingService)

func WithLogger(log logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

// WithClock replaces time.Now for capability checks in Find.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(bookings repository.BookingRepository, cache Cache, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings: bookings,
		cache:    cache,
		engine:   query.NewEngine(domain.BookingSchema()),
		now:      time.Now,
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ListParams is the state of the booking table controls.
type ListParams struct {
	Search    string
	Status    string
	SortKey   string
	Direction string
}

// Query builds the booking table query. Without a sort key the table shows
// the most recent bookings first; a chosen column starts ascending.
func (p ListParams) Query() (query.Query, error) {
	var q query.Query

	if text := strings.TrimSpace(p.Search); text != "" {
		q = q.WithSearch(text)
	}
	if status := strings.TrimSpace(p.Status); status != "" && !strings.EqualFold(status, StatusAll) {
		q = q.Where(domain.BookingFieldStatus, query.Equals(string(domain.NormalizeBookingStatus(status))))
	}

	key, dir := p.SortKey, query.Ascending
	if key == "" {
		key, dir = domain.BookingFieldBookingTime, query.Descending
	}
	if key == SortPassengerName {
		key = domain.BookingFieldPassengerName
	}
	if p.Direction != "" {
		parsed, err := query.ParseDirection(p.Direction)
		if err != nil {
			return query.Query{}, err
		}
		dir = parsed
	}
	return q.SortBy(key, dir), nil
}

func (s *BookingService) List(ctx context.Context, params ListParams) (result []domain.Booking, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveQuery(viewTable, started, len(result), err) }()

	q, err := params.Query()
	if err != nil {
		return nil, err
	}
	if err := s.engine.Validate(q); err != nil {
		return nil, err
	}
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return query.Project(s.engine, all, domain.Booking.Record, q)
}

// ManagedBooking is a booking as shown on the manage-booking tabs.
type ManagedBooking struct {
	domain.Booking
	Bucket           query.Bucket `json:"bucket"`
	CheckInAvailable bool         `json:"check_in_available"`
	CanModify        bool         `json:"can_modify"`
	CanCancel        bool         `json:"can_cancel"`
	RefundAmount     float64      `json:"refund_amount,omitempty"`
	CancelledOn      string       `json:"cancelled_on,omitempty"`
}

type ManageView struct {
	Upcoming  []ManagedBooking `json:"upcoming"`
	Past      []ManagedBooking `json:"past"`
	Cancelled []ManagedBooking `json:"cancelled"`
}

func newManagedBooking(b domain.Booking, bucket query.Bucket, now time.Time) ManagedBooking {
	m := ManagedBooking{
		Booking:          b,
		Bucket:           bucket,
		CheckInAvailable: b.CheckInAvailable(now),
		CanModify:        b.CanModify(),
		CanCancel:        b.CanCancel(),
	}
	if bucket == query.BucketCancelled {
		m.RefundAmount = b.RefundAmount()
		m.CancelledOn = b.UpdatedAt
	}
	return m
}

func (s *BookingService) Manage(ctx context.Context, now time.Time) (view *ManageView, err error) {
	started := time.Now()
	defer func() {
		n := 0
		if view != nil {
			n = len(view.Upcoming) + len(view.Past) + len(view.Cancelled)
		}
		s.metrics.ObserveQuery(viewManage, started, n, err)
	}()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	buckets := query.PartitionItems(all, domain.Booking.Record, domain.BookingRule, now)
	managed := func(b query.Bucket) []ManagedBooking {
		out := make([]ManagedBooking, 0, len(buckets[b]))
		for _, booking := range buckets[b] {
			out = append(out, newManagedBooking(booking, b, now))
		}
		return out
	}
	return &ManageView{
		Upcoming:  managed(query.BucketUpcoming),
		Past:      managed(query.BucketPast),
		Cancelled: managed(query.BucketCancelled),
	}, nil
}

// Find looks a booking up by its reference, ignoring case.
func (s *BookingService) Find(ctx context.Context, reference string) (*ManagedBooking, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, &query.ConfigurationError{Field: domain.BookingFieldID, Reason: "booking reference is required"}
	}

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	found, err := query.Project(s.engine, all, domain.Booking.Record, query.Query{}.Where(domain.BookingFieldID, query.Equals(reference)))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrBookingNotFound
	}

	now := s.now()
	b := found[0]
	m := newManagedBooking(b, domain.BookingRule.Classify(b.Record(), now), now)
	return &m, nil
}

func (s *BookingService) load(ctx context.Context) ([]domain.Booking, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBookings(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.log.Warn("bookings cache read failed", "error", err)
		}
	}

	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetBookings(ctx, bookings); err != nil {
			s.log.Warn("bookings cache write failed", "error", err)
		}
	}
	return bookings, nil
}

var _ BookingUseCase = (*BookingService)(nil)
