package flights

import (
	"strconv"
	"strings"

	"github.com/Domenick1991/airquery/internal/domain"
	"github.com/Domenick1991/airquery/internal/query"
)

const (
	SortPriceAsc     = "price-asc"
	SortPriceDesc    = "price-desc"
	SortDurationAsc  = "duration-asc"
	SortDepartureAsc = "departure-asc"
	SortArrivalAsc   = "arrival-asc"

	StopsAny = "any"

	DefaultMinPrice = 0
	DefaultMaxPrice = 2000
)

var sortOptions = map[string]query.Sort{
	SortPriceAsc:     {Field: domain.FlightFieldPrice, Direction: query.Ascending},
	SortPriceDesc:    {Field: domain.FlightFieldPrice, Direction: query.Descending},
	SortDurationAsc:  {Field: domain.FlightFieldDurationMinutes, Direction: query.Ascending},
	SortDepartureAsc: {Field: domain.FlightFieldDepartureTime, Direction: query.Ascending},
	SortArrivalAsc:   {Field: domain.FlightFieldArrivalTime, Direction: query.Ascending},
}

// HourRange is an inclusive range of hours of the day, 0 to 24.
type HourRange struct {
	From int
	To   int
}

// SearchParams is the state of the search results filter panel. Zero values
// mean the panel defaults.
type SearchParams struct {
	Text      string
	Airlines  []string
	MinPrice  *float64
	MaxPrice  *float64
	Stops     string
	Departure *HourRange
	Arrival   *HourRange
	Sort      string
}

// Query turns the panel state into an engine query.
func (p SearchParams) Query() (query.Query, error) {
	var q query.Query

	if text := strings.TrimSpace(p.Text); text != "" {
		q = q.WithSearch(text)
	}
	if len(p.Airlines) > 0 {
		q = q.Where(domain.FlightFieldAirline, query.OneOf(p.Airlines...))
	}

	minPrice, maxPrice := float64(DefaultMinPrice), float64(DefaultMaxPrice)
	if p.MinPrice != nil {
		minPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		maxPrice = *p.MaxPrice
	}
	if minPrice > maxPrice {
		return query.Query{}, &query.ConfigurationError{Field: domain.FlightFieldPrice, Reason: "min_price is greater than max_price"}
	}
	q = q.Where(domain.FlightFieldPrice, query.InRange(minPrice, maxPrice))

	if stops := strings.TrimSpace(p.Stops); stops != "" && stops != StopsAny {
		n, err := strconv.Atoi(stops)
		if err != nil || n < 0 {
			return query.Query{}, &query.ConfigurationError{Field: domain.FlightFieldStops, Reason: "stops must be \"any\" or a non-negative number"}
		}
		q = q.Where(domain.FlightFieldStops, query.Equals(n))
	}

	var err error
	if q, err = whereHours(q, domain.FlightFieldDepartureHour, p.Departure); err != nil {
		return query.Query{}, err
	}
	if q, err = whereHours(q, domain.FlightFieldArrivalHour, p.Arrival); err != nil {
		return query.Query{}, err
	}

	key := p.Sort
	if key == "" {
		key = SortPriceAsc
	}
	sort, ok := sortOptions[key]
	if !ok {
		return query.Query{}, &query.ConfigurationError{Field: "sort", Reason: "unknown sort option " + strconv.Quote(key)}
	}
	return q.SortBy(sort.Field, sort.Direction), nil
}

func whereHours(q query.Query, field string, r *HourRange) (query.Query, error) {
	if r == nil {
		return q, nil
	}
	if r.From < 0 || r.To > 24 || r.From > r.To {
		return q, &query.ConfigurationError{Field: field, Reason: "hour range must lie within 0-24"}
	}
	return q.Where(field, query.InRange(r.From, r.To)), nil
}
