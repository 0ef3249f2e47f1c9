package query

import "time"

type Bucket string

const (
	BucketUpcoming  Bucket = "upcoming"
	BucketPast      Bucket = "past"
	BucketCancelled Bucket = "cancelled"
)

type Classifier interface {
	Classify(r Record, now time.Time) Bucket
}

// StatusRule buckets records by status and departure time:
// a cancelled status wins, an active status departing after now is upcoming,
// anything else (including missing or unparseable fields) is past.
type StatusRule struct {
	StatusField       string
	DepartureField    string
	CancelledStatuses []string
	ActiveStatuses    []string
}

func (r StatusRule) Classify(rec Record, now time.Time) Bucket {
	status, _ := Get(rec, r.StatusField)
	if matchesAny(status, r.CancelledStatuses) {
		return BucketCancelled
	}
	if !matchesAny(status, r.ActiveStatuses) {
		return BucketPast
	}
	v, ok := Get(rec, r.DepartureField)
	if !ok {
		return BucketPast
	}
	departure, ok := toTime(v)
	if ok && departure.After(now) {
		return BucketUpcoming
	}
	return BucketPast
}

func matchesAny(v any, statuses []string) bool {
	if v == nil {
		return false
	}
	for _, s := range statuses {
		if equalValues(v, s) {
			return true
		}
	}
	return false
}

// Partitions holds the three disjoint buckets in input order.
type Partitions struct {
	Upcoming  []Record
	Past      []Record
	Cancelled []Record
}

func (p Partitions) Len() int {
	return len(p.Upcoming) + len(p.Past) + len(p.Cancelled)
}

func (p Partitions) Get(b Bucket) []Record {
	switch b {
	case BucketUpcoming:
		return p.Upcoming
	case BucketCancelled:
		return p.Cancelled
	default:
		return p.Past
	}
}

// Partition classifies each record exactly once. A bucket the classifier
// invents is folded into past so every record lands somewhere.
func Partition(records []Record, c Classifier, now time.Time) Partitions {
	p := Partitions{
		Upcoming:  []Record{},
		Past:      []Record{},
		Cancelled: []Record{},
	}
	for _, r := range records {
		switch c.Classify(r, now) {
		case BucketUpcoming:
			p.Upcoming = append(p.Upcoming, r)
		case BucketCancelled:
			p.Cancelled = append(p.Cancelled, r)
		default:
			p.Past = append(p.Past, r)
		}
	}
	return p
}
