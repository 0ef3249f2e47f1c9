package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var bookingRule = StatusRule{
	StatusField:       "booking_status",
	DepartureField:    "original_departure_date_time",
	CancelledStatuses: []string{"CANCELLED"},
	ActiveStatuses:    []string{"CONFIRMED", "PAYMENT_INITIATED", "SCHEDULED"},
}

func TestStatusRule_Classify(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	future := "2025-03-10T09:00:00Z"
	past := "2025-02-10T09:00:00Z"

	testCases := []struct {
		name string
		rec  Record
		want Bucket
	}{
		{name: "cancelled beats future departure", rec: Record{"booking_status": "CANCELLED", "original_departure_date_time": future}, want: BucketCancelled},
		{name: "confirmed future", rec: Record{"booking_status": "CONFIRMED", "original_departure_date_time": future}, want: BucketUpcoming},
		{name: "scheduled future", rec: Record{"booking_status": "SCHEDULED", "original_departure_date_time": future}, want: BucketUpcoming},
		{name: "payment initiated future", rec: Record{"booking_status": "payment_initiated", "original_departure_date_time": future}, want: BucketUpcoming},
		{name: "confirmed past", rec: Record{"booking_status": "CONFIRMED", "original_departure_date_time": past}, want: BucketPast},
		{name: "departure equal to now", rec: Record{"booking_status": "CONFIRMED", "original_departure_date_time": now.Format(time.RFC3339)}, want: BucketPast},
		{name: "unknown status", rec: Record{"booking_status": "COMPLETED", "original_departure_date_time": future}, want: BucketPast},
		{name: "missing departure", rec: Record{"booking_status": "CONFIRMED"}, want: BucketPast},
		{name: "unparseable departure", rec: Record{"booking_status": "CONFIRMED", "original_departure_date_time": "soon"}, want: BucketPast},
		{name: "missing status", rec: Record{"original_departure_date_time": future}, want: BucketPast},
		{name: "empty record", rec: Record{}, want: BucketPast},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bookingRule.Classify(tc.rec, now))
		})
	}
}

func TestPartition_Exhaustive(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{"id": 1, "booking_status": "CONFIRMED", "original_departure_date_time": "2025-04-01T00:00:00Z"},
		{"id": 2, "booking_status": "CANCELLED", "original_departure_date_time": "2025-04-01T00:00:00Z"},
		{"id": 3, "booking_status": "CONFIRMED", "original_departure_date_time": "2024-04-01T00:00:00Z"},
		{"id": 4},
		{"id": 5, "booking_status": "SCHEDULED", "original_departure_date_time": "2025-03-02T00:00:00Z"},
		{"id": 6, "booking_status": "CANCELLED"},
	}

	p := Partition(records, bookingRule, now)

	assert.Equal(t, []any{1, 5}, ids(p.Upcoming))
	assert.Equal(t, []any{3, 4}, ids(p.Past))
	assert.Equal(t, []any{2, 6}, ids(p.Cancelled))
	assert.Equal(t, len(records), p.Len())

	seen := map[any]int{}
	for _, b := range []Bucket{BucketUpcoming, BucketPast, BucketCancelled} {
		for _, r := range p.Get(b) {
			seen[r["id"]]++
		}
	}
	for _, r := range records {
		assert.Equal(t, 1, seen[r["id"]], "record %v must land in exactly one bucket", r["id"])
	}
}

func TestPartition_Empty(t *testing.T) {
	p := Partition(nil, bookingRule, time.Now())
	assert.Equal(t, 0, p.Len())
	assert.NotNil(t, p.Upcoming)
	assert.NotNil(t, p.Past)
	assert.NotNil(t, p.Cancelled)
}

type constClassifier Bucket

func (c constClassifier) Classify(Record, time.Time) Bucket { return Bucket(c) }

func TestPartition_UnknownBucketFoldsIntoPast(t *testing.T) {
	p := Partition([]Record{{"id": 1}}, constClassifier("archived"), time.Now())
	assert.Equal(t, []any{1}, ids(p.Past))
}
