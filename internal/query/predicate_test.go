package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEquals(t *testing.T) {
	assert.True(t, Equals("confirmed").Test("CONFIRMED", true))
	assert.True(t, Equals(1).Test(1.0, true))
	assert.True(t, Equals(1).Test("1", true))
	assert.False(t, Equals("JFK").Test("LAX", true))
	assert.False(t, Equals(0).Test(nil, false))
}

type statusString string

func TestEquals_StringKinds(t *testing.T) {
	assert.True(t, Equals("scheduled").Test(statusString("SCHEDULED"), true))
}

func TestOneOf(t *testing.T) {
	p := OneOf("AA", "UA")
	assert.True(t, p.Test("AA", true))
	assert.True(t, p.Test("ua", true))
	assert.False(t, p.Test("DL", true))
	assert.False(t, p.Test(nil, false))
}

func TestOneOf_EmptyIsVacuous(t *testing.T) {
	p := OneOf[string]()
	assert.True(t, p.Test("anything", true))
	assert.True(t, p.Test(nil, false), "empty selection never excludes, even missing values")
}

func TestInRange_Numbers(t *testing.T) {
	testCases := []struct {
		name  string
		lower any
		upper any
		value any
		want  bool
	}{
		{name: "inside", lower: 0, upper: 2000, value: 299, want: true},
		{name: "inclusive lower", lower: 279, upper: 300, value: 279.0, want: true},
		{name: "inclusive upper", lower: 0, upper: 300, value: 300, want: true},
		{name: "above", lower: 0, upper: 300, value: 329, want: false},
		{name: "open lower", lower: nil, upper: 300, value: -10, want: true},
		{name: "open upper", lower: 100, upper: nil, value: 1e9, want: true},
		{name: "numeric string", lower: 0, upper: 10, value: "7", want: true},
		{name: "not a number", lower: 0, upper: 10, value: "seven", want: false},
		{name: "NaN", lower: 0, upper: 10, value: math.NaN(), want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InRange(tc.lower, tc.upper).Test(tc.value, true))
		})
	}
}

func TestInRange_Dates(t *testing.T) {
	lower := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	p := InRange(lower, "2023-06-15T23:59:59Z")

	assert.True(t, p.Test("2023-06-15T08:30:00", true))
	assert.False(t, p.Test("2023-06-16T08:30:00", true))
	assert.False(t, p.Test("not a date", true))
}

func TestInRange_Unbounded(t *testing.T) {
	p := InRange(nil, nil)
	assert.True(t, p.Test(5, true))
	assert.True(t, p.Test("2024-01-01", true))
	assert.False(t, p.Test("abc", true))
}

func TestInRange_Invalid(t *testing.T) {
	assert.Empty(t, InRange(0, 300).Invalid())
	assert.Empty(t, InRange(nil, "2023-06-15").Invalid())
	assert.Empty(t, InRange(nil, nil).Invalid())
	assert.Empty(t, InRange("10", 20).Invalid())

	assert.Contains(t, InRange("abc", nil).Invalid(), "lower bound")
	assert.Contains(t, InRange(0, struct{}{}).Invalid(), "upper bound")
	assert.Contains(t, InRange(0, "2023-06-15").Invalid(), "mix")
}

func TestContainsSubstring(t *testing.T) {
	p := ContainsSubstring("jfk")
	assert.True(t, p.Test("JFK", true))
	assert.True(t, p.Test("New York JFK", true))
	assert.False(t, p.Test("LAX", true))
	assert.True(t, ContainsSubstring("wi-fi").Test([]any{"Power outlets", "Free Wi-Fi"}, true))
	assert.True(t, ContainsSubstring("12").Test(1234, true))
}

func TestMissingValueFailsPredicates(t *testing.T) {
	predicates := []Predicate{
		Equals("x"),
		OneOf("x"),
		InRange(nil, nil),
		ContainsSubstring(""),
	}
	for _, p := range predicates {
		assert.False(t, p.Test(nil, false), p.String())
	}
}

func TestFilterSet_Match(t *testing.T) {
	rec := Record{"airline": "AA", "price": 299, "stops": 0}

	assert.True(t, FilterSet{}.Match(rec))
	assert.True(t, FilterSet{
		{Field: "airline", Predicate: OneOf("AA", "UA")},
		{Field: "price", Predicate: InRange(0, 300)},
	}.Match(rec))
	assert.False(t, FilterSet{
		{Field: "airline", Predicate: OneOf("AA", "UA")},
		{Field: "stops", Predicate: Equals(1)},
	}.Match(rec))
	assert.False(t, FilterSet{
		{Field: "fare_class", Predicate: Equals("Economy")},
	}.Match(rec))
}
