package query

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind names a predicate for error messages and logs.
type Kind string

const (
	KindEquals            Kind = "equals"
	KindOneOf             Kind = "one_of"
	KindInRange           Kind = "in_range"
	KindContainsSubstring Kind = "contains"
)

// Predicate is a pure boolean test against one field's value.
// A missing value fails every predicate except a vacuous one (OneOf with no values).
type Predicate struct {
	kind     Kind
	vacuous  bool
	test     func(v any) bool
	describe string
	invalid  string
}

func (p Predicate) Kind() Kind { return p.kind }

func (p Predicate) String() string { return p.describe }

// Invalid describes why the predicate can never be evaluated, or is empty.
func (p Predicate) Invalid() string { return p.invalid }

// Test evaluates the predicate. present is false when the field could not be resolved.
func (p Predicate) Test(v any, present bool) bool {
	if p.vacuous {
		return true
	}
	if !present || p.test == nil {
		return false
	}
	return p.test(v)
}

// Equals matches values equal to expected. Strings compare case-insensitively,
// numbers compare by value regardless of their Go type.
func Equals(expected any) Predicate {
	return Predicate{
		kind:     KindEquals,
		test:     func(v any) bool { return equalValues(v, expected) },
		describe: fmt.Sprintf("equals(%v)", expected),
	}
}

// OneOf matches any of the allowed values. An empty set applies no filtering.
func OneOf[T any](allowed ...T) Predicate {
	values := make([]any, 0, len(allowed))
	for _, a := range allowed {
		values = append(values, a)
	}
	return Predicate{
		kind:    KindOneOf,
		vacuous: len(values) == 0,
		test: func(v any) bool {
			for _, a := range values {
				if equalValues(v, a) {
					return true
				}
			}
			return false
		},
		describe: fmt.Sprintf("one_of(%v)", values),
	}
}

// InRange matches numbers or dates within [min, max]. A nil bound is open.
// Numeric bounds compare numerically, time.Time or date-string bounds compare as timestamps.
// Bounds that are neither, or that mix a number with a date, make the predicate invalid.
func InRange(lower, upper any) Predicate {
	return Predicate{
		kind:     KindInRange,
		test:     func(v any) bool { return inRange(v, lower, upper) },
		describe: fmt.Sprintf("in_range(%v, %v)", lower, upper),
		invalid:  checkBounds(lower, upper),
	}
}

type boundKind int

const (
	boundOpen boundKind = iota
	boundNumber
	boundDate
	boundInvalid
)

func kindOfBound(b any) boundKind {
	if b == nil {
		return boundOpen
	}
	if _, ok := toNumber(b); ok {
		return boundNumber
	}
	if _, ok := toTime(b); ok {
		return boundDate
	}
	return boundInvalid
}

func checkBounds(lower, upper any) string {
	lk, uk := kindOfBound(lower), kindOfBound(upper)
	switch {
	case lk == boundInvalid:
		return fmt.Sprintf("range lower bound %v is neither a number nor a date", lower)
	case uk == boundInvalid:
		return fmt.Sprintf("range upper bound %v is neither a number nor a date", upper)
	case lk != boundOpen && uk != boundOpen && lk != uk:
		return fmt.Sprintf("range bounds %v and %v mix a number with a date", lower, upper)
	}
	return ""
}

// ContainsSubstring is a case-insensitive substring test.
func ContainsSubstring(needle string) Predicate {
	lowered := strings.ToLower(needle)
	return Predicate{
		kind: KindContainsSubstring,
		test: func(v any) bool {
			return strings.Contains(strings.ToLower(toText(v)), lowered)
		},
		describe: fmt.Sprintf("contains(%q)", needle),
	}
}

func inRange(v, lower, upper any) bool {
	if lower == nil && upper == nil {
		_, isNum := toNumber(v)
		_, isDate := toTime(v)
		return isNum || isDate
	}

	bound := lower
	if bound == nil {
		bound = upper
	}
	if _, ok := toNumber(bound); ok {
		n, ok := toNumber(v)
		if !ok {
			return false
		}
		if lo, ok := toNumber(lower); ok && n < lo {
			return false
		}
		if hi, ok := toNumber(upper); ok && n > hi {
			return false
		}
		return true
	}

	t, ok := toTime(v)
	if !ok {
		return false
	}
	if lo, ok := toTime(lower); ok && t.Before(lo) {
		return false
	}
	if hi, ok := toTime(upper); ok && t.After(hi) {
		return false
	}
	return true
}

func equalValues(a, b any) bool {
	if as, ok := asString(a); ok {
		if bs, ok := asString(b); ok {
			return strings.EqualFold(as, bs)
		}
	}
	if isNumeric(a) || isNumeric(b) {
		an, aok := toNumber(a)
		bn, bok := toNumber(b)
		return aok && bok && an == bn
	}
	return reflect.DeepEqual(a, b)
}

func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// Filter binds a predicate to a field path.
type Filter struct {
	Field     string
	Predicate Predicate
}

// FilterSet combines filters with logical AND.
type FilterSet []Filter

// Match reports whether r passes every filter.
func (fs FilterSet) Match(r Record) bool {
	for _, f := range fs {
		v, ok := Get(r, f.Field)
		if !f.Predicate.Test(v, ok) {
			return false
		}
	}
	return true
}

// anyMatch reports whether at least one of fields passes p.
func anyMatch(r Record, fields []string, p Predicate) bool {
	for _, field := range fields {
		v, ok := Get(r, field)
		if p.Test(v, ok) {
			return true
		}
	}
	return false
}
