package query

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts asc/desc in any case; an empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", &ConfigurationError{Reason: fmt.Sprintf("invalid sort direction %q", s)}
}

func (d Direction) valid() bool {
	return d == Ascending || d == Descending
}

type TypeHint string

const (
	TypeAuto   TypeHint = ""
	TypeString TypeHint = "string"
	TypeNumber TypeHint = "number"
	TypeDate   TypeHint = "date"
)

// Comparator orders two records. It is a total order over any record list.
type Comparator func(a, b Record) int

// Build returns a comparator over path. Values that are missing, NaN or
// unparseable for the resolved type sort after valid ones in both directions;
// among valid keys descending is the negation of ascending.
// TypeAuto infers the type from whichever side is present, callers sorting
// mixed data should resolve the hint with Infer first.
func Build(path string, dir Direction, hint TypeHint) Comparator {
	sign := 1
	if dir == Descending {
		sign = -1
	}
	collator := collate.New(language.English)

	return func(a, b Record) int {
		av, aok := Get(a, path)
		bv, bok := Get(b, path)

		h := hint
		if h == TypeAuto {
			switch {
			case aok:
				h = inferValue(av)
			case bok:
				h = inferValue(bv)
			default:
				return 0
			}
		}

		var (
			c              int
			aValid, bValid bool
		)
		switch h {
		case TypeNumber:
			var an, bn float64
			an, aValid = numberKey(av, aok)
			bn, bValid = numberKey(bv, bok)
			c = cmp.Compare(an, bn)
		case TypeDate:
			var at, bt time.Time
			at, aValid = dateKey(av, aok)
			bt, bValid = dateKey(bv, bok)
			c = at.Compare(bt)
		default:
			aValid, bValid = aok, bok
			if aValid && bValid {
				c = collator.CompareString(toText(av), toText(bv))
			}
		}

		switch {
		case aValid && bValid:
			return sign * c
		case aValid:
			return -1
		case bValid:
			return 1
		default:
			return 0
		}
	}
}

// Infer resolves a type hint from the first record that has a value at path.
func Infer(records []Record, path string) TypeHint {
	for _, r := range records {
		if v, ok := Get(r, path); ok {
			return inferValue(v)
		}
	}
	return TypeString
}

func inferValue(v any) TypeHint {
	if isNumeric(v) {
		return TypeNumber
	}
	if _, ok := toTime(v); ok {
		return TypeDate
	}
	return TypeString
}

func numberKey(v any, present bool) (float64, bool) {
	if !present {
		return 0, false
	}
	return toNumber(v)
}

func dateKey(v any, present bool) (time.Time, bool) {
	if !present {
		return time.Time{}, false
	}
	return toTime(v)
}
