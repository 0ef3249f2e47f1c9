package query

import (
	"fmt"
	"slices"
	"strings"
)

// Engine evaluates queries over record lists. It holds no per-call state
// and may be shared between goroutines.
type Engine struct {
	schema *Schema
}

// NewEngine returns an engine restricted to schema. A nil schema accepts any non-empty path.
func NewEngine(schema *Schema) *Engine {
	return &Engine{schema: schema}
}

// Execute runs q with a schemaless engine.
func Execute(records []Record, q Query) ([]Record, error) {
	return NewEngine(nil).Execute(records, q)
}

// Validate reports the first configuration problem in q.
func (e *Engine) Validate(q Query) error {
	for _, f := range q.Filters {
		if err := e.checkPath(f.Field); err != nil {
			return err
		}
		if reason := f.Predicate.Invalid(); reason != "" {
			return &ConfigurationError{Field: f.Field, Reason: reason}
		}
	}
	if q.Sort.Field != "" {
		if err := e.checkPath(q.Sort.Field); err != nil {
			return err
		}
		if q.Sort.Direction != "" && !q.Sort.Direction.valid() {
			return &ConfigurationError{Field: q.Sort.Field, Reason: fmt.Sprintf("invalid sort direction %q", q.Sort.Direction)}
		}
		switch q.Sort.Type {
		case TypeAuto, TypeString, TypeNumber, TypeDate:
		default:
			return &ConfigurationError{Field: q.Sort.Field, Reason: fmt.Sprintf("unknown type hint %q", q.Sort.Type)}
		}
	}
	if strings.TrimSpace(q.Search) != "" {
		fields := e.searchFields(q)
		if len(fields) == 0 {
			return &ConfigurationError{Reason: "search text given but no searchable fields configured"}
		}
		for _, field := range fields {
			if err := e.checkPath(field); err != nil {
				return err
			}
		}
	}
	return nil
}

// Execute searches, filters and stable-sorts records. The input slice and
// its records are left untouched; the result is always a fresh slice.
func (e *Engine) Execute(records []Record, q Query) ([]Record, error) {
	if err := e.Validate(q); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	search := strings.TrimSpace(q.Search)
	var searchPredicate Predicate
	var searchFields []string
	if search != "" {
		searchPredicate = ContainsSubstring(search)
		searchFields = e.searchFields(q)
	}

	for _, r := range records {
		if search != "" && !anyMatch(r, searchFields, searchPredicate) {
			continue
		}
		if !q.Filters.Match(r) {
			continue
		}
		out = append(out, r)
	}

	if q.Sort.Field != "" {
		hint := q.Sort.Type
		if hint == TypeAuto {
			hint = e.schema.TypeOf(q.Sort.Field)
		}
		if hint == TypeAuto {
			hint = Infer(out, q.Sort.Field)
		}
		dir := q.Sort.Direction
		if dir == "" {
			dir = Ascending
		}
		slices.SortStableFunc(out, Build(q.Sort.Field, dir, hint))
	}
	return out, nil
}

func (e *Engine) searchFields(q Query) []string {
	if len(q.SearchFields) > 0 {
		return q.SearchFields
	}
	return e.schema.SearchFields()
}

func (e *Engine) checkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &ConfigurationError{Reason: "empty field path"}
	}
	if !e.schema.Has(path) {
		return &ConfigurationError{Field: path, Reason: "unknown field path"}
	}
	return nil
}
