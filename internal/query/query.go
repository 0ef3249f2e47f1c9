package query

import "slices"

// Sort orders results by one field. An empty Field keeps input order.
type Sort struct {
	Field     string
	Direction Direction
	Type      TypeHint
}

// Query is a declarative (search, filters, sort) triple. Builders return
// copies, a Query value is never changed after construction.
type Query struct {
	Search       string
	SearchFields []string
	Filters      FilterSet
	Sort         Sort
}

// WithSearch sets the free-text search. When fields is empty the engine
// falls back to the searchable fields of its schema.
func (q Query) WithSearch(text string, fields ...string) Query {
	out := q.clone()
	out.Search = text
	if len(fields) > 0 {
		out.SearchFields = slices.Clone(fields)
	}
	return out
}

// Where adds a predicate on field; predicates across fields are ANDed.
func (q Query) Where(field string, p Predicate) Query {
	out := q.clone()
	out.Filters = append(out.Filters, Filter{Field: field, Predicate: p})
	return out
}

func (q Query) SortBy(field string, dir Direction) Query {
	out := q.clone()
	out.Sort = Sort{Field: field, Direction: dir}
	return out
}

func (q Query) SortByType(field string, dir Direction, hint TypeHint) Query {
	out := q.clone()
	out.Sort = Sort{Field: field, Direction: dir, Type: hint}
	return out
}

func (q Query) WithDirection(dir Direction) Query {
	out := q.clone()
	out.Sort.Direction = dir
	return out
}

func (q Query) clone() Query {
	return Query{
		Search:       q.Search,
		SearchFields: slices.Clone(q.SearchFields),
		Filters:      slices.Clone(q.Filters),
		Sort:         q.Sort,
	}
}

// Field describes one addressable path of a record shape.
type Field struct {
	Path       string
	Type       TypeHint
	Searchable bool
}

// Schema lists the field paths a view may query.
type Schema struct {
	types      map[string]TypeHint
	searchable []string
}

func NewSchema(fields ...Field) *Schema {
	s := &Schema{types: make(map[string]TypeHint, len(fields))}
	for _, f := range fields {
		s.types[f.Path] = f.Type
		if f.Searchable {
			s.searchable = append(s.searchable, f.Path)
		}
	}
	return s
}

func (s *Schema) Has(path string) bool {
	if s == nil {
		return true
	}
	_, ok := s.types[path]
	return ok
}

func (s *Schema) TypeOf(path string) TypeHint {
	if s == nil {
		return TypeAuto
	}
	return s.types[path]
}

func (s *Schema) SearchFields() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.searchable)
}
