package query

import "time"

// positionKey cannot collide with a dot-path a caller could address.
const positionKey = "\x00pos"

// Project runs q over typed items and returns the matching items in result order.
func Project[T any](e *Engine, items []T, toRecord func(T) Record, q Query) ([]T, error) {
	records := decorate(items, toRecord)
	matched, err := e.Execute(records, q)
	if err != nil {
		return nil, err
	}
	return undecorate(items, matched), nil
}

// PartitionItems is Partition over typed items.
func PartitionItems[T any](items []T, toRecord func(T) Record, c Classifier, now time.Time) map[Bucket][]T {
	p := Partition(decorate(items, toRecord), c, now)
	return map[Bucket][]T{
		BucketUpcoming:  undecorate(items, p.Upcoming),
		BucketPast:      undecorate(items, p.Past),
		BucketCancelled: undecorate(items, p.Cancelled),
	}
}

func decorate[T any](items []T, toRecord func(T) Record) []Record {
	records := make([]Record, 0, len(items))
	for i, item := range items {
		r := toRecord(item)
		if r == nil {
			r = Record{}
		}
		r[positionKey] = i
		records = append(records, r)
	}
	return records
}

func undecorate[T any](items []T, records []Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if i, ok := r[positionKey].(int); ok {
			out = append(out, items[i])
		}
	}
	return out
}
