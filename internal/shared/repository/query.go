package repository

import (
	"math"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryOptions are the raw pagination inputs as they arrive from a request.
// Numeric fields are pointers so that "absent" and NaN/Inf can be told apart
// from legitimate zero values.
type QueryOptions struct {
	Skip       *float64   `json:"skip,omitempty"`
	Limit      *float64   `json:"limit,omitempty"`
	Sort       string     `json:"sort,omitempty"`
	Order      *float64   `json:"order,omitempty"`
	Populate   []Populate `json:"-"`
	Projection bson.M     `json:"-"`
}

// Num is a convenience for building QueryOptions literals
func Num(v float64) *float64 {
	return &v
}

// Page is one window of a paginated listing
type Page[T any] struct {
	Skip       int64 `json:"skip"`
	Limit      int64 `json:"limit"`
	TotalCount int64 `json:"total_count"`
	Items      []T   `json:"items"`
	ItemCount  int64 `json:"item_count"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

type window struct {
	skip    int64
	limit   int64
	bounded bool
	sort    bson.D
}

func normalizeWindow(opts QueryOptions) window {
	limit, bounded := normalizeLimit(opts.Limit)
	return window{
		skip:    normalizeSkip(opts.Skip),
		limit:   limit,
		bounded: bounded,
		sort:    buildSort(opts.Sort, opts.Order),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalizeSkip maps absent or non-finite values and negatives to 0
func normalizeSkip(v *float64) int64 {
	if v == nil || !finite(*v) || *v < 0 {
		return 0
	}
	return int64(*v)
}

// normalizeLimit returns the limit and whether the query is bounded at all.
// Absent, non-finite and zero limits mean "no limit".
func normalizeLimit(v *float64) (int64, bool) {
	if v == nil || !finite(*v) {
		return 0, false
	}
	n := int64(*v)
	if n == 0 {
		return 0, false
	}
	return n, true
}

// buildSort produces a single-key sort document, or nil when no usable
// direction exists
func buildSort(field string, order *float64) bson.D {
	if field == "" {
		return nil
	}
	dir := 1.0
	if order != nil {
		dir = *order
	}
	switch {
	case !finite(dir) || dir == 0:
		return nil
	case dir > 0:
		return bson.D{{Key: field, Value: 1}}
	default:
		return bson.D{{Key: field, Value: -1}}
	}
}

func newPage[T any](w window, total int64, items []T) *Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	count := int64(len(items))
	limit := w.limit
	if !w.bounded {
		limit = count
	}
	return &Page[T]{
		Skip:       w.skip,
		Limit:      limit,
		TotalCount: total,
		Items:      items,
		ItemCount:  count,
		HasPrev:    w.skip > 0,
		HasNext:    total > count+w.skip,
	}
}

// searchCondition copies condition and appends a case-insensitive match of
// text against any of fields to its $and list
func searchCondition(text string, fields []string, condition bson.M) bson.M {
	out := make(bson.M, len(condition)+1)
	for k, v := range condition {
		out[k] = v
	}

	pattern := regexp.QuoteMeta(text)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: primitive.Regex{Pattern: pattern, Options: "i"}})
	}

	and := bson.A{}
	switch existing := out["$and"].(type) {
	case bson.A:
		and = append(and, existing...)
	case []interface{}:
		and = append(and, existing...)
	case []bson.M:
		for _, c := range existing {
			and = append(and, c)
		}
	case nil:
	default:
		and = append(and, existing)
	}
	out["$and"] = append(and, bson.M{"$or": or})
	return out
}
