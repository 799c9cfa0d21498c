package usecase

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/domain/repository"
	sharedrepo "adclad/internal/shared/repository"
)

// DiffChanges lists the scalar fields of updates whose value differs from
// old. Keys missing from old and non-scalar values are ignored. The result
// is ordered by key.
func DiffChanges(old bson.M, updates bson.M) []model.Change {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	changes := make([]model.Change, 0)
	for _, key := range keys {
		oldValue, ok := old[key]
		if !ok {
			continue
		}
		newValue := updates[key]
		if !isScalar(newValue) {
			continue
		}
		if sameValue(oldValue, newValue) {
			continue
		}
		changes = append(changes, model.Change{Key: key, OldValue: oldValue, NewValue: newValue})
	}
	return changes
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case nil:
		return false
	case time.Time, primitive.DateTime, primitive.ObjectID:
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct,
		reflect.Func, reflect.Pointer, reflect.Interface, reflect.Chan:
		return false
	}
	return true
}

func asFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}

// sameValue compares numbers by value across widths, times by instant and
// everything else by strict equality of type and value
func sameValue(a, b interface{}) bool {
	ta, aTime := asTime(a)
	tb, bTime := asTime(b)
	if aTime || bTime {
		return aTime && bTime && ta.Equal(tb)
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return ra.String() == rb.String()
	}
	if ra.Type() != rb.Type() || !ra.Type().Comparable() {
		return false
	}
	return a == b
}

// toDocument renders a stored model as the field map the diff runs against
func toDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// AuditRecorder persists advertisement change records
type AuditRecorder struct {
	history repository.Store[model.AdvertisementHistory]
}

// NewAuditRecorder creates a recorder writing into history
func NewAuditRecorder(history repository.Store[model.AdvertisementHistory]) *AuditRecorder {
	return &AuditRecorder{history: history}
}

// Record writes one history entry when changes is non-empty. A failed write
// is returned wrapped with "failed to record advertisement history" and the
// store error stays reachable through errors.Is and errors.As.
func (r *AuditRecorder) Record(ctx context.Context, advertisement, actor primitive.ObjectID, changes []model.Change) (*model.AdvertisementHistory, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	entry := &model.AdvertisementHistory{
		Advertisement: sharedrepo.NewRef(advertisement),
		UpdatedBy:     sharedrepo.NewRef(actor),
		Changes:       changes,
	}
	created, err := r.history.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record advertisement history: %w", err)
	}
	return created, nil
}
