package repository

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "adclad/internal/shared/errors"
)

// UpdateOptions are the recognised update flags
type UpdateOptions struct {
	// Upsert inserts a new document when nothing matches
	Upsert bool
	// ReturnOriginal returns the pre-update document instead of the stored result
	ReturnOriginal bool
	// ArrayFilters select array elements for positional $[<id>] updates
	ArrayFilters []interface{}
}

func (o UpdateOptions) findOneAndUpdate() *options.FindOneAndUpdateOptions {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if o.ReturnOriginal {
		opts.SetReturnDocument(options.Before)
	}
	if o.Upsert {
		opts.SetUpsert(true)
	}
	if len(o.ArrayFilters) > 0 {
		opts.SetArrayFilters(options.ArrayFilters{Filters: o.ArrayFilters})
	}
	return opts
}

// normalizeUpdate turns a payload into an update document. Plain field maps
// are wrapped in $set, operator documents pass through, and updatedAt is
// always bumped.
func normalizeUpdate(updates bson.M, now time.Time, upsert bool) (bson.M, error) {
	if len(updates) == 0 {
		return nil, apperrors.NewInvalidArgumentError("updates cannot be empty")
	}

	var operators, fields int
	for k := range updates {
		if strings.HasPrefix(k, "$") {
			operators++
		} else {
			fields++
		}
	}
	if operators > 0 && fields > 0 {
		return nil, apperrors.NewInvalidArgumentError("updates cannot mix operators and plain fields")
	}

	out := bson.M{}
	if fields > 0 {
		set := bson.M{}
		for k, v := range updates {
			set[k] = v
		}
		out["$set"] = set
	} else {
		for k, v := range updates {
			out[k] = v
		}
	}

	switch set := out["$set"].(type) {
	case bson.M:
		if _, ok := set["updatedAt"]; !ok {
			set["updatedAt"] = now
		}
	case map[string]interface{}:
		merged := bson.M{}
		for k, v := range set {
			merged[k] = v
		}
		if _, ok := merged["updatedAt"]; !ok {
			merged["updatedAt"] = now
		}
		out["$set"] = merged
	case nil:
		out["$set"] = bson.M{"updatedAt": now}
	default:
		out["$currentDate"] = bson.M{"updatedAt": true}
	}

	if upsert {
		if _, ok := out["$setOnInsert"]; !ok {
			out["$setOnInsert"] = bson.M{"createdAt": now}
		}
	}
	return out, nil
}
