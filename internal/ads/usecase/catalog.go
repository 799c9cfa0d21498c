package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"adclad/internal/ads/domain/repository"
	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

// catalog holds the lookups every soft-deletable collection shares
type catalog[T any] struct {
	store    repository.Store[T]
	resource string
}

func newCatalog[T any](store repository.Store[T], resource string) catalog[T] {
	return catalog[T]{store: store, resource: resource}
}

// live returns condition restricted to non-deleted documents
func live(condition bson.M) bson.M {
	out := bson.M{"isDeleted": false}
	for k, v := range condition {
		out[k] = v
	}
	return out
}

func (c catalog[T]) byID(id string, scope bson.M) (bson.M, error) {
	oid, err := sharedrepo.ParseID(id)
	if err != nil {
		return nil, err
	}
	cond := live(scope)
	cond["_id"] = oid
	return cond, nil
}

func (c catalog[T]) get(ctx context.Context, id string, scope bson.M) (*T, error) {
	cond, err := c.byID(id, scope)
	if err != nil {
		return nil, err
	}
	doc, err := c.store.GetOne(ctx, cond, nil)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NewNotFoundError(c.resource)
	}
	return doc, nil
}

func (c catalog[T]) update(ctx context.Context, id string, scope bson.M, updates bson.M) (*T, error) {
	cond, err := c.byID(id, scope)
	if err != nil {
		return nil, err
	}
	doc, err := c.store.UpdateOneByQuery(ctx, cond, updates, sharedrepo.UpdateOptions{})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(c.resource)
		}
		return nil, err
	}
	return doc, nil
}

func (c catalog[T]) remove(ctx context.Context, id string, scope bson.M) error {
	_, err := c.update(ctx, id, scope, bson.M{"isDeleted": true})
	return err
}

func (c catalog[T]) setStatus(ctx context.Context, req StatusRequest) (*T, error) {
	if err := req.Validate(StatusFieldActive); err != nil {
		return nil, err
	}
	return c.update(ctx, req.ID, nil, bson.M{StatusFieldActive: *req.Status})
}

func (c catalog[T]) list(ctx context.Context, req ListRequest, defaultLimit int, scope bson.M, refs []sharedrepo.Populate) (*sharedrepo.Page[T], error) {
	opts, err := req.Options(defaultLimit)
	if err != nil {
		return nil, err
	}
	opts.Populate = refs

	cond := live(scope)
	if req.IsActive != nil {
		cond["isActive"] = *req.IsActive
	}
	if req.SearchText != "" {
		return c.store.Search(ctx, req.SearchText, cond, opts)
	}
	return c.store.Paginate(ctx, cond, opts)
}
