package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "adclad/internal/shared/errors"
)

// CollectionProvider hands out collection handles. Both *database.Store and
// *mongo.Database satisfy it.
type CollectionProvider interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

// Descriptor is the per-entity configuration of a repository
type Descriptor struct {
	Collection   string
	SearchFields []string
}

// Creatable documents are stamped before insert
type Creatable interface {
	BeforeCreate(now time.Time)
}

// Validatable documents are checked before insert
type Validatable interface {
	Validate() error
}

// Repository is the typed data-access facade for one collection
type Repository[T any] struct {
	coll *mongo.Collection
	desc Descriptor
	now  func() time.Time
}

// New creates a repository for the collection named in desc
func New[T any](provider CollectionProvider, desc Descriptor) *Repository[T] {
	return &Repository[T]{
		coll: provider.Collection(desc.Collection),
		desc: desc,
		now:  time.Now,
	}
}

// Collection exposes the underlying handle for callers that need raw access
func (r *Repository[T]) Collection() *mongo.Collection {
	return r.coll
}

// Descriptor returns the repository configuration
func (r *Repository[T]) Descriptor() Descriptor {
	return r.desc
}

// ParseID converts a hex string into an ObjectID
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewInvalidArgumentError("invalid document id").
			WithDetail("id", id).WithCause(err)
	}
	return oid, nil
}

// GetOneByID returns the document or nil when no document has that id
func (r *Repository[T]) GetOneByID(ctx context.Context, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.GetOne(ctx, bson.M{"_id": oid}, nil)
}

// GetOne returns the first document matching condition, or nil
func (r *Repository[T]) GetOne(ctx context.Context, condition bson.M, projection bson.M) (*T, error) {
	if condition == nil {
		return nil, apperrors.NewInvalidArgumentError("condition must be a plain object")
	}

	opts := options.FindOne()
	if len(projection) > 0 {
		opts.SetProjection(projection)
	}

	var doc T
	err := r.coll.FindOne(ctx, condition, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// Find returns every document matching condition
func (r *Repository[T]) Find(ctx context.Context, condition bson.M) ([]T, error) {
	if condition == nil {
		return nil, apperrors.NewInvalidArgumentError("condition must be a plain object")
	}
	return r.find(ctx, condition, options.Find())
}

func (r *Repository[T]) find(ctx context.Context, condition bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := r.coll.Find(ctx, condition, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) aggregate(ctx context.Context, pipeline bson.A) ([]T, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) prepare(doc *T, now time.Time) error {
	if c, ok := any(doc).(Creatable); ok {
		c.BeforeCreate(now)
	}
	if v, ok := any(doc).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Create validates, stamps and inserts doc, returning the stored document
func (r *Repository[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if doc == nil {
		return nil, apperrors.NewInvalidArgumentError("document cannot be nil")
	}
	if err := r.prepare(doc, r.now()); err != nil {
		return nil, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateMany inserts docs in order
func (r *Repository[T]) CreateMany(ctx context.Context, docs []*T) ([]*T, error) {
	if len(docs) == 0 {
		return docs, nil
	}
	now := r.now()
	batch := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			return nil, apperrors.NewInvalidArgumentError("document cannot be nil")
		}
		if err := r.prepare(doc, now); err != nil {
			return nil, err
		}
		batch = append(batch, doc)
	}
	if _, err := r.coll.InsertMany(ctx, batch, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, err
	}
	return docs, nil
}

// UpdateOne applies updates to the document with the given id
func (r *Repository[T]) UpdateOne(ctx context.Context, id string, updates bson.M, opts UpdateOptions) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.UpdateOneByQuery(ctx, bson.M{"_id": oid}, updates, opts)
}

// UpdateOneByQuery applies updates to the first document matching query
func (r *Repository[T]) UpdateOneByQuery(ctx context.Context, query bson.M, updates bson.M, opts UpdateOptions) (*T, error) {
	if query == nil {
		return nil, apperrors.NewInvalidArgumentError("condition must be a plain object")
	}
	update, err := normalizeUpdate(updates, r.now(), opts.Upsert)
	if err != nil {
		return nil, err
	}

	var doc T
	err = r.coll.FindOneAndUpdate(ctx, query, update, opts.findOneAndUpdate()).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError(r.desc.Collection)
		}
		return nil, err
	}
	return &doc, nil
}

// Delete removes the document with id, or every document matching query
// when id is empty. Refuses to run with neither.
func (r *Repository[T]) Delete(ctx context.Context, id string, query bson.M) (int64, error) {
	if id != "" {
		oid, err := ParseID(id)
		if err != nil {
			return 0, err
		}
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			return 0, err
		}
		return res.DeletedCount, nil
	}

	if len(query) == 0 {
		return 0, apperrors.NewBadRequestError("Bad Request: Cannot delete all documents.").
			WithCause(apperrors.ErrUnrestrictedDelete)
	}
	res, err := r.coll.DeleteMany(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FindAndPopulate returns matches with refs resolved; limit applies when > 0
func (r *Repository[T]) FindAndPopulate(ctx context.Context, condition bson.M, refs []Populate, limit int64) ([]T, error) {
	if condition == nil {
		return nil, apperrors.NewInvalidArgumentError("condition must be a plain object")
	}
	w := window{limit: limit, bounded: limit > 0}
	if len(refs) == 0 {
		opts := options.Find()
		if w.bounded {
			opts.SetLimit(limit)
		}
		return r.find(ctx, condition, opts)
	}
	pipeline, err := buildPipeline(condition, w, refs, nil)
	if err != nil {
		return nil, err
	}
	return r.aggregate(ctx, pipeline)
}

// FindOneAndPopulate returns the first match with refs resolved, or nil
func (r *Repository[T]) FindOneAndPopulate(ctx context.Context, condition bson.M, refs []Populate) (*T, error) {
	items, err := r.FindAndPopulate(ctx, condition, refs, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Paginate returns one window of the documents matching condition together
// with the unbounded match count
func (r *Repository[T]) Paginate(ctx context.Context, condition bson.M, opts QueryOptions) (*Page[T], error) {
	if condition == nil {
		return nil, apperrors.NewInvalidArgumentError("condition must be a plain object")
	}
	w := normalizeWindow(opts)

	var (
		items []T
		err   error
	)
	if len(opts.Populate) == 0 {
		findOpts := options.Find()
		if w.skip > 0 {
			findOpts.SetSkip(w.skip)
		}
		if w.bounded {
			findOpts.SetLimit(w.limit)
		}
		if len(w.sort) > 0 {
			findOpts.SetSort(w.sort)
		}
		if len(opts.Projection) > 0 {
			findOpts.SetProjection(opts.Projection)
		}
		items, err = r.find(ctx, condition, findOpts)
	} else {
		var pipeline bson.A
		pipeline, err = buildPipeline(condition, w, opts.Populate, opts.Projection)
		if err != nil {
			return nil, err
		}
		items, err = r.aggregate(ctx, pipeline)
	}
	if err != nil {
		return nil, err
	}

	total, err := r.coll.CountDocuments(ctx, condition)
	if err != nil {
		return nil, err
	}
	return newPage(w, total, items), nil
}

// Search matches text case-insensitively against the descriptor's search
// fields, narrowed by condition, and paginates the result
func (r *Repository[T]) Search(ctx context.Context, text string, condition bson.M, opts QueryOptions) (*Page[T], error) {
	if condition == nil {
		return nil, apperrors.NewInvalidArgumentError("condition must be a plain object")
	}
	if len(r.desc.SearchFields) == 0 {
		return nil, apperrors.NewInvalidArgumentError("collection has no searchable fields").
			WithDetail("collection", r.desc.Collection)
	}
	return r.Paginate(ctx, searchCondition(text, r.desc.SearchFields, condition), opts)
}
