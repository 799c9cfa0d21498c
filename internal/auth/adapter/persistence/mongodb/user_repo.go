package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/domain/repository"
	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

// UsersCollection is where user documents live
const UsersCollection = "users"

var usersDescriptor = sharedrepo.Descriptor{
	Collection:   UsersCollection,
	SearchFields: []string{"firstName", "lastName", "email"},
}

// MongoUserRepository implements the UserRepository interface using MongoDB
type MongoUserRepository struct {
	users *sharedrepo.Repository[model.User]
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(provider sharedrepo.CollectionProvider) *MongoUserRepository {
	return &MongoUserRepository{
		users: sharedrepo.New[model.User](provider, usersDescriptor),
	}
}

// Create inserts a new user
func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created, err := r.users.Create(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("Email already in use.").WithCause(err)
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a user by id
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.users.GetOneByID(ctx, id)
}

// GetActiveByEmail retrieves the active user that owns email
func (r *MongoUserRepository) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.users.GetOne(ctx, bson.M{
		"email":     model.NormalizeEmail(email),
		"isActive":  true,
		"isDeleted": false,
	}, nil)
}

// EmailInUse reports whether a non-deleted user has email
func (r *MongoUserRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	user, err := r.users.GetOne(ctx, bson.M{
		"email":     model.NormalizeEmail(email),
		"isDeleted": false,
	}, bson.M{"_id": 1})
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Update applies a field update to the user with id
func (r *MongoUserRepository) Update(ctx context.Context, id string, updates bson.M) (*model.User, error) {
	return r.users.UpdateOne(ctx, id, updates, sharedrepo.UpdateOptions{})
}

// ListVendors pages through non-deleted vendors, never exposing password hashes
func (r *MongoUserRepository) ListVendors(ctx context.Context, searchText string, opts sharedrepo.QueryOptions) (*sharedrepo.Page[model.User], error) {
	condition := bson.M{"role": model.RoleVendor, "isDeleted": false}
	opts.Projection = bson.M{"password": 0}
	if searchText != "" {
		return r.users.Search(ctx, searchText, condition, opts)
	}
	return r.users.Paginate(ctx, condition, opts)
}

var _ repository.UserRepository = (*MongoUserRepository)(nil)
