package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"adclad/internal/auth/adapter/persistence/mongodb"
	"adclad/internal/auth/domain/model"
	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

func usersNS(mt *mtest.T) string {
	return mt.DB.Name() + "." + mongodb.UsersCollection
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.Create(context.Background(), model.NewUser("Alice", "Smith", "Alice@Example.com", "hash", ""))
		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.Equal(mt, "alice@example.com", user.Email)
		assert.Equal(mt, model.RoleVendor, user.Role)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), model.NewUser("alice", "smith", "alice@example.com", "hash", ""))
		assert.True(mt, apperrors.IsConflict(err))
	})

	mt.Run("create invalid", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		_, err := repo.Create(context.Background(), model.NewUser("", "smith", "nope", "hash", ""))
		assert.True(mt, apperrors.IsValidation(err))
	})

	mt.Run("email in use", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}}))

		inUse, err := repo.EmailInUse(context.Background(), "alice@example.com")
		require.NoError(mt, err)
		assert.True(mt, inUse)
	})

	mt.Run("email free", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch))

		inUse, err := repo.EmailInUse(context.Background(), "bob@example.com")
		require.NoError(mt, err)
		assert.False(mt, inUse)
	})

	mt.Run("get active by email", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "admin"},
			{Key: "isActive", Value: true},
		}))

		user, err := repo.GetActiveByEmail(context.Background(), "ALICE@example.com")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, model.RoleAdmin, user.Role)
		assert.Equal(mt, "hash", user.Password)
	})

	mt.Run("list vendors", func(mt *mtest.T) {
		repo := mongodb.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "v1@example.com"}, {Key: "role", Value: "vendor"}},
			),
			mtest.CreateCursorResponse(0, usersNS(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: 21}}),
		)

		page, err := repo.ListVendors(context.Background(), "", sharedrepo.QueryOptions{Limit: sharedrepo.Num(1)})
		require.NoError(mt, err)
		assert.Equal(mt, int64(21), page.TotalCount)
		assert.True(mt, page.HasNext)
		assert.Empty(mt, page.Items[0].Password)
	})
}
