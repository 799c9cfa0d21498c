package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "adclad/internal/shared/errors"
)

func TestNormalizeUpdate_WrapsPlainFields(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out, err := normalizeUpdate(bson.M{"dailyBudget": 50}, now, false)
	require.NoError(t, err)

	set := out["$set"].(bson.M)
	assert.Equal(t, 50, set["dailyBudget"])
	assert.Equal(t, now, set["updatedAt"])
	assert.NotContains(t, out, "$setOnInsert")
}

func TestNormalizeUpdate_OperatorsPassThrough(t *testing.T) {
	now := time.Now()
	push := bson.M{"comments": bson.M{"comment": "hi"}}
	out, err := normalizeUpdate(bson.M{"$push": push}, now, false)
	require.NoError(t, err)

	assert.Equal(t, push, out["$push"])
	assert.Equal(t, bson.M{"updatedAt": now}, out["$set"])
}

func TestNormalizeUpdate_KeepsExplicitUpdatedAt(t *testing.T) {
	explicit := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := normalizeUpdate(bson.M{"$set": map[string]interface{}{"updatedAt": explicit}}, time.Now(), false)
	require.NoError(t, err)
	assert.Equal(t, explicit, out["$set"].(bson.M)["updatedAt"])
}

func TestNormalizeUpdate_Upsert(t *testing.T) {
	now := time.Now()
	out, err := normalizeUpdate(bson.M{"balance": 10}, now, true)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"createdAt": now}, out["$setOnInsert"])
}

func TestNormalizeUpdate_Rejects(t *testing.T) {
	_, err := normalizeUpdate(bson.M{}, time.Now(), false)
	assert.True(t, apperrors.IsInvalidArgument(err))

	_, err = normalizeUpdate(bson.M{"$set": bson.M{"a": 1}, "b": 2}, time.Now(), false)
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestUpdateOptions_Defaults(t *testing.T) {
	opts := UpdateOptions{}.findOneAndUpdate()
	require.NotNil(t, opts.ReturnDocument)
	assert.Equal(t, options.After, *opts.ReturnDocument)
	assert.Nil(t, opts.Upsert)

	opts = UpdateOptions{ReturnOriginal: true, Upsert: true, ArrayFilters: []interface{}{bson.M{"c._id": 1}}}.findOneAndUpdate()
	assert.Equal(t, options.Before, *opts.ReturnDocument)
	assert.True(t, *opts.Upsert)
	require.NotNil(t, opts.ArrayFilters)
	assert.Len(t, opts.ArrayFilters.Filters, 1)
}
