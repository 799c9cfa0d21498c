package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	apperrors "adclad/internal/shared/errors"
)

func stageName(t *testing.T, stage interface{}) string {
	t.Helper()
	d, ok := stage.(bson.D)
	require.True(t, ok)
	require.Len(t, d, 1)
	return d[0].Key
}

func TestBuildPipeline_StageOrder(t *testing.T) {
	w := normalizeWindow(QueryOptions{Skip: Num(5), Limit: Num(10), Sort: "createdAt", Order: Num(-1)})
	refs := []Populate{
		{Path: "creator", From: "users", Select: []string{"firstName", "email"}},
		{Path: "tags", From: "categories", Many: true},
	}
	pipeline, err := buildPipeline(bson.M{"isDeleted": false}, w, refs, bson.M{"comments": 0})
	require.NoError(t, err)

	var names []string
	for _, s := range pipeline {
		names = append(names, stageName(t, s))
	}
	assert.Equal(t, []string{"$match", "$sort", "$skip", "$limit", "$lookup", "$unwind", "$lookup", "$project"}, names)
}

func TestBuildPipeline_UnboundedHasNoLimit(t *testing.T) {
	pipeline, err := buildPipeline(bson.M{}, normalizeWindow(QueryOptions{}), nil, nil)
	require.NoError(t, err)
	assert.Len(t, pipeline, 1)
}

func TestPopulate_SingleLookup(t *testing.T) {
	stages := Populate{Path: "creator", From: "users", Select: []string{"email"}}.stages()
	require.Len(t, stages, 2)

	lookup := stages[0].(bson.D)[0].Value.(bson.D).Map()
	assert.Equal(t, "users", lookup["from"])
	assert.Equal(t, "creator", lookup["as"])
	assert.Equal(t, bson.D{{Key: "ref", Value: "$creator"}}, lookup["let"])
	assert.Len(t, lookup["pipeline"], 2)
}

func TestPopulate_ValidatesPath(t *testing.T) {
	_, err := buildPipeline(bson.M{}, window{}, []Populate{{Path: "comments.commentBy", From: "users"}}, nil)
	assert.True(t, apperrors.IsInvalidArgument(err))

	_, err = buildPipeline(bson.M{}, window{}, []Populate{{Path: "creator"}}, nil)
	assert.True(t, apperrors.IsInvalidArgument(err))
}
