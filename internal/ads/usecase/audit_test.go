package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"adclad/internal/ads/domain/model"
	"adclad/internal/ads/testutil"
)

func TestDiffChanges(t *testing.T) {
	when := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	owner := primitive.NewObjectID()

	tests := []struct {
		name    string
		old     bson.M
		updates bson.M
		want    []model.Change
	}{
		{
			name:    "changed scalars in key order",
			old:     bson.M{"url": "a", "dailyBudget": 50.0, "isActive": true},
			updates: bson.M{"url": "b", "isActive": false, "dailyBudget": 40.0},
			want: []model.Change{
				{Key: "dailyBudget", OldValue: 50.0, NewValue: 40.0},
				{Key: "isActive", OldValue: true, NewValue: false},
				{Key: "url", OldValue: "a", NewValue: "b"},
			},
		},
		{
			name:    "key absent in old is skipped",
			old:     bson.M{"url": "a"},
			updates: bson.M{"radius": 5.0},
			want:    []model.Change{},
		},
		{
			name:    "numbers compare across widths",
			old:     bson.M{"duration": int32(10), "radius": int64(1)},
			updates: bson.M{"duration": 10.0, "radius": 1},
			want:    []model.Change{},
		},
		{
			name:    "named string types compare by value",
			old:     bson.M{"type": "video"},
			updates: bson.M{"type": model.AdTypeVideo},
			want:    []model.Change{},
		},
		{
			name:    "non-scalar values are ignored",
			old:     bson.M{"location": bson.A{1.0, 2.0}, "meta": bson.M{"a": 1}},
			updates: bson.M{"location": model.NewLocation(5, 6), "meta": bson.M{"a": 2}},
			want:    []model.Change{},
		},
		{
			name:    "times compare by instant",
			old:     bson.M{"startsAt": primitive.NewDateTimeFromTime(when)},
			updates: bson.M{"startsAt": when.In(time.FixedZone("IST", 19800))},
			want:    []model.Change{},
		},
		{
			name:    "object ids compare by value",
			old:     bson.M{"owner": owner},
			updates: bson.M{"owner": owner},
			want:    []model.Change{},
		},
		{
			name:    "nil new value is ignored",
			old:     bson.M{"url": "a"},
			updates: bson.M{"url": nil},
			want:    []model.Change{},
		},
		{
			name:    "type change counts as a change",
			old:     bson.M{"radius": "1"},
			updates: bson.M{"radius": 1.0},
			want:    []model.Change{{Key: "radius", OldValue: "1", NewValue: 1.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffChanges(tt.old, tt.updates))
		})
	}
}

func TestToDocument_Advertisement(t *testing.T) {
	ad := testutil.Ad(primitive.NewObjectID())
	doc, err := toDocument(ad)
	require.NoError(t, err)

	assert.Equal(t, "video", doc["type"])
	assert.Equal(t, 50.0, doc["dailyBudget"])
	assert.Equal(t, ad.ID, doc["_id"])

	changes := DiffChanges(doc, bson.M{"type": model.AdTypeImage, "dailyBudget": 50.0})
	assert.Equal(t, []model.Change{{Key: "type", OldValue: "video", NewValue: model.AdTypeImage}}, changes)
}

func TestAuditRecorder_Record(t *testing.T) {
	ctx := context.Background()
	adID, actor := primitive.NewObjectID(), primitive.NewObjectID()
	changes := []model.Change{{Key: "url", OldValue: "a", NewValue: "b"}}

	t.Run("no changes writes nothing", func(t *testing.T) {
		history := &testutil.MockStore[model.AdvertisementHistory]{}
		entry, err := NewAuditRecorder(history).Record(ctx, adID, actor, nil)
		require.NoError(t, err)
		assert.Nil(t, entry)
		history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("writes one record", func(t *testing.T) {
		history := &testutil.MockStore[model.AdvertisementHistory]{}
		history.On("Create", ctx, mock.MatchedBy(func(h *model.AdvertisementHistory) bool {
			return h.Advertisement.ID == adID && h.UpdatedBy.ID == actor && len(h.Changes) == 1
		})).Return(nil, nil).Once()

		entry, err := NewAuditRecorder(history).Record(ctx, adID, actor, changes)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, changes, entry.Changes)
		history.AssertExpectations(t)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		history := &testutil.MockStore[model.AdvertisementHistory]{}
		storeErr := errors.New("connection reset")
		history.On("Create", ctx, mock.Anything).Return(nil, storeErr)

		_, err := NewAuditRecorder(history).Record(ctx, adID, actor, changes)
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
		assert.Contains(t, err.Error(), "failed to record advertisement history")
	})
}
