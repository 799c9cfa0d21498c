package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLocation_JSON(t *testing.T) {
	raw, err := json.Marshal(NewLocation(12.5, 77.25))
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":12.5,"longitude":77.25}`, string(raw))

	raw, err = json.Marshal(Location{77.25})
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":null,"longitude":null}`, string(raw))

	var loc Location
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":1,"longitude":2}`), &loc))
	assert.Equal(t, Location{2, 1}, loc)

	assert.Error(t, json.Unmarshal([]byte(`{"latitude":1}`), &loc))
}

func TestLocation_StoredLongitudeFirst(t *testing.T) {
	ad := NewAdvertisement(primitive.NewObjectID())
	ad.Location = NewLocation(10, 20)

	raw, err := bson.Marshal(ad)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, bson.A{20.0, 10.0}, doc["location"])
}

func TestAdvertisement_JSONShape(t *testing.T) {
	creator := primitive.NewObjectID()
	ad := NewAdvertisement(creator)
	ad.URL = "https://cdn.example.com/a.mp4"

	raw, err := json.Marshal(ad)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "video", out["type"])
	assert.Equal(t, creator.Hex(), out["creator"])
	assert.Equal(t, map[string]interface{}{"latitude": nil, "longitude": nil}, out["location"])
	assert.Equal(t, true, out["isApproved"])
	assert.Equal(t, float64(1), out["radius"])
}

func TestAdvertisement_Validate(t *testing.T) {
	ad := &Advertisement{Type: "gif"}
	err := ad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type must be image or video")

	ad = NewAdvertisement(primitive.NewObjectID())
	ad.URL = "https://cdn.example.com/a.png"
	ad.Location = NewLocation(1, 2)
	assert.NoError(t, ad.Validate())
}
