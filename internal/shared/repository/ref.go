package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base carries the fields every stored document has. Embed it inline:
//
//	repository.Base `bson:",inline"`
type Base struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate assigns an id when missing and stamps both timestamps
func (b *Base) BeforeCreate(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Hex returns the document id as a hex string
func (b Base) Hex() string {
	return b.ID.Hex()
}

// Ref is a weak back-reference to a document in another collection.
// It is stored as a bare ObjectID. After population the referenced
// document is kept inline in Doc.
type Ref struct {
	ID  primitive.ObjectID
	Doc bson.M
}

// NewRef builds an unpopulated reference
func NewRef(id primitive.ObjectID) Ref {
	return Ref{ID: id}
}

// RefFromHex parses a hex id into a reference
func RefFromHex(hex string) (Ref, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return Ref{}, err
	}
	return Ref{ID: id}, nil
}

// IsZero lets `omitempty` drop unset references
func (r Ref) IsZero() bool {
	return r.ID.IsZero() && r.Doc == nil
}

// Populated reports whether the referenced document was resolved inline
func (r Ref) Populated() bool {
	return r.Doc != nil
}

// Hex returns the referenced id as a hex string, empty when unset
func (r Ref) Hex() string {
	if r.ID.IsZero() {
		return ""
	}
	return r.ID.Hex()
}

// MarshalBSONValue stores only the id
func (r Ref) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.ID.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(r.ID)
}

// UnmarshalBSONValue accepts either a bare id or a populated document
func (r *Ref) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeObjectID:
		id, ok := bson.RawValue{Type: t, Value: data}.ObjectIDOK()
		if !ok {
			return fmt.Errorf("invalid object id reference")
		}
		*r = Ref{ID: id}
	case bson.TypeEmbeddedDocument:
		var doc bson.M
		if err := bson.Unmarshal(data, &doc); err != nil {
			return err
		}
		ref := Ref{Doc: doc}
		if id, ok := doc["_id"].(primitive.ObjectID); ok {
			ref.ID = id
		}
		*r = ref
	case bson.TypeNull, bson.TypeUndefined:
		*r = Ref{}
	default:
		return fmt.Errorf("cannot decode %s into a reference", t)
	}
	return nil
}

// MarshalJSON renders the populated document when present, else the hex id
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID.Hex())
}

// UnmarshalJSON accepts a hex id string or null
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ref{}
		return nil
	}
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return fmt.Errorf("reference must be an id string: %w", err)
	}
	ref, err := RefFromHex(hex)
	if err != nil {
		return err
	}
	*r = ref
	return nil
}
