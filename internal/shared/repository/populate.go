package repository

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	apperrors "adclad/internal/shared/errors"
)

// Populate describes a reference to resolve inline
type Populate struct {
	// Path is the top-level field holding the reference
	Path string
	// From is the collection the reference points into
	From string
	// Select restricts the fields kept from the referenced document
	Select []string
	// Many marks a path holding an array of references
	Many bool
}

func (p Populate) validate() error {
	if p.Path == "" || p.From == "" {
		return apperrors.NewInvalidArgumentError("populate requires a path and a source collection")
	}
	if strings.Contains(p.Path, ".") {
		return apperrors.NewInvalidArgumentError("populate supports top-level reference paths only").
			WithDetail("path", p.Path)
	}
	return nil
}

// stages renders the $lookup (and $unwind for single refs) for one reference
func (p Populate) stages() bson.A {
	var match bson.D
	if p.Many {
		match = bson.D{{Key: "$in", Value: bson.A{"$_id", bson.D{{Key: "$ifNull", Value: bson.A{"$$ref", bson.A{}}}}}}}
	} else {
		match = bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$ref"}}}
	}

	pipeline := bson.A{bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: match}}}}}
	if len(p.Select) > 0 {
		proj := bson.D{}
		for _, f := range p.Select {
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: proj}})
	}

	out := bson.A{bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: p.From},
		{Key: "let", Value: bson.D{{Key: "ref", Value: "$" + p.Path}}},
		{Key: "pipeline", Value: pipeline},
		{Key: "as", Value: p.Path},
	}}}}
	if !p.Many {
		out = append(out, bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + p.Path},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}})
	}
	return out
}

// buildPipeline assembles match, window, lookups and projection
func buildPipeline(condition bson.M, w window, refs []Populate, projection bson.M) (bson.A, error) {
	pipeline := bson.A{bson.D{{Key: "$match", Value: condition}}}
	if len(w.sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: w.sort}})
	}
	if w.skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: w.skip}})
	}
	if w.bounded {
		limit := w.limit
		if limit < 0 {
			limit = -limit
		}
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	for _, ref := range refs {
		if err := ref.validate(); err != nil {
			return nil, err
		}
		pipeline = append(pipeline, ref.stages()...)
	}
	if len(projection) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection}})
	}
	return pipeline, nil
}
