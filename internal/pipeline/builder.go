package pipeline

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Directive values accepted per field on the product listing endpoint
const (
	DirectiveShow = "show"
	DirectiveHide = "hide"
	DirectiveAsc  = "asc"
	DirectiveDesc = "desc"
)

// BuildListPipeline translates per-field request parameters into an
// aggregation pipeline of at most two stages: $project followed by $sort.
//
// Only the names in Fields are consulted and unrecognized values are
// ignored, so the function never fails. When both stages are present every
// sort key is forced into the projection, even over an explicit "hide".
func BuildListPipeline(params map[string]string) mongo.Pipeline {
	var project, sort bson.D

	for _, f := range Fields {
		switch params[f.Name] {
		case DirectiveHide:
			project = append(project, bson.E{Key: f.Name, Value: 0})
		case DirectiveShow:
			project = append(project, bson.E{Key: f.Name, Value: 1})
		case DirectiveAsc:
			sort = append(sort, bson.E{Key: f.Name, Value: 1})
		case DirectiveDesc:
			sort = append(sort, bson.E{Key: f.Name, Value: -1})
		}
	}

	if len(project) > 0 && len(sort) > 0 {
		for _, s := range sort {
			project = setKey(project, s.Key, 1)
		}
	}

	stages := mongo.Pipeline{}
	if len(project) > 0 {
		stages = append(stages, bson.D{{Key: "$project", Value: project}})
	}
	if len(sort) > 0 {
		stages = append(stages, bson.D{{Key: "$sort", Value: sort}})
	}
	return stages
}

// setKey overwrites key in place, or appends it when absent
func setKey(d bson.D, key string, value any) bson.D {
	for i := range d {
		if d[i].Key == key {
			d[i].Value = value
			return d
		}
	}
	return append(d, bson.E{Key: key, Value: value})
}
