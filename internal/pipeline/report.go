package pipeline

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportTotalField is the computed stock value added by ReportPipeline
const ReportTotalField = "total"

// ReportPipeline returns the stock value report: description dropped,
// total = trunc(price * amount, 2), sorted by total descending.
func ReportPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unset", Value: "description"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: ReportTotalField, Value: bson.D{
				{Key: "$trunc", Value: bson.A{
					bson.D{{Key: "$sum", Value: bson.D{
						{Key: "$multiply", Value: bson.A{"$price", "$amount"}},
					}}},
					2,
				}},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: ReportTotalField, Value: -1}}}},
	}
}
