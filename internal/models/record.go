package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Record represents an employee record
type Record struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Position string             `json:"position" bson:"position"`
	Level    string             `json:"level" bson:"level"`
}

// RecordInput is the body accepted when adding or updating a record
type RecordInput struct {
	Name     string `json:"name" bson:"name" validate:"required,max=200"`
	Position string `json:"position" bson:"position" validate:"max=200"`
	Level    string `json:"level" bson:"level" validate:"max=50"`
}
