package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateName   = errors.New("product already exists")
	ErrInvalidID       = errors.New("invalid id")
)

// parseID converts a hex string into an ObjectID
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// insertedHex renders an InsertedID as a hex string when it is an ObjectID
func insertedHex(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
