package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product represents an item stocked by the shop
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	Amount      float64            `json:"amount" bson:"amount"`
	Unit        string             `json:"unit" bson:"unit"`
}

// ProductInput is the body accepted when adding a product.
// Optional attributes are pointers so absent values are not stored.
type ProductInput struct {
	Name        string   `json:"name" bson:"name" validate:"required,max=200"`
	Price       *float64 `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Amount      *float64 `json:"amount,omitempty" bson:"amount,omitempty" validate:"omitempty,gte=0"`
	Unit        *string  `json:"unit,omitempty" bson:"unit,omitempty" validate:"omitempty,max=50"`
}
