package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StyleProfile represents a user's body and style attributes used to
// condition outfit planning. It is read-only input for the pipeline.
type StyleProfile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Gender     string             `bson:"gender" json:"gender"`
	Age        int                `bson:"age" json:"age"`
	Height     float64            `bson:"height" json:"height"` // in cm
	Weight     float64            `bson:"weight" json:"weight"` // in kg
	Chest      float64            `bson:"chest" json:"chest"`   // in inches
	Waist      float64            `bson:"waist" json:"waist"`   // in inches
	Hips       float64            `bson:"hips" json:"hips"`     // in inches
	SkinTone   string             `bson:"skin_tone,omitempty" json:"skin_tone,omitempty"`
	StyleNotes string             `bson:"style_notes,omitempty" json:"style_notes,omitempty"`
	ImagePaths []string           `bson:"image_paths" json:"image_paths"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
