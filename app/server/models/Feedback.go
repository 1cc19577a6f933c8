package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const FeedbackCollection = "feedbacks"

var FeedbackCategories = []string{
	"Teachers",
	"Classrooms",
	"Authority",
	"Accounts Office",
	"Male Residential Hall Rooms",
	"Female Residential Hall Rooms",
	"Male Residential Hall Food",
	"Female Residential Hall Food",
	"Non-Residential Cafeteria Food",
	"Course Outline of a Department",
	"Bus Service",
	"Central Departmental Store",
	"Rocket (Small) Departmental Store",
	"Male Hall Gymnasium",
	"Female Hall Gymnasium",
	"Central Gymnasium",
	"Sports",
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Author    string             `bson:"author" json:"author"` // defaults to Anonymous
	Message   string             `bson:"message" json:"message"`
	Likes     []string           `bson:"likes" json:"likes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Feedback struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category string             `bson:"category" json:"category"`
	Title    string             `bson:"title" json:"title"`
	Message  string             `bson:"message" json:"message"`
	Likes    []string           `bson:"likes" json:"likes"` // liker user identifiers
	Comments []Comment          `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
