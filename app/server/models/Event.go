package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const EventCollection = "events"

var EventCategories = []string{"Workshop", "Competition", "Cultural", "Seminar", "Social", "Exhibition", "Professional"}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	SocietyID   primitive.ObjectID `bson:"societyId" json:"societyId"`
	SocietyName string             `bson:"societyName" json:"societyName"` // denormalized copy, advisory only
	Category    string             `bson:"category" json:"category"`
	Date        time.Time          `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Venue       string             `bson:"venue" json:"venue"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`

	MaxParticipants      int       `bson:"maxParticipants" json:"maxParticipants"`
	RegistrationDeadline time.Time `bson:"registrationDeadline" json:"registrationDeadline"`
	Registrations        []string  `bson:"registrations" json:"registrations"` // user emails

	CreatedBy string `bson:"createdBy" json:"createdBy"` // email of the society admin who created it

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
