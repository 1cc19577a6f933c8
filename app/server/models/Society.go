package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SocietyCollection = "societies"

var SocietyCategories = []string{"Technical", "Cultural", "Professional", "Sports", "Other"}

type PanelMember struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Position   string             `bson:"position" json:"position"`
	Department string             `bson:"department" json:"department"`
	Batch      string             `bson:"batch" json:"batch"`
}

type PastEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Date        time.Time          `bson:"date" json:"date"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description" json:"description"`
}

// Admin-join request states. Approved and rejected are terminal.
const (
	AdminRequestPending  = "pending"
	AdminRequestApproved = "approved"
	AdminRequestRejected = "rejected"
)

type AdminRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	UserName    string             `bson:"userName" json:"userName"`
	RequestedAt time.Time          `bson:"requestedAt" json:"requestedAt"`
	Status      string             `bson:"status" json:"status"`
}

type Society struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"` // unique across societies
	Logo            string             `bson:"logo" json:"logo"`
	CoverPhoto      string             `bson:"coverPhoto" json:"coverPhoto"`
	Description     string             `bson:"description" json:"description"`
	Category        string             `bson:"category" json:"category"`
	EstablishedYear int                `bson:"establishedYear" json:"establishedYear"`
	Email           string             `bson:"email" json:"email"`
	Facebook        string             `bson:"facebook" json:"facebook"`
	Website         string             `bson:"website" json:"website"`

	PanelMembers []PanelMember `bson:"panelMembers" json:"panelMembers"`
	PastGallery  []PastEvent   `bson:"pastGallery" json:"pastGallery"`

	// Membership relations, stored as user emails. Authorization is
	// re-derived from these sets on every request, never cached.
	Admins        []string       `bson:"admins" json:"admins"`
	Followers     []string       `bson:"followers" json:"followers"`
	AdminRequests []AdminRequest `bson:"adminRequests" json:"adminRequests"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
