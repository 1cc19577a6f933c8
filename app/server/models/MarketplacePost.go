package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MarketplaceCollection = "marketplace_posts"

var MarketplaceCategories = []string{
	"Home items",
	"Laptop, PC and PC parts",
	"Books, Study materials",
	"Bikes and cycles",
	"Others",
}

// Payment handshake: buyer marks Payment Done, seller confirms and the
// listing is removed.
const (
	PaymentPending = "Pending"
	PaymentDone    = "Payment Done"
)

type MarketplacePost struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	// Soft reference into the relational user store
	SellerID   uint   `bson:"sellerId" json:"sellerId"`
	SellerName string `bson:"sellerName" json:"sellerName"`

	Title       string   `bson:"title" json:"title"`
	Category    string   `bson:"category" json:"category"`
	Description string   `bson:"description" json:"description"`
	Images      []string `bson:"images" json:"images"`
	Location    string   `bson:"location" json:"location"`
	Price       float64  `bson:"price" json:"price"`
	PhoneNumber string   `bson:"phone_number" json:"phone_number"`

	PaymentStatus string `bson:"paymentStatus" json:"paymentStatus"`
	BuyerID       uint   `bson:"buyerId,omitempty" json:"buyerId,omitempty"`
	BuyerName     string `bson:"buyerName,omitempty" json:"buyerName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
