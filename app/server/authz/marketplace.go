package authz

import "campus-connect/app/server/models"

// CanDeletePost: seller-only delete.
func CanDeletePost(p *models.MarketplacePost, userID uint) bool {
	return p.SellerID == userID
}

// MarkPaymentDone records the buyer on the post. Sellers cannot buy
// their own item.
func MarkPaymentDone(p *models.MarketplacePost, buyerID uint, buyerName string) error {
	if p.SellerID == buyerID {
		return ErrSelfPurchase
	}

	p.PaymentStatus = models.PaymentDone
	p.BuyerID = buyerID
	p.BuyerName = buyerName
	return nil
}

// ConfirmPayment is the seller-only second step of the handshake; the
// buyer must have marked payment first. The caller deletes the listing
// after a successful confirm.
func ConfirmPayment(p *models.MarketplacePost, sellerID uint) error {
	if p.SellerID != sellerID {
		return ErrForbidden
	}
	if p.PaymentStatus != models.PaymentDone {
		return ErrPaymentNotMarked
	}
	return nil
}

// CanDeleteLostItem: owner-only delete.
func CanDeleteLostItem(item *models.LostItem, userID uint) bool {
	return item.OwnerID == userID
}
