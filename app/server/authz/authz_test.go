package authz

import (
	"errors"
	"testing"

	"campus-connect/app/server/models"
)

func TestToggleFollowRoundTrip(t *testing.T) {
	t.Parallel()

	s := &models.Society{Followers: []string{"other@iut-dhaka.edu"}}

	if ToggleFollow(s, "me@iut-dhaka.edu") != true {
		t.Fatal("first toggle should follow")
	}
	if !IsFollowing(s, "me@iut-dhaka.edu") {
		t.Fatal("expected to be following after first toggle")
	}

	if ToggleFollow(s, "me@iut-dhaka.edu") != false {
		t.Fatal("second toggle should unfollow")
	}
	if IsFollowing(s, "me@iut-dhaka.edu") {
		t.Fatal("expected not following after second toggle")
	}
	if !IsFollowing(s, "other@iut-dhaka.edu") {
		t.Fatal("other follower must survive the toggles")
	}
}

func TestLikeRejectsDuplicate(t *testing.T) {
	t.Parallel()

	likes := []string{}

	if err := Like(&likes, "u1"); err != nil {
		t.Fatalf("first like: %v", err)
	}
	err := Like(&likes, "u1")
	if !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
	if len(likes) != 1 {
		t.Fatalf("likes set changed on rejected like: %v", likes)
	}
}

func TestUnlikeIsNoOpWhenNotLiked(t *testing.T) {
	t.Parallel()

	likes := []string{"u1"}

	Unlike(&likes, "u2")
	if len(likes) != 1 || likes[0] != "u1" {
		t.Fatalf("unexpected likes after no-op unlike: %v", likes)
	}

	Unlike(&likes, "u1")
	if len(likes) != 0 {
		t.Fatalf("expected empty likes, got %v", likes)
	}
}

func TestLeaveAdmin(t *testing.T) {
	t.Parallel()

	s := &models.Society{Admins: []string{"a@iut-dhaka.edu", "b@iut-dhaka.edu"}}

	LeaveAdmin(s, "a@iut-dhaka.edu")
	if IsSocietyAdmin(s, "a@iut-dhaka.edu") {
		t.Fatal("expected a@ removed from admins")
	}
	if !IsSocietyAdmin(s, "b@iut-dhaka.edu") {
		t.Fatal("b@ must survive")
	}

	// leaving again is a no-op
	LeaveAdmin(s, "a@iut-dhaka.edu")
	if len(s.Admins) != 1 {
		t.Fatalf("unexpected admins: %v", s.Admins)
	}
}

func TestRemoveAdmin(t *testing.T) {
	t.Parallel()

	s := &models.Society{Admins: []string{"a@iut-dhaka.edu"}}

	if err := RemoveAdmin(s, "missing@iut-dhaka.edu"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := RemoveAdmin(s, "a@iut-dhaka.edu"); err != nil {
		t.Fatalf("RemoveAdmin: %v", err)
	}
	if len(s.Admins) != 0 {
		t.Fatalf("expected empty admins, got %v", s.Admins)
	}
}

func TestMarketplaceOwnership(t *testing.T) {
	t.Parallel()

	post := &models.MarketplacePost{SellerID: 7, PaymentStatus: models.PaymentPending}

	if !CanDeletePost(post, 7) {
		t.Fatal("seller must be able to delete")
	}
	if CanDeletePost(post, 8) {
		t.Fatal("non-seller must not delete")
	}

	if err := MarkPaymentDone(post, 7, "seller"); !errors.Is(err, ErrSelfPurchase) {
		t.Fatalf("expected ErrSelfPurchase, got %v", err)
	}
	if post.PaymentStatus != models.PaymentPending {
		t.Fatal("rejected purchase must not mutate the post")
	}

	if err := ConfirmPayment(post, 7); !errors.Is(err, ErrPaymentNotMarked) {
		t.Fatalf("expected ErrPaymentNotMarked, got %v", err)
	}

	if err := MarkPaymentDone(post, 9, "buyer@iut-dhaka.edu"); err != nil {
		t.Fatalf("MarkPaymentDone: %v", err)
	}
	if post.PaymentStatus != models.PaymentDone || post.BuyerID != 9 {
		t.Fatalf("unexpected post state: %+v", post)
	}

	if err := ConfirmPayment(post, 9); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for buyer confirm, got %v", err)
	}
	if err := ConfirmPayment(post, 7); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
}

func TestLostItemOwnership(t *testing.T) {
	t.Parallel()

	item := &models.LostItem{OwnerID: 3}
	if !CanDeleteLostItem(item, 3) {
		t.Fatal("owner must be able to delete")
	}
	if CanDeleteLostItem(item, 4) {
		t.Fatal("non-owner must not delete")
	}
}
