// Package authz holds every per-resource authorization check and the
// guarded mutations behind them. All functions are check-then-act over
// in-memory documents: on failure nothing is mutated, and the caller
// only persists after success. Relations are always re-derived from the
// current document, never from the session token.
package authz

import (
	"errors"

	"campus-connect/app/server/models"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyProcessed = errors.New("request already processed")
	ErrAlreadyRequested = errors.New("admin request already pending")
	ErrAlreadyAdmin     = errors.New("already an admin")
	ErrAlreadyLiked     = errors.New("already liked")
	ErrAlreadyJoined    = errors.New("already registered")
	ErrEventFull        = errors.New("event fully booked")
	ErrDeadlinePassed   = errors.New("registration deadline passed")
	ErrSelfPurchase     = errors.New("cannot buy own item")
	ErrPaymentNotMarked = errors.New("payment not marked as done")
)

func contains(set []string, member string) bool {
	for _, m := range set {
		if m == member {
			return true
		}
	}
	return false
}

func remove(set []string, member string) []string {
	out := set[:0]
	for _, m := range set {
		if m != member {
			out = append(out, m)
		}
	}
	return out
}

// IsSocietyAdmin is the admin-of-collection relation: society field
// edits, panel and gallery CRUD, and event creation all require it.
func IsSocietyAdmin(s *models.Society, email string) bool {
	return contains(s.Admins, email)
}

func IsFollowing(s *models.Society, email string) bool {
	return contains(s.Followers, email)
}

// ToggleFollow flips the caller's membership in the follower set and
// reports the new state. Two consecutive calls cancel out.
func ToggleFollow(s *models.Society, email string) (following bool) {
	if IsFollowing(s, email) {
		s.Followers = remove(s.Followers, email)
		return false
	}
	s.Followers = append(s.Followers, email)
	return true
}

// LeaveAdmin removes the caller from the admin set. Leaving a society
// one does not administer is a no-op.
func LeaveAdmin(s *models.Society, email string) {
	s.Admins = remove(s.Admins, email)
}

// RemoveAdmin strips an email from the admin set (administrator-layer
// moderation).
func RemoveAdmin(s *models.Society, email string) error {
	if !contains(s.Admins, email) {
		return ErrNotFound
	}
	s.Admins = remove(s.Admins, email)
	return nil
}
