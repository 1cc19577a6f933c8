package authz

import (
	"errors"
	"testing"
	"time"

	"campus-connect/app/server/models"
)

func TestRequestAdminJoin(t *testing.T) {
	t.Parallel()

	s := &models.Society{Admins: []string{"admin@iut-dhaka.edu"}}
	now := time.Now()

	req, err := RequestAdminJoin(s, "new@iut-dhaka.edu", "New User", now)
	if err != nil {
		t.Fatalf("RequestAdminJoin: %v", err)
	}
	if req.Status != models.AdminRequestPending {
		t.Fatalf("expected pending status, got %q", req.Status)
	}
	if req.ID.IsZero() {
		t.Fatal("expected a request ID")
	}

	if _, err := RequestAdminJoin(s, "new@iut-dhaka.edu", "New User", now); !errors.Is(err, ErrAlreadyRequested) {
		t.Fatalf("expected ErrAlreadyRequested, got %v", err)
	}
	if _, err := RequestAdminJoin(s, "admin@iut-dhaka.edu", "Admin", now); !errors.Is(err, ErrAlreadyAdmin) {
		t.Fatalf("expected ErrAlreadyAdmin, got %v", err)
	}
	if len(s.AdminRequests) != 1 {
		t.Fatalf("queue changed on rejected submissions: %v", s.AdminRequests)
	}
}

func TestApproveAdminRequest(t *testing.T) {
	t.Parallel()

	s := &models.Society{}
	req, err := RequestAdminJoin(s, "new@iut-dhaka.edu", "New User", time.Now())
	if err != nil {
		t.Fatalf("RequestAdminJoin: %v", err)
	}

	approved, err := ApproveAdminRequest(s, req.ID)
	if err != nil {
		t.Fatalf("ApproveAdminRequest: %v", err)
	}
	if approved.Status != models.AdminRequestApproved {
		t.Fatalf("expected approved status, got %q", approved.Status)
	}
	if !IsSocietyAdmin(s, "new@iut-dhaka.edu") {
		t.Fatal("approved requester must be in the admin set")
	}

	// approved is terminal
	if _, err := ApproveAdminRequest(s, req.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
	if _, err := RejectAdminRequest(s, req.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestApproveIsIdempotentOnAdminSet(t *testing.T) {
	t.Parallel()

	// Two pending requests for the same email must not duplicate the
	// admin entry.
	s := &models.Society{}
	first, err := RequestAdminJoin(s, "dup@iut-dhaka.edu", "Dup", time.Now())
	if err != nil {
		t.Fatalf("RequestAdminJoin: %v", err)
	}
	if _, err := RejectAdminRequest(s, first.ID); err != nil {
		t.Fatalf("RejectAdminRequest: %v", err)
	}
	second, err := RequestAdminJoin(s, "dup@iut-dhaka.edu", "Dup", time.Now())
	if err != nil {
		t.Fatalf("RequestAdminJoin after reject: %v", err)
	}

	s.Admins = append(s.Admins, "dup@iut-dhaka.edu")
	if _, err := ApproveAdminRequest(s, second.ID); err != nil {
		t.Fatalf("ApproveAdminRequest: %v", err)
	}

	count := 0
	for _, a := range s.Admins {
		if a == "dup@iut-dhaka.edu" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one admin entry, got %d", count)
	}
}

func TestRejectAdminRequest(t *testing.T) {
	t.Parallel()

	s := &models.Society{}
	req, err := RequestAdminJoin(s, "new@iut-dhaka.edu", "New User", time.Now())
	if err != nil {
		t.Fatalf("RequestAdminJoin: %v", err)
	}

	rejected, err := RejectAdminRequest(s, req.ID)
	if err != nil {
		t.Fatalf("RejectAdminRequest: %v", err)
	}
	if rejected.Status != models.AdminRequestRejected {
		t.Fatalf("expected rejected status, got %q", rejected.Status)
	}
	if IsSocietyAdmin(s, "new@iut-dhaka.edu") {
		t.Fatal("rejected requester must not be in the admin set")
	}

	if _, err := ApproveAdminRequest(s, req.ID); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestModerateUnknownRequest(t *testing.T) {
	t.Parallel()

	s := &models.Society{}
	if _, err := RequestAdminJoin(s, "a@iut-dhaka.edu", "A", time.Now()); err != nil {
		t.Fatalf("RequestAdminJoin: %v", err)
	}

	other := models.AdminRequest{}
	if _, err := ApproveAdminRequest(s, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
