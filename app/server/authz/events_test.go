package authz

import (
	"errors"
	"testing"
	"time"

	"campus-connect/app/server/models"
)

func testEvent(max int, deadline time.Time) *models.Event {
	return &models.Event{
		MaxParticipants:      max,
		RegistrationDeadline: deadline,
		Registrations:        []string{},
	}
}

func TestRegisterForEvent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	e := testEvent(2, now.Add(time.Hour))

	if err := RegisterForEvent(e, "a@iut-dhaka.edu", now); err != nil {
		t.Fatalf("RegisterForEvent: %v", err)
	}
	if !IsRegistered(e, "a@iut-dhaka.edu") {
		t.Fatal("expected registration recorded")
	}

	if err := RegisterForEvent(e, "a@iut-dhaka.edu", now); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestRegisterForEvent_Full(t *testing.T) {
	t.Parallel()

	now := time.Now()
	e := testEvent(1, now.Add(time.Hour))

	if err := RegisterForEvent(e, "a@iut-dhaka.edu", now); err != nil {
		t.Fatalf("RegisterForEvent: %v", err)
	}
	if err := RegisterForEvent(e, "b@iut-dhaka.edu", now); !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
	if len(e.Registrations) != 1 {
		t.Fatalf("full event mutated: %v", e.Registrations)
	}
}

func TestRegisterForEvent_DeadlinePassed(t *testing.T) {
	t.Parallel()

	now := time.Now()
	e := testEvent(10, now.Add(-time.Minute))

	if err := RegisterForEvent(e, "a@iut-dhaka.edu", now); !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestUnregisterFromEvent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	e := testEvent(5, now.Add(time.Hour))

	if err := RegisterForEvent(e, "a@iut-dhaka.edu", now); err != nil {
		t.Fatalf("RegisterForEvent: %v", err)
	}

	UnregisterFromEvent(e, "a@iut-dhaka.edu")
	if IsRegistered(e, "a@iut-dhaka.edu") {
		t.Fatal("expected registration removed")
	}

	// never-registered caller is a no-op
	UnregisterFromEvent(e, "ghost@iut-dhaka.edu")
	if len(e.Registrations) != 0 {
		t.Fatalf("unexpected registrations: %v", e.Registrations)
	}
}
