package authz

import (
	"time"

	"campus-connect/app/server/models"
)

func IsRegistered(e *models.Event, email string) bool {
	return contains(e.Registrations, email)
}

// RegisterForEvent adds the caller to the registration list. Capacity
// and deadline are checked against the current document before the
// append; a full event stays untouched.
func RegisterForEvent(e *models.Event, email string, now time.Time) error {
	if IsRegistered(e, email) {
		return ErrAlreadyJoined
	}
	if len(e.Registrations) >= e.MaxParticipants {
		return ErrEventFull
	}
	if now.After(e.RegistrationDeadline) {
		return ErrDeadlinePassed
	}

	e.Registrations = append(e.Registrations, email)
	return nil
}

// UnregisterFromEvent is a silent no-op for callers that never
// registered.
func UnregisterFromEvent(e *models.Event, email string) {
	e.Registrations = remove(e.Registrations, email)
}
