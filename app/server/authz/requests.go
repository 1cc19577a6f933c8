package authz

import (
	"time"

	"campus-connect/app/server/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestAdminJoin queues a pending admin-join request for the caller.
// Admins and callers with a pending request already in the queue are
// rejected; a rejected caller may not re-submit.
func RequestAdminJoin(s *models.Society, email, name string, now time.Time) (*models.AdminRequest, error) {
	if IsSocietyAdmin(s, email) {
		return nil, ErrAlreadyAdmin
	}
	for _, r := range s.AdminRequests {
		if r.UserEmail == email && r.Status == models.AdminRequestPending {
			return nil, ErrAlreadyRequested
		}
	}

	req := models.AdminRequest{
		ID:          primitive.NewObjectID(),
		UserEmail:   email,
		UserName:    name,
		RequestedAt: now,
		Status:      models.AdminRequestPending,
	}
	s.AdminRequests = append(s.AdminRequests, req)

	return &s.AdminRequests[len(s.AdminRequests)-1], nil
}

func findAdminRequest(s *models.Society, requestID primitive.ObjectID) *models.AdminRequest {
	for i := range s.AdminRequests {
		if s.AdminRequests[i].ID == requestID {
			return &s.AdminRequests[i]
		}
	}
	return nil
}

// ApproveAdminRequest moves a pending request to approved and adds the
// requester to the admin set. The add is idempotent: repeat approvals of
// other requests for the same email never duplicate the entry. Approved
// and rejected are terminal states.
func ApproveAdminRequest(s *models.Society, requestID primitive.ObjectID) (*models.AdminRequest, error) {
	req := findAdminRequest(s, requestID)
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status != models.AdminRequestPending {
		return nil, ErrAlreadyProcessed
	}

	if !contains(s.Admins, req.UserEmail) {
		s.Admins = append(s.Admins, req.UserEmail)
	}
	req.Status = models.AdminRequestApproved

	return req, nil
}

func RejectAdminRequest(s *models.Society, requestID primitive.ObjectID) (*models.AdminRequest, error) {
	req := findAdminRequest(s, requestID)
	if req == nil {
		return nil, ErrNotFound
	}
	if req.Status != models.AdminRequestPending {
		return nil, ErrAlreadyProcessed
	}

	req.Status = models.AdminRequestRejected

	return req, nil
}
