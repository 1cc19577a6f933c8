package handlers

import (
	"errors"
	"net/http"
	"time"

	"campus-connect/app/server/middlewares"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errDonorAlreadyActive = errors.New("donor already active")

type donorRequest struct {
	BloodGroup  string     `json:"blood_group"`
	Location    string     `json:"location"`
	PhoneNumber string     `json:"phone_number"`
	LastDonated *time.Time `json:"last_donated"`
}

type donorView struct {
	DonorID     uint       `json:"donor_id"`
	BloodGroup  string     `json:"blood_group"`
	Location    string     `json:"location"`
	LastDonated *time.Time `json:"last_donated"`
	IsActive    bool       `json:"isActive"`
	UserName    string     `json:"user_name"`
	PhoneNumber string     `json:"phone_number"`
	Email       string     `json:"email"`
}

func newDonorView(d *models.DonorRecord) donorView {
	v := donorView{
		DonorID:     d.ID,
		BloodGroup:  d.BloodGroup,
		Location:    d.Location,
		LastDonated: d.LastDonated,
		IsActive:    d.IsActive,
	}
	if d.User != nil {
		v.UserName = d.User.Name
		v.PhoneNumber = d.User.PhoneNumber
		v.Email = d.User.Email
	}
	return v
}

// RegisterDonor creates the caller's donor record, or reactivates a
// previously deactivated one. A record that is already active is a
// conflict. The phone number lands on the user profile when the profile
// has none.
func (a *App) RegisterDonor(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	var req donorRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.BloodGroup == "" || req.Location == "" || req.PhoneNumber == "" {
		return a.er(c, http.StatusBadRequest, "Missing required fields: blood group, location, and phone number are necessary.")
	}

	var donor models.DonorRecord
	actionType := "created"

	err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", session.UserID).Error; err != nil {
			return err
		}
		if user.PhoneNumber == "" {
			if err := tx.Model(&user).Update("phone_number", req.PhoneNumber).Error; err != nil {
				return err
			}
		}

		err := tx.First(&donor, "user_id = ?", session.UserID).Error
		switch {
		case err == nil:
			if donor.IsActive {
				return errDonorAlreadyActive
			}
			donor.BloodGroup = req.BloodGroup
			donor.Location = req.Location
			donor.LastDonated = req.LastDonated
			donor.IsActive = true
			actionType = "reactivated"
			return tx.Save(&donor).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			donor = models.DonorRecord{
				UserID:      session.UserID,
				BloodGroup:  req.BloodGroup,
				Location:    req.Location,
				LastDonated: req.LastDonated,
				IsActive:    true,
			}
			return tx.Create(&donor).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, errDonorAlreadyActive) {
			return a.er(c, http.StatusConflict, "You are already registered as an active donor. Please use the Deactivate feature if necessary.")
		}
		a.l.Error("failed to register donor", zap.Uint("userID", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not process donor registration due to a server error.")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Donor registration successful (" + actionType + ").",
		"donor":   donor,
	})
}

// ToggleDonorStatus flips the active flag; inactive donors disappear
// from the public list but keep their record for reactivation.
func (a *App) ToggleDonorStatus(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	var donor models.DonorRecord
	if err := a.db.WithContext(rctx).First(&donor, "user_id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, "Donor record not found. Please register first.")
		}
		a.l.Error("failed to get donor record", zap.Uint("userID", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not process request to toggle donor status due to a server error.")
	}

	donor.IsActive = !donor.IsActive
	if err := a.db.WithContext(rctx).Save(&donor).Error; err != nil {
		a.l.Error("failed to toggle donor status", zap.Uint("userID", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not process request to toggle donor status due to a server error.")
	}

	statusMessage := "deactivated. You are now marked as inactive."
	if donor.IsActive {
		statusMessage = "activated. You are now marked as active."
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Donor status successfully " + statusMessage,
		"isActive": donor.IsActive,
	})
}

// UpdateDonorInfo patches the donor fields; a provided phone number
// always overwrites the user profile here.
func (a *App) UpdateDonorInfo(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	var req donorRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	var donor models.DonorRecord
	if err := a.db.WithContext(rctx).First(&donor, "user_id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, "Donor record not found. Please register first.")
		}
		a.l.Error("failed to get donor record", zap.Uint("userID", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not update donor information due to a server error.")
	}

	if req.BloodGroup != "" {
		donor.BloodGroup = req.BloodGroup
	}
	if req.Location != "" {
		donor.Location = req.Location
	}
	if req.LastDonated != nil {
		donor.LastDonated = req.LastDonated
	}

	err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&donor).Error; err != nil {
			return err
		}
		if req.PhoneNumber != "" {
			return tx.Model(&models.User{}).
				Where("id = ?", session.UserID).
				Update("phone_number", req.PhoneNumber).Error
		}
		return nil
	})
	if err != nil {
		a.l.Error("failed to update donor info", zap.Uint("userID", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not update donor information due to a server error.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Donor information successfully updated.",
	})
}

// ListDonors returns the active donors joined with their profile. The
// caller's own record rides along even when inactive, so the client can
// show their registration state.
func (a *App) ListDonors(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	var donors []models.DonorRecord
	if err := a.db.WithContext(rctx).
		Preload("User").
		Where("is_active = ?", true).
		Find(&donors).Error; err != nil {
		a.l.Error("failed to list donors", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Could not retrieve donor list due to a server error.")
	}

	hasOwn := false
	for i := range donors {
		if donors[i].UserID == session.UserID {
			hasOwn = true
			break
		}
	}
	if !hasOwn {
		var own models.DonorRecord
		err := a.db.WithContext(rctx).Preload("User").First(&own, "user_id = ?", session.UserID).Error
		if err == nil {
			donors = append(donors, own)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			a.l.Error("failed to get own donor record", zap.Uint("userID", session.UserID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError, "Could not retrieve donor list due to a server error.")
		}
	}

	views := []donorView{}
	for i := range donors {
		views = append(views, newDonorView(&donors[i]))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(views),
		"donors":  views,
	})
}
