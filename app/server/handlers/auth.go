package handlers

import (
	"errors"
	"net/http"
	"strings"

	"campus-connect/app/server/identity"
	"campus-connect/app/server/jwt"
	"campus-connect/app/server/middlewares"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type signinRequest struct {
	Token string `json:"token"` // opaque identity assertion from the provider
}

type authUser struct {
	ID              uint   `json:"users_id"`
	Email           string `json:"email"`
	Name            string `json:"user_name"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Image           string `json:"image,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Token           string `json:"token,omitempty"`
	IsAdministrator bool   `json:"isAdministrator,omitempty"`
}

func authUserFromModel(user *models.User) authUser {
	return authUser{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		Image:       user.Image,
		Gender:      user.Gender,
	}
}

func emailDomain(email string) string {
	parts := strings.Split(email, "@")
	return parts[len(parts)-1]
}

// verifySignin runs the shared sign-in pipeline: assertion verification
// and the one-way domain gate. The domain is checked here, at sign-in,
// and never again on later requests.
func (a *App) verifySignin(c echo.Context, req *signinRequest) (*identity.Identity, error, bool) {
	rctx := c.Request().Context()

	if req.Token == "" {
		return nil, a.erLegacy(c, http.StatusBadRequest, "Token is missing.", "Token is missing."), false
	}

	id, err := a.verifier.VerifyAssertion(rctx, req.Token)
	if err != nil {
		a.l.Warn("failed to verify identity assertion", zap.Error(err))
		return nil, a.erLegacy(c, http.StatusUnauthorized, "Invalid Firebase token", "There was some Error"), false
	}

	if domain := emailDomain(id.Email); domain != a.cfg.Security.RequiredDomain {
		// Revoke whatever provider-side session backed this
		// assertion before rejecting.
		if err := a.verifier.RevokeSessions(rctx, id.SubjectID); err != nil {
			a.l.Error("failed to revoke provider sessions", zap.String("subject", id.SubjectID), zap.Error(err))
		}
		return nil, a.erLegacy(c, http.StatusForbidden, "Unauthorized Domain",
			"Only @"+a.cfg.Security.RequiredDomain+" email allowed."), false
	}

	return id, nil, true
}

// upsertUser provisions the local account on first sign-in; later
// sign-ins leave the stored profile untouched.
func (a *App) upsertUser(c echo.Context, id *identity.Identity) (*models.User, error) {
	rctx := c.Request().Context()

	var user models.User
	err := a.db.WithContext(rctx).First(&user, "email = ?", id.Email).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := id.Name
	if name == "" {
		name = strings.SplitN(id.Email, "@", 2)[0]
	}
	user = models.User{
		Email: id.Email,
		Name:  name,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *App) GoogleSignin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.erLegacy(c, http.StatusBadRequest, "Token is missing.", "Token is missing.")
	}

	id, errResp, ok := a.verifySignin(c, &req)
	if !ok {
		return errResp
	}

	token, err := a.jwt.SignSession(id.Email)
	if err != nil {
		a.l.Error("failed to sign session token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "There was some Error")
	}

	user, err := a.upsertUser(c, id)
	if err != nil {
		a.l.Error("failed to upsert user", zap.String("email", id.Email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "There was some Error")
	}

	c.SetCookie(jwt.SessionCookie(token, a.cfg.System.IsProd))

	res := authUserFromModel(user)
	res.Token = token

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Google Login Successful",
		"user":    res,
	})
}

func (a *App) Logout(c echo.Context) error {
	// Stateless sessions: logout is client-side discard, the server
	// only clears the cookie carrier.
	c.SetCookie(jwt.ExpiredSessionCookie(a.cfg.System.IsProd))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Successfully logged out",
	})
}

func (a *App) GetMe(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, "User not found")
		}
		a.l.Error("failed to get user", zap.Uint("id", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Server error while fetching user data")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": authUserFromModel(&user),
	})
}

type updateProfileRequest struct {
	Name        string `json:"user_name"`
	PhoneNumber string `json:"phone_number"`
	Image       string `json:"image"`
	Gender      string `json:"gender"`
}

// UpdateProfile mutates the caller's own record only; the identity
// comes from the session, never from the body.
func (a *App) UpdateProfile(c echo.Context) error {
	session, ok := middlewares.SessionFrom(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized, "Authentication required.")
	}

	rctx := c.Request().Context()

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, "User ID not found in session.")
		}
		a.l.Error("failed to get user", zap.Uint("id", session.UserID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal Server Error")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Image != "" {
		user.Image = req.Image
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}

	if err := a.db.WithContext(rctx).Save(&user).Error; err != nil {
		a.l.Error("failed to update user", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    authUserFromModel(&user),
	})
}
