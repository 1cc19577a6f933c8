package handlers

import (
	"errors"
	"net/http"
	"time"

	"campus-connect/app/server/authz"
	"campus-connect/app/server/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// societyView adds the derived fields the clients expect on top of the
// stored document.
type societyView struct {
	models.Society
	MemberCount int  `json:"memberCount"`
	IsFollowing bool `json:"isFollowing"`
	IsAdmin     bool `json:"isAdmin"`
}

func newSocietyView(s *models.Society, userEmail string) societyView {
	v := societyView{
		Society:     *s,
		MemberCount: len(s.Followers),
	}
	if userEmail != "" {
		v.IsFollowing = authz.IsFollowing(s, userEmail)
		v.IsAdmin = authz.IsSocietyAdmin(s, userEmail)
	}
	return v
}

func (a *App) findSocietyByParam(c echo.Context) (*models.Society, error, bool) {
	rctx := c.Request().Context()

	societyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, a.er(c, http.StatusNotFound, "Society not found"), false
	}

	var society models.Society
	if err := a.societies().FindOne(rctx, bson.M{"_id": societyID}).Decode(&society); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, a.er(c, http.StatusNotFound, "Society not found"), false
		}
		a.l.Error("failed to find society", zap.String("id", c.Param("id")), zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError, "Error fetching society"), false
	}

	return &society, nil, true
}

// saveSociety persists a mutated document. Concurrent read-modify-write
// cycles rely on the store's per-document atomicity; the later write
// wins (accepted limitation).
func (a *App) saveSociety(c echo.Context, s *models.Society) error {
	s.UpdatedAt = time.Now()
	_, err := a.societies().ReplaceOne(c.Request().Context(), bson.M{"_id": s.ID}, s)
	return err
}

func (a *App) ListSocieties(c echo.Context) error {
	rctx := c.Request().Context()

	cursor, err := a.societies().Find(rctx, bson.M{})
	if err != nil {
		a.l.Error("failed to find societies", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching societies")
	}

	var societies []models.Society
	if err := cursor.All(rctx, &societies); err != nil {
		a.l.Error("failed to decode societies", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error fetching societies")
	}

	userEmail := c.QueryParam("userEmail")
	views := []societyView{}
	for i := range societies {
		views = append(views, newSocietyView(&societies[i], userEmail))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"societies": views,
	})
}

func (a *App) GetSociety(c echo.Context) error {
	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return errResp
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"society": newSocietyView(society, c.QueryParam("userEmail")),
	})
}

type createSocietyRequest struct {
	Name            string `json:"name"`
	Logo            string `json:"logo"`
	CoverPhoto      string `json:"coverPhoto"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	EstablishedYear int    `json:"establishedYear"`
	Email           string `json:"email"`
	Facebook        string `json:"facebook"`
	Website         string `json:"website"`
}

func (a *App) CreateSociety(c echo.Context) error {
	rctx := c.Request().Context()

	var req createSocietyRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.Category == "" {
		return a.er(c, http.StatusBadRequest, "Name, description and category are required")
	}

	// Society names are unique across the board.
	if err := a.societies().FindOne(rctx, bson.M{"name": req.Name}).Err(); err == nil {
		return a.er(c, http.StatusBadRequest, "Society with this name already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		a.l.Error("failed to check society name", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error creating society")
	}

	now := time.Now()
	society := models.Society{
		ID:              primitive.NewObjectID(),
		Name:            req.Name,
		Logo:            req.Logo,
		CoverPhoto:      req.CoverPhoto,
		Description:     req.Description,
		Category:        req.Category,
		EstablishedYear: req.EstablishedYear,
		Email:           req.Email,
		Facebook:        req.Facebook,
		Website:         req.Website,
		PanelMembers:    []models.PanelMember{},
		PastGallery:     []models.PastEvent{},
		Admins:          []string{},
		Followers:       []string{},
		AdminRequests:   []models.AdminRequest{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := a.societies().InsertOne(rctx, &society); err != nil {
		a.l.Error("failed to insert society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error creating society")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Society created successfully",
		"society": society,
	})
}

type updateSocietyRequest struct {
	UserEmail string `json:"userEmail"`
	createSocietyRequest
}

// UpdateSociety edits the descriptive fields only; membership sets and
// the request queue are never writable through this endpoint.
func (a *App) UpdateSociety(c echo.Context) error {
	var req updateSocietyRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "Invalid request body")
	}

	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return errResp
	}

	if !authz.IsSocietyAdmin(society, req.UserEmail) {
		return a.er(c, http.StatusForbidden, "Only admins can update society information")
	}

	if req.Name != "" {
		society.Name = req.Name
	}
	if req.Logo != "" {
		society.Logo = req.Logo
	}
	if req.CoverPhoto != "" {
		society.CoverPhoto = req.CoverPhoto
	}
	if req.Description != "" {
		society.Description = req.Description
	}
	if req.Category != "" {
		society.Category = req.Category
	}
	if req.EstablishedYear != 0 {
		society.EstablishedYear = req.EstablishedYear
	}
	if req.Email != "" {
		society.Email = req.Email
	}
	if req.Facebook != "" {
		society.Facebook = req.Facebook
	}
	if req.Website != "" {
		society.Website = req.Website
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error updating society")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Society updated successfully",
		"society": society,
	})
}

type memberActionRequest struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

// ToggleFollow is a self-service toggle: any identified caller may
// follow or unfollow, and two calls cancel out.
func (a *App) ToggleFollow(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "User email is required")
	}
	if req.UserEmail == "" {
		return a.er(c, http.StatusBadRequest, "User email is required")
	}

	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return errResp
	}

	following := authz.ToggleFollow(society, req.UserEmail)

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error toggling follow")
	}

	message := "Unfollowed society"
	if following {
		message = "Following society"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     message,
		"isFollowing": following,
	})
}

// JoinAsAdmin queues a pending admin-join request for moderation; it
// never grants the role directly.
func (a *App) JoinAsAdmin(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "User email is required")
	}
	if req.UserEmail == "" {
		return a.er(c, http.StatusBadRequest, "User email is required")
	}

	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return errResp
	}

	_, err := authz.RequestAdminJoin(society, req.UserEmail, req.UserName, time.Now())
	switch {
	case errors.Is(err, authz.ErrAlreadyAdmin):
		return a.er(c, http.StatusBadRequest, "Already an admin of this society")
	case errors.Is(err, authz.ErrAlreadyRequested):
		return a.er(c, http.StatusBadRequest, "An admin request is already pending for this society")
	case err != nil:
		a.l.Error("failed to queue admin request", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error joining as admin")
	}

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error joining as admin")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Admin request submitted for approval",
	})
}

func (a *App) LeaveAdmin(c echo.Context) error {
	var req memberActionRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "User email is required")
	}
	if req.UserEmail == "" {
		return a.er(c, http.StatusBadRequest, "User email is required")
	}

	society, errResp, ok := a.findSocietyByParam(c)
	if !ok {
		return errResp
	}

	authz.LeaveAdmin(society, req.UserEmail)

	if err := a.saveSociety(c, society); err != nil {
		a.l.Error("failed to save society", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "Error leaving admin")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Left admin role",
		"isAdmin": false,
	})
}
